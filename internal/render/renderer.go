package render

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

//go:embed templates/payslip.html
var templateFS embed.FS

//go:generate mockgen -source=renderer.go -destination=mock/renderer_mock.go -package=mock
type Renderer interface {
	HTML(ctx context.Context, v View) ([]byte, error)
	PDF(ctx context.Context, v View) ([]byte, error)
}

type Options struct {
	CompanyName    string
	CompanyTagline string
	// LogoPath is a PNG read once at startup. When it is missing the
	// renderer falls back to PublicBaseURL/logo.png, then to a badge.
	LogoPath      string
	PublicBaseURL string
}

type renderer struct {
	tmpl   *template.Template
	opts   Options
	logo   template.URL
	logger *zap.Logger
}

type page struct {
	View
	CompanyName    string
	CompanyTagline string
	Logo           template.URL
	Initial        string
}

func NewRenderer(opts Options, logger ...*zap.Logger) (Renderer, error) {
	l := zap.L().Named("render")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("render")
	}
	if opts.CompanyName == "" {
		opts.CompanyName = "Payroll"
	}

	tmpl, err := template.New("payslip.html").
		Funcs(template.FuncMap{"inr": INR}).
		ParseFS(templateFS, "templates/payslip.html")
	if err != nil {
		return nil, fmt.Errorf("parse payslip template: %w", err)
	}

	return &renderer{
		tmpl:   tmpl,
		opts:   opts,
		logo:   loadLogo(opts, l),
		logger: l,
	}, nil
}

func loadLogo(opts Options, logger *zap.Logger) template.URL {
	if opts.LogoPath != "" {
		data, err := os.ReadFile(opts.LogoPath)
		if err == nil {
			return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
		}
		logger.Warn("logo not readable, falling back", zap.String("path", opts.LogoPath), zap.Error(err))
	}
	if opts.PublicBaseURL != "" {
		return template.URL(strings.TrimRight(opts.PublicBaseURL, "/") + "/logo.png")
	}
	return ""
}

func (r *renderer) HTML(ctx context.Context, v View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	initial, _ := utf8.DecodeRuneInString(r.opts.CompanyName)
	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, page{
		View:           v,
		CompanyName:    r.opts.CompanyName,
		CompanyTagline: r.opts.CompanyTagline,
		Logo:           r.logo,
		Initial:        strings.ToUpper(string(initial)),
	})
	if err != nil {
		return nil, fmt.Errorf("execute payslip template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *renderer) PDF(ctx context.Context, v View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	amount := func(label string, n int64) pdfLine {
		return pdfLine{text: fmt.Sprintf("%-28s INR %s", label, Digits(n)), font: fontRegular, size: 11}
	}
	text := func(s string) pdfLine { return pdfLine{text: s, font: fontRegular, size: 11} }
	heading := func(s string) pdfLine { return pdfLine{text: s, font: fontBold, size: 12} }

	lines := []pdfLine{
		{text: r.opts.CompanyName, font: fontBold, size: 18},
		text(r.opts.CompanyTagline),
		{text: "Payslip for " + v.MonthLabel(), font: fontBold, size: 14},
		text(""),
		text("Employee: " + v.DisplayName() + " (" + v.EmployeeID + ")"),
		text("Department: " + v.Department() + "    Designation: " + v.Designation()),
		text("Bank A/C: " + v.BankAccount() + "    PAN: " + v.PAN() + "    PF No: " + v.PFAccount()),
		text("Paid days: " + v.PaidDaysLabel()),
		text("Generated: " + v.GeneratedAt.Format("02 Jan 2006")),
		text(""),
		heading("Earnings"),
		amount("Basic Salary", v.Earnings.Basic),
		amount("HRA", v.Earnings.HRA),
		amount("DA", v.Earnings.DA),
		amount("Special Allowance", v.Earnings.SpecialAllowance),
		amount("Gross Earnings", v.Earnings.Gross),
		text(""),
		heading("Deductions"),
		amount("PF (12%)", v.Deductions.PF),
		amount("ESI (0.75%)", v.Deductions.ESI),
		amount("Professional Tax", v.Deductions.PT),
		amount("TDS", v.Deductions.Tax),
		amount("Total Deductions", v.Deductions.TotalDeductions),
		text(""),
		{text: "Net Salary: INR " + Digits(v.NetSalary), font: fontBold, size: 14},
		text("Payslip ID: " + v.PayslipID),
	}
	if v.Remarks != "" {
		lines = append(lines, text("Remarks: "+v.Remarks))
	}

	return writePDF(lines), nil
}
