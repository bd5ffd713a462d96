package render_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-payroll/internal/render"

	"github.com/stretchr/testify/assert"
)

func sampleView() render.View {
	return render.View{
		PayslipID:            "PAY-EMP001-1",
		EmployeeID:           "EMP001",
		EmployeeName:         "Asha Rao",
		Month:                "2024-04",
		GeneratedAt:          time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		AttendancePercentage: 75,
		PaidDays:             22.5,
		TotalDays:            30,
		Earnings:             render.Earnings{Basic: 22500, HRA: 7500, SpecialAllowance: 3750, Gross: 33750},
		Deductions:           render.Deductions{PF: 2700, PT: 200, TotalDeductions: 2900},
		NetSalary:            30850,
		Remarks:              "Auto-generated (2024-04)",
		Employee: &render.Profile{
			Name:        "Asha Rao",
			Department:  "Engineering",
			Designation: "Developer",
			PAN:         "abcde1234f",
		},
	}
}

func TestRenderer_HTML(t *testing.T) {
	t.Run("renders amounts and profile", func(t *testing.T) {
		r, err := render.NewRenderer(render.Options{CompanyName: "Lomaa", CompanyTagline: "IT Solutions"})
		assert.NoError(t, err)

		out, err := r.HTML(context.Background(), sampleView())

		assert.NoError(t, err)
		html := string(out)
		assert.Contains(t, html, "Payslip for April 2024")
		assert.Contains(t, html, "₹30,850")
		assert.Contains(t, html, "₹22,500")
		assert.Contains(t, html, "ABCDE1234F")
		assert.Contains(t, html, "22.5 / 30 (75.00%)")
		assert.Contains(t, html, `class="badge"`)
		assert.Contains(t, html, ">L<")
	})

	t.Run("missing profile falls back to snapshot name", func(t *testing.T) {
		r, _ := render.NewRenderer(render.Options{})
		v := sampleView()
		v.Employee = nil
		v.EmployeeName = "Former Employee"

		out, err := r.HTML(context.Background(), v)

		assert.NoError(t, err)
		assert.Contains(t, string(out), "Former Employee")
		assert.Contains(t, string(out), "N/A")
	})

	t.Run("escapes user supplied text", func(t *testing.T) {
		r, _ := render.NewRenderer(render.Options{})
		v := sampleView()
		v.Employee.Name = "<script>alert(1)</script>"

		out, err := r.HTML(context.Background(), v)

		assert.NoError(t, err)
		assert.NotContains(t, string(out), "<script>alert(1)</script>")
	})

	t.Run("embeds logo file as data uri", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logo.png")
		assert.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o600))
		r, _ := render.NewRenderer(render.Options{LogoPath: path})

		out, err := r.HTML(context.Background(), sampleView())

		assert.NoError(t, err)
		assert.Contains(t, string(out), `src="data:image/png;base64,`)
	})

	t.Run("unreadable logo falls back to public url", func(t *testing.T) {
		r, _ := render.NewRenderer(render.Options{
			LogoPath:      filepath.Join(t.TempDir(), "missing.png"),
			PublicBaseURL: "https://payroll.acme.in/",
		})

		out, err := r.HTML(context.Background(), sampleView())

		assert.NoError(t, err)
		assert.Contains(t, string(out), `src="https://payroll.acme.in/logo.png"`)
	})

	t.Run("cancelled context", func(t *testing.T) {
		r, _ := render.NewRenderer(render.Options{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.HTML(ctx, sampleView())

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRenderer_PDF(t *testing.T) {
	r, err := render.NewRenderer(render.Options{CompanyName: "Lomaa"})
	assert.NoError(t, err)

	out, err := r.PDF(context.Background(), sampleView())

	assert.NoError(t, err)
	pdf := string(out)
	assert.True(t, strings.HasPrefix(pdf, "%PDF-1.4"))
	assert.True(t, strings.HasSuffix(pdf, "%%EOF"))
	assert.Contains(t, pdf, "(Net Salary: INR 30,850) Tj")
	assert.Contains(t, pdf, "/MediaBox [0 0 595 842]")
}

func TestINR(t *testing.T) {
	assert.Equal(t, "₹0", render.INR(0))
	assert.Equal(t, "₹200", render.INR(200))
	assert.Equal(t, "₹33,750", render.INR(33750))
}
