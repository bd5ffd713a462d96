package payroll

import (
	"fmt"
	"strings"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Statutory amounts in the smallest currency unit.
const (
	ProfessionalTax int64 = 200
	ESIWageLimit    int64 = 21000
	TaxThreshold    int64 = 50000
)

var (
	PFRate  = decimal.RequireFromString("0.12")
	ESIRate = decimal.RequireFromString("0.0075")
	TaxRate = decimal.RequireFromString("0.10")

	hundred = decimal.NewFromInt(100)
)

// Paid-day credit per attendance status. Unknown statuses earn nothing.
var dayCredit = map[string]decimal.Decimal{
	attendance.StatusPresent: decimal.NewFromInt(1),
	attendance.StatusLeave:   decimal.NewFromInt(1),
	attendance.StatusHalfDay: decimal.RequireFromString("0.5"),
}

type Input struct {
	EmployeeID   string
	EmployeeName string
	Salary       employee.SalaryStructure
	Month        string
	Attendance   []attendance.Attendance
}

// ParseMonth validates a YYYY-MM string.
func ParseMonth(month string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, 0, payrollerrors.ErrInvalidMonth
	}
	return t.Year(), t.Month(), nil
}

// DaysInMonth follows the proleptic Gregorian calendar.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PaidDays credits each record dated in month. A month without records
// counts as fully attended. The result never exceeds totalDays.
func PaidDays(records []attendance.Attendance, month string, totalDays int) decimal.Decimal {
	total := decimal.NewFromInt(int64(totalDays))
	prefix := month + "-"

	paid := decimal.Zero
	matched := 0
	for _, r := range records {
		if !strings.HasPrefix(r.Date, prefix) {
			continue
		}
		matched++
		if credit, ok := dayCredit[r.Status]; ok {
			paid = paid.Add(credit)
		}
	}

	if matched == 0 {
		return total
	}
	return decimal.Min(paid, total)
}

// Prorate scales a monthly amount by paidDays/totalDays, rounding half away
// from zero.
func Prorate(amount int64, paidDays decimal.Decimal, totalDays int) int64 {
	return decimal.NewFromInt(amount).
		Mul(paidDays).
		DivRound(decimal.NewFromInt(int64(totalDays)), 0).
		IntPart()
}

func ComputeDeductions(basic, gross int64) Deductions {
	d := Deductions{
		PF: decimal.NewFromInt(basic).Mul(PFRate).Round(0).IntPart(),
		PT: ProfessionalTax,
	}
	if gross < ESIWageLimit {
		d.ESI = decimal.NewFromInt(gross).Mul(ESIRate).Ceil().IntPart()
	}
	if gross > TaxThreshold {
		d.Tax = decimal.NewFromInt(gross - TaxThreshold).Mul(TaxRate).Round(0).IntPart()
	}
	d.TotalDeductions = d.PF + d.ESI + d.PT + d.Tax
	return d
}

// Compute builds the payslip for one employee and month. It has no side
// effects; the caller supplies the id and the generation time.
func Compute(in Input, id string, now time.Time) (*Payslip, error) {
	year, month, err := ParseMonth(in.Month)
	if err != nil {
		return nil, err
	}

	totalDays := DaysInMonth(year, month)
	paid := PaidDays(in.Attendance, in.Month, totalDays)

	e := Earnings{
		Basic:            Prorate(in.Salary.BasicSalary, paid, totalDays),
		HRA:              Prorate(in.Salary.HRA, paid, totalDays),
		DA:               Prorate(in.Salary.DA, paid, totalDays),
		SpecialAllowance: Prorate(in.Salary.SpecialAllowance, paid, totalDays),
	}
	e.Gross = e.Basic + e.HRA + e.DA + e.SpecialAllowance

	d := ComputeDeductions(e.Basic, e.Gross)

	return &Payslip{
		ID:                   id,
		EmployeeID:           in.EmployeeID,
		EmployeeName:         in.EmployeeName,
		Month:                in.Month,
		Year:                 year,
		GeneratedAt:          now,
		AttendancePercentage: paid.Mul(hundred).Div(decimal.NewFromInt(int64(totalDays))).InexactFloat64(),
		PaidDays:             paid.InexactFloat64(),
		TotalDays:            totalDays,
		Earnings:             e,
		Deductions:           d,
		NetSalary:            e.Gross - d.TotalDeductions,
		Remarks:              fmt.Sprintf("Auto-generated (%s)", in.Month),
	}, nil
}

// NewPayslipID returns PAY-<employeeId>-<snowflake>. Snowflake ids are
// time ordered and unique per node even within one millisecond.
func NewPayslipID(node *snowflake.Node, employeeID string) string {
	return fmt.Sprintf("PAY-%s-%s", employeeID, node.Generate().String())
}
