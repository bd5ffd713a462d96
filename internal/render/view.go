package render

import (
	"fmt"
	"strings"
	"time"
)

// Profile is the employee data shown on a payslip. It is read at render
// time and never written back to the stored payslip.
type Profile struct {
	Name              string
	Email             string
	Phone             string
	Designation       string
	Department        string
	BankAccountNumber string
	PAN               string
	PFAccountNumber   string
}

type Earnings struct {
	Basic            int64
	HRA              int64
	DA               int64
	SpecialAllowance int64
	Gross            int64
}

type Deductions struct {
	PF              int64
	ESI             int64
	PT              int64
	Tax             int64
	TotalDeductions int64
}

type View struct {
	PayslipID            string
	EmployeeID           string
	EmployeeName         string
	Month                string
	GeneratedAt          time.Time
	AttendancePercentage float64
	PaidDays             float64
	TotalDays            int
	Earnings             Earnings
	Deductions           Deductions
	NetSalary            int64
	Remarks              string
	Employee             *Profile
}

// DisplayName prefers the current profile name over the name captured at
// generation time.
func (v View) DisplayName() string {
	if v.Employee != nil && v.Employee.Name != "" {
		return v.Employee.Name
	}
	if v.EmployeeName != "" {
		return v.EmployeeName
	}
	return "N/A"
}

func (v View) profileField(get func(p *Profile) string) string {
	if v.Employee == nil {
		return "N/A"
	}
	return orNA(get(v.Employee))
}

func (v View) Department() string {
	return v.profileField(func(p *Profile) string { return p.Department })
}

func (v View) Designation() string {
	return v.profileField(func(p *Profile) string { return p.Designation })
}

func (v View) BankAccount() string {
	return v.profileField(func(p *Profile) string { return p.BankAccountNumber })
}

func (v View) PAN() string {
	return strings.ToUpper(v.profileField(func(p *Profile) string { return p.PAN }))
}

func (v View) PFAccount() string {
	return v.profileField(func(p *Profile) string { return p.PFAccountNumber })
}

// MonthLabel turns "2024-03" into "March 2024". Unparseable input is
// returned unchanged.
func (v View) MonthLabel() string {
	t, err := time.Parse("2006-01", v.Month)
	if err != nil {
		return v.Month
	}
	return t.Format("January 2006")
}

func (v View) PaidDaysLabel() string {
	return fmt.Sprintf("%s / %d (%.2f%%)", formatDays(v.PaidDays), v.TotalDays, v.AttendancePercentage)
}

func formatDays(d float64) string {
	if d == float64(int64(d)) {
		return fmt.Sprintf("%d", int64(d))
	}
	return fmt.Sprintf("%.1f", d)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
