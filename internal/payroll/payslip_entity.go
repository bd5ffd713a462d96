package payroll

import (
	"time"

	"github.com/google/uuid"
)

type Earnings struct {
	Basic            int64 `json:"basic"`
	HRA              int64 `json:"hra"`
	DA               int64 `json:"da"`
	SpecialAllowance int64 `json:"specialAllowance"`
	Gross            int64 `json:"gross"`
}

type Deductions struct {
	PF              int64 `json:"pf"`
	ESI             int64 `json:"esi"`
	PT              int64 `json:"pt"`
	Tax             int64 `json:"tax"`
	TotalDeductions int64 `json:"totalDeductions"`
}

// Payslip is an immutable snapshot of one generation run. Rows are only
// ever inserted; regenerating a month adds a new row with a new id.
type Payslip struct {
	ID                   string     `gorm:"type:varchar(64);primaryKey"`
	EmployeeID           string     `gorm:"type:varchar(32);not null;index:idx_payslips_employee_generated,priority:1"`
	EmployeeName         string     `gorm:"type:varchar(255)"`
	Month                string     `gorm:"type:varchar(7);not null;index:idx_payslips_month"`
	Year                 int        `gorm:"not null"`
	GeneratedAt          time.Time  `gorm:"not null;index:idx_payslips_employee_generated,priority:2"`
	AttendancePercentage float64    `gorm:"not null"`
	PaidDays             float64    `gorm:"not null"`
	TotalDays            int        `gorm:"not null"`
	Earnings             Earnings   `gorm:"type:json;serializer:json;not null"`
	Deductions           Deductions `gorm:"type:json;serializer:json;not null"`
	NetSalary            int64      `gorm:"not null"`
	Remarks              string     `gorm:"type:varchar(255)"`
}

func (Payslip) TableName() string {
	return "payslips"
}

// PayslipDocument records where a rendered copy of a payslip was archived.
type PayslipDocument struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	PayslipID   string    `gorm:"type:varchar(64);not null;index"`
	StorageKey  string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100);not null"`
	SizeBytes   int64     `gorm:"not null"`
	CreatedAt   time.Time
}

func (PayslipDocument) TableName() string {
	return "payslip_documents"
}

// LatestPerEmployee keeps the first payslip seen for each employee. rows
// must already be ordered newest first.
func LatestPerEmployee(rows []Payslip) []Payslip {
	seen := make(map[string]struct{}, len(rows))
	out := make([]Payslip, 0, len(rows))
	for _, p := range rows {
		if _, ok := seen[p.EmployeeID]; ok {
			continue
		}
		seen[p.EmployeeID] = struct{}{}
		out = append(out, p)
	}
	return out
}
