package employeesalary

import (
	"time"

	"github.com/google/uuid"
)

// SalaryRevision is an append-only record of a salary structure change. The
// current structure lives on the employee row; revisions are history.
type SalaryRevision struct {
	ID               uuid.UUID `gorm:"type:char(36);primaryKey"`
	EmployeeID       string    `gorm:"type:varchar(32);index;not null"`
	BasicSalary      int64     `gorm:"not null;default:0"`
	HRA              int64     `gorm:"not null;default:0"`
	DA               int64     `gorm:"not null;default:0"`
	SpecialAllowance int64     `gorm:"not null;default:0"`
	EffectiveDate    string    `gorm:"type:varchar(10);not null"`
	ChangedBy        string    `gorm:"type:varchar(32)"`
	CreatedAt        time.Time
}

func (SalaryRevision) TableName() string {
	return "employee_salary_revisions"
}

func (r SalaryRevision) Gross() int64 {
	return r.BasicSalary + r.HRA + r.DA + r.SpecialAllowance
}
