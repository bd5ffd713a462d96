package employee

import (
	"time"

	"gorm.io/gorm"
)

const (
	AppRoleAdmin    = "admin"
	AppRoleEmployee = "employee"

	AdminID    = "EMPADMIN"
	AdminName  = "Admin User"
	AdminEmail = "admin@example.com"
)

type Employee struct {
	ID                string         `gorm:"column:id;type:varchar(32);primaryKey"`
	Name              string         `gorm:"column:name;type:varchar(255);not null"`
	Email             string         `gorm:"column:email;type:varchar(255)"`
	Phone             string         `gorm:"column:phone;type:varchar(50)"`
	Role              string         `gorm:"column:role;type:varchar(100)"`
	Department        string         `gorm:"column:department;type:varchar(100)"`
	JoinDate          string         `gorm:"column:join_date;type:varchar(10)"`
	PAN               string         `gorm:"column:pan;type:varchar(20)"`
	BankAccountNumber string         `gorm:"column:bank_account_number;type:varchar(50)"`
	PFAccountNumber   string         `gorm:"column:pf_account_number;type:varchar(50)"`
	ESINumber         string         `gorm:"column:esi_number;type:varchar(50)"`
	BasicSalary       *int64         `gorm:"column:basic_salary"`
	HRA               *int64         `gorm:"column:hra"`
	DA                *int64         `gorm:"column:da"`
	SpecialAllowance  *int64         `gorm:"column:special_allowance"`
	AppRole           string         `gorm:"column:app_role;type:varchar(20);not null;default:employee"`
	PasswordHash      string         `gorm:"column:password_hash;type:varchar(255)"`
	CreatedAt         time.Time      `gorm:"column:created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}

// SalaryStructure is the monthly salary of an employee in the smallest
// currency unit. Missing components count as zero.
type SalaryStructure struct {
	BasicSalary      int64
	HRA              int64
	DA               int64
	SpecialAllowance int64
}

func (e Employee) SalaryStructure() SalaryStructure {
	return SalaryStructure{
		BasicSalary:      deref(e.BasicSalary),
		HRA:              deref(e.HRA),
		DA:               deref(e.DA),
		SpecialAllowance: deref(e.SpecialAllowance),
	}
}

func (e Employee) IsAdmin() bool {
	return e.AppRole == AppRoleAdmin
}

func deref(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
