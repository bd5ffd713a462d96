package employee

import "time"

type CreateEmployeeRequest struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email" binding:"omitempty,email"`
	Phone             string `json:"phone"`
	Role              string `json:"role"`
	Department        string `json:"department"`
	JoinDate          string `json:"joinDate" binding:"omitempty,datetime=2006-01-02"`
	PAN               string `json:"pan"`
	BankAccountNumber string `json:"bankAccountNumber"`
	PFAccountNumber   string `json:"pfAccountNumber"`
	ESINumber         string `json:"esiNumber"`
	BasicSalary       *int64 `json:"basicSalary" binding:"omitempty,min=0"`
	HRA               *int64 `json:"hra" binding:"omitempty,min=0"`
	DA                *int64 `json:"da" binding:"omitempty,min=0"`
	SpecialAllowance  *int64 `json:"specialAllowance" binding:"omitempty,min=0"`
	AppRole           string `json:"appRole" binding:"omitempty,oneof=admin employee"`
	Password          string `json:"password" binding:"omitempty,min=8"`
}

// UpdateEmployeeRequest is a partial update; nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	Name              *string `json:"name" binding:"omitempty,min=1"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Phone             *string `json:"phone"`
	Role              *string `json:"role"`
	Department        *string `json:"department"`
	JoinDate          *string `json:"joinDate" binding:"omitempty,datetime=2006-01-02"`
	PAN               *string `json:"pan"`
	BankAccountNumber *string `json:"bankAccountNumber"`
	PFAccountNumber   *string `json:"pfAccountNumber"`
	ESINumber         *string `json:"esiNumber"`
	BasicSalary       *int64  `json:"basicSalary" binding:"omitempty,min=0"`
	HRA               *int64  `json:"hra" binding:"omitempty,min=0"`
	DA                *int64  `json:"da" binding:"omitempty,min=0"`
	SpecialAllowance  *int64  `json:"specialAllowance" binding:"omitempty,min=0"`
	AppRole           *string `json:"appRole" binding:"omitempty,oneof=admin employee"`
	Password          *string `json:"password" binding:"omitempty,min=8"`
}

func (r UpdateEmployeeRequest) touchesPrivilegedFields() bool {
	return r.BasicSalary != nil || r.HRA != nil || r.DA != nil ||
		r.SpecialAllowance != nil || r.AppRole != nil
}

type EmployeeResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	Role              string    `json:"role,omitempty"`
	Department        string    `json:"department,omitempty"`
	JoinDate          string    `json:"joinDate,omitempty"`
	PAN               string    `json:"pan,omitempty"`
	BankAccountNumber string    `json:"bankAccountNumber,omitempty"`
	PFAccountNumber   string    `json:"pfAccountNumber,omitempty"`
	ESINumber         string    `json:"esiNumber,omitempty"`
	BasicSalary       *int64    `json:"basicSalary,omitempty"`
	HRA               *int64    `json:"hra,omitempty"`
	DA                *int64    `json:"da,omitempty"`
	SpecialAllowance  *int64    `json:"specialAllowance,omitempty"`
	AppRole           string    `json:"appRole"`
	CreatedAt         time.Time `json:"createdAt"`
}

type EmployeeOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
}
