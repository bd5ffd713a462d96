package employeesalary

type UpdateSalaryRequest struct {
	BasicSalary      int64  `json:"basicSalary" binding:"min=0"`
	HRA              int64  `json:"hra" binding:"min=0"`
	DA               int64  `json:"da" binding:"min=0"`
	SpecialAllowance int64  `json:"specialAllowance" binding:"min=0"`
	EffectiveDate    string `json:"effectiveDate" binding:"omitempty,datetime=2006-01-02"`
}

type SalaryRevisionResponse struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employeeId"`
	BasicSalary      int64  `json:"basicSalary"`
	HRA              int64  `json:"hra"`
	DA               int64  `json:"da"`
	SpecialAllowance int64  `json:"specialAllowance"`
	Gross            int64  `json:"gross"`
	EffectiveDate    string `json:"effectiveDate"`
	ChangedBy        string `json:"changedBy,omitempty"`
}
