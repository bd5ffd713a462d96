package payroll

import "time"

type GenerateRequest struct {
	Month string `json:"month"`
}

type EmailPayslipRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type PayslipResponse struct {
	ID                   string     `json:"id"`
	EmployeeID           string     `json:"employeeId"`
	EmployeeName         string     `json:"employeeName"`
	Month                string     `json:"month"`
	Year                 int        `json:"year"`
	GeneratedDate        time.Time  `json:"generatedDate"`
	AttendancePercentage float64    `json:"attendancePercentage"`
	PaidDays             float64    `json:"paidDays"`
	TotalDays            int        `json:"totalDays"`
	Earnings             Earnings   `json:"earnings"`
	Deductions           Deductions `json:"deductions"`
	NetSalary            int64      `json:"netSalary"`
	Remarks              string     `json:"remarks"`
}

type EmployeeProfile struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Role              string `json:"role,omitempty"`
	Department        string `json:"department,omitempty"`
	BankAccountNumber string `json:"bankAccountNumber,omitempty"`
	PAN               string `json:"pan,omitempty"`
	PFAccountNumber   string `json:"pfAccountNumber,omitempty"`
}

// PayslipView is a stored payslip merged with the employee's current
// profile for display.
type PayslipView struct {
	PayslipResponse
	Employee *EmployeeProfile `json:"employee,omitempty"`
}

type GenerateFailure struct {
	EmployeeID string `json:"employeeId"`
	Reason     string `json:"reason"`
}

type GenerateAllResponse struct {
	Month     string            `json:"month"`
	Generated []PayslipResponse `json:"generated"`
	Failed    []GenerateFailure `json:"failed"`
}

type EmailPayslipResponse struct {
	PayslipID  string `json:"payslipId"`
	To         string `json:"to"`
	Sent       bool   `json:"sent"`
	Message    string `json:"message"`
	ArchiveKey string `json:"archiveKey,omitempty"`
}

type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}
