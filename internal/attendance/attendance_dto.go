package attendance

type UpsertAttendanceRequest struct {
	// EmployeeID defaults to the caller.
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	Status     string `json:"status" binding:"required,max=20"`
}

type ListFilter struct {
	EmployeeID string `form:"employeeId"`
	Month      string `form:"month"`
}

type AttendanceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Source     string `json:"source"`
}

// CSVRow is one line of an attendance import file.
type CSVRow struct {
	EmployeeID string `csv:"employee_id"`
	Date       string `csv:"date"`
	Status     string `csv:"status"`
}

type ImportRowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Inserted int              `json:"inserted"`
	Updated  int              `json:"updated"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
