package domain

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

// Actor is the authenticated caller as seen by the service layer.
type Actor struct {
	EmployeeID string
	Role       string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess reports whether the actor may read or act on records owned by
// employeeID.
func (a Actor) CanAccess(employeeID string) bool {
	return a.IsAdmin() || (a.EmployeeID != "" && a.EmployeeID == employeeID)
}
