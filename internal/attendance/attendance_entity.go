package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusHalfDay = "Half Day"
	StatusLeave   = "Leave"

	SourceManual = "MANUAL"
	SourceCSV    = "CSV"
)

// Attendance is one employee's status for one calendar day. At most one row
// exists per (employee_id, date); writes go through an upsert.
type Attendance struct {
	ID         uuid.UUID `gorm:"column:id;type:char(36);primaryKey"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(32);not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Date       string    `gorm:"column:date;type:varchar(10);not null;uniqueIndex:uq_attendance_employee_date,priority:2;index"`
	Status     string    `gorm:"column:status;type:varchar(20);not null"`
	Source     string    `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
