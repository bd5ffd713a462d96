package events

import "time"

const PayslipGeneratedTopic = "hr.payroll.payslip.generated.v1"

const PayslipGeneratedEventType = "payslip_generated"

type PayslipGeneratedEvent struct {
	EventType   string    `json:"event_type"`
	PayslipID   string    `json:"payslip_id"`
	EmployeeID  string    `json:"employee_id"`
	Month       string    `json:"month"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
