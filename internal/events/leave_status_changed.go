package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

// LeaveStatusChangedEvent diterbitkan setiap kali status leave request berubah.
type LeaveStatusChangedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	LeaveRequestID string    `json:"leave_request_id"`
	RequestNumber  string    `json:"request_number"`
	EmployeeID     string    `json:"employee_id"`
	CompanyID      string    `json:"company_id"`
	LeaveTypeID    string    `json:"leave_type_id"`
	Year           int       `json:"year"`
	FromStatus     string    `json:"from_status"`
	ToStatus       string    `json:"to_status"`
	RequestedDays  float64   `json:"requested_days"`
	OccurredAt     time.Time `json:"occurred_at"`
}
