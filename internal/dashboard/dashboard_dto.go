package dashboard

type LeaveTypeUsage struct {
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName string  `json:"leave_type_name"`
	ApprovedDays  float64 `json:"approved_days"`
	RequestCount  int64   `json:"request_count"`
}

type SummaryResponse struct {
	Headcount        int64            `json:"headcount"`
	PendingRequests  int64            `json:"pending_requests"`
	ApprovedThisYear int64            `json:"approved_this_year"`
	OnLeaveToday     int64            `json:"on_leave_today"`
	UsageByType      []LeaveTypeUsage `json:"usage_by_type"`
}
