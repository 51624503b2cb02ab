package leave

type CreateLeaveRequest struct {
	// Kosong berarti pengajuan untuk diri sendiri.
	EmployeeID    string `json:"employee_id" binding:"omitempty,uuid"`
	LeaveTypeID   string `json:"leave_type_id" binding:"required,uuid"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	StartFullDay  *bool  `json:"start_full_day"`
	FinishFullDay *bool  `json:"finish_full_day"`
	Reason        string `json:"reason"`
}

type UpdateLeaveRequest struct {
	LeaveTypeID   string `json:"leave_type_id" binding:"required,uuid"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	StartFullDay  *bool  `json:"start_full_day"`
	FinishFullDay *bool  `json:"finish_full_day"`
	Reason        string `json:"reason"`
}

type ApproveLeaveRequest struct {
	// Force melewati pagar saldo setelah approver dikonfirmasi ulang.
	Force bool `json:"force"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CancelLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type LeaveResponse struct {
	ID            string `json:"id"`
	RequestNumber string `json:"request_number"`
	CompanyID     string `json:"company_id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`

	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	StartFullDay  bool    `json:"start_full_day"`
	FinishFullDay bool    `json:"finish_full_day"`
	RequestedDays float64 `json:"requested_days"`
	Reason        string  `json:"reason"`

	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectedBy      *string `json:"rejected_by,omitempty"`
	RejectedAt      *string `json:"rejected_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CancelledBy     *string `json:"cancelled_by,omitempty"`
	CancelledAt     *string `json:"cancelled_at,omitempty"`
	CancelReason    *string `json:"cancel_reason,omitempty"`
}
