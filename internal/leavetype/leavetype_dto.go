package leavetype

type CreateLeaveTypeRequest struct {
	Name             string `json:"name" binding:"required"`
	Category         string `json:"category" binding:"omitempty,oneof=ANNUAL OTHER"`
	IsPaid           *bool  `json:"is_paid"`
	IsLimited        bool   `json:"is_limited"`
	MaxDays          *int   `json:"max_days" binding:"omitempty,gt=0"`
	RequiresDocument bool   `json:"requires_document"`
}

type UpdateLeaveTypeRequest struct {
	Name             string `json:"name" binding:"required"`
	Category         string `json:"category" binding:"omitempty,oneof=ANNUAL OTHER"`
	IsPaid           *bool  `json:"is_paid"`
	IsLimited        bool   `json:"is_limited"`
	MaxDays          *int   `json:"max_days" binding:"omitempty,gt=0"`
	RequiresDocument bool   `json:"requires_document"`
}

type LeaveTypeResponse struct {
	ID               string `json:"id"`
	CompanyID        string `json:"company_id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	IsPaid           bool   `json:"is_paid"`
	IsLimited        bool   `json:"is_limited"`
	MaxDays          *int   `json:"max_days,omitempty"`
	RequiresDocument bool   `json:"requires_document"`
}

type LeaveTypeOptionResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
