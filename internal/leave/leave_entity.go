package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestNumber string    `gorm:"type:varchar(20);uniqueIndex:uq_leave_request_number"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_company_status;uniqueIndex:uq_leave_request_number"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	LeaveTypeID   uuid.UUID `gorm:"type:uuid;not null"`

	StartDate     time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate       time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	StartFullDay  bool      `gorm:"not null;default:true"`
	FinishFullDay bool      `gorm:"not null;default:true"`
	RequestedDays float64   `gorm:"not null;default:1"`
	Reason        string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_company_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectedAt      *time.Time
	RejectionReason *string    `gorm:"type:text"`
	CancelledBy     *uuid.UUID `gorm:"type:uuid"`
	CancelledAt     *time.Time
	CancelReason    *string `gorm:"type:text"`

	Employee  *LeaveEmployee  `gorm:"foreignKey:EmployeeID"`
	LeaveType *LeaveLeaveType `gorm:"foreignKey:LeaveTypeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`
}

type LeaveEmployee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string
}

func (LeaveEmployee) TableName() string {
	return "employees"
}

type LeaveLeaveType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Category  string
	IsLimited bool
}

func (LeaveLeaveType) TableName() string {
	return "leave_types"
}
