package leavebalance

import (
	"time"

	"github.com/google/uuid"
)

type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_balance_scope"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_balance_scope"`
	Year        int       `gorm:"uniqueIndex:uq_balance_scope"`
	TotalDays   float64
	UsedDays    float64
	LeaveType   *BalanceLeaveType `gorm:"foreignKey:LeaveTypeID"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime"`
}

type BalanceLeaveType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Category  string
	IsLimited bool
	MaxDays   *int
}

func (BalanceLeaveType) TableName() string {
	return "leave_types"
}

// Remaining boleh negatif, misalnya setelah approve paksa atau koreksi kuota.
func (b LeaveBalance) Remaining() float64 {
	return b.TotalDays - b.UsedDays
}
