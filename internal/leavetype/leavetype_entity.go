package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryAnnual = "ANNUAL"
	CategoryOther  = "OTHER"
)

type LeaveType struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID `gorm:"type:uuid;index"`
	Name             string    `gorm:"size:255;not null"`
	Category         string    `gorm:"size:16;default:'OTHER'"`
	IsPaid           bool      `gorm:"default:true"`
	IsLimited        bool      `gorm:"default:false"`
	MaxDays          *int
	RequiresDocument bool           `gorm:"default:false"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
