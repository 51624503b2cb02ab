package position

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Position struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name         string         `gorm:"size:255;not null"`
	CompanyID    uuid.UUID      `gorm:"type:uuid;not null"`
	DepartmentID uuid.UUID      `gorm:"type:uuid;not null"`
	Department   *PositionDepartment `gorm:"foreignKey:DepartmentID"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// PositionDepartment proyeksi ringan dari tabel departments, cukup untuk response.
type PositionDepartment struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (PositionDepartment) TableName() string {
	return "departments"
}
