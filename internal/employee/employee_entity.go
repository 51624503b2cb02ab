package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID  `gorm:"type:uuid;index"`
	DepartmentID     *uuid.UUID `gorm:"type:uuid"`
	PositionID       *uuid.UUID `gorm:"type:uuid"`
	EmployeeNumber   string     `gorm:"size:32"`
	FullName         string
	Email            string `gorm:"uniqueIndex:uq_employee_email"`
	Phone            string `gorm:"size:32"`
	HireDate         time.Time
	EmploymentStatus string `gorm:"size:32;default:'ACTIVE'"`
	Department       *EmployeeDepartment `gorm:"foreignKey:DepartmentID"`
	Position         *EmployeePosition   `gorm:"foreignKey:PositionID"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

type EmployeeDepartment struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (EmployeeDepartment) TableName() string {
	return "departments"
}

type EmployeePosition struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (EmployeePosition) TableName() string {
	return "positions"
}
