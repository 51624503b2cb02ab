package employee

import (
	"context"
	"database/sql"

	"hrconsole/internal/shared/connection"
	"hrconsole/internal/shared/listquery"
	"hrconsole/internal/tenant"

	"gorm.io/gorm"
)

var (
	sortableColumns = map[string]string{
		"full_name":       "employees.full_name",
		"employee_number": "employees.employee_number",
		"hire_date":       "employees.hire_date",
		"created_at":      "employees.created_at",
	}
	filterableColumns = map[string]string{
		"full_name":         "employees.full_name",
		"department_id":     "employees.department_id",
		"position_id":       "employees.position_id",
		"employment_status": "employees.employment_status",
	}
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]Employee, int64, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	GetDepartmentIDByPosition(ctx context.Context, companyID, positionID string) (string, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit("Department", "Position").Create(empl).Error
}

func (r *repository) FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]Employee, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID), listquery.FilterScope(params, filterableColumns)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var employees []Employee
	err = r.db.WithContext(ctx).
		Preload("Department").
		Preload("Position").
		Scopes(tenant.Scope(companyID), listquery.Scope(params, sortableColumns, filterableColumns, "employees.full_name ASC")).
		Find(&employees).Error
	return employees, total, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Select("id", "full_name").
		Scopes(tenant.Scope(companyID)).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Position").
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) GetDepartmentIDByPosition(ctx context.Context, companyID, positionID string) (string, error) {
	var departmentID string
	err := r.db.WithContext(ctx).
		Table("positions").
		Select("department_id").
		Where("id = ?", positionID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Scan(&departmentID).Error
	return departmentID, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit("Department", "Position").Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id).Error
}
