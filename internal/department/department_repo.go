package department

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
		"name":       "name",
		"created_at": "created_at",
	}
	filterableColumns = map[string]string{
		"name": "name",
	}
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]Department, int64, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Department, error)
	Update(ctx context.Context, dept *Department) error
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]Department, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Department{}).
		Scopes(tenant.Scope(companyID), listquery.FilterScope(params, filterableColumns)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var depts []Department
	err = r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), listquery.Scope(params, sortableColumns, filterableColumns, "name ASC")).
		Find(&depts).Error
	return depts, total, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Department{}, "id = ?", id).Error
}
