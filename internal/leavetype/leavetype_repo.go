package leavetype

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
		"category":   "category",
		"created_at": "created_at",
	}
	filterableColumns = map[string]string{
		"name":     "name",
		"category": "category",
	}
)

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lt *LeaveType) error
	FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]LeaveType, int64, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]LeaveType, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*LeaveType, error)
	CountReferencingRequests(ctx context.Context, companyID, leaveTypeID string) (int64, error)
	Update(ctx context.Context, lt *LeaveType) error
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

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]LeaveType, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&LeaveType{}).
		Scopes(tenant.Scope(companyID), listquery.FilterScope(params, filterableColumns)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var types []LeaveType
	err = r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), listquery.Scope(params, sortableColumns, filterableColumns, "name ASC")).
		Find(&types).Error
	return types, total, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&lt, "id = ?", id).Error
	return &lt, err
}

func (r *repository) CountReferencingRequests(ctx context.Context, companyID, leaveTypeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Where("company_id = ?", companyID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&LeaveType{}, "id = ?", id).Error
}
