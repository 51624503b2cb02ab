package leave

import (
	"context"
	"database/sql"
	"time"

	"hrconsole/internal/shared/connection"
	"hrconsole/internal/shared/listquery"
	"hrconsole/internal/tenant"

	"gorm.io/gorm"
)

var (
	sortableColumns = map[string]string{
		"request_number": "leave_requests.request_number",
		"start_date":     "leave_requests.start_date",
		"end_date":       "leave_requests.end_date",
		"status":         "leave_requests.status",
		"requested_days": "leave_requests.requested_days",
		"created_at":     "leave_requests.created_at",
	}
	filterableColumns = map[string]string{
		"status":        "leave_requests.status",
		"employee_id":   "leave_requests.employee_id",
		"leave_type_id": "leave_requests.leave_type_id",
	}
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]LeaveRequest, int64, error)
	FindPageByEmployee(ctx context.Context, companyID, employeeID string, params listquery.Params) ([]LeaveRequest, int64, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("Employee", "LeaveType").Create(l).Error
}

func (r *repository) FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]LeaveRequest, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Scopes(tenant.Scope(companyID), listquery.FilterScope(params, filterableColumns)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var leaves []LeaveRequest
	err = r.db.WithContext(ctx).
		Preload("Employee").
		Preload("LeaveType").
		Scopes(tenant.Scope(companyID), listquery.Scope(params, sortableColumns, filterableColumns, "leave_requests.created_at DESC")).
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindPageByEmployee(ctx context.Context, companyID, employeeID string, params listquery.Params) ([]LeaveRequest, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Scopes(tenant.Scope(companyID), listquery.FilterScope(params, filterableColumns)).
		Where("employee_id = ?", employeeID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var leaves []LeaveRequest
	err = r.db.WithContext(ctx).
		Preload("Employee").
		Preload("LeaveType").
		Scopes(tenant.Scope(companyID), listquery.Scope(params, sortableColumns, filterableColumns, "leave_requests.created_at DESC")).
		Where("employee_id = ?", employeeID).
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("LeaveType").
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("Employee", "LeaveType").Save(l).Error
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

// Overlap dihitung terhadap request yang masih hidup: PENDING dan APPROVED.
func (r *repository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
