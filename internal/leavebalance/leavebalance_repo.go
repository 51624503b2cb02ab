package leavebalance

import (
	"context"
	"database/sql"

	"hrconsole/internal/shared/connection"
	"hrconsole/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavebalance_repo.go -destination=mock/leavebalance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, balance *LeaveBalance) error
	FindByEmployeeAndYear(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)
	FindByScope(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	IncrementUsed(ctx context.Context, companyID, employeeID, leaveTypeID string, year int, delta float64) error
	SetUsed(ctx context.Context, companyID, employeeID, leaveTypeID string, year int, used float64) error
	SumApprovedDays(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (float64, error)
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

func (r *repository) Create(ctx context.Context, balance *LeaveBalance) error {
	return r.db.WithContext(ctx).Omit("LeaveType").Create(balance).Error
}

func (r *repository) FindByEmployeeAndYear(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindByScope(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var balance LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&balance).Error
	return &balance, err
}

func (r *repository) IncrementUsed(ctx context.Context, companyID, employeeID, leaveTypeID string, year int, delta float64) error {
	return r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		UpdateColumn("used_days", gorm.Expr("used_days + ?", delta)).Error
}

func (r *repository) SetUsed(ctx context.Context, companyID, employeeID, leaveTypeID string, year int, used float64) error {
	return r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		UpdateColumn("used_days", used).Error
}

// SumApprovedDays menjumlahkan requested_days dari leave request APPROVED
// pada tahun berjalan, sumber kebenaran untuk rekonsiliasi saldo.
func (r *repository) SumApprovedDays(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (float64, error) {
	var total sql.NullFloat64
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Select("COALESCE(SUM(requested_days), 0)").
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("status = ?", "APPROVED").
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Where("deleted_at IS NULL").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}
