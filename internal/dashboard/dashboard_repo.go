package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountEmployees(ctx context.Context, companyID string) (int64, error)
	CountRequestsByStatus(ctx context.Context, companyID, status string) (int64, error)
	CountApprovedInYear(ctx context.Context, companyID string, year int) (int64, error)
	CountOnLeave(ctx context.Context, companyID string, date time.Time) (int64, error)
	UsageByType(ctx context.Context, companyID string, year int) ([]LeaveTypeUsage, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountEmployees(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) CountRequestsByStatus(ctx context.Context, companyID, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Where("company_id = ?", companyID).
		Where("status = ?", status).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) CountApprovedInYear(ctx context.Context, companyID string, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Where("company_id = ?", companyID).
		Where("status = ?", "APPROVED").
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) CountOnLeave(ctx context.Context, companyID string, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Where("company_id = ?", companyID).
		Where("status = ?", "APPROVED").
		Where("start_date <= ? AND end_date >= ?", date, date).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) UsageByType(ctx context.Context, companyID string, year int) ([]LeaveTypeUsage, error) {
	var usage []LeaveTypeUsage
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Select("leave_requests.leave_type_id AS leave_type_id, leave_types.name AS leave_type_name, COALESCE(SUM(leave_requests.requested_days), 0) AS approved_days, COUNT(*) AS request_count").
		Joins("JOIN leave_types ON leave_types.id = leave_requests.leave_type_id").
		Where("leave_requests.company_id = ?", companyID).
		Where("leave_requests.status = ?", "APPROVED").
		Where("EXTRACT(YEAR FROM leave_requests.start_date) = ?", year).
		Where("leave_requests.deleted_at IS NULL").
		Group("leave_requests.leave_type_id, leave_types.name").
		Order("approved_days DESC").
		Scan(&usage).Error
	return usage, err
}
