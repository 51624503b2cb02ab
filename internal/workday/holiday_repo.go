package workday

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
		"name": "name",
		"date": "date",
	}
	filterableColumns = map[string]string{
		"name": "name",
	}
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type HolidayRepository interface {
	WithTx(tx *sql.Tx) HolidayRepository
	Create(ctx context.Context, holiday *Holiday) error
	FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]Holiday, int64, error)
	FindDatesInRange(ctx context.Context, companyID string, start, end time.Time) ([]time.Time, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Holiday, error)
	Update(ctx context.Context, holiday *Holiday) error
	Delete(ctx context.Context, companyID string, id string) error
}

type holidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) WithTx(tx *sql.Tx) HolidayRepository {
	return &holidayRepository{db: connection.BindTx(r.db, tx)}
}

func (r *holidayRepository) Create(ctx context.Context, holiday *Holiday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *holidayRepository) FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]Holiday, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Scopes(tenant.Scope(companyID), listquery.FilterScope(params, filterableColumns)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var holidays []Holiday
	err = r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), listquery.Scope(params, sortableColumns, filterableColumns, "date ASC")).
		Find(&holidays).Error
	return holidays, total, err
}

func (r *holidayRepository) FindDatesInRange(ctx context.Context, companyID string, start, end time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Select("date").
		Scopes(tenant.Scope(companyID)).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Pluck("date", &dates).Error
	return dates, err
}

func (r *holidayRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Holiday, error) {
	var holiday Holiday
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&holiday, "id = ?", id).Error
	return &holiday, err
}

func (r *holidayRepository) Update(ctx context.Context, holiday *Holiday) error {
	return r.db.WithContext(ctx).Save(holiday).Error
}

func (r *holidayRepository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Holiday{}, "id = ?", id).Error
}
