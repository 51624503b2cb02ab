package company

import (
	"context"
	"database/sql"
	"errors"

	"hrconsole/internal/shared/connection"
	"hrconsole/internal/shared/listquery"

	"gorm.io/gorm"
)

var (
	sortableColumns = map[string]string{
		"name":       "name",
		"created_at": "created_at",
	}
	filterableColumns = map[string]string{
		"name":      "name",
		"is_active": "is_active",
	}
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, comp *Company) error
	FindPage(ctx context.Context, params listquery.Params) ([]Company, int64, error)
	FindByID(ctx context.Context, id string) (*Company, error)
	FindByEmail(ctx context.Context, email string) (*Company, error)
	Update(ctx context.Context, comp *Company) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, comp *Company) error {
	return r.db.WithContext(ctx).Create(comp).Error
}

func (r *repository) FindPage(ctx context.Context, params listquery.Params) ([]Company, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Company{}).
		Scopes(listquery.FilterScope(params, filterableColumns)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var companies []Company
	err = r.db.WithContext(ctx).
		Scopes(listquery.Scope(params, sortableColumns, filterableColumns, "name ASC")).
		Find(&companies).Error
	return companies, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Company, error) {
	var comp Company
	err := r.db.WithContext(ctx).First(&comp, "id = ?", id).Error
	return &comp, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Company, error) {
	var comp Company
	err := r.db.WithContext(ctx).First(&comp, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func (r *repository) Update(ctx context.Context, comp *Company) error {
	return r.db.WithContext(ctx).Save(comp).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Company{}, "id = ?", id).Error
}
