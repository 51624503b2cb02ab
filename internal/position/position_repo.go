package position

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
		"name":       "positions.name",
		"created_at": "positions.created_at",
	}
	filterableColumns = map[string]string{
		"name":          "positions.name",
		"department_id": "positions.department_id",
	}
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, pos *Position) error
	FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]Position, int64, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Position, error)
	Update(ctx context.Context, pos *Position) error
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

func (r *repository) Create(ctx context.Context, pos *Position) error {
	return r.db.WithContext(ctx).Omit("Department").Create(pos).Error
}

func (r *repository) FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]Position, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Position{}).
		Scopes(tenant.Scope(companyID), listquery.FilterScope(params, filterableColumns)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var positions []Position
	err = r.db.WithContext(ctx).
		Preload("Department").
		Scopes(tenant.Scope(companyID), listquery.Scope(params, sortableColumns, filterableColumns, "positions.name ASC")).
		Find(&positions).Error
	return positions, total, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Position, error) {
	var pos Position
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(tenant.Scope(companyID)).
		First(&pos, "id = ?", id).Error
	return &pos, err
}

func (r *repository) Update(ctx context.Context, pos *Position) error {
	return r.db.WithContext(ctx).Omit("Department").Save(pos).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Position{}, "id = ?", id).Error
}
