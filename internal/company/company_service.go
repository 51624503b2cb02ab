package company

import (
	"context"
	"database/sql"
	"errors"

	companyerrors "hrconsole/internal/company/errors"
	"hrconsole/internal/shared/listquery"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetPage(ctx context.Context, params listquery.Params) ([]CompanyResponse, int64, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	req CreateCompanyRequest,
) (CompanyResponse, error) {

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return CompanyResponse{}, err
	}
	if existing != nil {
		return CompanyResponse{}, companyerrors.ErrEmailAlreadyUsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CompanyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	comp := &Company{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		IsActive: true,
	}

	if err := qtx.Create(ctx, comp); err != nil {
		return CompanyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CompanyResponse{}, err
	}

	return mapToResponse(*comp), nil
}

func (s *service) GetPage(
	ctx context.Context,
	params listquery.Params,
) ([]CompanyResponse, int64, error) {

	companies, total, err := s.repo.FindPage(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	res := make([]CompanyResponse, len(companies))
	for i, comp := range companies {
		res[i] = mapToResponse(comp)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	comp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}

	return mapToResponse(*comp), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateCompanyRequest,
) (CompanyResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CompanyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	comp, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}

	comp.Name = req.Name
	comp.Email = req.Email
	comp.Address = req.Address
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, comp); err != nil {
		return CompanyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CompanyResponse{}, err
	}

	return mapToResponse(*comp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(comp Company) CompanyResponse {
	return CompanyResponse{
		ID:       comp.ID.String(),
		Name:     comp.Name,
		Email:    comp.Email,
		Address:  comp.Address,
		IsActive: comp.IsActive,
	}
}
