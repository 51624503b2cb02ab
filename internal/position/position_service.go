package position

import (
	"context"
	"database/sql"

	"hrconsole/internal/shared/apperror"
	"hrconsole/internal/shared/listquery"

	"github.com/google/uuid"
)

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreatePositionRequest) (PositionResponse, error)
	GetPage(ctx context.Context, companyID string, params listquery.Params) ([]PositionResponse, int64, error)
	GetByID(ctx context.Context, companyID, id string) (PositionResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdatePositionRequest) (PositionResponse, error)
	Delete(ctx context.Context, companyID, id string) error
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
	companyID string,
	req CreatePositionRequest,
) (PositionResponse, error) {

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PositionResponse{}, apperror.ErrInvalidInput
	}
	departmentUUID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return PositionResponse{}, apperror.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pos := &Position{
		ID:           uuid.New(),
		Name:         req.Name,
		CompanyID:    companyUUID,
		DepartmentID: departmentUUID,
	}

	if err := qtx.Create(ctx, pos); err != nil {
		return PositionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	return mapToResponse(*pos), nil
}

func (s *service) GetPage(
	ctx context.Context,
	companyID string,
	params listquery.Params,
) ([]PositionResponse, int64, error) {

	positions, total, err := s.repo.FindPageByCompany(ctx, companyID, params)
	if err != nil {
		return nil, 0, err
	}

	res := make([]PositionResponse, len(positions))
	for i, p := range positions {
		res[i] = mapToResponse(p)
	}
	return res, total, nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (PositionResponse, error) {

	pos, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PositionResponse{}, err
	}

	return mapToResponse(*pos), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdatePositionRequest,
) (PositionResponse, error) {

	departmentUUID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return PositionResponse{}, apperror.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pos, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PositionResponse{}, err
	}

	pos.Name = req.Name
	pos.DepartmentID = departmentUUID
	pos.Department = nil

	if err := qtx.Update(ctx, pos); err != nil {
		return PositionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	return mapToResponse(*pos), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(pos Position) PositionResponse {
	resp := PositionResponse{
		ID:           pos.ID.String(),
		CompanyID:    pos.CompanyID.String(),
		Name:         pos.Name,
		DepartmentID: pos.DepartmentID.String(),
	}
	if pos.Department != nil {
		resp.DepartmentName = pos.Department.Name
	}
	return resp
}
