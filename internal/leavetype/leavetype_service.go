package leavetype

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	leavetypeerrors "hrconsole/internal/leavetype/errors"
	"hrconsole/internal/shared/apperror"
	"hrconsole/internal/shared/listquery"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const LeaveTypeOptionsKeyPrefix = "leave_types:options:"

func GetLeaveTypeOptionsKey(companyID string) string {
	return LeaveTypeOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetPage(ctx context.Context, companyID string, params listquery.Params) ([]LeaveTypeResponse, int64, error)
	GetOptions(ctx context.Context, companyID string) ([]LeaveTypeOptionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateLeaveTypeRequest,
) (LeaveTypeResponse, error) {

	if req.IsLimited && req.MaxDays == nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrMaxDaysRequired
	}
	if req.Category == "" {
		req.Category = CategoryOther
	}
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveTypeResponse{}, apperror.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	lt := &LeaveType{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		Name:             req.Name,
		Category:         req.Category,
		IsPaid:           isPaid,
		IsLimited:        req.IsLimited,
		MaxDays:          req.MaxDays,
		RequiresDocument: req.RequiresDocument,
	}

	if err := qtx.Create(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)
	s.logger.Info("create leave type success", zap.String("leave_type_id", lt.ID.String()))

	return mapToResponse(*lt), nil
}

func (s *service) GetPage(
	ctx context.Context,
	companyID string,
	params listquery.Params,
) ([]LeaveTypeResponse, int64, error) {

	types, total, err := s.repo.FindPageByCompany(ctx, companyID, params)
	if err != nil {
		return nil, 0, err
	}

	res := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		res[i] = mapToResponse(lt)
	}
	return res, total, nil
}

func (s *service) GetOptions(ctx context.Context, companyID string) ([]LeaveTypeOptionResponse, error) {
	cacheKey := GetLeaveTypeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []LeaveTypeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		types, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		resp := make([]LeaveTypeOptionResponse, len(types))
		for i, lt := range types {
			resp[i] = LeaveTypeOptionResponse{
				ID:       lt.ID.String(),
				Name:     lt.Name,
				Category: lt.Category,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]LeaveTypeOptionResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (LeaveTypeResponse, error) {

	lt, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	return mapToResponse(*lt), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateLeaveTypeRequest,
) (LeaveTypeResponse, error) {

	if req.IsLimited && req.MaxDays == nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrMaxDaysRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	lt.Name = req.Name
	if req.Category != "" {
		lt.Category = req.Category
	}
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}
	lt.IsLimited = req.IsLimited
	lt.MaxDays = req.MaxDays
	lt.RequiresDocument = req.RequiresDocument

	if err := qtx.Update(ctx, lt); err != nil {
		s.logger.Error("update leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	return mapToResponse(*lt), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {

	// Leave type yang masih direferensikan request tidak boleh dihapus.
	inUse, err := s.repo.CountReferencingRequests(ctx, companyID, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return leavetypeerrors.ErrLeaveTypeInUse
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete leave type failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx, companyID)
	s.logger.Info("delete leave type success", zap.String("leave_type_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetLeaveTypeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate leave type options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:               lt.ID.String(),
		CompanyID:        lt.CompanyID.String(),
		Name:             lt.Name,
		Category:         lt.Category,
		IsPaid:           lt.IsPaid,
		IsLimited:        lt.IsLimited,
		MaxDays:          lt.MaxDays,
		RequiresDocument: lt.RequiresDocument,
	}
}
