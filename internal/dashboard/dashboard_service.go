package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const summaryKeyPrefix = "dashboard:summary:"

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	GetSummary(ctx context.Context, companyID string) (SummaryResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l}
}

func (s *service) GetSummary(ctx context.Context, companyID string) (SummaryResponse, error) {
	cacheKey := summaryKeyPrefix + companyID

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp SummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.buildSummary(ctx, companyID)
		if err != nil {
			return SummaryResponse{}, err
		}

		// Dashboard boleh sedikit basi, TTL pendek saja.
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Minute)
			}
		}
		return resp, nil
	})
	if err != nil {
		return SummaryResponse{}, err
	}

	return v.(SummaryResponse), nil
}

func (s *service) buildSummary(ctx context.Context, companyID string) (SummaryResponse, error) {
	now := time.Now()
	year := now.Year()

	headcount, err := s.repo.CountEmployees(ctx, companyID)
	if err != nil {
		s.logger.Error("dashboard headcount failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	pending, err := s.repo.CountRequestsByStatus(ctx, companyID, "PENDING")
	if err != nil {
		s.logger.Error("dashboard pending count failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	approved, err := s.repo.CountApprovedInYear(ctx, companyID, year)
	if err != nil {
		s.logger.Error("dashboard approved count failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	onLeave, err := s.repo.CountOnLeave(ctx, companyID, now)
	if err != nil {
		s.logger.Error("dashboard on leave count failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	usage, err := s.repo.UsageByType(ctx, companyID, year)
	if err != nil {
		s.logger.Error("dashboard usage by type failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	return SummaryResponse{
		Headcount:        headcount,
		PendingRequests:  pending,
		ApprovedThisYear: approved,
		OnLeaveToday:     onLeave,
		UsageByType:      usage,
	}, nil
}
