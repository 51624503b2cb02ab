package dashboard_test

import (
	"context"
	"testing"
	"time"

	"hrconsole/internal/dashboard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeDashboardRepository struct {
	countEmployeesFn        func(ctx context.Context, companyID string) (int64, error)
	countRequestsByStatusFn func(ctx context.Context, companyID, status string) (int64, error)
	countApprovedInYearFn   func(ctx context.Context, companyID string, year int) (int64, error)
	countOnLeaveFn          func(ctx context.Context, companyID string, date time.Time) (int64, error)
	usageByTypeFn           func(ctx context.Context, companyID string, year int) ([]dashboard.LeaveTypeUsage, error)
}

func (f *fakeDashboardRepository) CountEmployees(ctx context.Context, companyID string) (int64, error) {
	if f.countEmployeesFn != nil {
		return f.countEmployeesFn(ctx, companyID)
	}
	return 0, nil
}

func (f *fakeDashboardRepository) CountRequestsByStatus(ctx context.Context, companyID, status string) (int64, error) {
	if f.countRequestsByStatusFn != nil {
		return f.countRequestsByStatusFn(ctx, companyID, status)
	}
	return 0, nil
}

func (f *fakeDashboardRepository) CountApprovedInYear(ctx context.Context, companyID string, year int) (int64, error) {
	if f.countApprovedInYearFn != nil {
		return f.countApprovedInYearFn(ctx, companyID, year)
	}
	return 0, nil
}

func (f *fakeDashboardRepository) CountOnLeave(ctx context.Context, companyID string, date time.Time) (int64, error) {
	if f.countOnLeaveFn != nil {
		return f.countOnLeaveFn(ctx, companyID, date)
	}
	return 0, nil
}

func (f *fakeDashboardRepository) UsageByType(ctx context.Context, companyID string, year int) ([]dashboard.LeaveTypeUsage, error) {
	if f.usageByTypeFn != nil {
		return f.usageByTypeFn(ctx, companyID, year)
	}
	return nil, nil
}

func TestDashboardService_GetSummary(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()

	t.Run("success aggregates all counters", func(t *testing.T) {
		repo := &fakeDashboardRepository{
			countEmployeesFn: func(ctx context.Context, cID string) (int64, error) {
				assert.Equal(t, companyID, cID)
				return 57, nil
			},
			countRequestsByStatusFn: func(ctx context.Context, cID, status string) (int64, error) {
				assert.Equal(t, "PENDING", status)
				return 4, nil
			},
			countApprovedInYearFn: func(ctx context.Context, cID string, year int) (int64, error) {
				assert.Equal(t, time.Now().Year(), year)
				return 130, nil
			},
			countOnLeaveFn: func(ctx context.Context, cID string, date time.Time) (int64, error) {
				return 3, nil
			},
			usageByTypeFn: func(ctx context.Context, cID string, year int) ([]dashboard.LeaveTypeUsage, error) {
				return []dashboard.LeaveTypeUsage{
					{LeaveTypeID: uuid.NewString(), LeaveTypeName: "Cuti Tahunan", ApprovedDays: 88.5, RequestCount: 40},
				}, nil
			},
		}
		svc := dashboard.NewService(repo, nil)

		resp, err := svc.GetSummary(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, int64(57), resp.Headcount)
		assert.Equal(t, int64(4), resp.PendingRequests)
		assert.Equal(t, int64(130), resp.ApprovedThisYear)
		assert.Equal(t, int64(3), resp.OnLeaveToday)
		assert.Len(t, resp.UsageByType, 1)
		assert.Equal(t, 88.5, resp.UsageByType[0].ApprovedDays)
	})

	t.Run("negative repository failure propagates", func(t *testing.T) {
		repo := &fakeDashboardRepository{
			countEmployeesFn: func(ctx context.Context, cID string) (int64, error) {
				return 0, assert.AnError
			},
		}
		svc := dashboard.NewService(repo, nil)

		_, err := svc.GetSummary(ctx, companyID)

		assert.ErrorIs(t, err, assert.AnError)
	})
}
