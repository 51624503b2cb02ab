package leavebalance_test

import (
	"context"
	"database/sql"
	"testing"

	"hrconsole/internal/leavebalance"
	"hrconsole/internal/leavetype"
	"hrconsole/internal/shared/listquery"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBalanceRepository struct {
	createFn                func(ctx context.Context, balance *leavebalance.LeaveBalance) error
	findByEmployeeAndYearFn func(ctx context.Context, companyID, employeeID string, year int) ([]leavebalance.LeaveBalance, error)
	findByScopeFn           func(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error)
	incrementUsedFn         func(ctx context.Context, companyID, employeeID, leaveTypeID string, year int, delta float64) error
	setUsedFn               func(ctx context.Context, companyID, employeeID, leaveTypeID string, year int, used float64) error
	sumApprovedDaysFn       func(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (float64, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) leavebalance.Repository { return f }

func (f *fakeBalanceRepository) Create(ctx context.Context, balance *leavebalance.LeaveBalance) error {
	if f.createFn != nil {
		return f.createFn(ctx, balance)
	}
	return nil
}

func (f *fakeBalanceRepository) FindByEmployeeAndYear(ctx context.Context, companyID, employeeID string, year int) ([]leavebalance.LeaveBalance, error) {
	if f.findByEmployeeAndYearFn != nil {
		return f.findByEmployeeAndYearFn(ctx, companyID, employeeID, year)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) FindByScope(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error) {
	if f.findByScopeFn != nil {
		return f.findByScopeFn(ctx, companyID, employeeID, leaveTypeID, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) IncrementUsed(ctx context.Context, companyID, employeeID, leaveTypeID string, year int, delta float64) error {
	if f.incrementUsedFn != nil {
		return f.incrementUsedFn(ctx, companyID, employeeID, leaveTypeID, year, delta)
	}
	return nil
}

func (f *fakeBalanceRepository) SetUsed(ctx context.Context, companyID, employeeID, leaveTypeID string, year int, used float64) error {
	if f.setUsedFn != nil {
		return f.setUsedFn(ctx, companyID, employeeID, leaveTypeID, year, used)
	}
	return nil
}

func (f *fakeBalanceRepository) SumApprovedDays(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (float64, error) {
	if f.sumApprovedDaysFn != nil {
		return f.sumApprovedDaysFn(ctx, companyID, employeeID, leaveTypeID, year)
	}
	return 0, nil
}

type fakeLeaveTypeRepository struct {
	findAllByCompanyFn func(ctx context.Context, companyID string) ([]leavetype.LeaveType, error)
}

func (f *fakeLeaveTypeRepository) WithTx(tx *sql.Tx) leavetype.Repository { return f }
func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	return nil
}
func (f *fakeLeaveTypeRepository) FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]leavetype.LeaveType, int64, error) {
	return nil, 0, nil
}
func (f *fakeLeaveTypeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]leavetype.LeaveType, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}
func (f *fakeLeaveTypeRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*leavetype.LeaveType, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLeaveTypeRepository) CountReferencingRequests(ctx context.Context, companyID, leaveTypeID string) (int64, error) {
	return 0, nil
}
func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	return nil
}
func (f *fakeLeaveTypeRepository) Delete(ctx context.Context, companyID string, id string) error {
	return nil
}

type balanceServiceDeps struct {
	db            *sql.DB
	sqlMock       sqlmock.Sqlmock
	service       leavebalance.Service
	repo          *fakeBalanceRepository
	leaveTypeRepo *fakeLeaveTypeRepository
}

func setupBalanceServiceTest(t *testing.T) *balanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeBalanceRepository{}
	leaveTypeRepo := &fakeLeaveTypeRepository{}
	svc := leavebalance.NewService(db, repo, leaveTypeRepo)

	return &balanceServiceDeps{
		db:            db,
		sqlMock:       sqlMock,
		service:       svc,
		repo:          repo,
		leaveTypeRepo: leaveTypeRepo,
	}
}

func TestLeaveBalanceService_GetByEmployee(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()

	t.Run("success remaining may be negative", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByEmployeeAndYearFn = func(ctx context.Context, cID, eID string, year int) ([]leavebalance.LeaveBalance, error) {
			assert.Equal(t, 2025, year)
			return []leavebalance.LeaveBalance{
				{
					CompanyID:   companyID,
					EmployeeID:  employeeID,
					LeaveTypeID: leaveTypeID,
					Year:        2025,
					TotalDays:   12,
					UsedDays:    14,
					LeaveType: &leavebalance.BalanceLeaveType{
						ID:       leaveTypeID,
						Name:     "Cuti Tahunan",
						Category: leavetype.CategoryAnnual,
					},
				},
			}, nil
		}

		res, err := deps.service.GetByEmployee(ctx, companyID.String(), employeeID.String(), 2025)

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, -2.0, res[0].RemainingDays)
		assert.Equal(t, "Cuti Tahunan", res[0].LeaveTypeName)
	})

	t.Run("success zero year defaults to the current year", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		var askedYear int
		deps.repo.findByEmployeeAndYearFn = func(ctx context.Context, cID, eID string, year int) ([]leavebalance.LeaveBalance, error) {
			askedYear = year
			return nil, nil
		}

		_, err := deps.service.GetByEmployee(ctx, companyID.String(), employeeID.String(), 0)

		assert.NoError(t, err)
		assert.NotZero(t, askedYear)
	})
}

func TestLeaveBalanceService_EnsureYear(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()
	annualID := uuid.New()
	sickID := uuid.New()

	maxDays := 12
	companyTypes := []leavetype.LeaveType{
		{ID: annualID, CompanyID: companyID, Name: "Cuti Tahunan", Category: leavetype.CategoryAnnual, IsLimited: true, MaxDays: &maxDays},
		{ID: sickID, CompanyID: companyID, Name: "Cuti Sakit", Category: leavetype.CategoryOther, IsLimited: false},
	}

	t.Run("success seeds quota rows for limited types only", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		deps.leaveTypeRepo.findAllByCompanyFn = func(ctx context.Context, cID string) ([]leavetype.LeaveType, error) {
			return companyTypes, nil
		}

		var created []leavebalance.LeaveBalance
		deps.repo.createFn = func(ctx context.Context, balance *leavebalance.LeaveBalance) error {
			created = append(created, *balance)
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		err := deps.service.EnsureYear(ctx, companyID.String(), employeeID.String(), 2025)

		assert.NoError(t, err)
		assert.Len(t, created, 1)
		assert.Equal(t, annualID, created[0].LeaveTypeID)
		assert.Equal(t, 12.0, created[0].TotalDays)
		assert.Equal(t, 0.0, created[0].UsedDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success idempotent when the row already exists", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		deps.leaveTypeRepo.findAllByCompanyFn = func(ctx context.Context, cID string) ([]leavetype.LeaveType, error) {
			return companyTypes, nil
		}
		deps.repo.findByScopeFn = func(ctx context.Context, cID, eID, ltID string, year int) (*leavebalance.LeaveBalance, error) {
			return &leavebalance.LeaveBalance{}, nil
		}

		createdCount := 0
		deps.repo.createFn = func(ctx context.Context, balance *leavebalance.LeaveBalance) error {
			createdCount++
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		err := deps.service.EnsureYear(ctx, companyID.String(), employeeID.String(), 2025)

		assert.NoError(t, err)
		assert.Zero(t, createdCount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveBalanceService_Reconcile(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := uuid.NewString()
	leaveTypeID := uuid.NewString()

	t.Run("success sets used days from approved sum", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		deps.repo.sumApprovedDaysFn = func(ctx context.Context, cID, eID, ltID string, year int) (float64, error) {
			return 7.5, nil
		}
		deps.repo.findByScopeFn = func(ctx context.Context, cID, eID, ltID string, year int) (*leavebalance.LeaveBalance, error) {
			return &leavebalance.LeaveBalance{TotalDays: 12, UsedDays: 5}, nil
		}

		var setTo float64
		deps.repo.setUsedFn = func(ctx context.Context, cID, eID, ltID string, year int, used float64) error {
			setTo = used
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		err := deps.service.Reconcile(ctx, companyID, employeeID, leaveTypeID, 2025)

		assert.NoError(t, err)
		assert.Equal(t, 7.5, setTo)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success no balance row is a no-op", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		setCalled := false
		deps.repo.setUsedFn = func(ctx context.Context, cID, eID, ltID string, year int, used float64) error {
			setCalled = true
			return nil
		}

		err := deps.service.Reconcile(ctx, companyID, employeeID, leaveTypeID, 2025)

		assert.NoError(t, err)
		assert.False(t, setCalled)
	})

	t.Run("negative sum failure propagates", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		deps.repo.sumApprovedDaysFn = func(ctx context.Context, cID, eID, ltID string, year int) (float64, error) {
			return 0, assert.AnError
		}

		err := deps.service.Reconcile(ctx, companyID, employeeID, leaveTypeID, 2025)

		assert.ErrorIs(t, err, assert.AnError)
	})
}
