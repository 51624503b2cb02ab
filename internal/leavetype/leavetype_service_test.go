package leavetype_test

import (
	"context"
	"database/sql"
	"testing"

	"hrconsole/internal/leavetype"
	leavetypeerrors "hrconsole/internal/leavetype/errors"
	"hrconsole/internal/shared/listquery"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveTypeRepository struct {
	withTxFn                   func(tx *sql.Tx) leavetype.Repository
	createFn                   func(ctx context.Context, lt *leavetype.LeaveType) error
	findPageByCompanyFn        func(ctx context.Context, companyID string, params listquery.Params) ([]leavetype.LeaveType, int64, error)
	findAllByCompanyFn         func(ctx context.Context, companyID string) ([]leavetype.LeaveType, error)
	findByIDAndCompanyFn       func(ctx context.Context, companyID string, id string) (*leavetype.LeaveType, error)
	countReferencingRequestsFn func(ctx context.Context, companyID, leaveTypeID string) (int64, error)
	updateFn                   func(ctx context.Context, lt *leavetype.LeaveType) error
	deleteFn                   func(ctx context.Context, companyID string, id string) error
}

func (f *fakeLeaveTypeRepository) WithTx(tx *sql.Tx) leavetype.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]leavetype.LeaveType, int64, error) {
	if f.findPageByCompanyFn != nil {
		return f.findPageByCompanyFn(ctx, companyID, params)
	}
	return nil, 0, nil
}

func (f *fakeLeaveTypeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]leavetype.LeaveType, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*leavetype.LeaveType, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) CountReferencingRequests(ctx context.Context, companyID, leaveTypeID string) (int64, error) {
	if f.countReferencingRequestsFn != nil {
		return f.countReferencingRequestsFn(ctx, companyID, leaveTypeID)
	}
	return 0, nil
}

func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) Delete(ctx context.Context, companyID string, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

type leaveTypeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leavetype.Service
	repo    *fakeLeaveTypeRepository
}

func setupLeaveTypeServiceTest(t *testing.T) *leaveTypeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveTypeRepository{}
	svc := leavetype.NewService(db, repo, nil)

	return &leaveTypeServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()

	t.Run("success limited type with quota", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		maxDays := 12
		resp, err := deps.service.Create(ctx, companyID, leavetype.CreateLeaveTypeRequest{
			Name:      "Cuti Tahunan",
			Category:  leavetype.CategoryAnnual,
			IsLimited: true,
			MaxDays:   &maxDays,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Cuti Tahunan", resp.Name)
		assert.Equal(t, leavetype.CategoryAnnual, resp.Category)
		assert.True(t, resp.IsPaid)
		assert.NotNil(t, resp.MaxDays)
		assert.Equal(t, 12, *resp.MaxDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success category defaults to OTHER", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(ctx, companyID, leavetype.CreateLeaveTypeRequest{
			Name: "Cuti Menikah",
		})

		assert.NoError(t, err)
		assert.Equal(t, leavetype.CategoryOther, resp.Category)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative limited type without max days", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, companyID, leavetype.CreateLeaveTypeRequest{
			Name:      "Cuti Tahunan",
			IsLimited: true,
		})

		assert.ErrorIs(t, err, leavetypeerrors.ErrMaxDaysRequired)
	})
}

func TestLeaveTypeService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	leaveTypeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cID string, id string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{
				ID:        leaveTypeID,
				CompanyID: companyID,
				Name:      "Cuti Tahunan",
				Category:  leavetype.CategoryAnnual,
			}, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Update(ctx, companyID.String(), leaveTypeID.String(), leavetype.UpdateLeaveTypeRequest{
			Name: "Cuti Tahunan 2025",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Cuti Tahunan 2025", resp.Name)
		assert.Equal(t, leavetype.CategoryAnnual, resp.Category)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Update(ctx, companyID.String(), leaveTypeID.String(), leavetype.UpdateLeaveTypeRequest{
			Name: "Whatever",
		})

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveTypeService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	leaveTypeID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, cID string, id string) error {
			deleted = true
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		err := deps.service.Delete(ctx, companyID, leaveTypeID)

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative still referenced by leave requests", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		deps.repo.countReferencingRequestsFn = func(ctx context.Context, cID, ltID string) (int64, error) {
			return 4, nil
		}

		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, cID string, id string) error {
			deleted = true
			return nil
		}

		err := deps.service.Delete(ctx, companyID, leaveTypeID)

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeInUse)
		assert.False(t, deleted)
	})
}

func TestLeaveTypeService_GetOptions(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()

	t.Run("success without cache goes to the repository", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByCompanyFn = func(ctx context.Context, cID string) ([]leavetype.LeaveType, error) {
			return []leavetype.LeaveType{
				{ID: uuid.New(), Name: "Cuti Tahunan", Category: leavetype.CategoryAnnual},
				{ID: uuid.New(), Name: "Cuti Sakit", Category: leavetype.CategoryOther},
			}, nil
		}

		options, err := deps.service.GetOptions(ctx, companyID)

		assert.NoError(t, err)
		assert.Len(t, options, 2)
		assert.Equal(t, "Cuti Tahunan", options[0].Name)
		assert.Equal(t, leavetype.CategoryAnnual, options[0].Category)
	})
}
