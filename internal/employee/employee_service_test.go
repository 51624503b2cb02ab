package employee_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"hrconsole/internal/employee"
	employeeerrors "hrconsole/internal/employee/errors"
	"hrconsole/internal/messaging/kafka"
	"hrconsole/internal/shared/listquery"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn                    func(tx *sql.Tx) employee.Repository
	createFn                    func(ctx context.Context, empl *employee.Employee) error
	findPageByCompanyFn         func(ctx context.Context, companyID string, params listquery.Params) ([]employee.Employee, int64, error)
	findOptionsByCompanyFn      func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findByIDAndCompanyFn        func(ctx context.Context, companyID string, id string) (*employee.Employee, error)
	getDepartmentIDByPositionFn func(ctx context.Context, companyID, positionID string) (string, error)
	updateFn                    func(ctx context.Context, empl *employee.Employee) error
	deleteFn                    func(ctx context.Context, companyID string, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindPageByCompany(ctx context.Context, companyID string, params listquery.Params) ([]employee.Employee, int64, error) {
	if f.findPageByCompanyFn != nil {
		return f.findPageByCompanyFn(ctx, companyID, params)
	}
	return nil, 0, nil
}

func (f *fakeEmployeeRepository) FindOptionsByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if f.findOptionsByCompanyFn != nil {
		return f.findOptionsByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) GetDepartmentIDByPosition(ctx context.Context, companyID, positionID string) (string, error) {
	if f.getDepartmentIDByPositionFn != nil {
		return f.getDepartmentIDByPositionFn(ctx, companyID, positionID)
	}
	return uuid.NewString(), nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, companyID string, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, companyID string, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, companyID, counterType)
	}
	return 42, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type employeeServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     employee.Service
	repo        *fakeEmployeeRepository
	counterRepo *fakeCounterRepository
	outboxRepo  *fakeOutboxRepository
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	counterRepo := &fakeCounterRepository{}
	outboxRepo := &fakeOutboxRepository{}
	svc := employee.NewServiceWithOutbox(db, repo, counterRepo, outboxRepo, nil)

	return &employeeServiceDeps{
		db:          db,
		sqlMock:     sqlMock,
		service:     svc,
		repo:        repo,
		counterRepo: counterRepo,
		outboxRepo:  outboxRepo,
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	positionID := uuid.NewString()

	validReq := employee.CreateEmployeeRequest{
		FullName:   "Budi Santoso",
		Email:      "budi@example.com",
		PositionID: positionID,
		HireDate:   "2025-02-01",
	}

	t.Run("success generates employee number and queues event", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(ctx, companyID, validReq)

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000042", resp.EmployeeNumber)
		assert.Equal(t, "ACTIVE", resp.EmploymentStatus)
		assert.Equal(t, "2025-02-01", resp.HireDate)
		assert.Len(t, deps.outboxRepo.created, 1)
		assert.Equal(t, "employee_created", deps.outboxRepo.created[0].EventType)
		assert.True(t, strings.HasPrefix(deps.outboxRepo.created[0].Topic, "hr.employee."))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success keeps provided employee number", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		counterCalled := false
		deps.counterRepo.getNextValueFn = func(ctx context.Context, cID string, counterType string) (int64, error) {
			counterCalled = true
			return 0, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		req := validReq
		req.EmployeeNumber = "EMP-CUSTOM-1"

		resp, err := deps.service.Create(ctx, companyID, req)

		assert.NoError(t, err)
		assert.Equal(t, "EMP-CUSTOM-1", resp.EmployeeNumber)
		assert.False(t, counterCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative position outside company", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.getDepartmentIDByPositionFn = func(ctx context.Context, cID, pID string) (string, error) {
			return "", nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, companyID, validReq)

		assert.ErrorIs(t, err, employeeerrors.ErrPositionNotFound)
		assert.Empty(t, deps.outboxRepo.created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate email maps to conflict", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, companyID, validReq)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid hire date", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		req := validReq
		req.HireDate = "01-02-2025"

		_, err := deps.service.Create(ctx, companyID, req)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()
	positionID := uuid.NewString()

	validReq := employee.UpdateEmployeeRequest{
		FullName:   "Budi Santoso",
		Email:      "budi@example.com",
		PositionID: positionID,
		HireDate:   "2025-02-01",
	}

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cID string, id string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:               employeeID,
				CompanyID:        companyID,
				FullName:         "Budi",
				Email:            "old@example.com",
				EmployeeNumber:   "EMP-000001",
				EmploymentStatus: "ACTIVE",
			}, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Update(ctx, companyID.String(), employeeID.String(), validReq)

		assert.NoError(t, err)
		assert.Equal(t, "Budi Santoso", resp.FullName)
		assert.Equal(t, "budi@example.com", resp.Email)
		assert.Equal(t, "EMP-000001", resp.EmployeeNumber)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee not found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Update(ctx, companyID.String(), employeeID.String(), validReq)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()

	t.Run("success without cache goes to the repository", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findOptionsByCompanyFn = func(ctx context.Context, cID string) ([]employee.Employee, error) {
			return []employee.Employee{
				{ID: uuid.New(), FullName: "Ani"},
				{ID: uuid.New(), FullName: "Budi"},
			}, nil
		}

		options, err := deps.service.GetOptions(ctx, companyID)

		assert.NoError(t, err)
		assert.Len(t, options, 2)
		assert.Equal(t, "Ani", options[0].FullName)
	})
}
