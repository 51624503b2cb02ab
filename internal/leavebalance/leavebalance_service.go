package leavebalance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hrconsole/internal/leavetype"
	"hrconsole/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavebalance_service.go -destination=mock/leavebalance_service_mock.go -package=mock
type Service interface {
	GetByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalanceResponse, error)
	EnsureYear(ctx context.Context, companyID, employeeID string, year int) error
	Reconcile(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) error
}

type service struct {
	db            *sql.DB
	repo          Repository
	leaveTypeRepo leavetype.Repository
	logger        *zap.Logger
}

func NewService(db *sql.DB, repo Repository, leaveTypeRepo leavetype.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		leaveTypeRepo: leaveTypeRepo,
		logger:        l}
}

func (s *service) GetByEmployee(
	ctx context.Context,
	companyID, employeeID string,
	year int,
) ([]LeaveBalanceResponse, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	balances, err := s.repo.FindByEmployeeAndYear(ctx, companyID, employeeID, year)
	if err != nil {
		s.logger.Error("get leave balances failed", zap.Error(err))
		return nil, err
	}

	res := make([]LeaveBalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = mapToResponse(b)
	}
	return res, nil
}

// EnsureYear membuat baris saldo untuk semua leave type berkuota yang belum
// punya baris di tahun tersebut. Idempotent, aman dipanggil ulang dari consumer.
func (s *service) EnsureYear(
	ctx context.Context,
	companyID, employeeID string,
	year int,
) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return apperror.ErrInvalidInput
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return apperror.ErrInvalidInput
	}

	types, err := s.leaveTypeRepo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	for _, lt := range types {
		if !lt.IsLimited || lt.MaxDays == nil {
			continue
		}

		_, err := qtx.FindByScope(ctx, companyID, employeeID, lt.ID.String(), year)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		balance := &LeaveBalance{
			ID:          uuid.New(),
			CompanyID:   companyUUID,
			EmployeeID:  employeeUUID,
			LeaveTypeID: lt.ID,
			Year:        year,
			TotalDays:   float64(*lt.MaxDays),
			UsedDays:    0,
		}
		if err := qtx.Create(ctx, balance); err != nil {
			s.logger.Error("ensure year balance create failed",
				zap.String("employee_id", employeeID),
				zap.String("leave_type_id", lt.ID.String()),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("ensure year balances done",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
	)
	return nil
}

// Reconcile menghitung ulang used_days dari jumlah request APPROVED.
// Dipanggil consumer setelah event lifecycle, hasilnya konvergen walau
// event diproses lebih dari sekali.
func (s *service) Reconcile(
	ctx context.Context,
	companyID, employeeID, leaveTypeID string,
	year int,
) error {
	used, err := s.repo.SumApprovedDays(ctx, companyID, employeeID, leaveTypeID, year)
	if err != nil {
		s.logger.Error("reconcile sum approved failed", zap.Error(err))
		return err
	}

	_, err = s.repo.FindByScope(ctx, companyID, employeeID, leaveTypeID, year)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Tidak ada baris saldo berarti leave type tanpa kuota, tidak ada
		// yang perlu direkonsiliasi.
		return nil
	}
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.SetUsed(ctx, companyID, employeeID, leaveTypeID, year, used); err != nil {
		s.logger.Error("reconcile set used failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("leave balance reconciled",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", leaveTypeID),
		zap.Int("year", year),
		zap.Float64("used_days", used),
	)
	return nil
}

func mapToResponse(b LeaveBalance) LeaveBalanceResponse {
	resp := LeaveBalanceResponse{
		LeaveTypeID:   b.LeaveTypeID.String(),
		Year:          b.Year,
		TotalDays:     b.TotalDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.Remaining(),
	}
	if b.LeaveType != nil {
		resp.LeaveTypeName = b.LeaveType.Name
		resp.Category = b.LeaveType.Category
	}
	return resp
}
