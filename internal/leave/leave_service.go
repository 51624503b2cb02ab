package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hrconsole/internal/events"
	leaveerrors "hrconsole/internal/leave/errors"
	"hrconsole/internal/leavebalance"
	"hrconsole/internal/leavetype"
	"hrconsole/internal/messaging/kafka"
	"hrconsole/internal/shared/contextutil"
	"hrconsole/internal/shared/counter"
	"hrconsole/internal/shared/listquery"
	"hrconsole/internal/workday"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, companyID, actorID, actorEmployeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	Update(ctx context.Context, companyID, actorEmployeeID, id string, privileged bool, req UpdateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string, force bool) (LeaveResponse, error)
	Reject(ctx context.Context, companyID, actorID, id, reason string) (LeaveResponse, error)
	Cancel(ctx context.Context, companyID, actorID, actorEmployeeID, id, reason string, privileged bool) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID string, params listquery.Params) ([]LeaveResponse, int64, error)
	GetMine(ctx context.Context, companyID, employeeID string, params listquery.Params) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	leaveTypeRepo leavetype.Repository
	balanceRepo   leavebalance.Repository
	workdaySvc    workday.Service
	counter       counter.Repository
	outbox        kafka.OutboxRepository
	logger        *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	leaveTypeRepo leavetype.Repository,
	balanceRepo leavebalance.Repository,
	workdaySvc workday.Service,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		leaveTypeRepo: leaveTypeRepo,
		balanceRepo:   balanceRepo,
		workdaySvc:    workdaySvc,
		counter:       counterRepo,
		outbox:        outboxRepo,
		logger:        l,
	}
}

func (s *service) Submit(ctx context.Context, companyID, actorID, actorEmployeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = actorEmployeeID
	}

	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	startFullDay := req.StartFullDay == nil || *req.StartFullDay
	finishFullDay := req.FinishFullDay == nil || *req.FinishFullDay

	lt, err := s.leaveTypeRepo.FindByIDAndCompany(ctx, companyID, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveTypeNotFound
		}
		return LeaveResponse{}, err
	}

	requestedDays, err := s.workdaySvc.Calculate(ctx, companyID, startDate, endDate, startFullDay, finishFullDay)
	if err != nil {
		return LeaveResponse{}, err
	}
	if requestedDays <= 0 {
		return LeaveResponse{}, leaveerrors.ErrZeroWorkingDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Error("submit leave employee company check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !belongs {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotInCompany
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, employeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("submit leave overlap detected",
			zap.String("employee_id", employeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	nextVal, err := s.counter.GetNextValue(ctx, companyID, counter.TypeLeaveRequestNumber)
	if err != nil {
		s.logger.Error("submit leave generate number failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:            uuid.New(),
		RequestNumber: fmt.Sprintf("LVR-%06d", nextVal),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		LeaveTypeID:   lt.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		StartFullDay:  startFullDay,
		FinishFullDay: finishFullDay,
		RequestedDays: requestedDays,
		Reason:        req.Reason,
		Status:        StatusPending,
		CreatedBy:     createdByUUID,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, l, "", "leave_request_submitted", rid); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", l.ID.String()),
		zap.String("request_number", l.RequestNumber),
		zap.Float64("requested_days", requestedDays),
	)

	return mapToResponse(*l), nil
}

// Update hanya boleh untuk request PENDING. Durasi dihitung ulang dari
// kalender kerja, status tidak pernah berubah lewat endpoint ini.
func (s *service) Update(ctx context.Context, companyID, actorEmployeeID, id string, privileged bool, req UpdateLeaveRequest) (LeaveResponse, error) {
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	lt, err := s.leaveTypeRepo.FindByIDAndCompany(ctx, companyID, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveTypeNotFound
		}
		return LeaveResponse{}, err
	}

	startFullDay := req.StartFullDay == nil || *req.StartFullDay
	finishFullDay := req.FinishFullDay == nil || *req.FinishFullDay

	requestedDays, err := s.workdaySvc.Calculate(ctx, companyID, startDate, endDate, startFullDay, finishFullDay)
	if err != nil {
		return LeaveResponse{}, err
	}
	if requestedDays <= 0 {
		return LeaveResponse{}, leaveerrors.ErrZeroWorkingDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !privileged && l.EmployeeID.String() != actorEmployeeID {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrEditOnlyPending
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, l.EmployeeID.String(), startDate, endDate, &id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l.LeaveTypeID = lt.ID
	l.StartDate = startDate
	l.EndDate = endDate
	l.StartFullDay = startFullDay
	l.FinishFullDay = finishFullDay
	l.RequestedDays = requestedDays
	l.Reason = req.Reason
	l.Employee = nil
	l.LeaveType = nil

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("update leave success",
		zap.String("leave_request_id", id),
		zap.Float64("requested_days", requestedDays),
	)

	return mapToResponse(*l), nil
}

// Approve memindahkan request PENDING ke APPROVED dan memotong saldo dalam
// transaksi yang sama. Saat saldo cuti tahunan tidak cukup, approve pertama
// ditolak dengan INSUFFICIENT_BALANCE; approver mengulang dengan force=true
// untuk tetap menyetujui (saldo boleh jadi negatif).
func (s *service) Approve(ctx context.Context, companyID, actorID, id string, force bool) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("approve leave invalid transition",
			zap.String("leave_request_id", id),
			zap.String("from_status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	year := l.StartDate.Year()
	balance, err := s.balanceRepo.FindByScope(ctx, companyID, l.EmployeeID.String(), l.LeaveTypeID.String(), year)
	balanceKnown := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("approve leave balance lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	// Pagar saldo hanya untuk cuti tahunan dengan saldo yang diketahui.
	if balanceKnown && !force &&
		l.LeaveType != nil && l.LeaveType.Category == leavetype.CategoryAnnual &&
		balance.Remaining() < l.RequestedDays {
		s.logger.Warn("approve leave insufficient balance",
			zap.String("leave_request_id", id),
			zap.Float64("remaining", balance.Remaining()),
			zap.Float64("requested", l.RequestedDays),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	now := time.Now().UTC()
	prevStatus := l.Status
	l.Status = StatusApproved
	l.ApprovedBy = &actorUUID
	l.ApprovedAt = &now
	l.Employee = nil
	l.LeaveType = nil

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if balanceKnown {
		btx := s.balanceRepo.WithTx(tx)
		if err := btx.IncrementUsed(ctx, companyID, l.EmployeeID.String(), l.LeaveTypeID.String(), year, l.RequestedDays); err != nil {
			s.logger.Error("approve leave balance increment failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := s.queueLifecycleEvent(ctx, tx, l, prevStatus, "leave_request_approved", rid); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("approve leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.Bool("force", force),
	)

	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id, reason string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	// Alasan berisi spasi saja lolos binding required, trim dulu.
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	prevStatus := l.Status
	l.Status = StatusRejected
	l.RejectedBy = &actorUUID
	l.RejectedAt = &now
	l.RejectionReason = &reason
	l.Employee = nil
	l.LeaveType = nil

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("reject leave persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, l, prevStatus, "leave_request_rejected", rid); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("reject leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
	)

	return mapToResponse(*l), nil
}

// Cancel berlaku untuk PENDING (oleh pemilik atau admin) dan APPROVED (oleh
// admin/manager). Membatalkan request APPROVED mengembalikan saldo yang
// sudah terpotong.
func (s *service) Cancel(ctx context.Context, companyID, actorID, actorEmployeeID, id, reason string, privileged bool) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrCancelReasonRequired
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if !privileged && l.EmployeeID.String() != actorEmployeeID {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}

	wasApproved := false
	switch l.Status {
	case StatusPending:
	case StatusApproved:
		if !privileged {
			return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
		}
		wasApproved = true
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	prevStatus := l.Status
	l.Status = StatusCancelled
	l.CancelledBy = &actorUUID
	l.CancelledAt = &now
	l.CancelReason = &reason
	l.Employee = nil
	l.LeaveType = nil

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if wasApproved {
		year := l.StartDate.Year()
		_, err := s.balanceRepo.FindByScope(ctx, companyID, l.EmployeeID.String(), l.LeaveTypeID.String(), year)
		if err == nil {
			btx := s.balanceRepo.WithTx(tx)
			if err := btx.IncrementUsed(ctx, companyID, l.EmployeeID.String(), l.LeaveTypeID.String(), year, -l.RequestedDays); err != nil {
				s.logger.Error("cancel leave balance release failed", zap.Error(err))
				return LeaveResponse{}, err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, err
		}
	}

	if err := s.queueLifecycleEvent(ctx, tx, l, prevStatus, "leave_request_cancelled", rid); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("from_status", prevStatus),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, params listquery.Params) ([]LeaveResponse, int64, error) {
	leaves, total, err := s.repo.FindPageByCompany(ctx, companyID, params)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) GetMine(ctx context.Context, companyID, employeeID string, params listquery.Params) ([]LeaveResponse, int64, error) {
	leaves, total, err := s.repo.FindPageByEmployee(ctx, companyID, employeeID, params)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) queueLifecycleEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest, fromStatus, eventType, rid string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveStatusChangedEvent{
		EventType:      eventType,
		RequestID:      rid,
		LeaveRequestID: l.ID.String(),
		RequestNumber:  l.RequestNumber,
		EmployeeID:     l.EmployeeID.String(),
		CompanyID:      l.CompanyID.String(),
		LeaveTypeID:    l.LeaveTypeID.String(),
		Year:           l.StartDate.Year(),
		FromStatus:     fromStatus,
		ToStatus:       l.Status,
		RequestedDays:  l.RequestedDays,
		OccurredAt:     time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal leave lifecycle event failed", zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("leave lifecycle outbox persist failed",
			zap.String("leave_request_id", l.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		RequestNumber: l.RequestNumber,
		CompanyID:     l.CompanyID.String(),
		EmployeeID:    l.EmployeeID.String(),
		LeaveTypeID:   l.LeaveTypeID.String(),
		StartDate:     l.StartDate.Format(dateLayout),
		EndDate:       l.EndDate.Format(dateLayout),
		StartFullDay:  l.StartFullDay,
		FinishFullDay: l.FinishFullDay,
		RequestedDays: l.RequestedDays,
		Reason:        l.Reason,
		Status:        l.Status,
		CreatedBy:     l.CreatedBy.String(),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	if l.LeaveType != nil {
		resp.LeaveTypeName = l.LeaveType.Name
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if l.RejectedBy != nil {
		v := l.RejectedBy.String()
		resp.RejectedBy = &v
	}
	if l.RejectedAt != nil {
		v := l.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &v
	}
	if l.CancelledBy != nil {
		v := l.CancelledBy.String()
		resp.CancelledBy = &v
	}
	if l.CancelledAt != nil {
		v := l.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	resp.CancelReason = l.CancelReason
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
