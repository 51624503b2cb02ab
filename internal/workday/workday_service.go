package workday

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hrconsole/internal/shared/listquery"
	workdayerrors "hrconsole/internal/workday/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=workday_service.go -destination=mock/workday_service_mock.go -package=mock
type Service interface {
	CreateHoliday(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error)
	GetHolidays(ctx context.Context, companyID string, params listquery.Params) ([]HolidayResponse, int64, error)
	GetHolidayByID(ctx context.Context, companyID, id string) (HolidayResponse, error)
	UpdateHoliday(ctx context.Context, companyID, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, companyID, id string) error

	Calculate(ctx context.Context, companyID string, start, end time.Time, startFullDay, finishFullDay bool) (float64, error)
}

type service struct {
	db     *sql.DB
	repo   HolidayRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo HolidayRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("workday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workday.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateHoliday(
	ctx context.Context,
	companyID string,
	req CreateHolidayRequest,
) (HolidayResponse, error) {

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return HolidayResponse{}, workdayerrors.ErrInvalidDateFormat
	}
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return HolidayResponse{}, workdayerrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	holiday := &Holiday{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Name:      req.Name,
		Date:      date,
	}

	if err := qtx.Create(ctx, holiday); err != nil {
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return HolidayResponse{}, err
	}

	return mapHolidayToResponse(*holiday), nil
}

func (s *service) GetHolidays(
	ctx context.Context,
	companyID string,
	params listquery.Params,
) ([]HolidayResponse, int64, error) {

	holidays, total, err := s.repo.FindPageByCompany(ctx, companyID, params)
	if err != nil {
		return nil, 0, err
	}

	res := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		res[i] = mapHolidayToResponse(h)
	}
	return res, total, nil
}

func (s *service) GetHolidayByID(ctx context.Context, companyID, id string) (HolidayResponse, error) {
	holiday, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, workdayerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}
	return mapHolidayToResponse(*holiday), nil
}

func (s *service) UpdateHoliday(
	ctx context.Context,
	companyID, id string,
	req UpdateHolidayRequest,
) (HolidayResponse, error) {

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return HolidayResponse{}, workdayerrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	holiday, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, workdayerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}

	holiday.Name = req.Name
	holiday.Date = date

	if err := qtx.Update(ctx, holiday); err != nil {
		return HolidayResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return HolidayResponse{}, err
	}

	return mapHolidayToResponse(*holiday), nil
}

func (s *service) DeleteHoliday(ctx context.Context, companyID, id string) error {
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

// Calculate menghitung jumlah hari kerja inklusif antara start dan end.
// Sabtu, Minggu, dan tanggal libur perusahaan tidak dihitung. Flag half-day
// mengurangi 0.5 hari pada ujung rentang yang bersangkutan, dengan hasil
// minimum 0.5 selama masih ada hari kerja dalam rentang.
func (s *service) Calculate(
	ctx context.Context,
	companyID string,
	start, end time.Time,
	startFullDay, finishFullDay bool,
) (float64, error) {

	if end.Before(start) {
		return 0, workdayerrors.ErrInvalidDateRange
	}

	holidayDates, err := s.repo.FindDatesInRange(ctx, companyID, start, end)
	if err != nil {
		// Mode degradasi: kalender libur tidak terbaca, pakai hitungan hari
		// kalender inklusif supaya pengajuan tetap bisa jalan.
		s.logger.Warn("calculate working days fetch holidays failed, using calendar-day fallback",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return calendarDays(start, end, startFullDay, finishFullDay), nil
	}

	holidays := make(map[string]struct{}, len(holidayDates))
	for _, d := range holidayDates {
		holidays[d.Format(dateLayout)] = struct{}{}
	}

	total := 0.0
	startCounted := false
	endCounted := false

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !isWorkingDay(d, holidays) {
			continue
		}
		total++
		if d.Equal(start) {
			startCounted = true
		}
		if d.Equal(end) {
			endCounted = true
		}
	}

	if total == 0 {
		return 0, nil
	}

	if !startFullDay && startCounted {
		total -= 0.5
	}
	if !finishFullDay && endCounted {
		total -= 0.5
	}
	if total < 0.5 {
		total = 0.5
	}

	return total, nil
}

// calendarDays menghitung hari kalender inklusif tanpa memandang akhir pekan
// dan hari libur. Hanya dipakai sebagai fallback Calculate.
func calendarDays(start, end time.Time, startFullDay, finishFullDay bool) float64 {
	total := 0.0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		total++
	}

	if !startFullDay {
		total -= 0.5
	}
	if !finishFullDay {
		total -= 0.5
	}
	if total < 0.5 {
		total = 0.5
	}
	return total
}

func isWorkingDay(d time.Time, holidays map[string]struct{}) bool {
	if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		return false
	}
	_, isHoliday := holidays[d.Format(dateLayout)]
	return !isHoliday
}

func mapHolidayToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID.String(),
		CompanyID: h.CompanyID.String(),
		Name:      h.Name,
		Date:      h.Date.Format(dateLayout),
	}
}
