package workday

import (
	"net/http"
	"time"

	"hrconsole/internal/shared/apperror"
	"hrconsole/internal/shared/listquery"
	"hrconsole/internal/shared/response"
	workdayerrors "hrconsole/internal/workday/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("workday.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workday.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("workday request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreateHoliday(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.CreateHoliday(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetHolidays(c *gin.Context) {
	companyID := c.GetString("company_id")
	params := listquery.FromQuery(c, sortableColumns, []string{"name"})

	resp, total, err := h.service.GetHolidays(c.Request.Context(), companyID, params)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, params.Page, params.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetHolidayById(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetHolidayByID(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateHoliday(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req UpdateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.UpdateHoliday(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteHoliday(c *gin.Context) {
	companyID := c.GetString("company_id")

	if err := h.service.DeleteHoliday(c.Request.Context(), companyID, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) CalculateWorkingDays(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CalculateWorkingDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		h.writeServiceError(c, workdayerrors.ErrInvalidDateFormat)
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		h.writeServiceError(c, workdayerrors.ErrInvalidDateFormat)
		return
	}

	startFullDay := true
	if req.StartFullDay != nil {
		startFullDay = *req.StartFullDay
	}
	finishFullDay := true
	if req.FinishFullDay != nil {
		finishFullDay = *req.FinishFullDay
	}

	days, err := h.service.Calculate(c.Request.Context(), companyID, start, end, startFullDay, finishFullDay)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, CalculateWorkingDaysResponse{WorkingDays: days}, nil)
}
