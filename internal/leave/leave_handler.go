package leave

import (
	"net/http"

	"hrconsole/internal/shared/apperror"
	"hrconsole/internal/shared/listquery"
	"hrconsole/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func isPrivilegedRole(c *gin.Context) bool {
	switch c.GetString("role") {
	case "ADMIN", "HR", "MANAGER":
		return true
	}
	return false
}

func (h *Handler) Submit(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	actorEmployeeID := c.GetString("employee_id")

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit leave validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	// Hanya role privileged yang boleh mengajukan atas nama orang lain.
	if req.EmployeeID != "" && req.EmployeeID != actorEmployeeID && !isPrivilegedRole(c) {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
			"Tidak boleh mengajukan cuti atas nama karyawan lain", nil)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), companyID, actorID, actorEmployeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorEmployeeID := c.GetString("employee_id")

	var req UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), companyID, actorEmployeeID, c.Param("id"), isPrivilegedRole(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	// Body opsional, default force=false.
	var req ApproveLeaveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
			return
		}
	}

	resp, err := h.service.Approve(c.Request.Context(), companyID, actorID, c.Param("id"), req.Force)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	var req RejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), companyID, actorID, c.Param("id"), req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	actorEmployeeID := c.GetString("employee_id")

	var req CancelLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Cancel(c.Request.Context(), companyID, actorID, actorEmployeeID,
		c.Param("id"), req.Reason, isPrivilegedRole(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")
	params := listquery.FromQuery(c, sortableColumns,
		[]string{"status", "employee_id", "leave_type_id"})

	resp, total, err := h.service.GetAll(c.Request.Context(), companyID, params)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, params.Page, params.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetMine(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")
	params := listquery.FromQuery(c, sortableColumns,
		[]string{"status", "leave_type_id"})

	resp, total, err := h.service.GetMine(c.Request.Context(), companyID, employeeID, params)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, params.Page, params.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetByID(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Karyawan biasa hanya boleh melihat request miliknya sendiri.
	if !isPrivilegedRole(c) && resp.EmployeeID != c.GetString("employee_id") {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
			"Leave request milik karyawan lain", nil)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
