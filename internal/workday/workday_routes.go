package workday

import (
	"hrconsole/internal/middleware"
	"hrconsole/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), h.GetHolidays)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "create"), h.CreateHoliday)
		holidays.GET("/:id", middleware.RBACAuthorize(rbacService, "holiday", "read"), h.GetHolidayById)
		holidays.PUT("/:id", middleware.RBACAuthorize(rbacService, "holiday", "update"), h.UpdateHoliday)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "delete"), h.DeleteHoliday)
	}

	// Kalkulator dipakai form pengajuan cuti untuk preview durasi.
	calc := r.Group("/leave-requests")
	calc.Use(middleware.AuthMiddleware())
	calc.POST("/calculate-working-days",
		middleware.RateLimitByUser(5, 20),
		h.CalculateWorkingDays,
	)
}
