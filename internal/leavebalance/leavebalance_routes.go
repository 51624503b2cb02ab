package leavebalance

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
	balances := r.Group("/leave-balances")

	balances.Use(middleware.AuthMiddleware())

	{
		// Karyawan selalu boleh melihat saldonya sendiri.
		balances.GET("/my", h.GetMine)

		balances.GET("/employee/:id",
			middleware.RBACAuthorize(rbacService, "leave_balance", "read"),
			h.GetByEmployee,
		)
	}
}
