package dashboard

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
	dash := r.Group("/dashboard")

	dash.Use(middleware.AuthMiddleware())

	{
		dash.GET("/summary",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "dashboard", "read"),
			h.GetSummary,
		)
	}
}
