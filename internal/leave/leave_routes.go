package leave

import (
	"hrconsole/internal/middleware"
	"hrconsole/internal/rbac"

	"github.com/gin-gonic/gin"

	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leave-requests")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetAll)
		leaves.GET("/my", handler.GetMine)
		leaves.GET("/:id", handler.GetById)

		leaves.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.Idempotency(rdb),
			handler.Submit,
		)

		leaves.PUT("/:id", handler.Update)

		leaves.POST("/:id/approve",
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			middleware.Idempotency(rdb),
			handler.Approve,
		)
		leaves.POST("/:id/reject",
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			handler.Reject,
		)
		leaves.POST("/:id/cancel",
			handler.Cancel,
		)
	}
}
