package leavetype

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
	leaveTypes := r.Group("/leave-types")

	leaveTypes.Use(middleware.AuthMiddleware())

	{
		leaveTypes.GET("", middleware.RBACAuthorize(rbacService, "leave_type", "read"), h.GetAll)
		leaveTypes.GET("/options", middleware.RBACAuthorize(rbacService, "leave_type", "read"), h.GetOptions)
		leaveTypes.POST("", middleware.RBACAuthorize(rbacService, "leave_type", "create"), h.Create)
		leaveTypes.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "read"), h.GetById)
		leaveTypes.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "update"), h.Update)
		leaveTypes.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "delete"), h.Delete)
	}
}
