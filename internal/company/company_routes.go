package company

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
	companies := r.Group("/companies")

	companies.Use(middleware.AuthMiddleware())

	{
		companies.GET("", middleware.RBACAuthorize(rbacService, "company", "read"), h.GetAll)
		companies.POST("", middleware.RoleMiddleware("ADMIN"), middleware.RBACAuthorize(rbacService, "company", "create"), h.Create)
		companies.GET("/:id", middleware.RBACAuthorize(rbacService, "company", "read"), h.GetById)
		companies.PUT("/:id", middleware.RBACAuthorize(rbacService, "company", "update"), h.Update)
		companies.DELETE("/:id", middleware.RoleMiddleware("ADMIN"), middleware.RBACAuthorize(rbacService, "company", "delete"), h.Delete)
	}
}
