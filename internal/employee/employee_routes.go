package employee

import (
	"go-tracking/internal/middleware"
	"go-tracking/internal/rbac"
	"go-tracking/internal/shared/token"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	tokens *token.Manager,
	limiter *middleware.KeyRateLimiter,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(tokens))
	if limiter != nil {
		employees.Use(middleware.RateLimitByUser(limiter))
	}
	{
		employees.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.List)
		employees.GET("/options", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetOptions)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetByID)
		employees.POST("", middleware.RBACAuthorize(rbacService, "employee", "create"), handler.Create)
		employees.PUT("/:id", middleware.RBACAuthorize(rbacService, "employee", "update"), handler.Update)
		employees.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "employee", "update"), handler.UpdateStatus)
		employees.DELETE("/:id", middleware.RBACAuthorize(rbacService, "employee", "delete"), handler.Delete)
	}
}
