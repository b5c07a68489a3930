package report

import (
	"go-tracking/internal/middleware"
	"go-tracking/internal/rbac"
	"go-tracking/internal/shared/token"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, tokens *token.Manager, timeout time.Duration) {
	reports := r.Group("/reports")
	reports.Use(
		middleware.AuthMiddleware(tokens),
		middleware.RequestTimeout(timeout),
		middleware.RBACAuthorize(rbacService, "report", "read"),
	)
	{
		reports.GET("/daily/:employeeId", h.Daily)
		reports.GET("/range/:employeeId", h.Range)
	}
}
