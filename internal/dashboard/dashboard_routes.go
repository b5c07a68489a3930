package dashboard

import (
	"go-tracking/internal/middleware"
	"go-tracking/internal/rbac"
	"go-tracking/internal/shared/token"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, tokens *token.Manager, timeout time.Duration) {
	d := r.Group("/dashboard")
	d.Use(middleware.AuthMiddleware(tokens), middleware.RequestTimeout(timeout))
	d.GET("/stats", middleware.RBACAuthorize(rbacService, "dashboard", "read"), h.Stats)
}
