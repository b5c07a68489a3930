package session

import (
	"go-tracking/internal/middleware"
	"go-tracking/internal/rbac"
	"go-tracking/internal/shared/token"
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the session endpoints under /location, next to the
// ingestion routes.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, tokens *token.Manager, storeTimeout time.Duration) {
	loc := r.Group("/location")
	loc.Use(middleware.AuthMiddleware(tokens), middleware.RequestTimeout(storeTimeout))
	{
		own := loc.Group("", middleware.RequireEmployee())
		own.POST("/on", middleware.RBACAuthorize(rbacService, "session", "write"), h.Start)
		own.POST("/off", middleware.RBACAuthorize(rbacService, "session", "write"), h.Stop)
		own.GET("/status", middleware.RBACAuthorize(rbacService, "session", "write"), h.Status)

		loc.GET("/sessions/:employeeId", middleware.RBACAuthorize(rbacService, "session", "read"), h.History)
	}
}
