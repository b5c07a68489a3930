package realtime

import (
	"go-tracking/internal/middleware"
	"go-tracking/internal/rbac"
	"go-tracking/internal/shared/token"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, tokens *token.Manager) {
	r.GET("/ws/admin",
		middleware.WebsocketAuth(tokens),
		middleware.RBACAuthorize(rbacService, "live", "subscribe"),
		h.Serve,
	)
}
