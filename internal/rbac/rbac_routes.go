package rbac

import (
	"go-tracking/internal/middleware"
	"go-tracking/internal/shared/token"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, tokens *token.Manager) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(tokens))
	{
		group.GET("/permissions", h.MyPermissions)
	}
}
