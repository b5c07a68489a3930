package auth

import (
	"go-tracking/internal/middleware"
	"go-tracking/internal/rbac"
	"go-tracking/internal/shared/token"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /auth. Login and refresh are limited per IP, the
// authenticated endpoints per user; nil limiters disable limiting.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	tokens *token.Manager,
	ipLimiter, userLimiter *middleware.KeyRateLimiter,
) {
	byIP := limit(ipLimiter, middleware.RateLimitByIP)
	byUser := limit(userLimiter, middleware.RateLimitByUser)

	auth := r.Group("/auth")
	{
		auth.POST("/login", byIP, handler.Login)
		auth.POST("/refresh", byIP, handler.RefreshToken)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(tokens), byUser, handler.Me)
		auth.POST("/register",
			middleware.AuthMiddleware(tokens),
			byUser,
			middleware.RBACAuthorize(rbacService, "user", "create"),
			handler.Register,
		)
	}
}

func limit(l *middleware.KeyRateLimiter, mw func(*middleware.KeyRateLimiter) gin.HandlerFunc) gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return mw(l)
}
