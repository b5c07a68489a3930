package location

import (
	"go-tracking/internal/middleware"
	"go-tracking/internal/rbac"
	"go-tracking/internal/shared/token"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RouteOptions struct {
	Tokens         *token.Manager
	RBAC           rbac.Service
	Limiter        *middleware.KeyRateLimiter
	Redis          *redis.Client
	StoreTimeout   time.Duration
	IdempotencyTTL time.Duration
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler, opts RouteOptions) {
	loc := r.Group("/location")
	loc.Use(middleware.AuthMiddleware(opts.Tokens), middleware.RequestTimeout(opts.StoreTimeout))
	{
		ingest := loc.Group("",
			middleware.RequireEmployee(),
			middleware.RBACAuthorize(opts.RBAC, "location", "write"),
		)
		if opts.Limiter != nil {
			ingest.Use(middleware.RateLimitByUser(opts.Limiter))
		}
		ingest.POST("/track", h.Track)
		ingest.POST("/batch", middleware.Idempotency(opts.Redis, opts.IdempotencyTTL), h.Batch)

		loc.GET("/history/:employeeId", middleware.RBACAuthorize(opts.RBAC, "location", "read"), h.History)
		loc.GET("/sessions/snapshot", middleware.RBACAuthorize(opts.RBAC, "location", "read"), h.Snapshot)
	}
}
