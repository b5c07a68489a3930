package app

import (
	"context"
	"database/sql"
	"time"

	"go-tracking/internal/auth"
	"go-tracking/internal/config"
	"go-tracking/internal/dashboard"
	"go-tracking/internal/employee"
	"go-tracking/internal/geo"
	"go-tracking/internal/location"
	"go-tracking/internal/messaging/kafka"
	"go-tracking/internal/middleware"
	"go-tracking/internal/rbac"
	"go-tracking/internal/rbac/infra"
	"go-tracking/internal/realtime"
	"go-tracking/internal/report"
	"go-tracking/internal/session"
	"go-tracking/internal/shared/counter"
	"go-tracking/internal/shared/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const (
	idempotencyTTL = 24 * time.Hour
	limiterIdleTTL = 15 * time.Minute
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	tokens := token.NewManager(cfg.JWTSecret, 15*time.Minute, 7*24*time.Hour)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(rbac.NewRepository(), enforcer)
	if err != nil {
		return err
	}

	// --- Live feed ---
	hub := realtime.NewHub()
	broadcaster := realtime.NewBroadcaster(hub, realtime.BroadcasterConfig{
		Throttle: cfg.Tracking.BroadcastThrottle,
		IdleTTL:  cfg.Tracking.ThrottleIdleTTL,
	})
	go hub.Run(ctx)
	go broadcaster.Run(ctx)

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	locationRepo := location.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	reportRepo := report.NewRepository(gormDB)
	sessionRepo := session.NewRepository(gormDB)

	// --- Services ---
	filter := geo.NewFilter(cfg.Tracking.DistanceThresholdMeters, cfg.Tracking.TimeThreshold)
	authService := auth.NewService(authRepo, employeeRepo, tokens)
	dashboardService := dashboard.NewService(dashboardRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb)
	locationService := location.NewService(locationRepo, sessionRepo, filter, loc, broadcaster)
	reportService := report.NewService(reportRepo, loc)
	sessionService := session.NewService(db, sessionRepo, outboxRepo, broadcaster)

	reaper := session.NewReaper(sessionService, rdb, cfg.Tracking.ReaperInterval, cfg.Tracking.AutoOffTimeout)
	go reaper.Run(ctx)

	// --- Rate limits ---
	ipLimiter := middleware.NewKeyRateLimiter(rate.Every(12*time.Second), 5)
	userLimiter := middleware.NewKeyRateLimiter(rate.Limit(10), 30)
	ingestLimiter := middleware.NewKeyRateLimiter(rate.Limit(2), 10)
	go pruneLimiters(ctx, ipLimiter, userLimiter, ingestLimiter)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieOptions{
		Secure:     cfg.IsProduction(),
		AccessTTL:  tokens.AccessTTL(),
		RefreshTTL: tokens.RefreshTTL(),
	})
	dashboardHandler := dashboard.NewHandler(dashboardService)
	employeeHandler := employee.NewHandler(employeeService)
	locationHandler := location.NewHandler(locationService)
	rbacHandler := rbac.NewHandler(rbacService)
	realtimeHandler := realtime.NewHandler(hub, locationService, cfg.CORSOrigin)
	reportHandler := report.NewHandler(reportService)
	sessionHandler := session.NewHandler(sessionService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService, tokens, ipLimiter, userLimiter)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService, tokens, cfg.Tracking.StoreTimeout)
		employee.RegisterRoutes(api, employeeHandler, rbacService, tokens, userLimiter)
		location.RegisterRoutes(api, locationHandler, location.RouteOptions{
			Tokens:         tokens,
			RBAC:           rbacService,
			Limiter:        ingestLimiter,
			Redis:          rdb,
			StoreTimeout:   cfg.Tracking.StoreTimeout,
			IdempotencyTTL: idempotencyTTL,
		})
		rbac.RegisterRoutes(api, rbacHandler, tokens)
		realtime.RegisterRoutes(api, realtimeHandler, rbacService, tokens)
		report.RegisterRoutes(api, reportHandler, rbacService, tokens, cfg.Tracking.StoreTimeout)
		session.RegisterRoutes(api, sessionHandler, rbacService, tokens, cfg.Tracking.StoreTimeout)
	}

	zap.L().Named("app").Info("modules registered",
		zap.Duration("auto_off_timeout", cfg.Tracking.AutoOffTimeout),
		zap.String("timezone", loc.String()),
	)
	return nil
}

func pruneLimiters(ctx context.Context, limiters ...*middleware.KeyRateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, l := range limiters {
				l.Prune(limiterIdleTTL)
			}
		}
	}
}
