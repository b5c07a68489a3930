package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go-tracking/internal/config"
	"go-tracking/internal/middleware"
	"go-tracking/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the stores, mounts every module on router and starts the
// background loops (hub, broadcaster janitor, reaper) bound to ctx. The
// returned cleanup closes the connections once ctx is done.
func BuildApp(ctx context.Context, router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(ctx, gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, running without cache, idempotency or reaper lock")
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L().Named("http")),
		middleware.CORS(cfg.CORSOrigin),
	)
	router.GET("/healthz", healthz(gormDB, rdb))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := registerModules(ctx, router, cfg, sqlDB, gormDB, rdb); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}
	return cleanup, nil
}

func healthz(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok"}
		status := http.StatusOK

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["database"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
		if rdb != nil {
			checks["redis"] = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				checks["redis"] = fmt.Sprintf("unavailable: %v", err)
				status = http.StatusServiceUnavailable
			}
		}
		c.JSON(status, checks)
	}
}
