package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-tracking/internal/app"
	"go-tracking/internal/bootstrap"
	"go-tracking/internal/config"
	"go-tracking/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// build dependency + routes
	cleanup, err := app.BuildApp(ctx, r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	err = bootstrap.Serve(ctx, r, bootstrap.ServerConfig{
		Port:         cfg.Port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, bootstrap.NewZapAuditLogger())
	stop()
	if err != nil {
		logger.Error("http server failed", zap.Error(err))
	}
}

func newLogger(cfg config.Config) *zap.Logger {
	build := zap.NewDevelopment
	if cfg.IsProduction() {
		build = zap.NewProduction
	}
	logger, err := build()
	if err != nil {
		panic(err)
	}
	return logger
}
