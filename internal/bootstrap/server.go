package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Serve runs handler until ctx is cancelled, then drains in-flight requests.
// Websocket connections are hijacked and not tracked by Shutdown; the hub
// closes them when its own context ends.
func Serve(ctx context.Context, handler http.Handler, cfg ServerConfig, audit AuditLogger) error {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	logger := zap.L().Named("bootstrap.server")

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	audit.Log(context.Background(), AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "api server stopping",
		Meta:    map[string]any{"addr": server.Addr, "cause": context.Cause(ctx).Error()},
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	started := time.Now()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return err
	}
	logger.Info("http server stopped", zap.Duration("drain", time.Since(started)))
	return nil
}
