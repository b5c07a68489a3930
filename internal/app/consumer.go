package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go-tracking/internal/config"
	"go-tracking/internal/events"
	"go-tracking/internal/messaging/kafka/consumer"
	"go-tracking/internal/report"
	"go-tracking/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const lifecycleGroupID = "go-tracking-daily-summary"

// RunConsumer keeps daily work summaries in step with closed sessions.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	reportService := report.NewService(report.NewRepository(gormDB), loc)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.SessionLifecycleTopic,
		GroupID:        lifecycleGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeSessionLifecycle(ctx, reader, reportService, logger)
	}()

	<-ctx.Done()
	logger.Info("consumer shutting down")
	<-done
	return nil
}
