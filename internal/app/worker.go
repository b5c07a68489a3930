package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"go-tracking/internal/config"
	"go-tracking/internal/location"
	"go-tracking/internal/messaging/kafka"
	"go-tracking/internal/messaging/kafka/producer"
	"go-tracking/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays the outbox to Kafka and runs the retention purge until
// SIGINT or SIGTERM.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

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
	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	retention := location.NewRetentionWorker(
		location.NewRepository(gormDB),
		outboxRepo,
		cfg.Tracking.RetentionPeriod,
		cfg.Tracking.RetentionInterval,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, 3*time.Second)
	go retention.Run(ctx)

	<-ctx.Done()
	logger.Info("worker shutting down")
	return nil
}
