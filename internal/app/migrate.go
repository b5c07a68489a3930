package app

import (
	"context"
	"fmt"

	"go-tracking/internal/auth"
	"go-tracking/internal/employee"
	"go-tracking/internal/location"
	"go-tracking/internal/report"
	"go-tracking/internal/session"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// rawDDL covers what gorm tags cannot express. Every statement is idempotent.
var rawDDL = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + session.ActiveSessionIndex + `
		ON tracking_sessions (employee_id) WHERE status = 'ON'`,
	`CREATE TABLE IF NOT EXISTS counters (
		counter_type varchar(50) PRIMARY KEY,
		last_value bigint NOT NULL DEFAULT 0,
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id uuid PRIMARY KEY,
		request_id varchar(100),
		aggregate_type varchar(50) NOT NULL,
		aggregate_id varchar(100) NOT NULL,
		event_type varchar(100) NOT NULL,
		topic varchar(200) NOT NULL,
		message_key varchar(200),
		payload jsonb NOT NULL,
		status varchar(20) NOT NULL DEFAULT 'pending',
		retry_count int NOT NULL DEFAULT 0,
		next_retry_at timestamptz,
		error_message text,
		processed_at timestamptz,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
		ON outbox_events (status, created_at)`,
}

// Migrate brings the schema up to date. Safe to run on every start.
func Migrate(ctx context.Context, db *gorm.DB) error {
	logger := zap.L().Named("app.migrate")

	if err := db.WithContext(ctx).AutoMigrate(
		&employee.Employee{},
		&auth.User{},
		&session.TrackingSession{},
		&location.LocationSample{},
		&report.DailyWorkSummary{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range rawDDL {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	logger.Info("schema migrated")
	return nil
}
