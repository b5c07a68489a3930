package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"go-tracking/internal/events"
	"go-tracking/internal/metrics"
	"go-tracking/internal/shared/apperror"
	"net/http"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	outcomeApplied = "applied"
	outcomeSkipped = "skipped"
	outcomeInvalid = "invalid"
	outcomeFailed  = "failed"
)

// MessageReader is the subset of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type SummaryRecalculator interface {
	RecalculateForSession(ctx context.Context, employeeID string, startTime time.Time) error
}

// ConsumeSessionLifecycle refreshes the daily work summary of the day a
// session started on whenever that session closes. Failed recalculations are
// left uncommitted.
func ConsumeSessionLifecycle(
	ctx context.Context,
	reader MessageReader,
	reports SummaryRecalculator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.session_lifecycle")
	log.Info("session lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("session lifecycle consumer stopped")
				return
			}
			log.Error("fetch session lifecycle message failed", zap.Error(err))
			continue
		}

		outcome, event := handleSessionLifecycle(ctx, msg, reports, log)
		metrics.ConsumedEvents.WithLabelValues(event.EventType, outcome).Inc()
		if outcome == outcomeFailed {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit session lifecycle message failed", zap.Error(err))
		}
	}
}

func handleSessionLifecycle(ctx context.Context, msg kafkago.Message, reports SummaryRecalculator, log *zap.Logger) (string, events.SessionLifecycleEvent) {
	var event events.SessionLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode session lifecycle event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return outcomeInvalid, events.SessionLifecycleEvent{EventType: "unknown"}
	}

	if !event.Closes() {
		return outcomeSkipped, event
	}

	err := reports.RecalculateForSession(ctx, event.EmployeeID, event.StartTime)
	if err != nil {
		// A 4xx means the payload can never succeed.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus < http.StatusInternalServerError {
			log.Warn("session lifecycle event rejected",
				zap.String("session_id", event.SessionID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			return outcomeInvalid, event
		}

		log.Error("recalculate daily summary failed",
			zap.String("request_id", event.RequestID),
			zap.String("session_id", event.SessionID),
			zap.String("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return outcomeFailed, event
	}

	log.Info("daily summary refreshed from session event",
		zap.String("event_type", event.EventType),
		zap.String("session_id", event.SessionID),
		zap.String("employee_id", event.EmployeeID),
	)
	return outcomeApplied, event
}
