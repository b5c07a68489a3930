package location

import (
	"context"
	"go-tracking/internal/metrics"
	"time"

	"go.uber.org/zap"
)

const (
	purgeBatchSize      = 5000
	sentOutboxRetention = 7 * 24 * time.Hour
)

type samplePurger interface {
	DeleteReceivedBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

type outboxPurger interface {
	PurgeSent(ctx context.Context, before time.Time) (int64, error)
}

// RetentionWorker deletes samples received before now-period, and relayed
// outbox rows older than a week when an outbox is given.
type RetentionWorker struct {
	samples  samplePurger
	outbox   outboxPurger
	period   time.Duration
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewRetentionWorker(samples samplePurger, outbox outboxPurger, period, interval time.Duration, logger ...*zap.Logger) *RetentionWorker {
	l := zap.L().Named("location.retention")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("location.retention")
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &RetentionWorker{
		samples:  samples,
		outbox:   outbox,
		period:   period,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

// Run purges once immediately, then every interval until ctx is done.
func (w *RetentionWorker) Run(ctx context.Context) {
	w.logger.Info("retention worker started",
		zap.Duration("period", w.period),
		zap.Duration("interval", w.interval),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.Error("retention purge failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			w.logger.Info("retention worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce deletes expired samples in chunks and returns how many went.
func (w *RetentionWorker) RunOnce(ctx context.Context) (int64, error) {
	now := w.now()
	cutoff := now.Add(-w.period)

	var total int64
	for {
		n, err := w.samples.DeleteReceivedBefore(ctx, cutoff, purgeBatchSize)
		total += n
		metrics.RetentionPurged.Add(float64(n))
		if err != nil {
			return total, err
		}
		if n < purgeBatchSize || ctx.Err() != nil {
			break
		}
	}

	if w.outbox != nil {
		purged, err := w.outbox.PurgeSent(ctx, now.Add(-sentOutboxRetention))
		if err != nil {
			return total, err
		}
		if purged > 0 {
			w.logger.Info("outbox rows purged", zap.Int64("count", purged))
		}
	}

	if total > 0 {
		w.logger.Info("location samples purged",
			zap.Int64("count", total),
			zap.Time("cutoff", cutoff),
		)
	}
	return total, nil
}
