package session

import (
	"context"
	"errors"
	"fmt"
	"go-tracking/internal/metrics"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const ReaperLockKey = "tracking:reaper:lock"

// ErrReaperBusy is returned by RunOnce when a tick is skipped because another
// tick (here or on another replica) holds the window.
var ErrReaperBusy = errors.New("reaper tick already running")

type autoOffer interface {
	AutoOff(ctx context.Context, cutoff time.Time) (int, error)
}

// Reaper periodically moves ON sessions older than the timeout to AUTO_OFF.
type Reaper struct {
	sessions   autoOffer
	rdb        *redis.Client
	interval   time.Duration
	timeout    time.Duration
	instanceID string
	now        func() time.Time
	running    atomic.Bool
	logger     *zap.Logger
}

func NewReaper(sessions autoOffer, rdb *redis.Client, interval, timeout time.Duration, logger ...*zap.Logger) *Reaper {
	l := zap.L().Named("session.reaper")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.reaper")
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Reaper{
		sessions:   sessions,
		rdb:        rdb,
		interval:   interval,
		timeout:    timeout,
		instanceID: uuid.NewString(),
		now:        func() time.Time { return time.Now().UTC() },
		logger:     l,
	}
}

// Run ticks until ctx is done. Errors are logged and the loop continues.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reaper started",
		zap.Duration("interval", r.interval),
		zap.Duration("timeout", r.timeout),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reaper stopped")
			return
		case <-ticker.C:
			go r.tick(ctx)
		}
	}
}

func (r *Reaper) tick(ctx context.Context) {
	n, err := r.RunOnce(ctx)
	switch {
	case errors.Is(err, ErrReaperBusy):
		metrics.ReaperRuns.WithLabelValues("skipped").Inc()
		r.logger.Debug("reaper tick skipped")
	case err != nil:
		metrics.ReaperRuns.WithLabelValues("error").Inc()
		r.logger.Error("reaper tick failed", zap.Error(err))
	default:
		metrics.ReaperRuns.WithLabelValues("ok").Inc()
		metrics.ReaperClosed.Add(float64(n))
		if n > 0 {
			r.logger.Info("auto-closed idle sessions", zap.Int("count", n))
		}
	}
}

// RunOnce performs a single reap with cutoff = now - timeout.
func (r *Reaper) RunOnce(ctx context.Context) (n int, err error) {
	if !r.running.CompareAndSwap(false, true) {
		return 0, ErrReaperBusy
	}
	defer r.running.Store(false)

	defer func() {
		if rec := recover(); rec != nil {
			metrics.ReaperRuns.WithLabelValues("panic").Inc()
			r.logger.Error("reaper tick panicked", zap.Any("panic", rec))
			n, err = 0, fmt.Errorf("reaper panic: %v", rec)
		}
	}()

	if !r.acquireWindow(ctx) {
		return 0, ErrReaperBusy
	}

	cutoff := r.now().Add(-r.timeout)
	return r.sessions.AutoOff(ctx, cutoff)
}

// acquireWindow takes the cross-replica lock for one window. The lock
// expires before the next tick so a replica never blocks its own schedule,
// and a lock still held under this replica's id counts as acquired. Without
// Redis, or when Redis fails, the tick proceeds; AutoOff is safe to repeat.
func (r *Reaper) acquireWindow(ctx context.Context) bool {
	if r.rdb == nil {
		return true
	}
	ok, err := r.rdb.SetNX(ctx, ReaperLockKey, r.instanceID, r.lockTTL()).Result()
	if err != nil {
		r.logger.Warn("reaper lock unavailable, running unlocked", zap.Error(err))
		return true
	}
	if ok {
		return true
	}

	holder, err := r.rdb.Get(ctx, ReaperLockKey).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// expired between SETNX and GET; the next tick retries
		return false
	case err != nil:
		r.logger.Warn("reaper lock owner check failed", zap.Error(err))
		return false
	}
	return holder == r.instanceID
}

func (r *Reaper) lockTTL() time.Duration {
	return r.interval * 9 / 10
}
