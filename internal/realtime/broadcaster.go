package realtime

import (
	"context"
	"go-tracking/internal/events"
	"go-tracking/internal/metrics"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type BroadcasterConfig struct {
	// Throttle is the minimum spacing of location updates per employee.
	Throttle        time.Duration
	IdleTTL         time.Duration
	JanitorInterval time.Duration
}

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Broadcaster publishes tracking events to the hub. Location updates are
// throttled per employee; session updates always go out.
type Broadcaster struct {
	hub    *Hub
	cfg    BroadcasterConfig
	now    func() time.Time
	mu     sync.Mutex
	seen   map[string]*throttleEntry
	logger *zap.Logger
}

func NewBroadcaster(hub *Hub, cfg BroadcasterConfig, logger ...*zap.Logger) *Broadcaster {
	l := zap.L().Named("realtime.broadcaster")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("realtime.broadcaster")
	}
	if cfg.Throttle <= 0 {
		cfg.Throttle = time.Second
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	if cfg.JanitorInterval <= 0 {
		cfg.JanitorInterval = time.Minute
	}
	return &Broadcaster{
		hub:    hub,
		cfg:    cfg,
		now:    time.Now,
		seen:   make(map[string]*throttleEntry),
		logger: l,
	}
}

// Run evicts idle throttle entries until ctx is done.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.cfg.JanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := b.evictIdle(); n > 0 {
				b.logger.Debug("throttle entries evicted", zap.Int("count", n))
			}
		}
	}
}

func (b *Broadcaster) PublishLocation(update events.LocationUpdate) {
	if !b.allow(update.EmployeeID) {
		metrics.RecordBroadcast(events.TypeLocationUpdate, false)
		return
	}
	sent := b.hub.Broadcast(events.Envelope{Type: events.TypeLocationUpdate, Data: update})
	metrics.RecordBroadcast(events.TypeLocationUpdate, sent)
}

func (b *Broadcaster) PublishSessionChange(update events.SessionUpdate) {
	sent := b.hub.Broadcast(events.Envelope{Type: events.TypeSessionUpdate, Data: update})
	metrics.RecordBroadcast(events.TypeSessionUpdate, sent)
}

func (b *Broadcaster) allow(employeeID string) bool {
	now := b.now()

	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.seen[employeeID]
	if !ok {
		e = &throttleEntry{limiter: rate.NewLimiter(rate.Every(b.cfg.Throttle), 1)}
		b.seen[employeeID] = e
		metrics.ThrottleEntries.Set(float64(len(b.seen)))
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (b *Broadcaster) evictIdle() int {
	cutoff := b.now().Add(-b.cfg.IdleTTL)

	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for key, e := range b.seen {
		if e.lastSeen.Before(cutoff) {
			delete(b.seen, key)
			n++
		}
	}
	metrics.ThrottleEntries.Set(float64(len(b.seen)))
	return n
}

func (b *Broadcaster) trackedEmployees() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.seen)
}
