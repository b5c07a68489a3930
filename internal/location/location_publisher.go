package location

import (
	"context"
	"go-tracking/internal/events"
	"go-tracking/internal/session"
)

// LivePublisher pushes accepted samples to live viewers. It may drop events
// and never blocks ingestion.
type LivePublisher interface {
	PublishLocation(update events.LocationUpdate)
}

type noopPublisher struct{}

func (noopPublisher) PublishLocation(events.LocationUpdate) {}

// SessionFinder is the read side of the session store ingestion depends on.
type SessionFinder interface {
	FindActiveByEmployee(ctx context.Context, employeeID string) (*session.TrackingSession, error)
	FindAllActive(ctx context.Context) ([]session.TrackingSession, error)
}
