package session

import "go-tracking/internal/events"

// LivePublisher pushes session transitions to live viewers. Implementations
// must not block and never report errors back.
type LivePublisher interface {
	PublishSessionChange(update events.SessionUpdate)
}

type noopPublisher struct{}

func (noopPublisher) PublishSessionChange(events.SessionUpdate) {}
