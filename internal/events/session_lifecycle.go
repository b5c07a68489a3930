package events

import "time"

const SessionLifecycleTopic = "tracking.session.lifecycle.v1"

const (
	SessionStarted    = "session_started"
	SessionClosed     = "session_closed"
	SessionAutoClosed = "session_auto_closed"
)

// SessionLifecycleEvent is written to the outbox on every session transition
// and relayed to Kafka keyed by employee id.
type SessionLifecycleEvent struct {
	EventType       string     `json:"event_type"`
	RequestID       string     `json:"request_id,omitempty"`
	SessionID       string     `json:"session_id"`
	EmployeeID      string     `json:"employee_id"`
	Status          string     `json:"status"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	OccurredAt      time.Time  `json:"occurred_at"`
}

// Closes reports whether the event ends a session.
func (e SessionLifecycleEvent) Closes() bool {
	return e.EventType == SessionClosed || e.EventType == SessionAutoClosed
}
