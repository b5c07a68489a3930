// Package metrics holds the Prometheus collectors shared by the API, the
// worker and the consumer.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion
	LocationSamples = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_location_samples_total",
			Help: "Location samples evaluated by the ingestion pipeline",
		},
		[]string{"source", "result"}, // source: single|batch, result: accepted|rejected
	)

	// Sessions
	SessionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_session_transitions_total",
			Help: "Tracking session transitions by target status",
		},
		[]string{"status"},
	)

	SessionStartRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_session_start_retries_total",
			Help: "Session starts retried after an active-session conflict",
		},
	)

	ReaperRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_reaper_runs_total",
			Help: "Reaper ticks by outcome",
		},
		[]string{"outcome"}, // ok|error|skipped|panic
	)

	ReaperClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_reaper_sessions_closed_total",
			Help: "Sessions transitioned to AUTO_OFF by the reaper",
		},
	)

	// Live fanout
	BroadcastEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_broadcast_events_total",
			Help: "Live events offered to the broadcaster",
		},
		[]string{"type", "result"}, // result: sent|throttled
	)

	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracking_ws_connections",
			Help: "Currently connected live dashboard clients",
		},
	)

	WSDroppedClients = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_ws_dropped_clients_total",
			Help: "Clients dropped because their send buffer was full",
		},
	)

	ThrottleEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracking_broadcast_throttle_entries",
			Help: "Per-employee throttle entries currently held",
		},
	)

	// Outbox / consumer
	OutboxRelayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_outbox_relayed_total",
			Help: "Outbox events relayed to Kafka by outcome",
		},
		[]string{"outcome"},
	)

	ConsumedEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_consumed_events_total",
			Help: "Session lifecycle events handled by the consumer",
		},
		[]string{"event_type", "outcome"},
	)

	RetentionPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_retention_purged_samples_total",
			Help: "Location samples removed by the retention job",
		},
	)

	// HTTP
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracking_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func RecordSample(source string, accepted bool) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	LocationSamples.WithLabelValues(source, result).Inc()
}

func RecordBroadcast(eventType string, sent bool) {
	result := "throttled"
	if sent {
		result = "sent"
	}
	BroadcastEvents.WithLabelValues(eventType, result).Inc()
}

func RecordAPIRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	APIRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
