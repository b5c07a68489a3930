package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DurationMinutes(start, start))
	assert.Equal(t, 0, DurationMinutes(start, start.Add(59*time.Second)))
	assert.Equal(t, 1, DurationMinutes(start, start.Add(119*time.Second)))
	assert.Equal(t, 120, DurationMinutes(start, start.Add(2*time.Hour)))
	assert.Equal(t, 0, DurationMinutes(start, start.Add(-time.Hour)))
}

func TestTrackingSession_Close(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := &TrackingSession{Status: StatusOn, StartTime: start}
	lat, lon := 1.0, 2.0

	s.Close(start.Add(45*time.Minute), StatusOff, &lat, &lon)

	assert.Equal(t, StatusOff, s.Status)
	assert.Equal(t, start.Add(45*time.Minute), *s.EndTime)
	assert.Equal(t, 45, s.DurationMinutes)
	assert.Equal(t, 2.0, *s.EndLongitude)
}
