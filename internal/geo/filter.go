package geo

import "time"

// Sample is the part of a location fix the filter looks at.
type Sample struct {
	Point
	Timestamp time.Time
}

// Filter accepts a candidate when it moved at least DistanceThresholdMeters
// or at least TimeThreshold passed since the last accepted sample.
type Filter struct {
	DistanceThresholdMeters float64
	TimeThreshold           time.Duration
}

func NewFilter(distanceMeters float64, timeThreshold time.Duration) Filter {
	return Filter{
		DistanceThresholdMeters: distanceMeters,
		TimeThreshold:           timeThreshold,
	}
}

// ShouldAccept never errors; rejection is an ordinary outcome. Out-of-order
// or skewed client clocks give a non-positive elapsed time, which counts as
// zero so only the distance test can accept.
func (f Filter) ShouldAccept(last *Sample, candidate Sample) bool {
	if last == nil {
		return true
	}

	if Distance(last.Point, candidate.Point) >= f.DistanceThresholdMeters {
		return true
	}

	elapsed := candidate.Timestamp.Sub(last.Timestamp)
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed >= f.TimeThreshold && elapsed > 0
}
