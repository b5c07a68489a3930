package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSample(t *testing.T) {
	before := testutil.ToFloat64(LocationSamples.WithLabelValues("batch", "accepted"))
	RecordSample("batch", true)
	RecordSample("batch", false)
	assert.Equal(t, before+1, testutil.ToFloat64(LocationSamples.WithLabelValues("batch", "accepted")))
}

func TestRecordBroadcast(t *testing.T) {
	before := testutil.ToFloat64(BroadcastEvents.WithLabelValues("location:update", "throttled"))
	RecordBroadcast("location:update", false)
	assert.Equal(t, before+1, testutil.ToFloat64(BroadcastEvents.WithLabelValues("location:update", "throttled")))
}

func TestRecordAPIRequest_UnmatchedRoute(t *testing.T) {
	RecordAPIRequest("GET", "", 404, 5*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(APIRequestDuration), 1)
}
