package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePurger struct {
	results []int64
	cutoffs []time.Time
	err     error
}

func (f *fakePurger) DeleteReceivedBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	if f.err != nil {
		return 0, f.err
	}
	n := f.results[0]
	f.results = f.results[1:]
	return n, nil
}

type fakeOutboxPurger struct {
	before time.Time
	calls  int
}

func (f *fakeOutboxPurger) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	f.calls++
	f.before = before
	return 3, nil
}

func TestRetentionWorker_RunOnce_DrainsInChunks(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	samples := &fakePurger{results: []int64{purgeBatchSize, purgeBatchSize, 12}}
	outbox := &fakeOutboxPurger{}

	w := NewRetentionWorker(samples, outbox, 90*24*time.Hour, time.Hour, zap.NewNop())
	w.now = func() time.Time { return now }

	total, err := w.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2*purgeBatchSize+12), total)
	require.Len(t, samples.cutoffs, 3)
	assert.Equal(t, now.Add(-90*24*time.Hour), samples.cutoffs[0])
	assert.Equal(t, 1, outbox.calls)
	assert.Equal(t, now.Add(-sentOutboxRetention), outbox.before)
}

func TestRetentionWorker_RunOnce_Error(t *testing.T) {
	samples := &fakePurger{err: errors.New("db down")}
	outbox := &fakeOutboxPurger{}

	w := NewRetentionWorker(samples, outbox, time.Hour, time.Hour, zap.NewNop())
	_, err := w.RunOnce(context.Background())

	assert.Error(t, err)
	assert.Zero(t, outbox.calls)
}

func TestRetentionWorker_WithoutOutbox(t *testing.T) {
	samples := &fakePurger{results: []int64{0}}

	w := NewRetentionWorker(samples, nil, time.Hour, time.Hour, zap.NewNop())
	total, err := w.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRetentionWorker_RunStopsOnCancel(t *testing.T) {
	samples := &fakePurger{results: []int64{0}}
	w := NewRetentionWorker(samples, nil, time.Hour, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("retention worker did not stop")
	}
}
