package bootstrap

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"go-tracking/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingAudit struct {
	mu      sync.Mutex
	entries []AuditLog
}

func (r *recordingAudit) Log(ctx context.Context, entry AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	audit := &recordingAudit{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, http.NotFoundHandler(), ServerConfig{Port: "0", ShutdownTimeout: time.Second}, audit)
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "SERVER_SHUTDOWN", audit.entries[0].Action)
}

func TestServe_ReturnsListenError(t *testing.T) {
	err := Serve(context.Background(), http.NotFoundHandler(), ServerConfig{Port: "not-a-port"}, &recordingAudit{})
	assert.Error(t, err)
}

func TestZapAuditLogger_WritesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := NewZapAuditLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "rid-9")
	audit.Log(ctx, AuditLog{Action: "SERVER_SHUTDOWN", Message: "api server stopping", Meta: map[string]any{"addr": ":5000"}})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "audit", entry.LoggerName)
	assert.Equal(t, "api server stopping", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
	assert.Equal(t, "rid-9", fields["request_id"])
	assert.Equal(t, ":5000", fields["addr"])
}
