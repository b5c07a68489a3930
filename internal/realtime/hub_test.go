package realtime

import (
	"context"
	"testing"
	"time"

	"go-tracking/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func TestHub_FanoutToRegisteredClients(t *testing.T) {
	hub, _ := runHub(t)
	a := newClient(hub, nil, 4, nil)
	b := newClient(hub, nil, 4, nil)
	require.True(t, hub.Register(a))
	require.True(t, hub.Register(b))

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)
	require.True(t, hub.Broadcast(events.Envelope{Type: events.TypeSessionUpdate}))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			assert.Contains(t, string(msg), `"type":"session:update"`)
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub, _ := runHub(t)
	slow := newClient(hub, nil, 1, nil)
	require.True(t, hub.Register(slow))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(events.Envelope{Type: events.TypePing})
	hub.Broadcast(events.Envelope{Type: events.TypePing})

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	<-slow.send
	_, open := <-slow.send
	assert.False(t, open, "send channel is closed once the client is dropped")
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub, _ := runHub(t)
	c := newClient(hub, nil, 1, nil)
	require.True(t, hub.Register(c))

	hub.Unregister(c)

	_, open := <-c.send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	hub, cancel := runHub(t)
	c := newClient(hub, nil, 1, nil)
	require.True(t, hub.Register(c))

	cancel()

	select {
	case _, open := <-c.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("client not closed on shutdown")
	}

	<-hub.done
	assert.False(t, hub.Register(newClient(hub, nil, 1, nil)), "register after stop does not block")
}

func TestClient_ReplyAfterHubDropsClient(t *testing.T) {
	hub, _ := runHub(t)
	c := newClient(hub, nil, 1, nil)
	require.True(t, hub.Register(c))

	hub.Unregister(c)
	_, open := <-c.send
	require.False(t, open)

	assert.NotPanics(t, func() {
		c.reply([]byte(`{"type":"pong"}`))
		c.reply([]byte(`{"type":"pong"}`))
	})
	assert.Len(t, c.replies, 1, "pending reply kept, extra one dropped")
}
