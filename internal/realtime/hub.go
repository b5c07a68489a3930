// Package realtime fans tracking events out to dashboard websocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"go-tracking/internal/events"
	"go-tracking/internal/metrics"
	"sync"

	"go.uber.org/zap"
)

const broadcastBuffer = 256

// Hub owns the set of connected clients. Only Run mutates the set.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger ...*zap.Logger) *Hub {
	l := zap.L().Named("realtime.hub")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("realtime.hub")
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     l,
	}
}

// Run serves lifecycle and broadcast events until ctx is done, then closes
// every client. Lifecycle events are drained before broadcasts.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		default:
		}

		select {
		case c := <-h.register:
			h.add(c)
			continue
		case c := <-h.unregister:
			h.remove(c)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			h.remove(c)
		case msg := <-h.broadcast:
			h.fanout(msg)
		}
	}
}

// Register blocks until the hub accepts c or has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues env for every client. It never blocks; false means the
// hub queue was full or the frame could not be encoded.
func (h *Hub) Broadcast(env events.Envelope) bool {
	msg, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("encode live message failed", zap.String("type", env.Type), zap.Error(err))
		return false
	}

	select {
	case h.broadcast <- msg:
		return true
	default:
		h.logger.Warn("hub queue full, dropping message", zap.String("type", env.Type))
		return false
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(n))
	h.logger.Info("websocket client connected", zap.Uint64("client_id", c.id), zap.Int("total_clients", n))
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(n))
	h.logger.Info("websocket client disconnected", zap.Uint64("client_id", c.id), zap.Int("total_clients", n))
}

// fanout drops any client whose buffer is full.
func (h *Hub) fanout(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			close(c.send)
			metrics.WSDroppedClients.Inc()
			h.logger.Warn("slow websocket client dropped", zap.Uint64("client_id", c.id))
		}
	}
	metrics.WSConnections.Set(float64(len(h.clients)))
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	n := len(h.clients)
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	metrics.WSConnections.Set(0)
	h.logger.Info("websocket hub stopped", zap.Int("clients_closed", n))
}
