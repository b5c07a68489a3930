package realtime

import (
	"context"
	"go-tracking/internal/events"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const snapshotTimeout = 5 * time.Second

type SnapshotSource interface {
	ActiveSnapshot(ctx context.Context) ([]events.SnapshotEntry, error)
}

type Handler struct {
	hub       *Hub
	snapshots SnapshotSource
	upgrader  websocket.Upgrader
	logger    *zap.Logger
}

// NewHandler upgrades admin dashboard connections. allowedOrigin "*" accepts
// any origin.
func NewHandler(hub *Hub, snapshots SnapshotSource, allowedOrigin string, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("realtime.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("realtime.handler")
	}
	return &Handler{
		hub:       hub,
		snapshots: snapshots,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigin),
		},
		logger: l,
	}
}

func originChecker(allowed string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return allowed == "" || allowed == "*" || origin == "" || origin == allowed
	}
}

// Serve upgrades the request and primes the client with a snapshot before it
// joins the broadcast set.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(h.hub, conn, h.logger)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), snapshotTimeout)
	snapshot, err := h.snapshots.ActiveSnapshot(ctx)
	cancel()
	if err != nil {
		h.logger.Error("build snapshot failed", zap.Error(err))
	}
	if snapshot == nil {
		snapshot = []events.SnapshotEntry{}
	}
	client.Enqueue(events.Envelope{Type: events.TypeSnapshot, Data: snapshot})

	if !h.hub.Register(client) {
		_ = conn.Close()
		return
	}
	client.Start()
}
