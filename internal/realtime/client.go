package realtime

import (
	"encoding/json"
	"go-tracking/internal/events"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	clientBuffer   = 256
)

var clientIDCounter atomic.Uint64

// Client is one dashboard connection. send belongs to the hub, which is the
// only writer after registration and closes it. replies carries frames the
// read pump answers with and is never closed.
type Client struct {
	id      uint64
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	replies chan []byte
	logger  *zap.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, logger *zap.Logger) *Client {
	return newClient(hub, conn, clientBuffer, logger)
}

func newClient(hub *Hub, conn *websocket.Conn, buffer int, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		id:      clientIDCounter.Add(1),
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, buffer),
		replies: make(chan []byte, 1),
		logger:  logger,
	}
}

// Enqueue writes directly to this client, bypassing the hub. Only safe
// before the client is registered.
func (c *Client) Enqueue(env events.Envelope) bool {
	msg, err := json.Marshal(env)
	if err != nil {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg events.Envelope
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("unexpected websocket close", zap.Uint64("client_id", c.id), zap.Error(err))
			}
			return
		}

		if msg.Type == events.TypePing {
			pong, _ := json.Marshal(events.Envelope{Type: events.TypePong})
			c.reply(pong)
		}
	}
}

// reply drops the frame when a previous reply is still pending.
func (c *Client) reply(msg []byte) {
	select {
	case c.replies <- msg:
	default:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.Debug("websocket write failed", zap.Uint64("client_id", c.id), zap.Error(err))
				return
			}

		case msg := <-c.replies:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
