package realtime

import (
	"log/slog"
	"sync"
	"time"

	"taskhive/internal/events"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// client wraps a websocket connection with a write mutex. Gorilla
// connections allow at most one concurrent writer, and both the hub's
// fan-out and the keepalive ping loop write to the same connection, so
// every outbound frame goes through these methods.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *client) writePing() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Hub is the fan-out side of the event pipeline: it keeps a registry of
// websocket connections per channel and implements events.Dispatcher.
// Publishing never blocks the caller beyond the per-connection write
// deadline; dead connections are dropped on write failure.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]*client
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*websocket.Conn]*client),
		logger:  logger,
	}
}

// Subscribe registers the connection and returns its write-serialized
// wrapper; callers that write outside Publish must go through it.
func (h *Hub) Subscribe(channel string, conn *websocket.Conn) *client {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[channel] == nil {
		h.clients[channel] = make(map[*websocket.Conn]*client)
	}
	cl := &client{conn: conn}
	h.clients[channel][conn] = cl
	return cl
}

func (h *Hub) Unsubscribe(channel string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(channel, conn)
}

func (h *Hub) Publish(channel string, event events.Event) {
	h.mu.RLock()
	clients, exists := h.clients[channel]
	if !exists || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy so the write loop runs without holding the lock.
	targets := make([]*client, 0, len(clients))
	for _, cl := range clients {
		targets = append(targets, cl)
	}
	h.mu.RUnlock()

	for _, cl := range targets {
		if err := cl.writeJSON(event); err != nil {
			h.logger.Debug("dropping websocket client after failed write",
				"channel", channel,
				"error", err)
			h.drop(channel, cl.conn)
		}
	}
}

// SubscriberCount is used by tests and the health endpoint.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[channel])
}

func (h *Hub) drop(channel string, conn *websocket.Conn) {
	h.mu.Lock()
	h.removeLocked(channel, conn)
	h.mu.Unlock()

	conn.Close()
}

func (h *Hub) removeLocked(channel string, conn *websocket.Conn) {
	if clients, exists := h.clients[channel]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.clients, channel)
		}
	}
}
