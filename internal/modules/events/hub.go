package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event is the wire format pushed to connected staff dashboards.
type Event struct {
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

// client wraps a connection with a write lock. gorilla/websocket allows at
// most one concurrent writer per connection, and Publish is called from
// whatever request goroutine triggered the mutation.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (cl *client) send(e Event) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conn.WriteJSON(e)
}

// Hub fans workflow events out to every connected staff websocket.
// Delivery is best-effort: a broken connection is dropped, never retried,
// and publishing never fails the triggering mutation.
type Hub struct {
	clients map[int64]*client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]*client)}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.clients[userID]; exists {
		_ = old.conn.Close()
	}
	h.clients[userID] = &client{conn: conn}
}

// Unregister drops the user's connection, but only when it is still the
// given one. A reconnect replaces the map entry before the old read loop
// unwinds, and its deferred Unregister must not evict the replacement.
func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cl, exists := h.clients[userID]
	if !exists || cl.conn != conn {
		return
	}
	_ = cl.conn.Close()
	delete(h.clients, userID)
}

// Publish implements workflow.Notifier.
func (h *Hub) Publish(kind string, payload interface{}) {
	event := Event{Kind: kind, Payload: payload, At: time.Now().UTC()}

	h.mu.RLock()
	targets := make(map[int64]*client, len(h.clients))
	for id, cl := range h.clients {
		targets[id] = cl
	}
	h.mu.RUnlock()

	for userID, cl := range targets {
		if err := cl.send(event); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Debug("dropping dead websocket")
			h.Unregister(userID, cl.conn)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, cl := range h.clients {
		_ = cl.conn.Close()
		delete(h.clients, userID)
	}
}
