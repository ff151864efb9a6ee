package cache

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Message tells presentation clients which cached paths are stale and must
// be recomputed on next view.
type Message struct {
	Type  string   `json:"type"`
	Paths []string `json:"paths"`
}

// Hub fans invalidation messages out to connected presentation clients.
// Mutating operations fire and forget: a slow or closed client is dropped
// rather than blocking the write path.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	h.logger.Debug("client registered", "clients", len(h.clients))
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.logger.Debug("client unregistered", "clients", len(h.clients))
}

// Invalidate broadcasts a stale-path notification for the given path
// prefixes. It never blocks on a client.
func (h *Hub) Invalidate(paths ...string) {
	if len(paths) == 0 {
		return
	}

	data, err := json.Marshal(Message{Type: "invalidate", Paths: paths})
	if err != nil {
		h.logger.Error("marshal invalidation", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client buffer full; it will resync on reconnect.
			h.logger.Warn("dropping invalidation for slow client")
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
