package hub

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub tracks websocket clients and fans encoded messages out to them.
// A client's send channel is only closed with mu held for writing, so any
// send made under the read lock to a registered client is safe.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
	closed  bool
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*Client),
		logger:  logger.Named("hub"),
	}
}

// Register adds a client. Once the hub has stopped the client's send
// channel is closed instead, so its pumps exit.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(c.send)
		return
	}
	h.clients[c.ID] = c
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("Client connected", zap.Stringer("client", c.ID), zap.Int("total", n))
}

// Unregister removes a client and closes its send channel. Repeated calls
// are no-ops.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if h.clients[c.ID] != c {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.ID)
	close(c.send)
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("Client disconnected", zap.Stringer("client", c.ID), zap.Int("total", n))
}

// Len returns the number of registered clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send queues msg for a single registered client. It reports false when the
// client is gone or its buffer is full.
func (h *Hub) Send(c *Client, msg []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.clients[c.ID] != c {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Broadcast queues msg for every client. A client whose buffer is full is
// disconnected rather than slowing the others down.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("Client too slow, dropping", zap.Stringer("client", c.ID))
			go h.Unregister(c)
		}
	}
}

// Run blocks until ctx is done, then closes every remaining client and
// refuses new ones.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
	h.logger.Info("Hub stopped")
}
