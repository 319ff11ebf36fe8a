package ws

import (
	"sync"

	"tictactoe_arena/internal/logger"
)

// Hub tracks every live client for global pushes: leaderboard and aggregate
// stats updates go to everyone, regardless of match membership.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	// OnConnect runs once per new connection, after the client is bound to
	// the engine. cmd/app wires it to the leaderboard and stats snapshot
	// push so a fresh client renders without an extra round trip.
	OnConnect func(c *Client)
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	wsConnections.Set(float64(n))
	logger.Debug("client connected", "user_id", c.uid, "clients", n)
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()
	wsConnections.Set(float64(n))
	logger.Debug("client disconnected", "user_id", c.uid, "clients", n)
}

func (h *Hub) connected(c *Client) {
	if h.OnConnect != nil {
		h.OnConnect(c)
	}
}

// BroadcastAll pushes an event to every live client. Send never blocks, so a
// slow peer cannot stall the broadcast.
func (h *Hub) BroadcastAll(event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.Send(event, payload)
	}
}

// ClientCount reports the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
