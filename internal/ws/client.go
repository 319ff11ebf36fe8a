package ws

import (
	"encoding/json"
	"time"

	"tictactoe_arena/internal/logger"
	"tictactoe_arena/internal/match"
	"tictactoe_arena/internal/service"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	sendBuffer = 256
)

// Client is one websocket endpoint. It satisfies match.Conn: Send marshals
// and enqueues without blocking, so the engine never waits on a slow peer.
type Client struct {
	// identity is owned by the read goroutine; uid is fixed at upgrade time
	// and safe to log from any goroutine.
	identity service.Identity
	uid      string

	conn *websocket.Conn
	send chan []byte

	hub     *Hub
	manager *match.Manager
}

func NewClient(identity service.Identity, conn *websocket.Conn, hub *Hub, manager *match.Manager) *Client {
	return &Client{
		identity: identity,
		uid:      identity.UserID,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		hub:      hub,
		manager:  manager,
	}
}

// Send queues an event for delivery. Never blocks; when the peer cannot keep
// up the message is dropped and the peer catches up from the next snapshot.
func (c *Client) Send(event string, payload any) {
	raw, err := json.Marshal(outEnvelope{Type: event, Payload: payload})
	if err != nil {
		logger.Error("marshal outbound event failed", "event", event, "error", err)
		return
	}
	select {
	case c.send <- raw:
	default:
		logger.Warn("send buffer full, dropping event", "user_id", c.uid, "event", event)
	}
}

// Run starts the pumps, binds the connection to the engine and blocks until
// the peer goes away. Cleanup — queue, invites, session registry, a possible
// match abort — all happens through ConnectionClosed.
func (c *Client) Run() {
	go c.writePump()

	c.hub.add(c)
	c.manager.Bind(c, c.identity.UserID)
	c.hub.connected(c)

	c.readPump()

	c.manager.ConnectionClosed(c)
	c.hub.remove(c)
}

func (c *Client) readPump() {
	defer c.conn.Close()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("read error", "user_id", c.uid, "error", err)
			}
			return
		}
		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("write error", "user_id", c.uid, "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
