package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait     = 10 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = (pongWait * 9) / 10
	sendQueueSize = 64
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendQueueFull    = errors.New("send queue full")
)

// Hub tracks live play connections so shutdown can close them.
type Hub struct {
	mu     sync.RWMutex
	live   map[uuid.UUID]*Connection
	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		live:   make(map[uuid.UUID]*Connection),
		logger: logger.With().Str("component", "ws_hub").Logger(),
	}
}

// Register starts tracking conn.
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	h.live[conn.id] = conn
	active := len(h.live)
	h.mu.Unlock()

	h.logger.Info().Str("connection_id", conn.id.String()).Int("active", active).Msg("player connected")
}

// Unregister closes the connection with the given id and forgets it.
func (h *Hub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	conn, ok := h.live[id]
	delete(h.live, id)
	active := len(h.live)
	h.mu.Unlock()

	if !ok {
		return
	}
	conn.Close()
	h.logger.Info().
		Str("connection_id", id.String()).
		Dur("session_length", time.Since(conn.connectedAt)).
		Int("active", active).
		Msg("player disconnected")
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.live)
}

// CloseAll disconnects every player; used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	conns := h.live
	h.live = make(map[uuid.UUID]*Connection)
	h.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
	if len(conns) > 0 {
		h.logger.Info().Int("closed", len(conns)).Msg("closed player connections")
	}
}

// Connection is one player's socket with a bounded outbound queue. Writes
// happen only on the WritePump goroutine.
type Connection struct {
	id          uuid.UUID
	conn        *websocket.Conn
	connectedAt time.Time
	queue       chan Message
	logger      zerolog.Logger

	mu     sync.Mutex
	closed bool
}

func NewConnection(conn *websocket.Conn, logger zerolog.Logger) *Connection {
	id := uuid.New()
	return &Connection{
		id:          id,
		conn:        conn,
		connectedAt: time.Now(),
		queue:       make(chan Message, sendQueueSize),
		logger:      logger.With().Str("connection_id", id.String()).Logger(),
	}
}

func (c *Connection) ID() uuid.UUID { return c.id }

// Send enqueues msg without blocking.
func (c *Connection) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnectionClosed
	}
	select {
	case c.queue <- msg:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close is idempotent. The pump drains the queue and sends a close frame.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
}

func (c *Connection) write(messageType int, msg *Message) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if msg != nil {
		return c.conn.WriteJSON(msg)
	}
	return c.conn.WriteMessage(messageType, nil)
}

// WritePump delivers queued messages and pings the peer until Close.
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.queue:
			if !ok {
				_ = c.write(websocket.CloseMessage, nil)
				return
			}
			if err := c.write(websocket.TextMessage, &msg); err != nil {
				c.logger.Warn().Err(err).Str("type", msg.Type).Msg("write failed")
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump decodes client messages and hands them to handle until the peer
// leaves. The context passed to handle is cancelled when reading stops.
func (c *Connection) ReadPump(ctx context.Context, handle func(context.Context, Message) error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn().Err(err).Msg("read failed")
			}
			return
		}
		if err := handle(ctx, msg); err != nil {
			c.logger.Warn().Err(err).Str("type", msg.Type).Msg("message rejected")
		}
	}
}
