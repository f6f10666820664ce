// Package spectate broadcasts match snapshots to websocket clients. The feed
// is read-only: anything a client sends is discarded.
package spectate

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Markof87/AI-SimpleSoccer/internal/game"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	sendBuffer = 16
)

// Frame types.
const (
	FrameHello    = "hello"
	FrameSnapshot = "snapshot"
)

// Hello is the first frame every client receives.
type Hello struct {
	MatchID string  `msgpack:"id"`
	Width   float64 `msgpack:"w"`
	Height  float64 `msgpack:"h"`
}

// Frame is the msgpack envelope of every binary message.
type Frame struct {
	Type     string         `msgpack:"t"`
	Hello    *Hello         `msgpack:"hello,omitempty"`
	Snapshot *game.Snapshot `msgpack:"snap,omitempty"`
}

// Decode parses one binary message.
func Decode(data []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("spectate: decode frame: %w", err)
	}
	return f, nil
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub fans snapshots out to every connected client. Slow clients whose
// buffer fills are dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool

	hello  []byte
	logger *log.Logger
}

// NewHub creates a hub that greets clients with hello. A nil logger
// discards output.
func NewHub(hello Hello, logger *log.Logger) (*Hub, error) {
	data, err := msgpack.Marshal(&Frame{Type: FrameHello, Hello: &hello})
	if err != nil {
		return nil, fmt.Errorf("spectate: encode hello: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		hello:   data,
		logger:  logger,
	}, nil
}

// HelloFor describes p for the hello frame.
func HelloFor(p *game.Pitch) Hello {
	return Hello{MatchID: p.MatchID().String(), Width: p.Width(), Height: p.Height()}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams frames until the client goes
// away or the hub closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade", "err", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	c.send <- h.hello
	h.mu.Unlock()
	h.logger.Info("spectator joined", "remote", r.RemoteAddr)

	go h.writePump(c)
	h.readPump(c)
}

// Publish encodes s once and queues it for every client.
func (h *Hub) Publish(s game.Snapshot) error {
	data, err := msgpack.Marshal(&Frame{Type: FrameSnapshot, Snapshot: &s})
	if err != nil {
		return fmt.Errorf("spectate: encode snapshot: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow spectator", "remote", c.conn.RemoteAddr())
			delete(h.clients, c)
			c.close()
		}
	}
	return nil
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
}

// readPump discards client messages and keeps the read deadline fresh.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	c.conn.SetReadLimit(1 << 10)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				h.logger.Debug("write", "err", err)
				h.remove(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}
