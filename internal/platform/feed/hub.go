// Package feed streams live game notifications to WebSocket clients.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// ErrQueueFull is returned when a message cannot be queued in time.
var ErrQueueFull = errors.New("feed: queue full")

// ErrClosed is returned after Close.
var ErrClosed = errors.New("feed: closed")

const (
	queueSize    = 256
	notifyWait   = time.Second
	writeTimeout = 10 * time.Second
)

// Message is one JSON frame sent to every client.
type Message struct {
	Type string         `json:"type"`
	Tick uint64         `json:"tick"`
	Data map[string]any `json:"data,omitempty"`
}

// Hub fans messages out to connected WebSocket clients.
type Hub struct {
	log        *log.Logger
	mu         sync.RWMutex
	clients    map[*websocket.Conn]bool
	upgrader   websocket.Upgrader
	broadcast  chan Message
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewHub creates a hub and starts its broadcaster goroutine.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Hub{
		log:        logger,
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Message, queueSize),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Spectators connect from anywhere; the feed is read-only.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	h.wg.Add(1)
	go h.run()

	return h
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("feed upgrade failed", "error", err)
		return
	}

	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}
	h.log.Info("feed client connected", "remote", r.RemoteAddr)

	// Drain reads so control frames are processed; any error ends the client.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case h.unregister <- conn:
	case <-h.done:
	}
	h.log.Info("feed client disconnected", "remote", r.RemoteAddr)
}

// Notify queues msg, waiting up to a second for room.
func (h *Hub) Notify(ctx context.Context, msg Message) error {
	select {
	case <-h.done:
		return ErrClosed
	default:
	}
	select {
	case h.broadcast <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrClosed
	case <-time.After(notifyWait):
		return ErrQueueFull
	}
}

// Publish queues msg without blocking. It reports false when the message
// was dropped.
func (h *Hub) Publish(msg Message) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.broadcast <- msg:
		return true
	default:
		return false
	}
}

// run registers clients and broadcasts queued messages until Close.
func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			h.flush()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.send(msg)
		}
	}
}

// flush sends whatever is still queued when the hub closes.
func (h *Hub) flush() {
	for {
		select {
		case msg := <-h.broadcast:
			h.send(msg)
		default:
			return
		}
	}
}

func (h *Hub) send(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Warn("feed message dropped", "type", msg.Type, "error", err)
		return
	}

	// Collect connections to write to (to avoid holding lock during write)
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	var failed []*websocket.Conn
	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			failed = append(failed, conn)
			conn.Close()
		}
	}

	if len(failed) > 0 {
		h.mu.Lock()
		for _, conn := range failed {
			delete(h.clients, conn)
		}
		h.mu.Unlock()
	}
}

// Shutdown tells clients the feed is ending with a "closing" message, then
// closes the hub. Queued messages are sent before clients are dropped.
func (h *Hub) Shutdown(ctx context.Context, tick uint64) error {
	err := h.Notify(ctx, Message{Type: "closing", Tick: tick})
	h.Close()
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

// Close disconnects every client and stops the broadcaster.
func (h *Hub) Close() error {
	h.closeOnce.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.mu.Lock()
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
		h.mu.Unlock()
	})
	return nil
}
