// Package ws streams document change events to WebSocket subscribers.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/heartmarshall/queue-backend/internal/config"
	"github.com/heartmarshall/queue-backend/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// sendBuffer is how many events a slow subscriber may lag behind before
	// it is disconnected.
	sendBuffer = 32
)

// documentAccess checks that the caller may read a document.
type documentAccess interface {
	Get(ctx context.Context, id string) (domain.DocumentRecord, error)
}

// Hub fans change events out to the subscribers of each document.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	subs   map[string]map[*client]struct{}
	closed bool
}

type client struct {
	conn       *websocket.Conn
	documentID string
	send       chan []byte
	once       sync.Once
}

func (c *client) stop() {
	c.once.Do(func() { close(c.send) })
}

// NewHub creates a Hub. Upgrade requests are accepted from the origins
// allowed by cors.
func NewHub(logger *slog.Logger, cors config.CORSConfig) *Hub {
	return &Hub{
		log: logger.With("component", "ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || cors.AllowsOrigin(origin)
			},
		},
		subs: make(map[string]map[*client]struct{}),
	}
}

// Register mounts the change feed on mux.
func (h *Hub) Register(mux *http.ServeMux, docs documentAccess) {
	mux.Handle("GET /api/documents/{id}/events", h.Handler(docs))
}

// Handler upgrades requests and subscribes them to the document named in
// the path. The document must be visible to the caller through docs.
func (h *Hub) Handler(docs documentAccess) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, err := docs.Get(r.Context(), id); err != nil {
			h.rejectUpgrade(w, r, err)
			return
		}
		h.serve(w, r, id)
	})
}

func (h *Hub) serve(w http.ResponseWriter, r *http.Request, id string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.DebugContext(r.Context(), "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	c := &client{conn: conn, documentID: id, send: make(chan []byte, sendBuffer)}
	if !h.subscribe(c) {
		conn.Close()
		return
	}
	h.log.InfoContext(r.Context(), "subscriber connected", slog.String("document_id", id))

	go h.writePump(c)
	h.readPump(c)
}

// Publish delivers ev to every subscriber of its document. Subscribers that
// cannot keep up are dropped. A deleted document ends all its subscriptions.
func (h *Hub) Publish(ctx context.Context, ev domain.ChangeEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.ErrorContext(ctx, "marshal change event", slog.String("error", err.Error()))
		return
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.subs[ev.DocumentID] {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.WarnContext(ctx, "dropping slow subscriber", slog.String("document_id", ev.DocumentID))
		h.unsubscribe(c)
	}

	if ev.Command == domain.EventDocumentDeleted {
		h.mu.Lock()
		clients := h.subs[ev.DocumentID]
		delete(h.subs, ev.DocumentID)
		h.mu.Unlock()
		for c := range clients {
			c.stop()
		}
	}
}

// Subscribers reports the number of connections watching a document.
func (h *Hub) Subscribers(documentID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[documentID])
}

// Connections reports the number of open subscriptions across all documents.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, subs := range h.subs {
		n += len(subs)
	}
	return n
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[string]map[*client]struct{})
	h.closed = true
	h.mu.Unlock()

	for _, clients := range subs {
		for c := range clients {
			c.stop()
		}
	}
}

// ---------------------------------------------------------------------------
// Subscriptions
// ---------------------------------------------------------------------------

func (h *Hub) subscribe(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	clients, ok := h.subs[c.documentID]
	if !ok {
		clients = make(map[*client]struct{})
		h.subs[c.documentID] = clients
	}
	clients[c] = struct{}{}
	return true
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	if clients, ok := h.subs[c.documentID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.subs, c.documentID)
		}
	}
	h.mu.Unlock()
	c.stop()
}

// ---------------------------------------------------------------------------
// Connection pumps
// ---------------------------------------------------------------------------

// readPump discards client messages and keeps the connection alive until
// the peer goes away.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unsubscribe(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("subscriber read failed",
					slog.String("document_id", c.documentID),
					slog.String("error", err.Error()),
				)
			}
			return
		}
	}
}

// writePump owns all writes to the connection. It exits when the send
// channel is closed, sending a close frame first.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, //nolint:errcheck
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) rejectUpgrade(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	default:
		h.log.ErrorContext(r.Context(), "subscribe failed", slog.String("error", err.Error()))
	}
	http.Error(w, http.StatusText(status), status)
}
