// Package server exposes the viewer over HTTP: the embedded web client, the
// WebSocket state feed, and health.
package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vitrinelabs/vitrine/internal/logger"
	"github.com/vitrinelabs/vitrine/internal/protocol"
)

// Hub owns the WebSocket clients. It broadcasts every published snapshot and
// forwards client messages to the app inbox.
type Hub struct {
	inbox    chan<- []byte
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	latest  []byte
}

// NewHub creates a hub feeding the given inbox.
func NewHub(inbox chan<- []byte) *Hub {
	return &Hub{
		inbox:   inbox,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// The viewer page may be served from another origin during
			// development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Publish broadcasts the snapshot to every connected client, dropping the
// ones that fail to take it. It also becomes the snapshot handed to the next
// client that connects.
func (h *Hub) Publish(state protocol.State) {
	data, err := state.Encode()
	if err != nil {
		logger.Error("encoding snapshot", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.Debug("dropping client", zap.Error(err))
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleWS upgrades the connection, hands the new client the latest
// snapshot, and forwards its messages to the app until it disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	if h.latest != nil {
		if err := conn.WriteMessage(websocket.TextMessage, h.latest); err != nil {
			h.mu.Unlock()
			conn.Close()
			return
		}
	}
	h.clients[conn] = true
	h.mu.Unlock()
	logger.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
		logger.Info("client disconnected", zap.String("remote", conn.RemoteAddr().String()))
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.inbox <- msg
	}
}
