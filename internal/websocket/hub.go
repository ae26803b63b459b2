package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"pvpulse/internal/infrastructure"
)

// Message type constants understood by the dashboard frontend.
const (
	TypeConnection = "connection"
	TypeDataUpdate = "data_update"
	TypeError      = "error"
)

// Message is the envelope broadcast to connected dashboards.
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu      sync.RWMutex
	running bool
	quit    chan struct{}

	logger *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
		logger:     logger.With(slog.String("component", "websocket.hub")),
	}
}

// Start launches the hub loop. Safe to call once.
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.run()
}

// Stop shuts the hub down and disconnects all clients.
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	h.mu.Unlock()

	close(h.quit)
}

func (h *Hub) run() {
	for {
		select {
		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("hub shutting down")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()

			h.logger.Info("client registered",
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr),
				slog.Int("total_clients", count))

			if data, err := marshalMessage(TypeConnection, map[string]interface{}{
				"status":    "connected",
				"client_id": client.id,
			}); err == nil {
				select {
				case client.send <- data:
				default:
				}
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()

			h.logger.Info("client unregistered",
				slog.String("client_id", client.id),
				slog.Int("total_clients", count))

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client, drop it on the next unregister pass.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast sends a typed message to every connected client.
func (h *Hub) Broadcast(msgType string, data interface{}) {
	payload, err := marshalMessage(msgType, data)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message",
			slog.String("type", msgType),
			slog.String("error", err.Error()))
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("broadcast channel full, message dropped",
			slog.String("type", msgType))
	}
}

// NotifyDataUpdate tells connected dashboards that fresh prices are
// available and they should refetch.
func (h *Hub) NotifyDataUpdate(records int) {
	h.Broadcast(TypeDataUpdate, map[string]interface{}{
		"action":  "refresh",
		"records": records,
	})
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func marshalMessage(msgType string, data interface{}) ([]byte, error) {
	return json.Marshal(Message{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
