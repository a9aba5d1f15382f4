package events

import (
	"sync"
	"time"

	"agencydesk/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// BookingEvent is the wire shape pushed to dashboard subscribers.
type BookingEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Booking   *domain.Booking `json:"booking"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub fans booking lifecycle events out to the host's connected dashboards.
// A host may hold several sockets at once (multiple tabs or devices).
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{connections: make(map[int64]map[*websocket.Conn]struct{})}
}

func (h *Hub) Register(hostID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.connections[hostID] == nil {
		h.connections[hostID] = make(map[*websocket.Conn]struct{})
	}
	h.connections[hostID][conn] = struct{}{}
}

func (h *Hub) Unregister(hostID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.connections[hostID]; ok {
		if _, exists := conns[conn]; exists {
			_ = conn.Close()
			delete(conns, conn)
		}
		if len(conns) == 0 {
			delete(h.connections, hostID)
		}
	}
}

// BroadcastBookingEvent implements booking.EventBroadcaster. Dead sockets
// are dropped on write failure.
func (h *Hub) BroadcastBookingEvent(eventType string, b *domain.Booking) {
	event := BookingEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Booking:   b,
		Timestamp: time.Now(),
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections[b.HostID]))
	for conn := range h.connections[b.HostID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			h.Unregister(b.HostID, conn)
		}
	}
}

func (h *Hub) SubscriberCount(hostID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[hostID])
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for hostID, conns := range h.connections {
		for conn := range conns {
			_ = conn.Close()
		}
		delete(h.connections, hostID)
	}
}
