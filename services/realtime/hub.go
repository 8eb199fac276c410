package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// Event is a payload pushed to a connected client.
type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Conn is the narrow connection contract the hub needs. A gorilla
// *websocket.Conn satisfies it directly.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// session pairs a connection with its write lock. gorilla allows at most
// one concurrent writer per connection.
type session struct {
	writeMu sync.Mutex
	conn    Conn
}

// Hub tracks which users currently hold an open realtime connection.
// The registry is process-local and lost on restart; clients re-register.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
	logger   *zap.Logger
}

// NewHub constructs an empty connection hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*session),
		logger:   logger,
	}
}

// Register binds a user id to a connection. Last writer for a given id wins;
// a stale connection being replaced is closed.
func (h *Hub) Register(userID string, conn Conn) {
	h.mu.Lock()
	old, exists := h.sessions[userID]
	h.sessions[userID] = &session{conn: conn}
	h.mu.Unlock()

	if exists && old.conn != conn {
		old.conn.Close()
	}
	h.logger.Debug("realtime: registered connection", zap.String("userID", userID))
}

// UnregisterConn removes entries by connection identity, not just by id,
// since a user may reconnect before the old handle is cleaned up.
func (h *Hub) UnregisterConn(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.sessions {
		if s.conn == conn {
			delete(h.sessions, id)
		}
	}
}

// Online reports whether a user currently has a registered connection.
func (h *Hub) Online(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.sessions[userID]
	return ok
}

// Send pushes an event to the user's connection if one is registered.
// Writes to the same connection are serialized through the session lock.
// Returns false without error when the user is offline or the write fails;
// undelivered events are not queued. Durable notice relies on the
// notification record already persisted.
func (h *Hub) Send(userID string, event Event) bool {
	h.mu.RLock()
	s, ok := h.sessions[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	s.writeMu.Lock()
	err := s.conn.WriteJSON(event)
	s.writeMu.Unlock()
	if err != nil {
		h.logger.Warn("realtime: push failed, dropping connection",
			zap.String("userID", userID), zap.Error(err))
		h.UnregisterConn(s.conn)
		s.conn.Close()
		return false
	}
	return true
}
