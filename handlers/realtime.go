package handlers

import (
	"net/http"

	"fundihub/services/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// RealtimeHandler upgrades authenticated requests to WebSocket sessions and
// registers them with the hub.
type RealtimeHandler struct {
	Hub      *realtime.Hub
	Logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewRealtimeHandler constructs a RealtimeHandler.
func NewRealtimeHandler(hub *realtime.Hub, logger *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		Hub:    hub,
		Logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Auth happens in the JWT middleware; browser origin is not
			// part of the trust model here.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ConnectHandler handles GET /api/realtime/ws. The connection is tied to the
// authenticated requester; a newer connection for the same user replaces the
// older one.
func (h *RealtimeHandler) ConnectHandler(c *gin.Context) {
	requesterID, _, ok := requesterIdentity(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", zap.String("userID", requesterID), zap.Error(err))
		return
	}

	h.Hub.Register(requesterID, conn)
	h.Logger.Info("realtime session opened", zap.String("userID", requesterID))

	// Pump inbound frames to detect disconnects; clients are not expected
	// to send application messages.
	go func() {
		defer func() {
			h.Hub.UnregisterConn(conn)
			conn.Close()
			h.Logger.Info("realtime session closed", zap.String("userID", requesterID))
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
