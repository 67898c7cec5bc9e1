package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/todoapp/server/internal/shared/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades authenticated requests to WebSocket connections.
type Handler struct {
	hub    *Hub
	logger *zap.Logger
}

// NewHandler creates a new realtime handler.
func NewHandler(hub *Hub, logger *zap.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// RegisterRoutes registers the updates endpoint.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/updates", h.Connect)
}

// Connect subscribes the authenticated user to their own update
// stream. The subscription is bound to the principal's email, so a
// user cannot listen on someone else's updates.
func (h *Handler) Connect(c *gin.Context) {
	v, exists := c.Get("email")
	email, ok := v.(string)
	if !exists || !ok || email == "" {
		response.Unauthorized(c, "")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 16),
		email:  email,
		logger: h.logger,
	}
	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
