package events

import (
	"log"
	"net/http"
	"strconv"

	"agencydesk/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // CORS handled upstream
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/calendar", h.Subscribe)
}

// Subscribe upgrades the connection and streams the host's booking events
// until the client goes away. The read loop only drains control frames.
func (h *Handler) Subscribe(c *gin.Context) {
	hostID, err := strconv.ParseInt(c.Query("host_id"), 10, 64)
	if err != nil || hostID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "host_id is required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(hostID, conn)
	defer h.hub.Unregister(hostID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
