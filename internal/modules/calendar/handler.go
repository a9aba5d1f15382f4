package calendar

import (
	"errors"
	"net/http"

	"agencydesk/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/calendar/status", h.Status)
	rg.GET("/calendar/connect", h.Connect)
	rg.POST("/calendar/disconnect", h.Disconnect)
}

// RegisterCallbackRoute is public: Google redirects the browser here without
// our Authorization header.
func (h *Handler) RegisterCallbackRoute(rg *gin.RouterGroup) {
	rg.GET("/calendar/callback", h.Callback)
}

func (h *Handler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load calendar status")
		return
	}
	response.Success(c, http.StatusOK, status)
}

func (h *Handler) Connect(c *gin.Context) {
	resp, err := h.service.ConnectURL(c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			response.Error(c, http.StatusServiceUnavailable, "SYNC_UNAVAILABLE", "Google Calendar integration is not configured")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start calendar connection")
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "code and state are required")
		return
	}

	if err := h.service.HandleCallback(c.Request.Context(), state, code); err != nil {
		if errors.Is(err, ErrBadState) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown or expired state token")
			return
		}
		response.Error(c, http.StatusBadGateway, "SYNC_FAILED", "Calendar authorization failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Calendar connected"})
}

func (h *Handler) Disconnect(c *gin.Context) {
	if err := h.service.Disconnect(c.Request.Context(), c.GetInt64("user_id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to disconnect calendar")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Calendar disconnected"})
}
