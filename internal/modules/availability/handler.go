package availability

import (
	"errors"
	"net/http"
	"strconv"

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
	rg.GET("/availability", h.GetWeek)
	rg.POST("/availability", h.SetWeek)
}

func (h *Handler) GetWeek(c *gin.Context) {
	hostID, err := strconv.ParseInt(c.Query("host_id"), 10, 64)
	if err != nil || hostID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "host_id is required")
		return
	}

	week, err := h.service.GetWeek(c.Request.Context(), hostID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}
	response.Success(c, http.StatusOK, WeekResponse{HostID: hostID, Week: week})
}

func (h *Handler) SetWeek(c *gin.Context) {
	var req SetWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	week, err := h.service.SetWeek(c.Request.Context(), req.UserID, req.Slots)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"Invalid availability configuration", gin.H{vErr.Field: vErr.Message})
			return
		}
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid availability configuration")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save availability")
		return
	}
	response.Success(c, http.StatusOK, WeekResponse{HostID: req.UserID, Week: week})
}
