package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"agencydesk/internal/domain"
	"agencydesk/internal/pkg/response"
	"agencydesk/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/slots", h.GetSlots)
	rg.POST("/bookings/availability", h.CheckAvailability)

	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.POST("/bookings", h.CreateBooking)
	rg.PUT("/bookings/:id", h.UpdateBooking)
	rg.DELETE("/bookings/:id", h.CancelBooking)

	rg.PATCH("/bookings/:id/confirm", h.ConfirmBooking)
	rg.PATCH("/bookings/:id/complete", h.CompleteBooking)
	rg.PATCH("/bookings/:id/no-show", h.MarkNoShow)
}

func (h *Handler) GetSlots(c *gin.Context) {
	hostID, err := strconv.ParseInt(c.Query("host_id"), 10, 64)
	if err != nil || hostID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "host_id is required")
		return
	}

	duration := DefaultSlotDuration
	if raw := c.Query("duration"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "duration must be an integer number of minutes")
			return
		}
		duration = time.Duration(minutes) * time.Minute
	}

	resp, err := h.service.GetSlots(c.Request.Context(), hostID, c.Query("date"), duration)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// CheckAvailability is the advisory pre-submit check the booking form issues;
// the authoritative check re-runs inside create/update.
func (h *Handler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	conflicts, err := h.service.CheckInterval(c.Request.Context(), req.HostID, req.StartTime, req.EndTime, 0)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, AvailabilityCheckResponse{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	})
}

func (h *Handler) ListBookings(c *gin.Context) {
	f := repository.ListFilter{
		Status: domain.BookingStatus(c.Query("status")),
	}
	f.HostID, _ = strconv.ParseInt(c.Query("host_id"), 10, 64)
	f.ClientID, _ = strconv.ParseInt(c.Query("client_id"), 10, 64)

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date must be YYYY-MM-DD")
			return
		}
		f.From = t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end_date must be YYYY-MM-DD")
			return
		}
		f.To = t.Add(24 * time.Hour)
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), f)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}
	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.CreatedBy = c.GetInt64("user_id")

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}
	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req) // body optional

	b, err := h.service.CancelBooking(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ConfirmBooking(c *gin.Context) {
	h.transition(c, domain.BookingConfirmed)
}

func (h *Handler) CompleteBooking(c *gin.Context) {
	h.transition(c, domain.BookingCompleted)
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	h.transition(c, domain.BookingNoShow)
}

func (h *Handler) transition(c *gin.Context, to domain.BookingStatus) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}
	b, err := h.service.Transition(c.Request.Context(), id, to)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT",
			"The selected time overlaps an existing booking", gin.H{"conflicts": conflict.Conflicts})
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "The selected time overlaps an existing booking")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking parameters")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_STATE", "Illegal booking status transition")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
