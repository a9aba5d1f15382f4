package booking

import (
	"time"

	"agencydesk/internal/domain"
)

type CreateBookingRequest struct {
	Title       string            `json:"title" binding:"required"`
	HostID      int64             `json:"host_id" binding:"required"`
	ClientID    int64             `json:"client_id" binding:"required"`
	ServiceID   *int64            `json:"service_id"`
	StartTime   time.Time         `json:"start_time" binding:"required"`
	EndTime     time.Time         `json:"end_time" binding:"required"`
	Status      string            `json:"status"` // "pending" (default) or "confirmed"
	Description string            `json:"description"`
	Location    string            `json:"location"`
	MeetingURL  string            `json:"meeting_url"`
	Notes       string            `json:"notes"`
	Attendees   []domain.Attendee `json:"attendees"`
	CreatedBy   int64             `json:"-"`
}

// UpdateBookingRequest is a partial patch; nil fields are left untouched.
type UpdateBookingRequest struct {
	Title       *string            `json:"title"`
	ServiceID   *int64             `json:"service_id"`
	StartTime   *time.Time         `json:"start_time"`
	EndTime     *time.Time         `json:"end_time"`
	Description *string            `json:"description"`
	Location    *string            `json:"location"`
	MeetingURL  *string            `json:"meeting_url"`
	Notes       *string            `json:"notes"`
	Attendees   *[]domain.Attendee `json:"attendees"`
}

type CheckAvailabilityRequest struct {
	HostID    int64     `json:"host_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type SlotsResponse struct {
	Slots    []TimeSlot `json:"slots"`
	Date     string     `json:"date"`
	Duration int        `json:"duration"`
	HostID   int64      `json:"host_id"`
}

type AvailabilityCheckResponse struct {
	Available bool             `json:"available"`
	Conflicts []domain.Booking `json:"conflicts,omitempty"`
}
