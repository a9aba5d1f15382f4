package domain

import "time"

type BookingStatus string

const (
	BookingPending     BookingStatus = "pending"
	BookingConfirmed   BookingStatus = "confirmed"
	BookingCancelled   BookingStatus = "cancelled"
	BookingCompleted   BookingStatus = "completed"
	BookingNoShow      BookingStatus = "no_show"
	BookingRescheduled BookingStatus = "rescheduled"
)

// Occupying reports whether a booking in this status blocks its time interval
// on the host's calendar.
func (s BookingStatus) Occupying() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingRescheduled:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingCancelled, BookingCompleted, BookingNoShow:
		return true
	}
	return false
}

// OccupyingStatuses is the status set used by overlap queries.
var OccupyingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingRescheduled}

type Attendee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Booking occupies its host's calendar for [StartTime, EndTime).
type Booking struct {
	ID                 int64         `json:"id" gorm:"primaryKey"`
	HostID             int64         `json:"host_id" gorm:"index:idx_bookings_host_start"`
	ClientID           int64         `json:"client_id" gorm:"index"`
	ServiceID          *int64        `json:"service_id,omitempty"`
	Title              string        `json:"title"`
	Description        string        `json:"description,omitempty" gorm:"type:text"`
	Location           string        `json:"location,omitempty"`
	MeetingURL         string        `json:"meeting_url,omitempty"`
	Notes              string        `json:"notes,omitempty" gorm:"type:text"`
	Attendees          []Attendee    `json:"attendees,omitempty" gorm:"serializer:json"`
	StartTime          time.Time     `json:"start_time" gorm:"index:idx_bookings_host_start"`
	EndTime            time.Time     `json:"end_time"`
	Status             BookingStatus `json:"status"`
	GoogleEventID      string        `json:"google_event_id,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CreatedBy          int64         `json:"created_by"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	ReminderSentAt     *time.Time    `json:"-"`

	Client  *Client  `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Host    *User    `json:"host,omitempty" gorm:"foreignKey:HostID"`
	Service *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

// DurationMinutes is derived from the interval and stays consistent with it.
func (b *Booking) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime) / time.Minute)
}

// Overlaps applies the half-open rule: [s1,e1) and [s2,e2) conflict iff
// s1 < e2 && s2 < e1. Back-to-back bookings do not conflict.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}
