package booking

import (
	"context"
	"time"

	"agencydesk/internal/domain"
	"agencydesk/internal/repository"
)

// BookingRepository is the persistence contract for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByRange(ctx context.Context, f repository.ListFilter) ([]domain.Booking, error)
	FindOverlapping(ctx context.Context, hostID int64, start, end time.Time, excludeID int64) ([]domain.Booking, error)
	Save(ctx context.Context, b *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	CancelWithReason(ctx context.Context, id int64, reason string) error
	ListConfirmedEndedBefore(ctx context.Context, t time.Time) ([]domain.Booking, error)
}

// WorkingHoursRepository supplies the host's stored week (empty = defaults).
type WorkingHoursRepository interface {
	GetWeek(ctx context.Context, hostID int64) ([]domain.WorkingHoursWindow, error)
}

// CalendarNotifier mirrors booking mutations to the external calendar.
// Implementations must be safe to call for hosts with no connection.
type CalendarNotifier interface {
	BookingUpserted(ctx context.Context, b *domain.Booking) error
	BookingRemoved(ctx context.Context, b *domain.Booking) error
}

// NotificationSender records in-app notifications for booking events.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
	NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking, reason string) error
}

// EventBroadcaster pushes lifecycle events to connected dashboards.
type EventBroadcaster interface {
	BroadcastBookingEvent(eventType string, b *domain.Booking)
}

// SlotCache caches computed slot lists per (host, date, duration) and
// supports whole-host invalidation. Every mutating operation on a host's
// calendar (week save, booking create/update/cancel) invalidates the host's
// tag; reads are best-effort and never fail the request.
type SlotCache interface {
	Get(ctx context.Context, hostID int64, date string, durationMin int) ([]TimeSlot, bool)
	Set(ctx context.Context, hostID int64, date string, durationMin int, slots []TimeSlot)
	InvalidateHost(ctx context.Context, hostID int64)
}
