package repository

import (
	"context"
	"errors"
	"time"

	"agencydesk/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("Host").Preload("Service").
		First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListFilter narrows ListByRange. Zero values mean "no filter".
type ListFilter struct {
	HostID   int64
	ClientID int64
	Status   domain.BookingStatus
	From     time.Time
	To       time.Time
}

// ListByRange returns bookings ordered by start_time ascending, with the
// client/host/service references expanded for display.
func (r *BookingRepository) ListByRange(ctx context.Context, f ListFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Preload("Client").Preload("Host").Preload("Service").
		Order("start_time ASC")

	if f.HostID != 0 {
		q = q.Where("host_id = ?", f.HostID)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if !f.From.IsZero() {
		q = q.Where("end_time > ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("start_time < ?", f.To)
	}

	var out []domain.Booking
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindOverlapping returns occupying bookings whose half-open interval
// intersects [start, end), excluding excludeID when non-zero.
func (r *BookingRepository) FindOverlapping(ctx context.Context, hostID int64, start, end time.Time, excludeID int64) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Where("status IN ?", domain.OccupyingStatuses).
		Where("start_time < ? AND end_time > ?", end, start).
		Order("start_time ASC")
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var out []domain.Booking
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *BookingRepository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":              domain.BookingCancelled,
			"cancellation_reason": reason,
			"cancelled_at":        &now,
		}).Error
}

func (r *BookingRepository) SetGoogleEventID(ctx context.Context, id int64, eventID string) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("google_event_id", eventID).Error
}

func (r *BookingRepository) MarkReminderSent(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("reminder_sent_at", &at).Error
}

// ListConfirmedEndedBefore feeds the completion sweep.
func (r *BookingRepository) ListConfirmedEndedBefore(ctx context.Context, t time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_time <= ?", domain.BookingConfirmed, t).
		Find(&out).Error
	return out, err
}

// ListConfirmedStartingBetween feeds the reminder sweep.
func (r *BookingRepository) ListConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("Host").Preload("Service").
		Where("status = ? AND start_time BETWEEN ? AND ? AND reminder_sent_at IS NULL",
			domain.BookingConfirmed, from, to).
		Find(&out).Error
	return out, err
}
