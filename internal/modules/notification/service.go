package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"agencydesk/internal/domain"
	"agencydesk/internal/repository"
)

type Service struct {
	repo *repository.NotificationRepository
}

func NewService(repo *repository.NotificationRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID int64, t domain.NotificationType, title, message string, data map[string]any) error {
	raw, _ := json.Marshal(data)
	return s.repo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    t,
		Title:   title,
		Message: message,
		Data:    raw,
	})
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}
	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	return s.Create(ctx, b.HostID, domain.NotifBookingCreated,
		"New booking",
		fmt.Sprintf("New booking %q on %s", b.Title, b.StartTime.Format("Jan 2 15:04")),
		bookingData(b))
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error {
	return s.Create(ctx, b.HostID, domain.NotifBookingConfirmed,
		"Booking confirmed",
		fmt.Sprintf("Booking %q was confirmed", b.Title),
		bookingData(b))
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, b *domain.Booking, reason string) error {
	msg := fmt.Sprintf("Booking %q was cancelled", b.Title)
	if reason != "" {
		msg += ": " + reason
	}
	return s.Create(ctx, b.HostID, domain.NotifBookingCancelled, "Booking cancelled", msg, bookingData(b))
}

func bookingData(b *domain.Booking) map[string]any {
	return map[string]any{
		"booking_id": b.ID,
		"client_id":  b.ClientID,
		"start_time": b.StartTime,
	}
}
