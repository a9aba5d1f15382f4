package booking

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"agencydesk/internal/domain"
	"agencydesk/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// DefaultSlotDuration is applied when a slot query omits the duration.
const DefaultSlotDuration = 30 * time.Minute

type Service struct {
	bookings BookingRepository
	hours    WorkingHoursRepository
	sync     CalendarNotifier   // optional
	notifs   NotificationSender // optional
	events   EventBroadcaster   // optional
	cache    SlotCache          // optional

	mu        sync.Mutex
	hostLocks map[int64]*sync.Mutex
}

func NewService(
	bookings BookingRepository,
	hours WorkingHoursRepository,
	calSync CalendarNotifier,
	notifs NotificationSender,
	events EventBroadcaster,
	cache SlotCache,
) *Service {
	return &Service{
		bookings:  bookings,
		hours:     hours,
		sync:      calSync,
		notifs:    notifs,
		events:    events,
		cache:     cache,
		hostLocks: make(map[int64]*sync.Mutex),
	}
}

// hostLock serializes conflict-check-then-write per host. Slot reads stay
// lock-free; a returned slot may go stale, which is why create re-validates.
func (s *Service) hostLock(hostID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.hostLocks[hostID]
	if !ok {
		l = &sync.Mutex{}
		s.hostLocks[hostID] = l
	}
	return l
}

// GetSlots computes the free bookable intervals for a host on a calendar day.
func (s *Service) GetSlots(ctx context.Context, hostID int64, dateStr string, duration time.Duration) (*SlotsResponse, error) {
	if duration <= 0 {
		return nil, ErrValidation
	}
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrValidation
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	durationMin := int(duration / time.Minute)

	resp := &SlotsResponse{
		Slots:    []TimeSlot{},
		Date:     dateStr,
		Duration: durationMin,
		HostID:   hostID,
	}

	if s.cache != nil {
		if slots, ok := s.cache.Get(ctx, hostID, dateStr, durationMin); ok {
			resp.Slots = slots
			return resp, nil
		}
	}

	window, err := s.windowFor(ctx, hostID, domain.DayOfWeek(day.Weekday()))
	if err != nil {
		return nil, err
	}
	if !window.IsActive {
		return resp, nil
	}

	open, close, err := window.Bounds(day)
	if err != nil {
		return nil, err
	}

	occupying, err := s.bookings.FindOverlapping(ctx, hostID, open, close, 0)
	if err != nil {
		return nil, err
	}
	busy := make([]TimeSlot, 0, len(occupying))
	for _, b := range occupying {
		busy = append(busy, TimeSlot{Start: b.StartTime, End: b.EndTime})
	}

	resp.Slots = GenerateSlots(open, close, busy, duration, GridStep)
	if s.cache != nil {
		s.cache.Set(ctx, hostID, dateStr, durationMin, resp.Slots)
	}
	return resp, nil
}

func (s *Service) windowFor(ctx context.Context, hostID int64, day domain.DayOfWeek) (*domain.WorkingHoursWindow, error) {
	week, err := s.hours.GetWeek(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if len(week) == 0 {
		week = domain.DefaultWeek(hostID)
	}
	for i := range week {
		if week[i].DayOfWeek == day {
			return &week[i], nil
		}
	}
	// stored week always covers days 0-6; missing day means inactive
	return &domain.WorkingHoursWindow{HostID: hostID, DayOfWeek: day, StartTime: "09:00", EndTime: "17:00"}, nil
}

// CheckInterval is the ConflictChecker: it returns the occupying bookings
// overlapping [start, end), excluding excludeID when non-zero.
func (s *Service) CheckInterval(ctx context.Context, hostID int64, start, end time.Time, excludeID int64) ([]domain.Booking, error) {
	if !end.After(start) {
		return nil, ErrValidation
	}
	return s.bookings.FindOverlapping(ctx, hostID, start, end, excludeID)
}

func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrValidation
	}

	status := domain.BookingPending
	switch req.Status {
	case "", string(domain.BookingPending):
	case string(domain.BookingConfirmed):
		status = domain.BookingConfirmed
	default:
		return nil, ErrValidation
	}

	lock := s.hostLock(req.HostID)
	lock.Lock()
	defer lock.Unlock()

	conflicts, err := s.bookings.FindOverlapping(ctx, req.HostID, req.StartTime, req.EndTime, 0)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	b := &domain.Booking{
		HostID:      req.HostID,
		ClientID:    req.ClientID,
		ServiceID:   req.ServiceID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		MeetingURL:  req.MeetingURL,
		Notes:       req.Notes,
		Attendees:   req.Attendees,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      status,
		CreatedBy:   req.CreatedBy,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_overbooking" {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.afterMutation(b, "booking.created")
	return b, nil
}

// UpdateBooking applies a partial patch. Interval changes re-enter the
// occupying set as RESCHEDULED and must re-pass the conflict check; on any
// failure the stored booking is left untouched.
func (s *Service) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	newStart, newEnd := b.StartTime, b.EndTime
	if req.StartTime != nil {
		newStart = *req.StartTime
	}
	if req.EndTime != nil {
		newEnd = *req.EndTime
	}
	timeChanged := !newStart.Equal(b.StartTime) || !newEnd.Equal(b.EndTime)

	if timeChanged {
		if !newEnd.After(newStart) {
			return nil, ErrValidation
		}
		if !CanTransition(b.Status, domain.BookingRescheduled) {
			return nil, ErrInvalidState
		}

		lock := s.hostLock(b.HostID)
		lock.Lock()
		defer lock.Unlock()

		conflicts, err := s.bookings.FindOverlapping(ctx, b.HostID, newStart, newEnd, b.ID)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, &ConflictError{Conflicts: conflicts}
		}

		b.StartTime = newStart
		b.EndTime = newEnd
		b.Status = domain.BookingRescheduled
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.ServiceID != nil {
		b.ServiceID = req.ServiceID
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Location != nil {
		b.Location = *req.Location
	}
	if req.MeetingURL != nil {
		b.MeetingURL = *req.MeetingURL
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}
	if req.Attendees != nil {
		b.Attendees = *req.Attendees
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	s.afterMutation(b, "booking.updated")
	return b, nil
}

// Transition moves a booking through the lifecycle graph. The stored status
// is unchanged when the step is illegal.
func (s *Service) Transition(ctx context.Context, id int64, to domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, to) {
		return nil, ErrInvalidState
	}
	if to == domain.BookingCompleted && time.Now().Before(b.EndTime) {
		return nil, ErrInvalidState
	}

	if err := s.bookings.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	b.Status = to

	event := "booking.updated"
	if to == domain.BookingConfirmed {
		event = "booking.confirmed"
		if s.notifs != nil {
			_ = s.notifs.NotifyBookingConfirmed(ctx, b)
		}
	}
	s.afterMutation(b, event)
	return b, nil
}

func (s *Service) CancelBooking(ctx context.Context, id int64, reason string) (*domain.Booking, error) {
	b, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, domain.BookingCancelled) {
		return nil, ErrInvalidState
	}

	if err := s.bookings.CancelWithReason(ctx, id, reason); err != nil {
		return nil, err
	}
	b.Status = domain.BookingCancelled
	b.CancellationReason = reason

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCancelled(ctx, b, reason)
	}
	s.afterCancellation(b)
	return b, nil
}

func (s *Service) ListBookings(ctx context.Context, f repository.ListFilter) ([]domain.Booking, error) {
	return s.bookings.ListByRange(ctx, f)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.getExisting(ctx, id)
}

// CompleteElapsed marks every confirmed booking whose end time has passed as
// completed. Driven by the minutely sweep.
func (s *Service) CompleteElapsed(ctx context.Context, now time.Time) (int, error) {
	elapsed, err := s.bookings.ListConfirmedEndedBefore(ctx, now)
	if err != nil {
		return 0, err
	}
	done := 0
	for i := range elapsed {
		if err := s.bookings.UpdateStatus(ctx, elapsed[i].ID, domain.BookingCompleted); err != nil {
			log.Printf("completion sweep: booking %d: %v", elapsed[i].ID, err)
			continue
		}
		done++
	}
	return done, nil
}

func (s *Service) getExisting(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// afterMutation runs the fire-and-forget side effects of a successful write:
// external calendar sync, dashboard broadcast, slot cache invalidation.
// Failures are logged and never roll back the booking.
func (s *Service) afterMutation(b *domain.Booking, event string) {
	if s.notifs != nil && event == "booking.created" {
		_ = s.notifs.NotifyBookingCreated(context.Background(), b)
	}
	if s.events != nil {
		s.events.BroadcastBookingEvent(event, b)
	}

	snapshot := *b
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if s.cache != nil {
			s.cache.InvalidateHost(ctx, snapshot.HostID)
		}
		if s.sync != nil {
			if err := s.sync.BookingUpserted(ctx, &snapshot); err != nil {
				log.Printf("calendar sync warning: booking %d: %v", snapshot.ID, err)
			}
		}
	}()
}

func (s *Service) afterCancellation(b *domain.Booking) {
	if s.events != nil {
		s.events.BroadcastBookingEvent("booking.cancelled", b)
	}

	snapshot := *b
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if s.cache != nil {
			s.cache.InvalidateHost(ctx, snapshot.HostID)
		}
		if s.sync != nil {
			if err := s.sync.BookingRemoved(ctx, &snapshot); err != nil {
				log.Printf("calendar sync warning: booking %d: %v", snapshot.ID, err)
			}
		}
	}()
}
