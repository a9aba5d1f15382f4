package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"agencydesk/internal/domain"
	"agencydesk/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByRange(ctx context.Context, f repository.ListFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindOverlapping(ctx context.Context, hostID int64, start, end time.Time, excludeID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, hostID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockBookingRepository) ListConfirmedEndedBefore(ctx context.Context, t time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockWorkingHoursRepository struct {
	mock.Mock
}

func (m *MockWorkingHoursRepository) GetWeek(ctx context.Context, hostID int64) ([]domain.WorkingHoursWindow, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkingHoursWindow), args.Error(1)
}

func newTestService(bookings BookingRepository, hours WorkingHoursRepository) *Service {
	return NewService(bookings, hours, nil, nil, nil, nil)
}

func TestService_CreateBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockHours := new(MockWorkingHoursRepository)

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	mockBookings.On("FindOverlapping", mock.Anything, int64(7), start, end, int64(0)).
		Return([]domain.Booking{}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, mockHours)

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		Title:     "Strategy call",
		HostID:    7,
		ClientID:  3,
		StartTime: start,
		EndTime:   end,
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, int64(999), b.ID)
	mockBookings.AssertExpectations(t)
}

func TestService_CreateBooking_Conflict(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockHours := new(MockWorkingHoursRepository)

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	existing := domain.Booking{ID: 42, HostID: 7, StartTime: start, EndTime: end, Status: domain.BookingConfirmed}
	mockBookings.On("FindOverlapping", mock.Anything, int64(7), start, end, int64(0)).
		Return([]domain.Booking{existing}, nil)

	service := newTestService(mockBookings, mockHours)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		Title:     "Overlapping call",
		HostID:    7,
		ClientID:  3,
		StartTime: start,
		EndTime:   end,
	})

	assert.ErrorIs(t, err, ErrConflict)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, int64(42), conflict.Conflicts[0].ID)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_InvalidInterval(t *testing.T) {
	service := newTestService(new(MockBookingRepository), new(MockWorkingHoursRepository))

	start := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)
	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		Title:     "Backwards interval",
		HostID:    7,
		ClientID:  3,
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.CreateBooking(context.Background(), CreateBookingRequest{
		Title:     "Zero length",
		HostID:    7,
		ClientID:  3,
		StartTime: start,
		EndTime:   start,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateBooking_RejectsNonInitialStatus(t *testing.T) {
	service := newTestService(new(MockBookingRepository), new(MockWorkingHoursRepository))

	start := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)
	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		Title:     "Born cancelled",
		HostID:    7,
		ClientID:  3,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    "cancelled",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_GetSlots_DefaultWeekWeekday(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockHours := new(MockWorkingHoursRepository)

	// no stored week: defaults apply (Mon-Fri 09:00-17:00)
	mockHours.On("GetWeek", mock.Anything, int64(7)).Return([]domain.WorkingHoursWindow{}, nil)
	mockBookings.On("FindOverlapping", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.Booking{}, nil)

	service := newTestService(mockBookings, mockHours)

	// 2026-09-02 is a Wednesday
	resp, err := service.GetSlots(context.Background(), 7, "2026-09-02", 30*time.Minute)

	assert.NoError(t, err)
	assert.Len(t, resp.Slots, 16)
	assert.Equal(t, time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC), resp.Slots[0].Start)
	assert.Equal(t, time.Date(2026, 9, 2, 17, 0, 0, 0, time.UTC), resp.Slots[15].End)
}

func TestService_GetSlots_DefaultWeekSundayEmpty(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockHours := new(MockWorkingHoursRepository)
	mockHours.On("GetWeek", mock.Anything, int64(7)).Return([]domain.WorkingHoursWindow{}, nil)

	service := newTestService(mockBookings, mockHours)

	// 2026-09-06 is a Sunday
	resp, err := service.GetSlots(context.Background(), 7, "2026-09-06", 30*time.Minute)

	assert.NoError(t, err)
	assert.Empty(t, resp.Slots)
	mockBookings.AssertNotCalled(t, "FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetSlots_InactiveStoredDayEmpty(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockHours := new(MockWorkingHoursRepository)

	week := domain.DefaultWeek(7)
	for i := range week {
		if week[i].DayOfWeek == domain.Wednesday {
			week[i].IsActive = false
		}
	}
	mockHours.On("GetWeek", mock.Anything, int64(7)).Return(week, nil)

	service := newTestService(mockBookings, mockHours)

	resp, err := service.GetSlots(context.Background(), 7, "2026-09-02", 30*time.Minute)

	assert.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestService_GetSlots_ExcludesOccupiedIntervals(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockHours := new(MockWorkingHoursRepository)

	mockHours.On("GetWeek", mock.Anything, int64(7)).Return([]domain.WorkingHoursWindow{}, nil)
	busy := domain.Booking{
		ID:        1,
		HostID:    7,
		StartTime: time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 2, 13, 0, 0, 0, time.UTC),
		Status:    domain.BookingConfirmed,
	}
	mockBookings.On("FindOverlapping", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.Booking{busy}, nil)

	service := newTestService(mockBookings, mockHours)

	resp, err := service.GetSlots(context.Background(), 7, "2026-09-02", 30*time.Minute)

	assert.NoError(t, err)
	assert.Len(t, resp.Slots, 14)
	for _, s := range resp.Slots {
		assert.False(t, busy.Overlaps(s.Start, s.End),
			"slot %s-%s intersects an occupied interval",
			s.Start.Format("15:04"), s.End.Format("15:04"))
	}
}

func TestService_GetSlots_BadInputs(t *testing.T) {
	service := newTestService(new(MockBookingRepository), new(MockWorkingHoursRepository))

	_, err := service.GetSlots(context.Background(), 7, "02-09-2026", 30*time.Minute)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.GetSlots(context.Background(), 7, "2026-09-02", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_UpdateBooking_RescheduleRevalidates(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockHours := new(MockWorkingHoursRepository)

	oldStart := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	stored := &domain.Booking{
		ID:        55,
		HostID:    7,
		ClientID:  3,
		StartTime: oldStart,
		EndTime:   oldStart.Add(time.Hour),
		Status:    domain.BookingConfirmed,
	}
	mockBookings.On("GetByID", mock.Anything, int64(55)).Return(stored, nil)

	newStart := time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC)
	newEnd := newStart.Add(time.Hour)
	// conflict check runs against the new interval, excluding the booking itself
	mockBookings.On("FindOverlapping", mock.Anything, int64(7), newStart, newEnd, int64(55)).
		Return([]domain.Booking{}, nil)
	mockBookings.On("Save", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, mockHours)

	b, err := service.UpdateBooking(context.Background(), 55, UpdateBookingRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingRescheduled, b.Status)
	assert.Equal(t, newStart, b.StartTime)
	mockBookings.AssertExpectations(t)
}

func TestService_UpdateBooking_RescheduleConflictLeavesBookingUntouched(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockHours := new(MockWorkingHoursRepository)

	oldStart := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	stored := &domain.Booking{
		ID:        55,
		HostID:    7,
		StartTime: oldStart,
		EndTime:   oldStart.Add(time.Hour),
		Status:    domain.BookingConfirmed,
	}
	mockBookings.On("GetByID", mock.Anything, int64(55)).Return(stored, nil)

	newStart := time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC)
	newEnd := newStart.Add(time.Hour)
	blocker := domain.Booking{ID: 77, HostID: 7, StartTime: newStart, EndTime: newEnd, Status: domain.BookingPending}
	mockBookings.On("FindOverlapping", mock.Anything, int64(7), newStart, newEnd, int64(55)).
		Return([]domain.Booking{blocker}, nil)

	service := newTestService(mockBookings, mockHours)

	_, err := service.UpdateBooking(context.Background(), 55, UpdateBookingRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})

	assert.ErrorIs(t, err, ErrConflict)
	mockBookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_UpdateBooking_CancelledCannotBeRescheduled(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	stored := &domain.Booking{
		ID:        55,
		HostID:    7,
		StartTime: time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC),
		Status:    domain.BookingCancelled,
	}
	mockBookings.On("GetByID", mock.Anything, int64(55)).Return(stored, nil)

	service := newTestService(mockBookings, new(MockWorkingHoursRepository))

	newStart := time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC)
	newEnd := newStart.Add(time.Hour)
	_, err := service.UpdateBooking(context.Background(), 55, UpdateBookingRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_UpdateBooking_MetadataOnlyKeepsStatus(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	stored := &domain.Booking{
		ID:        55,
		HostID:    7,
		Title:     "Old title",
		StartTime: time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC),
		Status:    domain.BookingConfirmed,
	}
	mockBookings.On("GetByID", mock.Anything, int64(55)).Return(stored, nil)
	mockBookings.On("Save", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, new(MockWorkingHoursRepository))

	title := "New title"
	b, err := service.UpdateBooking(context.Background(), 55, UpdateBookingRequest{Title: &title})

	assert.NoError(t, err)
	assert.Equal(t, "New title", b.Title)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	mockBookings.AssertNotCalled(t, "FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Transition_ConfirmThenComplete(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	past := time.Now().Add(-2 * time.Hour)
	stored := &domain.Booking{
		ID:        55,
		HostID:    7,
		StartTime: past,
		EndTime:   past.Add(time.Hour),
		Status:    domain.BookingConfirmed,
	}
	mockBookings.On("GetByID", mock.Anything, int64(55)).Return(stored, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(55), domain.BookingCompleted).Return(nil)

	service := newTestService(mockBookings, new(MockWorkingHoursRepository))

	b, err := service.Transition(context.Background(), 55, domain.BookingCompleted)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
	mockBookings.AssertExpectations(t)
}

func TestService_Transition_CompleteBeforeEndRejected(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	future := time.Now().Add(time.Hour)
	stored := &domain.Booking{
		ID:        55,
		HostID:    7,
		StartTime: future,
		EndTime:   future.Add(time.Hour),
		Status:    domain.BookingConfirmed,
	}
	mockBookings.On("GetByID", mock.Anything, int64(55)).Return(stored, nil)

	service := newTestService(mockBookings, new(MockWorkingHoursRepository))

	_, err := service.Transition(context.Background(), 55, domain.BookingCompleted)

	assert.ErrorIs(t, err, ErrInvalidState)
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Transition_TerminalStatusRejected(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	stored := &domain.Booking{ID: 55, HostID: 7, Status: domain.BookingCompleted}
	mockBookings.On("GetByID", mock.Anything, int64(55)).Return(stored, nil)

	service := newTestService(mockBookings, new(MockWorkingHoursRepository))

	_, err := service.Transition(context.Background(), 55, domain.BookingConfirmed)

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_CancelBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	stored := &domain.Booking{ID: 55, HostID: 7, Status: domain.BookingPending}
	mockBookings.On("GetByID", mock.Anything, int64(55)).Return(stored, nil)
	mockBookings.On("CancelWithReason", mock.Anything, int64(55), "client request").Return(nil)

	service := newTestService(mockBookings, new(MockWorkingHoursRepository))

	b, err := service.CancelBooking(context.Background(), 55, "client request")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.Equal(t, "client request", b.CancellationReason)
	mockBookings.AssertExpectations(t)
}

func TestService_CancelBooking_AlreadyCancelled(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	stored := &domain.Booking{ID: 55, HostID: 7, Status: domain.BookingCancelled}
	mockBookings.On("GetByID", mock.Anything, int64(55)).Return(stored, nil)

	service := newTestService(mockBookings, new(MockWorkingHoursRepository))

	_, err := service.CancelBooking(context.Background(), 55, "again")

	assert.ErrorIs(t, err, ErrInvalidState)
	mockBookings.AssertNotCalled(t, "CancelWithReason", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetByID_NotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(mockBookings, new(MockWorkingHoursRepository))

	_, err := service.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_CheckInterval(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	mockBookings.On("FindOverlapping", mock.Anything, int64(7), start, end, int64(0)).
		Return([]domain.Booking{}, nil)

	service := newTestService(mockBookings, new(MockWorkingHoursRepository))

	conflicts, err := service.CheckInterval(context.Background(), 7, start, end, 0)
	assert.NoError(t, err)
	assert.Empty(t, conflicts)

	_, err = service.CheckInterval(context.Background(), 7, end, start, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CompleteElapsed(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	now := time.Now()
	elapsed := []domain.Booking{
		{ID: 1, Status: domain.BookingConfirmed},
		{ID: 2, Status: domain.BookingConfirmed},
	}
	mockBookings.On("ListConfirmedEndedBefore", mock.Anything, now).Return(elapsed, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingCompleted).Return(nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(2), domain.BookingCompleted).Return(nil)

	service := newTestService(mockBookings, new(MockWorkingHoursRepository))

	done, err := service.CompleteElapsed(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 2, done)
	mockBookings.AssertExpectations(t)
}

// memoryBookingRepo is a thread-safe fake used to exercise the per-host lock
// with real concurrent callers, which mock expectations cannot express.
type memoryBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []domain.Booking
}

func (r *memoryBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *memoryBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryBookingRepo) ListByRange(ctx context.Context, f repository.ListFilter) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *memoryBookingRepo) FindOverlapping(ctx context.Context, hostID int64, start, end time.Time, excludeID int64) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for i := range r.bookings {
		b := r.bookings[i]
		if b.HostID != hostID || b.ID == excludeID || !b.Status.Occupying() {
			continue
		}
		if b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memoryBookingRepo) Save(ctx context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == b.ID {
			r.bookings[i] = *b
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memoryBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings[i].Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memoryBookingRepo) CancelWithReason(ctx context.Context, id int64, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings[i].Status = domain.BookingCancelled
			r.bookings[i].CancellationReason = reason
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memoryBookingRepo) ListConfirmedEndedBefore(ctx context.Context, t time.Time) ([]domain.Booking, error) {
	return nil, nil
}

func TestService_CreateBooking_ConcurrentSameSlot(t *testing.T) {
	repo := &memoryBookingRepo{}
	mockHours := new(MockWorkingHoursRepository)
	service := newTestService(repo, mockHours)

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	const callers = 20
	var wg sync.WaitGroup
	var created int64
	var createdMu sync.Mutex

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
				Title:     "Contended slot",
				HostID:    7,
				ClientID:  int64(n + 1),
				StartTime: start,
				EndTime:   end,
			})
			if err == nil {
				createdMu.Lock()
				created++
				createdMu.Unlock()
			} else {
				assert.ErrorIs(t, err, ErrConflict)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), created)
	assert.Len(t, repo.bookings, 1)
}

func TestService_CancelFreesIntervalForRebooking(t *testing.T) {
	repo := &memoryBookingRepo{}
	service := newTestService(repo, new(MockWorkingHoursRepository))

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	req := CreateBookingRequest{Title: "First", HostID: 7, ClientID: 1, StartTime: start, EndTime: end}

	first, err := service.CreateBooking(context.Background(), req)
	assert.NoError(t, err)

	_, err = service.CreateBooking(context.Background(), CreateBookingRequest{
		Title: "Second", HostID: 7, ClientID: 2, StartTime: start, EndTime: end,
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = service.CancelBooking(context.Background(), first.ID, "freed up")
	assert.NoError(t, err)

	second, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		Title: "Second", HostID: 7, ClientID: 2, StartTime: start, EndTime: end,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPending, second.Status)
}
