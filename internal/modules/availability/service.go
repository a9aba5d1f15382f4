package availability

import (
	"context"
	"fmt"

	"agencydesk/internal/domain"
)

// WorkingHoursRepository is the persistence contract for the weekly windows.
type WorkingHoursRepository interface {
	GetWeek(ctx context.Context, hostID int64) ([]domain.WorkingHoursWindow, error)
	ReplaceWeek(ctx context.Context, hostID int64, windows []domain.WorkingHoursWindow) error
}

// SlotCacheInvalidator drops cached slot computations for a host after the
// week changes; saving availability is one of the declared invalidators of
// the "slots for this host" read-query.
type SlotCacheInvalidator interface {
	InvalidateHost(ctx context.Context, hostID int64)
}

type Service struct {
	hours WorkingHoursRepository
	cache SlotCacheInvalidator // optional
}

func NewService(hours WorkingHoursRepository, cache SlotCacheInvalidator) *Service {
	return &Service{hours: hours, cache: cache}
}

// GetWeek returns the host's configured week ordered Sunday first. A host
// that has never saved availability gets the deterministic default week; the
// default is computed, never written back on read.
func (s *Service) GetWeek(ctx context.Context, hostID int64) ([]domain.WorkingHoursWindow, error) {
	week, err := s.hours.GetWeek(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if len(week) == 0 {
		return domain.DefaultWeek(hostID), nil
	}
	return week, nil
}

// SetWeek replaces the host's configuration wholesale. The sequence must
// cover days 0-6 exactly once and every active window must satisfy
// start < end.
func (s *Service) SetWeek(ctx context.Context, hostID int64, inputs []WindowInput) ([]domain.WorkingHoursWindow, error) {
	if len(inputs) != 7 {
		return nil, &ValidationError{Field: "slots", Message: "exactly 7 windows are required"}
	}

	seen := [7]bool{}
	windows := make([]domain.WorkingHoursWindow, 0, 7)
	for _, in := range inputs {
		if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
			return nil, &ValidationError{Field: "day_of_week", Message: fmt.Sprintf("invalid day %d", in.DayOfWeek)}
		}
		if seen[in.DayOfWeek] {
			return nil, &ValidationError{Field: "day_of_week", Message: fmt.Sprintf("day %d appears more than once", in.DayOfWeek)}
		}
		seen[in.DayOfWeek] = true

		start, err := domain.ParseClock(in.StartTime)
		if err != nil {
			return nil, &ValidationError{Field: "start_time", Message: err.Error()}
		}
		end, err := domain.ParseClock(in.EndTime)
		if err != nil {
			return nil, &ValidationError{Field: "end_time", Message: err.Error()}
		}
		if in.IsActive && !end.After(start) {
			return nil, &ValidationError{
				Field:   "end_time",
				Message: fmt.Sprintf("day %d: start_time must be before end_time", in.DayOfWeek),
			}
		}

		windows = append(windows, domain.WorkingHoursWindow{
			HostID:    hostID,
			DayOfWeek: domain.DayOfWeek(in.DayOfWeek),
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			IsActive:  in.IsActive,
		})
	}

	if err := s.hours.ReplaceWeek(ctx, hostID, windows); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.InvalidateHost(ctx, hostID)
	}

	week, err := s.hours.GetWeek(ctx, hostID)
	if err != nil {
		return nil, err
	}
	return week, nil
}
