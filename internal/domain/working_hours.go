package domain

import (
	"fmt"
	"time"
)

// DayOfWeek matches time.Weekday numbering (Sunday = 0).
type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WorkingHoursWindow is a host's recurring weekly availability window.
// At most one window per (host, day) is stored.
type WorkingHoursWindow struct {
	ID        int64     `json:"-" gorm:"primaryKey"`
	HostID    int64     `json:"host_id" gorm:"uniqueIndex:idx_working_hours_host_day"`
	DayOfWeek DayOfWeek `json:"day_of_week" gorm:"uniqueIndex:idx_working_hours_host_day"`
	StartTime string    `json:"start_time"` // "HH:MM", 24h
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
}

func (WorkingHoursWindow) TableName() string { return "working_hours" }

// DefaultWeek is the deterministic configuration for a host that has never
// saved availability: Monday-Friday 09:00-17:00 active, weekend inactive.
func DefaultWeek(hostID int64) []WorkingHoursWindow {
	week := make([]WorkingHoursWindow, 0, 7)
	for d := Sunday; d <= Saturday; d++ {
		week = append(week, WorkingHoursWindow{
			HostID:    hostID,
			DayOfWeek: d,
			StartTime: "09:00",
			EndTime:   "17:00",
			IsActive:  d != Sunday && d != Saturday,
		})
	}
	return week
}

// ParseClock parses an "HH:MM" local time-of-day.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t, nil
}

// Bounds resolves the window to absolute instants on the given calendar day.
func (w *WorkingHoursWindow) Bounds(day time.Time) (start, end time.Time, err error) {
	st, err := ParseClock(w.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	et, err := ParseClock(w.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(day.Year(), day.Month(), day.Day(), st.Hour(), st.Minute(), 0, 0, day.Location())
	end = time.Date(day.Year(), day.Month(), day.Day(), et.Hour(), et.Minute(), 0, 0, day.Location())
	return start, end, nil
}
