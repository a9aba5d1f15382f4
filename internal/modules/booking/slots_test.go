package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(hour, min int) time.Time {
	return time.Date(2026, 9, 2, hour, min, 0, 0, time.UTC)
}

func TestGenerateSlots_FullDefaultDay(t *testing.T) {
	slots := GenerateSlots(day(9, 0), day(17, 0), nil, 30*time.Minute, GridStep)

	// 8 hours at a 30-minute grid
	assert.Len(t, slots, 16)
	assert.Equal(t, day(9, 0), slots[0].Start)
	assert.Equal(t, day(9, 30), slots[0].End)
	assert.Equal(t, day(16, 30), slots[15].Start)
	assert.Equal(t, day(17, 0), slots[15].End)
}

func TestGenerateSlots_AroundExistingBooking(t *testing.T) {
	busy := []TimeSlot{{Start: day(12, 0), End: day(14, 0)}}
	slots := GenerateSlots(day(10, 0), day(18, 0), busy, 30*time.Minute, GridStep)

	// 4 slots before 12:00, 8 after 14:00
	assert.Len(t, slots, 12)
	for _, s := range slots {
		overlaps := s.Start.Before(day(14, 0)) && day(12, 0).Before(s.End)
		assert.False(t, overlaps, "slot %s-%s overlaps the busy interval",
			s.Start.Format("15:04"), s.End.Format("15:04"))
	}
	// half-open: a slot may end exactly at 12:00 and start exactly at 14:00
	assert.Equal(t, day(11, 30), slots[3].Start)
	assert.Equal(t, day(12, 0), slots[3].End)
	assert.Equal(t, day(14, 0), slots[4].Start)
}

func TestGenerateSlots_OverlappingBusyMerged(t *testing.T) {
	busy := []TimeSlot{
		{Start: day(11, 0), End: day(12, 30)},
		{Start: day(12, 0), End: day(13, 0)},
		{Start: day(13, 0), End: day(13, 30)}, // adjacent, still merged
	}
	slots := GenerateSlots(day(9, 0), day(17, 0), busy, time.Hour, GridStep)

	// free intervals after merging: 09:00-11:00 and 13:30-17:00
	assert.Len(t, slots, 9)
	assert.Equal(t, day(10, 0), slots[2].Start)
	assert.Equal(t, day(11, 0), slots[2].End)
	assert.Equal(t, day(13, 30), slots[3].Start)
	for _, s := range slots {
		assert.False(t, s.Start.Before(day(13, 30)) && day(11, 0).Before(s.End))
	}
}

func TestGenerateSlots_BusyOutsideWindowIgnored(t *testing.T) {
	busy := []TimeSlot{
		{Start: day(6, 0), End: day(8, 0)},
		{Start: day(18, 0), End: day(20, 0)},
	}
	slots := GenerateSlots(day(9, 0), day(17, 0), busy, 30*time.Minute, GridStep)
	assert.Len(t, slots, 16)
}

func TestGenerateSlots_BusyClippedToWindow(t *testing.T) {
	busy := []TimeSlot{{Start: day(8, 0), End: day(10, 0)}}
	slots := GenerateSlots(day(9, 0), day(17, 0), busy, 30*time.Minute, GridStep)

	assert.Len(t, slots, 14)
	assert.Equal(t, day(10, 0), slots[0].Start)
}

func TestGenerateSlots_FlushStartFallback(t *testing.T) {
	// The gap 09:45-10:15 holds a 30-minute opening but no grid point fits;
	// a single flush-start slot is emitted instead of dropping the opening.
	busy := []TimeSlot{{Start: day(9, 0), End: day(9, 45)}}
	slots := GenerateSlots(day(9, 0), day(10, 15), busy, 30*time.Minute, GridStep)

	assert.Len(t, slots, 1)
	assert.Equal(t, day(9, 45), slots[0].Start)
	assert.Equal(t, day(10, 15), slots[0].End)
}

func TestGenerateSlots_DurationLongerThanWindow(t *testing.T) {
	slots := GenerateSlots(day(9, 0), day(10, 0), nil, 2*time.Hour, GridStep)
	assert.Empty(t, slots)
}

func TestGenerateSlots_DegenerateInputs(t *testing.T) {
	assert.Empty(t, GenerateSlots(day(17, 0), day(9, 0), nil, 30*time.Minute, GridStep))
	assert.Empty(t, GenerateSlots(day(9, 0), day(17, 0), nil, 0, GridStep))
	assert.Empty(t, GenerateSlots(day(9, 0), day(9, 0), nil, 30*time.Minute, GridStep))
}

func TestGenerateSlots_FullyBookedDay(t *testing.T) {
	busy := []TimeSlot{{Start: day(9, 0), End: day(17, 0)}}
	slots := GenerateSlots(day(9, 0), day(17, 0), busy, 30*time.Minute, GridStep)
	assert.Empty(t, slots)
}

func TestGenerateSlots_LongerDurationSteppedOnGrid(t *testing.T) {
	slots := GenerateSlots(day(9, 0), day(12, 0), nil, time.Hour, GridStep)

	// 60-minute slots still start every 30 minutes: 09:00 through 11:00
	assert.Len(t, slots, 5)
	assert.Equal(t, day(11, 0), slots[4].Start)
	assert.Equal(t, day(12, 0), slots[4].End)
}
