package booking

import (
	"sort"
	"time"
)

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// GridStep is the slot grid the product's calendar UI renders in.
const GridStep = 30 * time.Minute

// GenerateSlots emits every bookable interval of exactly duration within
// [windowStart, windowEnd), skipping the busy intervals. Slot starts are
// aligned to a grid of step minutes anchored at windowStart; when alignment
// would leave a free gap with no slot at all, a single flush-start slot is
// emitted instead so openings are never silently lost.
//
// All intervals are half-open: a slot may begin exactly where a booking ends.
func GenerateSlots(windowStart, windowEnd time.Time, busy []TimeSlot, duration, step time.Duration) []TimeSlot {
	slots := []TimeSlot{}
	if duration <= 0 || step <= 0 || !windowEnd.After(windowStart) {
		return slots
	}

	for _, free := range freeIntervals(windowStart, windowEnd, busy) {
		emitted := false
		for t := alignUp(free.Start, windowStart, step); !t.Add(duration).After(free.End); t = t.Add(step) {
			slots = append(slots, TimeSlot{Start: t, End: t.Add(duration)})
			emitted = true
		}
		if !emitted && !free.Start.Add(duration).After(free.End) {
			slots = append(slots, TimeSlot{Start: free.Start, End: free.Start.Add(duration)})
		}
	}
	return slots
}

// alignUp rounds t up to the next grid point (anchor + n*step).
func alignUp(t, anchor time.Time, step time.Duration) time.Time {
	off := t.Sub(anchor)
	if off <= 0 {
		return anchor
	}
	rem := off % step
	if rem == 0 {
		return t
	}
	return t.Add(step - rem)
}

// freeIntervals subtracts the union of busy intervals from [open, close),
// clipping to the window and merging overlapping or adjacent busy spans first.
func freeIntervals(open, close time.Time, busy []TimeSlot) []TimeSlot {
	if len(busy) == 0 {
		return []TimeSlot{{Start: open, End: close}}
	}

	sorted := make([]TimeSlot, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	merged := make([]TimeSlot, 0, len(sorted))
	for _, b := range sorted {
		if !b.End.After(open) || !b.Start.Before(close) {
			continue
		}
		if b.Start.Before(open) {
			b.Start = open
		}
		if b.End.After(close) {
			b.End = close
		}
		if !b.End.After(b.Start) {
			continue
		}

		if len(merged) > 0 && !b.Start.After(merged[len(merged)-1].End) {
			if b.End.After(merged[len(merged)-1].End) {
				merged[len(merged)-1].End = b.End
			}
			continue
		}
		merged = append(merged, b)
	}

	cur := open
	free := make([]TimeSlot, 0, len(merged)+1)
	for _, b := range merged {
		if b.Start.After(cur) {
			free = append(free, TimeSlot{Start: cur, End: b.Start})
		}
		if b.End.After(cur) {
			cur = b.End
		}
		if !cur.Before(close) {
			break
		}
	}
	if cur.Before(close) {
		free = append(free, TimeSlot{Start: cur, End: close})
	}
	return free
}
