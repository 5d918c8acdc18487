package domain

import "time"

// AvailabilitySlot is an ephemeral, computed free interval not yet assigned
// to any task. Slots are produced fresh on every resolution and never stored.
type AvailabilitySlot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the slot length.
func (s AvailabilitySlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Fits reports whether the slot can hold the given duration.
func (s AvailabilitySlot) Fits(d time.Duration) bool {
	return s.Duration() >= d
}

// ResolveAvailability derives the free intervals for a date from the user's
// working hours and the day's schedule. The returned slots are non-overlapping,
// sorted ascending, and their union equals the working window minus the booked
// blocks. Zero-length slots are never emitted. A nil schedule means the whole
// window is free; a non-working weekday yields no slots at all.
func ResolveAvailability(hours WorkingHours, date time.Time, schedule *Schedule) []AvailabilitySlot {
	if !hours.IncludesDay(date.Weekday()) {
		return nil
	}

	dayStart, dayEnd := hours.WindowOn(date)
	if schedule == nil {
		return []AvailabilitySlot{{Start: dayStart, End: dayEnd}}
	}

	return schedule.FreeWithin(dayStart, dayEnd)
}
