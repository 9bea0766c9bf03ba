package domain

import "time"

// Evaluate is the side-effect-free form of CheckAndReset: it returns the habit
// as it must look on today and whether a rollover happened. h is not modified.
func Evaluate(h *Habit, today time.Time) (*Habit, bool) {
	next := h.Clone()
	changed := next.CheckAndReset(today)
	return next, changed
}

// CheckAndReset performs at most one rollover when today lies in a different
// period than LastUpdated. The streak grows only when the elapsed period was
// completed and is the one right before today's; any gap means at least one
// missed period, so the run restarts from zero.
//
// A true result means the habit changed and must be written back.
func (h *Habit) CheckAndReset(today time.Time) bool {
	today = DateOf(today)
	current := PeriodKey(today, h.Frequency)
	last := PeriodKey(h.LastUpdated, h.Frequency)
	if current == last {
		return false
	}

	if h.IsCompleted && nextPeriodKey(h.LastUpdated, h.Frequency) == current {
		h.Streak++
	} else {
		h.Streak = 0
	}

	h.Value.ResetToZero()
	h.IsCompleted = false
	h.LastUpdated = today
	return true
}
