package domain

import (
	"math"
	"strings"
	"time"
)

// MaxProgressAmount bounds the amount of a single progress action.
const MaxProgressAmount = 1_000_000

type ActionType string

const (
	// ActionAddCount adds Amount to a Count habit.
	ActionAddCount ActionType = "add_count"
	// ActionAddMinutes adds Amount minutes to a Duration habit.
	ActionAddMinutes ActionType = "add_minutes"
	// ActionSetElapsed replaces the minutes of a Duration habit with the elapsed
	// time of a timer session.
	ActionSetElapsed ActionType = "set_elapsed"
	// ActionCompleteSession marks a Duration habit's target as reached, as when
	// a timer runs to the end.
	ActionCompleteSession ActionType = "complete_session"
)

type ProgressAction struct {
	Type   ActionType
	Amount int
}

func ParseActionType(s string) (ActionType, error) {
	t := ActionType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case ActionAddCount, ActionAddMinutes, ActionSetElapsed, ActionCompleteSession:
		return t, nil
	default:
		return "", ErrUnknownAction
	}
}

// Apply dispatches a progress action. It fails without mutating anything when
// the amount is negative or too large, or the action does not fit the habit's kind.
func (h *Habit) Apply(a ProgressAction, today time.Time) error {
	if a.Amount > MaxProgressAmount {
		return ErrAmountTooLarge
	}

	switch a.Type {
	case ActionAddCount:
		return h.ApplyProgress(a.Amount, today)
	case ActionAddMinutes:
		return h.AddMinutes(a.Amount, today)
	case ActionSetElapsed:
		return h.SetElapsed(a.Amount, today)
	case ActionCompleteSession:
		return h.CompleteNow(today)
	default:
		return ErrUnknownAction
	}
}

func (h *Habit) ApplyProgress(delta int, today time.Time) error {
	if delta < 0 {
		return ErrNegativeProgress
	}
	v, ok := h.Value.(*CountValue)
	if !ok {
		return ErrWrongKindAction
	}

	if delta > math.MaxInt-v.CurrentValue {
		return ErrProgressOverflow
	}

	v.CurrentValue += delta
	h.markIfReached(today)
	return nil
}

func (h *Habit) AddMinutes(minutes int, today time.Time) error {
	if minutes < 0 {
		return ErrNegativeProgress
	}
	v, ok := h.Value.(*DurationValue)
	if !ok {
		return ErrWrongKindAction
	}

	if minutes > math.MaxInt-v.CurrentMinutes {
		return ErrProgressOverflow
	}

	v.CurrentMinutes += minutes
	h.markIfReached(today)
	return nil
}

func (h *Habit) SetElapsed(minutes int, today time.Time) error {
	if minutes < 0 {
		return ErrNegativeProgress
	}
	v, ok := h.Value.(*DurationValue)
	if !ok {
		return ErrWrongKindAction
	}

	v.CurrentMinutes = minutes
	h.markIfReached(today)
	return nil
}

func (h *Habit) CompleteNow(today time.Time) error {
	v, ok := h.Value.(*DurationValue)
	if !ok {
		return ErrWrongKindAction
	}

	// An overshooting set_elapsed keeps its minutes.
	v.CurrentMinutes = max(v.CurrentMinutes, v.TargetMinutes)
	h.markIfReached(today)
	return nil
}

// markIfReached never touches the streak; that only moves on rollover.
func (h *Habit) markIfReached(today time.Time) {
	if h.IsCompleted || !h.Value.IsAtOrPastTarget() {
		return
	}
	h.IsCompleted = true
	h.LastUpdated = DateOf(today)
}
