package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// HabitValue is the progress payload of a habit. The set of implementations is
// closed: only DurationValue and CountValue satisfy it.
type HabitValue interface {
	// ProgressFraction is current/target clamped to [0,1]. Display only.
	ProgressFraction() float64
	ProgressLabel() string
	IsAtOrPastTarget() bool
	ResetToZero()
	// Serialize encodes the current level as decimal text. Targets and units
	// are stored as separate attributes.
	Serialize() string

	target() int
	clone() HabitValue
}

type DurationValue struct {
	TargetMinutes  int `json:"target_minutes"`
	CurrentMinutes int `json:"current_minutes"`
}

type CountValue struct {
	TargetCount  int    `json:"target_count"`
	CurrentValue int    `json:"current_value"`
	Unit         string `json:"unit"`
}

var (
	_ HabitValue = (*DurationValue)(nil)
	_ HabitValue = (*CountValue)(nil)
)

func fraction(current, target int) float64 {
	if target <= 0 || current <= 0 {
		return 0
	}
	if current >= target {
		return 1
	}
	return float64(current) / float64(target)
}

func (v *DurationValue) ProgressFraction() float64 {
	return fraction(v.CurrentMinutes, v.TargetMinutes)
}

func (v *DurationValue) ProgressLabel() string {
	return fmt.Sprintf("%d/%d min", v.CurrentMinutes, v.TargetMinutes)
}

func (v *DurationValue) IsAtOrPastTarget() bool {
	return v.CurrentMinutes >= v.TargetMinutes
}

func (v *DurationValue) ResetToZero() {
	v.CurrentMinutes = 0
}

func (v *DurationValue) Serialize() string {
	return strconv.Itoa(v.CurrentMinutes)
}

func (v *DurationValue) target() int { return v.TargetMinutes }

func (v *DurationValue) clone() HabitValue {
	c := *v
	return &c
}

func (v *CountValue) ProgressFraction() float64 {
	return fraction(v.CurrentValue, v.TargetCount)
}

func (v *CountValue) ProgressLabel() string {
	if v.Unit == "" {
		return fmt.Sprintf("%d/%d", v.CurrentValue, v.TargetCount)
	}
	return fmt.Sprintf("%d/%d %s", v.CurrentValue, v.TargetCount, v.Unit)
}

func (v *CountValue) IsAtOrPastTarget() bool {
	return v.CurrentValue >= v.TargetCount
}

func (v *CountValue) ResetToZero() {
	v.CurrentValue = 0
}

func (v *CountValue) Serialize() string {
	return strconv.Itoa(v.CurrentValue)
}

func (v *CountValue) target() int { return v.TargetCount }

func (v *CountValue) clone() HabitValue {
	c := *v
	return &c
}

const (
	// MaxDurationTarget is one full day of minutes.
	MaxDurationTarget = 1440
	MaxCountTarget    = 1000
)

var errNegativeLevel = errors.New("progress level cannot be negative")

// NewHabitValue builds the zero-progress payload for kind.
func NewHabitValue(kind Kind, target int, unit string) (HabitValue, error) {
	if target < 1 {
		return nil, ErrInvalidTarget
	}

	switch kind {
	case KindDuration:
		if target > MaxDurationTarget {
			return nil, ErrInvalidTarget
		}
		return &DurationValue{TargetMinutes: target}, nil
	case KindCount:
		if target > MaxCountTarget {
			return nil, ErrInvalidTarget
		}
		return &CountValue{TargetCount: target, Unit: unit}, nil
	default:
		return nil, ErrInvalidKind
	}
}

// DeserializeValue rebuilds a payload from its stored attributes. Text that is
// not a non-negative decimal integer is rejected rather than read as zero.
func DeserializeValue(kind Kind, target int, unit, text string) (HabitValue, error) {
	v, err := NewHabitValue(kind, target, unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	level, err := strconv.Atoi(text)
	if err != nil {
		return nil, fmt.Errorf("%w: current value %q: %v", ErrSerialization, text, err)
	}
	if level < 0 {
		return nil, fmt.Errorf("%w: current value %q: %v", ErrSerialization, text, errNegativeLevel)
	}

	switch p := v.(type) {
	case *DurationValue:
		p.CurrentMinutes = level
	case *CountValue:
		p.CurrentValue = level
	}
	return v, nil
}
