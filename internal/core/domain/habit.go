package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxNameLen = 100

type Kind int

const (
	KindDuration Kind = 0
	KindCount    Kind = 1
)

func (k Kind) String() string {
	switch k {
	case KindDuration:
		return "duration"
	case KindCount:
		return "count"
	default:
		return "unknown"
	}
}

func (k Kind) Valid() bool {
	return k == KindDuration || k == KindCount
}

// ParseKind accepts the names used by the API and CLI.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "duration", "timer":
		return KindDuration, nil
	case "count", "counter":
		return KindCount, nil
	default:
		return 0, ErrInvalidKind
	}
}

type Frequency int

const (
	FrequencyDaily  Frequency = 0
	FrequencyWeekly Frequency = 1
)

func (f Frequency) String() string {
	switch f {
	case FrequencyDaily:
		return "daily"
	case FrequencyWeekly:
		return "weekly"
	default:
		return "unknown"
	}
}

func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "daily":
		return FrequencyDaily, nil
	case "weekly":
		return FrequencyWeekly, nil
	default:
		return 0, ErrInvalidFrequency
	}
}

// Habit is a recurring goal owned by one person. Kind and Frequency never
// change after creation and Value always carries the variant matching Kind.
type Habit struct {
	ID          int64
	OwnerID     int64
	Name        string
	Kind        Kind
	Frequency   Frequency
	Value       HabitValue
	Streak      int
	LastUpdated time.Time
	IsCompleted bool
}

type NewHabitParams struct {
	OwnerID   int64
	Name      string
	Kind      Kind
	Frequency Frequency
	Target    int
	Unit      string
}

func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLen {
		return "", ErrHabitNameTooLong
	}
	return trimmed, nil
}

// NewHabit is the only constructor for fresh habits. The payload variant is
// selected from p.Kind. today is the creation date.
func NewHabit(p NewHabitParams, today time.Time) (*Habit, error) {
	if p.OwnerID <= 0 {
		return nil, ErrHabitInvalidOwnerID
	}

	name, err := validateName(p.Name)
	if err != nil {
		return nil, err
	}

	if !p.Frequency.Valid() {
		return nil, ErrInvalidFrequency
	}

	unit := ""
	if p.Kind == KindCount {
		unit = strings.TrimSpace(p.Unit)
	}

	value, err := NewHabitValue(p.Kind, p.Target, unit)
	if err != nil {
		return nil, err
	}

	return &Habit{
		OwnerID:     p.OwnerID,
		Name:        name,
		Kind:        p.Kind,
		Frequency:   p.Frequency,
		Value:       value,
		LastUpdated: DateOf(today),
	}, nil
}

func (h *Habit) Target() int {
	return h.Value.target()
}

func (h *Habit) Unit() string {
	switch v := h.Value.(type) {
	case *CountValue:
		return v.Unit
	case *DurationValue:
		return ""
	default:
		return ""
	}
}

// Clone returns a deep copy; the payload is not shared.
func (h *Habit) Clone() *Habit {
	c := *h
	c.Value = h.Value.clone()
	return &c
}

// Label renders the dashboard line, e.g. "[Count] Water | 3/8 glasses | Streak: 2".
func (h *Habit) Label() string {
	var b strings.Builder
	b.WriteString("[")
	switch h.Kind {
	case KindDuration:
		b.WriteString("Duration")
	case KindCount:
		b.WriteString("Count")
	}
	b.WriteString("] ")
	b.WriteString(h.Name)
	b.WriteString(" | ")
	b.WriteString(h.Value.ProgressLabel())
	b.WriteString(" | Streak: ")
	b.WriteString(strconv.Itoa(h.Streak))
	if h.IsCompleted {
		b.WriteString(" [DONE]")
	}
	return b.String()
}
