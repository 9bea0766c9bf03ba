package domain

import "fmt"

// HabitRow is the persisted shape of a habit, field for field.
type HabitRow struct {
	ID           int64  `json:"id" db:"id"`
	OwnerID      int64  `json:"owner_id" db:"owner_id"`
	Name         string `json:"name" db:"name"`
	Kind         int    `json:"kind" db:"kind"`
	Frequency    int    `json:"frequency" db:"frequency"`
	Target       int    `json:"target" db:"target"`
	Unit         string `json:"unit" db:"unit"`
	Streak       int    `json:"streak" db:"streak"`
	LastUpdated  string `json:"last_updated" db:"last_updated"`
	IsCompleted  int    `json:"is_completed" db:"is_completed"`
	CurrentValue string `json:"current_value" db:"current_value"`
}

func (h *Habit) ToRow() HabitRow {
	completed := 0
	if h.IsCompleted {
		completed = 1
	}

	return HabitRow{
		ID:           h.ID,
		OwnerID:      h.OwnerID,
		Name:         h.Name,
		Kind:         int(h.Kind),
		Frequency:    int(h.Frequency),
		Target:       h.Target(),
		Unit:         h.Unit(),
		Streak:       h.Streak,
		LastUpdated:  FormatDate(h.LastUpdated),
		IsCompleted:  completed,
		CurrentValue: h.Value.Serialize(),
	}
}

// HabitFromRow decodes a stored row. Any field that does not decode makes the
// whole habit unloadable with ErrSerialization; nothing is defaulted.
func HabitFromRow(r HabitRow) (*Habit, error) {
	kind := Kind(r.Kind)
	if !kind.Valid() {
		return nil, corruptRow(r.ID, "kind", fmt.Errorf("unknown tag %d", r.Kind))
	}

	freq := Frequency(r.Frequency)
	if !freq.Valid() {
		return nil, corruptRow(r.ID, "frequency", fmt.Errorf("unknown tag %d", r.Frequency))
	}

	if r.Streak < 0 {
		return nil, corruptRow(r.ID, "streak", fmt.Errorf("negative value %d", r.Streak))
	}

	var completed bool
	switch r.IsCompleted {
	case 0:
	case 1:
		completed = true
	default:
		return nil, corruptRow(r.ID, "is_completed", fmt.Errorf("unexpected value %d", r.IsCompleted))
	}

	lastUpdated, err := ParseDate(r.LastUpdated)
	if err != nil {
		return nil, corruptRow(r.ID, "last_updated", err)
	}

	value, err := DeserializeValue(kind, r.Target, r.Unit, r.CurrentValue)
	if err != nil {
		return nil, corruptRow(r.ID, "current_value", err)
	}

	return &Habit{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Kind:        kind,
		Frequency:   freq,
		Value:       value,
		Streak:      r.Streak,
		LastUpdated: lastUpdated,
		IsCompleted: completed,
	}, nil
}
