package domain

import "context"

// HabitStore is the durable keyed storage behind the engine. Implementations
// must make a single-row read or write atomic; the engine does no locking.
//
// Failures of the underlying storage must wrap ErrStoreUnavailable and an
// unknown id must be reported as ErrHabitNotFound.
type HabitStore interface {
	// Insert persists a new habit and returns the id assigned to it.
	Insert(ctx context.Context, row *HabitRow) (int64, error)

	// GetByID retrieves a single habit row.
	GetByID(ctx context.Context, id int64) (*HabitRow, error)

	// ListByOwner returns every habit of an owner in the store's natural order.
	ListByOwner(ctx context.Context, ownerID int64) ([]HabitRow, error)

	// Update overwrites the mutable columns of an existing habit.
	Update(ctx context.Context, row *HabitRow) error

	// Delete permanently removes a habit.
	Delete(ctx context.Context, id int64) error
}
