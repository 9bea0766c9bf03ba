package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
)

var _ domain.HabitStore = (*InMemoryHabitRepository)(nil)

// InMemoryHabitRepository keeps rows in insertion order. Rows are copied on
// the way in and out so callers never share state with the store.
type InMemoryHabitRepository struct {
	store  map[int64]domain.HabitRow
	order  []int64
	nextID int64

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[int64]domain.HabitRow),
	}
}

func (r *InMemoryHabitRepository) Insert(ctx context.Context, row *domain.HabitRow) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *row
	stored.ID = r.nextID

	r.store[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return stored.ID, nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id int64) (*domain.HabitRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return &row, nil
}

func (r *InMemoryHabitRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.HabitRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := []domain.HabitRow{}
	for _, id := range r.order {
		if row := r.store[id]; row.OwnerID == ownerID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, row *domain.HabitRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[row.ID]
	if !ok {
		return domain.ErrHabitNotFound
	}

	existing.Streak = row.Streak
	existing.LastUpdated = row.LastUpdated
	existing.IsCompleted = row.IsCompleted
	existing.CurrentValue = row.CurrentValue
	r.store[row.ID] = existing
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
