package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
)

var _ domain.HabitStore = (*CachedHabitRepository)(nil)

const DefaultCacheTTL = 30 * time.Minute

// CachedHabitRepository is a read-through cache for ListByOwner. Every write
// drops the owner's key, so a listing never outlives a rollover write-back.
type CachedHabitRepository struct {
	next   domain.HabitStore
	cache  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewCachedHabitRepository(next domain.HabitStore, cache *redis.Client, ttl time.Duration, logger *log.Logger) *CachedHabitRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CachedHabitRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.WithPrefix("cache"),
	}
}

func (r *CachedHabitRepository) cacheKey(ownerID int64) string {
	return fmt.Sprintf("habits:%d", ownerID)
}

func (r *CachedHabitRepository) invalidate(ctx context.Context, ownerID int64) {
	if err := r.cache.Del(ctx, r.cacheKey(ownerID)).Err(); err != nil {
		r.logger.Warn("failed to invalidate", "owner", ownerID, "err", err)
	}
}

func (r *CachedHabitRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.HabitRow, error) {
	key := r.cacheKey(ownerID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var rows []domain.HabitRow
		if err := json.Unmarshal(val, &rows); err == nil {
			r.logger.Debug("hit", "owner", ownerID, "habits", len(rows))
			return rows, nil
		}

		r.logger.Warn("corrupted entry, cleaning up key", "owner", ownerID)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("redis read error", "err", err)
	}

	rows, err := r.next.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rows); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			r.logger.Warn("redis set error", "err", setErr)
		}
	}

	return rows, nil
}

func (r *CachedHabitRepository) GetByID(ctx context.Context, id int64) (*domain.HabitRow, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedHabitRepository) Insert(ctx context.Context, row *domain.HabitRow) (int64, error) {
	id, err := r.next.Insert(ctx, row)
	if err != nil {
		return 0, err
	}
	r.invalidate(ctx, row.OwnerID)
	return id, nil
}

func (r *CachedHabitRepository) Update(ctx context.Context, row *domain.HabitRow) error {
	if err := r.next.Update(ctx, row); err != nil {
		return err
	}
	r.invalidate(ctx, row.OwnerID)
	return nil
}

func (r *CachedHabitRepository) Delete(ctx context.Context, id int64) error {
	row, err := r.next.GetByID(ctx, id)
	if err == nil && row != nil {
		defer r.invalidate(ctx, row.OwnerID)
	}

	return r.next.Delete(ctx, id)
}
