package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
)

var _ domain.HabitStore = (*SQLHabitRepository)(nil)

// SQLHabitRepository stores habits through sqlx. Queries are written with "?"
// placeholders and rebound for the connected driver, so the same code serves
// SQLite and Postgres.
type SQLHabitRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewSQLHabitRepository(db *sqlx.DB) *SQLHabitRepository {
	return &SQLHabitRepository{db: db, timeout: 3 * time.Second}
}

const habitColumns = `id, owner_id, name, kind, frequency, target, unit, streak, last_updated, is_completed, current_value`

func (r *SQLHabitRepository) mapError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrHabitNotFound
	}

	// Class 22 is a data exception such as an out-of-range integer, class 23
	// a constraint violation. Both are caused by the caller's input.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")) {
		return fmt.Errorf("%w: %s: %s", domain.ErrInvalidArgument, op, pgErr.Message)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && (pqErr.Code.Class() == "22" || pqErr.Code.Class() == "23") {
		return fmt.Errorf("%w: %s: %s", domain.ErrInvalidArgument, op, pqErr.Message)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidArgument, op, liteErr)
	}

	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}

func (r *SQLHabitRepository) Insert(ctx context.Context, row *domain.HabitRow) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := r.db.Rebind(`
        INSERT INTO habits (
            owner_id, name, kind, frequency, target, unit,
            streak, last_updated, is_completed, current_value
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id`)

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		row.OwnerID, row.Name, row.Kind, row.Frequency, row.Target, row.Unit,
		row.Streak, row.LastUpdated, row.IsCompleted, row.CurrentValue,
	).Scan(&id)
	if err != nil {
		return 0, r.mapError("insert habit", err)
	}

	row.ID = id
	return id, nil
}

func (r *SQLHabitRepository) GetByID(ctx context.Context, id int64) (*domain.HabitRow, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var row domain.HabitRow
	query := r.db.Rebind(`SELECT ` + habitColumns + ` FROM habits WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, r.mapError("get habit", err)
	}

	return &row, nil
}

func (r *SQLHabitRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.HabitRow, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows := []domain.HabitRow{}
	query := r.db.Rebind(`SELECT ` + habitColumns + ` FROM habits WHERE owner_id = ? ORDER BY id ASC`)
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, r.mapError("list habits", err)
	}

	return rows, nil
}

// Update writes only the columns the state machine owns; name, kind,
// frequency, target and unit are fixed at creation.
func (r *SQLHabitRepository) Update(ctx context.Context, row *domain.HabitRow) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := r.db.Rebind(`
        UPDATE habits SET
            streak = ?, last_updated = ?, is_completed = ?, current_value = ?
        WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		row.Streak, row.LastUpdated, row.IsCompleted, row.CurrentValue, row.ID,
	)
	if err != nil {
		return r.mapError("update habit", err)
	}

	return r.expectOne("update habit", res)
}

func (r *SQLHabitRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM habits WHERE id = ?`), id)
	if err != nil {
		return r.mapError("delete habit", err)
	}

	return r.expectOne("delete habit", res)
}

func (r *SQLHabitRepository) expectOne(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return r.mapError(op, err)
	}
	if n == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}
