package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
)

func setupSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenDatabase(context.Background(), DatabaseConfig{Driver: DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupPostgresDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "kanso_user"), getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"), getEnv("DB_PORT", "5432"), getEnv("DB_NAME", "kanso_db"))

	db, err := OpenDatabase(context.Background(), DatabaseConfig{Driver: getEnv("DB_DRIVER", DriverPgx), DSN: dsn})
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}

	_, err = db.Exec("TRUNCATE TABLE habits RESTART IDENTITY")
	require.NoError(t, err, "Failed to clean up database for Habit Repository tests")
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLHabitRepository_SQLite(t *testing.T) {
	runStoreContract(t, NewSQLHabitRepository(setupSQLiteDB(t)))
}

func TestSQLHabitRepository_SQLiteConstraintViolation(t *testing.T) {
	repo := NewSQLHabitRepository(setupSQLiteDB(t))

	bad := newRow(1, "Bad Target")
	bad.Target = 0
	_, err := repo.Insert(context.Background(), &bad)

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSQLHabitRepository_SQLiteTargetAboveLimit(t *testing.T) {
	repo := NewSQLHabitRepository(setupSQLiteDB(t))

	bad := newRow(1, "Huge Target")
	bad.Target = 1 << 31
	_, err := repo.Insert(context.Background(), &bad)

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSQLHabitRepository_MapErrorDataException(t *testing.T) {
	repo := NewSQLHabitRepository(nil)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"pgx out of range", &pgconn.PgError{Code: "22003", Message: "integer out of range"}, domain.ErrInvalidArgument},
		{"pgx check violation", &pgconn.PgError{Code: "23514", Message: "check"}, domain.ErrInvalidArgument},
		{"pq out of range", &pq.Error{Code: "22003", Message: "integer out of range"}, domain.ErrInvalidArgument},
		{"pgx connection failure", &pgconn.PgError{Code: "08006", Message: "connection failure"}, domain.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.mapError("insert habit", tt.err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSQLHabitRepository_ClosedDatabase(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewSQLHabitRepository(db)
	require.NoError(t, db.Close())

	_, err := repo.ListByOwner(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestSQLHabitRepository_SQLiteFileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "kanso.db")

	db, err := OpenDatabase(ctx, DatabaseConfig{Driver: DriverSQLite, DSN: path})
	require.NoError(t, err)
	row := newRow(3, "Stretch")
	id, err := NewSQLHabitRepository(db).Insert(ctx, &row)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenDatabase(ctx, DatabaseConfig{Driver: DriverSQLite, DSN: path})
	require.NoError(t, err)
	defer db.Close()

	fetched, err := NewSQLHabitRepository(db).GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Stretch", fetched.Name)
}

func TestOpenDatabase_UnknownDriver(t *testing.T) {
	_, err := OpenDatabase(context.Background(), DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestSQLHabitRepository_PostgresIntegration(t *testing.T) {
	db := setupPostgresDB(t)
	repo := NewSQLHabitRepository(db)

	runStoreContract(t, repo)

	t.Run("Constraint Violation", func(t *testing.T) {
		bad := newRow(1, "Bad Kind")
		bad.Kind = 7
		_, err := repo.Insert(context.Background(), &bad)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}
