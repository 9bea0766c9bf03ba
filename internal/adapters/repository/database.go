package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Registered database/sql driver names.
const (
	DriverPgx    = "pgx"
	DriverPq     = "postgres"
	DriverSQLite = "sqlite"
)

type DatabaseConfig struct {
	Driver string
	DSN    string
}

func isPostgres(driver string) bool {
	return driver == DriverPgx || driver == DriverPq
}

// OpenDatabase connects, applies pool settings suited to the driver and makes
// sure the habits table exists.
func OpenDatabase(ctx context.Context, cfg DatabaseConfig) (*sqlx.DB, error) {
	dsn := cfg.DSN

	switch {
	case cfg.Driver == DriverSQLite:
		if dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o700); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
			if !strings.Contains(dsn, "?") {
				dsn += "?_pragma=busy_timeout(5000)"
			}
		}
	case isPostgres(cfg.Driver):
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// one connection, otherwise every ":memory:" connection is a new database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS habits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    owner_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    kind INTEGER NOT NULL CHECK (kind IN (0, 1)),
    frequency INTEGER NOT NULL CHECK (frequency IN (0, 1)),
    target INTEGER NOT NULL CHECK (target BETWEEN 1 AND 1440),
    unit TEXT NOT NULL DEFAULT '',
    streak INTEGER NOT NULL DEFAULT 0 CHECK (streak >= 0),
    last_updated TEXT NOT NULL,
    is_completed INTEGER NOT NULL DEFAULT 0 CHECK (is_completed IN (0, 1)),
    current_value TEXT NOT NULL DEFAULT '0'
);
CREATE INDEX IF NOT EXISTS idx_habits_owner ON habits (owner_id, id);`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS habits (
    id BIGSERIAL PRIMARY KEY,
    owner_id BIGINT NOT NULL,
    name TEXT NOT NULL,
    kind INTEGER NOT NULL CHECK (kind IN (0, 1)),
    frequency INTEGER NOT NULL CHECK (frequency IN (0, 1)),
    target INTEGER NOT NULL CHECK (target BETWEEN 1 AND 1440),
    unit TEXT NOT NULL DEFAULT '',
    streak INTEGER NOT NULL DEFAULT 0 CHECK (streak >= 0),
    last_updated TEXT NOT NULL,
    is_completed INTEGER NOT NULL DEFAULT 0 CHECK (is_completed IN (0, 1)),
    current_value TEXT NOT NULL DEFAULT '0'
);
CREATE INDEX IF NOT EXISTS idx_habits_owner ON habits (owner_id, id);`

func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := sqliteSchema
	if isPostgres(db.DriverName()) {
		schema = postgresSchema
	}

	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
