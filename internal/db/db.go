package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
	"portfolio/pkg/outbox"
)

// OpenSQLite opens the content database at path and runs migrations.
// ":memory:" opens a private in-memory database on a single connection.
func OpenSQLite(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := MigrateSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// MigrateSQLite creates the content tables. Statements are idempotent.
func MigrateSQLite(db *sql.DB) error {
	for i, stmt := range sqliteMigrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// MigratePostgres creates the content tables in postgres.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range postgresMigrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// list columns are JSON arrays in sqlite and text[] in postgres
var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          INTEGER PRIMARY KEY,
		slug        TEXT NOT NULL UNIQUE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		tech        TEXT NOT NULL DEFAULT '[]',
		link        TEXT NOT NULL DEFAULT '',
		image       TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS skills (
		position INTEGER PRIMARY KEY,
		category TEXT NOT NULL UNIQUE,
		items    TEXT NOT NULL DEFAULT '[]',
		icon     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS achievements (
		position INTEGER PRIMARY KEY,
		title    TEXT NOT NULL,
		number   INTEGER NOT NULL DEFAULT 0,
		icon     TEXT NOT NULL DEFAULT '',
		descr    TEXT NOT NULL DEFAULT ''
	)`,
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          INTEGER PRIMARY KEY,
		slug        TEXT NOT NULL UNIQUE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		tech        TEXT[] NOT NULL DEFAULT '{}',
		link        TEXT NOT NULL DEFAULT '',
		image       TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS skills (
		position INTEGER PRIMARY KEY,
		category TEXT NOT NULL UNIQUE,
		items    TEXT[] NOT NULL DEFAULT '{}',
		icon     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS achievements (
		position INTEGER PRIMARY KEY,
		title    TEXT NOT NULL,
		number   INTEGER NOT NULL DEFAULT 0,
		icon     TEXT NOT NULL DEFAULT '',
		descr    TEXT NOT NULL DEFAULT ''
	)`,
	outbox.Schema,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_pending ON outbox_events (created_at) WHERE status = 'pending'`,
}
