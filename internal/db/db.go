// Package db keeps the local run log in SQLite.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DB is the run-log database.
type DB struct {
	*sql.DB
	path string
}

// setup runs in order on every open. Every statement is idempotent.
var setup = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA temp_store=MEMORY",

	// day_of_week is 0 for Sunday, as strftime('%w') reports it.
	`CREATE TABLE IF NOT EXISTS analysis_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		city TEXT NOT NULL,
		month_filter TEXT NOT NULL DEFAULT 'all',
		day_filter TEXT NOT NULL DEFAULT 'all',
		status TEXT NOT NULL,
		error TEXT,
		total_trips INTEGER DEFAULT 0,
		matched_trips INTEGER DEFAULT 0,
		elapsed_ms INTEGER DEFAULT 0,
		day_of_week INTEGER GENERATED ALWAYS AS (CAST(strftime('%w', timestamp) AS INTEGER)) STORED,
		hour INTEGER GENERATED ALWAYS AS (CAST(strftime('%H', timestamp) AS INTEGER)) STORED
	)`,
	"CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON analysis_runs(timestamp)",
	"CREATE INDEX IF NOT EXISTS idx_runs_city ON analysis_runs(city)",
}

// New opens (creating if needed) the run log at path.
func New(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating run log directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}

	ctx := context.Background()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connecting to run log: %w", err)
	}

	for _, stmt := range setup {
		if _, err := sqlDB.ExecContext(ctx, stmt); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("preparing run log: %w", err)
		}
	}

	return &DB{DB: sqlDB, path: path}, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close checkpoints the WAL and closes the connection.
func (db *DB) Close() error {
	_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	return db.DB.Close()
}

// Vacuum reclaims space after pruning.
func (db *DB) Vacuum() error {
	_, err := db.ExecContext(context.Background(), "VACUUM")
	return err
}
