package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_Paths(t *testing.T) {
	tests := []struct {
		name string
		rel  string
	}{
		{"flat", "runs.db"},
		{"nested", filepath.Join("a", "b", "runs.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.rel)
			db, err := New(path)
			if err != nil {
				t.Fatalf("New(%q) error = %v", path, err)
			}
			defer db.Close()

			if db.Path() != path {
				t.Errorf("Path() = %q, want %q", db.Path(), path)
			}
			if _, err := os.Stat(path); err != nil {
				t.Errorf("run log file missing: %v", err)
			}
		})
	}
}

func TestNew_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	first, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := first.ExecContext(context.Background(),
		"INSERT INTO analysis_runs (run_id, city, status) VALUES ('r1', 'Chicago', 'ok')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := New(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()

	var n int
	if err := second.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM analysis_runs").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("rows after reopen = %d, want 1", n)
	}
}

func TestSchema_GeneratedColumns(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// 2017-06-15 was a Thursday.
	if _, err := db.ExecContext(ctx,
		"INSERT INTO analysis_runs (run_id, timestamp, city, status) VALUES ('r1', '2017-06-15 08:12:00', 'Chicago', 'ok')"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var dow, hour int
	if err := db.QueryRowContext(ctx,
		"SELECT day_of_week, hour FROM analysis_runs WHERE run_id = 'r1'").Scan(&dow, &hour); err != nil {
		t.Fatalf("select: %v", err)
	}
	if dow != 4 || hour != 8 {
		t.Errorf("day_of_week, hour = %d, %d; want 4, 8", dow, hour)
	}
}

func TestSchema_Indexes(t *testing.T) {
	db := newTestDB(t)

	for _, idx := range []string{"idx_runs_timestamp", "idx_runs_city"} {
		var name string
		err := db.QueryRowContext(context.Background(),
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx).Scan(&name)
		if err != nil {
			t.Errorf("index %s missing: %v", idx, err)
		}
	}
}

func TestVacuum(t *testing.T) {
	db := newTestDB(t)
	if err := db.Vacuum(); err != nil {
		t.Errorf("Vacuum() error = %v", err)
	}
}

func TestClose(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if _, err := db.QueryContext(context.Background(), "SELECT 1"); err == nil {
		t.Error("query on closed run log succeeded")
	}
}
