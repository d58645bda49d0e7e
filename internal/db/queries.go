package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// sqliteTimeFormat is the layout used for DATETIME columns. modernc.org/sqlite
// would otherwise store time.Time values in a form strftime cannot read.
const sqliteTimeFormat = "2006-01-02 15:04:05"

var timeFormats = []string{
	sqliteTimeFormat,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
}

func parseTimeString(s string) (time.Time, bool) {
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InsertRun records one analysis run.
func (db *DB) InsertRun(run *models.AnalysisRun) error {
	query := `
		INSERT INTO analysis_runs (
			run_id, timestamp, city, month_filter, day_filter, status, error,
			total_trips, matched_trips, elapsed_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	timestamp := run.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		run.RunID,
		timestamp.UTC().Format(sqliteTimeFormat),
		run.City,
		run.Month,
		run.Day,
		string(run.Status),
		nullString(run.Error),
		run.TotalTrips,
		run.MatchedTrips,
		run.ElapsedMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		run.ID = id
	}

	return nil
}

// GetRecentRuns returns the most recent analysis runs, newest first.
func (db *DB) GetRecentRuns(limit int) ([]models.AnalysisRun, error) {
	query := `
		SELECT id, run_id, timestamp, city, month_filter, day_filter, status,
			   error, total_trips, matched_trips, elapsed_ms
		FROM analysis_runs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []models.AnalysisRun
	for rows.Next() {
		var run models.AnalysisRun
		var timestamp string
		var status string
		var errStr sql.NullString

		err := rows.Scan(
			&run.ID,
			&run.RunID,
			&timestamp,
			&run.City,
			&run.Month,
			&run.Day,
			&status,
			&errStr,
			&run.TotalTrips,
			&run.MatchedTrips,
			&run.ElapsedMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}

		if t, ok := parseTimeString(timestamp); ok {
			run.Timestamp = t
		}
		run.Status = models.RunStatus(status)
		run.Error = errStr.String
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetCityRunCounts returns run totals per city, most used first, with the
// weekday and UTC hour the city is analyzed most. Ties go to the earlier one.
func (db *DB) GetCityRunCounts() ([]models.CityRunCount, error) {
	query := `
		SELECT
			r.city,
			COUNT(*) as runs,
			SUM(CASE WHEN r.status = 'failed' THEN 1 ELSE 0 END) as failed,
			MAX(r.timestamp) as last_run,
			(SELECT d.day_of_week FROM analysis_runs d WHERE d.city = r.city
				GROUP BY d.day_of_week ORDER BY COUNT(*) DESC, d.day_of_week ASC LIMIT 1) as busiest_day,
			(SELECT h.hour FROM analysis_runs h WHERE h.city = r.city
				GROUP BY h.hour ORDER BY COUNT(*) DESC, h.hour ASC LIMIT 1) as busiest_hour
		FROM analysis_runs r
		GROUP BY r.city
		ORDER BY runs DESC, r.city ASC
	`

	rows, err := db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query city run counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []models.CityRunCount
	for rows.Next() {
		var c models.CityRunCount
		var lastRun sql.NullString
		var busiestDay int
		if err := rows.Scan(&c.City, &c.Runs, &c.Failed, &lastRun, &busiestDay, &c.BusiestHour); err != nil {
			return nil, fmt.Errorf("failed to scan city run count: %w", err)
		}
		if lastRun.Valid {
			if t, ok := parseTimeString(lastRun.String); ok {
				c.LastRun = t
			}
		}
		c.BusiestDay = time.Weekday(busiestDay)
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// CleanupOldRuns deletes runs older than the given number of days.
func (db *DB) CleanupOldRuns(days int) (int64, error) {
	result, err := db.ExecContext(context.Background(),
		"DELETE FROM analysis_runs WHERE timestamp < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old runs: %w", err)
	}
	return result.RowsAffected()
}

// nullString converts an empty string to sql.NullString.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
