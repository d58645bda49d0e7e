package tripdata

import "github.com/j-veylop/bikeshare-dashboard-tui/internal/models"

// Filter returns the trips matching both criteria, preserving input order.
// The input slice is never modified; the result is always a new slice, even
// when neither filter applies.
func Filter(trips []models.Trip, month models.MonthFilter, day models.DayFilter) []models.Trip {
	wantMonth := 0
	if !month.IsAll() {
		wantMonth = month.Ordinal()
		if wantMonth == 0 {
			// unknown month name: nothing can match
			wantMonth = -1
		}
	}
	wantDay := ""
	if !day.IsAll() {
		wantDay = day.Title()
	}

	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if wantMonth != 0 && t.Month != wantMonth {
			continue
		}
		if wantDay != "" && t.Weekday != wantDay {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Head returns up to n trips from the start of the set.
func Head(trips []models.Trip, n int) []models.Trip {
	if n <= 0 {
		return nil
	}
	n = min(n, len(trips))
	return append([]models.Trip(nil), trips[:n]...)
}

// Tail returns up to n trips from the end of the set.
func Tail(trips []models.Trip, n int) []models.Trip {
	if n <= 0 {
		return nil
	}
	n = min(n, len(trips))
	return append([]models.Trip(nil), trips[len(trips)-n:]...)
}
