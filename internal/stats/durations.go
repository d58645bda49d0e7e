package stats

import (
	"math"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// Durations returns the longest, shortest, mean and total trip duration in
// minutes. Each value is converted from seconds and rounded half-to-even.
func Durations(trips []models.Trip) (models.DurationStats, error) {
	if len(trips) == 0 {
		return models.DurationStats{}, models.ErrEmptyResult
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	sum := 0.0
	for _, t := range trips {
		d := t.DurationSeconds
		sum += d
		lo = min(lo, d)
		hi = max(hi, d)
	}
	mean := sum / float64(len(trips))

	return models.DurationStats{
		Trips:        len(trips),
		MaxMinutes:   ToMinutes(hi),
		MinMinutes:   ToMinutes(lo),
		MeanMinutes:  ToMinutes(mean),
		TotalMinutes: ToMinutes(sum),
	}, nil
}

// ToMinutes converts seconds to whole minutes, rounding half to even.
func ToMinutes(seconds float64) int64 {
	return int64(math.RoundToEven(seconds / 60))
}
