package stats

import (
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// Temporal returns the most common month, weekday and start hour.
// Weekday ties go to the earliest day in a Monday-first week.
func Temporal(trips []models.Trip) (models.TemporalStats, error) {
	if len(trips) == 0 {
		return models.TemporalStats{}, models.ErrEmptyResult
	}

	months := NewCounter[int]()
	weekdays := NewCounter[int]()
	hours := NewCounter[int]()
	var byHour [24]int

	for _, t := range trips {
		months.Add(t.Month)
		weekdays.Add(models.WeekdayOrder(t.Weekday))
		hours.Add(t.Hour)
		if t.Hour >= 0 && t.Hour < 24 {
			byHour[t.Hour]++
		}
	}

	month, _, _ := months.Mode()
	day, _, _ := weekdays.Mode()
	hour, _, _ := hours.Mode()

	var perDay []models.Count
	for order := range 7 {
		if n := weekdays.Get(order); n > 0 {
			perDay = append(perDay, models.Count{Value: weekdayName(order), Count: n})
		}
	}

	return models.TemporalStats{
		Month:       month,
		Weekday:     weekdayName(day),
		Hour:        hour,
		TripsByHour: byHour,
		Weekdays:    perDay,
	}, nil
}

// weekdayName maps a Monday-first position back to its name.
func weekdayName(order int) string {
	if order < 0 || order > 6 {
		return "Unknown"
	}
	return time.Weekday((order + 1) % 7).String()
}
