package tripdata

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// TimestampLayout is the start/end time format shared by all city exports.
const TimestampLayout = "2006-01-02 15:04:05"

// Plausible birth-year bounds. Values outside are treated as corrupt rows.
const (
	minBirthYear = 1880
	maxBirthYear = 2100
)

var (
	errNegative    = errors.New("must not be negative")
	errNotFinite   = errors.New("not a finite number")
	errImplausible = errors.New("not a plausible year")
)

// ParseTimestamp parses an export timestamp. time.Parse also accepts a
// trailing fractional second (".000"), which some exports include.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}

// Annotate parses raw rows into trips and derives month, weekday and hour
// from each start time. Any malformed row fails the whole call; a partially
// annotated set is never returned.
func Annotate(raw []models.RawTrip, withDemographics bool) ([]models.Trip, error) {
	trips := make([]models.Trip, 0, len(raw))
	for i, r := range raw {
		trip, err := annotateRow(r, withDemographics)
		if err != nil {
			var pe *models.ParseError
			if errors.As(err, &pe) {
				pe.Row = i + 1
				pe.Line = r.Line
			}
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

func annotateRow(r models.RawTrip, withDemographics bool) (models.Trip, error) {
	start, err := ParseTimestamp(r.StartTime)
	if err != nil {
		return models.Trip{}, &models.ParseError{Field: "Start Time", Value: r.StartTime, Err: err}
	}

	duration, err := strconv.ParseFloat(r.Duration, 64)
	if err != nil {
		return models.Trip{}, &models.ParseError{Field: "Trip Duration", Value: r.Duration, Err: err}
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) {
		return models.Trip{}, &models.ParseError{Field: "Trip Duration", Value: r.Duration, Err: errNotFinite}
	}
	if duration < 0 {
		return models.Trip{}, &models.ParseError{Field: "Trip Duration", Value: r.Duration, Err: errNegative}
	}

	trip := models.Trip{
		Raw:             r,
		StartTime:       start,
		StartStation:    r.StartStation,
		EndStation:      r.EndStation,
		UserType:        r.UserType,
		DurationSeconds: duration,
		Month:           int(start.Month()),
		Weekday:         start.Weekday().String(),
		Hour:            start.Hour(),
	}

	// End time is informational only; a blank or odd value is not fatal.
	if end, err := ParseTimestamp(r.EndTime); err == nil {
		trip.EndTime = end
	}

	if !withDemographics {
		return trip, nil
	}

	trip.Gender = r.Gender
	if r.BirthYear != "" {
		year, err := parseBirthYear(r.BirthYear)
		if err != nil {
			return models.Trip{}, &models.ParseError{Field: "Birth Year", Value: r.BirthYear, Err: err}
		}
		trip.BirthYear = year
		trip.HasBirthYear = true
	}

	return trip, nil
}

// parseBirthYear accepts "1985" and the float form "1985.0" written by
// exports that stored the column as a nullable float.
func parseBirthYear(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	year := int(f)
	if float64(year) != f || year < minBirthYear || year > maxBirthYear {
		return 0, errImplausible
	}
	return year, nil
}
