package models

import "time"

// RawTrip is one source row with its columns resolved by header name.
// Gender and BirthYear are empty when the city's file lacks those columns.
// Line is the 1-based line in the source file, 0 when the row was not read
// from a file.
type RawTrip struct {
	Line         int
	StartTime    string
	EndTime      string
	StartStation string
	EndStation   string
	Duration     string
	UserType     string
	Gender       string
	BirthYear    string
}

// Trip is one annotated bike-share rental.
//
// Month, Weekday and Hour are derived from StartTime once, at annotation, and
// trips are never mutated afterwards. Raw keeps the source columns verbatim
// for the raw-data view.
type Trip struct {
	Raw             RawTrip
	StartTime       time.Time
	EndTime         time.Time
	StartStation    string
	EndStation      string
	UserType        string
	Gender          string
	Weekday         string
	DurationSeconds float64
	BirthYear       int
	Month           int
	Hour            int
	HasBirthYear    bool
}

// Dataset is the annotated trip set for a single city.
type Dataset struct {
	LoadedAt        time.Time
	City            City
	Path            string
	Trips           []Trip
	SizeBytes       int64
	HasDemographics bool
}

// Len returns the number of trips in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Trips)
}
