package models

import "time"

// Count pairs a categorical value with its number of occurrences.
type Count struct {
	Value string
	Count int
}

// TemporalStats holds the busiest month, weekday and start hour.
type TemporalStats struct {
	// TripsByHour has 24 entries, index = start hour.
	TripsByHour [24]int

	// Weekdays holds per-weekday trip counts, Monday first, days without trips omitted.
	Weekdays []Count

	Weekday string
	Month   int
	Hour    int
}

// MonthName returns the busiest month's English name.
func (t TemporalStats) MonthName() string {
	if t.Month < 1 || t.Month > 12 {
		return "Unknown"
	}
	return time.Month(t.Month).String()
}

// Route is a start/end station pair with its trip count.
type Route struct {
	Start string
	End   string
	Count int
}

// StationStats holds the busiest start hour, stations and routes.
type StationStats struct {
	StartStation Count
	EndStation   Count
	// Routes lists every start/end pair tied for the highest count.
	Routes    []Route
	Hour      int
	HourCount int
}

// DurationStats holds trip-duration aggregates in whole minutes.
// Each value is seconds / 60 rounded half-to-even.
type DurationStats struct {
	TotalMinutes int64
	MeanMinutes  int64
	MaxMinutes   int64
	MinMinutes   int64
	Trips        int
}

// BirthYearStats holds birth-year extremes and the most common year.
type BirthYearStats struct {
	Earliest   int
	MostRecent int
	MostCommon int
	Known      int
}

// DemographicStats holds rider breakdowns.
//
// Available is false for cities whose data lacks gender and birth year; in
// that case Genders and BirthYears are always empty.
type DemographicStats struct {
	BirthYears *BirthYearStats
	UserTypes  []Count
	Genders    []Count
	Total      int
	Available  bool
}

// UserTypeTotal returns the sum of the user-type table.
func (d DemographicStats) UserTypeTotal() int {
	total := 0
	for _, c := range d.UserTypes {
		total += c.Count
	}
	return total
}

// SectionTiming records how long a statistics pass took.
type SectionTiming struct {
	Temporal     time.Duration
	Stations     time.Duration
	Durations    time.Duration
	Demographics time.Duration
}

// Report is the structured result of one analysis run.
type Report struct {
	GeneratedAt  time.Time
	RunID        string
	Selection    Selection
	Sample       []Trip
	SampleTail   []Trip
	Temporal     TemporalStats
	Stations     StationStats
	Durations    DurationStats
	Demographics DemographicStats
	Timing       SectionTiming
	TotalTrips   int
	MatchedTrips int
	LoadTime     time.Duration
	FromCache    bool
}
