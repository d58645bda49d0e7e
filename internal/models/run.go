package models

import "time"

// RunStatus is the outcome of one analysis run.
type RunStatus string

const (
	// RunStatusOK means every statistic was computed.
	RunStatusOK RunStatus = "ok"
	// RunStatusEmpty means the filters matched no trips.
	RunStatusEmpty RunStatus = "empty"
	// RunStatusFailed means the dataset could not be loaded or parsed.
	RunStatusFailed RunStatus = "failed"
)

// AnalysisRun is one entry of the persisted run log.
type AnalysisRun struct {
	Timestamp    time.Time
	RunID        string
	City         string
	Month        string
	Day          string
	Status       RunStatus
	Error        string
	ID           int64
	TotalTrips   int
	MatchedTrips int
	ElapsedMs    int64
}

// CityRunCount aggregates the run log by city. BusiestHour is in UTC,
// matching the stored timestamps.
type CityRunCount struct {
	LastRun     time.Time
	City        string
	Runs        int
	Failed      int
	BusiestDay  time.Weekday
	BusiestHour int
}
