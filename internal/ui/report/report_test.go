package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func testReport(available bool) *models.Report {
	start := time.Date(2017, 6, 15, 8, 12, 0, 0, time.UTC)
	trip := models.Trip{
		Raw: models.RawTrip{
			StartTime:    "2017-06-15 08:12:00",
			EndTime:      "2017-06-15 08:20:00.000",
			StartStation: "Clark St",
			EndStation:   "State St",
			Duration:     "480.0",
			UserType:     "Subscriber",
			Gender:       "Female",
			BirthYear:    "1985.0",
		},
		StartTime:       start,
		EndTime:         start.Add(8 * time.Minute),
		StartStation:    "Clark St",
		EndStation:      "State St",
		UserType:        "Subscriber",
		Gender:          "Female",
		DurationSeconds: 480,
		BirthYear:       1985,
		HasBirthYear:    true,
	}

	r := &models.Report{
		Selection:    models.Selection{City: models.CityChicago, Month: "june", Day: models.AllFilter},
		TotalTrips:   1000,
		MatchedTrips: 12,
		Temporal:     models.TemporalStats{Month: 6, Weekday: "Thursday", Hour: 8},
		Stations: models.StationStats{
			StartStation: models.Count{Value: "Clark St", Count: 5},
			EndStation:   models.Count{Value: "State St", Count: 4},
			Routes: []models.Route{
				{Start: "A", End: "B", Count: 3},
				{Start: "C", End: "D", Count: 3},
			},
			Hour:      8,
			HourCount: 7,
		},
		Durations: models.DurationStats{TotalMinutes: 1234, MeanMinutes: 2, MaxMinutes: 3, MinMinutes: 1},
		Demographics: models.DemographicStats{
			UserTypes: []models.Count{{Value: "Subscriber", Count: 10}, {Value: "Customer", Count: 2}},
			Available: available,
		},
		Timing:     models.SectionTiming{Temporal: 12300 * time.Microsecond},
		Sample:     []models.Trip{trip, trip},
		SampleTail: []models.Trip{trip},
	}
	r.Temporal.Weekdays = []models.Count{{Value: "Thursday", Count: 8}, {Value: "Friday", Count: 4}}
	r.Temporal.TripsByHour[8] = 7
	r.Temporal.TripsByHour[17] = 5

	if available {
		r.Demographics.Genders = []models.Count{{Value: "Female", Count: 6}, {Value: "Male", Count: 5}}
		r.Demographics.BirthYears = &models.BirthYearStats{Earliest: 1940, MostRecent: 2001, MostCommon: 1985, Known: 11}
	}
	return r
}

func TestSectionTitle(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Sections {
		title := s.Title()
		if title == "Unknown" || seen[title] {
			t.Errorf("section %d has bad title %q", s, title)
		}
		seen[title] = true
	}
	if Section(99).Title() != "Unknown" {
		t.Error("out-of-range section should be Unknown")
	}
}

func TestElapsed(t *testing.T) {
	if got := Elapsed(12300 * time.Microsecond); got != "This took 0.0123 seconds." {
		t.Errorf("Elapsed() = %q", got)
	}
}

func TestRender(t *testing.T) {
	r := testReport(true)

	tests := []struct {
		section Section
		want    []string
	}{
		{SectionTemporal, []string{"June", "Thursday", "trips by start hour", "Thu █", "This took 0.0123 seconds."}},
		{SectionStations, []string{"Clark St (count: 5)", "2 tied", "A → B", "C → D"}},
		{SectionDurations, []string{"1,234 minutes", "2 minutes", "1 minute"}},
		{SectionDemographics, []string{"Subscriber", "Female", "1940", "2001", "1985"}},
	}

	for _, tt := range tests {
		t.Run(tt.section.Title(), func(t *testing.T) {
			got := ansi.Strip(Render(tt.section, r, 100))
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("section missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestRender_DemographicsUnavailable(t *testing.T) {
	r := testReport(false)
	r.Selection.City = models.CityWashington

	got := ansi.Strip(Render(SectionDemographics, r, 100))
	if !strings.Contains(got, "not available for Washington") {
		t.Errorf("missing unavailable notice:\n%s", got)
	}
	if strings.Contains(got, "Trips by gender") {
		t.Error("gender table should not be rendered")
	}
}

func TestRender_NoBirthYears(t *testing.T) {
	r := testReport(true)
	r.Demographics.BirthYears = nil

	got := ansi.Strip(Render(SectionDemographics, r, 100))
	if !strings.Contains(got, "No birth year recorded") {
		t.Errorf("missing birth year notice:\n%s", got)
	}
}

func TestHeader(t *testing.T) {
	r := testReport(true)
	got := ansi.Strip(Header(r, 120))
	for _, want := range []string{"Chicago", "month: june", "day: all", "12 / 1,000"} {
		if !strings.Contains(got, want) {
			t.Errorf("header missing %q:\n%s", want, got)
		}
	}

	r.FromCache = true
	if !strings.Contains(ansi.Strip(Header(r, 120)), "served from cache") {
		t.Error("cached runs should say so")
	}
}

func TestSample(t *testing.T) {
	r := testReport(true)
	got := ansi.Strip(Sample(r, 200))

	for _, want := range []string{"Start Time", "Birth Year", "2017-06-15 08:12:00", "… 9 rows …",
		"2017-06-15 08:20:00.000", "480.0", "1985.0"} {
		if !strings.Contains(got, want) {
			t.Errorf("sample missing %q:\n%s", want, got)
		}
	}

	r = testReport(false)
	if strings.Contains(ansi.Strip(Sample(r, 200)), "Birth Year") {
		t.Error("sample without demographics should not show Birth Year")
	}
}

func TestRunLog(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := ansi.Strip(RunLog(nil, nil, now, 100)); !strings.Contains(got, "No runs recorded") {
		t.Errorf("empty log = %q", got)
	}

	runs := []models.AnalysisRun{
		{Timestamp: now.Add(-2 * time.Hour), City: "Chicago", Month: "all", Day: "all",
			Status: models.RunStatusOK, MatchedTrips: 1500, TotalTrips: 3000, ElapsedMs: 42},
		{Timestamp: now.Add(-3 * time.Hour), City: "Washington", Month: "march", Day: "all",
			Status: models.RunStatusFailed, Error: errors.New("boom").Error()},
	}
	counts := []models.CityRunCount{{City: "Chicago", Runs: 1, LastRun: now.Add(-2 * time.Hour),
		BusiestDay: time.Thursday, BusiestHour: 8}}

	got := ansi.Strip(RunLog(runs, counts, now, 200))
	for _, want := range []string{"2 hours ago", "1,500 / 3,000", "42 ms", "failed: boom", "Runs per city",
		"Thursday", "08:00 UTC"} {
		if !strings.Contains(got, want) {
			t.Errorf("run log missing %q:\n%s", want, got)
		}
	}
}
