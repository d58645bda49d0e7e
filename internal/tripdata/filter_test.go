package tripdata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/tripdata"
)

func sampleTrips(t *testing.T) []models.Trip {
	t.Helper()
	starts := []string{
		"2017-01-02 08:00:00", // Monday
		"2017-01-06 09:00:00", // Friday
		"2017-06-02 10:00:00", // Friday
		"2017-06-05 11:00:00", // Monday
		"2017-06-15 12:00:00", // Thursday
	}
	rows := make([]models.RawTrip, len(starts))
	for i, s := range starts {
		rows[i] = raw(s)
	}
	trips, err := tripdata.Annotate(rows, true)
	require.NoError(t, err)
	return trips
}

func TestFilter(t *testing.T) {
	trips := sampleTrips(t)

	tests := []struct {
		name  string
		month models.MonthFilter
		day   models.DayFilter
		hours []int
	}{
		{"all/all", "all", "all", []int{8, 9, 10, 11, 12}},
		{"month only", "june", "all", []int{10, 11, 12}},
		{"day only", "all", "friday", []int{9, 10}},
		{"both", "january", "monday", []int{8}},
		{"no match", "march", "all", nil},
		{"title case day", "all", "Thursday", []int{12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tripdata.Filter(trips, tt.month, tt.day)

			var hours []int
			for _, trip := range got {
				hours = append(hours, trip.Hour)
				if !tt.month.IsAll() {
					assert.Equal(t, tt.month.Ordinal(), trip.Month)
				}
			}
			assert.Equal(t, tt.hours, hours)
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	trips := sampleTrips(t)
	once := tripdata.Filter(trips, "june", "friday")
	twice := tripdata.Filter(once, "june", "friday")
	assert.Equal(t, once, twice)
}

func TestFilter_AllIsIdentityCopy(t *testing.T) {
	trips := sampleTrips(t)
	got := tripdata.Filter(trips, "all", "all")
	require.Equal(t, trips, got)

	got[0].Hour = 99
	assert.Equal(t, 8, trips[0].Hour, "input must not be aliased")
}

func TestHeadTail(t *testing.T) {
	trips := sampleTrips(t)

	assert.Len(t, tripdata.Head(trips, 2), 2)
	assert.Equal(t, 8, tripdata.Head(trips, 2)[0].Hour)
	assert.Len(t, tripdata.Head(trips, 50), 5)
	assert.Nil(t, tripdata.Head(trips, 0))

	tail := tripdata.Tail(trips, 2)
	require.Len(t, tail, 2)
	assert.Equal(t, 12, tail[1].Hour)
	assert.Nil(t, tripdata.Tail(trips, -1))
}
