package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func TestParseCity(t *testing.T) {
	tests := []struct {
		input string
		want  models.City
		ok    bool
	}{
		{"Chicago", models.CityChicago, true},
		{"New York City", models.CityNewYork, true},
		{" Washington ", models.CityWashington, true},
		{"chicago", "", false},
		{"New York", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := models.ParseCity(tt.input)
			if !tt.ok {
				require.ErrorIs(t, err, models.ErrInvalidSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCity(t *testing.T) {
	assert.True(t, models.CityChicago.HasDemographics())
	assert.True(t, models.CityNewYork.HasDemographics())
	assert.False(t, models.CityWashington.HasDemographics())
	assert.False(t, models.City("Boston").Valid())
}

func TestParseMonth(t *testing.T) {
	for _, in := range []string{"all", "January", "june", " MARCH "} {
		_, err := models.ParseMonth(in)
		assert.NoError(t, err, in)
	}
	for _, in := range []string{"july", "december", "jun", ""} {
		_, err := models.ParseMonth(in)
		assert.ErrorIs(t, err, models.ErrInvalidSelection, in)
	}
}

func TestMonthFilter_Ordinal(t *testing.T) {
	assert.Equal(t, 0, models.MonthFilter("all").Ordinal())
	assert.Equal(t, 1, models.MonthFilter("january").Ordinal())
	assert.Equal(t, 6, models.MonthFilter("june").Ordinal())
	assert.True(t, models.MonthFilter("").IsAll())
	assert.Equal(t, "all", models.MonthFilter("").String())
}

func TestParseDay(t *testing.T) {
	got, err := models.ParseDay("Friday")
	require.NoError(t, err)
	assert.Equal(t, models.DayFilter("friday"), got)
	assert.Equal(t, "Friday", got.Title())

	_, err = models.ParseDay("fri")
	assert.ErrorIs(t, err, models.ErrInvalidSelection)

	assert.True(t, models.DayFilter("ALL").IsAll())
}

func TestSelection_String(t *testing.T) {
	sel := models.Selection{City: models.CityChicago, Month: "june"}
	assert.Equal(t, "Chicago / month: june / day: all", sel.String())
}

func TestWeekdayOrder(t *testing.T) {
	assert.Equal(t, 0, models.WeekdayOrder("Monday"))
	assert.Equal(t, 6, models.WeekdayOrder("Sunday"))
	assert.Equal(t, 3, models.WeekdayOrder(time.Thursday.String()))
	assert.Equal(t, -1, models.WeekdayOrder("monday"))
}
