package models_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func TestDataSourceError(t *testing.T) {
	err := fmt.Errorf("load: %w", &models.DataSourceError{
		City: models.CityChicago,
		Path: "data/chicago.csv",
		Err:  os.ErrNotExist,
	})

	assert.ErrorIs(t, err, models.ErrDataSource)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, models.ErrParse)
	assert.Contains(t, err.Error(), "data/chicago.csv")

	var dse *models.DataSourceError
	assert.True(t, errors.As(err, &dse))
	assert.Equal(t, models.CityChicago, dse.City)
}

func TestParseError(t *testing.T) {
	err := &models.ParseError{Row: 4, Field: "Start Time", Value: "yesterday", Err: errors.New("bad layout")}

	assert.ErrorIs(t, err, models.ErrParse)
	assert.NotErrorIs(t, err, models.ErrDataSource)
	assert.Equal(t, `parse error: row 4: Start Time "yesterday": bad layout`, err.Error())

	err.Line = 6
	assert.Equal(t, `parse error: row 4 (line 6): Start Time "yesterday": bad layout`, err.Error())
}

func TestDemographicStats_UserTypeTotal(t *testing.T) {
	d := models.DemographicStats{UserTypes: []models.Count{{Value: "Subscriber", Count: 3}, {Value: "Unknown", Count: 1}}}
	assert.Equal(t, 4, d.UserTypeTotal())
}

func TestTemporalStats_MonthName(t *testing.T) {
	assert.Equal(t, "June", models.TemporalStats{Month: 6}.MonthName())
	assert.Equal(t, "Unknown", models.TemporalStats{}.MonthName())
}

func TestDataset_Len(t *testing.T) {
	var d *models.Dataset
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 2, (&models.Dataset{Trips: make([]models.Trip, 2)}).Len())
}
