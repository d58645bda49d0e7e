// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"strings"
	"time"
)

// City identifies one of the supported bike-share systems.
type City string

const (
	// CityChicago is the Divvy system.
	CityChicago City = "Chicago"
	// CityNewYork is the Citi Bike system.
	CityNewYork City = "New York City"
	// CityWashington is the Capital Bikeshare system.
	CityWashington City = "Washington"
)

// Cities lists the supported cities in display order.
var Cities = []City{CityChicago, CityNewYork, CityWashington}

// String returns the display name of the city.
func (c City) String() string {
	return string(c)
}

// Valid reports whether c is one of the supported cities.
func (c City) Valid() bool {
	for _, city := range Cities {
		if c == city {
			return true
		}
	}
	return false
}

// HasDemographics reports whether the city's dataset carries gender and birth year.
// Washington's export omits both columns.
func (c City) HasDemographics() bool {
	return c == CityChicago || c == CityNewYork
}

// ParseCity validates user input against the supported city names.
// The match is exact against the Title Case display name.
func ParseCity(input string) (City, error) {
	city := City(strings.TrimSpace(input))
	if !city.Valid() {
		return "", fmt.Errorf("%w: city %q", ErrInvalidSelection, input)
	}
	return city, nil
}

// AllFilter is the sentinel for "no filter".
const AllFilter = "all"

// MonthNames is the full ordered list of lowercase month names.
// A month's ordinal is its index + 1.
var MonthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// MonthChoices are the month filter values accepted from the user.
// The datasets only cover the first half of the year.
var MonthChoices = []string{AllFilter, "january", "february", "march", "april", "may", "june"}

// DayChoices are the weekday filter values accepted from the user.
var DayChoices = []string{
	AllFilter, "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// MonthFilter is a validated month criterion: "all" or a lowercase month name.
type MonthFilter string

// IsAll reports whether the filter selects every month.
func (m MonthFilter) IsAll() bool {
	return m == "" || m == AllFilter
}

// Ordinal returns the 1-based month number, or 0 for "all".
func (m MonthFilter) Ordinal() int {
	name := strings.ToLower(string(m))
	for i, candidate := range MonthNames {
		if candidate == name {
			return i + 1
		}
	}
	return 0
}

// String returns the filter value.
func (m MonthFilter) String() string {
	if m == "" {
		return AllFilter
	}
	return string(m)
}

// ParseMonth validates a month filter value. Input is lowercased first.
func ParseMonth(input string) (MonthFilter, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	for _, choice := range MonthChoices {
		if value == choice {
			return MonthFilter(value), nil
		}
	}
	return "", fmt.Errorf("%w: month %q", ErrInvalidSelection, input)
}

// DayFilter is a validated weekday criterion: "all" or a weekday name.
// Both lowercase and Title Case forms are accepted.
type DayFilter string

// IsAll reports whether the filter selects every weekday.
func (d DayFilter) IsAll() bool {
	return d == "" || strings.EqualFold(string(d), AllFilter)
}

// Title returns the weekday name as produced by time.Weekday.String.
func (d DayFilter) Title() string {
	s := strings.ToLower(string(d))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// String returns the filter value.
func (d DayFilter) String() string {
	if d == "" {
		return AllFilter
	}
	return string(d)
}

// ParseDay validates a weekday filter value. Input is lowercased first.
func ParseDay(input string) (DayFilter, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	for _, choice := range DayChoices {
		if value == choice {
			return DayFilter(value), nil
		}
	}
	return "", fmt.Errorf("%w: day %q", ErrInvalidSelection, input)
}

// Selection is the full set of criteria for one analysis run.
type Selection struct {
	City  City
	Month MonthFilter
	Day   DayFilter
}

// String renders the selection for logs and headers.
func (s Selection) String() string {
	return fmt.Sprintf("%s / month: %s / day: %s", s.City, s.Month, s.Day)
}

// WeekdayOrder returns the Monday-first position of a weekday name, or -1.
func WeekdayOrder(name string) int {
	for i := range 7 {
		if time.Weekday((i+1)%7).String() == name {
			return i
		}
	}
	return -1
}
