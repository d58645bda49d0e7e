// Package report renders analysis results as terminal text.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// Section identifies one page of statistics.
type Section int

const (
	// SectionTemporal covers the busiest month, weekday and hour.
	SectionTemporal Section = iota
	// SectionStations covers popular stations and routes.
	SectionStations
	// SectionDurations covers trip duration aggregates.
	SectionDurations
	// SectionDemographics covers rider breakdowns.
	SectionDemographics
)

// Sections lists every section in display order.
var Sections = []Section{SectionTemporal, SectionStations, SectionDurations, SectionDemographics}

// Title returns the section heading.
func (s Section) Title() string {
	switch s {
	case SectionTemporal:
		return "Most Frequent Times of Travel"
	case SectionStations:
		return "Most Popular Stations and Trip"
	case SectionDurations:
		return "Trip Duration"
	case SectionDemographics:
		return "User Stats"
	default:
		return "Unknown"
	}
}

// barLimit caps frequency tables so a long gender or user-type list stays on screen.
const barLimit = 8

// Render renders one section of r for the given width.
func Render(s Section, r *models.Report, width int) string {
	var body string
	var took time.Duration

	switch s {
	case SectionTemporal:
		body, took = renderTemporal(r, width), r.Timing.Temporal
	case SectionStations:
		body, took = renderStations(r), r.Timing.Stations
	case SectionDurations:
		body, took = renderDurations(r), r.Timing.Durations
	case SectionDemographics:
		body, took = renderDemographics(r, width), r.Timing.Demographics
	}

	var b strings.Builder
	b.WriteString(styles.SubTitleStyle.Render(fmt.Sprintf("Calculating %s...", s.Title())))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render(Elapsed(took)))
	return b.String()
}

// Elapsed formats a section timing.
func Elapsed(d time.Duration) string {
	return fmt.Sprintf("This took %s seconds.", strconv.FormatFloat(d.Seconds(), 'f', 4, 64))
}

// Header renders the selection summary shown above every section.
func Header(r *models.Report, width int) string {
	sel := r.Selection
	title := styles.TitleStyle.Render(fmt.Sprintf("Bikeshare · %s", sel.City))

	filters := fmt.Sprintf("month: %s   day: %s", sel.Month, sel.Day)
	source := fmt.Sprintf("loaded in %s", r.LoadTime.Round(time.Millisecond))
	if r.FromCache {
		source = "served from cache"
	}

	bar := components.NewShareBar("Matched trips", min(max(width-60, 10), 40))
	bar.SetValues(r.MatchedTrips, r.TotalTrips)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		styles.HelpStyle.Render(filters+"   "+source),
		bar.View(),
	)
}

func line(label, value string) string {
	return styles.LabelStyle.Render(label) + styles.ValueStyle.Render(value)
}

func withCount(value string, count int) string {
	return fmt.Sprintf("%s (count: %s)", value, humanize.Comma(int64(count)))
}

func renderTemporal(r *models.Report, width int) string {
	t := r.Temporal
	lines := []string{
		line("Most common month:", t.MonthName()),
		line("Most common day of week:", t.Weekday),
		line("Most common start hour:", strconv.Itoa(t.Hour)),
		"",
		components.RenderHourChart(t.TripsByHour, max(width-12, 24), 8),
	}
	if len(t.Weekdays) > 0 {
		lines = append(lines, "", components.RenderWeekdaySparkline(t.Weekdays))
	}
	return strings.Join(lines, "\n")
}

func renderStations(r *models.Report) string {
	s := r.Stations
	lines := []string{
		line("Most common start hour:", withCount(strconv.Itoa(s.Hour), s.HourCount)),
		line("Most common start station:", withCount(s.StartStation.Value, s.StartStation.Count)),
		line("Most common end station:", withCount(s.EndStation.Value, s.EndStation.Count)),
	}

	label := "Most frequent trip:"
	if len(s.Routes) > 1 {
		label = fmt.Sprintf("Most frequent trips (%d tied):", len(s.Routes))
	}
	for i, route := range s.Routes {
		if i > 0 {
			label = ""
		}
		lines = append(lines, line(label, withCount(route.Start+" → "+route.End, route.Count)))
	}
	return strings.Join(lines, "\n")
}

func minutes(n int64) string {
	unit := "minutes"
	if n == 1 {
		unit = "minute"
	}
	return humanize.Comma(n) + " " + unit
}

func renderDurations(r *models.Report) string {
	d := r.Durations
	lines := []string{
		line("Total travel time:", minutes(d.TotalMinutes)),
		line("Mean travel time:", minutes(d.MeanMinutes)),
		line("Longest trip:", minutes(d.MaxMinutes)),
		line("Shortest trip:", minutes(d.MinMinutes)),
	}
	return strings.Join(lines, "\n")
}

func renderDemographics(r *models.Report, width int) string {
	d := r.Demographics

	var b strings.Builder
	b.WriteString(styles.CardTitleStyle.Render("Trips by user type"))
	b.WriteString("\n")
	b.WriteString(components.RenderBarChart(d.UserTypes, width, barLimit))

	if !d.Available {
		b.WriteString("\n\n")
		b.WriteString(styles.WarningTextStyle.Render(
			fmt.Sprintf("Gender and birth year data are not available for %s.", r.Selection.City)))
		return b.String()
	}

	b.WriteString("\n\n")
	b.WriteString(styles.CardTitleStyle.Render("Trips by gender"))
	b.WriteString("\n")
	if len(d.Genders) == 0 {
		b.WriteString(styles.HelpStyle.Render("No gender recorded for these trips."))
	} else {
		b.WriteString(components.RenderBarChart(d.Genders, width, barLimit))
	}

	b.WriteString("\n\n")
	if d.BirthYears == nil {
		b.WriteString(styles.HelpStyle.Render("No birth year recorded for these trips."))
		return b.String()
	}
	y := d.BirthYears
	b.WriteString(strings.Join([]string{
		line("Earliest year of birth:", strconv.Itoa(y.Earliest)),
		line("Most recent year of birth:", strconv.Itoa(y.MostRecent)),
		line("Most common year of birth:", strconv.Itoa(y.MostCommon)),
	}, "\n"))
	return b.String()
}
