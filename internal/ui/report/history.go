package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// RunLog renders recent analysis runs and per-city totals.
func RunLog(runs []models.AnalysisRun, counts []models.CityRunCount, now time.Time, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Recent analysis runs"))
	b.WriteString("\n")

	if len(runs) == 0 {
		b.WriteString(styles.HelpStyle.Render("No runs recorded yet."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			humanize.RelTime(run.Timestamp, now, "ago", "from now"),
			run.City,
			run.Month,
			run.Day,
			statusText(run),
			humanize.Comma(int64(run.MatchedTrips)) + " / " + humanize.Comma(int64(run.TotalTrips)),
			fmt.Sprintf("%d ms", run.ElapsedMs),
		})
	}
	b.WriteString(components.RenderTable(
		[]string{"When", "City", "Month", "Day", "Status", "Matched", "Elapsed"}, rows, width))
	b.WriteString("\n\n")

	b.WriteString(styles.SubTitleStyle.Render("Runs per city"))
	b.WriteString("\n")
	cityRows := make([][]string, 0, len(counts))
	for _, c := range counts {
		cityRows = append(cityRows, []string{
			c.City,
			humanize.Comma(int64(c.Runs)),
			humanize.Comma(int64(c.Failed)),
			humanize.RelTime(c.LastRun, now, "ago", "from now"),
			c.BusiestDay.String(),
			fmt.Sprintf("%02d:00 UTC", c.BusiestHour),
		})
	}
	b.WriteString(components.RenderTable(
		[]string{"City", "Runs", "Failed", "Last run", "Busiest day", "Busiest hour"}, cityRows, width))
	b.WriteString("\n")
	return b.String()
}

func statusText(run models.AnalysisRun) string {
	switch run.Status {
	case models.RunStatusOK:
		return styles.SuccessTextStyle.Render("ok")
	case models.RunStatusEmpty:
		return styles.WarningTextStyle.Render("no trips")
	default:
		msg := "failed"
		if run.Error != "" {
			msg += ": " + run.Error
		}
		return styles.ErrorTextStyle.Render(msg)
	}
}
