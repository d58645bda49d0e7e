package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

var (
	sampleHeaders     = []string{"Start Time", "End Time", "Trip Duration", "Start Station", "End Station", "User Type"}
	demographicHeader = []string{"Gender", "Birth Year"}
)

// Sample renders the raw-data sample: the first rows of the filtered set,
// then the last rows when the set is longer than the head.
func Sample(r *models.Report, width int) string {
	withDemographics := r.Demographics.Available

	headers := sampleHeaders
	if withDemographics {
		headers = append(append([]string{}, sampleHeaders...), demographicHeader...)
	}

	rows := make([][]string, 0, len(r.Sample)+len(r.SampleTail)+1)
	for _, t := range r.Sample {
		rows = append(rows, sampleRow(t, withDemographics))
	}
	if len(r.SampleTail) > 0 {
		if skipped := r.MatchedTrips - len(r.Sample) - len(r.SampleTail); skipped > 0 {
			rows = append(rows, []string{fmt.Sprintf("… %s rows …", humanize.Comma(int64(skipped)))})
		}
		for _, t := range r.SampleTail {
			rows = append(rows, sampleRow(t, withDemographics))
		}
	}

	var b strings.Builder
	b.WriteString(styles.SubTitleStyle.Render(fmt.Sprintf("Raw data: first and last rows of %s trips",
		humanize.Comma(int64(r.MatchedTrips)))))
	b.WriteString("\n")
	b.WriteString(components.RenderTable(headers, rows, width))
	return b.String()
}

// sampleRow shows the columns exactly as the export wrote them.
func sampleRow(t models.Trip, withDemographics bool) []string {
	r := t.Raw
	row := []string{r.StartTime, r.EndTime, r.Duration, r.StartStation, r.EndStation, r.UserType}
	if withDemographics {
		row = append(row, r.Gender, r.BirthYear)
	}
	return row
}
