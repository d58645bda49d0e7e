// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// RenderHourChart plots trips per start hour as an ASCII line chart.
func RenderHourChart(tripsByHour [24]int, width, height int) string {
	total := 0
	data := make([]float64, len(tripsByHour))
	for i, n := range tripsByHour {
		data[i] = float64(n)
		total += n
	}
	if total == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	if width < 24 {
		width = 24
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Green),
		asciigraph.Caption("trips by start hour (00-23)"),
	)
}

// RenderBarChart draws a horizontal bar per count. At most limit rows are
// shown; the remainder is summarised on a last line.
func RenderBarChart(counts []models.Count, width, limit int) string {
	if len(counts) == 0 {
		return ""
	}
	if limit <= 0 || limit > len(counts) {
		limit = len(counts)
	}
	shown := counts[:limit]

	maxVal := 0
	maxLabelLen := 0
	for _, c := range shown {
		maxVal = max(maxVal, c.Count)
		maxLabelLen = max(maxLabelLen, lipgloss.Width(c.Value))
	}
	if maxVal == 0 {
		maxVal = 1
	}

	barWidth := max(width-maxLabelLen-12, 10) // label, separator and value

	var lines []string
	for _, c := range shown {
		label := c.Value + strings.Repeat(" ", maxLabelLen-lipgloss.Width(c.Value))
		barLen := max(c.Count*barWidth/maxVal, 0)
		if c.Count > 0 && barLen == 0 {
			barLen = 1
		}
		bar := styles.BarStyle.Render(strings.Repeat("█", barLen))
		lines = append(lines, fmt.Sprintf("%s │%s %s", label, bar, humanize.Comma(int64(c.Count))))
	}

	if rest := len(counts) - limit; rest > 0 {
		lines = append(lines, styles.HelpStyle.Render(fmt.Sprintf("… and %d more", rest)))
	}

	return strings.Join(lines, "\n")
}

// RenderWeekdaySparkline renders one spark per weekday, Monday first.
func RenderWeekdaySparkline(counts []models.Count) string {
	values := make([]int, 7)
	for _, c := range counts {
		if i := models.WeekdayOrder(c.Value); i >= 0 {
			values[i] = c.Count
		}
	}

	maxVal := 0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	dayNames := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	parts := make([]string, len(values))
	for i, v := range values {
		level := v * (len(sparkChars) - 1) / maxVal
		parts[i] = dayNames[i] + " " + string(sparkChars[level])
	}
	return strings.Join(parts, " ")
}
