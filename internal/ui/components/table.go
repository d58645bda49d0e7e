package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// minColumnWidth keeps narrow terminals from collapsing a column entirely.
const minColumnWidth = 4

// RenderTable lays out rows under headers, shrinking the widest columns
// until the table fits width. Cells that do not fit are truncated with an
// ellipsis.
func RenderTable(headers []string, rows [][]string, width int) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := range headers {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}
	}

	// Each cell carries one space of padding on either side.
	fitColumns(widths, width-2*len(widths))

	var b strings.Builder
	b.WriteString(styles.TableHeaderStyle.Render(renderRow(headers, widths)))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(renderRow(row, widths))
	}
	return b.String()
}

func renderRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = ansi.Truncate(cell, w, "…")
		parts[i] = styles.TableCellStyle.Render(cell + strings.Repeat(" ", w-lipgloss.Width(cell)))
	}
	return strings.Join(parts, "")
}

// fitColumns narrows the widest column one cell at a time until the total
// fits budget or every column is at minColumnWidth.
func fitColumns(widths []int, budget int) {
	if budget <= 0 {
		return
	}
	for {
		total := 0
		widest := 0
		for i, w := range widths {
			total += w
			if w > widths[widest] {
				widest = i
			}
		}
		if total <= budget || widths[widest] <= minColumnWidth {
			return
		}
		widths[widest]--
	}
}
