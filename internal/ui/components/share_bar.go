package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// ShareBar renders what fraction of a whole a part represents, e.g. how many
// trips of the city's dataset passed the filters.
type ShareBar struct {
	progress progress.Model
	label    string
	part     int
	total    int
}

// NewShareBar creates a share bar of the given width.
func NewShareBar(label string, width int) ShareBar {
	p := progress.New(
		progress.WithScaledGradient("#5FAFFF", "#04B575"),
		progress.WithWidth(max(width, 10)),
		progress.WithoutPercentage(),
	)
	return ShareBar{progress: p, label: label}
}

// SetValues updates the part and whole.
func (b *ShareBar) SetValues(part, total int) {
	b.part = part
	b.total = total
}

// Percent returns the share in the range [0, 1].
func (b ShareBar) Percent() float64 {
	if b.total <= 0 {
		return 0
	}
	p := float64(b.part) / float64(b.total)
	return min(max(p, 0), 1)
}

// View renders the label, bar and counts on one line.
func (b ShareBar) View() string {
	counts := fmt.Sprintf(" %s / %s (%.1f%%)",
		humanize.Comma(int64(b.part)),
		humanize.Comma(int64(b.total)),
		b.Percent()*100,
	)
	return styles.LabelStyle.Render(b.label) + b.progress.ViewAs(b.Percent()) + styles.HelpStyle.Render(counts)
}
