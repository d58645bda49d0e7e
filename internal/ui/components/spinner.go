package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// elapsedAfter is how long a load runs before the spinner shows a timer.
const elapsedAfter = time.Second

// LoadingSpinner shows a label while a dataset loads, plus a seconds
// counter once the load is slow enough for it to matter.
type LoadingSpinner struct {
	spinner spinner.Model
	label   string
	started time.Time
	style   lipgloss.Style
}

// NewSpinner creates a spinner with an initial label.
func NewSpinner(label string) LoadingSpinner {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)
	return LoadingSpinner{
		spinner: s,
		label:   label,
		style:   lipgloss.NewStyle().Foreground(styles.TextSecondary),
	}
}

// Start resets the timer and sets the label for a new load.
func (l *LoadingSpinner) Start(label string) {
	l.label = label
	l.started = time.Now()
}

// Label returns the current label.
func (l LoadingSpinner) Label() string {
	return l.label
}

// Elapsed returns the time since Start, or 0 if never started.
func (l LoadingSpinner) Elapsed() time.Duration {
	if l.started.IsZero() {
		return 0
	}
	return time.Since(l.started)
}

// Update advances the animation on spinner ticks.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// Tick starts the animation.
func (l LoadingSpinner) Tick() tea.Cmd {
	return l.spinner.Tick
}

// View renders the frame, the label and, for slow loads, whole seconds elapsed.
func (l LoadingSpinner) View() string {
	text := l.label
	if d := l.Elapsed(); d >= elapsedAfter {
		text += fmt.Sprintf(" %ds", int(d.Seconds()))
	}
	return l.spinner.View() + " " + l.style.Render(text)
}

// RenderSpinnerCentered places the spinner in the middle of a width x height area.
func RenderSpinnerCentered(s LoadingSpinner, width, height int) string {
	return styles.CenterBoth(s.View(), width, height)
}
