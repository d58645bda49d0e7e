package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Loading")
	if s.label != "Loading" {
		t.Error("Spinner label mismatch")
	}
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Init")
	if s.Elapsed() != 0 {
		t.Error("unstarted spinner should report no elapsed time")
	}

	s.Start("Loading Chicago")
	if s.Label() != "Loading Chicago" {
		t.Errorf("Label = %s, want Loading Chicago", s.Label())
	}
	if !strings.Contains(s.View(), "Loading Chicago") {
		t.Error("View should include the label")
	}
	if strings.Contains(s.View(), "0s") {
		t.Error("a fresh load should not show a timer")
	}

	if s.Tick() == nil {
		t.Error("Tick should return command")
	}

	_, cmd := s.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Update should return command for tick")
	}
}

func TestSpinner_SlowLoadTimer(t *testing.T) {
	s := NewSpinner("")
	s.Start("Loading Washington")
	s.started = time.Now().Add(-3 * time.Second)

	if !strings.Contains(s.View(), "Loading Washington 3s") {
		t.Errorf("View = %q, want elapsed seconds", s.View())
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	view := RenderSpinnerCentered(s, 30, 5)
	if lipgloss.Height(view) != 5 {
		t.Errorf("height = %d, want 5", lipgloss.Height(view))
	}
}

func TestRenderHourChart(t *testing.T) {
	var hours [24]int
	if got := RenderHourChart(hours, 40, 5); !strings.Contains(got, "No data") {
		t.Errorf("empty chart = %q, want placeholder", got)
	}

	hours[8] = 12
	hours[17] = 20
	got := RenderHourChart(hours, 40, 5)
	if !strings.Contains(got, "trips by start hour") {
		t.Error("chart should carry its caption")
	}
}

func TestRenderBarChart(t *testing.T) {
	counts := []models.Count{
		{Value: "Subscriber", Count: 1200},
		{Value: "Customer", Count: 300},
		{Value: "Dependent", Count: 1},
	}

	tests := []struct {
		name      string
		limit     int
		wantLines int
		wantMore  bool
	}{
		{"all rows", 0, 3, false},
		{"limited", 2, 3, true},
		{"limit above length", 10, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderBarChart(counts, 60, tt.limit)
			lines := strings.Split(got, "\n")
			if len(lines) != tt.wantLines {
				t.Errorf("lines = %d, want %d", len(lines), tt.wantLines)
			}
			if strings.Contains(got, "more") != tt.wantMore {
				t.Errorf("overflow line presence = %v, want %v", !tt.wantMore, tt.wantMore)
			}
			if !strings.Contains(got, "1,200") {
				t.Error("counts should use thousands separators")
			}
		})
	}

	if RenderBarChart(nil, 60, 0) != "" {
		t.Error("empty input should render nothing")
	}
}

func TestRenderBarChart_SmallCountsVisible(t *testing.T) {
	counts := []models.Count{{Value: "A", Count: 10000}, {Value: "B", Count: 1}}
	lines := strings.Split(ansi.Strip(RenderBarChart(counts, 40, 0)), "\n")
	if !strings.Contains(lines[1], "█") {
		t.Errorf("non-zero count should get at least one bar cell: %q", lines[1])
	}
}

func TestRenderWeekdaySparkline(t *testing.T) {
	got := RenderWeekdaySparkline([]models.Count{
		{Value: "Monday", Count: 10},
		{Value: "Sunday", Count: 5},
	})
	if !strings.HasPrefix(got, "Mon █") {
		t.Errorf("busiest day should get the tallest spark: %q", got)
	}
	if !strings.Contains(got, "Tue ▁") {
		t.Errorf("missing day should render as the lowest spark: %q", got)
	}
}

func TestShareBar(t *testing.T) {
	bar := NewShareBar("Matched trips", 20)
	if bar.Percent() != 0 {
		t.Errorf("Percent() with no total = %f, want 0", bar.Percent())
	}

	bar.SetValues(250, 1000)
	if bar.Percent() != 0.25 {
		t.Errorf("Percent() = %f, want 0.25", bar.Percent())
	}

	view := ansi.Strip(bar.View())
	if !strings.Contains(view, "250 / 1,000 (25.0%)") {
		t.Errorf("View() = %q", view)
	}

	bar.SetValues(5, 2)
	if bar.Percent() != 1 {
		t.Errorf("Percent() should clamp to 1, got %f", bar.Percent())
	}
}

func TestRenderTable(t *testing.T) {
	headers := []string{"Start Time", "Start Station"}
	rows := [][]string{
		{"2017-06-15 08:12:00", "Clark St & Elm St"},
		{"2017-06-15 09:00:00", "Lake Shore Dr & Monroe St"},
	}

	wide := ansi.Strip(RenderTable(headers, rows, 200))
	if !strings.Contains(wide, "Lake Shore Dr & Monroe St") {
		t.Error("wide table should not truncate")
	}

	narrow := RenderTable(headers, rows, 30)
	for _, line := range strings.Split(narrow, "\n") {
		if w := lipgloss.Width(line); w > 30 {
			t.Errorf("line width %d exceeds 30: %q", w, ansi.Strip(line))
		}
	}
	if !strings.Contains(narrow, "…") {
		t.Error("narrow table should truncate with an ellipsis")
	}

	if RenderTable(nil, rows, 80) != "" {
		t.Error("no headers should render nothing")
	}
}
