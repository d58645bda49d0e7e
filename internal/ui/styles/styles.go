// Package styles holds the lipgloss palette and styles shared by the views.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Primary       = lipgloss.Color("35")
	Accent        = lipgloss.Color("33")
	Rule          = lipgloss.Color("240")
	TextStrong    = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")

	statusGood = lipgloss.Color("42")
	statusBad  = lipgloss.Color("196")
	statusWarn = lipgloss.Color("220")
	statusInfo = lipgloss.Color("39")
)

// Headings and framing.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1)
	SubTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Accent).MarginBottom(1)

	// HeaderBarStyle draws a rule under the city/month/day summary.
	HeaderBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Rule)

	CardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary)

	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// Statistic lines: a fixed-width label column followed by the value.
var (
	LabelStyle = lipgloss.NewStyle().Foreground(TextSecondary).Width(32)
	ValueStyle = lipgloss.NewStyle().Foreground(TextStrong).Bold(true)
	BarStyle   = lipgloss.NewStyle().Foreground(Accent)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(Rule)
	TableCellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// Prompts and the key legend.
var (
	PromptStyle   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	ChoiceStyle   = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)
	HelpStyle     = lipgloss.NewStyle().Foreground(Rule)
	HelpKeyStyle  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HelpDescStyle = lipgloss.NewStyle().Foreground(TextSecondary)
)

// Status text, also used to tint toasts.
var (
	SuccessTextStyle = lipgloss.NewStyle().Foreground(statusGood)
	ErrorTextStyle   = lipgloss.NewStyle().Foreground(statusBad)
	WarningTextStyle = lipgloss.NewStyle().Foreground(statusWarn)
	InfoTextStyle    = lipgloss.NewStyle().Foreground(statusInfo)
)

// CenterBoth places content in the middle of a width x height box.
func CenterBoth(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
