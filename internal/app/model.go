// Package app implements the interactive bikeshare exploration session.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/report"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// User-facing messages for failed runs.
const (
	msgLoadFailed  = "Could not load data"
	msgParseFailed = "Could not parse data"
	msgNoTrips     = "No trips match the selected filters"
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Submit   key.Binding
	Continue key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Continue: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "new search")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// bindingsFor returns the bindings shown in the footer for a stage.
func (k KeyMap) bindingsFor(s Stage) []key.Binding {
	switch s {
	case StageSection, StageRaw:
		return []key.Binding{k.Continue, k.Up, k.Down, k.Cancel, k.Quit}
	case StageLoading:
		return []key.Binding{k.Quit}
	default:
		return []key.Binding{k.Submit, k.Quit}
	}
}

// Model is the main application model.
type Model struct {
	backend  Backend
	state    *State
	keymap   KeyMap
	report   *models.Report
	sel      models.Selection
	inputErr string
	errMsg   string

	input    textinput.Model
	spinner  components.LoadingSpinner
	viewport viewport.Model

	eventChannel chan services.ServiceEvent

	stage   Stage
	section int
	width   int
	height  int
	ready   bool
}

// NewModel initializes a new application model.
func NewModel(backend Backend) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 32
	input.Width = 32
	input.Focus()

	return &Model{
		backend:  backend,
		state:    NewState(),
		keymap:   DefaultKeyMap(),
		input:    input,
		spinner:  components.NewSpinner("Loading..."),
		viewport: viewport.New(80, 20),
		stage:    StageCity,
	}
}

// State returns the session state.
func (m *Model) State() *State {
	return m.state
}

// Stage returns the current session stage.
func (m *Model) Stage() Stage {
	return m.stage
}

// Selection returns the criteria gathered so far.
func (m *Model) Selection() models.Selection {
	return m.sel
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, defaultTickCmd()}
	if m.backend != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.backend))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if m.stage != StageLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case AnalysisDoneMsg:
		return m, m.handleAnalysisDone(msg)

	case TickMsg:
		m.state.ClearExpiredNotifications()
		return m, defaultTickCmd()

	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		return m, waitForServiceEventCmd(m.eventChannel)

	case ServiceEventMsg:
		cmds := []tea.Cmd{m.handleServiceEvent(msg.Event)}
		if m.eventChannel != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
		}
		return m, tea.Batch(cmds...)

	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			return m, clearNotificationCmd(id, msg.Duration)
		}
		return m, nil

	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
		return m, nil
	}

	// Cursor blink and other input housekeeping.
	if m.stage.Prompting() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.viewport.Width = msg.Width
	m.viewport.Height = max(msg.Height-4, 3) // header bar and footer
	m.refreshViewport()
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keymap.Quit) {
		return tea.Quit
	}

	switch m.stage {
	case StageLoading:
		return nil

	case StageSection, StageRaw:
		switch {
		case key.Matches(msg, m.keymap.Continue):
			return m.advance()
		case key.Matches(msg, m.keymap.Cancel):
			m.startOver()
			return nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd

	default:
		if key.Matches(msg, m.keymap.Submit) {
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
}

// submit validates the current input line for the active prompt.
func (m *Model) submit() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.inputErr = ""

	switch m.stage {
	case StageCity:
		city, err := models.ParseCity(value)
		if err != nil {
			m.inputErr = invalidInput(value, "city")
			return nil
		}
		m.errMsg = ""
		m.sel = models.Selection{City: city}
		m.setStage(StageMonth)

	case StageMonth:
		month, err := models.ParseMonth(value)
		if err != nil {
			m.inputErr = invalidInput(value, "month")
			return nil
		}
		m.sel.Month = month
		m.setStage(StageDay)

	case StageDay:
		day, err := models.ParseDay(value)
		if err != nil {
			m.inputErr = invalidInput(value, "day")
			return nil
		}
		m.sel.Day = day
		return m.startAnalysis()

	case StageRawPrompt:
		switch strings.ToLower(value) {
		case "yes":
			m.setStage(StageRaw)
			m.refreshViewport()
		case "no":
			m.setStage(StageRestart)
		default:
			m.inputErr = invalidInput(value, "answer")
		}

	case StageRestart:
		if strings.EqualFold(value, "yes") {
			m.startOver()
			return nil
		}
		return tea.Quit
	}

	return nil
}

func invalidInput(value, what string) string {
	return fmt.Sprintf("%q is not a valid %s. Please try again.", value, what)
}

func (m *Model) startAnalysis() tea.Cmd {
	label := fmt.Sprintf("Loading %s...", m.sel.City)
	if m.backend != nil {
		if m.backend.Cached(m.sel.City) {
			label = fmt.Sprintf("Loading %s from cache...", m.sel.City)
		} else if size := m.backend.FileSize(m.sel.City); size > 0 {
			label = fmt.Sprintf("Loading %s (%s)...", m.sel.City, humanize.Bytes(uint64(size)))
		}
	}
	m.spinner.Start(label)
	m.setStage(StageLoading)

	if m.backend == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick(), analyzeCmd(m.backend, m.sel))
}

func (m *Model) handleAnalysisDone(msg AnalysisDoneMsg) tea.Cmd {
	m.state.RecordResult(msg.Report, msg.Err)

	if msg.Err != nil {
		m.errMsg = userMessage(msg.Err)
		logger.Debug("analysis result shown to user", "message", m.errMsg)
		m.sel = models.Selection{}
		m.setStage(StageCity)
		if errors.Is(msg.Err, models.ErrEmptyResult) {
			return notifyWarningCmd(m.errMsg)
		}
		return notifyErrorCmd(m.errMsg)
	}

	m.report = msg.Report
	m.section = 0
	m.setStage(StageSection)
	m.refreshViewport()
	return nil
}

// userMessage maps a failed run to what the user is told.
func userMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrEmptyResult):
		return msgNoTrips
	case errors.Is(err, models.ErrParse):
		return fmt.Sprintf("%s: %v", msgParseFailed, err)
	case errors.Is(err, models.ErrDataSource):
		return fmt.Sprintf("%s: %v", msgLoadFailed, err)
	default:
		return fmt.Sprintf("Analysis failed: %v", err)
	}
}

// advance moves past the section or raw sample on screen.
func (m *Model) advance() tea.Cmd {
	if m.stage == StageRaw {
		m.setStage(StageRestart)
		return nil
	}

	m.section++
	if m.section >= len(report.Sections) {
		m.setStage(StageRawPrompt)
		return nil
	}
	m.refreshViewport()
	return nil
}

// startOver returns to the city prompt with a clean selection.
func (m *Model) startOver() {
	m.sel = models.Selection{}
	m.report = nil
	m.section = 0
	m.inputErr = ""
	m.setStage(StageCity)
}

func (m *Model) setStage(s Stage) {
	m.stage = s
	if s.Prompting() {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) refreshViewport() {
	if m.report == nil {
		return
	}

	var body string
	switch m.stage {
	case StageSection:
		body = report.Render(report.Sections[m.section], m.report, m.viewport.Width)
	case StageRaw:
		body = report.Sample(m.report, m.viewport.Width)
	default:
		return
	}

	m.viewport.SetContent(report.Header(m.report, m.viewport.Width) + "\n\n" + body)
	m.viewport.GotoTop()
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.DataChangedEvent:
		return notifyInfoCmd(fmt.Sprintf("%s data changed on disk, next run reloads it", e.City))
	case services.ErrorEvent:
		return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}
	return nil
}

// View renders the application UI.
func (m *Model) View() string {
	if !m.ready {
		return "Starting...\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeaderBar())
	b.WriteString("\n")

	switch m.stage {
	case StageLoading:
		b.WriteString(components.RenderSpinnerCentered(m.spinner, m.width, max(m.height-4, 1)))
	case StageSection, StageRaw:
		b.WriteString(m.viewport.View())
	default:
		b.WriteString(lipgloss.NewStyle().Padding(1, 2).Render(m.renderPrompt()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	mainView := b.String()
	if toasts := m.renderNotifications(); len(toasts) > 0 {
		return m.overlayToasts(mainView, toasts)
	}
	return mainView
}

func (m *Model) renderHeaderBar() string {
	parts := []string{styles.TitleStyle.UnsetMarginBottom().Render("US Bikeshare")}
	if m.sel.City != "" {
		parts = append(parts, m.sel.City.String())
	}
	if m.sel.Month != "" {
		parts = append(parts, "month: "+m.sel.Month.String())
	}
	if m.sel.Day != "" {
		parts = append(parts, "day: "+m.sel.Day.String())
	}
	return styles.HeaderBarStyle.Width(m.width).Render(strings.Join(parts, styles.HelpStyle.Render("  ·  ")))
}

func (m *Model) prompt() (question, choices string) {
	switch m.stage {
	case StageCity:
		names := make([]string, len(models.Cities))
		for i, c := range models.Cities {
			names[i] = c.String()
		}
		return "Would you like to see data for Chicago, New York City, or Washington?", strings.Join(names, " · ")
	case StageMonth:
		return "Which month? Enter all or a month name.", strings.Join(models.MonthChoices, " · ")
	case StageDay:
		return "Which day? Enter all or a weekday name.", strings.Join(models.DayChoices, " · ")
	case StageRawPrompt:
		return "Would you like to see raw trip data?", "yes · no"
	case StageRestart:
		return "Would you like to restart?", "yes · no"
	}
	return "", ""
}

func (m *Model) renderPrompt() string {
	var lines []string

	if m.stage == StageCity {
		lines = append(lines, styles.TitleStyle.Render("Hello! Let's explore some US bikeshare data!"))
		if m.errMsg != "" {
			lines = append(lines, styles.ErrorTextStyle.Render(m.errMsg), "")
		}
		if runs, failed := m.state.RunCounts(); runs > 0 {
			lines = append(lines, styles.HelpStyle.Render(
				fmt.Sprintf("%d run(s) this session, %d without results", runs, failed)), "")
		}
	}

	question, choices := m.prompt()
	lines = append(lines,
		styles.PromptStyle.Render(question),
		styles.ChoiceStyle.Render(choices),
		"",
		m.input.View(),
	)

	if m.inputErr != "" {
		lines = append(lines, "", styles.ErrorTextStyle.Render(m.inputErr))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	var parts []string
	for _, b := range m.keymap.bindingsFor(m.stage) {
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	footer := strings.Join(parts, styles.HelpStyle.Render(" • "))

	if m.stage == StageSection {
		footer += styles.HelpStyle.Render(fmt.Sprintf("   section %d/%d", m.section+1, len(report.Sections)))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(footer)
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = styles.SuccessTextStyle
			prefix = "[OK]"
		case NotificationError:
			style = styles.ErrorTextStyle.Bold(true)
			prefix = "[ERR]"
		case NotificationWarning:
			style = styles.WarningTextStyle
			prefix = "[WARN]"
		case NotificationInfo:
			style = styles.InfoTextStyle
			prefix = "[INFO]"
		}

		// Keep toasts to a third of the screen.
		msg := ansi.Truncate(n.Message, max(m.width/3, 20), "…")
		toasts = append(toasts, styles.ToastStyle.Render(style.Render(prefix+" "+msg)))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	toastWidth := lipgloss.Width(toastStack)
	startX := max(m.width-toastWidth-2, 0)

	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			padding := strings.Repeat(" ", startX-mainLineWidth)
			mainLines[lineIdx] = mainLine + padding + toastLine
		} else {
			truncated := ansi.Truncate(mainLine, startX, "")
			mainLines[lineIdx] = truncated + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}
