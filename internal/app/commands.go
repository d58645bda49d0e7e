package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// Backend runs analyses and publishes background events.
type Backend interface {
	Analyze(sel models.Selection) (*models.Report, error)
	Subscribe() (chan services.ServiceEvent, tea.Cmd)
	FileSize(city models.City) int64
	Cached(city models.City) bool
}

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// analyzeCmd runs the pipeline off the UI goroutine.
func analyzeCmd(b Backend, sel models.Selection) tea.Cmd {
	return func() tea.Msg {
		report, err := b.Analyze(sel)
		return AnalysisDoneMsg{Report: report, Err: err}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(b Backend) tea.Cmd {
	ch, _ := b.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, DefaultNotificationDuration)
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}
