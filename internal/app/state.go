package app

import (
	"strconv"
	"sync"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// Stage is a step of the interactive session.
type Stage int

const (
	// StageCity asks which city to analyze.
	StageCity Stage = iota
	// StageMonth asks for the month filter.
	StageMonth
	// StageDay asks for the weekday filter.
	StageDay
	// StageLoading runs the analysis.
	StageLoading
	// StageSection shows one statistics section at a time.
	StageSection
	// StageRawPrompt asks whether to show raw trip rows.
	StageRawPrompt
	// StageRaw shows the raw sample.
	StageRaw
	// StageRestart asks whether to start over.
	StageRestart
)

// String returns the string representation of a Stage.
func (s Stage) String() string {
	switch s {
	case StageCity:
		return "city"
	case StageMonth:
		return "month"
	case StageDay:
		return "day"
	case StageLoading:
		return "loading"
	case StageSection:
		return "section"
	case StageRawPrompt:
		return "raw-prompt"
	case StageRaw:
		return "raw"
	case StageRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Prompting reports whether the stage reads a line of input.
func (s Stage) Prompting() bool {
	switch s {
	case StageCity, StageMonth, StageDay, StageRawPrompt, StageRestart:
		return true
	default:
		return false
	}
}

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Type      NotificationType
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// maxNotifications bounds the toast stack.
const maxNotifications = 5

// State holds session data shared between the model and its commands.
type State struct {
	mu sync.RWMutex

	lastReport *models.Report
	runs       int
	failed     int

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty session state.
func NewState() *State {
	return &State{
		notifications: make([]Notification, 0),
	}
}

// RecordResult counts a finished analysis and keeps the latest report.
func (s *State) RecordResult(report *models.Report, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs++
	if err != nil {
		s.failed++
		return
	}
	s.lastReport = report
}

// LastReport returns the most recent successful report, if any.
func (s *State) LastReport() *models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReport
}

// RunCounts returns the number of analyses run and how many failed.
func (s *State) RunCounts() (runs, failed int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs, s.failed
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := "n" + strconv.Itoa(s.notificationSeq)

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}
