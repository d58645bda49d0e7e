package app

import (
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// AnalysisDoneMsg carries the result of one analysis run.
type AnalysisDoneMsg struct {
	Report *models.Report
	Err    error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Message  string
	Type     NotificationType
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}
