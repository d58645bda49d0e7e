package app

import (
	"errors"
	"testing"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func TestStage_String(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageCity, "city"},
		{StageMonth, "month"},
		{StageDay, "day"},
		{StageLoading, "loading"},
		{StageSection, "section"},
		{StageRawPrompt, "raw-prompt"},
		{StageRaw, "raw"},
		{StageRestart, "restart"},
		{Stage(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

func TestStage_Prompting(t *testing.T) {
	prompting := map[Stage]bool{
		StageCity:      true,
		StageMonth:     true,
		StageDay:       true,
		StageLoading:   false,
		StageSection:   false,
		StageRawPrompt: true,
		StageRaw:       false,
		StageRestart:   true,
	}
	for stage, want := range prompting {
		if got := stage.Prompting(); got != want {
			t.Errorf("%s.Prompting() = %v, want %v", stage, got, want)
		}
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		nType NotificationType
		want  string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.nType.String(); got != tt.want {
			t.Errorf("NotificationType.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNotification_IsExpired(t *testing.T) {
	tests := []struct {
		name     string
		created  time.Time
		duration time.Duration
		want     bool
	}{
		{"zero duration never expires", time.Now().Add(-time.Hour), 0, false},
		{"fresh", time.Now(), time.Minute, false},
		{"expired", time.Now().Add(-2 * time.Second), time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Notification{CreatedAt: tt.created, Duration: tt.duration}
			if got := n.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_RecordResult(t *testing.T) {
	s := NewState()
	if s.LastReport() != nil {
		t.Error("new state should have no report")
	}

	first := &models.Report{MatchedTrips: 3}
	s.RecordResult(first, nil)
	s.RecordResult(nil, errors.New("boom"))

	runs, failed := s.RunCounts()
	if runs != 2 || failed != 1 {
		t.Errorf("RunCounts() = %d/%d, want 2/1", runs, failed)
	}
	if s.LastReport() != first {
		t.Error("a failed run should not replace the last report")
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id1 := s.AddNotification(NotificationInfo, "one", time.Minute)
	id2 := s.AddNotification(NotificationError, "two", 0)
	if id1 == id2 {
		t.Fatal("notification IDs should be unique")
	}
	if got := len(s.GetNotifications()); got != 2 {
		t.Fatalf("got %d notifications, want 2", got)
	}

	s.RemoveNotification(id1)
	active := s.GetNotifications()
	if len(active) != 1 || active[0].ID != id2 {
		t.Errorf("after removal: %+v", active)
	}

	s.RemoveNotification("missing")
	if len(s.GetNotifications()) != 1 {
		t.Error("removing an unknown ID should be a no-op")
	}
}

func TestState_NotificationLimit(t *testing.T) {
	s := NewState()
	var last string
	for range maxNotifications + 3 {
		last = s.AddNotification(NotificationInfo, "x", 0)
	}

	active := s.GetNotifications()
	if len(active) != maxNotifications {
		t.Fatalf("got %d notifications, want %d", len(active), maxNotifications)
	}
	if active[len(active)-1].ID != last {
		t.Error("newest notification should be kept")
	}
}

func TestState_ClearExpiredNotifications(t *testing.T) {
	s := NewState()
	s.AddNotification(NotificationInfo, "short", time.Nanosecond)
	keep := s.AddNotification(NotificationInfo, "sticky", 0)

	time.Sleep(time.Millisecond)
	s.ClearExpiredNotifications()

	s.mu.RLock()
	remaining := len(s.notifications)
	s.mu.RUnlock()
	if remaining != 1 {
		t.Fatalf("got %d stored notifications, want 1", remaining)
	}
	if s.GetNotifications()[0].ID != keep {
		t.Error("sticky notification should survive")
	}
}
