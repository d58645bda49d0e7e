// Package services provides service orchestration for the TUI.
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/config"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/db"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services/tripstore"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/stats"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/tripdata"
)

type (
	// DataChangedEvent is emitted when a city's data file changes on disk.
	DataChangedEvent struct {
		City models.City
	}

	// ErrorEvent is emitted when an error occurs in a background service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DataChangedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()       {}

// notifyFunc sends a desktop notification.
type notifyFunc func(title, message string, icon any) error

// Manager runs the load, filter and aggregate pipeline and routes
// background events to subscribers.
type Manager struct {
	mu             sync.RWMutex
	trips          *tripstore.Service
	database       *db.DB
	stopChan       chan struct{}
	subscribers    []chan<- ServiceEvent
	notify         notifyFunc
	sampleRows     int
	notifySlowLoad time.Duration
	closeOnce      sync.Once
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		stopChan:       make(chan struct{}),
		notify:         beeep.Notify,
		sampleRows:     cfg.SampleRows,
		notifySlowLoad: cfg.NotifySlowLoad,
	}

	store := tripdata.NewStore(cfg.DataDir, cfg.CityFiles)

	var err error
	m.trips, err = tripstore.New(store, tripstore.Config{
		CacheTTL:  cfg.CacheTTL,
		WatchData: cfg.WatchData,
	})
	if err != nil {
		return nil, err
	}

	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		_ = m.trips.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	m.pruneRunLog(cfg.RetentionDays)

	go m.routeEvents()

	return m, nil
}

// pruneRunLog drops run log entries older than days. 0 keeps everything.
func (m *Manager) pruneRunLog(days int) {
	if days <= 0 {
		return
	}
	removed, err := m.database.CleanupOldRuns(days)
	if err != nil {
		logger.Warn("run log cleanup failed", "error", err)
		return
	}
	if removed == 0 {
		return
	}
	logger.Info("run log pruned", "removed", removed, "days", days)
	if err := m.database.Vacuum(); err != nil {
		logger.Warn("run log vacuum failed", "error", err)
	}
}

// routeEvents routes events from the trip store to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event, ok := <-m.trips.Events():
			if !ok {
				return
			}
			m.handleTripStoreEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleTripStoreEvent(event tripstore.Event) {
	switch event.Type {
	case tripstore.EventDataChanged:
		m.broadcast(DataChangedEvent{City: event.City})
	case tripstore.EventError:
		m.broadcast(ErrorEvent{Service: "watcher", Error: event.Error})
	}
}

// Analyze loads the selected city, applies the filters and computes every
// statistics section. The run is recorded in the run log whatever the outcome.
func (m *Manager) Analyze(sel models.Selection) (*models.Report, error) {
	start := time.Now()
	runID := uuid.NewString()

	log := []any{"run_id", runID, "city", sel.City.String(), "month", sel.Month.String(), "day", sel.Day.String()}
	logger.Info("analysis started", log...)

	report, err := m.analyze(sel, runID)

	elapsed := time.Since(start)
	m.recordRun(sel, runID, report, err, elapsed)

	if err != nil {
		log = append(log, "error", err, "elapsed", elapsed)
		if tripstore.IsDataError(err) {
			logger.Error("dataset unusable", log...)
		} else {
			logger.Warn("analysis failed", log...)
		}
		return nil, err
	}

	logger.Info("analysis finished", append(log,
		"rows", report.TotalTrips,
		"matched", report.MatchedTrips,
		"elapsed", elapsed,
	)...)
	return report, nil
}

func (m *Manager) analyze(sel models.Selection, runID string) (*models.Report, error) {
	loadStart := time.Now()
	ds, fromCache, err := m.trips.Dataset(sel.City)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	if !fromCache {
		m.checkSlowLoad(ds, loadTime)
	}

	filtered := tripdata.Filter(ds.Trips, sel.Month, sel.Day)

	report := &models.Report{
		GeneratedAt:  time.Now(),
		RunID:        runID,
		Selection:    sel,
		TotalTrips:   ds.Len(),
		MatchedTrips: len(filtered),
		LoadTime:     loadTime,
		FromCache:    fromCache,
	}

	if len(filtered) == 0 {
		return report, fmt.Errorf("%s: %w", sel, models.ErrEmptyResult)
	}

	t := time.Now()
	if report.Temporal, err = stats.Temporal(filtered); err != nil {
		return report, err
	}
	report.Timing.Temporal = time.Since(t)

	t = time.Now()
	if report.Stations, err = stats.Stations(filtered); err != nil {
		return report, err
	}
	report.Timing.Stations = time.Since(t)

	t = time.Now()
	if report.Durations, err = stats.Durations(filtered); err != nil {
		return report, err
	}
	report.Timing.Durations = time.Since(t)

	t = time.Now()
	if report.Demographics, err = stats.Demographics(filtered, ds.HasDemographics); err != nil {
		return report, err
	}
	report.Timing.Demographics = time.Since(t)

	report.Sample = tripdata.Head(filtered, m.sampleRows)
	if len(filtered) > m.sampleRows {
		report.SampleTail = tripdata.Tail(filtered, min(m.sampleRows, len(filtered)-m.sampleRows))
	}

	return report, nil
}

// checkSlowLoad raises a desktop notification when a file read took long
// enough that the user may have switched away.
func (m *Manager) checkSlowLoad(ds *models.Dataset, loadTime time.Duration) {
	if m.notifySlowLoad <= 0 || loadTime < m.notifySlowLoad || m.notify == nil {
		return
	}

	body := fmt.Sprintf("%s: %s trips (%s) loaded in %s",
		ds.City,
		humanize.Comma(int64(ds.Len())),
		humanize.Bytes(uint64(max(ds.SizeBytes, 0))),
		loadTime.Round(time.Millisecond),
	)
	if err := m.notify("Bikeshare data ready", body, ""); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

func (m *Manager) recordRun(sel models.Selection, runID string, report *models.Report, runErr error, elapsed time.Duration) {
	run := &models.AnalysisRun{
		Timestamp: time.Now(),
		RunID:     runID,
		City:      sel.City.String(),
		Month:     sel.Month.String(),
		Day:       sel.Day.String(),
		Status:    models.RunStatusOK,
		ElapsedMs: elapsed.Milliseconds(),
	}
	if report != nil {
		run.TotalTrips = report.TotalTrips
		run.MatchedTrips = report.MatchedTrips
	}

	switch {
	case errors.Is(runErr, models.ErrEmptyResult):
		run.Status = models.RunStatusEmpty
	case runErr != nil:
		run.Status = models.RunStatusFailed
		run.Error = runErr.Error()
	}

	if err := m.database.InsertRun(run); err != nil {
		logger.Error("failed to record analysis run", "run_id", runID, "error", err)
	}
}

// FileSize returns the size of a city's data file, or 0 if unknown.
func (m *Manager) FileSize(city models.City) int64 {
	return m.trips.FileSize(city)
}

// Cached reports whether a city's dataset is held in the cache.
func (m *Manager) Cached(city models.City) bool {
	return m.trips.Cached(city)
}

// RecentRuns returns the newest entries of the run log.
func (m *Manager) RecentRuns(limit int) ([]models.AnalysisRun, error) {
	return m.database.GetRecentRuns(limit)
}

// CityRunCounts returns run totals per city.
func (m *Manager) CityRunCounts() ([]models.CityRunCount, error) {
	return m.database.GetCityRunCounts()
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if err := m.trips.Close(); err != nil {
			errs = append(errs, err)
		}

		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	return errors.Join(errs...)
}
