// Package tripstore serves annotated city datasets with caching and data
// directory watching.
package tripstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/tripdata"
)

// Event represents a trip store event.
type Event struct {
	Type  EventType
	City  models.City
	Error error
}

// EventType defines the type of trip store event.
type EventType int

const (
	// EventDataChanged is sent when a city's data file was written, created or removed.
	EventDataChanged EventType = iota
	// EventError is sent when the watcher reports an error.
	EventError
)

// Config controls caching and watching.
type Config struct {
	CacheTTL  time.Duration
	WatchData bool
}

// Service loads annotated datasets, caching them per city.
type Service struct {
	mu            sync.Mutex
	store         *tripdata.Store
	cache         gcache.Cache
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer map[models.City]*time.Timer
	generation    map[models.City]uint64
	closeOnce     sync.Once
}

// New creates a trip store service over store. A zero CacheTTL disables caching.
func New(store *tripdata.Store, cfg Config) (*Service, error) {
	s := &Service{
		store:         store,
		eventChan:     make(chan Event, 100),
		stopChan:      make(chan struct{}),
		debounceTimer: make(map[models.City]*time.Timer),
		generation:    make(map[models.City]uint64),
	}

	if cfg.CacheTTL > 0 {
		s.cache = gcache.New(len(models.Cities)).
			LRU().
			Expiration(cfg.CacheTTL).
			Build()
	}

	if cfg.WatchData {
		if err := s.startWatcher(); err != nil {
			return nil, fmt.Errorf("failed to start data watcher: %w", err)
		}
	}

	return s, nil
}

// Events returns the event channel for subscribing to data changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Dataset returns the annotated trips for a city. fromCache reports whether
// the dataset was served without reading the file.
func (s *Service) Dataset(city models.City) (ds *models.Dataset, fromCache bool, err error) {
	if !city.Valid() {
		return nil, false, fmt.Errorf("%w: city %q", models.ErrInvalidSelection, city)
	}

	if s.cache != nil {
		if v, err := s.cache.Get(city); err == nil {
			if cached, ok := v.(*models.Dataset); ok {
				logger.Debug("dataset served from cache", "city", city.String(), "rows", cached.Len())
				return cached, true, nil
			}
		}
	}

	gen := s.generationOf(city)
	ds, err = s.load(city)
	if err != nil {
		return nil, false, err
	}

	s.cacheIfCurrent(city, gen, ds)
	return ds, false, nil
}

func (s *Service) generationOf(city models.City) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation[city]
}

// cacheIfCurrent stores ds unless the city was invalidated after gen was
// read, in which case ds may predate the file change and is dropped.
func (s *Service) cacheIfCurrent(city models.City, gen uint64, ds *models.Dataset) bool {
	if s.cache == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation[city] != gen {
		logger.Debug("discarding dataset loaded before a file change", "city", city.String())
		return false
	}
	if err := s.cache.Set(city, ds); err != nil {
		logger.Warn("failed to cache dataset", "city", city.String(), "error", err)
		return false
	}
	return true
}

// load reads and annotates a city's file.
func (s *Service) load(city models.City) (*models.Dataset, error) {
	path, err := s.store.Path(city)
	if err != nil {
		return nil, err
	}

	var size int64
	if info, statErr := os.Stat(path); statErr == nil {
		size = info.Size()
	}

	raw, err := s.store.Load(city)
	if err != nil {
		return nil, err
	}

	trips, err := tripdata.Annotate(raw, city.HasDemographics())
	if err != nil {
		return nil, err
	}

	return &models.Dataset{
		City:            city,
		Path:            path,
		Trips:           trips,
		SizeBytes:       size,
		HasDemographics: city.HasDemographics(),
		LoadedAt:        time.Now(),
	}, nil
}

// FileSize returns the size of a city's data file, or 0 if unknown.
func (s *Service) FileSize(city models.City) int64 {
	path, err := s.store.Path(city)
	if err != nil {
		return 0
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// Invalidate drops a city from the cache. Loads already in flight for the
// city will not be cached.
func (s *Service) Invalidate(city models.City) {
	s.mu.Lock()
	s.generation[city]++
	s.mu.Unlock()

	if s.cache != nil {
		s.cache.Remove(city)
	}
}

// Cached reports whether a city's dataset is currently cached.
func (s *Service) Cached(city models.City) bool {
	return s.cache != nil && s.cache.Has(city)
}

// startWatcher starts the file system watcher on the data directory.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	if err := watcher.Add(s.store.Dir()); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with per-city debouncing.
func (s *Service) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			city, known := s.store.CityForFile(filepath.Base(event.Name))
			if !known {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// Drop the stale copy right away so a load racing the debounce
			// window re-reads the file.
			s.Invalidate(city)

			s.mu.Lock()
			if t := s.debounceTimer[city]; t != nil {
				t.Stop()
			}
			s.debounceTimer[city] = time.AfterFunc(debounceInterval, func() {
				s.handleFileChange(city)
			})
			s.mu.Unlock()

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange evicts the city and notifies subscribers.
func (s *Service) handleFileChange(city models.City) {
	s.Invalidate(city)
	logger.Info("data file changed", "city", city.String())
	s.sendEvent(Event{Type: EventDataChanged, City: city})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		for _, t := range s.debounceTimer {
			t.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}

// IsDataError reports whether err came from reading or parsing a data file.
func IsDataError(err error) bool {
	return errors.Is(err, models.ErrDataSource) || errors.Is(err, models.ErrParse)
}
