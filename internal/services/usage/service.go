// Package usage watches the usage database and notifies the UI when
// fresh data is available. An external collector process writes
// usage_events; this service only reads.
package usage

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/m-calder/llmcost-dashboard-tui/internal/db"
	"github.com/m-calder/llmcost-dashboard-tui/internal/logger"
	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
)

// EventType identifies the kind of event emitted by the service.
type EventType int

const (
	// EventDataChanged signals that the underlying usage data changed
	// and any cached batches should be re-fetched.
	EventDataChanged EventType = iota
	// EventError signals a watcher or query failure.
	EventError
)

// Event is emitted on the service's event channel.
type Event struct {
	Type  EventType
	Error error
}

// Service reads usage batches from the database and emits
// EventDataChanged on a refresh tick or when an external writer
// touches the database file.
type Service struct {
	mu            sync.Mutex
	database      *db.DB
	scope         string
	interval      time.Duration
	events        chan Event
	stopChan      chan struct{}
	watcher       *fsnotify.Watcher
	debounceTimer *time.Timer
	closeOnce     sync.Once
}

// New creates a usage service. Start must be called before events are
// produced.
func New(database *db.DB, scope string, interval time.Duration) *Service {
	return &Service{
		database: database,
		scope:    scope,
		interval: interval,
		events:   make(chan Event, 20),
		stopChan: make(chan struct{}),
	}
}

// Events returns the service event channel.
func (s *Service) Events() <-chan Event {
	return s.events
}

// Scope returns the tenant scope the service queries with.
func (s *Service) Scope() string {
	return s.scope
}

// Start launches the refresh ticker and the database file watcher.
func (s *Service) Start() error {
	if err := s.startWatcher(); err != nil {
		// Ticker-based refresh still works without the watcher.
		logger.Warn("database watcher unavailable", "error", err)
	}

	go s.tickLoop()
	return nil
}

// GetBatch queries the raw category batch for a reporting window.
// Percentage annotation is the caller's job; this returns raw records.
func (s *Service) GetBatch(window models.ReportWindow) ([]models.CategoryRecord, error) {
	start, end := window.Bounds(time.Now())
	records, err := s.database.GetCategoryTotals(start, end, s.scope)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch batch: %w", err)
	}
	return records, nil
}

// GetTotals queries summary statistics for a reporting window.
func (s *Service) GetTotals(window models.ReportWindow) (*models.WindowTotals, error) {
	start, end := window.Bounds(time.Now())
	return s.database.GetWindowTotals(start, end, s.scope)
}

// GetDailyCosts queries the per-day trend for a reporting window.
func (s *Service) GetDailyCosts(window models.ReportWindow) ([]models.DailyCost, error) {
	start, end := window.Bounds(time.Now())
	return s.database.GetDailyCosts(start, end, s.scope)
}

func (s *Service) tickLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sendEvent(Event{Type: EventDataChanged})
		case <-s.stopChan:
			return
		}
	}
}

// startWatcher watches the directory containing the database so writes
// by the collector (including to the -wal file) trigger a refresh.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	dir := filepath.Dir(s.database.Path())
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	const debounceInterval = 250 * time.Millisecond

	base := filepath.Base(s.database.Path())

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			// The database file itself, its WAL, or its journal.
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, func() {
					s.sendEvent(Event{Type: EventDataChanged})
				})
				s.mu.Unlock()
			}

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

func (s *Service) sendEvent(event Event) {
	select {
	case s.events <- event:
	default:
		// Channel full, drop. The UI re-fetches on the next event.
	}
}

// Close stops the ticker and watcher.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
