// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
)

// NotificationType classifies a toast notification.
type NotificationType int

const (
	NotificationSuccess NotificationType = iota
	NotificationError
	NotificationWarning
	NotificationInfo
	NotificationLoading
)

// LoadingNotificationID is the fixed ID of the single loading toast, so
// repeated loads update it in place instead of stacking.
const LoadingNotificationID = "__loading__"

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
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification is a user-facing toast. Duration <= 0 means it stays until
// removed explicitly.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the notification has outlived its duration.
func (n *Notification) IsExpired() bool {
	return n.Duration > 0 && time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks which resources are mid-load.
type LoadingState struct {
	Initial bool
	Batch   bool
	Trend   bool
}

// State is the shared application state read by every tab. Writes go
// through the main model; tabs only read.
type State struct {
	mu sync.RWMutex

	window       models.ReportWindow
	batch        *models.Batch
	totals       *models.WindowTotals
	dailyCosts   []models.DailyCost
	recentEvents []models.UsageEvent

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates the shared application state. The window defaults to
// the last 30 days; everything else fills in as data loads.
func NewState() *State {
	return &State{
		window:  models.Window30Days,
		Loading: LoadingState{Initial: true},
	}
}

// SetLoading flips the loading flag for one resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "batch":
		s.Loading.Batch = loading
	case "trend":
		s.Loading.Trend = loading
	}
}

// AnyLoading reports whether any resource is still loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial || s.Loading.Batch || s.Loading.Trend
}

// IsInitialLoading reports whether the first load has not finished yet.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// SetBatch stores the latest annotated batch and stamps the update time.
func (s *State) SetBatch(batch models.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = &batch
	s.LastUpdated = time.Now()
}

// GetBatch returns the latest annotated batch, or nil before the first
// load completes.
func (s *State) GetBatch() *models.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch
}

// SetTotals stores the window summary.
func (s *State) SetTotals(totals *models.WindowTotals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals = totals
}

// GetTotals returns the current window summary.
func (s *State) GetTotals() *models.WindowTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totals
}

// SetDailyCosts stores the per-day cost trend.
func (s *State) SetDailyCosts(days []models.DailyCost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyCosts = days
}

// GetDailyCosts returns a copy of the per-day cost trend.
func (s *State) GetDailyCosts() []models.DailyCost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.dailyCosts)
}

// SetRecentEvents stores the latest raw usage events, newest first.
func (s *State) SetRecentEvents(events []models.UsageEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentEvents = events
}

// GetRecentEvents returns a copy of the latest raw usage events.
func (s *State) GetRecentEvents() []models.UsageEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recentEvents)
}

// Window returns the active reporting window.
func (s *State) Window() models.ReportWindow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window
}

// SetWindow sets the active reporting window.
func (s *State) SetWindow(window models.ReportWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = window
}

// CycleWindow advances to the next reporting window and returns it.
func (s *State) CycleWindow() models.ReportWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = s.window.Next()
	return s.window
}

// maxNotifications caps the toast stack.
const maxNotifications = 10

// AddNotification appends a toast and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := fmt.Sprintf("n-%d-%d", time.Now().UnixMilli(), s.notificationSeq)

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if n := len(s.notifications); n > maxNotifications {
		s.notifications = s.notifications[n-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a toast by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = slices.DeleteFunc(s.notifications, func(n Notification) bool {
		return n.ID == id
	})
}

// ClearExpiredNotifications drops toasts past their duration.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = slices.DeleteFunc(s.notifications, func(n Notification) bool {
		return n.IsExpired()
	})
}

// GetNotifications returns the toasts that have not expired yet.
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

// ClearAllNotifications removes every toast.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
}

// SetLoadingNotification creates or updates the loading toast.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading toast.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = slices.DeleteFunc(s.notifications, func(n Notification) bool {
		return n.ID == LoadingNotificationID
	})
}

// GetLastUpdated returns the last time a batch was stored.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the time since the last batch update, or zero
// before the first one.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
