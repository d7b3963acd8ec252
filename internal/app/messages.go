package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
	"github.com/m-calder/llmcost-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to trigger state housekeeping.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// BatchLoadedMsg contains an annotated category batch for the active
// reporting window.
type BatchLoadedMsg struct {
	Batch  models.Batch
	Totals *models.WindowTotals
	Error  error
}

// TrendLoadedMsg contains the per-day cost trend for the active window.
type TrendLoadedMsg struct {
	Days  []models.DailyCost
	Error error
}

// EventsLoadedMsg contains the most recent raw usage events for the
// activity card.
type EventsLoadedMsg struct {
	Events []models.UsageEvent
	Error  error
}

// WindowChangedMsg signals that the reporting window changed and data
// should be reloaded.
type WindowChangedMsg struct {
	Window models.ReportWindow
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "batch", "trend"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// CopyToClipboardMsg requests copying text to clipboard.
type CopyToClipboardMsg struct {
	Text string
}

// DelayedMsg wraps a message to be sent after a delay.
type DelayedMsg struct {
	Delay time.Duration
	Msg   tea.Msg
}
