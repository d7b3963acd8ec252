package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-calder/llmcost-dashboard-tui/internal/attribution"
	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
	"github.com/m-calder/llmcost-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval drives the notification expiry sweep.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is how long most toasts stay visible.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for low-stakes toasts like "Copied".
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for errors the user should not miss.
	LongNotificationDuration = 10 * time.Second

	// RecentEventsLimit caps the activity card so it stays one card tall.
	RecentEventsLimit = 8
)

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadInitialData loads everything the tabs need on startup.
func loadInitialData(mgr *services.Manager, window models.ReportWindow) tea.Cmd {
	return tea.Batch(
		loadBatchCmd(mgr, window),
		loadTrendCmd(mgr, window),
		loadEventsCmd(mgr),
	)
}

// loadBatchCmd fetches the per-category totals for a reporting window and
// annotates them with percentage shares before handing them to the UI.
func loadBatchCmd(mgr *services.Manager, window models.ReportWindow) tea.Cmd {
	return func() tea.Msg {
		records, err := mgr.GetBatch(window)
		if err != nil {
			return BatchLoadedMsg{Error: err}
		}

		annotated, err := attribution.Annotate(records)
		if err != nil {
			return BatchLoadedMsg{Error: err}
		}

		totals, err := mgr.GetTotals(window)
		if err != nil {
			return BatchLoadedMsg{Error: err}
		}

		return BatchLoadedMsg{
			Batch: models.Batch{
				Scope:   mgr.Scope(),
				Window:  window,
				Records: annotated,
			},
			Totals: totals,
		}
	}
}

// loadTrendCmd fetches the per-day cost trend for a reporting window.
func loadTrendCmd(mgr *services.Manager, window models.ReportWindow) tea.Cmd {
	return func() tea.Msg {
		days, err := mgr.GetDailyCosts(window)
		return TrendLoadedMsg{Days: days, Error: err}
	}
}

// loadEventsCmd fetches the latest raw usage events.
func loadEventsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		events, err := mgr.GetRecentEvents(RecentEventsLimit)
		return EventsLoadedMsg{Events: events, Error: err}
	}
}

// subscribeToServicesCmd registers with the service manager. Subscription
// happens when the command runs, not when it is built.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		ch, _ := mgr.Subscribe()
		return SubscriptionEventMsg{Channel: ch}
	}
}

func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// WaitForServiceEvent blocks on the next service event. The event arrives
// wrapped in a ServiceEventMsg so the root model routes it.
func WaitForServiceEvent(ch <-chan services.ServiceEvent) tea.Cmd {
	return waitForServiceEventCmd(ch)
}

func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: duration}
	}
}

func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}

// delayedCmd sends an arbitrary message after a delay.
func delayedCmd(delay time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return msg
	})
}
