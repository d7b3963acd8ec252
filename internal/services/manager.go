// Package services provides service orchestration for the TUI.
package services

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/m-calder/llmcost-dashboard-tui/internal/config"
	"github.com/m-calder/llmcost-dashboard-tui/internal/db"
	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
	"github.com/m-calder/llmcost-dashboard-tui/internal/services/usage"
)

type (
	// DataChangedEvent is emitted when usage data changed and cached
	// batches should be re-fetched.
	DataChangedEvent struct{}

	// BudgetExceededEvent is emitted when spend for the last 24 hours
	// crosses the configured daily budget.
	BudgetExceededEvent struct {
		SpentMicroUSD  int64
		BudgetMicroUSD int64
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DataChangedEvent) isServiceEvent()    {}
func (BudgetExceededEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()          {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu             sync.RWMutex
	usage          *usage.Service
	database       *db.DB
	budgetMicroUSD int64
	lastSpentMicro int64
	eventChan      chan ServiceEvent
	stopChan       chan struct{}
	subscribers    []chan<- ServiceEvent
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		budgetMicroUSD: cfg.DailyBudgetMicroUSD,
		lastSpentMicro: -1,
		eventChan:      make(chan ServiceEvent, 100),
		stopChan:       make(chan struct{}),
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.usage = usage.New(m.database, cfg.TenantScope, cfg.RefreshInterval)
	if err := m.usage.Start(); err != nil {
		return nil, err
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.usage.Events():
			m.handleUsageEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleUsageEvent converts and broadcasts usage service events.
func (m *Manager) handleUsageEvent(event usage.Event) {
	switch event.Type {
	case usage.EventDataChanged:
		m.broadcast(DataChangedEvent{})
		m.checkBudget()

	case usage.EventError:
		m.broadcast(ErrorEvent{
			Service: "usage",
			Error:   event.Error,
		})
	}
}

// checkBudget notifies once when 24h spend crosses the configured
// budget. The flag resets if spend drops back under (new day).
func (m *Manager) checkBudget() {
	if m.budgetMicroUSD <= 0 {
		return
	}

	totals, err := m.usage.GetTotals(models.Window24Hours)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "budget", Error: err})
		return
	}

	m.mu.Lock()
	previous := m.lastSpentMicro
	m.lastSpentMicro = totals.CostMicroUSD
	m.mu.Unlock()

	if previous < 0 {
		return
	}

	// Only notify when crossing the threshold upwards.
	if totals.CostMicroUSD >= m.budgetMicroUSD && previous < m.budgetMicroUSD {
		m.broadcast(BudgetExceededEvent{
			SpentMicroUSD:  totals.CostMicroUSD,
			BudgetMicroUSD: m.budgetMicroUSD,
		})

		title := "Daily Budget Exceeded"
		body := fmt.Sprintf("Spend in the last 24h reached $%.2f of the $%.2f budget",
			float64(totals.CostMicroUSD)/1_000_000, float64(m.budgetMicroUSD)/1_000_000)
		_ = beeep.Notify(title, body, "")
	}
}

// GetBatch returns raw category records for a reporting window.
func (m *Manager) GetBatch(window models.ReportWindow) ([]models.CategoryRecord, error) {
	return m.usage.GetBatch(window)
}

// GetTotals returns summary statistics for a reporting window.
func (m *Manager) GetTotals(window models.ReportWindow) (*models.WindowTotals, error) {
	return m.usage.GetTotals(window)
}

// GetDailyCosts returns the per-day cost trend for a reporting window.
func (m *Manager) GetDailyCosts(window models.ReportWindow) ([]models.DailyCost, error) {
	return m.usage.GetDailyCosts(window)
}

// GetRecentEvents returns the most recent raw usage events.
func (m *Manager) GetRecentEvents(limit int) ([]models.UsageEvent, error) {
	return m.database.GetRecentEvents(limit)
}

// Scope returns the tenant scope the manager queries with.
func (m *Manager) Scope() string {
	return m.usage.Scope()
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
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

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Usage returns the usage service.
func (m *Manager) Usage() *usage.Service {
	return m.usage
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.usage.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
