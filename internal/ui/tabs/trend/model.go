// Package trend provides the daily spend trend tab.
package trend

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-calder/llmcost-dashboard-tui/internal/app"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the trend tab.
type keyMap struct {
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
}

// defaultKeyMap returns the default key bindings for the trend tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the trend tab state.
type Model struct {
	state          *app.State
	budgetMicroUSD int64
	width          int
	height         int
	keys           keyMap
	viewport       viewport.Model
	spinner        components.LoadingSpinner
	todayBar       components.ShareBar
}

// New creates a new trend model. budgetMicroUSD of zero disables the
// budget line in the sparkline and the today bar.
func New(state *app.State, budgetMicroUSD int64) *Model {
	return &Model{
		state:          state,
		budgetMicroUSD: budgetMicroUSD,
		keys:           defaultKeyMap(),
		viewport:       viewport.New(0, 0),
		spinner:        components.NewSpinner("Loading trend data..."),
		todayBar:       components.NewShareBar(),
	}
}

// Init starts the loading animation.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick()
}

// Update handles messages for the trend tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Refresh):
			cmds = append(cmds, func() tea.Msg {
				return app.RefreshMsg{Resource: "trend"}
			})

		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case spinner.TickMsg:
		if m.state.IsInitialLoading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// SetSize sets the available size for the trend tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Refresh,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Refresh},
		{m.keys.Up, m.keys.Down},
	}
}
