// Package info provides the info tab with configuration and build details.
package info

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-calder/llmcost-dashboard-tui/internal/app"
	"github.com/m-calder/llmcost-dashboard-tui/internal/config"
)

type keyMap struct {
	Copy    key.Binding
	Refresh key.Binding
	Scroll  key.Binding
}

// Model renders the resolved configuration and build metadata. It is
// read-only apart from copying the database path to the clipboard.
type Model struct {
	state    *app.State
	config   *config.Config
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int
}

// New creates the info tab backed by the shared state and resolved config.
func New(state *app.State, cfg *config.Config) *Model {
	return &Model{
		state:  state,
		config: cfg,
		keys: keyMap{
			Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy db path")),
			Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
			Scroll:  key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "scroll")),
		},
		viewport: viewport.New(0, 0),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles the copy shortcut; everything else scrolls the viewport.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, m.keys.Copy) && m.config != nil {
		path := m.config.DatabasePath
		return m, func() tea.Msg {
			return app.CopyToClipboardMsg{Text: path}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(keyMsg)
	return m, cmd
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Copy}
}

func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Copy, m.keys.Refresh},
		{m.keys.Scroll},
	}
}
