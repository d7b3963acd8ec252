// Package breakdown provides the per-category cost breakdown tab.
package breakdown

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/m-calder/llmcost-dashboard-tui/internal/app"
	"github.com/m-calder/llmcost-dashboard-tui/internal/attribution"
	"github.com/m-calder/llmcost-dashboard-tui/internal/format"
	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/components"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/styles"
)

// keyMap defines the key bindings specific to the breakdown tab.
type keyMap struct {
	SortTokens   key.Binding
	SortCost     key.Binding
	SortPercent  key.Binding
	SortCategory key.Binding
	Refresh      key.Binding
}

// defaultKeyMap returns the default key bindings for the breakdown tab.
func defaultKeyMap() keyMap {
	return keyMap{
		SortTokens: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "sort by tokens"),
		),
		SortCost: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "sort by cost"),
		),
		SortPercent: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "sort by share"),
		),
		SortCategory: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "sort by category"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// Model represents the breakdown tab state.
type Model struct {
	state   *app.State
	table   table.Model
	sort    attribution.SortState
	width   int
	height  int
	spinner components.LoadingSpinner
	frame   int
	keys    keyMap
}

// New creates a new breakdown model.
func New(state *app.State) *Model {
	t := table.New(
		table.WithColumns(columns(attribution.SortState{}, 0)),
		table.WithFocused(true),
		table.WithHeight(len(models.Categories)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	return &Model{
		state:   state,
		table:   t,
		spinner: components.NewSpinner("Loading usage..."),
		keys:    defaultKeyMap(),
	}
}

// Init starts the loading animation.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick()
}

// Update handles messages for the breakdown tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.SortTokens):
			m.toggleSort(attribution.SortByCount)

		case key.Matches(msg, m.keys.SortCost):
			m.toggleSort(attribution.SortByCost)

		case key.Matches(msg, m.keys.SortPercent):
			m.toggleSort(attribution.SortByPercentage)

		case key.Matches(msg, m.keys.SortCategory):
			m.toggleSort(attribution.SortByCategory)

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}

	case spinner.TickMsg:
		// The frame counter drives the placeholder bar shimmer. The
		// tick loop stops once the first batch lands.
		if m.state.IsInitialLoading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.frame++
			cmds = append(cmds, cmd)
		}

	case app.BatchLoadedMsg:
		m.syncRows()
	}

	return m, tea.Batch(cmds...)
}

// toggleSort advances the tri-state cycle for the given key and
// refreshes the visible rows. Unsorted goes to descending, then
// ascending, then back to the original canonical order.
func (m *Model) toggleSort(key attribution.SortKey) {
	m.sort = m.sort.Toggle(key)
	m.syncRows()
}

// SortState returns the current sort descriptor.
func (m *Model) SortState() attribution.SortState {
	return m.sort
}

// syncRows rebuilds the table from the shared state. The batch in state
// keeps its original order; sorting happens on a copy every time so
// clearing the sort restores the canonical category order exactly.
func (m *Model) syncRows() {
	m.table.SetColumns(columns(m.sort, m.categoryWidth()))

	batch := m.state.GetBatch()
	if batch == nil {
		m.table.SetRows(nil)
		return
	}

	records, err := attribution.ApplySort(batch.Records, m.sort)
	if err != nil {
		// Unknown key means stale state; fall back to the stored order.
		records = batch.Records
	}

	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			r.Category.Label(),
			format.Tokens(r.Count),
			format.CostMicroUSD(r.CostMicroUSD),
			format.Percent(r.Percentage),
		})
	}

	m.table.SetRows(rows)
}

// columns builds the table columns, marking the active sort column with
// a direction indicator.
func columns(sort attribution.SortState, categoryWidth int) []table.Column {
	if categoryWidth < 14 {
		categoryWidth = 14
	}

	titles := map[attribution.SortKey]string{
		attribution.SortByCategory:   "Category",
		attribution.SortByCount:      "Tokens",
		attribution.SortByCost:       "Cost",
		attribution.SortByPercentage: "Share",
	}

	if indicator := sort.Direction.String(); indicator != "" {
		titles[sort.Key] = titles[sort.Key] + " " + indicator
	}

	return []table.Column{
		{Title: titles[attribution.SortByCategory], Width: categoryWidth},
		{Title: titles[attribution.SortByCount], Width: 12},
		{Title: titles[attribution.SortByCost], Width: 14},
		{Title: titles[attribution.SortByPercentage], Width: 10},
	}
}

func (m *Model) categoryWidth() int {
	w := m.width - 48
	if w < 14 {
		w = 14
	}
	if w > 24 {
		w = 24
	}
	return w
}

// SetSize sets the available size for the breakdown tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(columns(m.sort, m.categoryWidth()))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.SortTokens,
		m.keys.SortCost,
		m.keys.SortPercent,
		m.keys.SortCategory,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.SortTokens, m.keys.SortCost},
		{m.keys.SortPercent, m.keys.SortCategory},
		{m.keys.Refresh},
	}
}
