package breakdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-calder/llmcost-dashboard-tui/internal/app"
	"github.com/m-calder/llmcost-dashboard-tui/internal/attribution"
	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
)

func newTestModel() *Model {
	state := app.NewState()
	state.SetLoading("initial", false)

	batch := models.Batch{
		Scope:  "acme",
		Window: models.Window30Days,
		Records: []models.AnnotatedRecord{
			{CategoryRecord: models.CategoryRecord{Category: models.CategoryInput, Count: 600_000, CostMicroUSD: 1_800_000}, Percentage: 60},
			{CategoryRecord: models.CategoryRecord{Category: models.CategoryOutput, Count: 100_000, CostMicroUSD: 1_500_000}, Percentage: 10},
			{CategoryRecord: models.CategoryRecord{Category: models.CategoryCacheRead, Count: 250_000, CostMicroUSD: 75_000}, Percentage: 25},
			{CategoryRecord: models.CategoryRecord{Category: models.CategoryCacheWrite, Count: 50_000, CostMicroUSD: 187_500}, Percentage: 5},
		},
	}
	state.SetBatch(batch)

	m := New(state)
	m.SetSize(100, 40)
	return m
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNew(t *testing.T) {
	m := newTestModel()
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.sort.Direction != attribution.DirectionNone {
		t.Error("initial sort direction should be none")
	}
}

func TestModel_SortCycle(t *testing.T) {
	m := newTestModel()

	// First press: descending
	m.Update(keyMsg('c'))
	if m.sort.Key != attribution.SortByCost || m.sort.Direction != attribution.DirectionDesc {
		t.Errorf("after first press: %+v, want cost desc", m.sort)
	}

	// Second press: ascending
	m.Update(keyMsg('c'))
	if m.sort.Direction != attribution.DirectionAsc {
		t.Errorf("after second press: %+v, want asc", m.sort)
	}

	// Third press: back to unsorted
	m.Update(keyMsg('c'))
	if m.sort.Direction != attribution.DirectionNone {
		t.Errorf("after third press: %+v, want none", m.sort)
	}
}

func TestModel_SortKeySwitch(t *testing.T) {
	m := newTestModel()

	m.Update(keyMsg('t'))
	m.Update(keyMsg('t'))
	if m.sort.Key != attribution.SortByCount || m.sort.Direction != attribution.DirectionAsc {
		t.Fatalf("setup: %+v, want count asc", m.sort)
	}

	// Switching keys starts a fresh descending sort
	m.Update(keyMsg('p'))
	if m.sort.Key != attribution.SortByPercentage || m.sort.Direction != attribution.DirectionDesc {
		t.Errorf("after switch: %+v, want percentage desc", m.sort)
	}

	m.Update(keyMsg('n'))
	if m.sort.Key != attribution.SortByCategory || m.sort.Direction != attribution.DirectionDesc {
		t.Errorf("after switch: %+v, want category desc", m.sort)
	}
}

func TestModel_SortedRows(t *testing.T) {
	m := newTestModel()

	// Descending by cost: Input ($1.80) first
	m.Update(keyMsg('c'))
	rows := m.table.Rows()
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[0][0] != "Input" {
		t.Errorf("top row = %s, want Input", rows[0][0])
	}
	if rows[3][0] != "Cache Read" {
		t.Errorf("bottom row = %s, want Cache Read", rows[3][0])
	}

	// Third press restores the canonical category order
	m.Update(keyMsg('c'))
	m.Update(keyMsg('c'))
	rows = m.table.Rows()
	if rows[0][0] != "Input" || rows[1][0] != "Output" {
		t.Errorf("unsorted order = %s, %s; want Input, Output", rows[0][0], rows[1][0])
	}
}

func TestModel_RowFormatting(t *testing.T) {
	m := newTestModel()
	m.syncRows()

	rows := m.table.Rows()
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}

	// Input row: 600K tokens, $1.80, 60.00%
	if rows[0][1] != "600.0K" {
		t.Errorf("tokens = %s, want 600.0K", rows[0][1])
	}
	if rows[0][2] != "$1.80" {
		t.Errorf("cost = %s, want $1.80", rows[0][2])
	}
	if rows[0][3] != "60.00%" {
		t.Errorf("share = %s, want 60.00%%", rows[0][3])
	}
}

func TestModel_SortIndicator(t *testing.T) {
	m := newTestModel()

	m.Update(keyMsg('t'))
	cols := columns(m.sort, m.categoryWidth())
	if !strings.Contains(cols[1].Title, "▼") {
		t.Errorf("tokens column = %q, want descending indicator", cols[1].Title)
	}

	m.Update(keyMsg('t'))
	cols = columns(m.sort, m.categoryWidth())
	if !strings.Contains(cols[1].Title, "▲") {
		t.Errorf("tokens column = %q, want ascending indicator", cols[1].Title)
	}

	m.Update(keyMsg('t'))
	cols = columns(m.sort, m.categoryWidth())
	if strings.Contains(cols[1].Title, "▼") || strings.Contains(cols[1].Title, "▲") {
		t.Errorf("tokens column = %q, want no indicator", cols[1].Title)
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel()

	view := m.View()
	if !strings.Contains(view, "Cost Breakdown") {
		t.Error("View should show title")
	}
	if !strings.Contains(view, "Cache Write") {
		t.Error("View should show category rows")
	}
	if !strings.Contains(view, "Token Share") {
		t.Error("View should show share bars")
	}
	if !strings.Contains(view, "Cost Share") {
		t.Error("View should show cost share bars")
	}
	if !strings.Contains(view, "Total") {
		t.Error("View should show totals row")
	}
}

func TestModel_View_Empty(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)

	m := New(state)
	m.SetSize(100, 40)

	view := m.View()
	if !strings.Contains(view, "No Usage Recorded") {
		t.Error("View should show empty state")
	}
}

func TestModel_View_Loading(t *testing.T) {
	state := app.NewState()

	m := New(state)
	m.SetSize(100, 40)

	view := m.View()
	if !strings.Contains(view, "Loading usage...") {
		t.Error("View should show loading spinner")
	}
	if !strings.Contains(view, "░") {
		t.Error("View should show placeholder bars")
	}
}

func TestModel_LoadingShimmer(t *testing.T) {
	state := app.NewState()

	m := New(state)
	m.SetSize(100, 40)

	m.Update(spinner.TickMsg{})
	if m.frame != 1 {
		t.Errorf("frame = %d, want 1 after tick", m.frame)
	}

	state.SetLoading("initial", false)
	m.Update(spinner.TickMsg{})
	if m.frame != 1 {
		t.Error("frame should stop advancing once data is loaded")
	}
}

func TestModel_Help(t *testing.T) {
	m := newTestModel()

	if len(m.ShortHelp()) != 4 {
		t.Errorf("ShortHelp len = %d, want 4", len(m.ShortHelp()))
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp should not be empty")
	}
}
