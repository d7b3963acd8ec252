package breakdown

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/m-calder/llmcost-dashboard-tui/internal/format"
	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/components"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/styles"
)

// View renders the breakdown tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderTable())
	sections = append(sections, m.renderShareBars())
	sections = append(sections, m.renderCostShares())
	sections = append(sections, m.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

// renderLoading renders a placeholder bar per category with a shimmer
// sweep until the first batch arrives.
func (m *Model) renderLoading() string {
	barWidth := m.width - 10
	if barWidth < 50 {
		barWidth = 50
	}

	rows := []string{m.spinner.ViewWithLabel(), ""}
	for _, c := range models.Categories {
		rows = append(rows, components.SimpleShareBarLoading(c.Label(), barWidth, m.frame))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	return styles.CenterBoth(content, m.width, m.height)
}

// renderTitle renders the breakdown tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Cost Breakdown")

	batch := m.state.GetBatch()
	subtitle := "No usage loaded"
	if batch != nil {
		subtitle = fmt.Sprintf("%s, last %s", batch.Scope, batch.Window)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		styles.HelpStyle.Render(subtitle),
		"",
	)
}

// renderTable renders the category table with a totals row beneath it.
func (m *Model) renderTable() string {
	batch := m.state.GetBatch()

	if batch == nil || len(batch.Records) == 0 {
		return m.renderEmptyState()
	}

	// Re-pull from shared state: the batch may have refreshed while
	// another tab was active.
	m.syncRows()

	cardWidth := m.width - 6
	if cardWidth < 60 {
		cardWidth = 60
	}

	totals := styles.TableTotalsStyle.Render(fmt.Sprintf(
		"%-*s%-12s  %-14s  %s",
		m.categoryWidth(), "Total",
		format.Tokens(batch.TotalCount()),
		format.CostMicroUSD(batch.TotalCostMicroUSD()),
		"100.00%",
	))

	content := lipgloss.JoinVertical(lipgloss.Left, m.table.View(), totals)

	return styles.CardStyle.Width(cardWidth).Render(content)
}

// renderEmptyState renders the empty state when no usage exists.
func (m *Model) renderEmptyState() string {
	cardWidth := m.width - 6
	if cardWidth < 40 {
		cardWidth = 40
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.SubTitleStyle.Render("No Usage Recorded"),
		"",
		styles.HelpStyle.Render("Usage events will appear here as they are logged."),
		"",
		styles.InfoTextStyle.Render("Press 'w' to change the reporting window"),
		"",
	)

	return styles.CardStyle.Width(cardWidth).Render(content)
}

// renderShareBars renders one proportional bar per category.
func (m *Model) renderShareBars() string {
	batch := m.state.GetBatch()
	if batch == nil || len(batch.Records) == 0 {
		return ""
	}

	cardWidth := m.width - 6
	if cardWidth < 60 {
		cardWidth = 60
	}
	barWidth := cardWidth - 30
	if barWidth < 10 {
		barWidth = 10
	}

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Token Share"))

	for _, r := range batch.Records {
		bar := components.RenderCategoryBar(r.Category, r.Percentage, barWidth)
		label := styles.ShareLabelStyle.Render(r.Category.Label())
		pct := styles.SharePercentStyle.Render(format.Percent(r.Percentage))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, bar, pct))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	return styles.CardStyle.Width(cardWidth).Render(content)
}

// renderCostShares renders each category's share of the window's cost,
// as opposed to its share of the token count above.
func (m *Model) renderCostShares() string {
	batch := m.state.GetBatch()
	if batch == nil || len(batch.Records) == 0 {
		return ""
	}

	totalCost := batch.TotalCostMicroUSD()

	cardWidth := m.width - 6
	if cardWidth < 60 {
		cardWidth = 60
	}

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Cost Share"))

	for _, r := range batch.Records {
		pct := 0.0
		if totalCost > 0 {
			pct = float64(r.CostMicroUSD) / float64(totalCost) * 100
		}
		label := fmt.Sprintf("%-12s", r.Category.Label())
		rows = append(rows, components.SimpleShareBar(pct, label, cardWidth-4))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	return styles.CardStyle.Width(cardWidth).Render(content)
}

// renderFooter renders the footer with keyboard shortcuts.
func (m *Model) renderFooter() string {
	shortcuts := []string{
		styles.HelpKeyStyle.Render("t") + " tokens",
		styles.HelpKeyStyle.Render("c") + " cost",
		styles.HelpKeyStyle.Render("p") + " share",
		styles.HelpKeyStyle.Render("n") + " category",
		styles.HelpKeyStyle.Render("w") + " window",
	}

	footer := ""
	for i, s := range shortcuts {
		if i > 0 {
			footer += styles.HelpSeparatorStyle.Render(" | ")
		}
		footer += s
	}

	return lipgloss.NewStyle().
		MarginTop(1).
		Foreground(styles.TextMuted).
		Render(footer)
}
