package trend

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/m-calder/llmcost-dashboard-tui/internal/format"
	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/components"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/styles"
)

// View renders the trend tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	days := m.state.GetDailyCosts()
	if len(days) == 0 {
		return m.renderEmpty()
	}

	sections := []string{
		m.renderHeader(days),
		m.renderCostChart(days),
		m.renderSparkline(days),
		m.renderActivity(days),
		m.renderSummary(days),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Daily Trend"),
		"",
		styles.HelpStyle.Render("No daily spend recorded yet."),
		styles.HelpStyle.Render("Data will appear as usage events are logged."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader(days []models.DailyCost) string {
	title := styles.TitleStyle.Render("Daily Trend")

	first := days[0].Date
	last := days[len(days)-1].Date
	subtitle := styles.HelpStyle.Render(fmt.Sprintf(
		"%s → %s (%d days, window: %s)",
		first.Format("Jan 2, 2006"),
		last.Format("Jan 2, 2006"),
		len(days),
		m.state.Window(),
	))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderCostChart(days []models.DailyCost) string {
	cardWidth := max(m.width-6, 40)

	costs := make([]float64, len(days))
	tokens := make([]float64, len(days))
	var totalTokens int64
	for i, d := range days {
		costs[i] = float64(d.CostMicroUSD) / 1_000_000
		tokens[i] = float64(d.Tokens)
		totalTokens += d.Tokens
	}

	chartWidth := max(cardWidth-12, 30)
	chartHeight := 8

	var rows []string

	// Rows with costs but no token counts plot as a single series; a
	// flat zero token line would squash the cost axis.
	if totalTokens == 0 {
		rows = append(rows, styles.CardTitleStyle.Render("Spend"), "")

		chart := components.RenderLineChart(costs, chartWidth, chartHeight,
			fmt.Sprintf("Last %d days - daily cost in USD", len(days)))
		for line := range strings.SplitSeq(chart, "\n") {
			rows = append(rows, "  "+line)
		}
		rows = append(rows, "")
	} else {
		rows = append(rows, styles.CardTitleStyle.Render("Spend vs Tokens"), "")

		chart := components.RenderDualLineChart(costs, tokens, chartWidth, chartHeight,
			fmt.Sprintf("Last %d days - cost in USD (red) vs tokens (blue)", len(days)))
		for line := range strings.SplitSeq(chart, "\n") {
			rows = append(rows, "  "+line)
		}

		rows = append(rows, "")
		legend := components.RenderLegend([]components.LegendItem{
			{Label: "Cost (USD)", Color: styles.Error},
			{Label: "Tokens", Color: styles.Info},
		})
		rows = append(rows, "  "+legend, "")
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderSparkline(days []models.DailyCost) string {
	cardWidth := max(m.width-6, 40)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Budget"), "")

	costs := make([]float64, len(days))
	for i, d := range days {
		costs[i] = float64(d.CostMicroUSD) / 1_000_000
	}
	budget := float64(m.budgetMicroUSD) / 1_000_000

	spark := components.RenderBudgetSparkline(costs, budget, max(cardWidth-12, 20))
	rows = append(rows, "  "+spark)

	if m.budgetMicroUSD > 0 {
		// Latest day against the budget, capped so an overrun still
		// renders as a full bar.
		today := days[len(days)-1]
		pct := min(float64(today.CostMicroUSD)/float64(m.budgetMicroUSD)*100, 100)
		rows = append(rows, "", "  "+m.todayBar.View(pct, "Today", cardWidth-8))

		rows = append(rows, "", "  "+styles.HelpStyle.Render(fmt.Sprintf(
			"Daily budget: %s", format.CostMicroUSD(m.budgetMicroUSD))))
	} else {
		rows = append(rows, "", "  "+styles.HelpStyle.Render("No daily budget configured"))
	}
	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderActivity shows events per day for the last week and the most
// recent raw usage events beneath it.
func (m *Model) renderActivity(days []models.DailyCost) string {
	events := m.state.GetRecentEvents()

	cardWidth := max(m.width-6, 40)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Recent Activity"), "")

	recent := days
	if len(recent) > 7 {
		recent = recent[len(recent)-7:]
	}
	values := make([]float64, len(recent))
	labels := make([]string, len(recent))
	for i, d := range recent {
		values[i] = float64(d.Events)
		labels[i] = d.Date.Format("Jan 2")
	}

	chart := components.RenderBarChart(values, labels, max(cardWidth-8, 30))
	for line := range strings.SplitSeq(chart, "\n") {
		rows = append(rows, "  "+line)
	}

	if len(events) > 0 {
		rows = append(rows, "", "  "+styles.SubTitleStyle.Render("Latest events"))
		for _, e := range events {
			rows = append(rows, fmt.Sprintf("  %s  %-24s %10s  %s",
				e.Timestamp.Format("Jan 2 15:04"),
				e.Model,
				format.Tokens(e.TotalTokens()),
				format.CostMicroUSD(e.TotalCostMicroUSD()),
			))
		}
	}
	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderSummary(days []models.DailyCost) string {
	cardWidth := max(m.width-6, 40)

	var totalCost, totalTokens int64
	var totalEvents int
	peak := days[0]
	for _, d := range days {
		totalCost += d.CostMicroUSD
		totalTokens += d.Tokens
		totalEvents += d.Events
		if d.CostMicroUSD > peak.CostMicroUSD {
			peak = d
		}
	}
	avgCost := totalCost / int64(len(days))

	tokenSeries := make([]float64, len(days))
	for i, d := range days {
		tokenSeries[i] = float64(d.Tokens)
	}
	tokenSpark := components.RenderSparkline(tokenSeries, max(cardWidth-30, 10))

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Summary"), "")
	rows = append(rows, fmt.Sprintf("  Total spend:  %s", format.CostMicroUSD(totalCost)))
	rows = append(rows, fmt.Sprintf("  Total tokens: %s  %s", format.Tokens(totalTokens),
		lipgloss.NewStyle().Foreground(styles.Info).Render(tokenSpark)))
	rows = append(rows, fmt.Sprintf("  Events:       %d", totalEvents))
	rows = append(rows, fmt.Sprintf("  Daily average: %s", format.CostMicroUSD(avgCost)))
	rows = append(rows, fmt.Sprintf("  Peak day:      %s (%s)",
		peak.Date.Format("Jan 2"),
		styles.GetBudgetStyle(peak.CostMicroUSD, m.budgetMicroUSD).Render(format.CostMicroUSD(peak.CostMicroUSD)),
	))

	if totals := m.state.GetTotals(); totals != nil && totals.UniqueModels > 0 {
		rows = append(rows, fmt.Sprintf("  Models used:   %d", totals.UniqueModels))
	}
	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
