package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/m-calder/llmcost-dashboard-tui/internal/format"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/styles"
	"github.com/m-calder/llmcost-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderConfigCard())
	sections = append(sections, m.renderAboutCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderConfigCard renders the configuration card.
func (m *Model) renderConfigCard() string {
	cardWidth := m.cardWidth()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		scope := m.config.TenantScope
		if scope == "" {
			scope = "(all scopes)"
		}
		budget := "disabled"
		if m.config.DailyBudgetMicroUSD > 0 {
			budget = format.CostMicroUSD(m.config.DailyBudgetMicroUSD) + " per day"
		}

		rows = append(rows, m.renderConfigRow("Database", m.config.DatabasePath))
		rows = append(rows, m.renderConfigRow("Tenant Scope", scope))
		rows = append(rows, m.renderConfigRow("Refresh", m.config.RefreshInterval.String()))
		rows = append(rows, m.renderConfigRow("Daily Budget", budget))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("Press 'c' to copy the database path"))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	cardWidth := m.cardWidth()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About LLM Cost Dashboard"))
	rows = append(rows, "")

	rows = append(rows, m.renderConfigRow("Version", version.GetVersion()))
	rows = append(rows, m.renderConfigRow("Build Date", version.GetDate()))
	rows = append(rows, m.renderConfigRow("Git Commit", version.GetCommit()))
	rows = append(rows, m.renderConfigRow("Go Version", runtime.Version()))
	rows = append(rows, m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))
	rows = append(rows, "")

	if totals := m.state.GetTotals(); totals != nil {
		rows = append(rows, fmt.Sprintf("Events in window: %s",
			styles.InfoTextStyle.Render(fmt.Sprintf("%d", totals.Events))))
	}
	if last := m.state.GetLastUpdated(); !last.IsZero() {
		rows = append(rows, fmt.Sprintf("Last refresh: %s",
			styles.InfoTextStyle.Render(last.Format("15:04:05"))))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) cardWidth() int {
	w := m.width - 6
	if w < 50 {
		w = 50
	}
	if w > 80 {
		w = 80
	}
	return w
}
