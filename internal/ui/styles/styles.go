// Package styles defines the visual styling for the application.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
)

// Color palette for the dashboard theme.
var (
	Primary   = lipgloss.Color("205") // Pink
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// One accent color per usage category, shared between the breakdown
	// table and the share bars so a category reads the same everywhere.
	Input      = lipgloss.Color("39")  // Blue
	Output     = lipgloss.Color("208") // Orange
	CacheRead  = lipgloss.Color("42")  // Green
	CacheWrite = lipgloss.Color("135") // Violet

	Success = lipgloss.Color("42")
	Error   = lipgloss.Color("196")
	Warning = lipgloss.Color("220")
	Info    = lipgloss.Color("39")

	BgDark   = lipgloss.Color("235")
	BgLight  = lipgloss.Color("237")
	BgAccent = lipgloss.Color("236")

	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")
)

// Headings and layout.
var (
	// TitleStyle is used for main headings.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	// SubTitleStyle is used for section headings.
	SubTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			MarginBottom(1)

	// DocStyle provides consistent document margins.
	DocStyle = lipgloss.NewStyle().
			Margin(1, 2).
			Padding(0, 1)

	// CardStyle is a bordered card container.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(1, 2).
			MarginBottom(1)

	// CardTitleStyle styles card headers.
	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)
)

// Overlays.
var (
	// ToastStyle frames floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)

	// HelpPanelStyle frames the help overlay.
	HelpPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(1, 3).
			Background(BgDark)
)

// Help footer text.
var (
	HelpStyle          = lipgloss.NewStyle().Foreground(TextMuted)
	HelpKeyStyle       = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HelpSeparatorStyle = lipgloss.NewStyle().Foreground(Subtle)
)

// Share bars.
var (
	// ShareLabelStyle styles the category name next to a share bar.
	ShareLabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondary).
			Width(14)

	// SharePercentStyle right-aligns the percentage after a share bar.
	SharePercentStyle = lipgloss.NewStyle().
				Foreground(TextPrimary).
				Width(8).
				Align(lipgloss.Right)
)

// TableTotalsStyle styles the totals row under the category table.
var TableTotalsStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary).
	BorderStyle(lipgloss.NormalBorder()).
	BorderTop(true).
	BorderForeground(Subtle)

// InfoTextStyle styles informational annotations.
var InfoTextStyle = lipgloss.NewStyle().Foreground(Info)

// Budget threshold styles, looked up through GetBudgetStyle.
var (
	budgetOverStyle = lipgloss.NewStyle().Foreground(Error).Bold(true)
	budgetNearStyle = lipgloss.NewStyle().Foreground(Warning)
	budgetOKStyle   = lipgloss.NewStyle().Foreground(Success)
)

// GetCategoryStyle returns the accent style for a usage category.
func GetCategoryStyle(category models.Category) lipgloss.Style {
	switch category {
	case models.CategoryInput:
		return lipgloss.NewStyle().Foreground(Input)
	case models.CategoryOutput:
		return lipgloss.NewStyle().Foreground(Output)
	case models.CategoryCacheRead:
		return lipgloss.NewStyle().Foreground(CacheRead)
	case models.CategoryCacheWrite:
		return lipgloss.NewStyle().Foreground(CacheWrite)
	default:
		return lipgloss.NewStyle().Foreground(Subtle)
	}
}

// GetBudgetStyle returns the style for spend at a fraction of budget.
// Spend within 20% of the budget counts as near.
func GetBudgetStyle(spent, budget int64) lipgloss.Style {
	if budget <= 0 {
		return lipgloss.NewStyle().Foreground(TextSecondary)
	}
	switch {
	case spent >= budget:
		return budgetOverStyle
	case spent*10 >= budget*8:
		return budgetNearStyle
	default:
		return budgetOKStyle
	}
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
