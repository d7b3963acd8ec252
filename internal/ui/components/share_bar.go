// Package components provides reusable UI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/m-calder/llmcost-dashboard-tui/internal/logger"
	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/styles"
)

// ShareBar renders a category's share of the batch total as a progress
// bar with label and percentage.
type ShareBar struct {
	progress progress.Model
}

// NewShareBar creates a new share bar with gradient colors.
func NewShareBar() ShareBar {
	p := progress.New(
		progress.WithScaledGradient("#4285f4", "#cc785c"),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return ShareBar{progress: p}
}

// View renders the share bar with percentage and label. The receiver is
// a value so adjusting the width for this render does not stick.
func (s ShareBar) View(percent float64, label string, width int) string {
	// Reserve space for the label and percentage columns.
	barWidth := width - 30
	if barWidth < 10 {
		barWidth = 10
	}
	s.progress.Width = barWidth

	bar := s.progress.ViewAs(percent / 100)

	percentStr := styles.SharePercentStyle.Render(fmt.Sprintf("%.2f%%", percent))
	labelStr := styles.ShareLabelStyle.Render(label)

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		labelStr,
		bar,
		" ",
		percentStr,
	)
}

// RenderCategoryBar renders just the bar characters in a category's
// accent color, with the empty remainder dimmed.
func RenderCategoryBar(category models.Category, percent float64, width int) string {
	if width < 1 {
		return ""
	}

	filled := int(float64(width) * percent / 100)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	accent := styles.GetCategoryStyle(category)
	dim := lipgloss.NewStyle().Foreground(styles.Subtle)

	return accent.Render(strings.Repeat("█", filled)) +
		dim.Render(strings.Repeat("░", width-filled))
}

// RenderGradientBar renders just the bar part with gradient colors.
func RenderGradientBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}

	filled := int(float64(width) * percent / 100)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	var barChars []string
	for i := 0; i < width; i++ {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor("#4285f4", "#cc785c", t)
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			barChars = append(barChars, style.Render("█"))
		} else {
			style := lipgloss.NewStyle().Foreground(styles.Subtle)
			barChars = append(barChars, style.Render("░"))
		}
	}

	return strings.Join(barChars, "")
}

// SimpleShareBar renders a simple ASCII share bar with gradient colors.
func SimpleShareBar(percent float64, label string, width int) string {
	labelWidth := len(label) + 1
	percentWidth := 8
	barWidth := width - labelWidth - percentWidth - 4

	if barWidth < 5 {
		barWidth = 5
	}

	bar := RenderGradientBar(percent, barWidth)

	labelStr := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(label)

	percentStr := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(percentWidth).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.2f%%", percent))

	return fmt.Sprintf("%s [%s] %s", labelStr, bar, percentStr)
}

// SimpleShareBarLoading renders a shimmering placeholder bar while the
// first batch loads.
func SimpleShareBarLoading(label string, width int, frame int) string {
	const (
		indentWidth  = 4
		percentWidth = 8
	)

	barWidth := width - indentWidth - percentWidth - 4
	if barWidth < 10 {
		barWidth = 10
	}

	accentColor := styles.Primary
	switch {
	case strings.EqualFold(label, models.CategoryInput.Label()):
		accentColor = styles.Input
	case strings.EqualFold(label, models.CategoryOutput.Label()):
		accentColor = styles.Output
	case strings.EqualFold(label, models.CategoryCacheRead.Label()):
		accentColor = styles.CacheRead
	case strings.EqualFold(label, models.CategoryCacheWrite.Label()):
		accentColor = styles.CacheWrite
	}

	cycle := 120

	t := float64(frame%cycle) / float64(cycle)
	var p float64
	if t < 0.5 {
		p = t * 2
	} else {
		p = (1 - t) * 2
	}
	eased := p * p * (3 - 2*p)
	shimmerPos := int(eased * float64(barWidth))
	var barChars []string

	for i := 0; i < barWidth; i++ {
		dist := shimmerPos - i
		if dist < 0 {
			dist = -dist
		}

		var char string
		var style lipgloss.Style

		if dist < 3 {
			char = "▓"
			style = lipgloss.NewStyle().Foreground(accentColor)
		} else if dist < 5 {
			char = "▒"
			style = lipgloss.NewStyle().Foreground(styles.TextSecondary)
		} else {
			char = "░"
			style = lipgloss.NewStyle().Foreground(styles.BgLight)
		}

		barChars = append(barChars, style.Render(char))
	}

	bar := strings.Join(barChars, "")

	indent := "    "

	dots := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	dot := dots[(frame/2)%len(dots)]

	loadingStr := lipgloss.NewStyle().
		Width(percentWidth).
		Align(lipgloss.Right).
		Foreground(accentColor).
		Render(dot)

	return lipgloss.JoinHorizontal(lipgloss.Left,
		indent,
		bar,
		" ",
		loadingStr,
	)
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
