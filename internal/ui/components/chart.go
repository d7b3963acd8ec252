// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/styles"
)

// asciigraph misbehaves below these dimensions.
const (
	minChartWidth  = 20
	minChartHeight = 3
)

// RenderLineChart plots a single series as an ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	return asciigraph.Plot(data,
		asciigraph.Height(max(height, minChartHeight)),
		asciigraph.Width(max(width, minChartWidth)),
		asciigraph.Caption(caption),
	)
}

// RenderDualLineChart plots cost against tokens as two colored series.
// Both series are padded to the same length so the x axes line up.
func RenderDualLineChart(costs, tokens []float64, width, height int, caption string) string {
	if len(costs) == 0 && len(tokens) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	n := max(len(costs), len(tokens))
	costData := make([]float64, n)
	tokenData := make([]float64, n)
	copy(costData, costs)
	copy(tokenData, tokens)

	return asciigraph.PlotMany([][]float64{costData, tokenData},
		asciigraph.Height(max(height, minChartHeight)),
		asciigraph.Width(max(width, minChartWidth)),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
	)
}

// RenderBarChart draws labelled horizontal bars scaled to the largest value.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := maxOf(values)
	if maxVal == 0 {
		maxVal = 1
	}

	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, len(l))
	}

	// Room for the label column, the axis, and the trailing value.
	barWidth := max(width-labelWidth-10, 10)

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		barLen := max(int(v/maxVal*float64(barWidth)), 0)
		lines = append(lines, fmt.Sprintf("%*s │%s %.1f",
			labelWidth, label, strings.Repeat("█", barLen), v))
	}

	return strings.Join(lines, "\n")
}

var sparkRunes = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func sparkRune(val, maxVal float64) rune {
	level := int(val / maxVal * float64(len(sparkRunes)-1))
	level = min(max(level, 0), len(sparkRunes)-1)
	return sparkRunes[level]
}

// sampleValues picks at most width evenly spaced values.
func sampleValues(values []float64, width int) []float64 {
	step := max(float64(len(values))/float64(width), 1)

	sampled := make([]float64, 0, width)
	for i := 0; i < width; i++ {
		idx := int(float64(i) * step)
		if idx >= len(values) {
			break
		}
		sampled = append(sampled, values[idx])
	}
	return sampled
}

func maxOf(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = max(m, v)
	}
	return m
}

// RenderSparkline draws a compact inline sparkline.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := maxOf(values)
	if maxVal == 0 {
		maxVal = 1
	}

	var b strings.Builder
	for _, v := range sampleValues(values, width) {
		b.WriteRune(sparkRune(v, maxVal))
	}
	return b.String()
}

// RenderBudgetSparkline draws a sparkline colored against a daily budget.
// Days at or over budget render red, days within 20% of it yellow.
func RenderBudgetSparkline(values []float64, budget float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := maxOf(values)
	if maxVal == 0 {
		maxVal = 1
	}

	var b strings.Builder
	for _, v := range sampleValues(values, width) {
		var color lipgloss.Color
		switch {
		case budget <= 0:
			color = styles.TextSecondary
		case v >= budget:
			color = styles.Error
		case v >= budget*0.8:
			color = styles.Warning
		default:
			color = styles.Success
		}
		cell := string(sparkRune(v, maxVal))
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(cell))
	}
	return b.String()
}

// LegendItem is a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// RenderLegend draws a one-line chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		swatch := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, swatch+" "+item.Label)
	}
	return strings.Join(parts, "  ")
}
