package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/styles"
)

// LoadingSpinner pairs a spinner with a short status label, used while a
// reporting window is being queried.
type LoadingSpinner struct {
	spinner    spinner.Model
	label      string
	labelStyle lipgloss.Style
}

// NewSpinner returns a dot spinner labelled with the given status text.
func NewSpinner(label string) LoadingSpinner {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)

	return LoadingSpinner{
		spinner:    s,
		label:      label,
		labelStyle: lipgloss.NewStyle().Foreground(styles.TextSecondary),
	}
}

func (l LoadingSpinner) Init() tea.Cmd {
	return l.spinner.Tick
}

func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// View renders the spinner frame alone.
func (l LoadingSpinner) View() string {
	return l.spinner.View()
}

// ViewWithLabel renders the spinner frame followed by the status label.
func (l LoadingSpinner) ViewWithLabel() string {
	return l.spinner.View() + " " + l.labelStyle.Render(l.label)
}

// SetLabel replaces the status label.
func (l *LoadingSpinner) SetLabel(label string) {
	l.label = label
}

// Label returns the current status label.
func (l LoadingSpinner) Label() string {
	return l.label
}

// Spinner exposes the underlying bubbles model.
func (l LoadingSpinner) Spinner() spinner.Model {
	return l.spinner
}

// Tick returns the command that advances the spinner animation.
func (l LoadingSpinner) Tick() tea.Cmd {
	return l.spinner.Tick
}

// RenderSpinnerCentered centers the labelled spinner in the given area.
func RenderSpinnerCentered(s LoadingSpinner, width, height int) string {
	return styles.CenterBoth(s.ViewWithLabel(), width, height)
}
