// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/m-calder/llmcost-dashboard-tui/internal/format"
	"github.com/m-calder/llmcost-dashboard-tui/internal/services"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/styles"
)

// TabID identifies one of the top-level tabs.
type TabID int

const (
	// TabBreakdown shows per-category token and cost attribution.
	TabBreakdown TabID = iota
	// TabTrend shows the daily spend history.
	TabTrend
	// TabInfo shows configuration and build details.
	TabInfo
)

func (t TabID) String() string {
	switch t {
	case TabBreakdown:
		return "Breakdown"
	case TabTrend:
		return "Trend"
	case TabInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Tab is implemented by each top-level tab. Only the active tab receives
// Update messages; tabs that depend on shared state re-read it in View.
type Tab interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Tab, tea.Cmd)
	View() string
	SetSize(width, height int)
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// KeyMap holds the global keybindings. Tab-local bindings live with the tabs.
type KeyMap struct {
	Tab1     key.Binding
	Tab2     key.Binding
	Tab3     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Window   key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Escape   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default global keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab1:     bind("1", "breakdown", "1"),
		Tab2:     bind("2", "trend", "2"),
		Tab3:     bind("3", "info", "3"),
		NextTab:  bind("tab/→", "next tab", "tab", "l", "right"),
		PrevTab:  bind("shift+tab/←", "prev tab", "shift+tab", "h", "left"),
		Window:   bind("w", "cycle window", "w"),
		Refresh:  bind("r", "refresh", "r", "ctrl+r"),
		Help:     bind("?", "toggle help", "?"),
		Quit:     bind("q", "quit", "q", "ctrl+c"),
		Up:       bind("↑/k", "up", "up", "k"),
		Down:     bind("↓/j", "down", "down", "j"),
		Enter:    bind("enter", "select", "enter"),
		Escape:   bind("esc", "cancel", "esc"),
		PageUp:   bind("pgup", "page up", "pgup", "ctrl+u"),
		PageDown: bind("pgdn", "page down", "pgdown", "ctrl+d"),
		Home:     bind("home", "go to top", "home", "g"),
		End:      bind("end", "go to bottom", "end", "G"),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Window, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3},
		{k.NextTab, k.PrevTab},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Window, k.Refresh, k.Help, k.Quit},
	}
}

// Styles holds the chrome-level styles: navbar, toasts, and help overlay.
// Tab content styling lives in ui/styles.
type Styles struct {
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	Content lipgloss.Style
	Toast   lipgloss.Style

	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	var (
		subtle    = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
		highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
		success   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
		warning   = lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
		errColor  = lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
		info      = lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}
	)

	return Styles{
		TabBar: lipgloss.NewStyle().Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(subtle),
		ActiveTab:   lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(0, 2),
		InactiveTab: lipgloss.NewStyle().Foreground(subtle).Padding(0, 2),

		NotificationSuccess: lipgloss.NewStyle().Foreground(success).Padding(0, 1),
		NotificationError:   lipgloss.NewStyle().Foreground(errColor).Bold(true).Padding(0, 1),
		NotificationWarning: lipgloss.NewStyle().Foreground(warning).Padding(0, 1),
		NotificationInfo:    lipgloss.NewStyle().Foreground(info).Padding(0, 1),

		Content: lipgloss.NewStyle().Padding(1, 2),
		Toast:   styles.ToastStyle,

		Title:     lipgloss.NewStyle().Bold(true).Foreground(highlight),
		Subtle:    lipgloss.NewStyle().Foreground(subtle),
		Highlight: lipgloss.NewStyle().Foreground(highlight),
	}
}

// Model is the root application model. It owns the shared state, routes
// messages to the active tab, and draws the navbar, help overlay, and
// notification toasts around the tab content.
type Model struct {
	activeTab TabID
	tabs      []Tab
	tabNames  []string

	state    *State
	services *services.Manager
	keymap   KeyMap
	styles   Styles

	spinner spinner.Model

	width  int
	height int

	showHelp bool
	ready    bool

	eventChannel chan services.ServiceEvent
}

// NewModel builds the root model. Tabs are attached afterwards with SetTabs
// because they need the shared state this constructor creates.
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		activeTab: TabBreakdown,
		tabNames:  []string{"Breakdown", "Trend", "Info"},
		tabs:      make([]Tab, 3),
		state:     NewState(),
		services:  mgr,
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   s,
	}
}

// SetTabs attaches the tab implementations.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the shared application state.
func (m *Model) GetState() *State {
	return m.state
}

// Init kicks off the spinner, the notification sweep tick, the service
// subscription, and the initial data load.
func (m *Model) Init() tea.Cmd {
	m.state.SetLoadingNotification("Loading...")

	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
	}

	if m.services != nil {
		cmds = append(cmds,
			subscribeToServicesCmd(m.services),
			loadInitialData(m.services, m.state.Window()),
		)
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update routes terminal messages and application messages, then forwards
// the message to the active tab.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg, tea.KeyMsg, spinner.TickMsg:
		if cmd := m.handleTeaMsg(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	default:
		if appCmds := m.handleAppMsg(msg); len(appCmds) > 0 {
			cmds = append(cmds, appCmds...)
		}
	}

	if cmd := m.updateActiveTab(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleTeaMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateTabSizes()
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEventMsg(msg)...)
	case BatchLoadedMsg:
		cmds = append(cmds, m.handleBatchLoaded(msg)...)
	case TrendLoadedMsg:
		cmds = append(cmds, m.handleTrendLoaded(msg)...)
	case EventsLoadedMsg:
		cmds = append(cmds, m.handleEventsLoaded(msg)...)
	case WindowChangedMsg:
		m.state.SetWindow(msg.Window)
		cmds = append(cmds, m.reloadCmds()...)
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()
	case StartLoadingMsg:
		m.state.SetLoading(msg.Resource, true)
		m.state.SetLoadingNotification("Refreshing...")
	case StopLoadingMsg:
		m.state.SetLoading(msg.Resource, false)
		if !m.state.AnyLoading() {
			m.state.ClearLoadingNotification()
		}
	case ErrorMsg:
		cmds = append(cmds, notifyErrorCmd(msg.Error.Error()))
	case RefreshMsg:
		cmds = append(cmds, m.handleRefresh(msg)...)
	case CopyToClipboardMsg:
		cmds = append(cmds,
			tea.SetClipboard(msg.Text),
			notifySuccessCmd(fmt.Sprintf("Copied: %s", msg.Text)),
		)
	case TabSwitchMsg:
		m.activeTab = msg.Tab
		m.updateTabSizes()
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) handleServiceEventMsg(msg ServiceEventMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.handleServiceEvent(msg.Event); cmd != nil {
		cmds = append(cmds, cmd)
	}
	// Re-arm the wait so the next event is delivered too.
	if m.eventChannel != nil {
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	}
	return cmds
}

func (m *Model) handleBatchLoaded(msg BatchLoadedMsg) []tea.Cmd {
	var cmds []tea.Cmd
	m.state.SetLoading("initial", false)
	m.state.SetLoading("batch", false)

	if msg.Error != nil {
		cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Failed to load usage: %v", msg.Error)))
	} else {
		m.state.SetBatch(msg.Batch)
		m.state.SetTotals(msg.Totals)
	}

	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
	return cmds
}

func (m *Model) handleTrendLoaded(msg TrendLoadedMsg) []tea.Cmd {
	var cmds []tea.Cmd
	m.state.SetLoading("trend", false)

	if msg.Error != nil {
		cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Failed to load trend: %v", msg.Error)))
	} else {
		m.state.SetDailyCosts(msg.Days)
	}

	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
	return cmds
}

func (m *Model) handleEventsLoaded(msg EventsLoadedMsg) []tea.Cmd {
	if msg.Error != nil {
		return []tea.Cmd{notifyErrorCmd(fmt.Sprintf("Failed to load events: %v", msg.Error))}
	}
	m.state.SetRecentEvents(msg.Events)
	return nil
}

func (m *Model) handleRefresh(msg RefreshMsg) []tea.Cmd {
	if m.services == nil {
		return nil
	}

	cmds := []tea.Cmd{func() tea.Msg { return StartLoadingMsg(msg) }}

	window := m.state.Window()
	switch msg.Resource {
	case "all":
		cmds = append(cmds, loadBatchCmd(m.services, window), loadTrendCmd(m.services, window))
	case "batch":
		cmds = append(cmds, loadBatchCmd(m.services, window))
	case "trend":
		cmds = append(cmds, loadTrendCmd(m.services, window))
	}
	return cmds
}

// reloadCmds refreshes the batch, trend, and recent events for the
// active window.
func (m *Model) reloadCmds() []tea.Cmd {
	if m.services == nil {
		return nil
	}
	window := m.state.Window()
	return []tea.Cmd{
		func() tea.Msg { return StartLoadingMsg{Resource: "batch"} },
		loadBatchCmd(m.services, window),
		loadTrendCmd(m.services, window),
		loadEventsCmd(m.services),
	}
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

// updateTabSizes hands the content area to every tab. The navbar and its
// border take the rows above; a footer row stays free below.
func (m *Model) updateTabSizes() {
	contentHeight := max(0, m.height-5)
	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

func (m *Model) switchTab(tab TabID) {
	m.activeTab = tab
	m.updateTabSizes()
}

// handleKeyMsg handles the global keybindings. Anything unmatched falls
// through to the active tab via updateActiveTab.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keymap.Tab1):
		m.switchTab(TabBreakdown)

	case key.Matches(msg, m.keymap.Tab2):
		m.switchTab(TabTrend)

	case key.Matches(msg, m.keymap.Tab3):
		m.switchTab(TabInfo)

	case key.Matches(msg, m.keymap.NextTab):
		if !m.showHelp {
			m.switchTab(TabID((int(m.activeTab) + 1) % len(m.tabs)))
		}

	case key.Matches(msg, m.keymap.PrevTab):
		if !m.showHelp {
			m.switchTab(TabID((int(m.activeTab) - 1 + len(m.tabs)) % len(m.tabs)))
		}

	case key.Matches(msg, m.keymap.Window):
		window := m.state.CycleWindow()
		cmds := m.reloadCmds()
		cmds = append(cmds, notifyInfoCmd(fmt.Sprintf("Window: %s", window)))
		return tea.Batch(cmds...)

	case key.Matches(msg, m.keymap.Refresh):
		if m.services != nil {
			return tea.Batch(m.reloadCmds()...)
		}

	case key.Matches(msg, m.keymap.Escape):
		m.showHelp = false
	}

	return nil
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.DataChangedEvent:
		if m.services != nil {
			window := m.state.Window()
			return tea.Batch(
				loadBatchCmd(m.services, window),
				loadTrendCmd(m.services, window),
				loadEventsCmd(m.services),
			)
		}

	case services.BudgetExceededEvent:
		return notifyWarningCmd(fmt.Sprintf(
			"Daily budget exceeded: %s of %s",
			format.CostMicroUSD(e.SpentMicroUSD),
			format.CostMicroUSD(e.BudgetMicroUSD),
		))

	case services.ErrorEvent:
		return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}

	return nil
}

// View draws the navbar, the active tab, and any overlays on top.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View())))
		return b.String()
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		b.WriteString(m.tabs[m.activeTab].View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}

	view := b.String()

	if m.showHelp {
		view = m.overlayCentered(view, m.renderHelp())
	}

	if toasts := m.renderNotifications(); len(toasts) > 0 {
		view = m.overlayToasts(view, toasts)
	}

	return view
}

// spliceLine writes overlay into line starting at visual column x,
// preserving whatever extends past the overlay on the right.
func spliceLine(line, overlay string, x, overlayWidth int) string {
	left := ansi.Truncate(line, x, "")
	right := ansi.TruncateLeft(line, x+overlayWidth, "")

	if pad := x - lipgloss.Width(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}

	return left + overlay + right
}

func (m *Model) overlayCentered(view, overlay string) string {
	lines := strings.Split(view, "\n")
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := lipgloss.Width(overlay)

	x := max(0, (m.width-overlayWidth)/2)
	y := max(0, (m.height-len(overlayLines))/2)

	for i, overlayLine := range overlayLines {
		row := y + i
		if row >= len(lines) {
			break
		}
		lines[row] = spliceLine(lines[row], overlayLine, x, overlayWidth)
	}

	return strings.Join(lines, "\n")
}

func (m *Model) overlayToasts(view string, toasts []string) string {
	stack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	stackWidth := lipgloss.Width(stack)

	lines := strings.Split(view, "\n")
	x := max(0, m.width-stackWidth-2)

	// Toasts start below the navbar.
	const startY = 2

	for i, toastLine := range strings.Split(stack, "\n") {
		row := startY + i
		if row >= len(lines) {
			break
		}
		lines[row] = spliceLine(lines[row], toastLine, x, lipgloss.Width(toastLine))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderNavbar() string {
	var cells []string

	for i, name := range m.tabNames {
		if TabID(i) == m.activeTab {
			cells = append(cells, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			cells = append(cells, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}

	cells = append(cells, m.styles.Subtle.Render(fmt.Sprintf("  [w] %s", m.state.Window())))

	return m.styles.TabBar.Width(m.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, cells...),
	)
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	toasts := make([]string, 0, len(notifications))
	for _, n := range notifications {
		style, prefix := m.notificationChrome(n.Type)
		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) notificationChrome(t NotificationType) (lipgloss.Style, string) {
	switch t {
	case NotificationSuccess:
		return m.styles.NotificationSuccess, "[OK]"
	case NotificationError:
		return m.styles.NotificationError, "[ERR]"
	case NotificationWarning:
		return m.styles.NotificationWarning, "[WARN]"
	case NotificationLoading:
		return m.styles.NotificationInfo, m.spinner.View()
	default:
		return m.styles.NotificationInfo, "[INFO]"
	}
}

func (m *Model) renderHelp() string {
	lines := []string{
		m.styles.Title.Render("Keyboard Shortcuts"),
		"",
		m.styles.Highlight.Render("Navigation"),
		"  1-3        Switch tabs",
		"  Tab        Next tab",
		"  Shift+Tab  Previous tab",
		"",
		m.styles.Highlight.Render("Actions"),
		"  w          Cycle reporting window",
		"  r          Refresh data",
		"  ?          Toggle help",
		"  q/Ctrl+C   Quit",
		"",
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		if tabHelp := m.tabs[m.activeTab].ShortHelp(); len(tabHelp) > 0 {
			lines = append(lines, m.styles.Highlight.Render(fmt.Sprintf("%s Tab", m.tabNames[m.activeTab])))
			for _, binding := range tabHelp {
				lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
		}
	}

	lines = append(lines, "", m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"Tab %d: %s\n\n%s",
		m.activeTab+1,
		m.tabNames[m.activeTab],
		m.styles.Subtle.Render("This tab is not yet implemented."),
	)
	return m.styles.Content.Render(content)
}
