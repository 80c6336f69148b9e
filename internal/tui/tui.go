// Package tui provides the Terminal User Interface for the well application.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/well/internal/logging"
	"github.com/xolan/well/internal/service"
	"github.com/xolan/well/internal/tui/ui"
	"github.com/xolan/well/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabToday Tab = iota
	TabLog
	TabAnalytics
	TabSummary
	TabConfig
)

var tabNames = []string{"Today", "Log", "Analytics", "Summary", "Config"}

// Model is the root TUI model
type Model struct {
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	todayView     views.TodayModel
	logView       views.LogModel
	analyticsView views.AnalyticsModel
	summaryView   views.SummaryModel
	configView    views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model. credential supplies the AI key on demand.
func New(services *service.Services, credential func() string) Model {
	return newModel(context.Background(), services, credential)
}

func newModel(ctx context.Context, services *service.Services, credential func() string) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		activeTab:     TabToday,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		todayView:     views.NewTodayModel(services, styles, keys),
		logView:       views.NewLogModel(services, styles, keys),
		analyticsView: views.NewAnalyticsModel(services, styles, keys),
		summaryView:   views.NewSummaryModel(ctx, services, credential, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, credential, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.todayView.Init(),
		m.configView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// An open form or selector owns every key except its own.
		capturing := m.isCapturingKeys()

		switch {
		case key.Matches(msg, m.keys.Quit) && !capturing:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturing:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !capturing:
			return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))

		case key.Matches(msg, m.keys.PrevTab) && !capturing:
			return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))

		case key.Matches(msg, m.keys.Tab1) && !capturing:
			return m.switchTab(TabToday)
		case key.Matches(msg, m.keys.Tab2) && !capturing:
			return m.switchTab(TabLog)
		case key.Matches(msg, m.keys.Tab3) && !capturing:
			return m.switchTab(TabAnalytics)
		case key.Matches(msg, m.keys.Tab4) && !capturing:
			return m.switchTab(TabSummary)
		case key.Matches(msg, m.keys.Tab5) && !capturing:
			return m.switchTab(TabConfig)
		}

		// Keys go to the active view only.
		return m.updateActive(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // tabs and status bar
		m.todayView.SetSize(m.width, contentHeight)
		m.logView.SetSize(m.width, contentHeight)
		m.analyticsView.SetSize(m.width, contentHeight)
		m.summaryView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		var cmd tea.Cmd
		m, cmd = m.broadcast(ui.ThemeChangedMsg{ThemeName: newTheme, Styles: m.styles})
		return m, tea.Batch(cmd, m.saveTheme(newTheme))
	}

	// Results, ticks and blinks reach every view so an answer that lands
	// after a tab switch is not lost.
	return m.broadcast(msg)
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	return m, m.initCurrentView()
}

// updateActive forwards msg to the active view.
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabToday:
		m.todayView, cmd = m.todayView.Update(msg)
	case TabLog:
		m.logView, cmd = m.logView.Update(msg)
	case TabAnalytics:
		m.analyticsView, cmd = m.analyticsView.Update(msg)
	case TabSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}
	return m, cmd
}

// broadcast forwards msg to every view.
func (m Model) broadcast(msg tea.Msg) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 5)
	m.todayView, cmds[0] = m.todayView.Update(msg)
	m.logView, cmds[1] = m.logView.Update(msg)
	m.analyticsView, cmds[2] = m.analyticsView.Update(msg)
	m.summaryView, cmds[3] = m.summaryView.Update(msg)
	m.configView, cmds[4] = m.configView.Update(msg)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabToday:
		b.WriteString(m.todayView.View())
	case TabLog:
		b.WriteString(m.logView.View())
	case TabAnalytics:
		b.WriteString(m.analyticsView.View())
	case TabSummary:
		b.WriteString(m.summaryView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isCapturingKeys() {
		if m.activeTab == TabToday {
			parts = append(parts, m.renderKeyHelp("Tab", "switch field"))
			parts = append(parts, m.renderKeyHelp("Enter", "save"))
		} else {
			parts = append(parts, m.renderKeyHelp("↑/↓", "choose"))
			parts = append(parts, m.renderKeyHelp("Enter", "select"))
		}
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabToday:
			parts = append(parts, m.renderKeyHelp("w", "+1 cup"))
			parts = append(parts, m.renderKeyHelp("s", "sleep"))
			parts = append(parts, m.renderKeyHelp("e", "exercise"))
			parts = append(parts, m.renderKeyHelp("m", "meditate"))
		case TabLog:
			parts = append(parts, m.renderKeyHelp("f", "filter"))
			parts = append(parts, m.renderKeyHelp("m", "more"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabAnalytics:
			parts = append(parts, m.renderKeyHelp("w/m/y", "7/30/365 days"))
			parts = append(parts, m.renderKeyHelp("↑/↓", "metric"))
		case TabSummary:
			parts = append(parts, m.renderKeyHelp("g", "generate"))
			parts = append(parts, m.renderKeyHelp("c", "clear"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-5", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")
	if padding := m.width - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isCapturingKeys reports whether the active view has a form or selector
// open. Global keys are disabled while it does.
func (m Model) isCapturingKeys() bool {
	switch m.activeTab {
	case TabToday:
		return m.todayView.IsInputMode()
	case TabConfig:
		return m.configView.IsInputMode()
	}
	return false
}

// initCurrentView reloads the view being switched to
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabToday:
		return m.todayView.Init()
	case TabLog:
		return m.logView.Init()
	case TabAnalytics:
		return m.analyticsView.Init()
	case TabSummary:
		return m.summaryView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveTheme persists themeName and reports the outcome to the views.
func (m Model) saveTheme(themeName string) tea.Cmd {
	return func() tea.Msg {
		return ui.ThemeSavedMsg{ThemeName: themeName, Err: m.services.Config.SetTheme(themeName)}
	}
}

// renderHelpOverlay renders the keyboard reference for the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.DialogTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n")

	help.WriteString(m.styles.HelpKey.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-5    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabToday:
		help.WriteString(m.styles.HelpKey.Render("Today:"))
		help.WriteString("\n")
		help.WriteString("  w          Drink a cup of water\n")
		help.WriteString("  s          Log sleep\n")
		help.WriteString("  e          Log exercise\n")
		help.WriteString("  m          Log meditation\n")
		help.WriteString("  r          Refresh\n")
	case TabLog:
		help.WriteString(m.styles.HelpKey.Render("Log:"))
		help.WriteString("\n")
		help.WriteString("  f          Cycle type filter\n")
		help.WriteString("  m          Load more\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  r          Refresh\n")
	case TabAnalytics:
		help.WriteString(m.styles.HelpKey.Render("Analytics:"))
		help.WriteString("\n")
		help.WriteString("  w/7        Last 7 days\n")
		help.WriteString("  m          Last 30 days\n")
		help.WriteString("  y          Last 365 days\n")
		help.WriteString("  j/k        Change metric\n")
	case TabSummary:
		help.WriteString(m.styles.HelpKey.Render("Summary:"))
		help.WriteString("\n")
		help.WriteString("  g/Enter    Generate summary\n")
		help.WriteString("  c          Clear\n")
	case TabConfig:
		help.WriteString(m.styles.HelpKey.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Enter      Select theme\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.HelpDesc.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application. Leaving the program cancels any summary
// request still in flight.
func Run(services *service.Services, credential func() string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := logging.Component(services.Logger, "tui")
	log.Info("starting tui")

	p := tea.NewProgram(newModel(ctx, services, credential), tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		log.WithError(err).Error("tui exited with error")
	}
	return err
}
