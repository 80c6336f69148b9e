package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/config"
	"github.com/xolan/well/internal/service"
	"github.com/xolan/well/internal/tui/ui"
)

// maxVisibleThemes is the maximum number of themes to show at once
const maxVisibleThemes = 10

// ConfigModel shows the goals and settings and hosts the theme selector.
type ConfigModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	credential    func() string
	styles        ui.Styles
	keys          ui.KeyMap

	width     int
	height    int
	config    config.Config
	path      string
	exists    bool
	loaded    bool
	themeName string
	saveErr   error

	// Theme selector state
	selectingTheme bool
	themes         []string
	themeCursor    int
	themeOffset    int
}

// NewConfigModel creates a new config view model
func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, credential func() string, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	if credential == nil {
		credential = config.Credential
	}
	m := ConfigModel{
		services:      services,
		themeProvider: themeProvider,
		credential:    credential,
		styles:        styles,
		keys:          keys,
		themes:        themeProvider.AvailableThemes(),
		themeName:     themeProvider.CurrentName(),
	}
	m.resetCursor()
	return m
}

// configLoadedMsg is sent when config is loaded
type configLoadedMsg struct {
	config config.Config
	path   string
	exists bool
}

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	return m.loadConfig()
}

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selectingTheme {
			return m.handleThemeSelection(msg)
		}
		if key.Matches(msg, m.keys.Theme) {
			m.selectingTheme = true
			m.resetCursor()
			return m, nil
		}
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.loadConfig()
		}

	case configLoadedMsg:
		m.config = msg.config
		m.path = msg.path
		m.exists = msg.exists
		m.loaded = true

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		m.resetCursor()

	case ui.ThemeSavedMsg:
		m.saveErr = msg.Err
		if msg.Err == nil {
			m.config.Theme = msg.ThemeName
			m.exists = true
		}
	}

	return m, nil
}

// handleThemeSelection handles keys when theme selector is open
func (m ConfigModel) handleThemeSelection(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
			m.updateThemeOffset()
		}

	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
			m.updateThemeOffset()
		}

	case key.Matches(msg, m.keys.Select):
		m.selectingTheme = false
		if len(m.themes) == 0 {
			return m, nil
		}
		return m, requestThemeChange(m.themes[m.themeCursor])

	case key.Matches(msg, m.keys.Back):
		m.selectingTheme = false
		m.resetCursor()
	}

	return m, nil
}

// resetCursor moves the selector cursor back to the active theme.
func (m *ConfigModel) resetCursor() {
	for i, t := range m.themes {
		if t == m.themeName {
			m.themeCursor = i
			break
		}
	}
	m.updateThemeOffset()
}

// updateThemeOffset adjusts scroll offset to keep cursor visible
func (m *ConfigModel) updateThemeOffset() {
	if m.themeCursor < m.themeOffset {
		m.themeOffset = m.themeCursor
	} else if m.themeCursor >= m.themeOffset+maxVisibleThemes {
		m.themeOffset = m.themeCursor - maxVisibleThemes + 1
	}
}

func requestThemeChange(themeName string) tea.Cmd {
	return func() tea.Msg {
		return ui.ThemeChangeRequestMsg{ThemeName: themeName}
	}
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString("Loading...")
		return b.String()
	}

	b.WriteString(m.renderConfigLine("Config file", m.path))
	if m.exists {
		b.WriteString(m.styles.StatLabel.Render("Status:") + " " + m.styles.Success.Render("File exists") + "\n")
	} else {
		b.WriteString(m.styles.StatLabel.Render("Status:") + " " + m.styles.Warning.Render("Using defaults (no config file)") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(divider(m.width))
	b.WriteString("\n\n")

	b.WriteString(m.renderConfigLine("timezone", m.config.Timezone))
	if m.selectingTheme {
		b.WriteString(m.renderThemeSelector())
		return b.String()
	}
	b.WriteString(m.renderConfigLine("theme", m.themeName))
	if m.saveErr != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Could not save theme: %v", m.saveErr)))
		b.WriteString("\n")
	}

	goals := m.config.Goals
	b.WriteString("\n")
	b.WriteString(m.styles.DialogTitle.Render("Goals"))
	b.WriteString("\n")
	b.WriteString(m.renderConfigLine("water", cli.FormatNumber(goals.Water)+" cups"))
	b.WriteString(m.renderConfigLine("sleep", cli.FormatNumber(goals.Sleep)+" hours"))
	b.WriteString(m.renderConfigLine("exercise", cli.FormatNumber(goals.Exercise)+" minutes"))
	b.WriteString(m.renderConfigLine("meditation", cli.FormatNumber(goals.Meditation)+" minutes"))

	b.WriteString("\n")
	b.WriteString(m.styles.DialogTitle.Render("AI"))
	b.WriteString("\n")
	b.WriteString(m.renderConfigLine("model", m.config.AI.Model))
	credential := "not set"
	if m.credential() != "" {
		credential = "set"
	}
	b.WriteString(m.renderConfigLine("api key", fmt.Sprintf("%s (%s)", credential, config.APIKeyEnv)))

	b.WriteString("\n")
	b.WriteString(m.styles.HelpDesc.Render("Press Enter or 't' to change theme. Edit the config file to change goals."))

	return b.String()
}

// renderThemeSelector renders the theme selection list
func (m ConfigModel) renderThemeSelector() string {
	var b strings.Builder

	b.WriteString(m.styles.StatLabel.Render("theme:"))
	b.WriteString(" ")
	b.WriteString(m.styles.StatValue.Render("Select a theme"))
	b.WriteString("\n\n")

	endIdx := min(m.themeOffset+maxVisibleThemes, len(m.themes))

	if m.themeOffset > 0 {
		b.WriteString(m.styles.HelpDesc.Render("  ↑ more themes above"))
		b.WriteString("\n")
	}

	for i := m.themeOffset; i < endIdx; i++ {
		theme := m.themes[i]
		current := ""
		if theme == m.themeName {
			current = m.styles.Success.Render(" (current)")
		}
		if i == m.themeCursor {
			b.WriteString(m.styles.ItemSelected.Render("▸ " + theme))
		} else {
			b.WriteString("  " + m.styles.StatValue.Render(theme))
		}
		b.WriteString(current)
		b.WriteString("\n")
	}

	if endIdx < len(m.themes) {
		b.WriteString(m.styles.HelpDesc.Render("  ↓ more themes below"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.HelpDesc.Render("↑/↓ navigate  Enter select  Esc cancel"))

	return b.String()
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode reports whether the theme selector is open.
func (m ConfigModel) IsInputMode() bool {
	return m.selectingTheme
}

// loadConfig creates a command to load config
func (m ConfigModel) loadConfig() tea.Cmd {
	return func() tea.Msg {
		return configLoadedMsg{
			config: m.services.Config.Get(),
			path:   m.services.Config.GetPath(),
			exists: m.services.Config.Exists(),
		}
	}
}

func (m ConfigModel) renderConfigLine(key, value string) string {
	return m.styles.StatLabel.Render(key+":") + " " + m.styles.StatValue.Render(value) + "\n"
}
