package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/feed"
	"github.com/xolan/well/internal/record"
	"github.com/xolan/well/internal/service"
	"github.com/xolan/well/internal/tui/ui"
)

// LogModel is the activity feed view.
type LogModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int
	feed   *feed.Feed
	filter string
	now    time.Time
	cursor int
	offset int
	err    error
}

// NewLogModel creates a new Log view model
func NewLogModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) LogModel {
	return LogModel{
		services: services,
		styles:   styles,
		keys:     keys,
		filter:   feed.All,
	}
}

// feedLoadedMsg carries a fresh feed snapshot.
type feedLoadedMsg struct {
	feed *feed.Feed
	now  time.Time
	err  error
}

// Init implements tea.Model
func (m LogModel) Init() tea.Cmd {
	return m.loadFeed()
}

// Update implements tea.Model
func (m LogModel) Update(msg tea.Msg) (LogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.keepCursorVisible()
			}
		case key.Matches(msg, m.keys.Down):
			if m.feed != nil && m.cursor < len(m.feed.Visible())-1 {
				m.cursor++
				m.keepCursorVisible()
			}
		case key.Matches(msg, m.keys.Filter):
			m.cycleFilter()
		case key.Matches(msg, m.keys.LoadMore):
			if m.feed != nil && m.feed.HasMore() {
				m.feed.LoadMore()
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadFeed()
		}
		return m, nil

	case feedLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.feed = msg.feed
			m.now = msg.now
			m.cursor, m.offset = 0, 0
		}

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}

	return m, nil
}

// cycleFilter advances to the next filter in feed.Filters order.
func (m *LogModel) cycleFilter() {
	filters := feed.Filters()
	next := filters[0]
	for i, f := range filters {
		if f == m.filter {
			next = filters[(i+1)%len(filters)]
			break
		}
	}
	m.filter = next
	if m.feed != nil {
		// Every value from Filters is accepted.
		_ = m.feed.SetFilter(next)
	}
	m.cursor, m.offset = 0, 0
}

// visibleRows is how many feed rows fit in the view.
func (m LogModel) visibleRows() int {
	if m.height <= 0 {
		return feed.DefaultReveal
	}
	return max(3, m.height-8)
}

func (m *LogModel) keepCursorVisible() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View implements tea.Model
func (m LogModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Activity Log"))
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}
	if m.feed == nil {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.feed.Total() == 0 {
		if m.filter == feed.All {
			b.WriteString("No activity logged yet")
		} else {
			b.WriteString(fmt.Sprintf("No %s activity logged yet", m.filter))
		}
		return b.String()
	}

	visible := m.feed.Visible()
	end := min(len(visible), m.offset+m.visibleRows())
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderEvent(visible[i], i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(divider(m.width))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Showing %d of %d %s", len(visible), m.feed.Total(), cli.Pluralize("event", m.feed.Total())))
	if m.feed.HasMore() {
		b.WriteString(m.styles.HelpDesc.Render("  (m to load more)"))
	}

	return b.String()
}

func (m LogModel) renderFilterBar() string {
	var parts []string
	for _, f := range feed.Filters() {
		if f == m.filter {
			parts = append(parts, m.styles.TabActive.UnsetPadding().Render(f))
		} else {
			parts = append(parts, m.styles.TabInactive.UnsetPadding().Render(f))
		}
	}
	return strings.Join(parts, "  ")
}

func (m LogModel) renderEvent(e record.LogEvent, selected bool) string {
	desc := e.Description
	if m.width > 0 {
		desc = truncate(desc, max(20, m.width-40))
	}

	line := m.styles.EventType.Render("["+string(e.Type)+"]") +
		m.styles.EventTime.Render(cli.FormatEventTime(e.Timestamp, m.now)) +
		m.styles.EventDesc.Render(desc)

	if selected {
		return m.styles.ItemSelected.Render(line)
	}
	return m.styles.ItemNormal.Render(line)
}

// SetSize sets the view dimensions
func (m *LogModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m LogModel) loadFeed() tea.Cmd {
	return func() tea.Msg {
		f, err := m.services.Log.Feed(m.filter)
		return feedLoadedMsg{feed: f, now: m.services.Tracker.Now(), err: err}
	}
}
