package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/well/internal/ai"
	"github.com/xolan/well/internal/config"
	"github.com/xolan/well/internal/service"
	"github.com/xolan/well/internal/tui/ui"
)

// SummaryModel requests and shows the AI summary of today.
//
// The request runs as a tea.Cmd. loading is set before the command is
// returned and cleared once the orchestrator leaves Requesting.
type SummaryModel struct {
	ctx        context.Context
	services   *service.Services
	credential func() string
	styles     ui.Styles
	keys       ui.KeyMap

	width   int
	height  int
	spinner spinner.Model
	loading bool
	snap    ai.Snapshot
}

// NewSummaryModel creates a new Summary view model. credential is read on
// every request so a key set while the TUI runs is picked up.
func NewSummaryModel(ctx context.Context, services *service.Services, credential func() string, styles ui.Styles, keys ui.KeyMap) SummaryModel {
	if credential == nil {
		credential = config.Credential
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return SummaryModel{
		ctx:        ctx,
		services:   services,
		credential: credential,
		styles:     styles,
		keys:       keys,
		spinner:    sp,
		snap:       services.Summary.Orchestrator().Snapshot(),
	}
}

// summaryResultMsg carries the outcome of the request started with ticket.
type summaryResultMsg struct {
	ticket ai.Ticket
	text   string
	err    error
}

// Init implements tea.Model. The spinner keeps ticking across tab switches,
// so there is nothing to restart.
func (m SummaryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m SummaryModel) Update(msg tea.Msg) (SummaryModel, tea.Cmd) {
	orch := m.services.Summary.Orchestrator()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Generate):
			return m.start()
		case key.Matches(msg, m.keys.Clear):
			orch.Reset()
			m.loading = false
			m.snap = orch.Snapshot()
		}
		return m, nil

	case summaryResultMsg:
		// Stale tickets are discarded by the orchestrator.
		orch.Resolve(msg.ticket, msg.text, msg.err)
		m.snap = orch.Snapshot()
		m.loading = m.snap.State == ai.Requesting
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.spinner.Style = msg.Styles.Spinner
	}

	return m, nil
}

// start begins a request. A configuration failure is shown at once and no
// command is dispatched.
func (m SummaryModel) start() (SummaryModel, tea.Cmd) {
	orch := m.services.Summary.Orchestrator()
	credential := m.credential()

	ticket, err := orch.Start(credential)
	m.snap = orch.Snapshot()
	if err != nil {
		// In flight already, or missing credential.
		return m, nil
	}

	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.fetch(ticket, credential))
}

func (m SummaryModel) fetch(ticket ai.Ticket, credential string) tea.Cmd {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		in, err := m.services.Summary.Input()
		if err != nil {
			return summaryResultMsg{ticket: ticket, err: err}
		}
		text, err := m.services.Summary.Orchestrator().Fetch(ctx, credential, in)
		return summaryResultMsg{ticket: ticket, text: text, err: err}
	}
}

// View implements tea.Model
func (m SummaryModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Summary of Today"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Requesting summary...")

	case m.snap.State.Terminal():
		b.WriteString(m.renderOutcome())

	default:
		b.WriteString("Ask the AI service for a short summary of today's progress.\n\n")
		b.WriteString(m.styles.HelpDesc.Render("Press g or Enter to generate"))
	}

	return b.String()
}

// renderOutcome shows the answer or the classified failure of a finished
// request.
func (m SummaryModel) renderOutcome() string {
	if m.snap.State == ai.Failed {
		e := m.snap.Err
		if e == nil {
			e = &ai.Error{Kind: ai.KindNetwork, Message: ai.MsgGenerateFailed}
		}
		return m.styles.Error.Render("Error: "+failureText(e)) + "\n" +
			m.styles.HelpDesc.Render(failureHint(e))
	}

	width := 72
	if m.width > 0 {
		width = min(width, max(20, m.width-6))
	}
	return m.styles.SummaryText.Width(width).Render(m.snap.Text) + "\n\n" +
		m.styles.HelpDesc.Render("Press g to ask again, c to clear")
}

func failureText(e *ai.Error) string {
	if e.Kind == ai.KindNetwork && e.StatusCode > 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func failureHint(e *ai.Error) string {
	switch e.Kind {
	case ai.KindConfiguration:
		return fmt.Sprintf("Set %s or pass --api-key, then press g", config.APIKeyEnv)
	case ai.KindContent:
		return "The service returned no text. Press g to try again"
	}
	return "Press g to try again"
}

// SetSize sets the view dimensions
func (m *SummaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
