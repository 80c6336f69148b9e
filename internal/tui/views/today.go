package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/record"
	"github.com/xolan/well/internal/service"
	"github.com/xolan/well/internal/tui/ui"
)

// formKind selects which metric form is open on the Today view.
type formKind int

const (
	formNone formKind = iota
	formSleep
	formExercise
	formMeditation
)

var formTitles = map[formKind]string{
	formSleep:      "Log Sleep",
	formExercise:   "Log Exercise",
	formMeditation: "Log Meditation",
}

type formField struct {
	label string
	input textinput.Model
}

// TodayModel shows today's goal progress and the forms that change it.
type TodayModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int
	view   *service.DayView
	err    error

	// Form state
	form    formKind
	fields  []formField
	focus   int
	formErr string

	// Outcome of the last mutation
	status    string
	statusErr bool
}

// NewTodayModel creates a new Today view model
func NewTodayModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) TodayModel {
	return TodayModel{
		services: services,
		styles:   styles,
		keys:     keys,
	}
}

// todayLoadedMsg carries a fresh dashboard.
type todayLoadedMsg struct {
	view *service.DayView
	err  error
}

// mutationDoneMsg carries the outcome of a tracker mutation and the
// dashboard as it stands afterwards.
type mutationDoneMsg struct {
	event record.LogEvent
	err   error
	view  *service.DayView
}

// Init implements tea.Model
func (m TodayModel) Init() tea.Cmd {
	return m.loadToday()
}

// Update implements tea.Model
func (m TodayModel) Update(msg tea.Msg) (TodayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.form != formNone {
			return m.handleForm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Water):
			return m, m.mutate(func() (record.LogEvent, error) {
				return m.services.Tracker.AddWater()
			})
		case key.Matches(msg, m.keys.Sleep):
			return m.openForm(formSleep)
		case key.Matches(msg, m.keys.Exercise):
			return m.openForm(formExercise)
		case key.Matches(msg, m.keys.Meditate):
			return m.openForm(formMeditation)
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadToday()
		}

	case todayLoadedMsg:
		m.err = msg.err
		if msg.view != nil {
			m.view = msg.view
		}

	case mutationDoneMsg:
		if msg.view != nil {
			m.view = msg.view
		}
		if msg.err != nil {
			text, isValidation := mutationMessage(msg.err)
			if m.form != formNone && isValidation {
				// Keep the form open so the value can be corrected.
				m.formErr = text
				return m, nil
			}
			m.status, m.statusErr = text, true
			return m, nil
		}
		m.closeForm()
		m.status, m.statusErr = "Logged: "+msg.event.Description, false

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.form != formNone {
		var cmd tea.Cmd
		m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// openForm shows the input fields for kind and focuses the first one.
func (m TodayModel) openForm(kind formKind) (TodayModel, tea.Cmd) {
	switch kind {
	case formSleep:
		m.fields = []formField{
			newField("Hours slept:", "e.g. 7.5", 5),
			newField("Quality (1-10):", "e.g. 8", 2),
		}
	case formExercise:
		m.fields = []formField{
			newField("Activity:", "e.g. running", 40),
			newField("Minutes:", "e.g. 30", 4),
		}
	case formMeditation:
		m.fields = []formField{
			newField("Minutes:", "e.g. 10", 4),
		}
	}
	m.form = kind
	m.focus = 0
	m.formErr = ""
	m.status = ""
	m.fields[0].input.Focus()
	return m, textinput.Blink
}

func newField(label, placeholder string, limit int) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = max(limit, 12)
	return formField{label: label, input: ti}
}

func (m *TodayModel) closeForm() {
	m.form = formNone
	m.fields = nil
	m.focus = 0
	m.formErr = ""
}

// handleForm handles key events while a form is open
func (m TodayModel) handleForm(msg tea.KeyMsg) (TodayModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeForm()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.submit()

	case msg.String() == "tab" || msg.String() == "shift+tab":
		if len(m.fields) > 1 {
			m.fields[m.focus].input.Blur()
			step := 1
			if msg.String() == "shift+tab" {
				step = len(m.fields) - 1
			}
			m.focus = (m.focus + step) % len(m.fields)
			m.fields[m.focus].input.Focus()
		}
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

// submit parses the form and dispatches the mutation. Parse errors are shown
// inline without touching the tracker.
func (m TodayModel) submit() (TodayModel, tea.Cmd) {
	value := func(i int) string { return strings.TrimSpace(m.fields[i].input.Value()) }
	tracker := m.services.Tracker

	switch m.form {
	case formSleep:
		hours, err := strconv.ParseFloat(value(0), 64)
		if err != nil {
			m.formErr = fmt.Sprintf("Invalid hours '%s': enter a number, e.g. 7.5", value(0))
			return m, nil
		}
		quality, err := strconv.Atoi(value(1))
		if err != nil {
			m.formErr = fmt.Sprintf("Invalid quality '%s': enter a whole number from 1 to 10", value(1))
			return m, nil
		}
		return m, m.mutate(func() (record.LogEvent, error) {
			return tracker.SetSleep(hours, quality)
		})

	case formExercise:
		activity := value(0)
		minutes, err := strconv.Atoi(value(1))
		if err != nil {
			m.formErr = fmt.Sprintf("Invalid minutes '%s': enter a whole number, e.g. 30", value(1))
			return m, nil
		}
		return m, m.mutate(func() (record.LogEvent, error) {
			return tracker.AddExercise(activity, minutes)
		})

	case formMeditation:
		minutes, err := strconv.Atoi(value(0))
		if err != nil {
			m.formErr = fmt.Sprintf("Invalid minutes '%s': enter a whole number, e.g. 10", value(0))
			return m, nil
		}
		return m, m.mutate(func() (record.LogEvent, error) {
			return tracker.AddMeditation(minutes)
		})
	}
	return m, nil
}

// mutationMessage turns a mutation error into display text and reports
// whether it was a validation failure.
func mutationMessage(err error) (string, bool) {
	if errors.Is(err, service.ErrWaterGoalReached) {
		return "Daily water goal already reached", true
	}
	if errors.Is(err, service.ErrInvalidInput) {
		msg := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
		return strings.ToUpper(msg[:1]) + msg[1:], true
	}
	return fmt.Sprintf("Failed to save: %v", err), false
}

// View implements tea.Model
func (m TodayModel) View() string {
	var b strings.Builder

	if m.view == nil {
		b.WriteString(m.styles.ViewTitle.Render("Today"))
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString("Loading...")
		}
		return b.String()
	}

	b.WriteString(m.styles.ViewTitle.Render("Today, " + cli.FormatDate(m.view.Date)))
	b.WriteString("\n\n")

	for _, metric := range m.view.Metrics {
		b.WriteString(renderMetric(m.styles, metric))
		b.WriteString("\n")
	}
	b.WriteString(divider(m.width))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Goals met: %d of %d\n", m.view.MetCount, len(m.view.Metrics)))

	rec := m.view.Record
	if len(rec.ExerciseEntries) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Exercise:"))
		b.WriteString("\n")
		for _, e := range rec.ExerciseEntries {
			b.WriteString(fmt.Sprintf("  %-20s %s\n", truncate(e.Type, 20), cli.FormatDuration(e.DurationMinutes)))
		}
	}
	if rec.Sleep != nil {
		b.WriteString("\n")
		b.WriteString(renderStatLine(m.styles, "Sleep quality:", fmt.Sprintf("%d/10", rec.Sleep.Quality)))
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(m.styles.Warning.Render(m.status))
		} else {
			b.WriteString(m.styles.Success.Render(m.status))
		}
		b.WriteString("\n")
	}

	if m.form != formNone {
		b.WriteString("\n")
		b.WriteString(m.renderForm())
	}

	return b.String()
}

func (m TodayModel) renderForm() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render(formTitles[m.form]))
	b.WriteString("\n")

	for i, f := range m.fields {
		label := f.label
		if i == m.focus {
			label = "▸ " + label
		}
		b.WriteString(m.styles.StatLabel.Render(label))
		b.WriteString("\n")
		b.WriteString(f.input.View())
		b.WriteString("\n")
	}

	if m.formErr != "" {
		b.WriteString(m.styles.Error.Render(m.formErr))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.HelpDesc.Render("Tab to switch fields, Enter to save, Esc to cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *TodayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode reports whether a form is capturing keys.
func (m TodayModel) IsInputMode() bool {
	return m.form != formNone
}

func (m TodayModel) loadToday() tea.Cmd {
	return func() tea.Msg {
		view, err := m.services.Tracker.Dashboard()
		return todayLoadedMsg{view: view, err: err}
	}
}

// mutate runs apply and reloads the dashboard in one command.
func (m TodayModel) mutate(apply func() (record.LogEvent, error)) tea.Cmd {
	return func() tea.Msg {
		event, err := apply()
		view, loadErr := m.services.Tracker.Dashboard()
		if loadErr != nil {
			view = nil
		}
		return mutationDoneMsg{event: event, err: err, view: view}
	}
}
