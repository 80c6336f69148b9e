package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/service"
	"github.com/xolan/well/internal/stats"
	"github.com/xolan/well/internal/timeutil"
	"github.com/xolan/well/internal/tui/ui"
)

// chartMetric is one series that can be charted.
type chartMetric struct {
	name   string
	value  func(stats.Point) float64
	format func(float64) string
}

var chartMetrics = []chartMetric{
	{"Water", func(p stats.Point) float64 { return float64(p.Water) }, func(v float64) string { return cli.FormatNumber(v) + " cups" }},
	{"Sleep", func(p stats.Point) float64 { return p.Sleep }, func(v float64) string { return cli.FormatNumber(v) + " h" }},
	{"Exercise", func(p stats.Point) float64 { return float64(p.ExerciseTotal) }, func(v float64) string { return cli.FormatDuration(int(v)) }},
	{"Meditation", func(p stats.Point) float64 { return float64(p.Meditation) }, func(v float64) string { return cli.FormatDuration(int(v)) }},
}

// AnalyticsModel charts one metric over the last 7, 30 or 365 days.
type AnalyticsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int
	window stats.Window
	metric int
	result *service.SeriesResult
	err    error
}

// NewAnalyticsModel creates a new Analytics view model
func NewAnalyticsModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) AnalyticsModel {
	return AnalyticsModel{
		services: services,
		styles:   styles,
		keys:     keys,
		window:   stats.Week,
	}
}

// seriesLoadedMsg carries the series for window.
type seriesLoadedMsg struct {
	window stats.Window
	result *service.SeriesResult
	err    error
}

// Init implements tea.Model
func (m AnalyticsModel) Init() tea.Cmd {
	return m.loadSeries()
}

// Update implements tea.Model
func (m AnalyticsModel) Update(msg tea.Msg) (AnalyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Week):
			m.window = stats.Week
			return m, m.loadSeries()
		case key.Matches(msg, m.keys.Month):
			m.window = stats.Month
			return m, m.loadSeries()
		case key.Matches(msg, m.keys.Year):
			m.window = stats.Year
			return m, m.loadSeries()
		case key.Matches(msg, m.keys.Up):
			m.metric = (m.metric - 1 + len(chartMetrics)) % len(chartMetrics)
		case key.Matches(msg, m.keys.Down):
			m.metric = (m.metric + 1) % len(chartMetrics)
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadSeries()
		}

	case seriesLoadedMsg:
		// A slow load for a window the user already left is dropped.
		if msg.window != m.window {
			return m, nil
		}
		m.err = msg.err
		m.result = msg.result

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}

	return m, nil
}

// View implements tea.Model
func (m AnalyticsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render(fmt.Sprintf("Analytics: last %d days", int(m.window))))
	b.WriteString("\n")
	b.WriteString(m.renderMetricBar())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}
	if m.result == nil || m.result.Window != m.window {
		b.WriteString("Loading...")
		return b.String()
	}

	b.WriteString(m.styles.HelpDesc.Render(cli.FormatDateRangeForDisplay(m.result.Start, m.result.End)))
	b.WriteString("\n\n")
	b.WriteString(m.renderChart())
	b.WriteString("\n")
	b.WriteString(m.renderSummary())

	return b.String()
}

func (m AnalyticsModel) renderMetricBar() string {
	var parts []string
	for i, cm := range chartMetrics {
		if i == m.metric {
			parts = append(parts, m.styles.TabActive.UnsetPadding().Render(cm.name))
		} else {
			parts = append(parts, m.styles.TabInactive.UnsetPadding().Render(cm.name))
		}
	}
	return strings.Join(parts, "  ")
}

// chartRows is how many bars fit in the view.
func (m AnalyticsModel) chartRows() int {
	if m.height <= 0 {
		return 31
	}
	return max(7, m.height-16)
}

// renderChart draws one bar per bucket of points. Buckets hold a single day
// unless the window has more days than rows fit, in which case consecutive
// days are averaged.
func (m AnalyticsModel) renderChart() string {
	cm := chartMetrics[m.metric]
	points := m.result.Points
	if len(points) == 0 {
		return ""
	}

	size := (len(points) + m.chartRows() - 1) / m.chartRows()
	type bucket struct {
		label string
		value float64
	}
	var buckets []bucket
	for start := 0; start < len(points); start += size {
		chunk := points[start:min(start+size, len(points))]
		buckets = append(buckets, bucket{
			label: bucketLabel(chunk, size > 1),
			value: average(chunk, cm.value),
		})
	}

	peak := stats.Peak(points, cm.value)
	if size > 1 {
		peak = 0
		for _, bk := range buckets {
			peak = max(peak, bk.value)
		}
	}

	var b strings.Builder
	for _, bk := range buckets {
		percent := 0.0
		if peak > 0 {
			percent = bk.value / peak * 100
		}
		b.WriteString(m.styles.BarLabel.Render(bk.label))
		b.WriteString(" ")
		b.WriteString(renderBar(m.styles, percent, barWidth))
		b.WriteString(" ")
		b.WriteString(cm.format(bk.value))
		b.WriteString("\n")
	}
	if size > 1 {
		b.WriteString(m.styles.HelpDesc.Render(fmt.Sprintf("Each bar averages %d days", size)))
		b.WriteString("\n")
	}
	return b.String()
}

// bucketLabel prefers the series label of the first point. Averaged buckets
// and unlabelled points fall back to the short date.
func bucketLabel(chunk []stats.Point, averaged bool) string {
	first := chunk[0]
	if first.Label != "" && !averaged {
		return first.Label
	}
	d, err := timeutil.ParseDateKey(first.Date, time.UTC)
	if err != nil {
		return first.Date
	}
	return d.Format("Jan 2")
}

func average(points []stats.Point, f func(stats.Point) float64) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range points {
		sum += f(p)
	}
	return sum / float64(len(points))
}

func (m AnalyticsModel) renderSummary() string {
	s := m.result.Summary
	goals := m.services.Tracker.Goals()

	var b strings.Builder
	b.WriteString(renderStatLine(m.styles, "Days with data:", fmt.Sprintf("%d of %d", s.DaysWithData, s.Days)))
	b.WriteString(renderStatLine(m.styles, "Average water:", fmt.Sprintf("%.1f cups/day (goal %s)", s.AvgWater, cli.FormatNumber(goals.Water))))
	b.WriteString(renderStatLine(m.styles, "Average sleep:", fmt.Sprintf("%.1f h/night (goal %s)", s.AvgSleep, cli.FormatNumber(goals.Sleep))))
	quality := "-"
	if s.AvgSleepQuality > 0 {
		quality = fmt.Sprintf("%.1f/10", s.AvgSleepQuality)
	}
	b.WriteString(renderStatLine(m.styles, "Average sleep score:", quality))
	b.WriteString(renderStatLine(m.styles, "Total exercise:", cli.FormatDuration(s.TotalExercise)))
	b.WriteString(renderStatLine(m.styles, "Total meditation:", cli.FormatDuration(s.TotalMeditation)))
	return b.String()
}

// SetSize sets the view dimensions
func (m *AnalyticsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m AnalyticsModel) loadSeries() tea.Cmd {
	window := m.window
	return func() tea.Msg {
		result, err := m.services.Analytics.Series(window)
		return seriesLoadedMsg{window: window, result: result, err: err}
	}
}
