// Package views holds the bubbletea models behind each TUI tab.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/progress"
	"github.com/xolan/well/internal/tui/ui"
)

// barWidth is the width in cells of goal and chart bars.
const barWidth = 24

// renderBar draws a horizontal bar filled to percent (0-100).
func renderBar(styles ui.Styles, percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))

	return styles.BarFilled.Render(strings.Repeat("█", filled)) +
		styles.BarEmpty.Render(strings.Repeat("░", width-filled))
}

// renderMetric renders one goal row: name, bar, consumed/goal and percent.
func renderMetric(styles ui.Styles, m progress.Metric) string {
	amount := fmt.Sprintf("%s/%s %s", cli.FormatNumber(m.Consumed), cli.FormatNumber(m.Goal), m.Unit)
	line := fmt.Sprintf("%-11s %s %-14s %3.0f%%",
		cli.MetricTitle(m.Name), renderBar(styles, m.Percent, barWidth), amount, m.Percent)
	if m.Met {
		line += " " + styles.GoalMet.Render("✓")
	}
	return line
}

func renderStatLine(styles ui.Styles, label, value string) string {
	return styles.StatLabel.Render(label) + " " + styles.StatValue.Render(value) + "\n"
}

// divider is a rule no wider than the view.
func divider(width int) string {
	if width <= 0 {
		width = 50
	}
	return strings.Repeat("─", min(50, width))
}

// truncate shortens s to at most width cells.
func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + "…"
}
