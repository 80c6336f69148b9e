// Package cli provides the CLI presentation layer for the well application.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xolan/well/internal/progress"
	"github.com/xolan/well/internal/record"
	"github.com/xolan/well/internal/stats"
	"github.com/xolan/well/internal/storage"
	"github.com/xolan/well/internal/timeutil"
)

// BarWidth is the number of cells in a goal bar.
const BarWidth = 20

// FormatDuration formats minutes as a human-readable string
// Examples: "30m", "2h", "1h 30m"
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatNumber prints whole numbers without a fraction and everything else
// with one decimal.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Bar renders percent (0-100) as a fixed-width bar of width cells.
func Bar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// MetricTitle capitalises a metric name for display.
func MetricTitle(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// FormatMetric formats one progress row.
// Example: "Water       4/8 cups       [##########----------]  50%"
func FormatMetric(m progress.Metric) string {
	amount := fmt.Sprintf("%s/%s %s", FormatNumber(m.Consumed), FormatNumber(m.Goal), m.Unit)
	line := fmt.Sprintf("%-11s %-14s %s %3.0f%%", MetricTitle(m.Name), amount, Bar(m.Percent, BarWidth), m.Percent)
	if m.Met {
		line += "  done"
	}
	return line
}

// FormatDate formats a YYYY-MM-DD key for display, e.g. "Sun, Mar 10, 2024".
// Keys that do not parse are returned unchanged.
func FormatDate(key string) string {
	t, err := timeutil.ParseDateKey(key, time.UTC)
	if err != nil {
		return key
	}
	return t.Format("Mon, Jan 2, 2006")
}

// FormatDateRangeForDisplay formats a range of date keys for human-readable display.
func FormatDateRangeForDisplay(startKey, endKey string) string {
	start, err1 := timeutil.ParseDateKey(startKey, time.UTC)
	end, err2 := timeutil.ParseDateKey(endKey, time.UTC)
	if err1 != nil || err2 != nil {
		return startKey + " - " + endKey
	}
	if startKey == endKey {
		return start.Format("Mon, Jan 2, 2006")
	}
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}

// FormatEventTime formats when an event happened relative to now.
// Examples: "today at 3:04 PM", "Mon Jan 2 at 9:15 AM"
func FormatEventTime(at, now time.Time) string {
	at = at.In(now.Location())
	clock := at.Format("3:04 PM")

	if timeutil.IsInRange(at, timeutil.StartOfDay(now), timeutil.EndOfDay(now)) {
		return fmt.Sprintf("today at %s", clock)
	}
	return fmt.Sprintf("%s at %s", at.Format("Mon Jan 2"), clock)
}

// FormatEvent formats a feed row: "[water] today at 3:04 PM  Drank a cup ...".
func FormatEvent(e record.LogEvent, now time.Time) string {
	return fmt.Sprintf("%-12s %-22s %s", "["+string(e.Type)+"]", FormatEventTime(e.Timestamp, now), e.Description)
}

// FormatPoint formats one series row.
func FormatPoint(p stats.Point) string {
	label := p.Label
	if label == "" {
		label = "-"
	}
	sleep := "-"
	if p.Sleep > 0 {
		sleep = FormatNumber(p.Sleep) + "h"
		if p.SleepQuality > 0 {
			sleep += fmt.Sprintf(" (q%d)", p.SleepQuality)
		}
	}
	return fmt.Sprintf("%s  %-6s  %5d  %-10s  %8s  %8s",
		p.Date, label, p.Water, sleep, FormatDuration(p.ExerciseTotal), FormatDuration(p.Meditation))
}

// SeriesHeader is the column header matching FormatPoint.
func SeriesHeader() string {
	return fmt.Sprintf("%-10s  %-6s  %5s  %-10s  %8s  %8s", "Date", "Day", "Water", "Sleep", "Exercise", "Meditate")
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning storage.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
