// Package stats builds daily time series from records and reduces them to
// window-level statistics.
package stats

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xolan/well/internal/record"
	"github.com/xolan/well/internal/timeutil"
)

// Window is the number of trailing days covered by a series.
type Window int

const (
	Week  Window = 7
	Month Window = 30
	Year  Window = 365
)

// Windows lists the supported windows in ascending order.
var Windows = []Window{Week, Month, Year}

// ParseWindow accepts "7", "30", "365" and the aliases week, month, year.
func ParseWindow(s string) (Window, error) {
	switch s {
	case "week", "w":
		return Week, nil
	case "month", "m":
		return Month, nil
	case "year", "y":
		return Year, nil
	}
	n, err := strconv.Atoi(s)
	if err == nil {
		for _, w := range Windows {
			if int(w) == n {
				return w, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid window %q (use 7, 30 or 365)", s)
}

// Valid reports whether w is one of the supported windows.
func (w Window) Valid() bool {
	return w == Week || w == Month || w == Year
}

// String returns a human label such as "last 7 days".
func (w Window) String() string {
	return fmt.Sprintf("last %d days", int(w))
}

// Point is one day of a series. Days without a record are all zero.
type Point struct {
	Date          string
	Label         string
	Water         int
	Sleep         float64
	ExerciseTotal int
	Meditation    int
	SleepQuality  int
}

// HasData reports whether anything was logged on the point's day.
func (p Point) HasData() bool {
	return p.Water > 0 || p.Sleep > 0 || p.ExerciseTotal > 0 || p.Meditation > 0
}

// BuildSeries returns exactly int(w) points ending at today's calendar day,
// oldest first. It reads records and never modifies them.
func BuildSeries(records map[string]record.DailyRecord, today time.Time, w Window) []Point {
	keys := timeutil.WindowKeys(today, int(w))
	points := make([]Point, len(keys))

	for i, key := range keys {
		day := timeutil.DaysBack(today, len(keys)-1-i)
		p := Point{
			Date:  key,
			Label: label(day, w),
		}
		if r, ok := records[key]; ok {
			p.Water = r.WaterCups
			p.Sleep = r.SleepHours()
			p.ExerciseTotal = r.ExerciseTotal()
			p.Meditation = r.MeditationMinutes
			p.SleepQuality = r.SleepQuality()
		}
		points[i] = p
	}

	return points
}

// label picks an axis label: weekdays for a week, month-day otherwise.
// The year view only labels the first of each month.
func label(day time.Time, w Window) string {
	switch w {
	case Week:
		return day.Format("Mon")
	case Year:
		if day.Day() != 1 {
			return ""
		}
		return day.Format("Jan 2")
	default:
		return day.Format("Jan 2")
	}
}
