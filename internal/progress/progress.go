// Package progress computes goal completion percentages.
package progress

import "github.com/xolan/well/internal/record"

// Percent returns current as a percentage of goal, saturating at 100.
// A non-positive goal yields 0.
func Percent(current, goal float64) float64 {
	if goal <= 0 || current <= 0 {
		return 0
	}
	p := current / goal * 100
	if p > 100 {
		return 100
	}
	return p
}

// Metric is one row of a progress report.
type Metric struct {
	Name     string
	Unit     string
	Consumed float64
	Goal     float64
	Percent  float64
	Met      bool
}

// Metric names in report order.
const (
	Water      = "water"
	Sleep      = "sleep"
	Exercise   = "exercise"
	Meditation = "meditation"
)

// ForRecord reports progress of r against goals, always in the order
// water, sleep, exercise, meditation.
func ForRecord(r record.DailyRecord, goals record.GoalSet) []Metric {
	return []Metric{
		newMetric(Water, "cups", float64(r.WaterCups), goals.Water),
		newMetric(Sleep, "hours", r.SleepHours(), goals.Sleep),
		newMetric(Exercise, "minutes", float64(r.ExerciseTotal()), goals.Exercise),
		newMetric(Meditation, "minutes", float64(r.MeditationMinutes), goals.Meditation),
	}
}

func newMetric(name, unit string, consumed, goal float64) Metric {
	return Metric{
		Name:     name,
		Unit:     unit,
		Consumed: consumed,
		Goal:     goal,
		Percent:  Percent(consumed, goal),
		Met:      goal > 0 && consumed >= goal,
	}
}

// MetCount returns how many metrics reached their goal.
func MetCount(metrics []Metric) int {
	n := 0
	for _, m := range metrics {
		if m.Met {
			n++
		}
	}
	return n
}
