package record

import "fmt"

// GoalSet holds the daily targets. Units: cups, hours, minutes, minutes.
type GoalSet struct {
	Water      float64 `toml:"water" json:"water"`
	Sleep      float64 `toml:"sleep" json:"sleep"`
	Exercise   float64 `toml:"exercise" json:"exercise"`
	Meditation float64 `toml:"meditation" json:"meditation"`
}

// DefaultGoals returns the built-in targets.
func DefaultGoals() GoalSet {
	return GoalSet{
		Water:      8,
		Sleep:      8,
		Exercise:   30,
		Meditation: 15,
	}
}

// Validate requires every goal to be positive.
func (g GoalSet) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"water", g.Water},
		{"sleep", g.Sleep},
		{"exercise", g.Exercise},
		{"meditation", g.Meditation},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("goal %q must be greater than 0, got %v", c.name, c.value)
		}
	}
	return nil
}
