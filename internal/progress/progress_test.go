package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xolan/well/internal/record"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		goal    float64
		want    float64
	}{
		{"zero", 0, 8, 0},
		{"half", 4, 8, 50},
		{"exact goal", 8, 8, 100},
		{"over goal saturates", 12, 8, 100},
		{"fractional", 1, 3, 100.0 / 3.0},
		{"zero goal", 5, 0, 0},
		{"negative goal", 5, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percent(tt.current, tt.goal), 1e-9)
		})
	}
}

func TestPercent_MonotonicAndSaturating(t *testing.T) {
	goals := []float64{1, 8, 15, 30, 7.5}
	for _, goal := range goals {
		prev := -1.0
		for current := 0.0; current <= goal*3; current += 0.25 {
			p := Percent(current, goal)
			assert.GreaterOrEqual(t, p, prev, "goal=%v current=%v", goal, current)
			assert.LessOrEqual(t, p, 100.0)
			if current >= goal {
				assert.Equal(t, 100.0, p, "goal=%v current=%v", goal, current)
			}
			prev = p
		}
	}
}

func TestForRecord(t *testing.T) {
	r := record.New("2026-10-15").
		WithWaterCup().WithWaterCup().
		WithSleep(record.Sleep{Hours: 8, Quality: 7}).
		WithExercise(record.ExerciseEntry{ID: "1", Type: "run", DurationMinutes: 20}).
		WithMeditation(15)

	metrics := ForRecord(r, record.DefaultGoals())
	require.Len(t, metrics, 4)

	assert.Equal(t, Water, metrics[0].Name)
	assert.Equal(t, 2.0, metrics[0].Consumed)
	assert.Equal(t, 25.0, metrics[0].Percent)
	assert.False(t, metrics[0].Met)

	assert.Equal(t, Sleep, metrics[1].Name)
	assert.Equal(t, 100.0, metrics[1].Percent)
	assert.True(t, metrics[1].Met)

	assert.Equal(t, Exercise, metrics[2].Name)
	assert.Equal(t, 20.0, metrics[2].Consumed)
	assert.False(t, metrics[2].Met)

	assert.Equal(t, Meditation, metrics[3].Name)
	assert.True(t, metrics[3].Met)

	assert.Equal(t, 2, MetCount(metrics))
}

func TestForRecord_Empty(t *testing.T) {
	metrics := ForRecord(record.New("2026-10-15"), record.DefaultGoals())
	for _, m := range metrics {
		assert.Zero(t, m.Consumed, m.Name)
		assert.Zero(t, m.Percent, m.Name)
		assert.False(t, m.Met, m.Name)
	}
	assert.Zero(t, MetCount(metrics))
}
