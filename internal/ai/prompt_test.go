package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xolan/well/internal/progress"
	"github.com/xolan/well/internal/record"
)

func TestBuildPrompt(t *testing.T) {
	rec := record.New("2024-03-10").
		WithWaterCup().WithWaterCup().WithWaterCup().WithWaterCup().
		WithSleep(record.Sleep{Hours: 8.5, Quality: 7}).
		WithExercise(record.ExerciseEntry{ID: "x", Type: "run", DurationMinutes: 45})

	prompt := BuildPrompt(Input{
		Date:    rec.Date,
		Metrics: progress.ForRecord(rec, record.DefaultGoals()),
	})

	assert.Contains(t, prompt, "2024-03-10")
	assert.Contains(t, prompt, "- Water: 4 of 8 cups (50%), goal missed")
	assert.Contains(t, prompt, "- Sleep: 8.5 of 8 hours (100%), goal met")
	assert.Contains(t, prompt, "- Exercise: 45 of 30 minutes (100%), goal met")
	assert.Contains(t, prompt, "- Meditation: 0 of 15 minutes (0%), goal missed")
	assert.Contains(t, prompt, "Goals met: 2 of 4.")
}

func TestBuildPrompt_NoMetrics(t *testing.T) {
	prompt := BuildPrompt(Input{Date: "2024-03-10"})
	assert.Contains(t, prompt, "Goals met: 0 of 0.")
}
