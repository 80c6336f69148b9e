package stats

// Summary reduces a series to the figures shown on summary cards.
type Summary struct {
	Days            int
	DaysWithData    int
	AvgWater        float64
	AvgSleep        float64
	AvgSleepQuality float64
	TotalExercise   int
	TotalMeditation int
}

// Summarize averages water and sleep over every day in the series (empty
// days count as zero) and totals exercise and meditation. Sleep quality is
// averaged over days that logged sleep only. An empty series yields zeros.
func Summarize(points []Point) Summary {
	s := Summary{Days: len(points)}
	if len(points) == 0 {
		return s
	}

	var water, sleep float64
	var qualitySum, qualityDays int
	for _, p := range points {
		water += float64(p.Water)
		sleep += p.Sleep
		s.TotalExercise += p.ExerciseTotal
		s.TotalMeditation += p.Meditation
		if p.SleepQuality > 0 {
			qualitySum += p.SleepQuality
			qualityDays++
		}
		if p.HasData() {
			s.DaysWithData++
		}
	}

	s.AvgWater = water / float64(len(points))
	s.AvgSleep = sleep / float64(len(points))
	if qualityDays > 0 {
		s.AvgSleepQuality = float64(qualitySum) / float64(qualityDays)
	}

	return s
}

// Peak returns the largest value selected by f, or 0 for an empty series.
// Chart renderers use it to scale bars.
func Peak(points []Point, f func(Point) float64) float64 {
	peak := 0.0
	for _, p := range points {
		if v := f(p); v > peak {
			peak = v
		}
	}
	return peak
}
