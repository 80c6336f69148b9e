package service

import (
	"testing"

	"github.com/xolan/well/internal/record"
	"github.com/xolan/well/internal/stats"
)

func TestAnalyticsService_Series(t *testing.T) {
	tracker, store := newTestTracker(t)
	analytics := NewAnalyticsService(store, tracker, nil)

	_ = store.Put(record.New("2024-03-04").WithSleep(record.Sleep{Hours: 6, Quality: 4}))
	_ = store.Put(record.New("2024-02-01").WithWaterCup()) // outside the week
	_, _ = tracker.AddExercise("run", 40)

	result, err := analytics.Series(stats.Week)
	if err != nil {
		t.Fatalf("Series() returned unexpected error: %v", err)
	}

	if len(result.Points) != 7 {
		t.Fatalf("Series() returned %d points, expected 7", len(result.Points))
	}
	if result.Start != "2024-03-04" || result.End != "2024-03-10" {
		t.Errorf("Series() range = %s..%s, expected 2024-03-04..2024-03-10", result.Start, result.End)
	}
	if result.Points[0].Sleep != 6 || result.Points[6].ExerciseTotal != 40 {
		t.Errorf("Series() points = %+v, expected sleep on first and exercise on last", result.Points)
	}
	if result.Summary.TotalExercise != 40 || result.Summary.DaysWithData != 2 {
		t.Errorf("Summary = %+v, expected 40 exercise minutes over 2 days", result.Summary)
	}
	if result.Summary.AvgSleepQuality != 4 {
		t.Errorf("AvgSleepQuality = %v, expected 4", result.Summary.AvgSleepQuality)
	}
}

func TestAnalyticsService_InvalidatesOnMutation(t *testing.T) {
	tracker, store := newTestTracker(t)
	analytics := NewAnalyticsService(store, tracker, nil)

	first, err := analytics.Summary(stats.Month)
	if err != nil {
		t.Fatalf("Summary() returned unexpected error: %v", err)
	}
	if first.TotalMeditation != 0 {
		t.Fatalf("TotalMeditation = %d, expected 0", first.TotalMeditation)
	}

	// Writes that bypass the tracker are not seen until the cache is dropped.
	_ = store.Put(record.New("2024-03-09").WithMeditation(50))
	cached, _ := analytics.Summary(stats.Month)
	if cached.TotalMeditation != 0 {
		t.Errorf("TotalMeditation = %d, expected cached 0", cached.TotalMeditation)
	}

	_, _ = tracker.AddMeditation(10)
	fresh, _ := analytics.Summary(stats.Month)
	if fresh.TotalMeditation != 60 {
		t.Errorf("TotalMeditation = %d, expected 60 after a tracked mutation", fresh.TotalMeditation)
	}
}

func TestAnalyticsService_ReturnsCopies(t *testing.T) {
	tracker, store := newTestTracker(t)
	analytics := NewAnalyticsService(store, tracker, nil)

	a, _ := analytics.Series(stats.Week)
	a.Points[0].Water = 99

	b, _ := analytics.Series(stats.Week)
	if b.Points[0].Water != 0 {
		t.Error("Series() shares points between callers")
	}
}

func TestAnalyticsService_InvalidWindow(t *testing.T) {
	tracker, store := newTestTracker(t)
	analytics := NewAnalyticsService(store, tracker, nil)

	if _, err := analytics.Series(stats.Window(14)); err == nil {
		t.Error("Series() should reject a 14 day window")
	}
}

func TestAnalyticsService_YearLabels(t *testing.T) {
	tracker, store := newTestTracker(t)
	analytics := NewAnalyticsService(store, tracker, nil)

	result, err := analytics.Series(stats.Year)
	if err != nil {
		t.Fatalf("Series() returned unexpected error: %v", err)
	}
	if len(result.Points) != 365 {
		t.Fatalf("Series() returned %d points, expected 365", len(result.Points))
	}

	labelled := 0
	for _, p := range result.Points {
		if p.Label != "" {
			labelled++
		}
	}
	if labelled != 12 {
		t.Errorf("year series has %d labels, expected 12", labelled)
	}
}
