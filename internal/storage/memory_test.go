package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/xolan/well/internal/record"
)

func TestMemoryStore_GetOrCreate(t *testing.T) {
	s := NewMemoryStore()

	rec, err := s.GetOrCreate("2024-01-15")
	if err != nil {
		t.Fatalf("GetOrCreate() returned unexpected error: %v", err)
	}
	if !rec.IsEmpty() {
		t.Errorf("GetOrCreate() = %+v, expected empty record", rec)
	}

	if _, err := s.GetOrCreate("bogus"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("GetOrCreate(bogus) error = %v, expected ErrInvalidDate", err)
	}

	records, _ := s.Records()
	if len(records) != 1 {
		t.Errorf("Records() has %d entries, expected 1", len(records))
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	rec := record.New("2024-01-15").WithExercise(record.ExerciseEntry{ID: "a", Type: "run", DurationMinutes: 20})
	if err := s.Put(rec); err != nil {
		t.Fatalf("Put() returned unexpected error: %v", err)
	}

	// Mutating what the caller holds must not reach the store.
	rec.ExerciseEntries[0].DurationMinutes = 999

	got, ok, _ := s.Get("2024-01-15")
	if !ok {
		t.Fatal("Get() should find the stored record")
	}
	if got.ExerciseTotal() != 20 {
		t.Errorf("ExerciseTotal() = %d, expected 20", got.ExerciseTotal())
	}

	got.ExerciseEntries[0].DurationMinutes = 1
	again, _, _ := s.Get("2024-01-15")
	if again.ExerciseTotal() != 20 {
		t.Errorf("store changed through a returned record: total %d", again.ExerciseTotal())
	}
}

func TestMemoryStore_Events(t *testing.T) {
	s := NewMemoryStore()
	at := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

	if err := s.AppendEvent(record.NewWaterEvent("2024-01-15", at, 1)); err != nil {
		t.Fatalf("AppendEvent() returned unexpected error: %v", err)
	}
	if err := s.AppendEvent(record.LogEvent{Type: record.EventWater, Date: "2024-01-15"}); err == nil {
		t.Error("AppendEvent() should reject an event without payload")
	}

	events, _ := s.Events()
	if len(events) != 1 {
		t.Fatalf("Events() returned %d events, expected 1", len(events))
	}

	events[0] = record.LogEvent{}
	again, _ := s.Events()
	if again[0].Type != record.EventWater {
		t.Error("Events() should return a copy of the log")
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			rec, _ := s.GetOrCreate("2024-01-15")
			_ = s.Put(rec.WithWaterCup())
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Records()
		}()
	}
	wg.Wait()

	records, _ := s.Records()
	if len(records) != 1 {
		t.Errorf("Records() has %d entries, expected 1", len(records))
	}
}
