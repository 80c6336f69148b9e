package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/well/internal/osutil"
	"github.com/xolan/well/internal/record"
)

// Helper to create a temporary test file
func createTempFile(t *testing.T, name, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if content != "" {
		if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create temp file: %v", err)
		}
	}
	return tmpFile
}

func newTestStore(t *testing.T) *JSONLStore {
	t.Helper()
	return NewJSONLStore(t.TempDir(), nil)
}

func sampleRecord(date string) record.DailyRecord {
	return record.New(date).
		WithExercise(record.ExerciseEntry{ID: "e1", Type: "run", DurationMinutes: 30}).
		WithSleep(record.Sleep{Hours: 7.5, Quality: 8}).
		WithWaterCup().
		WithMeditation(10)
}

func TestJSONLStore_GetOrCreate(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.GetOrCreate("2024-01-15")
	if err != nil {
		t.Fatalf("GetOrCreate() returned unexpected error: %v", err)
	}
	if rec.Date != "2024-01-15" || !rec.IsEmpty() {
		t.Errorf("GetOrCreate() = %+v, expected empty record for 2024-01-15", rec)
	}

	if _, err := os.Stat(s.RecordsPath()); err != nil {
		t.Errorf("GetOrCreate() should persist the new record: %v", err)
	}

	again, err := s.GetOrCreate("2024-01-15")
	if err != nil {
		t.Fatalf("second GetOrCreate() returned unexpected error: %v", err)
	}
	if again.Date != rec.Date {
		t.Errorf("second GetOrCreate() date = %q, expected %q", again.Date, rec.Date)
	}

	records, _ := s.Records()
	if len(records) != 1 {
		t.Errorf("Records() has %d entries, expected 1", len(records))
	}
}

func TestJSONLStore_GetOrCreate_InvalidDate(t *testing.T) {
	s := newTestStore(t)

	for _, date := range []string{"", "2024-13-01", "15/01/2024", "today"} {
		_, err := s.GetOrCreate(date)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("GetOrCreate(%q) error = %v, expected ErrInvalidDate", date, err)
		}
	}
}

func TestJSONLStore_PutAndGet(t *testing.T) {
	s := newTestStore(t)
	rec := sampleRecord("2024-01-15")

	if err := s.Put(rec); err != nil {
		t.Fatalf("Put() returned unexpected error: %v", err)
	}

	got, ok, err := s.Get("2024-01-15")
	if err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("Get() should find the stored record")
	}
	if got.WaterCups != 1 || got.MeditationMinutes != 10 || got.ExerciseTotal() != 30 {
		t.Errorf("Get() = %+v, expected round-tripped values", got)
	}
	if got.Sleep == nil || got.Sleep.Hours != 7.5 || got.Sleep.Quality != 8 {
		t.Errorf("Get().Sleep = %+v, expected {7.5 8}", got.Sleep)
	}

	_, ok, err = s.Get("2024-01-16")
	if err != nil || ok {
		t.Errorf("Get() for unknown date = (%v, %v), expected (false, nil)", ok, err)
	}
}

func TestJSONLStore_Put_ReplacesRecord(t *testing.T) {
	s := newTestStore(t)
	rec := record.New("2024-01-15")

	for i := 0; i < 3; i++ {
		rec = rec.WithWaterCup()
		if err := s.Put(rec); err != nil {
			t.Fatalf("Put() returned unexpected error: %v", err)
		}
	}

	result, err := ReadRecordsWithWarnings(s.RecordsPath())
	if err != nil {
		t.Fatalf("ReadRecordsWithWarnings() returned unexpected error: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("records file has %d lines, expected 1", len(result.Records))
	}
	if result.Records[0].WaterCups != 3 {
		t.Errorf("WaterCups = %d, expected 3", result.Records[0].WaterCups)
	}
}

func TestJSONLStore_Records_SortedOnDisk(t *testing.T) {
	s := newTestStore(t)
	for _, d := range []string{"2024-01-17", "2024-01-15", "2024-01-16"} {
		if err := s.Put(record.New(d)); err != nil {
			t.Fatalf("Put(%s) returned unexpected error: %v", d, err)
		}
	}

	result, _ := ReadRecordsWithWarnings(s.RecordsPath())
	expected := []string{"2024-01-15", "2024-01-16", "2024-01-17"}
	for i, rec := range result.Records {
		if rec.Date != expected[i] {
			t.Errorf("line %d date = %q, expected %q", i+1, rec.Date, expected[i])
		}
	}
}

func TestJSONLStore_DuplicateDates_LastWins(t *testing.T) {
	dir := t.TempDir()
	content := `{"date":"2024-01-15","exercise_entries":[],"water_cups":2,"meditation_minutes":0}
{"date":"2024-01-15","exercise_entries":[],"water_cups":5,"meditation_minutes":0}
`
	if err := os.WriteFile(filepath.Join(dir, RecordsFile), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write records: %v", err)
	}

	s := NewJSONLStore(dir, nil)
	rec, ok, err := s.Get("2024-01-15")
	if err != nil || !ok {
		t.Fatalf("Get() = (%v, %v), expected record", ok, err)
	}
	if rec.WaterCups != 5 {
		t.Errorf("WaterCups = %d, expected 5 (last line wins)", rec.WaterCups)
	}
}

func TestJSONLStore_Events(t *testing.T) {
	s := newTestStore(t)
	at := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

	events := []record.LogEvent{
		record.NewWaterEvent("2024-01-15", at, 1),
		record.NewMeditationEvent("2024-01-15", at.Add(time.Hour), 10, 10),
		record.NewSleepEvent("2024-01-15", at.Add(2*time.Hour), record.Sleep{Hours: 8, Quality: 9}),
	}
	for _, e := range events {
		if err := s.AppendEvent(e); err != nil {
			t.Fatalf("AppendEvent() returned unexpected error: %v", err)
		}
	}

	got, err := s.Events()
	if err != nil {
		t.Fatalf("Events() returned unexpected error: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("Events() returned %d events, expected %d", len(got), len(events))
	}
	for i := range events {
		if got[i].Type != events[i].Type || got[i].Description != events[i].Description {
			t.Errorf("event %d = %+v, expected %+v", i, got[i], events[i])
		}
		if !got[i].Timestamp.Equal(events[i].Timestamp) {
			t.Errorf("event %d timestamp = %v, expected %v", i, got[i].Timestamp, events[i].Timestamp)
		}
		if !got[i].Valid() {
			t.Errorf("event %d is not valid after round trip", i)
		}
	}
}

func TestJSONLStore_AppendEvent_RejectsMismatchedPayload(t *testing.T) {
	s := newTestStore(t)
	bad := record.NewWaterEvent("2024-01-15", time.Now(), 1)
	bad.Type = record.EventSleep

	if err := s.AppendEvent(bad); err == nil {
		t.Error("AppendEvent() should reject an event whose payload does not match its type")
	}
	if _, err := os.Stat(s.EventsPath()); !os.IsNotExist(err) {
		t.Error("AppendEvent() should not create the events file for a rejected event")
	}
}

func TestReadRecordsWithWarnings_Missing(t *testing.T) {
	result, err := ReadRecordsWithWarnings(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err != nil {
		t.Fatalf("ReadRecordsWithWarnings() returned unexpected error: %v", err)
	}
	if len(result.Records) != 0 || len(result.Warnings) != 0 {
		t.Errorf("ReadRecordsWithWarnings() = %+v, expected empty result", result)
	}
}

func TestReadRecordsWithWarnings_Malformed(t *testing.T) {
	content := `{"date":"2024-01-15","exercise_entries":[],"water_cups":1,"meditation_minutes":0}
not json at all
{"date":"someday","water_cups":1}

{"date":"2024-01-16","water_cups":2,"meditation_minutes":0}
`
	tmpFile := createTempFile(t, RecordsFile, content)

	result, err := ReadRecordsWithWarnings(tmpFile)
	if err != nil {
		t.Fatalf("ReadRecordsWithWarnings() returned unexpected error: %v", err)
	}

	if len(result.Records) != 2 {
		t.Errorf("got %d records, expected 2", len(result.Records))
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("got %d warnings, expected 2", len(result.Warnings))
	}
	if result.Warnings[0].LineNumber != 2 || result.Warnings[0].Content != "not json at all" {
		t.Errorf("first warning = %+v, expected line 2", result.Warnings[0])
	}
	if result.Warnings[1].LineNumber != 3 || !strings.Contains(result.Warnings[1].Error, "invalid record date") {
		t.Errorf("second warning = %+v, expected invalid date on line 3", result.Warnings[1])
	}
	if result.Records[1].ExerciseEntries == nil {
		t.Error("records without exercise_entries should decode to an empty slice")
	}
}

func TestReadRecords_LongLine(t *testing.T) {
	rec := record.New("2024-01-15")
	for i := 0; i < 2000; i++ {
		rec = rec.WithExercise(record.ExerciseEntry{ID: strings.Repeat("x", 36), Type: "interval training", DurationMinutes: 1})
	}
	path := filepath.Join(t.TempDir(), RecordsFile)
	if err := WriteRecords(path, map[string]record.DailyRecord{rec.Date: rec}); err != nil {
		t.Fatalf("WriteRecords() returned unexpected error: %v", err)
	}

	result, err := ReadRecordsWithWarnings(path)
	if err != nil {
		t.Fatalf("ReadRecordsWithWarnings() returned unexpected error: %v", err)
	}
	if len(result.Records) != 1 || len(result.Records[0].ExerciseEntries) != 2000 {
		t.Errorf("long record did not round trip: %d records", len(result.Records))
	}
}

func TestWriteRecords_NoTempFileLeft(t *testing.T) {
	path := filepath.Join(t.TempDir(), RecordsFile)
	if err := WriteRecords(path, map[string]record.DailyRecord{"2024-01-15": record.New("2024-01-15")}); err != nil {
		t.Fatalf("WriteRecords() returned unexpected error: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("WriteRecords() left its temp file behind")
	}
}

func TestWriteRecords_OpenError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", RecordsFile)
	if err := WriteRecords(path, map[string]record.DailyRecord{}); err == nil {
		t.Error("WriteRecords() should fail when the directory does not exist")
	}
}

func TestAppendEvent_OpenError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", EventsFile)
	if err := AppendEvent(path, record.NewWaterEvent("2024-01-15", time.Now(), 1)); err == nil {
		t.Error("AppendEvent() should fail when the directory does not exist")
	}
}

func TestValidateRecords(t *testing.T) {
	content := `{"date":"2024-01-15","water_cups":1}
{broken
{"date":"2024-01-16","water_cups":2}
`
	tmpFile := createTempFile(t, RecordsFile, content)

	h, err := ValidateRecords(tmpFile)
	if err != nil {
		t.Fatalf("ValidateRecords() returned unexpected error: %v", err)
	}
	if h.TotalLines != 3 || h.ValidEntries != 2 || h.CorruptedEntries != 1 {
		t.Errorf("ValidateRecords() = %+v, expected 3 total, 2 valid, 1 corrupted", h)
	}
	if h.Healthy() {
		t.Error("Healthy() should be false with a corrupted line")
	}
}

func TestValidateEvents_NonExistentFile(t *testing.T) {
	h, err := ValidateEvents(filepath.Join(t.TempDir(), EventsFile))
	if err != nil {
		t.Fatalf("ValidateEvents() returned unexpected error: %v", err)
	}
	if h.TotalLines != 0 || !h.Healthy() {
		t.Errorf("ValidateEvents() = %+v, expected empty healthy result", h)
	}
}

func TestJSONLStore_Validate(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetOrCreate("2024-01-15"); err != nil {
		t.Fatalf("GetOrCreate() returned unexpected error: %v", err)
	}
	if err := s.AppendEvent(record.NewWaterEvent("2024-01-15", time.Now(), 1)); err != nil {
		t.Fatalf("AppendEvent() returned unexpected error: %v", err)
	}

	reports, err := s.Validate()
	if err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("Validate() returned %d reports, expected 2", len(reports))
	}
	for _, h := range reports {
		if h.ValidEntries != 1 || !h.Healthy() {
			t.Errorf("report for %s = %+v, expected 1 valid entry", filepath.Base(h.Path), h)
		}
	}
}

func TestGetStorageDir(t *testing.T) {
	defer osutil.ResetProvider()

	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
	})

	dir, err := GetStorageDir()
	if err != nil {
		t.Fatalf("GetStorageDir() returned error: %v", err)
	}
	if dir != filepath.Join(tmpDir, osutil.AppName) {
		t.Errorf("GetStorageDir() = %q, expected %q", dir, filepath.Join(tmpDir, osutil.AppName))
	}

	s, err := OpenDefault(nil)
	if err != nil {
		t.Fatalf("OpenDefault() returned error: %v", err)
	}
	if s.RecordsPath() != filepath.Join(dir, RecordsFile) {
		t.Errorf("RecordsPath() = %q, expected file in %q", s.RecordsPath(), dir)
	}
}

func TestOpenDefault_UserConfigDirError(t *testing.T) {
	defer osutil.ResetProvider()

	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return "", os.ErrPermission },
	})

	if _, err := OpenDefault(nil); err == nil {
		t.Error("OpenDefault() should return error when UserConfigDir fails")
	}
}

// mockPathProvider is a test helper for mocking osutil.PathProvider
type mockPathProvider struct {
	userConfigDirFn func() (string, error)
	mkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *mockPathProvider) UserConfigDir() (string, error) {
	if m.userConfigDirFn != nil {
		return m.userConfigDirFn()
	}
	return "", nil
}

func (m *mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.mkdirAllFn != nil {
		return m.mkdirAllFn(path, perm)
	}
	return os.MkdirAll(path, perm)
}
