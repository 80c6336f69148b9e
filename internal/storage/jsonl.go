package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/xolan/well/internal/logging"
	"github.com/xolan/well/internal/osutil"
	"github.com/xolan/well/internal/record"
)

const (
	// RecordsFile holds one DailyRecord per line
	RecordsFile = "records.jsonl"
	// EventsFile holds the append-only event log
	EventsFile = "events.jsonl"
)

// ReadResult contains the records read from storage along with warnings
// about corrupted or malformed lines.
type ReadResult struct {
	Records  []record.DailyRecord // Successfully parsed records, in file order
	Warnings []ParseWarning       // Warnings about corrupted lines
}

// EventResult contains the events read from storage along with warnings
// about corrupted or malformed lines.
type EventResult struct {
	Events   []record.LogEvent
	Warnings []ParseWarning
}

// GetStorageDir returns the directory holding the JSONL files, creating it
// if it doesn't exist.
func GetStorageDir() (string, error) {
	return osutil.AppDir()
}

func decodeRecord(line []byte) (record.DailyRecord, error) {
	var rec record.DailyRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return rec, err
	}
	if err := checkDate(rec.Date); err != nil {
		return rec, err
	}
	if rec.ExerciseEntries == nil {
		rec.ExerciseEntries = []record.ExerciseEntry{}
	}
	return rec, nil
}

func decodeEvent(line []byte) (record.LogEvent, error) {
	var e record.LogEvent
	if err := json.Unmarshal(line, &e); err != nil {
		return e, err
	}
	if err := checkEvent(e); err != nil {
		return e, err
	}
	return e, nil
}

// ReadRecordsWithWarnings reads every record line from path. A missing file
// yields an empty result.
func ReadRecordsWithWarnings(path string) (ReadResult, error) {
	records, warnings, _, err := readLines(path, decodeRecord)
	return ReadResult{Records: records, Warnings: warnings}, err
}

// ReadEventsWithWarnings reads every event line from path. A missing file
// yields an empty result.
func ReadEventsWithWarnings(path string) (EventResult, error) {
	events, warnings, _, err := readLines(path, decodeEvent)
	return EventResult{Events: events, Warnings: warnings}, err
}

// WriteRecords rewrites path with records sorted by date.
func WriteRecords(path string, records map[string]record.DailyRecord) error {
	dates := make([]string, 0, len(records))
	for d := range records {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	ordered := make([]record.DailyRecord, len(dates))
	for i, d := range dates {
		ordered[i] = records[d]
	}
	return writeLinesAtomic(path, ordered)
}

// AppendEvent appends a single event to the events file at path.
func AppendEvent(path string, e record.LogEvent) error {
	if err := checkEvent(e); err != nil {
		return err
	}
	return appendLine(path, e)
}

// JSONLStore is a Store backed by two JSON Lines files in one directory.
// Each call reads the files afresh; writes rewrite records.jsonl atomically.
type JSONLStore struct {
	mu          sync.Mutex
	recordsPath string
	eventsPath  string
	log         *logrus.Entry
}

var _ Store = (*JSONLStore)(nil)

// NewJSONLStore returns a store rooted at dir. A nil logger discards output.
func NewJSONLStore(dir string, log *logrus.Entry) *JSONLStore {
	if log == nil {
		log = logging.Component(logging.Discard(), "storage")
	}
	return &JSONLStore{
		recordsPath: filepath.Join(dir, RecordsFile),
		eventsPath:  filepath.Join(dir, EventsFile),
		log:         log,
	}
}

// OpenDefault returns a store in the per-user app directory.
func OpenDefault(log *logrus.Entry) (*JSONLStore, error) {
	dir, err := GetStorageDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	return NewJSONLStore(dir, log), nil
}

// RecordsPath returns the path of the records file.
func (s *JSONLStore) RecordsPath() string { return s.recordsPath }

// EventsPath returns the path of the events file.
func (s *JSONLStore) EventsPath() string { return s.eventsPath }

// load reads records keyed by date; the last line for a date wins.
func (s *JSONLStore) load() (map[string]record.DailyRecord, error) {
	result, err := ReadRecordsWithWarnings(s.recordsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	s.warn(s.recordsPath, result.Warnings)

	byDate := make(map[string]record.DailyRecord, len(result.Records))
	for _, rec := range result.Records {
		byDate[rec.Date] = rec
	}
	return byDate, nil
}

func (s *JSONLStore) warn(path string, warnings []ParseWarning) {
	for _, w := range warnings {
		s.log.WithFields(logrus.Fields{
			"file": filepath.Base(path),
			"line": w.LineNumber,
		}).Warn("skipping corrupted line: " + w.Error)
	}
}

// GetOrCreate returns the record for date. Creating a record for a new date
// first rotates a backup of both files.
func (s *JSONLStore) GetOrCreate(date string) (record.DailyRecord, error) {
	if err := checkDate(date); err != nil {
		return record.DailyRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return record.DailyRecord{}, err
	}
	if rec, ok := records[date]; ok {
		return rec, nil
	}

	if err := CreatePairedBackup(s.recordsPath, s.eventsPath); err != nil {
		return record.DailyRecord{}, fmt.Errorf("failed to back up storage: %w", err)
	}

	rec := record.New(date)
	records[date] = rec
	if err := WriteRecords(s.recordsPath, records); err != nil {
		return record.DailyRecord{}, fmt.Errorf("failed to write records: %w", err)
	}
	s.log.WithField("date", date).Debug("created record")
	return rec, nil
}

// Get returns the record for date without creating it.
func (s *JSONLStore) Get(date string) (record.DailyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return record.DailyRecord{}, false, err
	}
	rec, ok := records[date]
	return rec, ok, nil
}

// Put replaces the record for rec.Date and rewrites the records file.
func (s *JSONLStore) Put(rec record.DailyRecord) error {
	if err := checkDate(rec.Date); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	records[rec.Date] = rec.Clone()
	if err := WriteRecords(s.recordsPath, records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// Records returns every record keyed by date.
func (s *JSONLStore) Records() (map[string]record.DailyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// AppendEvent validates e and appends it to the events file.
func (s *JSONLStore) AppendEvent(e record.LogEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := AppendEvent(s.eventsPath, e); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// Events returns the event log in file order. Corrupted lines are skipped
// and logged.
func (s *JSONLStore) Events() ([]record.LogEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := ReadEventsWithWarnings(s.eventsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	s.warn(s.eventsPath, result.Warnings)
	return result.Events, nil
}

// StorageHealth contains information about the health status of one storage file.
type StorageHealth struct {
	Path             string         // File that was checked
	TotalLines       int            // Total number of lines in the file
	ValidEntries     int            // Number of successfully parsed lines
	CorruptedEntries int            // Number of corrupted/malformed lines
	Warnings         []ParseWarning // Detailed information about each corrupted line
}

// Healthy reports whether no line was corrupted.
func (h StorageHealth) Healthy() bool { return h.CorruptedEntries == 0 }

func health[T any](path string, decode decodeFunc[T]) (StorageHealth, error) {
	items, warnings, total, err := readLines(path, decode)
	if err != nil {
		return StorageHealth{Path: path, Warnings: []ParseWarning{}}, err
	}
	return StorageHealth{
		Path:             path,
		TotalLines:       total,
		ValidEntries:     len(items),
		CorruptedEntries: len(warnings),
		Warnings:         warnings,
	}, nil
}

// ValidateRecords analyzes a records file. A missing file is healthy and empty.
func ValidateRecords(path string) (StorageHealth, error) {
	return health(path, decodeRecord)
}

// ValidateEvents analyzes an events file. A missing file is healthy and empty.
func ValidateEvents(path string) (StorageHealth, error) {
	return health(path, decodeEvent)
}

// Validate checks both files of the store.
func (s *JSONLStore) Validate() ([]StorageHealth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rh, err := ValidateRecords(s.recordsPath)
	if err != nil {
		return nil, err
	}
	eh, err := ValidateEvents(s.eventsPath)
	if err != nil {
		return nil, err
	}
	return []StorageHealth{rh, eh}, nil
}

// Backups lists the available backups of the records file.
func (s *JSONLStore) Backups() ([]BackupInfo, error) {
	return ListBackups(s.recordsPath)
}

// Restore replaces the records and events files with backup n.
func (s *JSONLStore) Restore(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := RestorePairedBackup(s.recordsPath, s.eventsPath, n); err != nil {
		return err
	}
	s.log.WithField("backup", n).Info("restored backup")
	return nil
}
