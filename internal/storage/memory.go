package storage

import (
	"sync"

	"github.com/xolan/well/internal/record"
)

// MemoryStore is a Store kept entirely in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]record.DailyRecord
	events  []record.LogEvent
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]record.DailyRecord)}
}

// GetOrCreate returns the record for date, creating an empty one if needed.
func (s *MemoryStore) GetOrCreate(date string) (record.DailyRecord, error) {
	if err := checkDate(date); err != nil {
		return record.DailyRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[date]
	if !ok {
		rec = record.New(date)
		s.records[date] = rec
	}
	return rec.Clone(), nil
}

// Get returns the record for date without creating it.
func (s *MemoryStore) Get(date string) (record.DailyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[date]
	if !ok {
		return record.DailyRecord{}, false, nil
	}
	return rec.Clone(), true, nil
}

// Put replaces the record for rec.Date.
func (s *MemoryStore) Put(rec record.DailyRecord) error {
	if err := checkDate(rec.Date); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Date] = rec.Clone()
	return nil
}

// Records returns a copy of every record keyed by date.
func (s *MemoryStore) Records() (map[string]record.DailyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]record.DailyRecord, len(s.records))
	for k, v := range s.records {
		out[k] = v.Clone()
	}
	return out, nil
}

// AppendEvent validates e and appends it to the log.
func (s *MemoryStore) AppendEvent(e record.LogEvent) error {
	if err := checkEvent(e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// Events returns a copy of the event log in append order.
func (s *MemoryStore) Events() ([]record.LogEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]record.LogEvent, len(s.events))
	copy(out, s.events)
	return out, nil
}
