// Package storage persists daily records and the mutation event log.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/xolan/well/internal/record"
)

// ErrInvalidDate is returned when a record key is not a YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid record date")

// Store holds exactly one DailyRecord per date plus the append-only event log.
// Records cross the boundary by value; callers never share state with the store.
type Store interface {
	// GetOrCreate returns the record for date, creating an empty one on first access.
	GetOrCreate(date string) (record.DailyRecord, error)
	// Get returns the record for date without creating it.
	Get(date string) (record.DailyRecord, bool, error)
	// Put replaces the record stored under rec.Date.
	Put(rec record.DailyRecord) error
	// Records returns every stored record keyed by date.
	Records() (map[string]record.DailyRecord, error)
	// AppendEvent adds e to the event log.
	AppendEvent(e record.LogEvent) error
	// Events returns the event log in append order.
	Events() ([]record.LogEvent, error)
}

func checkDate(date string) error {
	if _, err := time.Parse(record.DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

func checkEvent(e record.LogEvent) error {
	if !e.Valid() {
		return fmt.Errorf("invalid %s event: payload does not match type", e.Type)
	}
	return checkDate(e.Date)
}
