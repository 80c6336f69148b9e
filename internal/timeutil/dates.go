// Package timeutil resolves calendar dates and day keys.
package timeutil

import (
	"time"

	"github.com/xolan/well/internal/record"
)

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day (23:59:59.999999999)
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DateKey formats t as the record key for its calendar day in t's location.
func DateKey(t time.Time) string {
	return t.Format(record.DateLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(record.DateLayout, key, loc)
}

// TodayKey returns the key for now as seen in loc.
func TodayKey(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return DateKey(now.In(loc))
}

// DaysBack returns the day n calendar days before t, at midnight.
// AddDate keeps this correct across DST changes where 24h arithmetic is not.
func DaysBack(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, -n)
}

// WindowKeys returns the n date keys ending at today, oldest first.
func WindowKeys(today time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = DateKey(DaysBack(today, n-1-i))
	}
	return keys
}

// IsInRange checks if t falls within [start, end] (inclusive).
func IsInRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
