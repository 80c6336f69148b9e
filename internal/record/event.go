package record

import (
	"fmt"
	"time"
)

// EventType tags which variant a LogEvent carries.
type EventType string

const (
	EventExercise   EventType = "exercise"
	EventSleep      EventType = "sleep"
	EventWater      EventType = "water"
	EventMeditation EventType = "meditation"
)

// EventTypes lists every variant in display order.
var EventTypes = []EventType{EventExercise, EventSleep, EventWater, EventMeditation}

// ParseEventType converts s to an EventType.
func ParseEventType(s string) (EventType, bool) {
	for _, t := range EventTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// ExerciseEvent is the payload of an exercise event.
type ExerciseEvent struct {
	EntryID         string `json:"entry_id"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"duration_minutes"`
}

// SleepEvent is the payload of a sleep event.
type SleepEvent struct {
	Hours   float64 `json:"hours"`
	Quality int     `json:"quality"`
}

// WaterEvent is the payload of a water event. Cups is the day total after
// the increment.
type WaterEvent struct {
	Cups int `json:"cups"`
}

// MeditationEvent is the payload of a meditation event. Total is the day
// total after the addition.
type MeditationEvent struct {
	Minutes int `json:"minutes"`
	Total   int `json:"total"`
}

// LogEvent records one successful mutation. Exactly one payload pointer is
// non-nil and it matches Type. Build events with the New*Event constructors.
type LogEvent struct {
	Type        EventType `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Date        string    `json:"date"`

	Exercise   *ExerciseEvent   `json:"exercise,omitempty"`
	Sleep      *SleepEvent      `json:"sleep,omitempty"`
	Water      *WaterEvent      `json:"water,omitempty"`
	Meditation *MeditationEvent `json:"meditation,omitempty"`
}

// NewExerciseEvent builds the event for an appended exercise entry.
func NewExerciseEvent(date string, at time.Time, e ExerciseEntry) LogEvent {
	return LogEvent{
		Type:        EventExercise,
		Description: fmt.Sprintf("%s for %d min", e.Type, e.DurationMinutes),
		Timestamp:   at,
		Date:        date,
		Exercise: &ExerciseEvent{
			EntryID:         e.ID,
			Type:            e.Type,
			DurationMinutes: e.DurationMinutes,
		},
	}
}

// NewSleepEvent builds the event for a replaced sleep sub-record.
func NewSleepEvent(date string, at time.Time, s Sleep) LogEvent {
	return LogEvent{
		Type:        EventSleep,
		Description: fmt.Sprintf("Slept %s h, quality %d/10", formatHours(s.Hours), s.Quality),
		Timestamp:   at,
		Date:        date,
		Sleep:       &SleepEvent{Hours: s.Hours, Quality: s.Quality},
	}
}

// NewWaterEvent builds the event for one more cup; cups is the new total.
func NewWaterEvent(date string, at time.Time, cups int) LogEvent {
	unit := "cups"
	if cups == 1 {
		unit = "cup"
	}
	return LogEvent{
		Type:        EventWater,
		Description: fmt.Sprintf("Drank a cup of water (%d %s today)", cups, unit),
		Timestamp:   at,
		Date:        date,
		Water:       &WaterEvent{Cups: cups},
	}
}

// NewMeditationEvent builds the event for added meditation minutes.
func NewMeditationEvent(date string, at time.Time, minutes, total int) LogEvent {
	return LogEvent{
		Type:        EventMeditation,
		Description: fmt.Sprintf("Meditated %d min (%d min today)", minutes, total),
		Timestamp:   at,
		Date:        date,
		Meditation:  &MeditationEvent{Minutes: minutes, Total: total},
	}
}

// Valid reports whether exactly the payload matching Type is set.
func (e LogEvent) Valid() bool {
	set := 0
	for _, ok := range []bool{e.Exercise != nil, e.Sleep != nil, e.Water != nil, e.Meditation != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return false
	}
	switch e.Type {
	case EventExercise:
		return e.Exercise != nil
	case EventSleep:
		return e.Sleep != nil
	case EventWater:
		return e.Water != nil
	case EventMeditation:
		return e.Meditation != nil
	}
	return false
}

func formatHours(h float64) string {
	if h == float64(int(h)) {
		return fmt.Sprintf("%d", int(h))
	}
	return fmt.Sprintf("%.1f", h)
}
