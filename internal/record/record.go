// Package record defines the per-day wellness record and the events emitted
// when it changes.
package record

// DateLayout is the layout of the record key (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

// ExerciseEntry is one logged exercise session. Entries are immutable once
// appended to a record.
type ExerciseEntry struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Sleep is the sleep sub-record. It is always replaced as a whole.
type Sleep struct {
	Hours   float64 `json:"hours"`
	Quality int     `json:"quality"`
}

// DailyRecord aggregates everything logged for one calendar date.
//
// Records are values: the With* helpers return a new record and never share
// the exercise slice with the receiver, so a record handed out by a store can
// be kept and compared after later mutations.
type DailyRecord struct {
	Date              string          `json:"date"`
	ExerciseEntries   []ExerciseEntry `json:"exercise_entries"`
	Sleep             *Sleep          `json:"sleep,omitempty"`
	WaterCups         int             `json:"water_cups"`
	MeditationMinutes int             `json:"meditation_minutes"`
}

// New returns the zero-valued record for date.
func New(date string) DailyRecord {
	return DailyRecord{
		Date:            date,
		ExerciseEntries: []ExerciseEntry{},
	}
}

// Clone returns a deep copy of r.
func (r DailyRecord) Clone() DailyRecord {
	c := r
	c.ExerciseEntries = make([]ExerciseEntry, len(r.ExerciseEntries))
	copy(c.ExerciseEntries, r.ExerciseEntries)
	if r.Sleep != nil {
		s := *r.Sleep
		c.Sleep = &s
	}
	return c
}

// WithExercise returns a copy of r with e appended.
func (r DailyRecord) WithExercise(e ExerciseEntry) DailyRecord {
	c := r.Clone()
	c.ExerciseEntries = append(c.ExerciseEntries, e)
	return c
}

// WithSleep returns a copy of r whose sleep sub-record is s.
func (r DailyRecord) WithSleep(s Sleep) DailyRecord {
	c := r.Clone()
	c.Sleep = &s
	return c
}

// WithWaterCup returns a copy of r with one more cup.
func (r DailyRecord) WithWaterCup() DailyRecord {
	c := r.Clone()
	c.WaterCups++
	return c
}

// WithMeditation returns a copy of r with minutes added.
func (r DailyRecord) WithMeditation(minutes int) DailyRecord {
	c := r.Clone()
	c.MeditationMinutes += minutes
	return c
}

// ExerciseTotal sums the durations of all exercise entries.
func (r DailyRecord) ExerciseTotal() int {
	total := 0
	for _, e := range r.ExerciseEntries {
		total += e.DurationMinutes
	}
	return total
}

// SleepHours returns the logged sleep hours, or 0 when unset.
func (r DailyRecord) SleepHours() float64 {
	if r.Sleep == nil {
		return 0
	}
	return r.Sleep.Hours
}

// SleepQuality returns the logged sleep quality, or 0 when unset.
func (r DailyRecord) SleepQuality() int {
	if r.Sleep == nil {
		return 0
	}
	return r.Sleep.Quality
}

// IsEmpty reports whether nothing has been logged on r.
func (r DailyRecord) IsEmpty() bool {
	return len(r.ExerciseEntries) == 0 && r.Sleep == nil && r.WaterCups == 0 && r.MeditationMinutes == 0
}
