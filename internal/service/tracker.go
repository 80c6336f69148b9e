package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xolan/well/internal/config"
	"github.com/xolan/well/internal/logging"
	"github.com/xolan/well/internal/progress"
	"github.com/xolan/well/internal/record"
	"github.com/xolan/well/internal/storage"
	"github.com/xolan/well/internal/timeutil"
)

// Validation errors. Each wraps ErrInvalidInput; none of them mutates state.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrEmptyExerciseType   = fmt.Errorf("%w: exercise type cannot be empty", ErrInvalidInput)
	ErrInvalidDuration     = fmt.Errorf("%w: duration must be greater than 0 minutes", ErrInvalidInput)
	ErrInvalidSleepHours   = fmt.Errorf("%w: sleep hours must be greater than 0", ErrInvalidInput)
	ErrInvalidSleepQuality = fmt.Errorf("%w: sleep quality must be between 1 and 10", ErrInvalidInput)
	ErrWaterGoalReached    = fmt.Errorf("%w: daily water goal already reached", ErrInvalidInput)
)

// Listener is notified after every successful mutation.
type Listener func(record.LogEvent)

// TrackerOption customises a TrackerService.
type TrackerOption func(*TrackerService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TrackerOption {
	return func(s *TrackerService) { s.now = now }
}

// WithIDGenerator replaces the exercise entry ID generator.
func WithIDGenerator(newID func() string) TrackerOption {
	return func(s *TrackerService) { s.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) TrackerOption {
	return func(s *TrackerService) { s.log = log }
}

// TrackerService is the tracking session. It owns the store, goals, clock
// and ID generator, and it is the only writer of records. Every mutator
// targets today's record.
type TrackerService struct {
	mu        sync.Mutex
	store     storage.Store
	goals     record.GoalSet
	loc       *time.Location
	now       func() time.Time
	newID     func() string
	log       *logrus.Entry
	listeners []Listener
}

// NewTrackerService creates a session over store using cfg's goals and timezone.
func NewTrackerService(store storage.Store, cfg config.Config, opts ...TrackerOption) *TrackerService {
	s := &TrackerService{
		store: store,
		goals: cfg.Goals,
		loc:   cfg.Location(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.Component(logging.Discard(), "tracker")
	}
	return s
}

// Goals returns the read-only goal set.
func (s *TrackerService) Goals() record.GoalSet {
	return s.goals
}

// Location returns the timezone used to resolve today.
func (s *TrackerService) Location() *time.Location {
	return s.loc
}

// Now returns the session clock's current time in its timezone.
func (s *TrackerService) Now() time.Time {
	return s.now().In(s.loc)
}

// Today returns today's date key.
func (s *TrackerService) Today() string {
	return timeutil.TodayKey(s.now(), s.loc)
}

// TodayRecord returns today's record, creating it on first access.
func (s *TrackerService) TodayRecord() (record.DailyRecord, error) {
	return s.store.GetOrCreate(s.Today())
}

// Record returns the record for date without creating it.
func (s *TrackerService) Record(date string) (record.DailyRecord, bool, error) {
	return s.store.Get(date)
}

// Progress returns today's progress against goals.
func (s *TrackerService) Progress() ([]progress.Metric, error) {
	rec, err := s.TodayRecord()
	if err != nil {
		return nil, err
	}
	return progress.ForRecord(rec, s.goals), nil
}

// Dashboard returns today's record with its progress.
func (s *TrackerService) Dashboard() (*DayView, error) {
	rec, err := s.TodayRecord()
	if err != nil {
		return nil, err
	}
	return s.view(rec, true), nil
}

// Day resolves input (YYYY-MM-DD, DD/MM/YYYY, today, yesterday, N days ago)
// and returns that day's record read-only. Days without a record get an
// empty one that is not stored.
func (s *TrackerService) Day(input string) (*DayView, error) {
	day, err := timeutil.ParseDay(input, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	date := timeutil.DateKey(day)

	rec, ok, err := s.store.Get(date)
	if err != nil {
		return nil, err
	}
	if !ok {
		rec = record.New(date)
	}
	v := s.view(rec, date == s.Today())
	v.Exists = ok
	return v, nil
}

func (s *TrackerService) view(rec record.DailyRecord, isToday bool) *DayView {
	metrics := progress.ForRecord(rec, s.goals)
	return &DayView{
		Date:     rec.Date,
		Record:   rec,
		Metrics:  metrics,
		MetCount: progress.MetCount(metrics),
		IsToday:  isToday,
		Exists:   true,
	}
}

// Subscribe registers l for every future mutation event.
func (s *TrackerService) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// AddExercise appends an exercise entry to today's record.
func (s *TrackerService) AddExercise(exerciseType string, minutes int) (record.LogEvent, error) {
	exerciseType = strings.TrimSpace(exerciseType)
	if exerciseType == "" {
		return record.LogEvent{}, ErrEmptyExerciseType
	}
	if minutes <= 0 {
		return record.LogEvent{}, ErrInvalidDuration
	}

	return s.apply(func(rec record.DailyRecord, at time.Time) (record.DailyRecord, record.LogEvent, error) {
		entry := record.ExerciseEntry{
			ID:              s.newID(),
			Type:            exerciseType,
			DurationMinutes: minutes,
		}
		return rec.WithExercise(entry), record.NewExerciseEvent(rec.Date, at, entry), nil
	})
}

// SetSleep replaces today's sleep sub-record.
func (s *TrackerService) SetSleep(hours float64, quality int) (record.LogEvent, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return record.LogEvent{}, ErrInvalidSleepHours
	}
	if quality < 1 || quality > 10 {
		return record.LogEvent{}, ErrInvalidSleepQuality
	}

	return s.apply(func(rec record.DailyRecord, at time.Time) (record.DailyRecord, record.LogEvent, error) {
		sleep := record.Sleep{Hours: hours, Quality: quality}
		return rec.WithSleep(sleep), record.NewSleepEvent(rec.Date, at, sleep), nil
	})
}

// AddWater adds one cup to today's record. Once the count reaches the water
// goal further cups are refused with ErrWaterGoalReached.
func (s *TrackerService) AddWater() (record.LogEvent, error) {
	return s.apply(func(rec record.DailyRecord, at time.Time) (record.DailyRecord, record.LogEvent, error) {
		if float64(rec.WaterCups) >= s.goals.Water {
			return rec, record.LogEvent{}, ErrWaterGoalReached
		}
		next := rec.WithWaterCup()
		return next, record.NewWaterEvent(rec.Date, at, next.WaterCups), nil
	})
}

// AddMeditation adds minutes to today's meditation total.
func (s *TrackerService) AddMeditation(minutes int) (record.LogEvent, error) {
	if minutes <= 0 {
		return record.LogEvent{}, ErrInvalidDuration
	}

	return s.apply(func(rec record.DailyRecord, at time.Time) (record.DailyRecord, record.LogEvent, error) {
		next := rec.WithMeditation(minutes)
		return next, record.NewMeditationEvent(rec.Date, at, minutes, next.MeditationMinutes), nil
	})
}

type mutation func(rec record.DailyRecord, at time.Time) (record.DailyRecord, record.LogEvent, error)

// apply runs one mutation against today's record: get-or-create, derive the
// next record and its event, store both, then notify listeners. A failed
// event append puts the previous record back, so a failed call changes
// nothing.
func (s *TrackerService) apply(m mutation) (record.LogEvent, error) {
	s.mu.Lock()

	rec, err := s.store.GetOrCreate(s.Today())
	if err != nil {
		s.mu.Unlock()
		return record.LogEvent{}, fmt.Errorf("failed to load today's record: %w", err)
	}

	next, event, err := m(rec, s.now())
	if err != nil {
		s.mu.Unlock()
		return record.LogEvent{}, err
	}

	if err := s.store.Put(next); err != nil {
		s.mu.Unlock()
		return record.LogEvent{}, fmt.Errorf("failed to save record: %w", err)
	}
	if err := s.store.AppendEvent(event); err != nil {
		err = fmt.Errorf("failed to save event: %w", err)
		if rbErr := s.store.Put(rec); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to roll back record: %w", rbErr))
		}
		s.mu.Unlock()
		return record.LogEvent{}, err
	}

	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"date": event.Date,
		"type": event.Type,
	}).Debug(event.Description)

	for _, l := range listeners {
		l(event)
	}
	return event, nil
}
