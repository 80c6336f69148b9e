package service

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/xolan/well/internal/logging"
	"github.com/xolan/well/internal/record"
	"github.com/xolan/well/internal/stats"
	"github.com/xolan/well/internal/storage"
)

// AnalyticsService builds windowed series. Results are cached per day and
// window until the tracker reports a mutation.
type AnalyticsService struct {
	store   storage.Store
	tracker *TrackerService
	cache   *cache.Cache
	log     *logrus.Entry
}

// NewAnalyticsService creates an AnalyticsService and subscribes it to
// tracker so cached series never outlive a mutation.
func NewAnalyticsService(store storage.Store, tracker *TrackerService, log *logrus.Entry) *AnalyticsService {
	if log == nil {
		log = logging.Component(logging.Discard(), "analytics")
	}
	s := &AnalyticsService{
		store:   store,
		tracker: tracker,
		cache:   cache.New(10*time.Minute, 30*time.Minute),
		log:     log,
	}
	tracker.Subscribe(func(record.LogEvent) { s.Invalidate() })
	return s
}

func cacheKey(today string, w stats.Window) string {
	return fmt.Sprintf("%s/%d", today, int(w))
}

// Series returns the series for w ending today, plus its summary.
func (s *AnalyticsService) Series(w stats.Window) (*SeriesResult, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("invalid window %d (use 7, 30 or 365)", int(w))
	}

	today := s.tracker.Today()
	key := cacheKey(today, w)
	if cached, found := s.cache.Get(key); found {
		return copyResult(cached.(*SeriesResult)), nil
	}

	records, err := s.store.Records()
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	points := stats.BuildSeries(records, s.tracker.Now(), w)
	result := &SeriesResult{
		Window:  w,
		Points:  points,
		Summary: stats.Summarize(points),
		Start:   points[0].Date,
		End:     points[len(points)-1].Date,
	}

	s.cache.Set(key, result, cache.DefaultExpiration)
	s.log.WithFields(logrus.Fields{"window": int(w), "records": len(records)}).Debug("built series")
	return copyResult(result), nil
}

// Summary returns only the reduction of the series for w.
func (s *AnalyticsService) Summary(w stats.Window) (stats.Summary, error) {
	result, err := s.Series(w)
	if err != nil {
		return stats.Summary{}, err
	}
	return result.Summary, nil
}

// Invalidate drops every cached series.
func (s *AnalyticsService) Invalidate() {
	s.cache.Flush()
}

func copyResult(r *SeriesResult) *SeriesResult {
	c := *r
	c.Points = make([]stats.Point, len(r.Points))
	copy(c.Points, r.Points)
	return &c
}
