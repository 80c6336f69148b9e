package service

import (
	"fmt"

	"github.com/xolan/well/internal/feed"
	"github.com/xolan/well/internal/storage"
)

// LogService projects the stored event log into a feed.
type LogService struct {
	store storage.Store
}

// NewLogService creates a new LogService
func NewLogService(store storage.Store) *LogService {
	return &LogService{store: store}
}

// Feed returns a fresh newest-first feed over every stored event, filtered
// by filter ("" or feed.All for everything).
func (s *LogService) Feed(filter string) (*feed.Feed, error) {
	events, err := s.store.Events()
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	f := feed.New(events)
	if filter != "" {
		if err := f.SetFilter(filter); err != nil {
			return nil, err
		}
	}
	return f, nil
}
