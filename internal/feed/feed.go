// Package feed projects log events into a filtered, incrementally revealed
// list.
package feed

import (
	"errors"
	"fmt"
	"sort"

	"github.com/xolan/well/internal/record"
)

const (
	// All is the filter value matching every event type.
	All = "all"
	// DefaultReveal is the number of events visible after a filter change.
	DefaultReveal = 20
	// RevealStep is how many more events LoadMore reveals.
	RevealStep = 10
)

// ErrUnknownFilter is returned by SetFilter for values other than All or an
// event type.
var ErrUnknownFilter = errors.New("unknown feed filter")

// Filters lists every accepted filter value in display order.
func Filters() []string {
	out := []string{All}
	for _, t := range record.EventTypes {
		out = append(out, string(t))
	}
	return out
}

// Feed is a read-only view over a snapshot of events, newest first.
type Feed struct {
	events []record.LogEvent
	filter string
	reveal int
}

// New sorts a copy of events newest first. Events with equal timestamps keep
// their reverse insertion order, so the most recently appended comes first.
func New(events []record.LogEvent) *Feed {
	sorted := make([]record.LogEvent, len(events))
	for i, e := range events {
		sorted[len(events)-1-i] = e
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	return &Feed{
		events: sorted,
		filter: All,
		reveal: DefaultReveal,
	}
}

// Filter returns the active filter value.
func (f *Feed) Filter() string {
	return f.filter
}

// Reveal returns the current reveal count.
func (f *Feed) Reveal() int {
	return f.reveal
}

// SetFilter restricts the feed to one event type, or All, and resets the
// reveal count. Unknown values leave the feed unchanged.
func (f *Feed) SetFilter(filter string) error {
	if filter != All {
		if _, ok := record.ParseEventType(filter); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownFilter, filter)
		}
	}
	f.filter = filter
	f.reveal = DefaultReveal
	return nil
}

// LoadMore reveals RevealStep more events.
func (f *Feed) LoadMore() {
	f.reveal += RevealStep
}

// Matches reports whether e passes the active filter.
func (f *Feed) Matches(e record.LogEvent) bool {
	return f.filter == All || string(e.Type) == f.filter
}

// Total returns the number of events passing the filter.
func (f *Feed) Total() int {
	n := 0
	for _, e := range f.events {
		if f.Matches(e) {
			n++
		}
	}
	return n
}

// Visible returns up to Reveal() matching events. The returned slice is a
// copy.
func (f *Feed) Visible() []record.LogEvent {
	out := make([]record.LogEvent, 0, min(f.reveal, len(f.events)))
	for _, e := range f.events {
		if len(out) == f.reveal {
			break
		}
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// HasMore reports whether LoadMore would reveal additional events.
func (f *Feed) HasMore() bool {
	return f.Total() > f.reveal
}
