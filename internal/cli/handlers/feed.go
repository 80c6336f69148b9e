package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/feed"
)

// Log prints the activity feed, newest first. more reveals that many extra
// pages beyond the default.
func Log(deps *cli.Deps, filter string, more int) {
	filter = strings.ToLower(strings.TrimSpace(filter))

	f, err := deps.Services.Log.Feed(filter)
	if err != nil {
		if errors.Is(err, feed.ErrUnknownFilter) {
			deps.Fail(fmt.Sprintf("Unknown type '%s'", filter), nil, "Valid types: "+strings.Join(feed.Filters(), ", "))
			return
		}
		deps.Fail("Failed to read the activity log", err, "Run 'well validate' to check the storage files")
		return
	}
	for i := 0; i < more; i++ {
		f.LoadMore()
	}

	if f.Total() == 0 {
		if f.Filter() == feed.All {
			_, _ = fmt.Fprintln(deps.Stdout, "No activity logged yet")
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "No %s activity logged yet\n", f.Filter())
		}
		return
	}

	now := deps.Services.Tracker.Now()
	visible := f.Visible()
	for _, e := range visible {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatEvent(e, now))
	}

	if f.HasMore() {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintf(deps.Stdout, "Showing %d of %d %s. Use --more to see older activity.\n",
			len(visible), f.Total(), cli.Pluralize("event", f.Total()))
	}
}
