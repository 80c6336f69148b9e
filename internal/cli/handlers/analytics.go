package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/service"
	"github.com/xolan/well/internal/stats"
)

func loadSeries(deps *cli.Deps, windowArg string) (*service.SeriesResult, bool) {
	w, err := stats.ParseWindow(strings.TrimSpace(windowArg))
	if err != nil {
		deps.Fail(fmt.Sprintf("Invalid window '%s'", windowArg), nil, "Use 7, 30 or 365 (or week, month, year)")
		return nil, false
	}

	res, err := deps.Services.Analytics.Series(w)
	if err != nil {
		deps.Fail("Failed to build series", err, "")
		return nil, false
	}
	return res, true
}

// Series prints one row per day of the window, oldest first.
func Series(deps *cli.Deps, windowArg string) {
	res, ok := loadSeries(deps, windowArg)
	if !ok {
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Series for the %s (%s)\n", res.Window, cli.FormatDateRangeForDisplay(res.Start, res.End))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout, cli.SeriesHeader())
	for _, p := range res.Points {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatPoint(p))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "%d of %d %s with data\n",
		res.Summary.DaysWithData, res.Summary.Days, cli.Pluralize("day", res.Summary.Days))
}

// Stats prints the averages and totals of the window.
func Stats(deps *cli.Deps, windowArg string) {
	res, ok := loadSeries(deps, windowArg)
	if !ok {
		return
	}
	s := res.Summary
	goals := deps.Services.Tracker.Goals()

	_, _ = fmt.Fprintf(deps.Stdout, "Statistics for the %s (%s)\n", res.Window, cli.FormatDateRangeForDisplay(res.Start, res.End))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Days with data:      %d of %d\n", s.DaysWithData, s.Days)
	_, _ = fmt.Fprintf(deps.Stdout, "Average water:       %.1f cups/day (goal %s)\n", s.AvgWater, cli.FormatNumber(goals.Water))
	_, _ = fmt.Fprintf(deps.Stdout, "Average sleep:       %.1f hours/night (goal %s)\n", s.AvgSleep, cli.FormatNumber(goals.Sleep))
	if s.AvgSleepQuality > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Average sleep score: %.1f/10\n", s.AvgSleepQuality)
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Average sleep score: -")
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Total exercise:      %s\n", cli.FormatDuration(s.TotalExercise))
	_, _ = fmt.Fprintf(deps.Stdout, "Total meditation:    %s\n", cli.FormatDuration(s.TotalMeditation))
}
