package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/service"
)

// Dashboard prints today's progress against every goal.
func Dashboard(deps *cli.Deps) {
	view, err := deps.Services.Tracker.Dashboard()
	if err != nil {
		deps.Fail("Failed to load today's record", err, "")
		return
	}
	printDay(deps, view)
}

// ShowDay prints a past (or today's) record without creating it.
func ShowDay(deps *cli.Deps, input string) {
	view, err := deps.Services.Tracker.Day(input)
	if err != nil {
		deps.Fail(fmt.Sprintf("Invalid day '%s'", input), err, "Use YYYY-MM-DD, today, yesterday or 'N days ago'")
		return
	}
	printDay(deps, view)
}

func printDay(deps *cli.Deps, view *service.DayView) {
	title := cli.FormatDate(view.Date)
	if view.IsToday {
		title = "Today, " + title
	}
	_, _ = fmt.Fprintln(deps.Stdout, title)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))

	if !view.Exists {
		_, _ = fmt.Fprintln(deps.Stdout, "Nothing was recorded on this day.")
		return
	}

	for _, m := range view.Metrics {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatMetric(m))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Goals met: %d of %d\n", view.MetCount, len(view.Metrics))

	rec := view.Record
	if len(rec.ExerciseEntries) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, "Exercise:")
		for _, e := range rec.ExerciseEntries {
			_, _ = fmt.Fprintf(deps.Stdout, "  %-20s %s\n", e.Type, cli.FormatDuration(e.DurationMinutes))
		}
	}
	if rec.Sleep != nil {
		_, _ = fmt.Fprintf(deps.Stdout, "\nSleep quality: %d/10\n", rec.Sleep.Quality)
	}
}

// AddWater logs one cup of water.
func AddWater(deps *cli.Deps) {
	e, err := deps.Services.Tracker.AddWater()
	if err != nil {
		if errors.Is(err, service.ErrWaterGoalReached) {
			deps.Fail("Daily water goal already reached", nil, "Raise goals.water in the config file to track more cups")
			return
		}
		failMutation(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s\n", e.Description)
}

// SetSleep records last night's sleep from raw hours and quality arguments.
func SetSleep(deps *cli.Deps, hoursArg, qualityArg string) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(hoursArg), 64)
	if err != nil {
		deps.Fail(fmt.Sprintf("Invalid hours '%s'", hoursArg), nil, "Hours must be a number, e.g. 7.5")
		return
	}
	quality, err := strconv.Atoi(strings.TrimSpace(qualityArg))
	if err != nil {
		deps.Fail(fmt.Sprintf("Invalid quality '%s'", qualityArg), nil, "Quality must be a whole number from 1 to 10")
		return
	}

	e, err := deps.Services.Tracker.SetSleep(hours, quality)
	if err != nil {
		failMutation(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s\n", e.Description)
}

// AddExercise logs an exercise session.
func AddExercise(deps *cli.Deps, exerciseType, minutesArg string) {
	minutes, err := strconv.Atoi(strings.TrimSpace(minutesArg))
	if err != nil {
		deps.Fail(fmt.Sprintf("Invalid minutes '%s'", minutesArg), nil, "Minutes must be a whole number, e.g. 30")
		return
	}

	e, err := deps.Services.Tracker.AddExercise(exerciseType, minutes)
	if err != nil {
		failMutation(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s\n", e.Description)
}

// AddMeditation logs meditation minutes.
func AddMeditation(deps *cli.Deps, minutesArg string) {
	minutes, err := strconv.Atoi(strings.TrimSpace(minutesArg))
	if err != nil {
		deps.Fail(fmt.Sprintf("Invalid minutes '%s'", minutesArg), nil, "Minutes must be a whole number, e.g. 10")
		return
	}

	e, err := deps.Services.Tracker.AddMeditation(minutes)
	if err != nil {
		failMutation(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s\n", e.Description)
}

// failMutation reports a rejected or failed mutation. Validation errors get
// a hint instead of raw details.
func failMutation(deps *cli.Deps, err error) {
	if !errors.Is(err, service.ErrInvalidInput) {
		deps.Fail("Failed to save", err, "Run 'well validate' to check the storage files")
		return
	}

	msg := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
	hint := ""
	switch {
	case errors.Is(err, service.ErrEmptyExerciseType):
		hint = "Name the activity, e.g. 'well exercise running 30'"
	case errors.Is(err, service.ErrInvalidDuration):
		hint = "Use a whole number of minutes greater than 0, e.g. 30"
	case errors.Is(err, service.ErrInvalidSleepHours):
		hint = "Hours must be greater than 0, e.g. 7.5"
	case errors.Is(err, service.ErrInvalidSleepQuality):
		hint = "Rate quality from 1 (poor) to 10 (excellent)"
	}
	deps.Fail(msg, nil, hint)
}
