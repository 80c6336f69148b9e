package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	daysAgoRe       = regexp.MustCompile(`^(\d+)\sdays?\sago$`)
	isoPartialRe    = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	yearOnlyRe      = regexp.MustCompile(`^\d{4}$`)
	isoPartialDayRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)
	tooManyPartsRe  = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`)
)

// ParseDay resolves a day expression relative to now in loc and returns
// midnight of that day.
//
// Valid inputs:
//   - "2026-01-15" (ISO format)
//   - "15/01/2026" (European format)
//   - "today", "yesterday"
//   - "3 days ago", "1 day ago"
func ParseDay(input string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD, e.g., 2026-01-15)")
	}

	today := StartOfDay(now.In(loc))
	switch input {
	case "today":
		return today, nil
	case "yesterday":
		return DaysBack(today, 1), nil
	}

	if m := daysAgoRe.FindStringSubmatch(input); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid number in relative date: %s", m[1])
		}
		return DaysBack(today, n), nil
	}

	if t, err := time.ParseInLocation("2006-01-02", input, loc); err == nil {
		return StartOfDay(t), nil
	}
	if t, err := time.ParseInLocation("02/01/2006", input, loc); err == nil {
		return StartOfDay(t), nil
	}

	return time.Time{}, buildDateParseError(input)
}

// buildDateParseError creates a helpful error message based on the input pattern
func buildDateParseError(input string) error {
	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case isoPartialDayRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD, e.g., 2026-%s)", input, input)
	case tooManyPartsRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD)", input)
	default:
		return fmt.Errorf("invalid date '%s' (use YYYY-MM-DD, DD/MM/YYYY, today, yesterday or 'N days ago')", input)
	}
}
