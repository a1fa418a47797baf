// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

const (
	// DateLayout is the ISO calendar date format used by every calculator input.
	DateLayout = constants.DateLayout

	hoursPerDay = 24
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a YYYY-MM-DD date. Surrounding whitespace is ignored and an
// ISO timestamp is truncated to its date part.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(trimmed) > len(DateLayout) && trimmed[len(DateLayout)] == 'T' {
		trimmed = trimmed[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// Today returns the current local calendar date as a UTC midnight.
func Today() time.Time {
	return Date(time.Now())
}

// Date drops the clock part of t keeping its calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from start to end. The result
// is negative when end is before start.
func DaysBetween(start, end time.Time) int {
	return int(Date(end).Sub(Date(start)).Hours() / hoursPerDay)
}

// YearStart returns January 1st of the year of t.
func YearStart(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// YearEnd returns December 31st of the year of t.
func YearEnd(t time.Time) time.Time {
	return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}

// SemesterOf returns 1 for January-June and 2 for July-December.
func SemesterOf(t time.Time) int {
	if t.Month() <= time.June {
		return 1
	}
	return 2
}

// SemesterBounds returns the first and last calendar day of a semester.
func SemesterBounds(year, semester int) (time.Time, time.Time, error) {
	switch semester {
	case 1:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, time.June, 30, 0, 0, 0, 0, time.UTC), nil
	case 2:
		return time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("semester must be 1 or 2, got %d", semester)
	}
}

// Later returns the later of two dates.
func Later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// Earlier returns the earlier of two dates.
func Earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// YearsBetween returns the years elapsed from start to end. Whole months are
// counted on the calendar and the remaining days as a fraction of the month
// that follows, so anniversaries land on whole numbers regardless of leap
// years.
func YearsBetween(start, end time.Time) float64 {
	start, end = Date(start), Date(end)
	if !end.After(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	for months > 0 && start.AddDate(0, months, 0).After(end) {
		months--
	}
	anchor := start.AddDate(0, months, 0)
	next := start.AddDate(0, months+1, 0)
	fraction := float64(DaysBetween(anchor, end)) / float64(DaysBetween(anchor, next))
	return (float64(months) + fraction) / 12
}
