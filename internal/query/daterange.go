package query

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate marks a date or datetime string that could not be
// parsed. It is surfaced to the caller, never silently defaulted.
var ErrInvalidDate = errors.New("invalid date format")

// Lookahead defaults, in days. Search uses a wider window than the
// listing tools so that "find my dentist appointment" works without
// explicit dates.
const (
	DefaultDaysAhead = 7
	SearchDaysAhead  = 30
)

// DateRange is a resolved inclusive instant interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// dateLayouts are the accepted date and datetime shapes, tried in
// order. All are interpreted as wall-clock time in now's location.
var dateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ResolveRange turns optional user-supplied date strings and a
// lookahead count into a concrete [start, end] interval.
//
// An absent start defaults to today at local midnight. An end falling
// on the same calendar day as start, or parsing to exact midnight, is
// pushed to 23:59:59.999999 of that day so the whole day is included.
// An absent end is start plus daysAhead days, again pushed to end of
// day; daysAhead of zero yields a same-day range and a negative value
// yields an empty-but-valid range.
func ResolveRange(startDate, endDate string, daysAhead int, now time.Time) (DateRange, error) {
	loc := now.Location()

	var start time.Time
	if startDate == "" {
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		parsed, err := parseDate(startDate, loc)
		if err != nil {
			return DateRange{}, err
		}
		start = parsed
	}

	var end time.Time
	if endDate == "" {
		end = endOfDay(start.AddDate(0, 0, daysAhead))
	} else {
		parsed, err := parseDate(endDate, loc)
		if err != nil {
			return DateRange{}, err
		}
		if sameDay(parsed, start) || isMidnight(parsed) {
			end = endOfDay(parsed)
		} else {
			end = parsed
		}
	}

	return DateRange{Start: start, End: end}, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	// Offset-carrying input is accepted and re-anchored to local wall
	// clock for range evaluation.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// isMidnight matches the date-only heuristic: hour, minute and second
// all zero. Sub-second precision is deliberately ignored.
func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}

// endOfDay returns 23:59:59.999999 of t's calendar day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999000, t.Location())
}
