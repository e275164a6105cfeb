package domain

import (
	"strings"
	"time"
)

// Period names a feed time window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// DateLayout is the calendar-date format the feed expects for starttime.
const DateLayout = "2006-01-02"

// ParsePeriod normalizes a period name. It never fails: unknown names are
// kept as-is and resolve to the current date (see StartDate).
func ParsePeriod(s string) Period {
	return Period(strings.ToLower(strings.TrimSpace(s)))
}

// ResolveStart returns the start date for period relative to the package clock.
func ResolveStart(period Period) string {
	return StartDate(clock.Now(), period)
}

// StartDate returns now minus the period as a UTC calendar date.
// Month arithmetic uses AddDate normalization, so March 31 minus one month
// lands on March 2 (or 3) rather than clamping to February.
// An unrecognized period returns the date of now unchanged.
func StartDate(now time.Time, period Period) string {
	t := now.UTC()
	switch period {
	case PeriodDay:
		t = t.AddDate(0, 0, -1)
	case PeriodWeek:
		t = t.AddDate(0, 0, -7)
	case PeriodMonth:
		t = t.AddDate(0, -1, 0)
	}
	return t.Format(DateLayout)
}
