package dateutil

import (
	"time"
)

// ISODate is the YYYY-MM-DD layout used by deadlines.
const ISODate = "2006-01-02"

// LongDate renders dates as "02 January 2006" for citations.
const LongDate = "02 January 2006"

// DaysBetween counts calendar days from one date to another, ignoring the
// time of day. It is negative when to is before from.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// ParseISO parses a YYYY-MM-DD date in UTC.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(ISODate, s)
}

// FormatLong renders t in the long citation format.
func FormatLong(t time.Time) string {
	return t.Format(LongDate)
}

// InRange reports whether t falls on or between start and end, by calendar day.
// A zero start or end leaves that side open.
func InRange(t, start, end time.Time) bool {
	if !start.IsZero() && DaysBetween(start, t) < 0 {
		return false
	}
	if !end.IsZero() && DaysBetween(t, end) < 0 {
		return false
	}
	return true
}

