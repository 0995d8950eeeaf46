package dates

import (
	"strconv"
	"strings"
	"time"
)

// Layout constants for the two date formats the dashboard accepts.
const (
	ISOLayout     = "2006-01-02" // storage format
	DisplayLayout = "02/01/2006" // UI format
)

// Parse parses an ISO (YYYY-MM-DD) or DD/MM/YYYY date string.
// PRE: none
// POST: Returns the date at UTC midnight and true, or the zero time and false
// if the string is empty or unparseable. Never panics.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(ISOLayout, s, time.UTC); err == nil {
		return t, true
	}
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) == 3 {
			day, errD := strconv.Atoi(parts[0])
			month, errM := strconv.Atoi(parts[1])
			year, errY := strconv.Atoi(parts[2])
			if errD == nil && errM == nil && errY == nil {
				t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
				// time.Date normalises out-of-range components; reject those
				if t.Year() == year && t.Month() == time.Month(month) && t.Day() == day {
					return t, true
				}
			}
		}
	}
	return time.Time{}, false
}

// FormatISO renders a date as YYYY-MM-DD, or "" for the zero time.
func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(ISOLayout)
}

// FormatDisplay renders a date as DD/MM/YYYY for the UI, or "-" for the zero time.
func FormatDisplay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(DisplayLayout)
}

// AddDays returns the date n calendar days after t.
// PRE: t is a valid (non-zero) date
// POST: Returns t shifted by n days; the zero time passes through unchanged
func AddDays(t time.Time, n int) time.Time {
	if t.IsZero() {
		return t
	}
	return t.AddDate(0, 0, n)
}

// DiffDays returns the calendar-day difference a - b, ignoring time of day.
// PRE: none
// POST: Returns the signed day count and true, or 0 and false when either
// input is the zero time. Callers must check ok before using the count.
func DiffDays(a, b time.Time) (int, bool) {
	if a.IsZero() || b.IsZero() {
		return 0, false
	}
	return int(truncateUTC(a).Sub(truncateUTC(b)).Hours() / 24), true
}

// TodayUTC returns the current date truncated to UTC midnight. This is the
// single anchor for all expiry comparisons so that day boundaries do not
// depend on the server timezone.
func TodayUTC() time.Time {
	return truncateUTC(time.Now())
}

func truncateUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
