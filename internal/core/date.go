// Package core holds the transaction domain model and the display-date
// codec shared by every pipeline stage.
//
// Dates travel through the system as DD.MM.YY strings (two-digit year,
// interpreted as 2000+YY). The codec never panics on malformed input:
// formatting a zero time yields "", parsing a malformed string yields a
// zero time, so sorting and range checks stay total.
package core

import (
	"strconv"
	"strings"
	"time"
)

// displayLayout is the canonical DD.MM.YY form.
const displayLayout = "02.01.06"

// FormatDisplayDate renders a calendar date in DD.MM.YY form.
// Returns "" for the zero time.
func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayLayout)
}

// ParseDisplayDate parses a DD.MM.YY string into a UTC date. The second
// return value is false for anything that is not exactly three
// dot-separated numeric components; callers treat that as the minimum
// sortable value rather than an error.
func ParseDisplayDate(s string) (time.Time, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 0 || year > 99 {
		return time.Time{}, false
	}
	return time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// SortKey returns a value that orders display dates chronologically.
// Malformed dates map to 0 and therefore sort before every real date.
func SortKey(display string) int64 {
	t, ok := ParseDisplayDate(display)
	if !ok {
		return 0
	}
	return t.Unix()
}

// DateInRange reports whether a display date falls inside [start, end],
// inclusive. A zero bound leaves that side unconstrained. Malformed
// display dates are never in range.
func DateInRange(display string, start, end time.Time) bool {
	t, ok := ParseDisplayDate(display)
	if !ok {
		return false
	}
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && t.After(end) {
		return false
	}
	return true
}
