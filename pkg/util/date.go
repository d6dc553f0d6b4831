package util

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date layout used on the wire.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date using layout first, then the ISO variants
// browsers and date pickers tend to send. The result is UTC midnight.
func ParseDate(s, layout string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if layout == "" {
		layout = DateLayout
	}
	for _, l := range []string{layout, DateLayout, "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(l, s); err == nil {
			return TruncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q (want %s)", s, layout)
}

// TruncateDay drops the clock part and moves t to UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t with DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
