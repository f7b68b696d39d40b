package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Layout is the calendar-date wire format used across the booking flow.
const Layout = "2006-01-02"

// Parse parses a YYYY-MM-DD calendar date, normalized to the beginning of
// the day in UTC.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return now.New(t).BeginningOfDay(), nil
}

// Format renders a time as a YYYY-MM-DD calendar date.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// AddDays shifts a YYYY-MM-DD date by n days. Returns an error for
// unparseable input.
func AddDays(s string, n int) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// Nights returns the number of nights between two calendar dates. Zero or
// negative when the range is invalid.
func Nights(arrival, departure string) int {
	a, err := Parse(arrival)
	if err != nil {
		return 0
	}
	d, err := Parse(departure)
	if err != nil {
		return 0
	}
	return int(d.Sub(a).Hours() / 24)
}

// RangeValid reports whether both dates parse and departure is strictly
// after arrival.
func RangeValid(arrival, departure string) bool {
	return Nights(arrival, departure) > 0
}
