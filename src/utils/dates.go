package utils

import (
	"fmt"
	"time"
)

// TruncateToDate drops the clock part, keeping the calendar date in t's location.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from -> to. Negative when to is earlier.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// ParseDate parses YYYY-MM-DD. An empty string yields the zero time.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(ShortDashDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s", value, ShortDashDateLayout)
	}
	return d, nil
}
