package timeutil

import (
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current date in loc, or UTC when loc is nil.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(now.In(loc))
}

// NormalizeDate returns value when it parses as a date, otherwise today's date in loc.
func NormalizeDate(value string, now time.Time, loc *time.Location) string {
	if value != "" {
		if _, err := ParseDate(value); err == nil {
			return value
		}
	}
	return Today(now, loc)
}

// ResolveLocation loads the IANA zone name, returning fallback when it is empty or unknown.
func ResolveLocation(name string, fallback *time.Location) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
