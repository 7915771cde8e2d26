package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = time.DateOnly

// DefaultTimezone decides what "today" means when none is configured.
const DefaultTimezone = "Asia/Seoul"

// LoadLocation resolves name, falling back to a fixed +09:00 zone when the
// host has no tz database.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, 9*60*60)
	}
	return loc
}

// DateOf returns the calendar date of t as seen in loc, as midnight UTC.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// civil drops any time of day from a stored calendar date without shifting
// it through a zone.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil counts whole calendar days from today (in loc) to target.
// Negative when target has passed.
func DaysUntil(target, now time.Time, loc *time.Location) int {
	diff := civil(target).Sub(DateOf(now, loc))
	return int(diff.Hours() / 24)
}

// AddDays moves a calendar date by n days.
func AddDays(date time.Time, n int) time.Time {
	return civil(date).AddDate(0, 0, n)
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return civil(t).Format(DateLayout)
}
