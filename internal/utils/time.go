package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
)

// Now returns the current local time. Tests replace it to freeze the clock.
var Now = time.Now

// ToDateKey returns the calendar date of t (YYYY-MM-DD) in t's own location.
// The time is never converted to UTC first, so 23:30 local stays on the same day.
func ToDateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// IsToday reports whether t falls on the current local calendar day.
func IsToday(t time.Time) bool {
	return ToDateKey(t) == ToDateKey(Now())
}

// TodayKey returns the date key for the current local day.
func TodayKey() string {
	return ToDateKey(Now())
}

// ParseDateKey parses a date key (YYYY-MM-DD) as midnight in the specified location.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", key, err)
	}
	return t, nil
}

// ValidateDateKey checks if the string is a well-formed date key.
func ValidateDateKey(key string) bool {
	_, err := time.Parse(constants.DateFormat, key)
	return err == nil
}

// StartOfDay floors t to 00:00:00.000 on its calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay ceils t to 23:59:59.999 on its calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// AddDays moves t by n calendar days, keeping the wall clock.
// Uses time.Date so DST transitions never skip or repeat a day.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysInMonth returns the number of calendar days in the given month (28-31).
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstOfMonth returns midnight on the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
