package utils

import (
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// DateOnly drops the time-of-day and location of t, keeping its calendar
// date as UTC midnight. All date arithmetic in the core works on values
// normalised this way so DST never shifts a day boundary.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a date-only value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DaysBetween returns the number of calendar days from a to b. It is
// negative when b is before a. The gap is computed from Unix seconds, not
// a time.Duration, so spans longer than ~292 years stay exact.
func DaysBetween(a, b time.Time) int {
	secondsPerDay := int64(constants.Day / time.Second)
	return int((DateOnly(b).Unix() - DateOnly(a).Unix()) / secondsPerDay)
}

// AddDays shifts a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalises to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay returns day, or the last day of the month when the month is
// too short to contain it.
func ClampDay(day, year int, month time.Month) int {
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// MonthsBetween returns the number of whole months elapsed from a to b
// (b >= a). A month counts as elapsed once b reaches a's day of month,
// clamped to the length of b's month, so Jan 31 -> Feb 28 is one month.
// It returns 0 when b is before a.
func MonthsBetween(a, b time.Time) int {
	a, b = DateOnly(a), DateOnly(b)
	if b.Before(a) {
		return 0
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
	if b.Day() < ClampDay(a.Day(), b.Year(), b.Month()) {
		months--
	}
	return months
}
