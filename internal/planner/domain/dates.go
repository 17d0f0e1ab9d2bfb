package domain

import "time"

// All calendar math in the planner goes through these helpers. Dates are
// pinned to local noon so that adding days, weeks or months never crosses a
// midnight DST boundary and lands on the wrong calendar day.

// NormalizeToNoon returns the calendar day of t at 12:00:00 local time.
func NormalizeToNoon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local)
}

// DaysInMonth returns the number of days of the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.Local).Day()
}

// AddMonthsClamped advances t by the given number of calendar months,
// clamping the day-of-month to the last valid day of the target month.
// A Jan 31 anchor therefore yields Feb 28 (or 29) and the occurrence does
// not spill over into March.
func AddMonthsClamped(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/12
	monthIdx := total % 12
	if monthIdx < 0 {
		monthIdx += 12
		year--
	}
	month := time.Month(monthIdx + 1)

	day := t.Day()
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
}

// AddYearsClamped advances t by whole years, clamping Feb 29 anchors to
// Feb 28 in non-leap years.
func AddYearsClamped(t time.Time, years int) time.Time {
	return AddMonthsClamped(t, years*12)
}

// AddDays advances t by whole days, keeping the result at local noon.
func AddDays(t time.Time, days int) time.Time {
	return NormalizeToNoon(t.AddDate(0, 0, days))
}

// SameCalendarDay reports whether a and b fall on the same calendar date,
// ignoring the time of day.
func SameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// StartOfMonth returns the first day of t's month at local noon.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 12, 0, 0, 0, time.Local)
}

// EndOfMonth returns the last day of t's month at local noon.
func EndOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), DaysInMonth(t.Year(), t.Month()), 12, 0, 0, 0, time.Local)
}

// DayKey formats t as its calendar date only, used to deduplicate
// occurrences by exact day.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
