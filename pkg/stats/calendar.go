package stats

import "time"

const secondsPerDay = 24 * 60 * 60

// StartOfDay returns midnight of the calendar day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns midnight of the Monday that begins the week containing t.
// Weeks run Monday through Sunday, so a Sunday maps to the Monday six days
// earlier. t is interpreted in its own location.
func WeekStart(t time.Time) time.Time {
	// Weekday: 0 = Sunday ... 6 = Saturday
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// ThisWeekStart is WeekStart for the current time.
func ThisWeekStart() time.Time {
	return WeekStart(time.Now())
}

// WeekEnd returns the last instant of the Sunday that ends the week containing t.
func WeekEnd(t time.Time) time.Time {
	start := WeekStart(t)
	y, m, d := start.Date()
	return time.Date(y, m, d+6, 23, 59, 59, 999999999, start.Location())
}

// DaysBetween returns the number of calendar days from b to a. It is
// positive when a falls on a later day than b. Only the calendar dates take
// part, so daylight-saving shifts never produce partial days.
func DaysBetween(a, b time.Time) int {
	return dayNumber(a) - dayNumber(b)
}

// dayNumber maps the calendar date of t onto a day count since the Unix epoch.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}
