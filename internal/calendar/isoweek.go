// Package calendar turns raw bookings into the week-grid view clients
// render. Bookings are week-granular: the bookable unit is one ISO
// calendar week, identified by its Monday.
package calendar

import "time"

// WeekStart returns the Monday of t's ISO week as a date-only UTC value.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // ISO weekday: Sunday is 7, not 0
	}
	return time.Date(t.Year(), t.Month(), t.Day()-wd+1, 0, 0, 0, 0, time.UTC)
}

// ISOWeekDate returns the Monday of the given ISO (year, week). It
// relies on January 4 always falling in week 1 of its ISO year.
func ISOWeekDate(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	return WeekStart(jan4).AddDate(0, 0, (week-1)*7)
}

// ValidISOWeek reports whether (year, week) names a week that exists in
// the ISO calendar. Week 53 exists only in long years; asking for
// 2024-W53 would otherwise normalize to 2025-W01 and book a different
// week than the client named.
func ValidISOWeek(year, week int) bool {
	if week < 1 || week > 53 {
		return false
	}
	y, w := ISOWeekDate(year, week).ISOWeek()
	return y == year && w == week
}

// WindowStart returns the first Monday of the calendar window at the
// given offset: the Monday of now's ISO week advanced by
// offset*numWeeks weeks. Offsets may be negative.
func WindowStart(now time.Time, offset, numWeeks int) time.Time {
	return WeekStart(now).AddDate(0, 0, offset*numWeeks*7)
}
