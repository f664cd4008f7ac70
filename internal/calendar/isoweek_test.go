package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2024, time.March, 4), date(2024, time.March, 4)},
		{"wednesday maps back to monday", date(2024, time.March, 6), date(2024, time.March, 4)},
		{"sunday belongs to the preceding monday", date(2024, time.March, 10), date(2024, time.March, 4)},
		{"time of day is stripped", time.Date(2024, time.March, 7, 23, 59, 59, 0, time.UTC), date(2024, time.March, 4)},
		{"year boundary midweek", date(2025, time.January, 1), date(2024, time.December, 30)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeekStart(tc.in))
		})
	}
}

func TestWeekStart_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 2024-03-04 08:00 +09:00 is 2024-03-03 23:00 UTC, a Sunday.
	in := time.Date(2024, time.March, 4, 8, 0, 0, 0, loc)
	assert.Equal(t, date(2024, time.February, 26), WeekStart(in))
}

func TestISOWeekDate(t *testing.T) {
	cases := []struct {
		year, week int
		want       time.Time
	}{
		{2024, 10, date(2024, time.March, 4)},
		{2024, 1, date(2024, time.January, 1)},
		{2021, 1, date(2021, time.January, 4)},
		{2020, 53, date(2020, time.December, 28)},
		{2026, 1, date(2025, time.December, 29)},
	}
	for _, tc := range cases {
		got := ISOWeekDate(tc.year, tc.week)
		assert.Equal(t, tc.want, got, "ISO %d-W%02d", tc.year, tc.week)

		// The result must round-trip through the standard library's
		// ISO week calculation.
		isoYear, isoWeek := got.ISOWeek()
		assert.Equal(t, tc.year, isoYear)
		assert.Equal(t, tc.week, isoWeek)
		assert.Equal(t, time.Monday, got.Weekday())
	}
}

func TestValidISOWeek(t *testing.T) {
	cases := []struct {
		year, week int
		want       bool
	}{
		{2024, 1, true},
		{2024, 52, true},
		{2024, 53, false}, // 2024 has 52 ISO weeks; W53 would book 2025-W01
		{2020, 53, true},  // long year
		{2026, 53, true},  // long year
		{2024, 0, false},
		{2024, 54, false},
		{2024, -1, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidISOWeek(tc.year, tc.week), "ISO %d-W%02d", tc.year, tc.week)
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2024, time.March, 6, 15, 30, 0, 0, time.UTC) // Wednesday of W10

	assert.Equal(t, date(2024, time.March, 4), WindowStart(now, 0, 6))
	assert.Equal(t, date(2024, time.April, 15), WindowStart(now, 1, 6))
	assert.Equal(t, date(2024, time.January, 22), WindowStart(now, -1, 6))
	assert.Equal(t, date(2024, time.May, 27), WindowStart(now, 2, 6))
}

func TestWindowStart_AdjacentWindowsAreContiguous(t *testing.T) {
	now := date(2024, time.March, 4)
	const numWeeks = 6
	endOfFirst := WindowStart(now, 0, numWeeks).AddDate(0, 0, numWeeks*7)
	assert.Equal(t, endOfFirst, WindowStart(now, 1, numWeeks))
}
