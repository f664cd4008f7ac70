package calendar

import (
	"time"

	"github.com/example/room-reservation/internal/model"
)

// RoomInfo is the room metadata embedded verbatim in a calendar view.
// DescriptionHTML carries the markdown description rendered for display.
type RoomInfo struct {
	ID              uint64 `json:"id"`
	Title           string `json:"title"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"description_html"`
	ColorIndex      int    `json:"color_index"`
}

// BookingSummary is the slice of a booking that calendars display.
type BookingSummary struct {
	ID     uint64 `json:"id"`
	Date   string `json:"date"`
	RoomID uint64 `json:"room_id"`
	Owner  string `json:"owner"`
}

// WeekBucket is one week of the calendar grid. FirstDate is the Monday
// and LastDate the Friday of the week. Booking is nil for a free week.
type WeekBucket struct {
	ISOYear   int             `json:"iso_year"`
	ISOWeek   int             `json:"iso_week"`
	FirstDate string          `json:"first_date"`
	LastDate  string          `json:"last_date"`
	Booking   *BookingSummary `json:"booking"`
}

// View is the display-ready calendar for one room and window.
type View struct {
	RoomID     uint64       `json:"room_id"`
	WeekOffset int          `json:"week_offset"`
	Weeks      []WeekBucket `json:"weeks"`
	Room       RoomInfo     `json:"room"`
}

// Project builds the calendar view for a room. It is pure: the same
// room, bookings, reference time and offsets always produce the same
// View, so it can serve both the request path and the push path.
//
// The window starts at the Monday of now's ISO week advanced by
// offset*numWeeks weeks and spans numWeeks consecutive weeks. Each
// booking is attached to the bucket whose Monday equals its week_start.
// A booking aligned to no bucket Monday (a row written under the old
// day+period granularity) is dropped from the render.
func Project(room RoomInfo, bookings []model.Booking, now time.Time, offset, numWeeks int) View {
	start := WindowStart(now, offset, numWeeks)

	weeks := make([]WeekBucket, numWeeks)
	index := make(map[string]int, numWeeks)
	for i := range weeks {
		monday := start.AddDate(0, 0, i*7)
		isoYear, isoWeek := monday.ISOWeek()
		first := monday.Format("2006-01-02")
		weeks[i] = WeekBucket{
			ISOYear:   isoYear,
			ISOWeek:   isoWeek,
			FirstDate: first,
			LastDate:  monday.AddDate(0, 0, 4).Format("2006-01-02"),
		}
		index[first] = i
	}

	for _, b := range bookings {
		i, ok := index[b.WeekStart.Format("2006-01-02")]
		if !ok {
			continue
		}
		weeks[i].Booking = &BookingSummary{
			ID:     b.ID,
			Date:   b.WeekStart.Format("2006-01-02"),
			RoomID: b.RoomID,
			Owner:  b.Owner,
		}
	}

	return View{
		RoomID:     room.ID,
		WeekOffset: offset,
		Weeks:      weeks,
		Room:       room,
	}
}
