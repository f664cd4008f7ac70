package calendar

import (
	"context"
	"time"

	"github.com/example/room-reservation/internal/model"
)

// RoomSource supplies room metadata for views.
type RoomSource interface {
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
}

// BookingSource supplies the raw bookings of a window.
type BookingSource interface {
	ListByRoomRange(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Booking, error)
}

// Renderer turns a markdown description into HTML for display.
type Renderer func(string) string

// Service assembles calendar views from the repositories. It serves the
// HTTP read path and the live-update push path; both produce the same
// View for the same state because the projection itself is pure.
type Service struct {
	rooms    RoomSource
	bookings BookingSource
	render   Renderer
	numWeeks int
	now      func() time.Time
}

// NewService builds a calendar service. numWeeks is the window span
// (the NUM_WEEKS knob, default 6 via config). now is injectable for
// tests; pass nil for time.Now.
func NewService(rooms RoomSource, bookings BookingSource, render Renderer, numWeeks int, now func() time.Time) *Service {
	if numWeeks <= 0 {
		numWeeks = 6
	}
	if now == nil {
		now = time.Now
	}
	if render == nil {
		render = func(s string) string { return s }
	}
	return &Service{rooms: rooms, bookings: bookings, render: render, numWeeks: numWeeks, now: now}
}

// NumWeeks reports the window span in weeks.
func (s *Service) NumWeeks() int { return s.numWeeks }

// View builds the calendar for one room at the given window offset.
// Room lookup errors (including repository.ErrRoomNotFound) pass
// through unchanged.
func (s *Service) View(ctx context.Context, roomID uint64, offset int) (*View, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	start := WindowStart(now, offset, s.numWeeks)
	end := start.AddDate(0, 0, s.numWeeks*7)
	rows, err := s.bookings.ListByRoomRange(ctx, roomID, start, end)
	if err != nil {
		return nil, err
	}
	v := Project(RoomInfo{
		ID:              room.ID,
		Title:           room.Title,
		Location:        room.Location,
		Description:     room.Description,
		DescriptionHTML: s.render(room.Description),
		ColorIndex:      room.ColorIndex,
	}, rows, now, offset, s.numWeeks)
	return &v, nil
}
