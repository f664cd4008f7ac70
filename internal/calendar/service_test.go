package calendar

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/room-reservation/internal/model"
	"github.com/example/room-reservation/internal/repository"
)

type mockRooms struct {
	getByIDFn func(ctx context.Context, id uint64) (*model.Room, error)
}

func (m *mockRooms) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	return m.getByIDFn(ctx, id)
}

type mockBookings struct {
	listFn func(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Booking, error)
}

func (m *mockBookings) ListByRoomRange(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Booking, error) {
	return m.listFn(ctx, roomID, start, end)
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)
}

func TestServiceView_QueriesExactWindow(t *testing.T) {
	var gotStart, gotEnd time.Time
	rooms := &mockRooms{getByIDFn: func(ctx context.Context, id uint64) (*model.Room, error) {
		return &model.Room{ID: id, Title: "Small room"}, nil
	}}
	bookings := &mockBookings{listFn: func(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Booking, error) {
		gotStart, gotEnd = start, end
		return nil, nil
	}}

	svc := NewService(rooms, bookings, nil, 6, fixedNow)
	v, err := svc.View(context.Background(), 7, 1)

	require.NoError(t, err)
	assert.Equal(t, date(2024, time.April, 15), gotStart)
	assert.Equal(t, date(2024, time.May, 27), gotEnd)
	assert.Equal(t, 1, v.WeekOffset)
	assert.Len(t, v.Weeks, 6)
}

func TestServiceView_RendersDescription(t *testing.T) {
	rooms := &mockRooms{getByIDFn: func(ctx context.Context, id uint64) (*model.Room, error) {
		return &model.Room{ID: id, Title: "Lab", Description: "**bold**"}, nil
	}}
	bookings := &mockBookings{listFn: func(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Booking, error) {
		return nil, nil
	}}
	render := func(s string) string { return strings.ToUpper(s) }

	svc := NewService(rooms, bookings, render, 6, fixedNow)
	v, err := svc.View(context.Background(), 3, 0)

	require.NoError(t, err)
	assert.Equal(t, "**bold**", v.Room.Description)
	assert.Equal(t, "**BOLD**", v.Room.DescriptionHTML)
}

func TestServiceView_UnknownRoomPassesThrough(t *testing.T) {
	rooms := &mockRooms{getByIDFn: func(ctx context.Context, id uint64) (*model.Room, error) {
		return nil, repository.ErrRoomNotFound
	}}
	bookings := &mockBookings{listFn: func(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Booking, error) {
		t.Fatal("bookings must not be queried when the room lookup fails")
		return nil, nil
	}}

	svc := NewService(rooms, bookings, nil, 6, fixedNow)
	_, err := svc.View(context.Background(), 99, 0)

	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(&mockRooms{}, &mockBookings{}, nil, 0, nil)
	assert.Equal(t, 6, svc.NumWeeks())
}
