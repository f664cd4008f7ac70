package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/room-reservation/internal/model"
	"github.com/example/room-reservation/internal/queue"
	"github.com/example/room-reservation/internal/repository"
)

type mockStore struct {
	createFn  func(ctx context.Context, b *model.Booking) error
	getByIDFn func(ctx context.Context, id uint64) (*model.Booking, error)
	deleteFn  func(ctx context.Context, id uint64) (*model.Booking, error)
}

func (m *mockStore) Create(ctx context.Context, b *model.Booking) error {
	return m.createFn(ctx, b)
}
func (m *mockStore) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockStore) Delete(ctx context.Context, id uint64) (*model.Booking, error) {
	return m.deleteFn(ctx, id)
}

func TestReserve_Success(t *testing.T) {
	var stored *model.Booking
	store := &mockStore{createFn: func(ctx context.Context, b *model.Booking) error {
		b.ID = 42
		stored = b
		return nil
	}}
	var events []queue.BookingEvent
	publish := func(ctx context.Context, ev queue.BookingEvent) error {
		events = append(events, ev)
		return nil
	}

	svc := NewBookingService(store, publish)
	b, err := svc.Reserve(context.Background(), "alice", 7, 2024, 10)

	require.NoError(t, err)
	assert.Equal(t, uint64(42), b.ID)
	assert.Equal(t, uint64(7), b.RoomID)
	assert.Equal(t, "alice", b.Owner)
	// ISO 2024-W10 starts on Monday 2024-03-04.
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), b.WeekStart)
	assert.Same(t, stored, b)

	require.Len(t, events, 1)
	assert.Equal(t, "reserved", events[0].Action)
	assert.Equal(t, uint64(42), events[0].BookingID)
	assert.Equal(t, "2024-03-04", events[0].WeekStart)
	assert.Equal(t, "alice", events[0].Actor)
}

func TestReserve_SlotTaken(t *testing.T) {
	store := &mockStore{createFn: func(ctx context.Context, b *model.Booking) error {
		return repository.ErrSlotTaken
	}}
	published := false
	svc := NewBookingService(store, func(ctx context.Context, ev queue.BookingEvent) error {
		published = true
		return nil
	})

	_, err := svc.Reserve(context.Background(), "alice", 7, 2024, 10)

	assert.ErrorIs(t, err, repository.ErrSlotTaken)
	assert.False(t, published, "no event on a failed reserve")
}

func TestReserve_UnknownRoom(t *testing.T) {
	store := &mockStore{createFn: func(ctx context.Context, b *model.Booking) error {
		return repository.ErrRoomNotFound
	}}
	svc := NewBookingService(store, nil)

	_, err := svc.Reserve(context.Background(), "alice", 999, 2024, 10)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestReserve_NilPublisher(t *testing.T) {
	store := &mockStore{createFn: func(ctx context.Context, b *model.Booking) error {
		b.ID = 1
		return nil
	}}
	svc := NewBookingService(store, nil)

	_, err := svc.Reserve(context.Background(), "alice", 7, 2024, 10)
	assert.NoError(t, err)
}

func existing(owner string) *model.Booking {
	return &model.Booking{
		ID:        5,
		RoomID:    7,
		WeekStart: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		Owner:     owner,
	}
}

func TestCancel_ByOwner(t *testing.T) {
	deleted := false
	store := &mockStore{
		getByIDFn: func(ctx context.Context, id uint64) (*model.Booking, error) {
			return existing("alice"), nil
		},
		deleteFn: func(ctx context.Context, id uint64) (*model.Booking, error) {
			deleted = true
			return existing("alice"), nil
		},
	}
	var events []queue.BookingEvent
	svc := NewBookingService(store, func(ctx context.Context, ev queue.BookingEvent) error {
		events = append(events, ev)
		return nil
	})

	roomID, err := svc.Cancel(context.Background(), "alice", 5, false)

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, uint64(7), roomID)
	require.Len(t, events, 1)
	assert.Equal(t, "cancelled", events[0].Action)
	assert.Equal(t, "alice", events[0].Actor)
}

func TestCancel_DeniedForNonOwner(t *testing.T) {
	store := &mockStore{
		getByIDFn: func(ctx context.Context, id uint64) (*model.Booking, error) {
			return existing("alice"), nil
		},
		deleteFn: func(ctx context.Context, id uint64) (*model.Booking, error) {
			t.Fatal("delete must not run on an authorization failure")
			return nil, nil
		},
	}
	svc := NewBookingService(store, nil)

	_, err := svc.Cancel(context.Background(), "mallory", 5, false)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestCancel_AdminOverride(t *testing.T) {
	store := &mockStore{
		getByIDFn: func(ctx context.Context, id uint64) (*model.Booking, error) {
			return existing("alice"), nil
		},
		deleteFn: func(ctx context.Context, id uint64) (*model.Booking, error) {
			return existing("alice"), nil
		},
	}
	var events []queue.BookingEvent
	svc := NewBookingService(store, func(ctx context.Context, ev queue.BookingEvent) error {
		events = append(events, ev)
		return nil
	})

	roomID, err := svc.Cancel(context.Background(), "admin", 5, true)

	require.NoError(t, err)
	assert.Equal(t, uint64(7), roomID)
	require.Len(t, events, 1)
	// The event records who acted, not just who owned the booking.
	assert.Equal(t, "admin", events[0].Actor)
	assert.Equal(t, "alice", events[0].Owner)
}

func TestCancel_NotFound(t *testing.T) {
	store := &mockStore{
		getByIDFn: func(ctx context.Context, id uint64) (*model.Booking, error) {
			return nil, repository.ErrBookingNotFound
		},
	}
	svc := NewBookingService(store, nil)

	_, err := svc.Cancel(context.Background(), "alice", 404, false)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}
