// Package service holds the booking write path. Every mutation of the
// bookings table goes through BookingService; reads go straight to the
// calendar package.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/example/room-reservation/internal/calendar"
	"github.com/example/room-reservation/internal/model"
	"github.com/example/room-reservation/internal/queue"
)

// ErrNotOwner is returned when an actor tries to cancel a booking they
// do not own without being an admin. Handlers translate this into an
// HTTP 403 without leaking whose booking it is.
var ErrNotOwner = errors.New("not booking owner")

// BookingStore is the slice of the reservation store the service
// needs. *repository.BookingRepo satisfies it.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	Delete(ctx context.Context, id uint64) (*model.Booking, error)
}

// Publisher emits a booking event after a successful mutation. It is
// best-effort: errors are already logged by the implementation and the
// service ignores them.
type Publisher func(ctx context.Context, ev queue.BookingEvent) error

// BookingService enforces authorization and ownership on top of the
// store. It does not pre-validate room existence on reserve: the
// store's constraints answer that atomically, and a separate existence
// check would reopen the check-then-insert race.
type BookingService struct {
	store   BookingStore
	publish Publisher
}

// NewBookingService constructs a BookingService. publish may be nil to
// disable event publishing (tests, broker-less deployments).
func NewBookingService(store BookingStore, publish Publisher) *BookingService {
	if store == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{store: store, publish: publish}
}

// Reserve books the ISO (year, week) slot of a room for actor. The
// target unit is the Monday of that week. Returns the created booking,
// or repository.ErrSlotTaken when the slot is already booked and
// repository.ErrRoomNotFound when the room does not exist.
func (s *BookingService) Reserve(ctx context.Context, actor string, roomID uint64, year, week int) (*model.Booking, error) {
	b := &model.Booking{
		RoomID:    roomID,
		WeekStart: calendar.ISOWeekDate(year, week),
		Owner:     actor,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	s.emit(ctx, "reserved", b, actor)
	return b, nil
}

// Cancel removes a booking. The owner may always cancel their own
// booking; anyone else needs isAdmin. Returns the freed room id so the
// caller knows which room's subscribers to notify.
// repository.ErrBookingNotFound passes through when the id has no row;
// ErrNotOwner is returned on an authorization failure and the booking
// stays intact.
func (s *BookingService) Cancel(ctx context.Context, actor string, bookingID uint64, isAdmin bool) (uint64, error) {
	b, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	if b.Owner != actor && !isAdmin {
		return 0, ErrNotOwner
	}
	deleted, err := s.store.Delete(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	s.emit(ctx, "cancelled", deleted, actor)
	return deleted.RoomID, nil
}

// emit publishes a booking event. Publishing is fire-and-forget; a
// failed or absent broker never affects the mutation outcome.
func (s *BookingService) emit(ctx context.Context, action string, b *model.Booking, actor string) {
	if s.publish == nil {
		return
	}
	ev := queue.BookingEvent{
		Action:     action,
		BookingID:  b.ID,
		RoomID:     b.RoomID,
		WeekStart:  b.WeekStart.Format("2006-01-02"),
		Owner:      b.Owner,
		Actor:      actor,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publish(ctx, ev); err != nil {
		log.Printf("booking-service: publish %s event for booking %d failed: %v", action, b.ID, err)
	}
}
