package hub

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/example/room-reservation/internal/calendar"
)

// CalendarMessage is the envelope pushed to subscribers and returned
// for point-to-point snapshot requests.
type CalendarMessage struct {
	Type     string         `json:"type"` // always "calendar"
	Calendar *calendar.View `json:"calendar"`
}

// Notifier rebuilds a room's calendar after a write and pushes it to
// the room's subscribers. It is the logically separate notification
// step behind the booking handlers: the write has already succeeded
// and responded by the time this runs, so a slow or failing broadcast
// can only cost subscribers a push, never fail a booking.
//
// The refreshed view is built at the mutating requester's week offset
// and sent to all subscribers of the room, including ones viewing a
// different offset; those see a view of the requester's window and
// re-request their own on the next client-side trigger.
type Notifier struct {
	hub *Hub
	cal *calendar.Service
}

// NewNotifier wires a notifier to the hub and the calendar service.
func NewNotifier(h *Hub, cal *calendar.Service) *Notifier {
	return &Notifier{hub: h, cal: cal}
}

// RoomChanged projects the room at weekOffset and broadcasts the result
// to the room's subscribers. Errors are logged, never returned: the
// triggering write must not observe them.
func (n *Notifier) RoomChanged(roomID uint64, weekOffset int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	view, err := n.cal.View(ctx, roomID, weekOffset)
	if err != nil {
		log.Printf("notifier: rebuild calendar for room %d failed: %v", roomID, err)
		return
	}
	msg, err := json.Marshal(CalendarMessage{Type: "calendar", Calendar: view})
	if err != nil {
		log.Printf("notifier: marshal calendar for room %d failed: %v", roomID, err)
		return
	}
	n.hub.Broadcast(roomID, msg)
}
