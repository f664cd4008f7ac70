// Package hub fans calendar updates out to connected viewers. Each
// subscriber watches exactly one room; a broadcast reaches every
// current subscriber of that room and nobody else.
package hub

import "sync"

// sendBuffer is the per-subscriber channel capacity. A subscriber whose
// buffer is full has the message dropped rather than blocking the
// broadcaster; delivery is best-effort and at-most-once, and a client
// that misses an update re-requests the snapshot on its own trigger.
const sendBuffer = 8

// Subscriber is one connected viewer of a room's calendar. Messages
// arrive on C() in the order they were sent. The mutex serializes Send
// against the close on Unsubscribe: a broadcast racing a disconnect
// must degrade to a dropped message, never a send on a closed channel.
type Subscriber struct {
	roomID uint64
	mu     sync.Mutex
	closed bool
	ch     chan []byte
}

// RoomID returns the room this subscriber watches.
func (s *Subscriber) RoomID() uint64 { return s.roomID }

// C is the subscriber's receive channel. It is closed on Unsubscribe.
func (s *Subscriber) C() <-chan []byte { return s.ch }

// Send queues a message to this single subscriber (the point-to-point
// snapshot reply). It reports false when the message was dropped, either
// because the subscriber is not keeping up or because it already
// unsubscribed.
func (s *Subscriber) Send(msg []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}

// close shuts the receive channel exactly once. Callers must not hold
// s.mu.
func (s *Subscriber) close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	s.mu.Unlock()
}

// Hub is the in-process subscriber registry. All methods are safe for
// concurrent use.
type Hub struct {
	mu    sync.Mutex
	rooms map[uint64]map[*Subscriber]struct{}
}

// New returns an empty hub.
func New() *Hub {
	return &Hub{rooms: make(map[uint64]map[*Subscriber]struct{})}
}

// Subscribe registers a new viewer of roomID.
func (h *Hub) Subscribe(roomID uint64) *Subscriber {
	s := &Subscriber{roomID: roomID, ch: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	set, ok := h.rooms[roomID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.rooms[roomID] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Unsubscribe removes a viewer and closes its channel. Safe to call
// more than once.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	set, ok := h.rooms[s.roomID]
	if ok {
		if _, present := set[s]; present {
			delete(set, s)
			if len(set) == 0 {
				delete(h.rooms, s.roomID)
			}
		}
	}
	h.mu.Unlock()
	s.close()
}

// Broadcast sends msg to every subscriber of roomID and returns how
// many received it. Slow subscribers are skipped, never waited on.
func (h *Hub) Broadcast(roomID uint64, msg []byte) int {
	h.mu.Lock()
	subs := make([]*Subscriber, 0, len(h.rooms[roomID]))
	for s := range h.rooms[roomID] {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	delivered := 0
	for _, s := range subs {
		if s.Send(msg) {
			delivered++
		}
	}
	return delivered
}

// Subscribers reports how many viewers a room currently has.
func (h *Hub) Subscribers(roomID uint64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}
