// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an audit log.
package queue

// BookingEvent is published after a successful reserve or cancel. It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type BookingEvent struct {
	Action     string `json:"action"` // "reserved" or "cancelled"
	BookingID  uint64 `json:"booking_id"`
	RoomID     uint64 `json:"room_id"`
	WeekStart  string `json:"week_start"`
	Owner      string `json:"owner"`
	Actor      string `json:"actor"` // who performed the action; differs from Owner on admin cancels
	OccurredAt string `json:"occurred_at"`
}
