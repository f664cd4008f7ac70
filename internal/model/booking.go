package model

import "time"

// Booking reserves one room for one ISO calendar week.  WeekStart is
// always the Monday of the reserved week; together with RoomID it forms
// the composite key the database keeps unique, so at most one booking can
// exist per room and week.
//
// Fields:
//  ID        – primary key identifier.
//  RoomID    – room being reserved (foreign key into rooms).
//  WeekStart – Monday of the reserved ISO week, date only, UTC.
//  Owner     – lowercased principal string of the reserving user.
//  CreatedAt – creation timestamp.
type Booking struct {
	ID        uint64    // bookings.id
	RoomID    uint64    // bookings.room_id
	WeekStart time.Time // bookings.week_start (DATE)
	Owner     string    // bookings.owner
	CreatedAt time.Time // bookings.created_at
}

// UpcomingBooking is one row of the cross-room admin overview: a booking
// joined with its room title and, when the owner still has an account,
// the owner's display name.
type UpcomingBooking struct {
	ID           uint64 `json:"id"`
	RoomID       uint64 `json:"room_id"`
	RoomTitle    string `json:"room_title"`
	WeekStart    string `json:"week_start"`
	Owner        string `json:"owner"`
	OwnerDisplay string `json:"owner_display"`
}
