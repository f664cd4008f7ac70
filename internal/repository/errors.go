// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// knowing the storage engine's own error vocabulary. For example,
// ErrSlotTaken signals that the unique (room, week) constraint rejected
// an insert, while ErrRoomNotFound covers both a missing row and a
// foreign key pointing at a room that no longer exists.
package repository

import (
	"errors"
	"strings"
)

// ErrSlotTaken is returned when a booking insert collides with an
// existing booking for the same room and week. Handlers should
// translate this into an HTTP 409 response.
var ErrSlotTaken = errors.New("slot already booked")

// ErrRoomNotFound is returned when a room lookup fails or a booking
// references a room id that does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when a booking lookup or delete
// targets an id with no row behind it.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUserNotFound is returned when a user lookup fails.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameExists is returned when creating a user with a username
// that is already taken.
var ErrUsernameExists = errors.New("username already exists")

// isDuplicateEntry reports whether err is a MySQL duplicate-key
// violation (error 1062). The driver does not expose a typed error for
// this, so the code is matched in the message.
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isForeignKeyViolation reports whether err is a MySQL foreign-key
// failure on insert or update (error 1452).
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
