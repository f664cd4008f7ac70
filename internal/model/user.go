package model

import "time"

// User represents an account in the `users` table.  Usernames are stored
// lowercased and double as the owner string on bookings, so renaming a
// user is deliberately unsupported.  The core booking logic never reads
// anything here beyond the username and the admin flag.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique lowercased login name.
//  DisplayName  – name shown in calendars and listings.
//  PasswordHash – bcrypt hashed password.
//  IsAdmin      – whether the account may manage rooms and users.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	DisplayName  string    // users.display_name
	PasswordHash string    // users.password_hash
	IsAdmin      bool      // users.is_admin
	CreatedAt    time.Time // users.created_at
}
