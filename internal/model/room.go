package model

import "time"

// Room describes a bookable shared room.  The description may contain
// markdown which is rendered to HTML for display; the rendered form is
// never persisted.  ColorIndex selects an entry from the fixed display
// palette used by clients.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – human readable room name, never empty.
//  Location    – optional free-text location hint.
//  Description – optional markdown text about the room.
//  ColorIndex  – palette index used when rendering the room, default 0.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Room struct {
	ID          uint64    // rooms.id
	Title       string    // rooms.title
	Location    string    // rooms.location
	Description string    // rooms.description
	ColorIndex  int       // rooms.color_index
	CreatedAt   time.Time // rooms.created_at
	UpdatedAt   time.Time // rooms.updated_at
}

// RoomPatch enumerates the fields an admin edit may change.  A nil field
// leaves the stored value untouched.  Only the fields listed here are
// settable; anything else in an edit request is rejected at bind time
// rather than applied blindly.
type RoomPatch struct {
	Title       *string `json:"title,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	ColorIndex  *int    `json:"color_index,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p RoomPatch) Empty() bool {
	return p.Title == nil && p.Location == nil && p.Description == nil && p.ColorIndex == nil
}
