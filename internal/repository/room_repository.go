package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"github.com/example/room-reservation/internal/model"
)

// RoomRepo provides CRUD for rooms. Deleting a room is a transaction
// that removes the room's bookings first and then the room itself, so
// no orphaned booking row can survive even though the schema's foreign
// key would already refuse dangling inserts.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// Create inserts a new room with the given title and populates the
// generated ID plus timestamp fields on the returned record. Location
// and description start empty, the color index at 0.
func (r *RoomRepo) Create(ctx context.Context, title string) (*model.Room, error) {
	// description is TEXT NOT NULL without a column default, so the
	// empty string is written explicitly.
	const qInsert = `INSERT INTO rooms (title, description) VALUES (?, '')`
	res, err := r.db.ExecContext(ctx, qInsert, title)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a room by id. Returns ErrRoomNotFound when no row
// exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, title, location, description, color_index, created_at, updated_at
	           FROM rooms WHERE id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rm.ID, &rm.Title, &rm.Location, &rm.Description, &rm.ColorIndex, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// List returns all rooms sorted case-insensitively by title.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, title, location, description, color_index, created_at, updated_at FROM rooms`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.Title, &rm.Location, &rm.Description, &rm.ColorIndex, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out, nil
}

// Update applies a typed patch to a room. Only fields set in the patch
// are written; an empty patch is a no-op that still verifies existence.
// Returns ErrRoomNotFound when the room does not exist.
func (r *RoomRepo) Update(ctx context.Context, id uint64, p model.RoomPatch) (*model.Room, error) {
	if p.Empty() {
		return r.GetByID(ctx, id)
	}
	set := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)
	if p.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Location != nil {
		set = append(set, "location = ?")
		args = append(args, *p.Location)
	}
	if p.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *p.Description)
	}
	if p.ColorIndex != nil {
		set = append(set, "color_index = ?")
		args = append(args, *p.ColorIndex)
	}
	q := `UPDATE rooms SET ` + strings.Join(set, ", ") + `, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also 0 when the update changed nothing, so
		// distinguish a missing room from an identical write.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a room and all bookings referencing it in one
// transaction. Returns ErrRoomNotFound when the room does not exist;
// in that case nothing is deleted.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE room_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
