package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/room-reservation/internal/model"
)

// dateLayout is how DATE values are rendered in parameters and
// responses. week_start values are date-only and always UTC; the
// connection's parseTime=true&loc=UTC makes them scan back as midnight
// UTC time.Time values.
const dateLayout = "2006-01-02"

// BookingRepo persists bookings. The bookings table carries
// UNIQUE KEY (room_id, week_start), so a single INSERT is the atomic
// check-and-reserve: two concurrent inserts for the same slot are
// serialized by the engine and exactly one of them fails with a
// duplicate-key error. The repo converts that failure to ErrSlotTaken
// so no driver error escapes this layer.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// that span repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// Create inserts a booking and populates its generated ID. There is
// deliberately no existence check before the insert; the unique key and
// the room foreign key do the checking inside the same statement.
// Returns ErrSlotTaken when the (room, week) pair is already booked and
// ErrRoomNotFound when the room id dangles.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (room_id, week_start, owner) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.RoomID, b.WeekStart.Format(dateLayout), b.Owner)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrSlotTaken
		}
		if isForeignKeyViolation(err) {
			return ErrRoomNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetByID fetches a single booking. Returns ErrBookingNotFound when no
// row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, room_id, week_start, owner, created_at FROM bookings WHERE id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.RoomID, &b.WeekStart, &b.Owner, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Delete removes a booking and returns the row that existed, or
// ErrBookingNotFound. The select and delete run in one transaction so
// the returned row is exactly the one removed.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const sel = `SELECT id, room_id, week_start, owner, created_at FROM bookings WHERE id = ?`
	var b model.Booking
	if err := tx.QueryRowContext(ctx, sel, id).Scan(&b.ID, &b.RoomID, &b.WeekStart, &b.Owner, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &b, nil
}

// ListByRoomRange returns all bookings of one room whose week_start
// falls within [start, end). Ordered by week_start so projections are
// deterministic.
func (r *BookingRepo) ListByRoomRange(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Booking, error) {
	const q = `SELECT id, room_id, week_start, owner, created_at
	           FROM bookings
	           WHERE room_id = ? AND week_start >= ? AND week_start < ?
	           ORDER BY week_start`
	rows, err := r.db.QueryContext(ctx, q, roomID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.RoomID, &b.WeekStart, &b.Owner, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUpcoming returns the cross-room admin overview for week_start in
// [start, end): each booking joined with its room title and, when the
// owner still has an account, the owner's display name. The owner join
// is a LEFT JOIN on purpose; bookings survive the deletion of their
// owner's account.
func (r *BookingRepo) ListUpcoming(ctx context.Context, start, end time.Time) ([]model.UpcomingBooking, error) {
	const q = `SELECT b.id, b.room_id, r.title, b.week_start, b.owner, u.display_name
	           FROM bookings b
	           JOIN rooms r ON r.id = b.room_id
	           LEFT JOIN users u ON u.username = b.owner
	           WHERE b.week_start >= ? AND b.week_start < ?
	           ORDER BY b.week_start, r.title, b.id`
	rows, err := r.db.QueryContext(ctx, q, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.UpcomingBooking, 0)
	for rows.Next() {
		var ub model.UpcomingBooking
		var week time.Time
		var display sql.NullString
		if err := rows.Scan(&ub.ID, &ub.RoomID, &ub.RoomTitle, &week, &ub.Owner, &display); err != nil {
			return nil, err
		}
		ub.WeekStart = week.Format(dateLayout)
		ub.OwnerDisplay = ub.Owner
		if display.Valid && display.String != "" {
			ub.OwnerDisplay = display.String
		}
		out = append(out, ub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
