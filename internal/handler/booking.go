package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/example/room-reservation/internal/calendar"
	"github.com/example/room-reservation/internal/model"
	"github.com/example/room-reservation/internal/repository"
	"github.com/example/room-reservation/internal/service"
)

// BookingService is the slice of the write path the handlers need.
// *service.BookingService satisfies it; tests substitute mocks.
type BookingService interface {
	Reserve(ctx context.Context, actor string, roomID uint64, year, week int) (*model.Booking, error)
	Cancel(ctx context.Context, actor string, bookingID uint64, isAdmin bool) (uint64, error)
}

// CalendarViewer builds display-ready calendar views.
// *calendar.Service satisfies it.
type CalendarViewer interface {
	View(ctx context.Context, roomID uint64, offset int) (*calendar.View, error)
	NumWeeks() int
}

// ChangeNotifier pushes a refreshed calendar to a room's subscribers.
// *hub.Notifier satisfies it; a nil notifier disables pushes.
type ChangeNotifier interface {
	RoomChanged(roomID uint64, weekOffset int)
}

// UpcomingLister serves the cross-room admin overview.
// *repository.BookingRepo satisfies it.
type UpcomingLister interface {
	ListUpcoming(ctx context.Context, start, end time.Time) ([]model.UpcomingBooking, error)
}

// BookingHandler serves calendar reads and booking mutations over HTTP.
// After a successful mutation the response is sent first; the broadcast
// to the room's subscribers runs as a separate step that cannot fail
// the write.
type BookingHandler struct {
	Svc      BookingService
	Cal      CalendarViewer
	Bookings UpcomingLister
	Notify   ChangeNotifier
}

// NewBookingHandler constructs a BookingHandler. Notify may be nil.
func NewBookingHandler(svc BookingService, cal CalendarViewer, bookings UpcomingLister, notify ChangeNotifier) *BookingHandler {
	if svc == nil || cal == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc, Cal: cal, Bookings: bookings, Notify: notify}
}

// GetCalendar handles GET /v1/rooms/:id/calendar?week_offset=N. The
// read path bypasses the booking service entirely.
func (h *BookingHandler) GetCalendar(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	offset := 0
	if s := c.QueryParam("week_offset"); s != "" {
		if offset, err = strconv.Atoi(s); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid week_offset"})
		}
	}
	view, err := h.Cal.View(c.Request().Context(), roomID, offset)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, view)
}

type reserveReq struct {
	Year int `json:"year"`
	Week int `json:"week"`
	// WeekOffset is the window the requester is currently viewing; the
	// post-write broadcast is built at this offset for all subscribers.
	WeekOffset int `json:"week_offset"`
}

// Reserve handles POST /v1/rooms/:id/reservations. The acting
// principal comes from the token, never from the body.
func (h *BookingHandler) Reserve(c echo.Context) error {
	actor, _ := c.Get("actor").(string)
	if actor == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !calendar.ValidISOWeek(req.Year, req.Week) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year/week"})
	}

	b, err := h.Svc.Reserve(c.Request().Context(), actor, roomID, req.Year, req.Week)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken):
			return c.JSON(http.StatusConflict, echo.Map{"ok": false, "error": "slot already booked"})
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"ok": false, "error": "room not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "error": "database error"})
		}
	}

	h.notifyRoom(roomID, req.WeekOffset)
	return c.JSON(http.StatusCreated, echo.Map{
		"ok": true,
		"booking": echo.Map{
			"id":         b.ID,
			"room_id":    b.RoomID,
			"week_start": b.WeekStart.Format("2006-01-02"),
			"owner":      b.Owner,
		},
	})
}

// Cancel handles DELETE /v1/bookings/:id?week_offset=N. Admins may
// cancel anyone's booking; everyone else only their own.
func (h *BookingHandler) Cancel(c echo.Context) error {
	actor, _ := c.Get("actor").(string)
	if actor == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	isAdmin, _ := c.Get("is_admin").(bool)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	offset := 0
	if s := c.QueryParam("week_offset"); s != "" {
		if offset, err = strconv.Atoi(s); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid week_offset"})
		}
	}

	roomID, err := h.Svc.Cancel(c.Request().Context(), actor, bookingID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"ok": false, "error": "booking not found"})
		case errors.Is(err, service.ErrNotOwner):
			return c.JSON(http.StatusForbidden, echo.Map{"ok": false, "error": "not permitted"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "error": "database error"})
		}
	}

	h.notifyRoom(roomID, offset)
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "room_id": roomID})
}

// Upcoming handles GET /v1/admin/bookings/upcoming: all bookings of the
// next calendar window across all rooms.
func (h *BookingHandler) Upcoming(c echo.Context) error {
	start := calendar.WeekStart(time.Now().UTC())
	end := start.AddDate(0, 0, h.Cal.NumWeeks()*7)
	rows, err := h.Bookings.ListUpcoming(c.Request().Context(), start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// notifyRoom triggers the post-write broadcast in the background. The
// HTTP response does not wait for it.
func (h *BookingHandler) notifyRoom(roomID uint64, offset int) {
	if h.Notify == nil {
		return
	}
	go h.Notify.RoomChanged(roomID, offset)
}
