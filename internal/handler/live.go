package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/example/room-reservation/internal/calendar"
	"github.com/example/room-reservation/internal/hub"
	"github.com/example/room-reservation/internal/repository"
	"github.com/example/room-reservation/internal/service"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = 50 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Auth happens via the bearer token, not the Origin header.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveCommand is what a connected client may send: request a calendar
// snapshot at some offset, or mutate a slot. Mutations go through the
// same service as the HTTP endpoints, so every rule applies equally.
type liveCommand struct {
	Action     string `json:"action"` // "calendar", "reserve", "cancel"
	WeekOffset int    `json:"week_offset"`
	Year       int    `json:"year"`
	Week       int    `json:"week"`
	BookingID  uint64 `json:"booking_id"`
}

type liveResult struct {
	Type   string `json:"type"` // always "result"
	Action string `json:"action"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// LiveHandler upgrades GET /v1/rooms/:id/live to a websocket. Each
// connection is one hub subscriber: broadcasts triggered by any
// writer (HTTP or another socket) arrive on the same channel as this
// connection's own snapshot replies, and a single goroutine owns all
// writes to the socket.
type LiveHandler struct {
	Hub    *hub.Hub
	Cal    CalendarViewer
	Svc    BookingService
	Notify ChangeNotifier
}

func NewLiveHandler(h *hub.Hub, cal CalendarViewer, svc BookingService, notify ChangeNotifier) *LiveHandler {
	return &LiveHandler{Hub: h, Cal: cal, Svc: svc, Notify: notify}
}

// Serve handles the websocket session for one room viewer.
func (h *LiveHandler) Serve(c echo.Context) error {
	actor, _ := c.Get("actor").(string)
	if actor == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	isAdmin, _ := c.Get("is_admin").(bool)

	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	// Reject subscriptions to rooms that do not exist; the socket would
	// otherwise wait forever on a dead channel.
	if _, err := h.Cal.View(c.Request().Context(), roomID, 0); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return nil // Upgrade already wrote the error response
	}

	sub := h.Hub.Subscribe(roomID)
	defer h.Hub.Unsubscribe(sub)

	go h.writePump(conn, sub)

	// Initial snapshot at offset 0, delivered through the subscriber
	// channel so it cannot race with a concurrent broadcast write.
	h.sendSnapshot(sub, roomID, 0)

	h.readLoop(conn, sub, actor, isAdmin, roomID)
	return nil
}

// writePump is the only writer to conn. It drains the subscriber
// channel and exits when Unsubscribe closes it.
func (h *LiveHandler) writePump(conn *websocket.Conn, sub *hub.Subscriber) {
	ticker := time.NewTicker(wsPingEvery)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()
	for {
		select {
		case msg, ok := <-sub.C():
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop processes client commands until the connection drops.
func (h *LiveHandler) readLoop(conn *websocket.Conn, sub *hub.Subscriber, actor string, isAdmin bool, roomID uint64) {
	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd liveCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			h.sendResult(sub, "", false, "malformed command")
			continue
		}
		switch cmd.Action {
		case "calendar":
			h.sendSnapshot(sub, roomID, cmd.WeekOffset)
		case "reserve":
			h.reserve(sub, actor, roomID, cmd)
		case "cancel":
			h.cancel(sub, actor, isAdmin, cmd)
		default:
			h.sendResult(sub, cmd.Action, false, "unknown action")
		}
	}
}

func (h *LiveHandler) reserve(sub *hub.Subscriber, actor string, roomID uint64, cmd liveCommand) {
	if !calendar.ValidISOWeek(cmd.Year, cmd.Week) {
		h.sendResult(sub, "reserve", false, "invalid year/week")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := h.Svc.Reserve(ctx, actor, roomID, cmd.Year, cmd.Week)
	if err != nil {
		h.sendResult(sub, "reserve", false, mutationError(err))
		return
	}
	h.sendResult(sub, "reserve", true, "")
	if h.Notify != nil {
		go h.Notify.RoomChanged(roomID, cmd.WeekOffset)
	}
}

func (h *LiveHandler) cancel(sub *hub.Subscriber, actor string, isAdmin bool, cmd liveCommand) {
	if cmd.BookingID == 0 {
		h.sendResult(sub, "cancel", false, "invalid booking id")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	roomID, err := h.Svc.Cancel(ctx, actor, cmd.BookingID, isAdmin)
	if err != nil {
		h.sendResult(sub, "cancel", false, mutationError(err))
		return
	}
	h.sendResult(sub, "cancel", true, "")
	if h.Notify != nil {
		go h.Notify.RoomChanged(roomID, cmd.WeekOffset)
	}
}

func (h *LiveHandler) sendSnapshot(sub *hub.Subscriber, roomID uint64, offset int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	view, err := h.Cal.View(ctx, roomID, offset)
	if err != nil {
		log.Printf("live: snapshot room %d: %v", roomID, err)
		h.sendResult(sub, "calendar", false, "calendar unavailable")
		return
	}
	data, err := json.Marshal(hub.CalendarMessage{Type: "calendar", Calendar: view})
	if err != nil {
		log.Printf("live: marshal snapshot room %d: %v", roomID, err)
		return
	}
	sub.Send(data)
}

func (h *LiveHandler) sendResult(sub *hub.Subscriber, action string, ok bool, msg string) {
	data, err := json.Marshal(liveResult{Type: "result", Action: action, OK: ok, Error: msg})
	if err != nil {
		return
	}
	sub.Send(data)
}

// mutationError maps service failures to messages safe to echo back.
func mutationError(err error) string {
	switch {
	case errors.Is(err, repository.ErrSlotTaken):
		return "slot already booked"
	case errors.Is(err, repository.ErrRoomNotFound):
		return "room not found"
	case errors.Is(err, repository.ErrBookingNotFound):
		return "booking not found"
	case errors.Is(err, service.ErrNotOwner):
		return "not permitted"
	default:
		return "database error"
	}
}
