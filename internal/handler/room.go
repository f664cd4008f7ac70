package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/example/room-reservation/internal/markup"
	"github.com/example/room-reservation/internal/model"
	"github.com/example/room-reservation/internal/repository"
)

// RoomHandler serves room listing for everyone and room management for
// admins. Route-level middleware keeps non-admins out of the mutating
// endpoints; the handler itself only deals with the data.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

// NewRoomHandler constructs a RoomHandler. The repository must be non-nil.
func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

// roomResp is the wire shape of a room, description rendered to HTML
// the same way the calendar view renders it.
type roomResp struct {
	ID              uint64 `json:"id"`
	Title           string `json:"title"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"description_html"`
	ColorIndex      int    `json:"color_index"`
}

func toRoomResp(r *model.Room) roomResp {
	return roomResp{
		ID:              r.ID,
		Title:           r.Title,
		Location:        r.Location,
		Description:     r.Description,
		DescriptionHTML: markup.Render(r.Description),
		ColorIndex:      r.ColorIndex,
	}
}

// List handles GET /v1/rooms. Rooms come back sorted by title,
// case-insensitively.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]roomResp, 0, len(rooms))
	for i := range rooms {
		out = append(out, toRoomResp(&rooms[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

// Create handles POST /v1/admin/rooms. Only the title is taken at
// creation; everything else is set by later edits.
func (h *RoomHandler) Create(c echo.Context) error {
	var body struct {
		Title string `json:"title"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	room, err := h.Rooms.Create(c.Request().Context(), body.Title)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, toRoomResp(room))
}

// Update handles PATCH /v1/admin/rooms/:id. The body is a typed patch
// with exactly the editable fields; unknown fields are rejected rather
// than silently dropped or reflected onto the record.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	var patch model.RoomPatch
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title must not be empty"})
	}
	if patch.ColorIndex != nil && *patch.ColorIndex < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "color_index must not be negative"})
	}

	room, err := h.Rooms.Update(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

// Delete handles DELETE /v1/admin/rooms/:id. The repository removes the
// room's bookings in the same transaction, so no orphan rows remain.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
