package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/example/room-reservation/internal/config"
	"github.com/example/room-reservation/internal/repository"
)

// UserAdminHandler exposes account management to admins: create, list
// and delete. There is no self-service registration; accounts are
// provisioned like rooms are.
type UserAdminHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserAdminHandler(cfg config.Config, u *repository.UserRepo) *UserAdminHandler {
	return &UserAdminHandler{Cfg: cfg, Users: u}
}

type createUserReq struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
	IsAdmin     bool   `json:"is_admin"`
}

type userListEntry struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

// Create handles POST /v1/admin/users.
func (h *UserAdminHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}
	if req.DisplayName == "" {
		req.DisplayName = req.Username
	}

	id, err := h.Users.Create(c.Request().Context(), req.Username, req.DisplayName, req.Password, req.IsAdmin, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, userListEntry{
		ID: id, Username: req.Username, DisplayName: req.DisplayName, IsAdmin: req.IsAdmin,
	})
}

// List handles GET /v1/admin/users.
func (h *UserAdminHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]userListEntry, 0, len(users))
	for _, u := range users {
		out = append(out, userListEntry{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName, IsAdmin: u.IsAdmin})
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/admin/users/:id. The user's existing
// bookings are kept; they still carry the raw owner string.
func (h *UserAdminHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
