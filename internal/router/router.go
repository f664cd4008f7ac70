// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/example/room-reservation/internal/config"
	"github.com/example/room-reservation/internal/handler"
	"github.com/example/room-reservation/internal/middleware"
)

// Handlers collects everything the route table needs. Each field maps
// to one slice of the API surface.
type Handlers struct {
	Auth    *handler.AuthHandler
	Rooms   *handler.RoomHandler
	Booking *handler.BookingHandler
	Live    *handler.LiveHandler
	Users   *handler.UserAdminHandler
}

// Register sets up the full route table.
//
//	public:        /healthz, /v1/auth/login
//	authenticated: /v1/me, room browsing, calendar, reservations, live socket
//	admin only:    /v1/admin/...
//
// The Redis-backed cache and limiter middleware are attached only where
// they pay off: the room list is cached, mutations are rate limited.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)
	e.POST("/v1/auth/login", h.Auth.Login)

	limited := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	auth := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	auth.GET("/me", h.Auth.Me)

	auth.GET("/rooms", h.Rooms.List, cached)
	auth.GET("/rooms/:id", h.Rooms.Get)
	auth.GET("/rooms/:id/calendar", h.Booking.GetCalendar)
	auth.GET("/rooms/:id/live", h.Live.Serve)

	auth.POST("/rooms/:id/reservations", h.Booking.Reserve, limited)
	auth.DELETE("/bookings/:id", h.Booking.Cancel, limited)

	admin := e.Group("/v1/admin", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireAdmin())
	admin.POST("/rooms", h.Rooms.Create)
	admin.PATCH("/rooms/:id", h.Rooms.Update)
	admin.DELETE("/rooms/:id", h.Rooms.Delete)
	admin.GET("/bookings/upcoming", h.Booking.Upcoming)
	admin.POST("/users", h.Users.Create)
	admin.GET("/users", h.Users.List)
	admin.DELETE("/users/:id", h.Users.Delete)
}
