package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/example/room-reservation/internal/calendar"
	"github.com/example/room-reservation/internal/config"
	"github.com/example/room-reservation/internal/database"
	"github.com/example/room-reservation/internal/handler"
	"github.com/example/room-reservation/internal/hub"
	"github.com/example/room-reservation/internal/markup"
	"github.com/example/room-reservation/internal/queue"
	"github.com/example/room-reservation/internal/repository"
	"github.com/example/room-reservation/internal/router"
	"github.com/example/room-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.InitSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)

	bootstrapAdmin(ctx, cfg, users)

	cal := calendar.NewService(rooms, bookings, markup.Render, cfg.CalendarWeeks, nil)
	bookingSvc := service.NewBookingService(bookings, queue.PublishBookingEvent)

	h := hub.New()
	notifier := hub.NewNotifier(h, cal)

	// The consumer keeps its own connection and reconnects on broker
	// failure; losing it never takes the API down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, users),
		Rooms:   handler.NewRoomHandler(rooms),
		Booking: handler.NewBookingHandler(bookingSvc, cal, bookings, notifier),
		Live:    handler.NewLiveHandler(h, cal, bookingSvc, notifier),
		Users:   handler.NewUserAdminHandler(cfg, users),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// bootstrapAdmin creates the first admin account when the user table is
// empty and ADMIN_USERNAME/ADMIN_PASSWORD are set. It runs once per
// process start and is a no-op on every subsequent boot.
func bootstrapAdmin(ctx context.Context, cfg config.Config, users *repository.UserRepo) {
	if cfg.AdminUser == "" || cfg.AdminPass == "" {
		return
	}
	n, err := users.Count(ctx)
	if err != nil {
		log.Printf("admin bootstrap: count users: %v", err)
		return
	}
	if n > 0 {
		return
	}
	if _, err := users.Create(ctx, cfg.AdminUser, cfg.AdminUser, cfg.AdminPass, true, cfg.BcryptCost); err != nil {
		log.Printf("admin bootstrap: create %q: %v", cfg.AdminUser, err)
		return
	}
	log.Printf("admin bootstrap: created admin account %q", cfg.AdminUser)
}
