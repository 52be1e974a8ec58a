package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/booking"
	"github.com/iliyamo/smart-parking/internal/config"
	"github.com/iliyamo/smart-parking/internal/database"
	"github.com/iliyamo/smart-parking/internal/handler"
	"github.com/iliyamo/smart-parking/internal/middleware"
	"github.com/iliyamo/smart-parking/internal/queue"
	"github.com/iliyamo/smart-parking/internal/repository"
	"github.com/iliyamo/smart-parking/internal/router"
	"github.com/iliyamo/smart-parking/internal/routing"
	queue_publisher "github.com/iliyamo/smart-parking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories over the shared connection pool.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	vehicles := repository.NewVehicleRepo(db)
	areas := repository.NewAreaRepo(db)
	slots := repository.NewSlotRepo(db)
	store := repository.NewBookingStore(db)

	// The booking service runs the allocator and lifecycle inside the
	// store's transactions and reports events to RabbitMQ.
	svc := booking.New(store, queue_publisher.Notifier{})
	svc.AllowGrowth = cfg.AllowGrowth

	// Corridor graph for guidance, built once from configuration.
	corridor := routing.Corridor(cfg.Row, cfg.RowSlots, cfg.EntranceFan)

	// Background consumer writing reservation events to the audit log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()

	// Redis-backed rate limiting and response caching wrap every route.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	auth := handler.NewAuthHandler(cfg, users, tokens)
	router.RegisterRoutes(e, handler.NewGuidanceHandler(corridor, svc))
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterParking(e,
		handler.NewVehicleHandler(vehicles),
		handler.NewAreaHandler(areas),
		handler.NewSlotHandler(slots, svc),
		handler.NewReservationHandler(svc),
		cfg.JWTSecret,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
