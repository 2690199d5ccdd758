package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/clock"
	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/database"
	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/router"
	"github.com/iliyamo/event-ticketing/internal/ticketing"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter and response cache on public routes.
	// A nil client disables both; the API stays up without Redis.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and response caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	ticketTypes := repository.NewTicketTypeRepo(db)
	tickets := repository.NewTicketRepo(db)
	registrations := repository.NewRegistrationRepo(db)
	favorites := repository.NewFavoriteRepo(db)

	store := repository.NewTicketingStore(db)
	issuer := ticketing.NewIssuer(store, clock.NewSystem())
	withdrawer := ticketing.NewWithdrawer(store)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	organizerH := handler.NewOrganizerHandler(events, ticketTypes, tickets, registrations)
	attendeeH := handler.NewAttendeeHandler(events, registrations, tickets, ticketTypes, favorites, issuer, withdrawer)
	publicH := &handler.PublicHandler{EventRepo: events, TicketTypeRepo: ticketTypes}
	adminH := handler.NewAdminHandler(users, events)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, config.LoadCacheConfig(), config.LoadRateLimitConfig(), rdb)
	router.RegisterOrganizer(e, organizerH, cfg.JWTSecret)
	router.RegisterAttendee(e, attendeeH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Background consumer appends issued-ticket lines to logs/ticketing.log.
	// It reconnects on broker failures and never brings the server down.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
