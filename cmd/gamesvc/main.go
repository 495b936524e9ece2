package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/guesswhonow/guesswho-services/configs"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/broker"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/db"
	handlers "github.com/guesswhonow/guesswho-services/internal/gamesvc/handlers"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/service"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/store"
	nats "github.com/guesswhonow/guesswho-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "game"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// pg connection, explicit handle handed down to the stores
	dsn := os.Getenv("POSTGRES_URL")
	dbpool, err := db.Connect(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dbpool.Close()
	log.Printf("pg connection established successfully")

	// schema migration is an explicit startup step
	if err := db.Migrate(dsn); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	// Connect to NATS for the room change feed
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}
	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	pub := broker.NewBroker(n.Conn)
	locks := service.NewRoomLocks()

	roomStore := store.NewRoomStore(dbpool)
	playerStore := store.NewPlayerStore(dbpool)
	voteStore := store.NewVoteStore(dbpool)
	wordPackStore := store.NewWordPackStore(dbpool)

	roomService := service.NewRoomService(roomStore, playerStore, wordPackStore, locks, pub)
	playerService := service.NewPlayerService(roomStore, playerStore, locks, pub)
	voteService := service.NewVoteService(roomStore, playerStore, voteStore, locks, pub)
	wordPackService := service.NewWordPackService(wordPackStore)

	// seed the built-in catalog, idempotent on title
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := wordPackService.SeedBuiltins(seedCtx); err != nil {
		log.Fatalf("Failed to seed word packs: %v", err)
	}
	cancelSeed()

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := config.Getenv("RATE_LIMIT", "120")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(roomService, playerService, voteService, wordPackService)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + config.Getenv("GAME_SERVICE_PORT", "8080"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
