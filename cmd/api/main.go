package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cardoctor/cardoctor-api/internal/http/handlers"
	"github.com/cardoctor/cardoctor-api/internal/http/middleware"
	"github.com/cardoctor/cardoctor-api/internal/repo/postgres"
	"github.com/cardoctor/cardoctor-api/internal/repo/redisstore"
	"github.com/cardoctor/cardoctor-api/pkg/config"
	"github.com/cardoctor/cardoctor-api/pkg/database"
	"github.com/cardoctor/cardoctor-api/pkg/events"
	"github.com/cardoctor/cardoctor-api/pkg/logger"
	mw "github.com/cardoctor/cardoctor-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()

	if err := database.Migrate(cfg.Database.URL); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := database.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		natsPub, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		publisher = natsPub
	}
	defer publisher.Close()

	var idemStore mw.IdempotencyStore
	if cfg.Redis.URL != "" {
		store, err := redisstore.New(cfg.Redis.URL)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		idemStore = store
	}

	router := handlers.NewRouter(&handlers.RouterDeps{
		Config:    cfg,
		Bookings:  postgres.NewBookingsRepo(pool),
		Services:  postgres.NewServicesRepo(pool),
		Publisher: publisher,
		RateLimiter: middleware.NewRateLimiter(pool, middleware.RateLimitConfig{
			Requests: 30,
			Window:   time.Minute,
		}),
		IdempotencyStore: idemStore,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down car doctor API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting car doctor API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
