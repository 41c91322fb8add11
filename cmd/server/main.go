package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/gracepoint/protocol-analytics/internal/api"
	"github.com/gracepoint/protocol-analytics/internal/config"
	"github.com/gracepoint/protocol-analytics/internal/notify"
	"github.com/gracepoint/protocol-analytics/internal/repository/postgres"
	"github.com/gracepoint/protocol-analytics/internal/service/team"
	"github.com/gracepoint/protocol-analytics/internal/service/visitor"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to connect to database: %v", err)
	}
	cancel()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	visitorRepo := postgres.NewVisitorRepo(db)
	teamRepo := postgres.NewTeamRepo(db)

	var notifier notify.Notifier
	if cfg.Notifications.Enabled {
		notifier = notify.NewHTTPNotifier(cfg.Notifications.BaseURL)
		log.Printf("Notifications enabled, dispatching to %s", cfg.Notifications.BaseURL)
	} else {
		log.Printf("Notifications disabled")
	}

	visitorSvc := visitor.NewService(visitorRepo)
	teamSvc := team.NewService(teamRepo, notifier)

	var limiter *api.RateLimiter
	if cfg.Redis.Enabled {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to parse redis URL: %v", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Printf("WARNING: Redis unreachable, analytics endpoints run unthrottled: %v", err)
		} else {
			limiter = api.NewRateLimiter(rdb, cfg.RateLimit.RequestsPerMinute)
			log.Printf("Rate limiting enabled: %d requests/minute", cfg.RateLimit.RequestsPerMinute)
		}
		pingCancel()
	}

	handlers := api.NewHandlers(visitorSvc, teamSvc)
	server := api.NewServer(cfg.Server, handlers, limiter)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr())
		errCh <- server.ListenAndServe(cfg.Server.Addr())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigCh:
		log.Printf("Received %s, shutting down", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	log.Printf("Server stopped")
}
