package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/widyasatria/flightbook/internal/client"
	"github.com/widyasatria/flightbook/internal/config"
	"github.com/widyasatria/flightbook/internal/handler"
	"github.com/widyasatria/flightbook/internal/ratelimit"
	"github.com/widyasatria/flightbook/internal/session"
	"github.com/widyasatria/flightbook/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := newLogger(cfg.Log)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.New(ratelimit.Config{
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
	})

	clients := client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Limiter: rateLimiter,
	})

	store, err := newStore(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	defer store.Close()

	engine := workflow.NewEngine(clients.Flights, clients.Bookings, store, log)

	handler.RegisterRoutes(e, clients, engine)

	go func() {
		log.Infof("Starting booking gateway on port %s (upstream: %s)", cfg.Server.Port, cfg.API.BaseURL)
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			log.Infof("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
	}
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

func newStore(cfg *config.Config, log *logrus.Logger) (workflow.Store, error) {
	if cfg.Session.Store == "redis" {
		store, err := session.NewRedisStore(session.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			return nil, err
		}
		log.Infof("Redis session store enabled (host: %s:%s, TTL: %v)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.TTL)
		return store, nil
	}

	log.Infof("In-memory session store enabled (TTL: %v)", cfg.Session.TTL)
	return session.NewMemoryStore(cfg.Session.TTL), nil
}
