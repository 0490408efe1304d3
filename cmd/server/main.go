package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marketplace/identity-service/internal/api"
	"github.com/marketplace/identity-service/internal/core/ports"
	mongodb "github.com/marketplace/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/marketplace/identity-service/internal/infrastructure/db/redis"
	memsession "github.com/marketplace/identity-service/internal/infrastructure/session"
	"github.com/marketplace/identity-service/internal/pkg/config"
	"github.com/marketplace/identity-service/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("account index creation failed")
	}

	var (
		sessionStore ports.SessionStore
		rdb          *redis.Client
	)
	switch cfg.Session.Backend {
	case "redis":
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		sessionStore = redisdb.NewSessionStore(rdb, cfg.Session.TTL)
	default:
		sessionStore = memsession.NewMemoryStore(cfg.Session.TTL)
	}

	e := api.NewRouter(db, rdb, sessionStore, api.RouterConfig{
		SessionSecret: cfg.Session.Secret,
		CookieMaxAge:  int(cfg.Session.TTL.Seconds()),
		AdminRoles:    cfg.AdminRoles,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("sessions", cfg.Session.Backend).Msg("identity service listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
