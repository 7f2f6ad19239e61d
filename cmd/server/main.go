package main

import (
	"context" // context package is needed for Redis operations

	"ledger_system/internal/api"      // Custom package for API handlers
	"ledger_system/internal/config"   // Custom package for configuration
	"ledger_system/internal/db"       // Database connection and migration
	"ledger_system/internal/events"   // Notification sinks
	"ledger_system/internal/ledger"   // Ledger service
	"ledger_system/internal/registry" // Role registry
	"ledger_system/internal/store"    // Persistence backends

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// backend is what both services and the auth handlers need from a store
type backend interface {
	registry.Store
	ledger.Store
	api.Users
}

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	ctx := context.Background()

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}
	if cfg.Creator == "" {
		logrus.Fatal("CREATOR_ACCOUNT must be set")
	}

	log := events.NewLog()      // In-process notification log
	sinks := events.Fanout{log} // Every configured sink receives each notification
	var (
		st     backend
		lister api.EventLister
	)
	if cfg.DBDriver == config.DriverMemory {
		st = store.NewMemory()
		logrus.Warn("Using in-memory store; state is lost on restart")
	} else {
		gdb, err := db.Open(cfg)
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err)
		}
		if err := db.Migrate(gdb); err != nil {
			logrus.Fatalf("migration failed: %v", err)
		}
		st = store.NewGorm(gdb)
		outbox := events.NewStore(gdb)
		sinks = append(sinks, outbox)
		lister = outbox
	}

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		sinks = append(sinks, events.NewRedis(redisClient, cfg.RedisChannel))
	}

	reg, err := registry.New(ctx, st, sinks, cfg.Creator) // Admin bootstrap
	if err != nil {
		logrus.Fatalf("failed to bootstrap registry: %v", err)
	}
	led := ledger.New(st, sinks, ledger.WithWithdrawalLimit(cfg.WithdrawalLimit))

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(api.Deps{
		Registry:  reg,
		Ledger:    led,
		Users:     st,
		Events:    lister,
		Redis:     redisClient,
		JWTSecret: cfg.JWTSecret,
	})
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":             cfg.AppPort,
		"driver":           cfg.DBDriver,
		"withdrawal_limit": cfg.WithdrawalLimit.String(),
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
