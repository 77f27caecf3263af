package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopwarehouse/warehouse-api/internal/api"
	"github.com/shopwarehouse/warehouse-api/internal/api/handler"
	"github.com/shopwarehouse/warehouse-api/internal/core/ports"
	"github.com/shopwarehouse/warehouse-api/internal/core/service"
	"github.com/shopwarehouse/warehouse-api/internal/infrastructure/config"
	"github.com/shopwarehouse/warehouse-api/internal/infrastructure/db/mongo"
	"github.com/shopwarehouse/warehouse-api/internal/infrastructure/db/postgres"
	"github.com/shopwarehouse/warehouse-api/internal/infrastructure/db/redis"
	"github.com/shopwarehouse/warehouse-api/internal/infrastructure/queue"
	"github.com/shopwarehouse/warehouse-api/internal/infrastructure/scheduler"
	"github.com/shopwarehouse/warehouse-api/pkg/logger"
)

// @title Warehouse API
// @version 1.0
// @description Warehouse inventory and account management.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your JWT token with the `Bearer ` prefix, e.g. "Bearer eyJhbGci..."

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "warehouse-api",
	})

	// Relational store: products always, users unless USER_STORE=mongo.
	db, err := postgres.Connect(ctx, postgres.Config{
		Driver:       cfg.Database.Driver,
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Str("driver", db.Driver()).Msg("database ready")

	health := map[string]handler.Pinger{"database": db}

	var users ports.UserRepository = postgres.NewUserRepository(db)
	if cfg.Auth.UserStore == config.UserStoreMongo {
		store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongo")
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = store.Close(closeCtx)
		}()

		mongoUsers := mongo.NewUserRepository(store.DB)
		if err := mongoUsers.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create mongo indexes")
		}
		users = mongoUsers
		health["mongo"] = store
		log.Info().Str("database", cfg.Mongo.Database).Msg("credential store: mongo")
	}

	var inventoryOpts []service.InventoryOption

	// Redis is optional: without it Idempotency-Key headers are ignored.
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, idempotency keys disabled")
	} else {
		defer rdb.Close()
		inventoryOpts = append(inventoryOpts, service.WithIdempotency(redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)))
		health["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	// Low-stock alerts.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Inventory.AlertWorkers, queue.NewLogSink(log), log)
	dispatcher.Start(workerCtx)
	inventoryOpts = append(inventoryOpts, service.WithLowStockAlerts(dispatcher))

	// Services.
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn)
	authService := service.NewAuthService(users, tokens, log)
	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Warn().Err(err).Msg("failed to create admin user")
	} else if cfg.Auth.AdminEmail != "" {
		log.Info().Str("email", cfg.Auth.AdminEmail).Msg("admin user ready")
	}

	products := postgres.NewProductRepository(db)
	inventory := service.NewInventoryService(products, cfg.Inventory.LowStockThreshold, log, inventoryOpts...)
	catalog := service.NewProductService(products, log)

	statsJob, err := scheduler.NewStatsJob(cfg.Inventory.StatsRefreshSpec, inventory, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid stats refresh schedule")
	}
	statsJob.Refresh(ctx)
	statsJob.Start()

	e := api.NewRouter(api.Deps{
		Auth:          authService,
		Verifier:      authService,
		Inventory:     inventory,
		Products:      catalog,
		Log:           log,
		AuthRateLimit: cfg.HTTP.AuthRateLimit,
		AuthRateBurst: cfg.HTTP.AuthRateBurst,
		CORSOrigins:   cfg.HTTP.CORSAllowedOrigins,
		HealthChecks:  health,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdown(e.Shutdown, statsJob, dispatcher, stopWorkers, log)
}

func shutdown(stopHTTP func(context.Context) error, stats *scheduler.StatsJob, dispatcher *queue.Dispatcher, stopWorkers context.CancelFunc, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := stopHTTP(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	stats.Stop(ctx)
	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("server stopped")
}
