// Copyright (c) 2026 Lotsawa. All rights reserved.

// Command api is the entry point for the Canon catalog HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the store: in-memory (seeded from fixtures) or PostgreSQL
//     (migrated on startup).
//  4. Connect to Redis when configured and use it as the tree cache.
//  5. Load the identity provider's public key when configured.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lotsawa/canon/internal/api"
	"github.com/lotsawa/canon/internal/catalog"
	"github.com/lotsawa/canon/internal/media"
	"github.com/lotsawa/canon/internal/platform/config"
	"github.com/lotsawa/canon/internal/platform/constants"
	"github.com/lotsawa/canon/internal/platform/memstore"
	"github.com/lotsawa/canon/internal/platform/middleware"
	"github.com/lotsawa/canon/internal/platform/migration"
	pgstore "github.com/lotsawa/canon/internal/platform/postgres"
	redisstore "github.com/lotsawa/canon/internal/platform/redis"
	"github.com/lotsawa/canon/internal/platform/sec"
	"github.com/lotsawa/canon/internal/search"
	"github.com/lotsawa/canon/internal/seed"
)

// stores bundles the repositories of one backend.
type stores struct {
	categories catalog.CategoryRepository
	texts      catalog.TextRepository
	editions   catalog.EditionRepository
	media      media.Repository

	checkDatabase func(context.Context) error
	close         func()
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store", cfg.StoreBackend),
	)

	// Root context for startup. A deadline catches misconfiguration quickly
	// rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Store ──────────────────────────────────────────────────────────
	var backend *stores
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		backend, err = openPostgres(startupCtx, cfg, log)
	default:
		backend, err = openMemory(startupCtx, cfg, log)
	}
	must(log, err, "open store")
	defer backend.close()

	// ── 4. Redis (optional tree cache) ────────────────────────────────────
	// Without Redis, trees are cached in process only when the data lives
	// there too; several instances sharing Postgres would drift apart.
	var treeCache catalog.TreeCache = catalog.NopTreeCache{}
	if cfg.StoreBackend != config.BackendPostgres {
		treeCache = catalog.NewMemoryTreeCache()
	}
	var checkCache func(context.Context) error
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		treeCache = catalog.NewRedisTreeCache(rdb, cfg.TreeCacheTTL, log)
		checkCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}

	// ── 5. Identity provider ──────────────────────────────────────────────
	// Without a key every request is anonymous and writes are refused.
	var verifier middleware.TokenVerifier
	if cfg.JWTPubKeyPath != "" {
		tokenVerifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, cfg.JWTIssuer)
		must(log, err, "load token verification key")
		verifier = tokenVerifier
	} else {
		log.Warn("token_verification_disabled")
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	catalogService := catalog.NewService(backend.categories, backend.texts, backend.editions, treeCache, log)
	mediaService := media.NewService(backend.media, catalogService, log)
	aggregator := search.NewAggregator(backend.texts, backend.categories, backend.media, backend.media, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: backend.checkDatabase,
		CheckCache:    checkCache,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(catalogService),
		Media:     media.NewHandler(mediaService),
		Search:    search.NewHandler(aggregator),
	}

	// The server context stops background work such as the rate limiter sweep.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, verifier, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// newLogger builds the JSON logger with the global app attribute and installs
// it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// openMemory builds the in-process store and seeds it unless disabled.
func openMemory(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	db := memstore.New()
	categories := catalog.NewMemoryCategoryRepository(db)
	texts := catalog.NewMemoryTextRepository(db)
	editions := catalog.NewMemoryEditionRepository(db)
	mediaRepository := media.NewMemoryRepository(db)

	if cfg.SeedFixtures {
		fixtures, err := seed.Default()
		if err != nil {
			return nil, err
		}
		err = seed.Load(ctx, seed.Stores{
			Categories: categories,
			Texts:      texts,
			Editions:   editions,
			Media:      mediaRepository,
		}, fixtures, log)
		if err != nil {
			return nil, err
		}
	}

	return &stores{
		categories: categories,
		texts:      texts,
		editions:   editions,
		media:      mediaRepository,
		close:      func() {},
	}, nil
}

// openPostgres connects the pool and migrates the schema.
func openPostgres(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		pool.Close()
		return nil, err
	}

	return &stores{
		categories:    catalog.NewPostgresCategoryRepository(pool),
		texts:         catalog.NewPostgresTextRepository(pool),
		editions:      catalog.NewPostgresEditionRepository(pool),
		media:         media.NewPostgresRepository(pool),
		checkDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		close: func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		},
	}, nil
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
