// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/somod-gif/cartwave-backend/internal/admin"
	"github.com/somod-gif/cartwave-backend/internal/auth"
	"github.com/somod-gif/cartwave-backend/internal/config"
	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/health"
	"github.com/somod-gif/cartwave-backend/internal/middleware"
	"github.com/somod-gif/cartwave-backend/internal/product"
	"github.com/somod-gif/cartwave-backend/internal/server"
	"github.com/somod-gif/cartwave-backend/internal/staff"
	"github.com/somod-gif/cartwave-backend/internal/store"
	"github.com/somod-gif/cartwave-backend/internal/subscription"
	"github.com/somod-gif/cartwave-backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	tokenSvc, err := auth.NewTokenService(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token service initialized",
		"algorithm", "HS256",
		"access_expire", cfg.JWT.AccessTokenExpire,
	)

	subRepo := subscription.NewRepository(db.DB)
	planRegistry, err := subscription.NewPlanRegistry(ctx, subRepo)
	if err != nil {
		return err
	}
	subSvc := subscription.NewService(subRepo, planRegistry)
	subHandler := subscription.NewHandler(subSvc)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)

	storeRepo := store.NewRepository(db.DB)
	storeSvc := store.NewService(db.DB, storeRepo, subSvc)
	storeHandler := store.NewHandler(storeSvc)

	productRepo := product.NewRepository(db.DB)
	productSvc := product.NewService(db.DB, productRepo, subSvc)
	productHandler := product.NewHandler(productSvc)

	staffRepo := staff.NewRepository(db.DB)
	staffSvc := staff.NewService(db.DB, staffRepo, subSvc)
	staffHandler := staff.NewHandler(staffSvc)

	authSvc := auth.NewService(userSvc, storeSvc, tokenSvc)
	authHandler := auth.NewHandler(authSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Plans:      planRegistry,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.TenantAuthenticator(
		tokenSvc,
		userSvc,
		storeSvc,
		cfg.Tenant,
	)
	adminOnly := middleware.RequireRole(user.RoleSuperAdmin)

	planLimiter := middleware.PlanTieredRateLimiter(
		redis.Client,
		subSvc,
		middleware.DefaultPlanTiers,
	)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		storeHandler.RegisterRoutes(r, authenticator)
		subHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)

		// Tenant-scoped surfaces get the per-plan throttle on top of the
		// global limiter. The authenticator must run first so the limiter
		// sees the bound tenant; the handlers' own authenticator use is a
		// nested invocation against the same scope.
		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(planLimiter)
			productHandler.RegisterRoutes(r, authenticator)
			staffHandler.RegisterRoutes(r, authenticator)
		})
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
