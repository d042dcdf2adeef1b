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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/handlers"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/jobs"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/middleware"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/platform/config"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/platform/lock"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/platform/logging"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/repositories/database/pgsql"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/repositories/memory"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/pkg/database"
)

// @title Manancial Finance API
// @version 1.0
// @description Canteen stock, sales and debt, cash ledger and budget projections of the camp.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, logCloser := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	slog.SetDefault(logger)
	defer logCloser.Close()

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, health, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var rdb *redis.Client
	if cfg.RedisAddress != "" {
		if rdb, err = database.NewRedisClient(ctx, cfg.RedisAddress); err != nil {
			return err
		}
		defer rdb.Close()
	}

	var locker portsrepo.Locker = lock.NewKeyedMutex()
	if cfg.LockDriver == config.DriverRedis {
		locker = lock.NewRedisLocker(rdb, cfg.LockTTL)
		logger.Info("Using redis aggregate locks", slog.Duration("ttl", cfg.LockTTL))
	}

	container := services.NewServiceContainer(store, services.WithLocker(locker))

	scheduler, err := jobs.NewScheduler(container, jobs.Options{
		DailyCloseSpec: cfg.DailyCloseCron,
		Location:       cfg.Timezone,
	}, logger)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		scheduler.Stop(stopCtx)
	}()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.RateLimitPerMinute > 0 {
		rateLimiter, err := middleware.NewLimiter(cfg.RateLimitPerMinute, rdb)
		if err != nil {
			return err
		}
		r.Use(middleware.RateLimit(rateLimiter, "/health"))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, container, health)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore builds the storage backend selected by STORAGE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.Store, handlers.HealthCheck, func(), error) {
	if cfg.StorageDriver != config.DriverPostgres {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewStore(), nil, func() {}, nil
	}

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return nil, nil, nil, err
	}

	pool, err := database.NewPgxPool(ctx, database.PoolOptions{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		Ping:     cfg.EnableDBCheck,
	}, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return pgsql.NewStore(pool), pool.Ping, func() { database.ClosePgxPool(pool, logger) }, nil
}
