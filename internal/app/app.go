package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/rediscache"
	"github.com/heartmarshall/healthtrack-backend/internal/config"
	"github.com/heartmarshall/healthtrack-backend/internal/transport/middleware"
	"github.com/heartmarshall/healthtrack-backend/migrations"
)

// ServiceName identifies the service in logs and the health endpoint.
const ServiceName = "healthtrack"

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL and the optional Redis cache, wires the services and serves
// HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	cache, closeCache, err := newCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := newHandler(cfg, logger, pool, cache, limiter)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// insightsCache is the Redis-backed cache seen by the services and the
// health check.
type insightsCache interface {
	Get(ctx context.Context, userID uuid.UUID, key string, dst any) (int64, bool)
	Set(ctx context.Context, userID uuid.UUID, ver int64, key string, value any)
	Invalidate(ctx context.Context, userID uuid.UUID)
	Ping(ctx context.Context) error
}

// newCache connects to Redis when configured. A nil cache disables result
// caching; the returned close func is always safe to call.
func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (insightsCache, func(), error) {
	if !cfg.Redis.Enabled() {
		logger.Info("insights cache disabled")
		return nil, func() {}, nil
	}

	rdb, err := rediscache.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	logger.Info("insights cache enabled", slog.String("addr", cfg.Redis.Addr))

	closeFn := func() {
		if err := rdb.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			logger.Warn("close redis", slog.String("error", err.Error()))
		}
	}
	return rediscache.New(rdb, cfg.Redis.Prefix, cfg.Insights.CacheTTL, logger), closeFn, nil
}
