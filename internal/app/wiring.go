package app

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/goal"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/meal"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/measurement"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/reminder"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/sleep"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/vital"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/workout"
	"github.com/heartmarshall/healthtrack-backend/internal/auth"
	"github.com/heartmarshall/healthtrack-backend/internal/config"
	authsvc "github.com/heartmarshall/healthtrack-backend/internal/service/auth"
	"github.com/heartmarshall/healthtrack-backend/internal/service/events"
	"github.com/heartmarshall/healthtrack-backend/internal/service/insights"
	"github.com/heartmarshall/healthtrack-backend/internal/service/tracking"
	usersvc "github.com/heartmarshall/healthtrack-backend/internal/service/user"
	"github.com/heartmarshall/healthtrack-backend/internal/transport/middleware"
	"github.com/heartmarshall/healthtrack-backend/internal/transport/rest"
)

// newHandler wires repositories, services and handlers into the HTTP
// handler chain. cache may be nil.
func newHandler(
	cfg *config.Config,
	logger *slog.Logger,
	pool *pgxpool.Pool,
	cache insightsCache,
	limiter *middleware.RateLimiter,
) http.Handler {
	txm := postgres.NewTxManager(pool)

	users := user.New(pool)
	tokens := token.New(pool)
	vitals := vital.New(pool)
	workouts := workout.New(pool)
	sleeps := sleep.New(pool)
	meals := meal.New(pool)

	jwt := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService := authsvc.NewService(logger, users, tokens, txm, jwt, cfg.Auth)
	userService := usersvc.NewService(logger, users, tokens, cache)
	trackingService := tracking.NewService(logger, tracking.Repos{
		Vitals:       vitals,
		Workouts:     workouts,
		Sleep:        sleeps,
		Meals:        meals,
		Measurements: measurement.New(pool),
		Goals:        goal.New(pool),
		Reminders:    reminder.New(pool),
	}, txm, cache)
	insightsService := insights.NewService(logger, insights.Readers{
		Vitals:   vitals,
		Workouts: workouts,
		Sleep:    sleeps,
		Meals:    meals,
	}, cfg.Insights, cache)
	eventService := events.NewService(logger, event.New(pool), txm)

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = promhttp.Handler()
	}

	router := rest.NewRouter(rest.Handlers{
		Health:      rest.NewHealthHandler(pool, cache, ServiceName, Version),
		Auth:        rest.NewAuthHandler(authService, logger),
		User:        rest.NewUserHandler(userService, logger),
		Records:     rest.NewRecordHandler(trackingService, logger),
		Insights:    rest.NewInsightsHandler(insightsService, logger),
		Events:      rest.NewEventHandler(eventService, logger),
		Metrics:     metricsHandler,
		MetricsPath: cfg.Metrics.Path,
	})

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.BodyLimit(cfg.Server.MaxBodyBytes),
	}
	if cfg.RateLimit.Enabled {
		mws = append(mws, middleware.ForPrefix("/api/", limiter.Limit(cfg.RateLimit.Limit, cfg.RateLimit.Window)))
	}
	mws = append(mws, middleware.Auth(authService))

	return middleware.Chain(mws...)(router)
}
