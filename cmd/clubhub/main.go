package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/solvaders/clubhub/internal/app"
	"github.com/solvaders/clubhub/internal/auth"
	"github.com/solvaders/clubhub/internal/matches"
	"github.com/solvaders/clubhub/internal/observability"
	"github.com/solvaders/clubhub/internal/platform/cache"
	"github.com/solvaders/clubhub/internal/platform/db"
	"github.com/solvaders/clubhub/internal/rbac"
	"github.com/solvaders/clubhub/internal/shared"
	"github.com/solvaders/clubhub/internal/teams"
	"github.com/solvaders/clubhub/internal/trainings"
	"github.com/solvaders/clubhub/internal/users"
	"github.com/solvaders/clubhub/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(pool)

	enqueuer := jobs.NewEnqueuer(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := enqueuer.Close(); err != nil {
			logger.Warn("enqueuer close", slog.Any("error", err))
		}
	}()

	codec := auth.NewTokenCodec(cfg.TokenSecret)
	hasher := auth.NewHasher(cfg.BcryptCost)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, hasher, codec, cfg.PasswordPolicy(), cfg.TokenTTL, enqueuer, logger)
	authHandler := auth.NewHandler(logger, authService)
	authenticator := auth.NewAuthenticator(codec, authRepo, logger, metrics)

	teamsRepo := teams.NewRepository(pool)
	memberships := rbac.NewCachedMemberships(redisClient, teamsRepo, 30*time.Second)
	guard := rbac.Guard{Policy: rbac.NewPolicy(memberships, logger)}

	teamsService := teams.NewService(teamsRepo, memberships, auditLogger, logger)
	teamsHandler := teams.NewHandler(logger, teamsService, guard)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, hasher, cfg.PasswordPolicy(), auditLogger)
	usersHandler := users.NewHandler(logger, usersService, guard)

	matchesRepo := matches.NewRepository(pool)
	matchesService := matches.NewService(matchesRepo, auditLogger, logger)
	matchesHandler := matches.NewHandler(logger, matchesService, guard)

	trainingsRepo := trainings.NewRepository(pool)
	trainingsService := trainings.NewService(trainingsRepo, auditLogger, logger)
	trainingsHandler := trainings.NewHandler(logger, trainingsService, guard)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Authenticator:    authenticator,
		AuthHandler:      authHandler,
		UsersHandler:     usersHandler,
		TeamsHandler:     teamsHandler,
		MatchesHandler:   matchesHandler,
		TrainingsHandler: trainingsHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
