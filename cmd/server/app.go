package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	redisplatform "github.com/taskdeck/taskdeck-api/internal/platform/redis"
	"github.com/taskdeck/taskdeck-api/internal/platform/sendgrid"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
	"github.com/taskdeck/taskdeck-api/internal/task"
)

// application holds the assembled dependency graph for the server. It is
// built once at startup and shared by the router and the lifecycle code.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	redis *goredis.Client

	userStore store.UserStore
	listStore store.ListStore
	taskStore store.TaskStore

	sessions auth.SessionManager
	throttle *redisplatform.LoginThrottle
	hasher   *auth.BcryptHasher

	resetTokens *auth.ResetTokenService
	mailer      task.Mailer

	queue   *task.TaskQueue
	workers *task.WorkerPool
}

// buildApplication wires every component from configuration. The database
// and Redis connections are verified before the function returns, so a
// non-nil application is ready to serve.
func buildApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := redisplatform.Open(ctx, cfg.Redis.URL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	resetTokens, err := auth.NewResetTokenService(
		cfg.Auth.SecretKey,
		time.Duration(cfg.Auth.ResetTokenLifetimeMinutes)*time.Minute,
	)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, fmt.Errorf("failed to create reset token service: %w", err)
	}

	sessionTTL := time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute
	throttleWindow := time.Duration(cfg.Auth.LoginWindowMinutes) * time.Minute

	queue := task.NewTaskQueue(cfg.Tasks.QueueSize, logger)
	workers := task.NewWorkerPool(
		queue,
		task.WorkerPoolConfig{WorkerCount: cfg.Tasks.WorkerCount},
		logger,
	)

	app := &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		redis:       redisClient,
		userStore:   postgres.NewUserStore(db, logger),
		listStore:   postgres.NewListStore(db, logger),
		taskStore:   postgres.NewTaskStore(db, logger),
		sessions:    redisplatform.NewSessionStore(redisClient, sessionTTL, logger),
		throttle:    redisplatform.NewLoginThrottle(redisClient, cfg.Auth.LoginAttemptLimit, throttleWindow),
		hasher:      auth.NewBcryptHasher(0),
		resetTokens: resetTokens,
		mailer:      sendgrid.NewMailer(cfg.Email, logger),
		queue:       queue,
		workers:     workers,
	}
	return app, nil
}

// cookieSettings derives the cookie configuration the handlers share.
func (app *application) cookieSettings() api.CookieSettings {
	return api.CookieSettings{Secure: app.config.Server.CookieSecure}
}

// startWorkers launches the background task workers.
func (app *application) startWorkers() {
	app.workers.Start()
	app.logger.Info("background workers started",
		"worker_count", app.config.Tasks.WorkerCount)
}

// cleanup releases the application's resources in reverse dependency order.
// The queue is closed first so workers drain pending tasks before Stop.
func (app *application) cleanup() {
	app.queue.Close()
	app.workers.Stop()

	if err := app.redis.Close(); err != nil {
		app.logger.Error("failed to close redis client", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
}
