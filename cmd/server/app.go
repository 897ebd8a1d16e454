package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/config"
	"github.com/Sanjeev-Guntha/synapse/internal/events"
	"github.com/Sanjeev-Guntha/synapse/internal/generation"
	"github.com/Sanjeev-Guntha/synapse/internal/platform/gemini"
	"github.com/Sanjeev-Guntha/synapse/internal/platform/memory"
	"github.com/Sanjeev-Guntha/synapse/internal/platform/postgres"
	redisstore "github.com/Sanjeev-Guntha/synapse/internal/platform/redis"
	"github.com/Sanjeev-Guntha/synapse/internal/service/auth"
	"github.com/Sanjeev-Guntha/synapse/internal/service/learning"
	"github.com/Sanjeev-Guntha/synapse/internal/store"
	"github.com/Sanjeev-Guntha/synapse/internal/task"
	goredis "github.com/redis/go-redis/v9"
)

// application holds the shared dependencies and owns their shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Session backends; at most one is set.
	db  *sql.DB
	rdb *goredis.Client

	sessionStore store.SessionStore
	jwtService   auth.JWTService
	sessions     *auth.SessionService

	generator    generation.Generator
	eventEmitter *events.InMemoryEventEmitter
	learning     *learning.Service

	taskStore  *task.MemoryTaskStore
	taskRunner *task.TaskRunner
}

// newApplication wires every component from cfg. Nothing is started; Run
// starts the task runner and the HTTP server.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: logger}

	var err error
	app.sessionStore, err = app.openSessionStore(ctx)
	if err != nil {
		app.cleanup()
		return nil, err
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.sessions, err = auth.NewSessionService(app.sessionStore, app.jwtService, auth.SessionConfig{
		Key:   cfg.Session.Key,
		Delay: time.Duration(cfg.Auth.SimulatedDelayMS) * time.Millisecond,
	}, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}
	if err := app.sessions.Restore(ctx); err != nil {
		// A corrupt snapshot should not keep the server down; the user signs in again.
		logger.Warn("failed to restore session, starting signed out", "error", err)
	}

	app.generator, err = newGenerator(ctx, cfg.Generation, logger)
	if err != nil {
		app.cleanup()
		return nil, err
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.learning, err = learning.NewService(app.generator, app.eventEmitter, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create learning service: %w", err)
	}

	app.taskStore = task.NewMemoryTaskStore()
	app.taskRunner = task.NewTaskRunner(app.taskStore, task.TaskRunnerConfig{
		QueueSize:    cfg.Task.QueueSize,
		WorkerCount:  cfg.Task.WorkerCount,
		StuckTaskAge: time.Duration(cfg.Task.StuckTaskAgeMinutes) * time.Minute,
	}, logger)

	factory := task.NewContentGenerationTaskFactory(app.learning, logger)
	app.eventEmitter.Subscribe(events.TypeContentGeneration,
		task.NewTaskFactoryEventHandler(factory, app.taskRunner, logger))

	logger.Info("application initialized")
	return app, nil
}

// openSessionStore connects the configured session backend.
func (app *application) openSessionStore(ctx context.Context) (store.SessionStore, error) {
	cfg := app.config
	switch cfg.Session.Backend {
	case config.SessionBackendPostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL, app.logger)
		if err != nil {
			return nil, err
		}
		app.db = db
		if err := postgres.Migrate(ctx, db, app.logger); err != nil {
			return nil, err
		}
		return postgres.NewSessionStore(db), nil

	case config.SessionBackendRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		app.rdb = rdb
		app.logger.Info("redis connection established")
		return redisstore.NewSessionStore(rdb), nil

	default:
		app.logger.Warn("using in-memory session store, sessions will not survive a restart")
		return memory.NewSessionStore(), nil
	}
}

// newGenerator builds the configured content generator.
func newGenerator(ctx context.Context, cfg config.GenerationConfig, logger *slog.Logger) (generation.Generator, error) {
	if cfg.Provider == config.ProviderGemini {
		gen, err := gemini.NewGenerator(ctx, logger.With("component", "gemini_generator"), gemini.Config{
			APIKey:            cfg.GeminiAPIKey,
			ModelName:         cfg.ModelName,
			FlashcardCount:    cfg.FlashcardCount,
			QuizQuestionCount: cfg.QuizQuestionCount,
			MaxRetries:        3,
			RetryDelay:        time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini generator: %w", err)
		}
		logger.Info("gemini generator initialized", "model", cfg.ModelName)
		return gen, nil
	}

	gen, err := generation.NewSimulatedGenerator(generation.SimulatedConfig{
		Delay:             time.Duration(cfg.DelayMS) * time.Millisecond,
		FlashcardCount:    cfg.FlashcardCount,
		QuizQuestionCount: cfg.QuizQuestionCount,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize simulated generator: %w", err)
	}
	return gen, nil
}

// cleanup stops the task runner and closes backend connections.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Error("error closing redis connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
