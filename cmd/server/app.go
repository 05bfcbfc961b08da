package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/wordsprint/wordsprint-api/internal/api"
	"github.com/wordsprint/wordsprint-api/internal/config"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/events"
	"github.com/wordsprint/wordsprint-api/internal/platform/postgres"
	"github.com/wordsprint/wordsprint-api/internal/sampling"
	"github.com/wordsprint/wordsprint-api/internal/service/auth"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
	"github.com/wordsprint/wordsprint-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	wordStore   store.WordStore
	recordStore store.LearnerRecordStore

	tokenValidator  auth.TokenValidator
	learningService learning.Service
	eventEmitter    *events.InMemoryEventEmitter
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenValidator, err = auth.NewHMACValidator(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token validator: %w", err)
	}

	app.wordStore = postgres.NewPostgresWordStore(db, logger)
	app.recordStore = postgres.NewPostgresLearnerRecordStore(db, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewAuditLogHandler(logger))

	app.learningService = learning.NewService(
		learning.Repositories{Words: app.wordStore, Records: app.recordStore},
		learning.NewSQLTransactor(db, app.wordStore, app.recordStore),
		newSampler(cfg.Quiz, logger),
		logger,
		learning.WithEventEmitter(app.eventEmitter),
	)

	logger.Info("application initialized")
	return app, nil
}

// newSampler returns a reproducible sampler when a seed is configured.
func newSampler(cfg config.QuizConfig, logger *slog.Logger) *sampling.Sampler {
	if cfg.RandomSeed != 0 {
		logger.Warn("using a fixed random seed; quizzes are reproducible",
			slog.Uint64("seed", cfg.RandomSeed))
		return sampling.NewSeeded(cfg.RandomSeed)
	}
	return sampling.NewRandom()
}

// quizDefaults converts the configured defaults. The config loader has
// already checked the modes against the known set.
func quizDefaults(cfg config.QuizConfig) (api.QuizDefaults, error) {
	fresh, err := domain.ParseQuizMode(cfg.DefaultFreshMode)
	if err != nil {
		return api.QuizDefaults{}, fmt.Errorf("quiz.default_fresh_mode: %w", err)
	}
	review, err := domain.ParseQuizMode(cfg.DefaultReviewMode)
	if err != nil {
		return api.QuizDefaults{}, fmt.Errorf("quiz.default_review_mode: %w", err)
	}
	return api.QuizDefaults{Count: cfg.DefaultCount, FreshMode: fresh, ReviewMode: review}, nil
}

// Run serves HTTP until ctx is canceled, then shuts down and releases
// resources.
func (app *application) Run(ctx context.Context) error {
	defaults, err := quizDefaults(app.config.Quiz)
	if err != nil {
		app.cleanup()
		return err
	}

	router := newRouter(routerDeps{
		service:   app.learningService,
		validator: app.tokenValidator,
		quiz:      defaults,
		logger:    app.logger,
		health:    app.db.PingContext,
	})

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
