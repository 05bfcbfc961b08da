package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wordsprint/wordsprint-api/internal/api"
	apiMiddleware "github.com/wordsprint/wordsprint-api/internal/api/middleware"
	"github.com/wordsprint/wordsprint-api/internal/api/shared"
	"github.com/wordsprint/wordsprint-api/internal/service/auth"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
)

const healthTimeout = 2 * time.Second

// routerDeps is everything the HTTP layer needs.
type routerDeps struct {
	service   learning.Service
	validator auth.TokenValidator
	quiz      api.QuizDefaults
	logger    *slog.Logger
	// health reports whether the database is reachable. Nil means always healthy.
	health func(ctx context.Context) error
}

// newRouter creates and configures the application router with all routes
// and middleware.
func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(deps.logger))

	wordHandler := api.NewWordHandler(deps.service, deps.quiz.Count, deps.logger)
	userWordHandler := api.NewUserWordHandler(deps.service, deps.quiz.Count, deps.logger)
	quizHandler := api.NewQuizHandler(deps.service, deps.quiz, deps.logger)
	profileHandler := api.NewProfileHandler(deps.service, deps.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.validator)

	r.Route("/api", func(r chi.Router) {
		// Public catalog preview
		r.Get("/words/random", wordHandler.RandomWords)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/user-words/assign-random", userWordHandler.AssignRandom)
			r.Get("/user-words/learning", userWordHandler.Learning)
			r.Get("/user-words/learned", userWordHandler.Learned)

			r.Post("/quiz/start", quizHandler.StartFresh)
			r.Post("/quiz/submit", quizHandler.SubmitFresh)
			r.Post("/quiz/repeat/start", quizHandler.StartReview)
			r.Post("/quiz/repeat/submit", quizHandler.SubmitReview)

			r.Get("/profile/stats", profileHandler.Stats)
		})
	})

	r.Get("/health", healthHandler(deps.health))

	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := check(ctx); err != nil {
				shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "database unavailable", err)
				return
			}
		}
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
