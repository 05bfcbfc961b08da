package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/wordsprint/wordsprint-api/internal/api/shared"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/platform/logger"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
)

// QuizDefaults are the values used when a quiz request leaves count or mode
// out.
type QuizDefaults struct {
	Count      int
	FreshMode  domain.QuizMode
	ReviewMode domain.QuizMode
}

func (d QuizDefaults) mode(kind domain.QuizKind) domain.QuizMode {
	if kind == domain.QuizKindReview {
		return d.ReviewMode
	}
	return d.FreshMode
}

// QuizHandler serves the fresh and review quiz endpoints.
type QuizHandler struct {
	svc      learning.Service
	defaults QuizDefaults
	logger   *slog.Logger
}

// NewQuizHandler creates a new QuizHandler
func NewQuizHandler(svc learning.Service, defaults QuizDefaults, log *slog.Logger) *QuizHandler {
	if svc == nil {
		panic("learning service cannot be nil for QuizHandler")
	}
	if log == nil {
		panic("logger cannot be nil for QuizHandler")
	}

	return &QuizHandler{
		svc:      svc,
		defaults: defaults,
		logger:   log.With(slog.String("component", "quiz_handler")),
	}
}

// StartFresh handles POST /api/quiz/start?count=&mode=
func (h *QuizHandler) StartFresh(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, domain.QuizKindFresh)
}

// SubmitFresh handles POST /api/quiz/submit
func (h *QuizHandler) SubmitFresh(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, domain.QuizKindFresh)
}

// StartReview handles POST /api/quiz/repeat/start?count=&mode=
func (h *QuizHandler) StartReview(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, domain.QuizKindReview)
}

// SubmitReview handles POST /api/quiz/repeat/submit
func (h *QuizHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, domain.QuizKindReview)
}

func (h *QuizHandler) start(w http.ResponseWriter, r *http.Request, kind domain.QuizKind) {
	learnerID, ok := requireLearner(w, r, h.logger)
	if !ok {
		return
	}
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	count, err := parseCount(r, h.defaults.Count)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	mode, err := parseMode(r.URL.Query().Get("mode"), h.defaults.mode(kind))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	session, err := h.svc.StartQuiz(r.Context(), learnerID, count, mode, kind)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("quiz started",
		slog.String("kind", string(kind)),
		slog.String("mode", string(mode)),
		slog.Int("questions", len(session.Questions)))

	shared.RespondWithJSON(w, r, http.StatusOK, quizToResponse(session))
}

func (h *QuizHandler) submit(w http.ResponseWriter, r *http.Request, kind domain.QuizKind) {
	learnerID, ok := requireLearner(w, r, h.logger)
	if !ok {
		return
	}

	var req SubmitQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: malformed request body: %v", domain.ErrValidation, err))
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	mode, err := parseMode(req.Mode, h.defaults.mode(kind))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	answers, err := toAnswers(req.Answers)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	result, err := h.svc.Score(r.Context(), learnerID, mode, kind, answers)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, scoreToResponse(result))
}
