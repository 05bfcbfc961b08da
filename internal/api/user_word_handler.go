package api

import (
	"log/slog"
	"net/http"

	"github.com/samber/lo"
	"github.com/wordsprint/wordsprint-api/internal/api/shared"
	"github.com/wordsprint/wordsprint-api/internal/platform/logger"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
)

// UserWordHandler serves the authenticated learner's word lists and word
// assignment.
type UserWordHandler struct {
	svc          learning.Service
	defaultCount int
	logger       *slog.Logger
}

// NewUserWordHandler creates a new UserWordHandler
func NewUserWordHandler(svc learning.Service, defaultCount int, log *slog.Logger) *UserWordHandler {
	if svc == nil {
		panic("learning service cannot be nil for UserWordHandler")
	}
	if log == nil {
		panic("logger cannot be nil for UserWordHandler")
	}

	return &UserWordHandler{
		svc:          svc,
		defaultCount: defaultCount,
		logger:       log.With(slog.String("component", "user_word_handler")),
	}
}

// AssignRandom handles POST /api/user-words/assign-random?count=
func (h *UserWordHandler) AssignRandom(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := requireLearner(w, r, h.logger)
	if !ok {
		return
	}
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	count, err := parseCount(r, h.defaultCount)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	words, err := h.svc.AssignNew(r.Context(), learnerID, count)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("assigned words", slog.Int("requested", count), slog.Int("assigned", len(words)))
	shared.RespondWithJSON(w, r, http.StatusOK, wordsToResponse(words))
}

// Learning handles GET /api/user-words/learning
func (h *UserWordHandler) Learning(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := requireLearner(w, r, h.logger)
	if !ok {
		return
	}

	entries, err := h.svc.LearningList(r.Context(), learnerID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lo.Map(entries, func(e learning.LearningEntry, _ int) LearningWordResponse {
		return LearningWordResponse{
			WordID:    e.WordID,
			English:   e.English,
			Turkish:   e.Turkish,
			CreatedAt: e.CreatedAt,
		}
	}))
}

// Learned handles GET /api/user-words/learned
func (h *UserWordHandler) Learned(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := requireLearner(w, r, h.logger)
	if !ok {
		return
	}

	entries, err := h.svc.LearnedList(r.Context(), learnerID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lo.Map(entries, func(e learning.LearnedEntry, _ int) LearnedWordResponse {
		return LearnedWordResponse{
			WordID:       e.WordID,
			English:      e.English,
			Turkish:      e.Turkish,
			CorrectCount: e.CorrectCount,
			WrongCount:   e.WrongCount,
			CreatedAt:    e.CreatedAt,
			LastTestedAt: e.LastTestedAt,
		}
	}))
}
