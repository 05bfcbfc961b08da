package api

import (
	"log/slog"
	"net/http"

	"github.com/wordsprint/wordsprint-api/internal/api/shared"
	"github.com/wordsprint/wordsprint-api/internal/platform/logger"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
)

// WordHandler serves the public catalog endpoints.
type WordHandler struct {
	svc          learning.Service
	defaultCount int
	logger       *slog.Logger
}

// NewWordHandler creates a new WordHandler
func NewWordHandler(svc learning.Service, defaultCount int, log *slog.Logger) *WordHandler {
	if svc == nil {
		panic("learning service cannot be nil for WordHandler")
	}
	if log == nil {
		panic("logger cannot be nil for WordHandler")
	}

	return &WordHandler{
		svc:          svc,
		defaultCount: defaultCount,
		logger:       log.With(slog.String("component", "word_handler")),
	}
}

// RandomWords handles GET /api/words/random?count=
func (h *WordHandler) RandomWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	count, err := parseCount(r, h.defaultCount)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	words, err := h.svc.RandomWords(r.Context(), count)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("served random words", slog.Int("count", len(words)))
	shared.RespondWithJSON(w, r, http.StatusOK, wordsToResponse(words))
}
