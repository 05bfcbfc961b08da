package api

import (
	"log/slog"
	"net/http"

	"github.com/wordsprint/wordsprint-api/internal/api/shared"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
)

// ProfileHandler serves the learner's progress summary.
type ProfileHandler struct {
	svc    learning.Service
	logger *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(svc learning.Service, log *slog.Logger) *ProfileHandler {
	if svc == nil {
		panic("learning service cannot be nil for ProfileHandler")
	}
	if log == nil {
		panic("logger cannot be nil for ProfileHandler")
	}

	return &ProfileHandler{
		svc:    svc,
		logger: log.With(slog.String("component", "profile_handler")),
	}
}

// Stats handles GET /api/profile/stats
func (h *ProfileHandler) Stats(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := requireLearner(w, r, h.logger)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(r.Context(), learnerID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(stats))
}
