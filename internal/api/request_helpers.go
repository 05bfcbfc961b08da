package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/wordsprint/wordsprint-api/internal/api/shared"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/platform/logger"
	"github.com/wordsprint/wordsprint-api/internal/service/auth"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
)

// countQuery is the validated form of the count query parameter.
type countQuery struct {
	Count int `validate:"gte=1,lte=50"`
}

// requireLearner returns the authenticated learner or writes a 401.
func requireLearner(w http.ResponseWriter, r *http.Request, fallback *slog.Logger) (uuid.UUID, bool) {
	learnerID, ok := shared.LearnerIDFromContext(r.Context())
	if !ok {
		logger.FromContextOrDefault(r.Context(), fallback).Warn("learner ID not found in request context")
		HandleAPIError(w, r, auth.ErrMissingToken)
		return uuid.Nil, false
	}
	return learnerID, true
}

// parseCount reads the count query parameter, using def when it is absent.
func parseCount(r *http.Request, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("count"))
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", learning.ErrInvalidCount, raw)
	}
	if err := shared.ValidateRequest(&countQuery{Count: n}); err != nil {
		return 0, fmt.Errorf("%w: %v", learning.ErrInvalidCount, err)
	}
	return n, nil
}

// parseMode parses a quiz mode, using def when raw is empty.
func parseMode(raw string, def domain.QuizMode) (domain.QuizMode, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	return domain.ParseQuizMode(raw)
}

// toAnswers converts validated request answers into engine answers.
func toAnswers(req []SubmitAnswerRequest) ([]learning.Answer, error) {
	answers := make([]learning.Answer, 0, len(req))
	for _, a := range req {
		id, err := uuid.Parse(a.WordID)
		if err != nil {
			return nil, fmt.Errorf("%w: word_id %q", domain.ErrInvalidID, a.WordID)
		}
		answers = append(answers, learning.Answer{WordID: id, Answer: a.Answer})
	}
	return answers, nil
}
