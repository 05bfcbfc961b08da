package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/service/auth"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
	"github.com/wordsprint/wordsprint-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid count", learning.ErrInvalidCount, http.StatusBadRequest, "count must be between 1 and 50"},
		{"answers required", learning.ErrAnswersRequired, http.StatusBadRequest, "answers required"},
		{"bad mode from parser", fmt.Errorf("%w: %q", domain.ErrInvalidQuizMode, "xx"), http.StatusBadRequest, "invalid quiz mode"},
		{"bad word id", fmt.Errorf("%w: word_id", domain.ErrInvalidID), http.StatusBadRequest, "invalid word id"},
		{"body validation", fmt.Errorf("%w: missing field", domain.ErrValidation), http.StatusBadRequest, "Invalid request"},
		{"no matching words", learning.ErrNoMatchingWords, http.StatusNotFound, "no matching words for this user"},
		{
			"store unavailable inside service error",
			learning.NewServiceError("score", "failed to score answers", store.ErrUnavailable),
			http.StatusServiceUnavailable,
			"Service temporarily unavailable",
		},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable, "Service temporarily unavailable"},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized, "Invalid token"},
		{"unknown", errors.New("pq: relation \"words\" does not exist"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.status, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.message, GetSafeErrorMessage(tt.err))
		})
	}

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
