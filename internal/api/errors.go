package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/wordsprint/wordsprint-api/internal/api/shared"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/service/auth"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
	"github.com/wordsprint/wordsprint-api/internal/store"
)

// MapErrorToStatusCode maps domain, engine and store errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidSubject):
		return http.StatusUnauthorized

	case errors.Is(err, learning.ErrInvalidArgument),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidQuizMode),
		errors.Is(err, domain.ErrInvalidQuizKind),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, learning.ErrNoMatchingWords),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidSubject):
		return "Invalid token"

	case errors.Is(err, learning.ErrInvalidCount):
		return "count must be between 1 and 50"
	case errors.Is(err, learning.ErrAnswersRequired):
		return "answers required"
	case errors.Is(err, learning.ErrInvalidMode),
		errors.Is(err, domain.ErrInvalidQuizMode):
		return "invalid quiz mode"
	case errors.Is(err, learning.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidQuizKind):
		return "invalid quiz kind"
	case errors.Is(err, domain.ErrInvalidID):
		return "invalid word id"
	case errors.Is(err, learning.ErrInvalidArgument),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request"

	case errors.Is(err, learning.ErrNoMatchingWords):
		return "no matching words for this user"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return "Service temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
