package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wordsprint/wordsprint-api/internal/api"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/mocks"
	"github.com/wordsprint/wordsprint-api/internal/service/auth"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
)

const testToken = "valid-token"

func testRouter(t *testing.T, svc learning.Service, health func(context.Context) error) (http.Handler, uuid.UUID) {
	t.Helper()
	learnerID := uuid.New()
	validator := &mocks.MockTokenValidator{
		ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			if token != testToken {
				return nil, auth.ErrInvalidToken
			}
			return &auth.Claims{LearnerID: learnerID}, nil
		},
	}

	return newRouter(routerDeps{
		service:   svc,
		validator: validator,
		quiz: api.QuizDefaults{
			Count:      10,
			FreshMode:  domain.QuizModeTurkishToEnglishTyping,
			ReviewMode: domain.QuizModeEnglishToTurkishTyping,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		health: health,
	}), learnerID
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()
	router, _ := testRouter(t, &mocks.MockLearningService{}, nil)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/user-words/assign-random"},
		{http.MethodGet, "/api/user-words/learning"},
		{http.MethodGet, "/api/user-words/learned"},
		{http.MethodPost, "/api/quiz/start"},
		{http.MethodPost, "/api/quiz/submit"},
		{http.MethodPost, "/api/quiz/repeat/start"},
		{http.MethodPost, "/api/quiz/repeat/submit"},
		{http.MethodGet, "/api/profile/stats"},
	}

	for _, rt := range routes {
		for _, header := range []string{"", "Bearer wrong"} {
			req := httptest.NewRequest(rt.method, rt.path, nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s with %q", rt.method, rt.path, header)
		}
	}
}

func TestRouter_RoutesReachHandlers(t *testing.T) {
	t.Parallel()
	svc := &mocks.MockLearningService{}
	router, learnerID := testRouter(t, svc, nil)

	svc.On("RandomWords", mock.Anything, 3).Return([]learning.WordSummary{}, nil)
	svc.On("StartQuiz", mock.Anything, learnerID, 10, domain.QuizModeEnglishToTurkishTyping, domain.QuizKindReview).
		Return(&learning.QuizSession{
			Mode:      domain.QuizModeEnglishToTurkishTyping,
			Kind:      domain.QuizKindReview,
			Questions: []domain.QuizQuestion{},
		}, nil)
	svc.On("Stats", mock.Anything, learnerID).Return(&learning.Stats{}, nil)

	// Public, no token.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/words/random?count=3", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/quiz/repeat/start", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))

	req = httptest.NewRequest(http.MethodGet, "/api/profile/stats", nil)
	req.Header.Set("Authorization", "bearer "+testToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.AssertExpectations(t)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	router, _ := testRouter(t, &mocks.MockLearningService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/quiz/submit", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()
		router, _ := testRouter(t, &mocks.MockLearningService{}, func(context.Context) error { return nil })
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		t.Parallel()
		router, _ := testRouter(t, &mocks.MockLearningService{}, func(context.Context) error {
			return errors.New("connection refused")
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.False(t, strings.Contains(rec.Body.String(), "connection refused"))
	})
}
