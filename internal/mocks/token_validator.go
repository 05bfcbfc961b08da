package mocks

import (
	"context"

	"github.com/wordsprint/wordsprint-api/internal/service/auth"
)

// MockTokenValidator implements auth.TokenValidator for testing
type MockTokenValidator struct {
	// ValidateTokenFn overrides the fixed Claims/Err result when set
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	Claims *auth.Claims
	Err    error
}

// ValidateToken implements the auth.TokenValidator interface
func (m *MockTokenValidator) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.Err
}

var _ auth.TokenValidator = (*MockTokenValidator)(nil)
