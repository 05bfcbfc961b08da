// Package auth validates bearer tokens issued by the external identity
// provider and extracts the learner they were issued for.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenValidator checks bearer tokens. Tokens are issued elsewhere; this
// service only needs to know who the caller is.
type TokenValidator interface {
	// ValidateToken verifies the token signature and time claims and returns
	// its claims. The sub claim must be the learner's UUID.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated claims of a bearer token.
type Claims struct {
	// LearnerID is parsed from the sub claim.
	LearnerID uuid.UUID

	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
