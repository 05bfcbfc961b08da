package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/wordsprint/wordsprint-api/internal/domain"
)

// WordStore defines the interface for catalog word persistence.
// Words are immutable once stored; the catalog only grows through seeding.
type WordStore interface {
	// CreateMultiple inserts catalog words, skipping any pair whose
	// (english, turkish) already exists. Returns the number of rows inserted.
	// All words must pass domain validation.
	CreateMultiple(ctx context.Context, words []*domain.Word) (int, error)

	// GetByID retrieves a word by its ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// GetByIDs retrieves the words with the given IDs keyed by ID.
	// Missing IDs are simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Word, error)

	// ListAll returns the entire catalog ordered by creation time.
	ListAll(ctx context.Context) ([]*domain.Word, error)

	// Count returns the number of words in the catalog.
	Count(ctx context.Context) (int, error)

	// WithTx returns a WordStore that runs its queries inside tx.
	WithTx(tx *sql.Tx) WordStore
}
