package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/wordsprint/wordsprint-api/internal/domain"
)

// LearnerRecordStore defines the interface for per-learner word progress.
type LearnerRecordStore interface {
	// GetByLearnerAndWords returns the learner's records for the given words.
	// Words the learner has no record for are skipped.
	GetByLearnerAndWords(
		ctx context.Context,
		learnerID uuid.UUID,
		wordIDs []uuid.UUID,
	) ([]*domain.LearnerRecord, error)

	// GetByLearnerAndWordsForUpdate behaves like GetByLearnerAndWords and also
	// locks the returned rows until the surrounding transaction ends.
	// IMPORTANT: only meaningful on a store bound to a transaction via WithTx.
	GetByLearnerAndWordsForUpdate(
		ctx context.Context,
		learnerID uuid.UUID,
		wordIDs []uuid.UUID,
	) ([]*domain.LearnerRecord, error)

	// GetByLearnerAndState returns every record of the learner in state.
	GetByLearnerAndState(
		ctx context.Context,
		learnerID uuid.UUID,
		state domain.LearningState,
	) ([]*domain.LearnerRecord, error)

	// ListWordIDsByLearner returns the IDs of all words assigned to the
	// learner in any state.
	ListWordIDsByLearner(ctx context.Context, learnerID uuid.UUID) ([]uuid.UUID, error)

	// Insert creates new records. Records whose (learner, word) pair already
	// exists are skipped rather than failing the batch. Returns the records
	// that were actually inserted.
	Insert(ctx context.Context, records []*domain.LearnerRecord) ([]*domain.LearnerRecord, error)

	// Upsert writes the state, counters, and last-tested time of the records,
	// creating any that do not exist yet.
	Upsert(ctx context.Context, records []*domain.LearnerRecord) error

	// Summarize aggregates the learner's records. TodayLearned counts learned
	// records last tested at or after since.
	Summarize(ctx context.Context, learnerID uuid.UUID, since time.Time) (*domain.LearnerSummary, error)

	// WithTx returns a LearnerRecordStore that runs its queries inside tx.
	WithTx(tx *sql.Tx) LearnerRecordStore
}
