package learning

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/store"
)

// WordRepository is the catalog access the engine needs.
// store.WordStore satisfies it.
type WordRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Word, error)
	ListAll(ctx context.Context) ([]*domain.Word, error)
}

// RecordRepository is the learner-record access the engine needs.
// store.LearnerRecordStore satisfies it.
type RecordRepository interface {
	GetByLearnerAndWords(ctx context.Context, learnerID uuid.UUID, wordIDs []uuid.UUID) ([]*domain.LearnerRecord, error)
	GetByLearnerAndWordsForUpdate(ctx context.Context, learnerID uuid.UUID, wordIDs []uuid.UUID) ([]*domain.LearnerRecord, error)
	GetByLearnerAndState(ctx context.Context, learnerID uuid.UUID, state domain.LearningState) ([]*domain.LearnerRecord, error)
	ListWordIDsByLearner(ctx context.Context, learnerID uuid.UUID) ([]uuid.UUID, error)
	Insert(ctx context.Context, records []*domain.LearnerRecord) ([]*domain.LearnerRecord, error)
	Upsert(ctx context.Context, records []*domain.LearnerRecord) error
	Summarize(ctx context.Context, learnerID uuid.UUID, since time.Time) (*domain.LearnerSummary, error)
}

// Repositories groups the repositories an operation works with.
type Repositories struct {
	Words   WordRepository
	Records RecordRepository
}

// Transactor runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// NewSQLTransactor creates a Transactor that opens transactions on db and
// binds the given stores to them.
func NewSQLTransactor(db *sql.DB, words store.WordStore, records store.LearnerRecordStore) Transactor {
	if db == nil {
		panic("db cannot be nil")
	}
	if words == nil {
		panic("words cannot be nil")
	}
	if records == nil {
		panic("records cannot be nil")
	}

	return &sqlTransactor{db: db, words: words, records: records}
}

type sqlTransactor struct {
	db      *sql.DB
	words   store.WordStore
	records store.LearnerRecordStore
}

// WithinTx implements Transactor.
func (t *sqlTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, Repositories{
			Words:   t.words.WithTx(tx),
			Records: t.records.WithTx(tx),
		})
	})
}
