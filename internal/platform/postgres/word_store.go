package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/platform/logger"
	"github.com/wordsprint/wordsprint-api/internal/store"
)

// wordInsertBatchSize keeps multi-row inserts well under the 65535 bind
// parameter limit.
const wordInsertBatchSize = 500

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// WithTx implements store.WordStore.WithTx
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{
		db:     tx,
		logger: s.logger,
	}
}

// CreateMultiple implements store.WordStore.CreateMultiple.
// Pairs that already exist are skipped via the (english, turkish) unique key.
func (s *PostgresWordStore) CreateMultiple(ctx context.Context, words []*domain.Word) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, w := range words {
		if err := w.Validate(); err != nil {
			log.Warn("rejected invalid word", slog.String("english", w.English), slog.String("error", err.Error()))
			return 0, store.NewStoreError("word", "insert", "invalid word", fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
		}
	}

	inserted := 0
	for _, batch := range lo.Chunk(words, wordInsertBatchSize) {
		args := make([]any, 0, len(batch)*4)
		for _, w := range batch {
			args = append(args, w.ID, w.English, w.Turkish, w.CreatedAt)
		}

		query := `INSERT INTO words (id, english, turkish, created_at) VALUES ` +
			valuesPlaceholders(len(batch), 4, 0) +
			` ON CONFLICT (english, turkish) DO NOTHING`

		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			log.Error("failed to insert words", slog.Int("batch_size", len(batch)), slog.String("error", err.Error()))
			return inserted, store.NewStoreError("word", "insert", "failed to insert words", MapError(err))
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, store.NewStoreError("word", "insert", "failed to read rows affected", MapError(err))
		}
		inserted += int(affected)
	}

	log.Debug("inserted catalog words", slog.Int("requested", len(words)), slog.Int("inserted", inserted))
	return inserted, nil
}

// GetByID implements store.WordStore.GetByID
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	query := `SELECT id, english, turkish, created_at FROM words WHERE id = $1`

	var w domain.Word
	err := s.db.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.English, &w.Turkish, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get word",
			slog.String("word_id", id.String()),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("word", "get", "failed to get word", MapError(err))
	}

	return &w, nil
}

// GetByIDs implements store.WordStore.GetByIDs
func (s *PostgresWordStore) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Word, error) {
	result := make(map[uuid.UUID]*domain.Word, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT id, english, turkish, created_at FROM words WHERE id = ANY($1::uuid[])`

	words, err := s.query(ctx, "get_many", query, uuidArray(lo.Uniq(ids)))
	if err != nil {
		return nil, err
	}

	for _, w := range words {
		result[w.ID] = w
	}
	return result, nil
}

// ListAll implements store.WordStore.ListAll
func (s *PostgresWordStore) ListAll(ctx context.Context) ([]*domain.Word, error) {
	query := `SELECT id, english, turkish, created_at FROM words ORDER BY created_at, id`
	return s.query(ctx, "list", query)
}

// Count implements store.WordStore.Count
func (s *PostgresWordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&n); err != nil {
		return 0, store.NewStoreError("word", "count", "failed to count words", MapError(err))
	}
	return n, nil
}

func (s *PostgresWordStore) query(ctx context.Context, operation, query string, args ...any) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query words", slog.String("operation", operation), slog.String("error", err.Error()))
		return nil, store.NewStoreError("word", operation, "failed to query words", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	words := make([]*domain.Word, 0)
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.ID, &w.English, &w.Turkish, &w.CreatedAt); err != nil {
			return nil, store.NewStoreError("word", operation, "failed to scan word", MapError(err))
		}
		words = append(words, &w)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating word rows", slog.String("operation", operation), slog.String("error", err.Error()))
		return nil, store.NewStoreError("word", operation, "failed to iterate words", MapError(err))
	}

	return words, nil
}
