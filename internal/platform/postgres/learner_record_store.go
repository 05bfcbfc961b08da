package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/platform/logger"
	"github.com/wordsprint/wordsprint-api/internal/store"
)

// recordWriteBatchSize keeps multi-row writes under the bind parameter limit.
const recordWriteBatchSize = 500

// recordKey is the primary key of a learner_words row.
type recordKey struct {
	learnerID uuid.UUID
	wordID    uuid.UUID
}

const recordColumns = `learner_id, word_id, state, correct_count, wrong_count, created_at, last_tested_at`

// PostgresLearnerRecordStore implements the store.LearnerRecordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLearnerRecordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLearnerRecordStore creates a new PostgreSQL implementation of the
// LearnerRecordStore interface. If logger is nil, a default logger will be used.
func NewPostgresLearnerRecordStore(db store.DBTX, logger *slog.Logger) *PostgresLearnerRecordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLearnerRecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "learner_record_store")),
	}
}

// Ensure PostgresLearnerRecordStore implements store.LearnerRecordStore interface
var _ store.LearnerRecordStore = (*PostgresLearnerRecordStore)(nil)

// WithTx implements store.LearnerRecordStore.WithTx
func (s *PostgresLearnerRecordStore) WithTx(tx *sql.Tx) store.LearnerRecordStore {
	return &PostgresLearnerRecordStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetByLearnerAndWords implements store.LearnerRecordStore.GetByLearnerAndWords
func (s *PostgresLearnerRecordStore) GetByLearnerAndWords(
	ctx context.Context,
	learnerID uuid.UUID,
	wordIDs []uuid.UUID,
) ([]*domain.LearnerRecord, error) {
	if len(wordIDs) == 0 {
		return []*domain.LearnerRecord{}, nil
	}

	query := `SELECT ` + recordColumns + `
		FROM learner_words
		WHERE learner_id = $1 AND word_id = ANY($2::uuid[])
		ORDER BY word_id`

	return s.query(ctx, "get_many", query, learnerID, uuidArray(lo.Uniq(wordIDs)))
}

// GetByLearnerAndWordsForUpdate implements store.LearnerRecordStore.GetByLearnerAndWordsForUpdate.
// Rows are locked in word_id order so concurrent callers acquire locks in the
// same sequence.
func (s *PostgresLearnerRecordStore) GetByLearnerAndWordsForUpdate(
	ctx context.Context,
	learnerID uuid.UUID,
	wordIDs []uuid.UUID,
) ([]*domain.LearnerRecord, error) {
	if len(wordIDs) == 0 {
		return []*domain.LearnerRecord{}, nil
	}

	query := `SELECT ` + recordColumns + `
		FROM learner_words
		WHERE learner_id = $1 AND word_id = ANY($2::uuid[])
		ORDER BY word_id
		FOR UPDATE`

	return s.query(ctx, "lock_many", query, learnerID, uuidArray(lo.Uniq(wordIDs)))
}

// GetByLearnerAndState implements store.LearnerRecordStore.GetByLearnerAndState
func (s *PostgresLearnerRecordStore) GetByLearnerAndState(
	ctx context.Context,
	learnerID uuid.UUID,
	state domain.LearningState,
) ([]*domain.LearnerRecord, error) {
	query := `SELECT ` + recordColumns + `
		FROM learner_words
		WHERE learner_id = $1 AND state = $2
		ORDER BY created_at, word_id`

	return s.query(ctx, "list_by_state", query, learnerID, string(state))
}

// ListWordIDsByLearner implements store.LearnerRecordStore.ListWordIDsByLearner
func (s *PostgresLearnerRecordStore) ListWordIDsByLearner(ctx context.Context, learnerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word_id FROM learner_words WHERE learner_id = $1`, learnerID)
	if err != nil {
		return nil, store.NewStoreError("learner_record", "list_word_ids", "failed to query word ids", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, store.NewStoreError("learner_record", "list_word_ids", "failed to scan word id", MapError(err))
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("learner_record", "list_word_ids", "failed to iterate word ids", MapError(err))
	}

	return ids, nil
}

// Insert implements store.LearnerRecordStore.Insert.
// Existing (learner, word) pairs are left untouched and omitted from the result.
func (s *PostgresLearnerRecordStore) Insert(
	ctx context.Context,
	records []*domain.LearnerRecord,
) ([]*domain.LearnerRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateRecords(records, "insert"); err != nil {
		return nil, err
	}

	inserted := make([]*domain.LearnerRecord, 0, len(records))
	for _, batch := range lo.Chunk(records, recordWriteBatchSize) {
		query := `INSERT INTO learner_words (` + recordColumns + `) VALUES ` +
			valuesPlaceholders(len(batch), 7, 0) + `
			ON CONFLICT (learner_id, word_id) DO NOTHING
			RETURNING learner_id, word_id`

		rows, err := s.db.QueryContext(ctx, query, recordArgs(batch)...)
		if err != nil {
			log.Error("failed to insert learner records",
				slog.Int("batch_size", len(batch)),
				slog.String("error", err.Error()))
			return nil, store.NewStoreError("learner_record", "insert", "failed to insert records", MapError(err))
		}

		created := make(map[recordKey]bool, len(batch))
		for rows.Next() {
			var learnerID, wordID uuid.UUID
			if err := rows.Scan(&learnerID, &wordID); err != nil {
				_ = rows.Close()
				return nil, store.NewStoreError("learner_record", "insert", "failed to scan inserted key", MapError(err))
			}
			created[recordKey{learnerID: learnerID, wordID: wordID}] = true
		}
		iterErr := rows.Err()
		_ = rows.Close()
		if iterErr != nil {
			return nil, store.NewStoreError("learner_record", "insert", "failed to read inserted keys", MapError(iterErr))
		}

		inserted = append(inserted, lo.Filter(batch, func(r *domain.LearnerRecord, _ int) bool {
			return created[recordKey{learnerID: r.LearnerID, wordID: r.WordID}]
		})...)
	}

	if skipped := len(records) - len(inserted); skipped > 0 {
		log.Debug("skipped already assigned words", slog.Int("skipped", skipped))
	}

	return inserted, nil
}

// Upsert implements store.LearnerRecordStore.Upsert
func (s *PostgresLearnerRecordStore) Upsert(ctx context.Context, records []*domain.LearnerRecord) error {
	if err := validateRecords(records, "upsert"); err != nil {
		return err
	}

	for _, batch := range lo.Chunk(records, recordWriteBatchSize) {
		query := `INSERT INTO learner_words (` + recordColumns + `) VALUES ` +
			valuesPlaceholders(len(batch), 7, 0) + `
			ON CONFLICT (learner_id, word_id) DO UPDATE SET
				state = EXCLUDED.state,
				correct_count = EXCLUDED.correct_count,
				wrong_count = EXCLUDED.wrong_count,
				last_tested_at = EXCLUDED.last_tested_at`

		if _, err := s.db.ExecContext(ctx, query, recordArgs(batch)...); err != nil {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to upsert learner records",
				slog.Int("batch_size", len(batch)),
				slog.String("error", err.Error()))
			return store.NewStoreError("learner_record", "upsert", "failed to upsert records", MapError(err))
		}
	}

	return nil
}

// Summarize implements store.LearnerRecordStore.Summarize
func (s *PostgresLearnerRecordStore) Summarize(
	ctx context.Context,
	learnerID uuid.UUID,
	since time.Time,
) (*domain.LearnerSummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE state = 'learned'),
			COUNT(*) FILTER (WHERE state = 'learning'),
			COALESCE(SUM(correct_count), 0),
			COALESCE(SUM(wrong_count), 0),
			COUNT(*) FILTER (WHERE state = 'learned' AND last_tested_at >= $2)
		FROM learner_words
		WHERE learner_id = $1`

	var summary domain.LearnerSummary
	err := s.db.QueryRowContext(ctx, query, learnerID, since.UTC()).Scan(
		&summary.TotalLearned,
		&summary.TotalLearning,
		&summary.TotalCorrect,
		&summary.TotalWrong,
		&summary.TodayLearned,
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to summarize learner records",
			slog.String("learner_id", learnerID.String()),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("learner_record", "summarize", "failed to summarize records", MapError(err))
	}

	return &summary, nil
}

func (s *PostgresLearnerRecordStore) query(
	ctx context.Context,
	operation, query string,
	args ...any,
) ([]*domain.LearnerRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query learner records",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("learner_record", operation, "failed to query records", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	records := make([]*domain.LearnerRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, store.NewStoreError("learner_record", operation, "failed to scan record", MapError(err))
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("learner_record", operation, "failed to iterate records", MapError(err))
	}

	return records, nil
}

func scanRecord(rows *sql.Rows) (*domain.LearnerRecord, error) {
	var (
		r          domain.LearnerRecord
		state      string
		lastTested sql.NullTime
	)

	if err := rows.Scan(
		&r.LearnerID,
		&r.WordID,
		&state,
		&r.CorrectCount,
		&r.WrongCount,
		&r.CreatedAt,
		&lastTested,
	); err != nil {
		return nil, err
	}

	r.State = domain.LearningState(state)
	if lastTested.Valid {
		t := lastTested.Time.UTC()
		r.LastTestedAt = &t
	}

	return &r, nil
}

func recordArgs(records []*domain.LearnerRecord) []any {
	args := make([]any, 0, len(records)*7)
	for _, r := range records {
		var lastTested sql.NullTime
		if r.LastTestedAt != nil {
			lastTested = sql.NullTime{Time: *r.LastTestedAt, Valid: true}
		}
		args = append(args,
			r.LearnerID,
			r.WordID,
			string(r.State),
			r.CorrectCount,
			r.WrongCount,
			r.CreatedAt,
			lastTested,
		)
	}
	return args
}

func validateRecords(records []*domain.LearnerRecord, operation string) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return store.NewStoreError("learner_record", operation, "invalid record",
				fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
		}
	}
	return nil
}
