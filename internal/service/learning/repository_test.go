package learning_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordsprint/wordsprint-api/internal/platform/postgres"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
)

func newSQLTransactor(t *testing.T) (learning.Transactor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tx := learning.NewSQLTransactor(db,
		postgres.NewPostgresWordStore(db, log),
		postgres.NewPostgresLearnerRecordStore(db, log))
	return tx, mock
}

func TestSQLTransactor_CommitsOnSuccess(t *testing.T) {
	t.Parallel()
	tx, mock := newSQLTransactor(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	called := false
	err := tx.WithinTx(context.Background(), func(_ context.Context, repos learning.Repositories) error {
		called = true
		assert.NotNil(t, repos.Words)
		assert.NotNil(t, repos.Records)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTransactor_RollsBackOnError(t *testing.T) {
	t.Parallel()
	tx, mock := newSQLTransactor(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := tx.WithinTx(context.Background(), func(context.Context, learning.Repositories) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewSQLTransactor_PanicsOnNil(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		learning.NewSQLTransactor(nil, nil, nil)
	})
}
