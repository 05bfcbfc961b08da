package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrWordNotFound", err: ErrWordNotFound, expected: true},
		{
			name:     "wrapped ErrWordNotFound",
			err:      fmt.Errorf("failed to find word: %w", ErrWordNotFound),
			expected: true,
		},
		{
			name:     "store error wrapping not found",
			err:      NewStoreError("word", "get", "lookup failed", ErrWordNotFound),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRetryable(ErrConflict))
	assert.True(t, IsRetryable(fmt.Errorf("insert: %w", ErrDuplicate)))
	assert.False(t, IsRetryable(ErrUnavailable))
	assert.False(t, IsRetryable(nil))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	err := NewStoreError("learner_record", "upsert", "write failed", ErrUnavailable)
	assert.Equal(t,
		"upsert operation on learner_record failed: write failed: store unavailable",
		err.Error())
	assert.ErrorIs(t, err, ErrUnavailable)

	bare := NewStoreError("word", "insert", "invalid batch", nil)
	assert.Equal(t, "insert operation on word failed: invalid batch", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
