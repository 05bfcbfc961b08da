package learning

import (
	"context"
	"log/slog"

	"github.com/wordsprint/wordsprint-api/internal/store"
)

// maxTxAttempts bounds how often a transaction aborted by a concurrent
// writer is retried.
const maxTxAttempts = 3

// withRetry runs fn until it succeeds, fails with a non-retryable error, or
// maxTxAttempts is reached. fn must start a fresh transaction on every call.
func withRetry(ctx context.Context, log *slog.Logger, operation string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = fn()
		if err == nil || !store.IsRetryable(err) || ctx.Err() != nil {
			return err
		}

		log.Warn("transaction aborted by concurrent modification, retrying",
			slog.String("operation", operation),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	}
	return err
}
