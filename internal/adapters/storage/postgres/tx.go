package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"guildwatch/internal/core/domain"
	"guildwatch/internal/core/ports"

	"github.com/uptrace/bun"
)

const (
	txMaxAttempts    = 3
	txInitialBackoff = 100 * time.Millisecond
)

// RunInTx runs fn inside a transaction, retrying the whole transaction up to
// three times with exponential backoff. Unique-constraint violations and
// business-rule conflicts are never retried: repeating the transaction cannot
// change the outcome.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, r ports.Repository) error) error {
	return withRetry(ctx, func() error {
		return s.root.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			return fn(ctx, &Store{db: tx, root: s.root})
		})
	})
}

func withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	backoff := txInitialBackoff

	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if !retryable(err) {
			return err
		}

		if attempt < txMaxAttempts {
			slog.Warn("Transaction failed, retrying", "attempt", attempt, "backoff", backoff, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	return lastErr
}

func retryable(err error) bool {
	var conflict *domain.ConflictError
	switch {
	case errors.Is(err, ErrDuplicate), isUniqueViolation(err):
		return false
	case errors.Is(err, ErrNotFound):
		return false
	case errors.As(err, &conflict):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
