package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTransient marks a store failure that survived the retry and should be
// translated by the caller rather than leaked as infrastructure detail.
var ErrTransient = errors.New("transient store failure")

// RunSerializable executes fn inside a SERIALIZABLE transaction.
// A serialization abort or deadlock is retried exactly once; if the retry
// fails the same way the error is wrapped with ErrTransient.
func RunSerializable(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context, tx pgx.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		lastErr = runOnce(ctx, pool, fn)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("%w: %w", ErrTransient, lastErr)
}

func runOnce(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// IsRetryable reports whether the error is a serialization abort or deadlock,
// the two failures worth a second attempt under serializable isolation.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}

// AcquireSpotLock takes a transaction-scoped advisory lock keyed by the spot
// ID, serializing concurrent reservation writes for the same spot while
// leaving unrelated spots uncontended. Released automatically at commit or
// rollback.
func AcquireSpotLock(ctx context.Context, tx pgx.Tx, spotID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, spotID); err != nil {
		return fmt.Errorf("failed to acquire spot lock: %w", err)
	}
	return nil
}
