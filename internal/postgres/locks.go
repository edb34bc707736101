package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/flexcart/flexcart/internal/types"
	"github.com/lib/pq"
)

// LockKey acquires a transaction-scoped advisory lock for the request key,
// waiting up to the request timeout. The lock is released automatically when
// the surrounding transaction ends, so the completion flag and the grant
// drain stay serialized per customer for the whole transaction.
func (c *Client) LockKey(ctx context.Context, req types.LockRequest) error {
	tx := c.TxFromContext(ctx)
	if tx == nil {
		return fmt.Errorf("LockKey must be called inside a transaction")
	}

	timeout := req.GetTimeout()

	// SET LOCAL is reset when the transaction ends
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", timeout.Milliseconds())); err != nil {
		return fmt.Errorf("failed to set lock timeout: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, req.Key); err != nil {
		if isLockTimeoutError(err) {
			return fmt.Errorf("failed to acquire lock within %v: %w", timeout, err)
		}
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	return nil
}

// isLockTimeoutError matches the lock_not_available error code (55P03)
func isLockTimeoutError(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "55P03"
}
