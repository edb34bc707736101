package testutil

import (
	"context"

	"github.com/flexcart/flexcart/internal/types"
)

// Restorer captures and restores a store's full contents so failed
// transactions can be unwound.
type Restorer interface {
	Snapshot() interface{}
	Restore(snapshot interface{})
}

// InMemoryDBClient is a postgres.IClient stand-in for tests. WithTx snapshots
// the registered stores before running fn and restores them when fn returns an
// error, so a failed transaction leaves no partial writes behind. Nested calls
// join the outer transaction. Advisory locks are no-ops.
type InMemoryDBClient struct {
	stores []Restorer
}

func NewInMemoryDBClient(stores ...Restorer) *InMemoryDBClient {
	return &InMemoryDBClient{stores: stores}
}

type txActiveKey struct{}

func (c *InMemoryDBClient) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if active, ok := ctx.Value(txActiveKey{}).(bool); ok && active {
		return fn(ctx)
	}
	ctx = context.WithValue(ctx, txActiveKey{}, true)

	snapshots := make([]interface{}, len(c.stores))
	for i, store := range c.stores {
		snapshots[i] = store.Snapshot()
	}

	if err := fn(ctx); err != nil {
		for i, store := range c.stores {
			store.Restore(snapshots[i])
		}
		return err
	}
	return nil
}

func (c *InMemoryDBClient) LockKey(_ context.Context, _ types.LockRequest) error {
	return nil
}
