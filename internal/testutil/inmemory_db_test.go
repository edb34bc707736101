package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/flexcart/flexcart/internal/domain/customer"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustomer(ctx context.Context) *customer.Customer {
	return &customer.Customer{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		ExternalID: "ext_tx_test",
		Name:       "Tx Test",
		Email:      "tx@example.com",
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

func TestWithTxRestoresStoresOnError(t *testing.T) {
	ctx := context.Background()
	customers := NewInMemoryCustomerStore()
	db := NewInMemoryDBClient(customers)

	failure := errors.New("write rejected")
	cust := newTestCustomer(ctx)

	err := db.WithTx(ctx, func(ctx context.Context) error {
		require.NoError(t, customers.Create(ctx, cust))
		return failure
	})
	assert.ErrorIs(t, err, failure)

	// the write inside the failed transaction must not survive
	_, err = customers.Get(ctx, cust.ID)
	assert.Error(t, err)
}

func TestWithTxKeepsWritesOnSuccess(t *testing.T) {
	ctx := context.Background()
	customers := NewInMemoryCustomerStore()
	db := NewInMemoryDBClient(customers)

	cust := newTestCustomer(ctx)
	err := db.WithTx(ctx, func(ctx context.Context) error {
		return customers.Create(ctx, cust)
	})
	require.NoError(t, err)

	got, err := customers.Get(ctx, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, cust.ID, got.ID)
}

func TestWithTxNestedCallJoinsOuterTransaction(t *testing.T) {
	ctx := context.Background()
	customers := NewInMemoryCustomerStore()
	db := NewInMemoryDBClient(customers)

	failure := errors.New("inner failure")
	cust := newTestCustomer(ctx)

	err := db.WithTx(ctx, func(ctx context.Context) error {
		require.NoError(t, customers.Create(ctx, cust))
		// the nested call joins the outer transaction, so its error unwinds
		// the outer write too
		return db.WithTx(ctx, func(ctx context.Context) error {
			return failure
		})
	})
	assert.ErrorIs(t, err, failure)

	_, err = customers.Get(ctx, cust.ID)
	assert.Error(t, err)
}
