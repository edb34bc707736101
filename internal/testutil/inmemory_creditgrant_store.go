package testutil

import (
	"context"

	"github.com/flexcart/flexcart/internal/domain/creditgrant"
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/shopspring/decimal"
)

// InMemoryCreditGrantStore implements creditgrant.Repository
type InMemoryCreditGrantStore struct {
	*InMemoryStore[*creditgrant.CreditGrant]
}

// NewInMemoryCreditGrantStore creates a new in-memory credit grant store
func NewInMemoryCreditGrantStore() *InMemoryCreditGrantStore {
	return &InMemoryCreditGrantStore{
		InMemoryStore: NewInMemoryStore[*creditgrant.CreditGrant](),
	}
}

// Helper to copy credit grant
func copyCreditGrant(g *creditgrant.CreditGrant) *creditgrant.CreditGrant {
	if g == nil {
		return nil
	}
	copied := *g
	return &copied
}

func (s *InMemoryCreditGrantStore) Create(ctx context.Context, grant *creditgrant.CreditGrant) error {
	if grant == nil {
		return ierr.NewError("credit grant cannot be nil").
			WithHint("Credit grant cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := grant.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, grant.ID, copyCreditGrant(grant))
}

func (s *InMemoryCreditGrantStore) Get(ctx context.Context, id string) (*creditgrant.CreditGrant, error) {
	grant, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Credit grant not found").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyCreditGrant(grant), nil
}

func (s *InMemoryCreditGrantStore) ListByCustomer(ctx context.Context, customerID string) ([]*creditgrant.CreditGrant, error) {
	grants := s.InMemoryStore.List(ctx, func(g *creditgrant.CreditGrant) bool {
		return g.CustomerID == customerID
	})
	result := make([]*creditgrant.CreditGrant, len(grants))
	for i, g := range grants {
		result[i] = copyCreditGrant(g)
	}
	return result, nil
}

func (s *InMemoryCreditGrantStore) UpdateRemainingAmount(ctx context.Context, id string, remaining decimal.Decimal) error {
	grant, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Credit grant not found").
			Mark(ierr.ErrNotFound)
	}
	updated := copyCreditGrant(grant)
	updated.RemainingAmount = remaining
	return s.InMemoryStore.Update(ctx, id, updated)
}
