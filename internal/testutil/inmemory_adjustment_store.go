package testutil

import (
	"context"

	"github.com/flexcart/flexcart/internal/domain/order"
	ierr "github.com/flexcart/flexcart/internal/errors"
)

// InMemoryAdjustmentStore implements order.AdjustmentRepository
type InMemoryAdjustmentStore struct {
	*InMemoryStore[*order.Adjustment]
}

// NewInMemoryAdjustmentStore creates a new in-memory adjustment store
func NewInMemoryAdjustmentStore() *InMemoryAdjustmentStore {
	return &InMemoryAdjustmentStore{
		InMemoryStore: NewInMemoryStore[*order.Adjustment](),
	}
}

func copyAdjustment(a *order.Adjustment) *order.Adjustment {
	if a == nil {
		return nil
	}
	copied := *a
	return &copied
}

func (s *InMemoryAdjustmentStore) Create(ctx context.Context, a *order.Adjustment) error {
	if a == nil {
		return ierr.NewError("adjustment cannot be nil").
			WithHint("Adjustment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := a.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, a.ID, copyAdjustment(a))
}

func (s *InMemoryAdjustmentStore) Update(ctx context.Context, a *order.Adjustment) error {
	if a == nil {
		return ierr.NewError("adjustment cannot be nil").
			WithHint("Adjustment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := a.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, a.ID, copyAdjustment(a))
}

func (s *InMemoryAdjustmentStore) ListByOrder(ctx context.Context, orderID string, adjustmentType order.AdjustmentType) ([]*order.Adjustment, error) {
	adjustments := s.InMemoryStore.List(ctx, func(a *order.Adjustment) bool {
		return a.OrderID == orderID && a.Type == adjustmentType
	})
	result := make([]*order.Adjustment, len(adjustments))
	for i, a := range adjustments {
		result[i] = copyAdjustment(a)
	}
	return result, nil
}

func (s *InMemoryAdjustmentStore) DeleteByOrder(ctx context.Context, orderID string, adjustmentType order.AdjustmentType) error {
	adjustments := s.InMemoryStore.List(ctx, func(a *order.Adjustment) bool {
		return a.OrderID == orderID && a.Type == adjustmentType
	})
	for _, a := range adjustments {
		if err := s.InMemoryStore.Delete(ctx, a.ID); err != nil {
			return err
		}
	}
	return nil
}
