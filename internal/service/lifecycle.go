package service

import (
	"context"
	"time"

	"github.com/flexcart/flexcart/internal/domain/order"
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/idempotency"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/shopspring/decimal"
)

// SaveOptions carries the transient, non-persisted inputs of a save cycle
type SaveOptions struct {
	// RequestedCredit is the customer-entered "how much credit do I want to
	// apply" amount. Nil means no reconciliation this cycle.
	RequestedCredit *decimal.Decimal

	// RemoveStoreCredits removes any applied credit from the order
	RemoveStoreCredits bool
}

// OrderLifecycleService wires the store-credit pipeline into order saves and
// the completion transition. Within one save the stages run strictly in
// order: reconcile, recalculate, validate, then the sufficiency guard.
type OrderLifecycleService interface {
	// GetOrder retrieves an order by ID
	GetOrder(ctx context.Context, id string) (*order.Order, error)

	// SaveOrder persists the order and runs the store-credit save pipeline
	// around it, all inside one transaction
	SaveOrder(ctx context.Context, ord *order.Order, opts SaveOptions) error

	// CompleteOrder marks the order completed and consumes the customer's
	// credit grants in the same transaction. A second call for the same order
	// fails instead of draining twice.
	CompleteOrder(ctx context.Context, orderID string) (*order.Order, error)
}

type orderLifecycleService struct {
	ServiceParams
	storeCredit StoreCreditService
}

func NewOrderLifecycleService(params ServiceParams) OrderLifecycleService {
	return &orderLifecycleService{
		ServiceParams: params,
		storeCredit:   NewStoreCreditService(params),
	}
}

func (s *orderLifecycleService) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	return s.OrderRepo.Get(ctx, id)
}

func (s *orderLifecycleService) SaveOrder(ctx context.Context, ord *order.Order, opts SaveOptions) error {
	if err := ord.Validate(); err != nil {
		return err
	}

	return s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.upsertOrder(ctx, ord); err != nil {
			return err
		}

		if opts.RemoveStoreCredits && ord.Editable() {
			if err := s.storeCredit.RemoveStoreCredits(ctx, ord); err != nil {
				return err
			}
		}

		if opts.RequestedCredit != nil && ord.HasCustomer() && ord.Editable() {
			if err := s.storeCredit.Reconcile(ctx, ord, *opts.RequestedCredit); err != nil {
				return err
			}
			// a validation failure rolls back the whole save
			if err := s.storeCredit.ValidateMinimum(ctx, ord); err != nil {
				return err
			}
		}

		if ord.HasCustomer() && !ord.Completed {
			if err := s.storeCredit.EnsureSufficientCredit(ctx, ord); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *orderLifecycleService) CompleteOrder(ctx context.Context, orderID string) (*order.Order, error) {
	var completed *order.Order

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		ord, err := s.OrderRepo.Get(ctx, orderID)
		if err != nil {
			return err
		}

		if ord.Completed || ord.CompletionKey != nil {
			return ierr.NewError("order is already completed").
				WithHint("Orders can only be completed once").
				WithReportableDetails(map[string]interface{}{
					"order_id": ord.ID,
				}).
				Mark(ierr.ErrAlreadyExists)
		}

		if ord.HasCustomer() {
			// serialize against other orders draining the same customer's
			// grants so two orders cannot both spend not-yet-consumed credit
			key := types.GenerateLockKey(ctx, types.LockScopeCreditGrant, map[string]interface{}{
				"customer_id": ord.CustomerID,
			})
			if err := s.DB.LockKey(ctx, types.LockRequest{Key: key}); err != nil {
				return err
			}
		}

		// base finalize first, then consumption; both commit or roll back
		// together
		if err := s.finalize(ctx, ord); err != nil {
			return err
		}
		if err := s.storeCredit.ConsumeCredits(ctx, ord); err != nil {
			return err
		}

		completed = ord
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("order completed", "order_id", completed.ID)
	return completed, nil
}

// finalize durably marks the order completed and records the completion key
func (s *orderLifecycleService) finalize(ctx context.Context, ord *order.Order) error {
	now := time.Now().UTC()
	key := s.idempotencyGen().GenerateKey(idempotency.ScopeOrderCompletion, map[string]interface{}{
		"order_id": ord.ID,
	})

	ord.Completed = true
	ord.CompletedAt = &now
	ord.CompletionKey = &key
	return s.OrderRepo.Update(ctx, ord)
}

func (s *orderLifecycleService) upsertOrder(ctx context.Context, ord *order.Order) error {
	_, err := s.OrderRepo.Get(ctx, ord.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return s.OrderRepo.Create(ctx, ord)
		}
		return err
	}
	return s.OrderRepo.Update(ctx, ord)
}

func (p ServiceParams) idempotencyGen() *idempotency.Generator {
	if p.IdempotencyGen != nil {
		return p.IdempotencyGen
	}
	return idempotency.NewGenerator()
}
