package service

import (
	"context"

	"github.com/flexcart/flexcart/internal/domain/creditgrant"
	"github.com/flexcart/flexcart/internal/domain/order"
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/shopspring/decimal"
)

// StoreCreditService owns an order's store-credit state: reconciling a
// requested amount into the order's adjustment, self-healing over-applied
// orders, and draining the customer's credit grants at completion.
type StoreCreditService interface {
	// AppliedCredit returns the credit currently applied to the order,
	// derived from its store-credit adjustment
	AppliedCredit(ctx context.Context, ord *order.Order) (decimal.Decimal, error)

	// AvailableCredit returns the sum of remaining amounts across the
	// customer's credit grants
	AvailableCredit(ctx context.Context, customerID string) (decimal.Decimal, error)

	// CreditGrants returns the customer's grants in creation order
	CreditGrants(ctx context.Context, customerID string) ([]*creditgrant.CreditGrant, error)

	// Reconcile clamps the requested amount against the customer's available
	// credit and the order's pre-discount total, materializes it as the
	// order's single store-credit adjustment and recalculates totals.
	// Requesting more than is allowed clamps silently; it is not an error.
	Reconcile(ctx context.Context, ord *order.Order, requested decimal.Decimal) error

	// RemoveStoreCredits deletes the order's store-credit adjustment and
	// recalculates totals
	RemoveStoreCredits(ctx context.Context, ord *order.Order) error

	// EnsureSufficientCredit removes the order's adjustment entirely when the
	// customer's available credit no longer covers it. Runs after save on
	// editable orders only.
	EnsureSufficientCredit(ctx context.Context, ord *order.Order) error

	// ConsumeCredits permanently drains the customer's credit grants by the
	// order's applied credit, oldest grant first. Only runs on completed
	// orders, inside the completion transaction.
	ConsumeCredits(ctx context.Context, ord *order.Order) error

	// ValidateMinimum checks the order total against the configured floor
	// once the adjustment amount is finalized
	ValidateMinimum(ctx context.Context, ord *order.Order) error
}

type storeCreditService struct {
	ServiceParams
}

func NewStoreCreditService(params ServiceParams) StoreCreditService {
	return &storeCreditService{ServiceParams: params}
}

func (s *storeCreditService) AppliedCredit(ctx context.Context, ord *order.Order) (decimal.Decimal, error) {
	adjustments, err := s.AdjustmentRepo.ListByOrder(ctx, ord.ID, order.AdjustmentTypeStoreCredit)
	if err != nil {
		return decimal.Zero, err
	}
	return order.AppliedCredit(adjustments), nil
}

func (s *storeCreditService) AvailableCredit(ctx context.Context, customerID string) (decimal.Decimal, error) {
	grants, err := s.CreditGrantRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return creditgrant.AvailableTotal(grants), nil
}

func (s *storeCreditService) CreditGrants(ctx context.Context, customerID string) ([]*creditgrant.CreditGrant, error) {
	if _, err := s.CustomerRepo.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return s.CreditGrantRepo.ListByCustomer(ctx, customerID)
}

func (s *storeCreditService) Reconcile(ctx context.Context, ord *order.Order, requested decimal.Decimal) error {
	// draft orders created without a customer skip credit logic entirely
	if !ord.HasCustomer() || !ord.Editable() {
		return nil
	}

	requested = types.RoundToCurrencyPrecision(requested, ord.Currency)

	adjustments, err := s.AdjustmentRepo.ListByOrder(ctx, ord.ID, order.AdjustmentTypeStoreCredit)
	if err != nil {
		return err
	}
	applied := order.AppliedCredit(adjustments)

	available, err := s.AvailableCredit(ctx, ord.CustomerID)
	if err != nil {
		return err
	}

	// ord.Total already reflects the previous applied credit; adding it back
	// recovers the pre-discount cost so the clamp compares against what the
	// order actually costs, not a total the discount already shrank
	clamped := decimal.Min(requested, available, ord.Total.Add(applied))

	if clamped.LessThanOrEqual(decimal.Zero) {
		if err := s.AdjustmentRepo.DeleteByOrder(ctx, ord.ID, order.AdjustmentTypeStoreCredit); err != nil {
			return err
		}
		return s.recalculateAndSave(ctx, ord)
	}

	if len(adjustments) > 0 {
		// update in place so the order's other computed state survives
		adj := adjustments[0]
		adj.Amount = clamped.Neg()
		if err := s.AdjustmentRepo.Update(ctx, adj); err != nil {
			return err
		}
	} else {
		adj := &order.Adjustment{
			ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ADJUSTMENT),
			OrderID:       ord.ID,
			Type:          order.AdjustmentTypeStoreCredit,
			Label:         order.StoreCreditLabel,
			Amount:        clamped.Neg(),
			EnvironmentID: ord.EnvironmentID,
			BaseModel:     types.GetDefaultBaseModel(ctx),
		}
		if err := s.AdjustmentRepo.Create(ctx, adj); err != nil {
			return err
		}
	}

	s.Logger.Debugw("reconciled store credit",
		"order_id", ord.ID,
		"requested", requested,
		"applied", clamped,
		"available", available,
	)

	return s.recalculateAndSave(ctx, ord)
}

func (s *storeCreditService) RemoveStoreCredits(ctx context.Context, ord *order.Order) error {
	if !ord.Editable() {
		return ierr.NewError("cannot remove store credit from a completed order").
			WithHint("Completed orders cannot be modified").
			Mark(ierr.ErrInvalidOperation)
	}
	if err := s.AdjustmentRepo.DeleteByOrder(ctx, ord.ID, order.AdjustmentTypeStoreCredit); err != nil {
		return err
	}
	return s.recalculateAndSave(ctx, ord)
}

func (s *storeCreditService) EnsureSufficientCredit(ctx context.Context, ord *order.Order) error {
	if !ord.HasCustomer() || ord.Completed {
		return nil
	}

	applied, err := s.AppliedCredit(ctx, ord)
	if err != nil {
		return err
	}
	if applied.IsZero() {
		return nil
	}

	available, err := s.AvailableCredit(ctx, ord.CustomerID)
	if err != nil {
		return err
	}
	if available.GreaterThanOrEqual(applied) {
		return nil
	}

	// the customer's credit no longer covers the adjustment, likely consumed
	// by another order since it was set; remove it wholesale and let the next
	// edit cycle re-derive a valid amount
	s.Logger.Warnw("applied store credit exceeds available credit, removing adjustment",
		"order_id", ord.ID,
		"customer_id", ord.CustomerID,
		"applied", applied,
		"available", available,
	)

	if err := s.AdjustmentRepo.DeleteByOrder(ctx, ord.ID, order.AdjustmentTypeStoreCredit); err != nil {
		return err
	}
	return s.recalculateAndSave(ctx, ord)
}

func (s *storeCreditService) ValidateMinimum(ctx context.Context, ord *order.Order) error {
	if ord.Total.IsNegative() {
		return ierr.NewError("order total cannot be negative after store credit").
			WithHint("Applied store credit exceeds the order total").
			WithReportableDetails(map[string]interface{}{
				"order_id": ord.ID,
				"total":    ord.Total,
			}).
			Mark(ierr.ErrValidation)
	}

	floor := s.Config.StoreCredit.MinOrderTotal
	// a fully covered order (total exactly zero) is always allowed
	if ord.Total.IsZero() || floor.IsZero() {
		return nil
	}

	if ord.Total.LessThan(floor) {
		return ierr.NewError("order total after store credit is below the minimum").
			WithHintf("Order total after store credit must be at least %s or fully covered", floor.String()).
			WithReportableDetails(map[string]interface{}{
				"order_id":  ord.ID,
				"total":     ord.Total,
				"min_total": floor,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// recalculateAndSave hands the order to the totals collaborator and persists
// the result
func (s *storeCreditService) recalculateAndSave(ctx context.Context, ord *order.Order) error {
	adjustments, err := s.AdjustmentRepo.ListByOrder(ctx, ord.ID, order.AdjustmentTypeStoreCredit)
	if err != nil {
		return err
	}
	s.totalCalculator().RecalculateTotals(ctx, ord, adjustments)
	return s.OrderRepo.Update(ctx, ord)
}
