package service

import (
	"context"

	"github.com/flexcart/flexcart/internal/domain/order"
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/shopspring/decimal"
)

// ConsumeCredits drains the customer's credit grants by the order's applied
// credit, oldest grant first. The grant that covers the last of the amount is
// partially consumed; earlier grants are zeroed. Grants already at zero are
// skipped.
//
// Must run inside the completion transaction: if the grants cannot cover the
// full applied amount the drain returns an error so the completion rolls back
// together with any partial decrements.
func (s *storeCreditService) ConsumeCredits(ctx context.Context, ord *order.Order) error {
	if !ord.Completed || !ord.HasCustomer() {
		return nil
	}

	remaining, err := s.AppliedCredit(ctx, ord)
	if err != nil {
		return err
	}
	if remaining.IsZero() {
		return nil
	}

	grants, err := s.CreditGrantRepo.ListByCustomer(ctx, ord.CustomerID)
	if err != nil {
		return err
	}

	for _, grant := range grants {
		if remaining.IsZero() {
			break
		}
		if !grant.RemainingAmount.IsPositive() {
			continue
		}

		if grant.RemainingAmount.GreaterThan(remaining) {
			if err := s.CreditGrantRepo.UpdateRemainingAmount(ctx, grant.ID, grant.RemainingAmount.Sub(remaining)); err != nil {
				return err
			}
			remaining = decimal.Zero
			break
		}

		if err := s.CreditGrantRepo.UpdateRemainingAmount(ctx, grant.ID, decimal.Zero); err != nil {
			return err
		}
		remaining = remaining.Sub(grant.RemainingAmount)
	}

	if remaining.IsPositive() {
		// can only happen if the sufficiency invariant was broken between
		// reconciliation and completion; abort rather than drop the shortfall
		return ierr.NewError("applied store credit exceeds the customer's remaining credit").
			WithHint("The customer's credit no longer covers this order").
			WithReportableDetails(map[string]interface{}{
				"order_id":    ord.ID,
				"customer_id": ord.CustomerID,
				"shortfall":   remaining,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	s.Logger.Infow("consumed store credit",
		"order_id", ord.ID,
		"customer_id", ord.CustomerID,
	)
	return nil
}
