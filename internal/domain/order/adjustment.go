package order

import (
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/shopspring/decimal"
)

// AdjustmentType identifies what kind of discount or charge an adjustment is
type AdjustmentType string

const (
	AdjustmentTypeStoreCredit AdjustmentType = "store_credit"
)

// StoreCreditLabel is the fixed display label for store-credit adjustments
const StoreCreditLabel = "Store Credit"

// Adjustment is a monetary line item attached to an order. Store-credit
// adjustments carry a negative amount: they reduce the order total. An order
// holds at most one adjustment per type; reconciliation updates it in place
// rather than appending.
type Adjustment struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	Type          AdjustmentType  `json:"type"`
	Label         string          `json:"label"`
	Amount        decimal.Decimal `json:"amount"`
	EnvironmentID string          `json:"environment_id"`
	types.BaseModel
}

// Validate validates the adjustment
func (a *Adjustment) Validate() error {
	if a.OrderID == "" {
		return ierr.NewError("order_id is required").Mark(ierr.ErrValidation)
	}
	if a.Type == "" {
		return ierr.NewError("type is required").Mark(ierr.ErrValidation)
	}
	if a.Type == AdjustmentTypeStoreCredit && a.Amount.IsPositive() {
		return ierr.NewError("store credit adjustment amount must be negative or zero").
			WithReportableDetails(map[string]interface{}{
				"amount": a.Amount,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AppliedCredit returns the credit currently applied by the given store-credit
// adjustments: the absolute value of their amounts, summed in case more than
// one row exists.
func AppliedCredit(adjustments []*Adjustment) decimal.Decimal {
	applied := decimal.Zero
	for _, a := range adjustments {
		if a.Type == AdjustmentTypeStoreCredit {
			applied = applied.Add(a.Amount.Abs())
		}
	}
	return applied
}
