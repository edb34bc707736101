package creditgrant

import (
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/shopspring/decimal"
)

// CreditGrant is a discrete unit of store credit owned by a customer.
// OriginalAmount never changes after issuance; RemainingAmount only ever
// decreases, and only through order completion.
type CreditGrant struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customer_id"`
	Currency        string          `json:"currency"`
	OriginalAmount  decimal.Decimal `json:"original_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	EnvironmentID   string          `json:"environment_id"`
	types.BaseModel
}

// Validate validates the credit grant
func (g *CreditGrant) Validate() error {
	if g.CustomerID == "" {
		return ierr.NewError("customer_id is required").Mark(ierr.ErrValidation)
	}
	if g.Currency == "" {
		return ierr.NewError("currency is required").Mark(ierr.ErrValidation)
	}
	if g.OriginalAmount.IsNegative() {
		return ierr.NewError("original_amount cannot be negative").
			WithHint("Credit grant amount must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if g.RemainingAmount.IsNegative() || g.RemainingAmount.GreaterThan(g.OriginalAmount) {
		return ierr.NewError("remaining_amount must be between zero and original_amount").
			WithReportableDetails(map[string]interface{}{
				"original_amount":  g.OriginalAmount,
				"remaining_amount": g.RemainingAmount,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AvailableTotal sums the remaining amounts of the given grants
func AvailableTotal(grants []*CreditGrant) decimal.Decimal {
	total := decimal.Zero
	for _, g := range grants {
		total = total.Add(g.RemainingAmount)
	}
	return total
}
