package order

import (
	"time"

	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/shopspring/decimal"
)

// Order represents a single customer transaction. Subtotal is the order's
// cost before any store-credit discount, computed by the external totals
// collaborator; Total is Subtotal plus all adjustment amounts (adjustments
// carry negative amounts).
type Order struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	Currency      string          `json:"currency"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
	Completed     bool            `json:"completed"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	CompletionKey *string         `json:"completion_key,omitempty"`
	EnvironmentID string          `json:"environment_id"`
	types.BaseModel
}

// HasCustomer reports whether the order is associated with a customer.
// Admin-created draft orders may not have one yet.
func (o *Order) HasCustomer() bool {
	return o.CustomerID != ""
}

// Editable reports whether the order's credit state may still change
func (o *Order) Editable() bool {
	return !o.Completed
}

// Validate validates the order
func (o *Order) Validate() error {
	if o.ID == "" {
		return ierr.NewError("id is required").Mark(ierr.ErrValidation)
	}
	if o.Currency == "" {
		return ierr.NewError("currency is required").Mark(ierr.ErrValidation)
	}
	if o.Subtotal.IsNegative() {
		return ierr.NewError("subtotal cannot be negative").Mark(ierr.ErrValidation)
	}
	return nil
}
