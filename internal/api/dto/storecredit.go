package dto

import (
	"time"

	"github.com/flexcart/flexcart/internal/domain/creditgrant"
	"github.com/flexcart/flexcart/internal/domain/order"
	"github.com/flexcart/flexcart/internal/validator"
	"github.com/shopspring/decimal"
)

// ApplyStoreCreditRequest asks for a credit amount to be applied to an order.
// The amount is a request, not a guarantee: it is clamped against the
// customer's available credit and the order total.
type ApplyStoreCreditRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required" swaggertype:"string"`
}

func (r *ApplyStoreCreditRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// StoreCreditResponse reports an order's credit state after an operation
type StoreCreditResponse struct {
	OrderID       string          `json:"order_id"`
	AppliedCredit decimal.Decimal `json:"applied_credit" swaggertype:"string"`
	Subtotal      decimal.Decimal `json:"subtotal" swaggertype:"string"`
	Total         decimal.Decimal `json:"total" swaggertype:"string"`
	Currency      string          `json:"currency"`
	Completed     bool            `json:"completed"`
}

func NewStoreCreditResponse(ord *order.Order, applied decimal.Decimal) *StoreCreditResponse {
	return &StoreCreditResponse{
		OrderID:       ord.ID,
		AppliedCredit: applied,
		Subtotal:      ord.Subtotal,
		Total:         ord.Total,
		Currency:      ord.Currency,
		Completed:     ord.Completed,
	}
}

// CreditGrantResponse is the wire representation of a single credit grant
type CreditGrantResponse struct {
	ID              string          `json:"id"`
	Currency        string          `json:"currency"`
	OriginalAmount  decimal.Decimal `json:"original_amount" swaggertype:"string"`
	RemainingAmount decimal.Decimal `json:"remaining_amount" swaggertype:"string"`
	CreatedAt       time.Time       `json:"created_at"`
}

// AvailableCreditResponse lists a customer's grants and their usable total
type AvailableCreditResponse struct {
	CustomerID      string                 `json:"customer_id"`
	AvailableCredit decimal.Decimal        `json:"available_credit" swaggertype:"string"`
	Grants          []*CreditGrantResponse `json:"grants"`
}

func NewAvailableCreditResponse(customerID string, grants []*creditgrant.CreditGrant) *AvailableCreditResponse {
	resp := &AvailableCreditResponse{
		CustomerID:      customerID,
		AvailableCredit: creditgrant.AvailableTotal(grants),
		Grants:          make([]*CreditGrantResponse, len(grants)),
	}
	for i, g := range grants {
		resp.Grants[i] = &CreditGrantResponse{
			ID:              g.ID,
			Currency:        g.Currency,
			OriginalAmount:  g.OriginalAmount,
			RemainingAmount: g.RemainingAmount,
			CreatedAt:       g.CreatedAt,
		}
	}
	return resp
}
