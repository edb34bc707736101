package service

import (
	"context"

	"github.com/flexcart/flexcart/internal/config"
	"github.com/flexcart/flexcart/internal/domain/creditgrant"
	"github.com/flexcart/flexcart/internal/domain/customer"
	"github.com/flexcart/flexcart/internal/domain/order"
	"github.com/flexcart/flexcart/internal/idempotency"
	"github.com/flexcart/flexcart/internal/logger"
	"github.com/flexcart/flexcart/internal/postgres"
	"github.com/flexcart/flexcart/internal/types"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	IdempotencyGen *idempotency.Generator

	// TotalCalculator recomputes order totals after adjustments change.
	// Defaults to flat subtraction when nil.
	TotalCalculator TotalCalculator

	CustomerRepo    customer.Repository
	OrderRepo       order.Repository
	AdjustmentRepo  order.AdjustmentRepository
	CreditGrantRepo creditgrant.Repository
}

func (p ServiceParams) totalCalculator() TotalCalculator {
	if p.TotalCalculator != nil {
		return p.TotalCalculator
	}
	return flatTotalCalculator{}
}

// TotalCalculator is the external totals collaborator: it recomputes an
// order's total after its adjustments change. Tax or shipping aware
// implementations can be plugged in; the clamp formula in the reconciler
// assumes the adjustment lands on the total as a flat subtraction, so any
// replacement that taxes credit must revisit that formula too.
type TotalCalculator interface {
	RecalculateTotals(ctx context.Context, ord *order.Order, adjustments []*order.Adjustment)
}

type flatTotalCalculator struct{}

func (flatTotalCalculator) RecalculateTotals(_ context.Context, ord *order.Order, adjustments []*order.Adjustment) {
	total := ord.Subtotal
	for _, a := range adjustments {
		total = total.Add(a.Amount)
	}
	ord.Total = types.RoundToCurrencyPrecision(total, ord.Currency)
}

// NewFlatTotalCalculator returns the default totals collaborator
func NewFlatTotalCalculator() TotalCalculator {
	return flatTotalCalculator{}
}
