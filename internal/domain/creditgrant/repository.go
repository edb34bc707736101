package creditgrant

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for credit grant persistence operations
type Repository interface {
	// Create creates a new credit grant
	Create(ctx context.Context, grant *CreditGrant) error

	// Get retrieves a credit grant by ID
	Get(ctx context.Context, id string) (*CreditGrant, error)

	// ListByCustomer retrieves all of a customer's grants in creation order,
	// oldest first. Consumption depends on this ordering being stable.
	ListByCustomer(ctx context.Context, customerID string) ([]*CreditGrant, error)

	// UpdateRemainingAmount sets the remaining amount of a grant
	UpdateRemainingAmount(ctx context.Context, id string, remaining decimal.Decimal) error
}
