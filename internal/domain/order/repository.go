package order

import "context"

// Repository defines the interface for order persistence operations
type Repository interface {
	// Create creates a new order
	Create(ctx context.Context, o *Order) error

	// Get retrieves an order by ID
	Get(ctx context.Context, id string) (*Order, error)

	// Update updates an order in place
	Update(ctx context.Context, o *Order) error
}

// AdjustmentRepository defines the interface for adjustment persistence operations
type AdjustmentRepository interface {
	// Create creates a new adjustment
	Create(ctx context.Context, a *Adjustment) error

	// Update updates an adjustment's amount in place
	Update(ctx context.Context, a *Adjustment) error

	// ListByOrder retrieves an order's adjustments of the given type in
	// creation order
	ListByOrder(ctx context.Context, orderID string, adjustmentType AdjustmentType) ([]*Adjustment, error)

	// DeleteByOrder deletes all of an order's adjustments of the given type
	DeleteByOrder(ctx context.Context, orderID string, adjustmentType AdjustmentType) error
}
