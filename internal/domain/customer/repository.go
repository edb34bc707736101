package customer

import "context"

// Repository defines the interface for customer persistence operations
type Repository interface {
	// Create creates a new customer
	Create(ctx context.Context, c *Customer) error

	// Get retrieves a customer by ID
	Get(ctx context.Context, id string) (*Customer, error)
}
