package customer

import (
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/types"
)

// Customer represents the domain model for a customer
type Customer struct {
	ID            string `json:"id"`
	ExternalID    string `json:"external_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EnvironmentID string `json:"environment_id"`
	types.BaseModel
}

// Validate validates the customer
func (c *Customer) Validate() error {
	if c.ID == "" {
		return ierr.NewError("id is required").Mark(ierr.ErrValidation)
	}
	if c.ExternalID == "" {
		return ierr.NewError("external_id is required").Mark(ierr.ErrValidation)
	}
	return nil
}
