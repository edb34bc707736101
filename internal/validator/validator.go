package validator

import (
	"sync"

	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest validates a request struct against its `validate` tags and
// returns a field-keyed validation error suitable for API responses.
func ValidateRequest(req interface{}) error {
	if err := GetValidator().Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return ierr.WithError(err).
				WithHint("Invalid request").
				Mark(ierr.ErrValidation)
		}

		details := make(map[string]interface{}, len(validationErrors))
		for _, fe := range validationErrors {
			details[fe.Field()] = fe.Tag()
		}

		return ierr.WithError(err).
			WithHint("Request validation failed").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
