package errors

import "net/http"

// ErrorDetail is the wire representation of a single error
type ErrorDetail struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the standard error envelope returned by the HTTP API
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewErrorResponse builds the wire representation for err. The message is the
// hint when one was attached so internal detail does not leak to callers.
func NewErrorResponse(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	msg := Hint(err)
	if msg == "" {
		msg = err.Error()
	}

	return &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Message: msg,
			Details: ReportableDetails(err),
		},
	}
}

// HTTPStatusFromErr maps an error's mark to an HTTP status code
func HTTPStatusFromErr(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsNotFound(err):
		return http.StatusNotFound
	case IsValidation(err):
		return http.StatusBadRequest
	case IsAlreadyExists(err):
		return http.StatusConflict
	case IsInvalidOperation(err):
		return http.StatusUnprocessableEntity
	case Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
