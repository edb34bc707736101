package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// InternalError is the error type produced by the builder. It carries a
// user-safe hint and structured details safe to report back to API callers.
type InternalError struct {
	err               error
	hint              string
	reportableDetails map[string]interface{}
}

func (e *InternalError) Error() string {
	return e.err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.err
}

// Hint returns the user-safe hint attached to err, if any.
func Hint(err error) string {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.hint
	}
	return ""
}

// ReportableDetails returns the structured details attached to err, if any.
func ReportableDetails(err error) map[string]interface{} {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.reportableDetails
	}
	return nil
}

// ErrorBuilder provides a fluent API for constructing classified errors.
// A builder is not an error itself; Mark finalizes it.
type ErrorBuilder struct {
	err               error
	hint              string
	reportableDetails map[string]interface{}
}

// NewError starts building an error from a message
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.NewWithDepth(1, msg)}
}

// NewErrorf starts building an error from a format string
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return &ErrorBuilder{err: errors.NewWithDepthf(1, format, args...)}
}

// WithError starts building an error wrapping an existing error
func WithError(err error) *ErrorBuilder {
	if err == nil {
		err = errors.NewWithDepth(1, "unknown error")
	}
	return &ErrorBuilder{err: err}
}

// WithHint attaches a user-safe hint shown in API error responses
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.hint = hint
	return b
}

// WithHintf attaches a formatted user-safe hint
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches structured details safe to return to callers
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.reportableDetails = details
	return b
}

// Mark classifies the error with one of the standard marks and finalizes it
func (b *ErrorBuilder) Mark(mark error) error {
	ie := &InternalError{
		err:               b.err,
		hint:              b.hint,
		reportableDetails: b.reportableDetails,
	}
	return errors.Mark(ie, mark)
}
