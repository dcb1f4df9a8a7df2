package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation error")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrUpstream             = errors.New("upstream provider error")
	ErrMalformedResponse    = errors.New("malformed model response")
	ErrInvalidResponseShape = errors.New("invalid model response shape")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s is %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// UpstreamError is returned when the model provider rejects or fails a call.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API Error: %s", e.Provider, e.Message)
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.Err}
}

// MalformedResponseError is returned when the cleaned model reply is not
// parseable as JSON. Raw and Cleaned are truncated for diagnostics.
type MalformedResponseError struct {
	Raw     string
	Cleaned string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() []error {
	return []error{ErrMalformedResponse, e.Err}
}

// InvalidShapeError is returned when the reply parses as JSON but lacks
// fields the consumer requires. Parsed holds the decoded object.
type InvalidShapeError struct {
	Reason string
	Parsed map[string]any
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("invalid model response shape: %s", e.Reason)
}

func (e *InvalidShapeError) Unwrap() error { return ErrInvalidResponseShape }
