// FilePath: internal/errors/errors.go
package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Error types
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeInvalidRange ErrorType = "invalid_range"
	ErrorTypeUnsupported  ErrorType = "unsupported_metric"
	ErrorTypeNoData       ErrorType = "no_data"
	ErrorTypeFetch        ErrorType = "fetch"
	ErrorTypeTransform    ErrorType = "transform"
	ErrorTypeStore        ErrorType = "store"
	ErrorTypeInternal     ErrorType = "internal"
)

// APIError represents a structured API error
type APIError struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Code      int       `json:"code"`
	RequestID string    `json:"request_id,omitempty"`
	Details   any       `json:"details,omitempty"`
	err       error     // Internal error for logging
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the internal error to errors.Is/As chains
func (e *APIError) Unwrap() error {
	return e.err
}

// WithRequestID adds a request ID to the error
func (e *APIError) WithRequestID(id string) *APIError {
	e.RequestID = id
	return e
}

// WithDetails adds additional details to the error
func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

// NewValidationError creates a new validation error
func NewValidationError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeValidation,
		Message: msg,
		Code:    http.StatusBadRequest,
		err:     err,
	}
}

// NewInvalidRangeError creates an error for a start date after the end date
func NewInvalidRangeError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRange,
		Message: msg,
		Code:    http.StatusBadRequest,
		err:     err,
	}
}

// NewUnsupportedMetricError creates an error for a metric outside the supported set
func NewUnsupportedMetricError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeUnsupported,
		Message: msg,
		Code:    http.StatusNotFound,
		err:     err,
	}
}

// NewNoDataError creates an error for a range that matched zero samples
func NewNoDataError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeNoData,
		Message: msg,
		Code:    http.StatusNotFound,
		err:     err,
	}
}

// NewFetchError creates an error for a failed device-data fetch.
// Fetch errors are retryable on the next scheduled run.
func NewFetchError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeFetch,
		Message: msg,
		Code:    http.StatusBadGateway,
		err:     err,
	}
}

// NewTransformError creates an error for a single malformed sample entry
func NewTransformError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeTransform,
		Message: msg,
		Code:    http.StatusUnprocessableEntity,
		err:     err,
	}
}

// NewStoreError creates a new store error
func NewStoreError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeStore,
		Message: msg,
		Code:    http.StatusInternalServerError,
		err:     err,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeInternal,
		Message: msg,
		Code:    http.StatusInternalServerError,
		err:     err,
	}
}

// IsNoData checks if an error is a NoData error
func IsNoData(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Type == ErrorTypeNoData
	}
	return false
}

// IsUnsupportedMetric checks if an error is an UnsupportedMetric error
func IsUnsupportedMetric(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Type == ErrorTypeUnsupported
	}
	return false
}

// IsInvalidRange checks if an error is an InvalidRange error
func IsInvalidRange(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Type == ErrorTypeInvalidRange
	}
	return false
}

// IsRetryable reports whether the next scheduled run may succeed where
// this one failed. Fetch and store failures leave the checkpoint untouched,
// so the job retries the same target date.
func IsRetryable(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Type == ErrorTypeFetch || apiErr.Type == ErrorTypeStore
	}
	return false
}
