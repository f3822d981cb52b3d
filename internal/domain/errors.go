package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for boundary validation and lookups.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidDiseaseType     = errors.New("invalid disease type")
	ErrInvalidILDStatus       = errors.New("invalid ILD status")
	ErrInvalidSerology        = errors.New("invalid anti-MDA5 status")
	ErrInvalidHepaticFunction = errors.New("invalid hepatic function")
	ErrNarrativeDisabled      = errors.New("narrative generation is disabled")
)

// APIError is the error envelope returned by the HTTP surface.
type APIError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for different failure scenarios
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeExternalAPI  = "EXTERNAL_API_ERROR"
	ErrCodeInternal     = "INTERNAL_SERVER_ERROR"
)

// NewAPIError creates a new APIError with timestamp
func NewAPIError(code, message, details, requestID string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}
