package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	ErrTypeNetwork    ErrorType = "NETWORK"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// Sentinel conditions surfaced by the data pipeline. Both are ordinary
// return values to the caller, never panics.
var (
	// ErrDataUnavailable means the price source was unreadable or zero rows
	// survived parsing. It is the only condition meant to reach the user as
	// a visible failure.
	ErrDataUnavailable = errors.New("price data unavailable")

	// ErrNoData means a specific product has no observations in the active
	// window. A normal, expected state rather than a failure.
	ErrNoData = errors.New("no data for product")
)

// AppError is the application-level error carrying a type, a message and an
// optional cause plus context for structured logging.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair for structured logging.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNetworkError creates a network-related error.
func NewNetworkError(message string, cause error) *AppError {
	return NewAppError(ErrTypeNetwork, message, cause)
}

// NewParsingError creates a parsing-related error.
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error.
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error for a named resource.
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewDataUnavailableError wraps ErrDataUnavailable with the failing source
// so errors.Is(err, ErrDataUnavailable) holds for callers.
func NewDataUnavailableError(source string, cause error) *AppError {
	e := NewAppError(ErrTypeStorage, "price data unavailable", ErrDataUnavailable)
	if cause != nil {
		e.Cause = fmt.Errorf("%w: %w", ErrDataUnavailable, cause)
	}
	return e.WithContext("source", source)
}
