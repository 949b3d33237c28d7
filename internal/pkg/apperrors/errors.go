package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrCommentNotFound  = errors.New("comment not found")

	// Authentication errors
	ErrUnauthorized  = errors.New("authentication required")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Store errors
	ErrStore = errors.New("store failure")
)

// NewFieldValidationError creates a validation error attributed to an input field
func NewFieldValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

// NewNotFoundError creates a not found error. The target must be ErrResourceNotFound or
// ErrCommentNotFound so callers can still match the sentinel.
func NewNotFoundError(target error, message string) error {
	return &CustomError{
		Err:     target,
		Message: message,
	}
}

// NewStoreError wraps a persistence failure. The cause stays reachable through Unwrap
// for logging but the message never reaches the client.
func NewStoreError(op string, cause error) error {
	return &CustomError{
		Err:     ErrStore,
		Message: op,
		Cause:   cause,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
	Cause   error
}

// Error implements error interface
func (e *CustomError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "unknown error"
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// PublicMessage returns the message that is safe to show to clients
func PublicMessage(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" && !errors.Is(ce.Err, ErrStore) {
		return ce.Message
	}
	return ""
}

// FieldOf returns the rejected input field, if one was recorded
func FieldOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}
