package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeAuthFailure indicates the provider rejected a sign-in attempt.
	ErrCodeAuthFailure ErrorCode = "auth_failure"
	// ErrCodeSignOutFailure indicates the provider rejected a sign-out attempt.
	ErrCodeSignOutFailure ErrorCode = "sign_out_failure"
	// ErrCodeTimeout indicates a bounded wait elapsed.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeTransport indicates a network-level fault.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeServerStatus indicates a non-200 response from a collaborator.
	ErrCodeServerStatus ErrorCode = "server_status"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message,
// and optional cause. It supports error wrapping and unwrapping for use
// with errors.Is and errors.As.
//
// All failures in this system are non-fatal: they are converted into
// state values plus messages at the controller boundary and never
// terminate the process.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// AuthFailure creates a new AuthFailure error wrapping the provider fault.
func AuthFailure(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeAuthFailure, Message: message, Cause: cause}
}

// SignOutFailure creates a new SignOutFailure error wrapping the provider fault.
func SignOutFailure(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeSignOutFailure, Message: message, Cause: cause}
}

// Timeout creates a new Timeout error.
func Timeout(message string) *AppError {
	return &AppError{Code: ErrCodeTimeout, Message: message}
}

// Transport creates a new Transport error wrapping the network fault.
func Transport(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: message, Cause: cause}
}

// ServerStatus creates a new ServerStatus error for a non-200 response.
func ServerStatus(message string) *AppError {
	return &AppError{Code: ErrCodeServerStatus, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Internal creates a new Internal error.
func Internal(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, Cause: cause}
}

// CodeOf extracts the ErrorCode from err, walking the wrap chain.
// Returns ErrCodeInternal when err carries no AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
