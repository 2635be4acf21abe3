package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of console error.
type ErrorCode string

const (
	// ErrCodeValidation indicates a payload failed validation before any backend call.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeNetwork indicates the backend could not be reached (no response).
	ErrCodeNetwork ErrorCode = "network"
	// ErrCodeAuthorization indicates the backend rejected the access token (401).
	ErrCodeAuthorization ErrorCode = "authorization"
	// ErrCodeServer indicates a backend failure (5xx).
	ErrCodeServer ErrorCode = "server"
	// ErrCodeCredential indicates a rejected login (4xx other than 401 on the login call).
	ErrCodeCredential ErrorCode = "credential"
	// ErrCodeClient indicates any other 4xx response.
	ErrCodeClient ErrorCode = "client"
	// ErrCodeInternal indicates a console-side failure.
	ErrCodeInternal ErrorCode = "internal"
)

// User-facing fallback messages.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgNetwork            = "Unable to reach the server. Check your connection and try again."
	MsgServer             = "The server encountered an error. Please try again later."
	MsgSessionExpired     = "Your session has expired. Please sign in again."
	MsgInternal           = "Something went wrong."
)

// AppError represents a structured console error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is safe to show to the operator
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Status is the backend HTTP status when one was received
	Status int
	// Fields carries per-field messages for validation errors
	Fields map[string]string
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

// Validation creates a validation error carrying field-level messages.
func Validation(message string, fields map[string]string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Fields: fields}
}

// Network wraps a transport failure. The cause's text is surfaced verbatim.
func Network(cause error) *AppError {
	msg := MsgNetwork
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{Code: ErrCodeNetwork, Message: msg, Cause: cause}
}

// Credential creates the fixed login rejection error.
func Credential(status int, cause error) *AppError {
	return &AppError{Code: ErrCodeCredential, Message: MsgInvalidCredentials, Status: status, Cause: cause}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsNetwork checks if an error is a Network error.
func IsNetwork(err error) bool { return isCode(err, ErrCodeNetwork) }

// IsAuthorization checks if an error is an Authorization error.
func IsAuthorization(err error) bool { return isCode(err, ErrCodeAuthorization) }
