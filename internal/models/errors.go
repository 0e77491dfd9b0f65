package models

import (
	"errors"
	"fmt"
)

// Error codes returned by the store and the session gate.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeNotOwner           = "NOT_OWNER"
	CodeNotFound           = "NOT_FOUND"
	CodeValidation         = "VALIDATION_ERROR"
	CodeMalformedState     = "MALFORMED_STATE"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewNotOwnerError(resource string, id any) *AppError {
	return &AppError{
		Code:    CodeNotOwner,
		Message: fmt.Sprintf("only the owner may modify %s with ID %v", resource, id),
	}
}

func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:    CodeInvalidCredentials,
		Message: "invalid email or password",
	}
}

func NewEmailTakenError(email string) *AppError {
	return &AppError{
		Code:    CodeEmailTaken,
		Message: fmt.Sprintf("an account with email %s already exists", email),
	}
}

func NewMalformedStateError(key string, err error) *AppError {
	return &AppError{
		Code:    CodeMalformedState,
		Message: fmt.Sprintf("persisted value for key %q is malformed", key),
		Err:     err,
	}
}

// CodeOf returns the application error code carried by err, or "" when err
// is not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsNotOwner reports whether err carries the NOT_OWNER code.
func IsNotOwner(err error) bool {
	return CodeOf(err) == CodeNotOwner
}
