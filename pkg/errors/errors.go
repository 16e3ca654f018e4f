package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// Common application errors
var (
	ErrNoFieldsToUpdate = &ValidationError{code: "no_fields_to_update", Message: "no valid fields to update"}
	ErrUserNotFound     = NewNotFoundError("user", "User not found")
	ErrEmailExists      = NewAlreadyExistsError("user", "email already exists")
)

// StatusError is implemented by every error kind that knows how it should be
// reported over HTTP.
type StatusError interface {
	error
	HTTPStatus() int
	Code() string
}

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
	code    string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// Code returns the machine-readable error code
func (e *ValidationError) Code() string {
	if e.code != "" {
		return e.code
	}
	return "validation_error"
}

// MissingFieldError reports required fields absent from a request body.
type MissingFieldError struct {
	Fields []string
}

// NewMissingFieldError creates a new missing field error
func NewMissingFieldError(fields ...string) *MissingFieldError {
	return &MissingFieldError{Fields: fields}
}

// Error implements the error interface
func (e *MissingFieldError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// HTTPStatus returns the HTTP status for this error
func (e *MissingFieldError) HTTPStatus() int {
	return http.StatusBadRequest
}

// Code returns the machine-readable error code
func (e *MissingFieldError) Code() string {
	return "missing_field"
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// Code returns the machine-readable error code
func (e *NotFoundError) Code() string {
	return "not_found"
}

// AlreadyExistsError represents a uniqueness conflict
type AlreadyExistsError struct {
	Resource string
	Message  string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *AlreadyExistsError) HTTPStatus() int {
	return http.StatusConflict
}

// Code returns the machine-readable error code
func (e *AlreadyExistsError) Code() string {
	return "conflict"
}

// ConnectionError reports that the database could not be reached.
type ConnectionError struct {
	Err error
}

// NewConnectionError creates a new connection error
func NewConnectionError(err error) *ConnectionError {
	return &ConnectionError{Err: err}
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to connect to database: %v", e.Err)
	}
	return "failed to connect to database"
}

// Unwrap returns the wrapped error
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *ConnectionError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// Code returns the machine-readable error code
func (e *ConnectionError) Code() string {
	return "connection_error"
}

// PublicMessage hides the driver error from API clients.
func (e *ConnectionError) PublicMessage() string {
	return "Failed to connect to database"
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// Code returns the machine-readable error code
func (e *InternalError) Code() string {
	return "internal_error"
}

// PublicMessage hides the wrapped cause from API clients.
func (e *InternalError) PublicMessage() string {
	return "An internal error occurred"
}
