// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrConfigInvalid = errors.New("invalid configuration")
)

// NotFoundError signals a failed id-based lookup.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource string, id int) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a client-side form field check failure.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// RequestFailedError represents a non-2xx HTTP response or an unreachable
// backend, carrying the status code and message.
type RequestFailedError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed [%d]: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("request failed [%d]: %s", e.Status, e.Message)
}

func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// NewRequestFailedError creates a new RequestFailedError. A status of 0 means
// the request never reached the backend.
func NewRequestFailedError(status int, message string, err error) *RequestFailedError {
	return &RequestFailedError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// UnexpectedError wraps anything outside the known taxonomy, such as a
// malformed response from the suggestion service.
type UnexpectedError struct {
	Operation string
	Err       error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error [%s]: %v", e.Operation, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// NewUnexpectedError creates a new UnexpectedError.
func NewUnexpectedError(operation string, err error) *UnexpectedError {
	return &UnexpectedError{Operation: operation, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
