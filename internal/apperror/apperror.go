// Package apperror defines the error kinds shared across the service and
// handler layers. Sentinel values let handlers translate domain failures
// into HTTP statuses without inspecting error strings: validation failures
// become 400, missing or foreign-owned resources become 404 (deliberately
// indistinguishable, so record existence is never leaked across users),
// authentication failures become 401 and store failures become 500.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrAuth       = errors.New("authentication required")
	ErrUpstream   = errors.New("upstream failure")
)

// AppError carries a sentinel kind plus a human-readable message and,
// for validation failures, the offending field.
type AppError struct {
	Err     error
	Message string
	Field   string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation reports malformed or missing input. Detected before any
// mutating call, so a validation failure never leaves partial writes.
func Validation(field, message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message, Field: field}
}

func NotFound(resource string) *AppError {
	return &AppError{Err: ErrNotFound, Message: resource + " not found"}
}

func Auth(message string) *AppError {
	return &AppError{Err: ErrAuth, Message: message}
}

// Upstream wraps a failure from the relational store or another external
// collaborator. The operation name gives handlers something loggable
// without exposing driver internals to clients.
func Upstream(op string, err error) *AppError {
	return &AppError{Err: errors.Join(ErrUpstream, err), Message: fmt.Sprintf("%s failed", op)}
}
