// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package apperr defines the centralized error handling framework for Canon.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable code and a client-safe message.
  - Taxonomy: validation, not-found, duplicate, integrity, config and unexpected errors.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeAuthRequired = "AUTH_REQUIRED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeDuplicate    = "DUPLICATE_RESOURCE"
	CodeIntegrity    = "INTEGRITY_VIOLATION"
	CodeRateLimited  = "RATE_LIMITED"
	CodeConfig       = "CONFIG_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the Canon API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level details.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field failures or blocking reasons.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level failure.
type FieldError struct {
	// Field is the JSON field name (or dependent collection) the failure is about.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// HasDetail reports whether the error carries a detail for field.
func (e *AppError) HasDetail(field string) bool {
	for _, detail := range e.Details {
		if detail.Field == field {
			return true
		}
	}
	return false
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Category") // Returns "Category not found"
func NotFound(resource string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// AuthRequired creates a 401 [AppError].
func AuthRequired(msg string) *AppError {
	return &AppError{
		Code:       CodeAuthRequired,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Duplicate creates a 409 [AppError] for unique-constraint violations.
func Duplicate(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
		Details:    details,
	}
}

// Integrity creates a 409 [AppError] for a mutation blocked by dependents.
func Integrity(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeIntegrity,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
		Details:    details,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Config creates a 500 [AppError] for a misconfigured collaborator.
func Config(msg string, cause error) *AppError {
	return &AppError{
		Code:       CodeConfig,
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
