// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
)

// Service errors.
var (
	ErrNameNotUnique   = errors.New("name must be unique")
	ErrUserNotFound    = errors.New("user not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrInvalidUserID   = errors.New("invalid user_id")
	ErrInvalidJSON     = errors.New("invalid JSON")

	// ErrUpstreamUnavailable is matched by every *UnavailableError.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ValidationError reports malformed or missing client input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func requiredError(field string) error {
	return &ValidationError{Message: field + " is required"}
}

func invalidFieldError(field string) error {
	return &ValidationError{Message: field + " is invalid"}
}

func invalidPriceError(raw string) error {
	return &ValidationError{Message: fmt.Sprintf("invalid price: %s", raw)}
}

// UnavailableError reports a failed call to a backend service.
type UnavailableError struct {
	Service string
	Err     error
}

func (e *UnavailableError) Error() string {
	return e.Service + " service unavailable"
}

func (e *UnavailableError) Unwrap() []error {
	return []error{ErrUpstreamUnavailable, e.Err}
}

// Fields is a set of raw request values keyed by field name. A key that is
// absent from the map is treated the same as an empty value.
type Fields map[string]string

// firstMissing returns a ValidationError naming the first required field,
// in declared order, whose value is empty.
func firstMissing(fields Fields, required ...string) error {
	for _, name := range required {
		if fields[name] == "" {
			return requiredError(name)
		}
	}
	return nil
}
