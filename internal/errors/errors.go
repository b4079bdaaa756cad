// Package errors defines the sentinel errors shared by every domain package.
// Domain errors wrap one of these so handlers can map them to a status code
// without knowing the domain that produced them.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates an unknown file id or a registered artifact whose envelope is gone.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an id that is already registered.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the request failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the supplied artifact password was rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPayloadTooLarge indicates the submitted content exceeds the configured size limit.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrIO indicates a storage read, write or unlink failure unrelated to the request input.
	ErrIO = errors.New("io failure")
)

// Wrap adds message as context to err, keeping err in the chain. Returns nil for a nil err.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
