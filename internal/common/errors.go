// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Data errors.
	ErrDataUnavailable = errors.New("data unavailable")
	ErrFieldNotFound   = errors.New("field not found")

	// Navigation errors.
	ErrUnknownEntity = errors.New("unknown entity")

	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the message to display for err. User errors keep their
// own wording; the known error kinds get a short explanation.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	switch {
	case errors.Is(err, ErrUnknownEntity):
		return fmt.Sprintf("Not in the loaded table: %v", err)
	case errors.Is(err, ErrFieldNotFound):
		return fmt.Sprintf("Column missing from the loaded table: %v", err)
	case errors.Is(err, ErrDataUnavailable):
		return fmt.Sprintf("Data could not be loaded: %v", err)
	default:
		return err.Error()
	}
}

// IsRetryable reports whether err is known to be transient.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
