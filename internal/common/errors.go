// Package common provides shared errors and logging setup for basket-sift.
package common

import (
	"errors"
	"fmt"
)

// Terminal error kinds for a mining invocation. All of them are
// deterministic functions of the input and configuration, so nothing here
// is ever retried.
var (
	// ErrInvalidThreshold indicates a configuration value outside its
	// valid range (min_support, min_confidence, max_itemset_size).
	ErrInvalidThreshold = errors.New("invalid threshold")

	// ErrEmptyInput indicates that no usable transactions or items remain
	// after encoding, so mining cannot proceed.
	ErrEmptyInput = errors.New("empty input")

	// Ingest errors.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoItemColumn      = errors.New("no item column detected")

	// Storage errors.
	ErrNotFound = errors.New("not found")
)

// UserError wraps an internal error with a message fit for terminal output.
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
