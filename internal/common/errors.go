// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Backend errors.
	ErrFetchFailed        = errors.New("fetch grievances failed")
	ErrSubmitFailed       = errors.New("submit grievance failed")
	ErrBackendUnavailable = errors.New("backend unavailable")

	// Draft validation errors.
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")

	// Cache errors.
	ErrNotFound         = errors.New("not found")
	ErrCacheUnavailable = errors.New("snapshot cache unavailable")

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

// IsValidation reports whether err is a draft validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrTitleRequired) || errors.Is(err, ErrDescriptionRequired)
}
