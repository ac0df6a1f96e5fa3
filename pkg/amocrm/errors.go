package amocrm

import (
	"errors"
	"fmt"
)

// APIError represents a problem response from the amoCRM API.
type APIError struct {
	Status int    `json:"status" yaml:"status"`
	Title  string `json:"title"  yaml:"title"`
	Detail string `json:"detail" yaml:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s (status: %d)", e.Title, e.Status)
	}

	return fmt.Sprintf("%s: %s (status: %d)", e.Title, e.Detail, e.Status)
}

// ValidationError reports a wire payload that does not match the
// declared shape of the target record. Path identifies the offending
// field when known.
type ValidationError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid payload: %v", e.Err)
	}

	return fmt.Sprintf("invalid payload at %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PreconditionError reports an operation input invariant violated
// before any network call was made.
type PreconditionError struct {
	Op     string
	Reason string
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrBaseURLRequired   = errors.New("base URL is required")
	ErrFactoryRequired   = errors.New("record factory is required")
	ErrNoMoreRecords     = errors.New("no more records")
	ErrEmptyResponse     = errors.New("empty response from server")
	ErrNoRecordsProvided = errors.New("no records provided")
)
