// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInsufficientData  = errors.New("insufficient data for calculation")
	ErrNoUsableData      = errors.New("no usable data to analyze")
	ErrRateLimited       = errors.New("rate limited")
	ErrTimeout           = errors.New("operation timed out")
	ErrConnectionFailed  = errors.New("connection failed")
	ErrTickerLimit       = errors.New("too many tickers in request")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrWatchlistNotFound = errors.New("watchlist not found")
	ErrInputValidation   = errors.New("input validation failed")
)

// FetchError represents a failure retrieving data from an external provider.
type FetchError struct {
	Provider string
	Ticker   string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Ticker != "" {
		return fmt.Sprintf("fetch error [%s] %s: %v", e.Provider, e.Ticker, e.Err)
	}
	return fmt.Sprintf("fetch error [%s]: %v", e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(provider, ticker string, err error) *FetchError {
	return &FetchError{
		Provider: provider,
		Ticker:   ticker,
		Err:      err,
	}
}

// StageError records which workflow stage a failure occurred in.
type StageError struct {
	Workflow string
	Stage    string
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage error [%s/%s]: %v", e.Workflow, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError.
func NewStageError(workflow, stage string, err error) *StageError {
	return &StageError{
		Workflow: workflow,
		Stage:    stage,
		Err:      err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Retryable reports whether an error is transient and worth retrying.
// Eligibility is a property of the error kind, never of its message text.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrConnectionFailed) {
		return true
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return Retryable(fe.Err)
	}
	return false
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
