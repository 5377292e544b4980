// Package errors provides centralized error definitions and error handling utilities
// for lazyfeed. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - LoadError: a failure produced by a caller-supplied loader
//   - StoreError: errors from the feed storage layer (gorm queries, seeding)
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input or configuration
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewLoadError(cause).WithAttempt(3)
//	err := errors.NewStoreError("page query failed", dbErr).WithDriver("sqlite")
//	err := errors.NewValidationError("leeway out of range").WithField("scroller.leeway")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrLoadFailed) { ... }
//
//	var loadErr *errors.LoadError
//	if errors.As(err, &loadErr) { ... }
//
//	if errors.IsRetryable(err) { ... }
//
// Loader failures are never raised by the scroll controller. They are captured
// into the controller's state and surfaced through its read interface only.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Loading sentinel errors
var (
	// ErrLoadFailed matches every LoadError regardless of its cause.
	ErrLoadFailed = New("load failed")
	// ErrFeedExhausted indicates that a feed has no more pages to load.
	ErrFeedExhausted = New("feed exhausted")
)

// Storage sentinel errors
var (
	// ErrUnknownDriver indicates that a database driver name is not supported.
	ErrUnknownDriver = New("unknown database driver")
	// ErrStoreClosed indicates that the store was used after Close.
	ErrStoreClosed = New("store is closed")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// FeedError is the base interface for all lazyfeed errors.
type FeedError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the operation may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// LoadError carries whatever failure value a loader produced.
//
// Example:
//
//	err := errors.NewLoadError(io.ErrUnexpectedEOF).WithAttempt(2)
//	fmt.Println(err) // "load error [attempt=2]: unexpected EOF"
type LoadError struct {
	baseError
	Attempt int
}

// NewLoadError creates a new LoadError wrapping the loader's failure value.
// Load failures are retryable by default: the next accepted load attempt
// simply invokes the loader again. An exhausted feed or a canceled load is
// not retryable, and a classified cause passes its flags through.
func NewLoadError(cause error) *LoadError {
	e := &LoadError{
		baseError: baseError{
			message:    "load more failed",
			cause:      cause,
			severity:   SeverityError,
			retryable:  true,
			userFacing: true,
		},
	}

	var classified FeedError
	switch {
	case errors.Is(cause, ErrFeedExhausted):
		e.severity = SeverityInfo
		e.retryable = false
	case errors.Is(cause, ErrCanceled):
		e.severity = SeverityWarning
		e.retryable = false
	case errors.As(cause, &classified):
		e.severity = classified.Severity()
		e.retryable = classified.IsRetryable()
		e.userFacing = classified.IsUserFacing()
	}
	return e
}

// WithAttempt records which load attempt failed.
func (e *LoadError) WithAttempt(n int) *LoadError {
	e.Attempt = n
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *LoadError) WithRetryable(r bool) *LoadError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *LoadError) Error() string {
	prefix := "load error"
	if e.Attempt > 0 {
		prefix = fmt.Sprintf("load error [attempt=%d]", e.Attempt)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", prefix, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *LoadError) Is(target error) bool {
	if _, ok := target.(*LoadError); ok {
		return true
	}
	if target == ErrLoadFailed {
		return true
	}
	return e.baseError.Is(target)
}

// StoreError represents errors from the feed storage layer.
//
// Example:
//
//	err := errors.NewStoreError("page query failed", dbErr).WithDriver("postgres").WithCursor(40)
type StoreError struct {
	baseError
	Driver string
	Cursor uint
}

// NewStoreError creates a new StoreError.
func NewStoreError(message string, cause error) *StoreError {
	return &StoreError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  true,
			userFacing: false,
		},
	}
}

// WithDriver adds the database driver name to the error context.
func (e *StoreError) WithDriver(driver string) *StoreError {
	e.Driver = driver
	return e
}

// WithCursor adds the page cursor to the error context.
func (e *StoreError) WithCursor(cursor uint) *StoreError {
	e.Cursor = cursor
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *StoreError) WithRetryable(r bool) *StoreError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *StoreError) Error() string {
	var parts []string
	if e.Driver != "" {
		parts = append(parts, fmt.Sprintf("driver=%s", e.Driver))
	}
	if e.Cursor > 0 {
		parts = append(parts, fmt.Sprintf("cursor=%d", e.Cursor))
	}

	prefix := "store error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("store error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *StoreError) Is(target error) bool {
	if _, ok := target.(*StoreError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("must be between 0 and 100")
//	err = err.WithField("scroller.leeway").WithValue("150%")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var feedErr FeedError
	if As(err, &feedErr) {
		return feedErr.IsRetryable()
	}

	return false
}

// IsUserFacing returns true if the error message is safe to display to end users.
//
// Example:
//
//	if errors.IsUserFacing(err) {
//	    render(err.Error())
//	} else {
//	    render("something went wrong")
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var feedErr FeedError
	if As(err, &feedErr) {
		return feedErr.IsUserFacing()
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement FeedError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var feedErr FeedError
	if As(err, &feedErr) {
		return feedErr.Severity()
	}

	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
