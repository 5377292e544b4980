package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "scroller.debounce_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidDrivers returns the list of supported feed database drivers
func ValidDrivers() []string {
	return []string{"sqlite", "postgres", "mysql"}
}

// ValidThemes returns the list of TUI color themes
func ValidThemes() []string {
	return []string{"default", "mono"}
}

// maxDebounceMs bounds the debounce interval to something a person would
// still perceive as responsive.
const maxDebounceMs = 10_000

// maxPageSize bounds a single page fetch
const maxPageSize = 1000

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateScroller()...)
	errors = append(errors, c.validateFeed()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateScroller validates the ScrollerConfig
func (c *Config) validateScroller() []ValidationError {
	var errors []ValidationError

	if !c.Scroller.Leeway.Valid() {
		errors = append(errors, ValidationError{
			Field:   "scroller.leeway",
			Value:   c.Scroller.Leeway,
			Message: "must be between 0% and 100%",
		})
	}

	if c.Scroller.DebounceMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "scroller.debounce_ms",
			Value:   c.Scroller.DebounceMs,
			Message: "must be non-negative",
		})
	}
	if c.Scroller.DebounceMs > maxDebounceMs {
		errors = append(errors, ValidationError{
			Field:   "scroller.debounce_ms",
			Value:   c.Scroller.DebounceMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxDebounceMs),
		})
	}

	if c.Scroller.LateElement != "" && (c.Scroller.Element != "" || c.Scroller.UseDocument) {
		errors = append(errors, ValidationError{
			Field:   "scroller.late_element",
			Value:   c.Scroller.LateElement,
			Message: "cannot be combined with scroller.element or scroller.use_document",
		})
	}

	return errors
}

// validateFeed validates the FeedConfig
func (c *Config) validateFeed() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidDrivers(), c.Feed.Driver) {
		errors = append(errors, ValidationError{
			Field:   "feed.driver",
			Value:   c.Feed.Driver,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidDrivers(), ", ")),
		})
	}

	if strings.TrimSpace(c.Feed.DSN) == "" {
		errors = append(errors, ValidationError{
			Field:   "feed.dsn",
			Value:   c.Feed.DSN,
			Message: "must not be empty",
		})
	}

	if c.Feed.PageSize <= 0 || c.Feed.PageSize > maxPageSize {
		errors = append(errors, ValidationError{
			Field:   "feed.page_size",
			Value:   c.Feed.PageSize,
			Message: fmt.Sprintf("must be between 1 and %d", maxPageSize),
		})
	}

	if c.Feed.SeedItems < 0 {
		errors = append(errors, ValidationError{
			Field:   "feed.seed_items",
			Value:   c.Feed.SeedItems,
			Message: "must be non-negative",
		})
	}

	if c.Feed.LatencyMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "feed.latency_ms",
			Value:   c.Feed.LatencyMs,
			Message: "must be non-negative",
		})
	}

	if c.Feed.FailEvery < 0 {
		errors = append(errors, ValidationError{
			Field:   "feed.fail_every",
			Value:   c.Feed.FailEvery,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
