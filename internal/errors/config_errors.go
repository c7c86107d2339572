package errors

import (
	"fmt"
	"strings"
)

// ErrorCategory represents different types of configuration errors
type ErrorCategory string

const (
	// Fatal errors that must stop initialization
	ErrorCategoryFatal       ErrorCategory = "FATAL"
	ErrorCategoryValidation  ErrorCategory = "VALIDATION"
	ErrorCategoryCredentials ErrorCategory = "CREDENTIALS"

	// Recoverable errors that are logged and worked around
	ErrorCategoryIO    ErrorCategory = "IO"
	ErrorCategoryParse ErrorCategory = "PARSE"
)

// ConfigError represents a categorized configuration error with enough
// context to produce an actionable message: which section, which field,
// and the offending value where one exists.
type ConfigError struct {
	Category   ErrorCategory
	Section    string
	Field      string
	Message    string
	Value      interface{}
	Underlying error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", e.Category)
	if e.Section != "" {
		fmt.Fprintf(&b, " %s", e.Section)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ".%s", e.Field)
	}
	fmt.Fprintf(&b, ": %s", e.Message)
	if e.Value != nil {
		fmt.Fprintf(&b, " (got: %v)", e.Value)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, ": %v", e.Underlying)
	}
	return b.String()
}

// Unwrap returns the underlying error for error unwrapping
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// IsFatal returns whether this error must prevent the system from proceeding
func (e *ConfigError) IsFatal() bool {
	return e.Category == ErrorCategoryFatal ||
		e.Category == ErrorCategoryValidation ||
		e.Category == ErrorCategoryCredentials
}

// WithValue attaches the offending value to the error
func (e *ConfigError) WithValue(value interface{}) *ConfigError {
	e.Value = value
	return e
}

// NewValidationError creates a hard validation error for a section field
func NewValidationError(section, field, message string) *ConfigError {
	return &ConfigError{
		Category: ErrorCategoryValidation,
		Section:  section,
		Field:    field,
		Message:  message,
	}
}

// NewCredentialsError creates a hard error for a missing mandatory credential
func NewCredentialsError(section, field string) *ConfigError {
	return &ConfigError{
		Category: ErrorCategoryCredentials,
		Section:  section,
		Field:    field,
		Message:  "required value is empty",
	}
}

// NewFatalError creates a fatal configuration error
func NewFatalError(section, message string) *ConfigError {
	return &ConfigError{
		Category: ErrorCategoryFatal,
		Section:  section,
		Message:  message,
	}
}

// WrapIOError wraps a filesystem error with configuration context
func WrapIOError(err error, section, message string) *ConfigError {
	if err == nil {
		return nil
	}
	return &ConfigError{
		Category:   ErrorCategoryIO,
		Section:    section,
		Message:    message,
		Underlying: err,
	}
}

// WrapParseError wraps a decode error with configuration context
func WrapParseError(err error, section string) *ConfigError {
	if err == nil {
		return nil
	}
	return &ConfigError{
		Category:   ErrorCategoryParse,
		Section:    section,
		Message:    "could not parse configuration",
		Underlying: err,
	}
}

// ValidationErrors aggregates hard validation failures across sections so a
// single run surfaces every violation instead of only the first.
type ValidationErrors []*ConfigError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "configuration validation failed"
	}
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("configuration validation failed with %d error(s): %s",
		len(ve), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual errors to errors.Is / errors.As
func (ve ValidationErrors) Unwrap() []error {
	errs := make([]error, len(ve))
	for i, e := range ve {
		errs[i] = e
	}
	return errs
}

// First returns the first recorded failure, or nil when empty
func (ve ValidationErrors) First() *ConfigError {
	if len(ve) == 0 {
		return nil
	}
	return ve[0]
}

// HasField reports whether a failure was recorded for the given section field
func (ve ValidationErrors) HasField(section, field string) bool {
	for _, e := range ve {
		if e.Section == section && e.Field == field {
			return true
		}
	}
	return false
}
