package common

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrFileTooLarge indicates a file exceeded the allowed read size
	ErrFileTooLarge = errors.New("file too large")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information
func WrapErrorf(err error, format string, args ...interface{}) error {
	return WrapError(err, fmt.Sprintf(format, args...))
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// Is lets errors.Is match any validation error against ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Section string
	Field   string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Section != "" && e.Field != "" {
		return fmt.Sprintf("configuration error in section '%s', field '%s': %s", e.Section, e.Field, e.Reason)
	} else if e.Section != "" {
		return fmt.Sprintf("configuration error in section '%s': %s", e.Section, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// Is lets errors.Is match any configuration error against ErrInvalidConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(section, field, reason string) *ConfigurationError {
	return &ConfigurationError{
		Section: section,
		Field:   field,
		Reason:  reason,
	}
}
