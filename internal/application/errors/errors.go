// Package apperrors defines application-level error types.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/reglet-dev/imgres/internal/domain/entities"
)

// ValidationError indicates a manifest or request failed validation.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// ConfigurationError indicates a config or environment issue, such as a
// module that is not loaded in the process.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}

// KindOf classifies err onto the resource error taxonomy.
func KindOf(err error) entities.ErrorKind {
	if err == nil {
		return entities.KindUnclassified
	}
	var cfg *ConfigurationError
	if errors.As(err, &cfg) {
		return entities.KindConfiguration
	}
	return entities.ErrorKindOf(err)
}

// IsResolutionFailure reports whether err means the request itself was
// bad, as opposed to the loader rejecting a well-formed request.
func IsResolutionFailure(err error) bool {
	return KindOf(err).IsResolution()
}

// IsLoaderFailure reports whether the platform loader rejected the request.
func IsLoaderFailure(err error) bool {
	return KindOf(err) == entities.KindPlatformLoad
}
