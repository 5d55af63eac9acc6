package entities

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed resource request.
type ErrorKind int

const (
	KindUnclassified ErrorKind = iota
	// KindEmptyIdentity: name, path or variant is empty or unset.
	KindEmptyIdentity
	// KindMalformedIdentity: missing terminator, bad extension, bad encoding.
	KindMalformedIdentity
	// KindMissingResource: the referenced file does not exist.
	KindMissingResource
	// KindReservedValue: a system id that is permanently unusable.
	KindReservedValue
	// KindWrongVariant: a kind-specific load was given an incompatible name.
	KindWrongVariant
	// KindPlatformLoad: the loader rejected a fully resolved request.
	KindPlatformLoad
	// KindConfiguration: the builder could not be configured (module lookup).
	KindConfiguration
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindEmptyIdentity:
		return "empty_identity"
	case KindMalformedIdentity:
		return "malformed_identity"
	case KindMissingResource:
		return "missing_resource"
	case KindReservedValue:
		return "reserved_value"
	case KindWrongVariant:
		return "wrong_variant"
	case KindPlatformLoad:
		return "platform_load"
	case KindConfiguration:
		return "configuration"
	default:
		return "unclassified"
	}
}

// IsResolution reports whether the kind stems from a bad request rather
// than from the loader.
func (k ErrorKind) IsResolution() bool {
	switch k {
	case KindEmptyIdentity, KindMalformedIdentity, KindMissingResource, KindReservedValue, KindWrongVariant:
		return true
	default:
		return false
	}
}

// ResourceError is the typed failure of a resource request.
type ResourceError struct {
	Cause   error
	Origin  string
	Message string
	Kind    ErrorKind
}

func (e *ResourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Origin, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Origin, e.Message)
}

func (e *ResourceError) Unwrap() error {
	return e.Cause
}

// NewResourceError creates a new resource error.
func NewResourceError(kind ErrorKind, origin, message string) *ResourceError {
	return &ResourceError{
		Kind:    kind,
		Origin:  origin,
		Message: message,
	}
}

// WithCause returns a copy of the error carrying cause.
func (e *ResourceError) WithCause(cause error) *ResourceError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// ErrorKindOf returns the kind of the first ResourceError in err's chain.
func ErrorKindOf(err error) ErrorKind {
	var re *ResourceError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnclassified
}
