package entities

import "github.com/reglet-dev/imgres/internal/domain/values"

// Resource is a successfully loaded icon, cursor or bitmap.
// It is immutable and owned by the caller.
type Resource struct {
	handle values.Handle
}

// NewResource wraps a platform handle.
func NewResource(handle values.Handle) *Resource {
	return &Resource{handle: handle}
}

// Handle returns the platform handle.
func (r *Resource) Handle() values.Handle {
	return r.handle
}

// IsZero reports whether the resource holds no handle.
func (r *Resource) IsZero() bool {
	return r == nil || r.handle.IsNull()
}
