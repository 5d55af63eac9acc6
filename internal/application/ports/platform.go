package ports

import (
	"context"

	"github.com/reglet-dev/imgres/internal/domain/values"
)

// HandleProvider resolves module names to platform handles.
type HandleProvider interface {
	// CurrentProcess returns the handle of the running executable.
	CurrentProcess() (values.Handle, error)

	// HandleFor returns the handle of a loaded module such as a dll.
	// It fails when the module is not loaded.
	HandleFor(moduleName string) (values.Handle, error)
}

// ImageRequest is a fully resolved LoadImage call.
type ImageRequest struct {
	Identifier values.Identifier
	Module     values.Handle
	Kind       values.ResourceKind
	Dimensions values.Dimensions
	Flags      values.LoadFlags
}

// PlatformLoader is the black-box image service. Calls are atomic and
// cannot be cancelled once issued; ctx is only consulted before the call.
type PlatformLoader interface {
	// LoadImage loads an icon, cursor or bitmap.
	LoadImage(ctx context.Context, req ImageRequest) (values.Handle, error)

	// LoadIcon loads an icon with the icon-specific primitive.
	LoadIcon(ctx context.Context, module values.Handle, id values.Identifier) (values.Handle, error)

	// LoadCursor loads a cursor with the cursor-specific primitive.
	LoadCursor(ctx context.Context, module values.Handle, id values.Identifier) (values.Handle, error)
}
