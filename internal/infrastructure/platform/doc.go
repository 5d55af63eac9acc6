// Package platform implements the platform ports: the native image loader
// and module handle provider, a dry-run loader that never touches the OS,
// and a cache for shared handles.
package platform

import "errors"

// ErrUnsupportedPlatform is returned by the native adapters on systems
// without a Win32 image service.
var ErrUnsupportedPlatform = errors.New("native resource loading is only supported on windows")
