//go:build !windows

package platform

import (
	"context"

	"github.com/reglet-dev/imgres/internal/application/ports"
	"github.com/reglet-dev/imgres/internal/domain/values"
)

// NativeLoader fails every call with ErrUnsupportedPlatform.
type NativeLoader struct{}

// Compile-time safety: *NativeLoader implements ports.PlatformLoader.
var _ ports.PlatformLoader = (*NativeLoader)(nil)

// NewNativeLoader creates the loader for this platform.
func NewNativeLoader() *NativeLoader {
	return &NativeLoader{}
}

func (l *NativeLoader) LoadImage(context.Context, ports.ImageRequest) (values.Handle, error) {
	return 0, ErrUnsupportedPlatform
}

func (l *NativeLoader) LoadIcon(context.Context, values.Handle, values.Identifier) (values.Handle, error) {
	return 0, ErrUnsupportedPlatform
}

func (l *NativeLoader) LoadCursor(context.Context, values.Handle, values.Identifier) (values.Handle, error) {
	return 0, ErrUnsupportedPlatform
}

// NativeHandleProvider has no modules to offer on this platform.
type NativeHandleProvider struct{}

// Compile-time safety: *NativeHandleProvider implements ports.HandleProvider.
var _ ports.HandleProvider = (*NativeHandleProvider)(nil)

// NewNativeHandleProvider creates the handle provider for this platform.
func NewNativeHandleProvider() *NativeHandleProvider {
	return &NativeHandleProvider{}
}

func (p *NativeHandleProvider) CurrentProcess() (values.Handle, error) {
	return 0, ErrUnsupportedPlatform
}

func (p *NativeHandleProvider) HandleFor(string) (values.Handle, error) {
	return 0, ErrUnsupportedPlatform
}
