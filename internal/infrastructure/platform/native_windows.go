//go:build windows

package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/reglet-dev/imgres/internal/application/ports"
	"github.com/reglet-dev/imgres/internal/domain/values"
	"golang.org/x/sys/windows"
)

var (
	kernel32          = windows.NewLazySystemDLL("kernel32.dll")
	_GetModuleHandleW = kernel32.NewProc("GetModuleHandleW")

	user32       = windows.NewLazySystemDLL("user32.dll")
	_LoadImageW  = user32.NewProc("LoadImageW")
	_LoadIconW   = user32.NewProc("LoadIconW")
	_LoadCursorW = user32.NewProc("LoadCursorW")
)

// NativeLoader calls LoadImageW, LoadIconW and LoadCursorW.
type NativeLoader struct{}

// Compile-time safety: *NativeLoader implements ports.PlatformLoader.
var _ ports.PlatformLoader = (*NativeLoader)(nil)

// NewNativeLoader creates the Win32 loader.
func NewNativeLoader() *NativeLoader {
	return &NativeLoader{}
}

// LoadImage calls LoadImageW.
func (l *NativeLoader) LoadImage(ctx context.Context, req ports.ImageRequest) (values.Handle, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	name, keep, err := resourceName(req.Identifier)
	if err != nil {
		return 0, err
	}
	r, _, callErr := _LoadImageW.Call(
		uintptr(req.Module),
		name,
		uintptr(req.Kind.ImageType()),
		uintptr(req.Dimensions.Width),
		uintptr(req.Dimensions.Height),
		uintptr(req.Flags),
	)
	runtime.KeepAlive(keep)
	if r == 0 {
		return 0, fmt.Errorf("LoadImageW: %w", callErr)
	}
	return values.Handle(r), nil
}

// LoadIcon calls LoadIconW.
func (l *NativeLoader) LoadIcon(ctx context.Context, module values.Handle, id values.Identifier) (values.Handle, error) {
	return callByName(ctx, _LoadIconW, module, id)
}

// LoadCursor calls LoadCursorW.
func (l *NativeLoader) LoadCursor(ctx context.Context, module values.Handle, id values.Identifier) (values.Handle, error) {
	return callByName(ctx, _LoadCursorW, module, id)
}

func callByName(ctx context.Context, proc *windows.LazyProc, module values.Handle, id values.Identifier) (values.Handle, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	name, keep, err := resourceName(id)
	if err != nil {
		return 0, err
	}
	r, _, callErr := proc.Call(uintptr(module), name)
	runtime.KeepAlive(keep)
	if r == 0 {
		return 0, fmt.Errorf("%s: %w", proc.Name, callErr)
	}
	return values.Handle(r), nil
}

// resourceName converts id into a LPCWSTR argument: MAKEINTRESOURCE for
// ordinals, a UTF-16 string for text. The returned pointer must be kept
// alive until the call returns.
func resourceName(id values.Identifier) (uintptr, *uint16, error) {
	switch {
	case id.IsNull():
		return 0, nil, nil
	case id.IsOrdinal():
		return uintptr(id.Ordinal()), nil, nil
	}
	p, err := windows.UTF16PtrFromString(strings.TrimSuffix(id.Text(), values.Terminator))
	if err != nil {
		return 0, nil, err
	}
	return uintptr(unsafe.Pointer(p)), p, nil
}

// NativeHandleProvider calls GetModuleHandleW.
type NativeHandleProvider struct{}

// Compile-time safety: *NativeHandleProvider implements ports.HandleProvider.
var _ ports.HandleProvider = (*NativeHandleProvider)(nil)

// NewNativeHandleProvider creates the Win32 handle provider.
func NewNativeHandleProvider() *NativeHandleProvider {
	return &NativeHandleProvider{}
}

// CurrentProcess returns the handle of the executable.
func (p *NativeHandleProvider) CurrentProcess() (values.Handle, error) {
	r, _, err := _GetModuleHandleW.Call(0)
	if r == 0 {
		return 0, fmt.Errorf("GetModuleHandleW: %w", err)
	}
	return values.Handle(r), nil
}

// HandleFor returns the handle of an already loaded module.
func (p *NativeHandleProvider) HandleFor(moduleName string) (values.Handle, error) {
	name, err := windows.UTF16PtrFromString(moduleName)
	if err != nil {
		return 0, err
	}
	r, _, callErr := _GetModuleHandleW.Call(uintptr(unsafe.Pointer(name)))
	runtime.KeepAlive(name)
	if r == 0 {
		return 0, fmt.Errorf("module %q is not loaded: %w", moduleName, callErr)
	}
	return values.Handle(r), nil
}
