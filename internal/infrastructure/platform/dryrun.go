package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/reglet-dev/imgres/internal/application/ports"
	"github.com/reglet-dev/imgres/internal/domain/values"
)

// Call operations recorded by DryRunLoader.
const (
	OpImage  = "image"
	OpIcon   = "icon"
	OpCursor = "cursor"
)

// dryRunBase is where synthetic handles start. It keeps them clear of
// SystemHandle and of small integers that look like ordinals.
const dryRunBase = 0x10000

// Call is one request seen by DryRunLoader.
type Call struct {
	Op      string
	Request ports.ImageRequest
}

// DryRunLoader answers every request with a synthetic handle and records
// it. It is safe for concurrent use.
type DryRunLoader struct {
	failWith error
	calls    []Call
	next     uintptr
	mu       sync.Mutex
}

// Compile-time safety: *DryRunLoader implements ports.PlatformLoader.
var _ ports.PlatformLoader = (*DryRunLoader)(nil)

// NewDryRunLoader creates a dry-run loader.
func NewDryRunLoader() *DryRunLoader {
	return &DryRunLoader{}
}

// FailWith makes every later call fail with err. Nil restores success.
func (l *DryRunLoader) FailWith(err error) *DryRunLoader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failWith = err
	return l
}

// LoadImage records req and returns a synthetic handle.
func (l *DryRunLoader) LoadImage(ctx context.Context, req ports.ImageRequest) (values.Handle, error) {
	return l.record(ctx, Call{Op: OpImage, Request: req})
}

// LoadIcon records the request and returns a synthetic handle.
func (l *DryRunLoader) LoadIcon(ctx context.Context, module values.Handle, id values.Identifier) (values.Handle, error) {
	return l.record(ctx, Call{Op: OpIcon, Request: ports.ImageRequest{
		Module:     module,
		Identifier: id,
		Kind:       values.KindIcon,
	}})
}

// LoadCursor records the request and returns a synthetic handle.
func (l *DryRunLoader) LoadCursor(ctx context.Context, module values.Handle, id values.Identifier) (values.Handle, error) {
	return l.record(ctx, Call{Op: OpCursor, Request: ports.ImageRequest{
		Module:     module,
		Identifier: id,
		Kind:       values.KindCursor,
	}})
}

// Calls returns the recorded calls in order.
func (l *DryRunLoader) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Call, len(l.calls))
	copy(out, l.calls)
	return out
}

// Reset forgets recorded calls.
func (l *DryRunLoader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = nil
}

func (l *DryRunLoader) record(ctx context.Context, c Call) (values.Handle, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls = append(l.calls, c)
	if l.failWith != nil {
		return 0, l.failWith
	}
	if c.Request.Identifier.IsNull() {
		return 0, fmt.Errorf("%s: null identifier", c.Op)
	}
	l.next++
	return values.Handle(dryRunBase + l.next), nil
}

// ErrModuleNotFound is returned for modules a provider does not know.
var ErrModuleNotFound = errors.New("module not found")

// StaticHandleProvider serves handles from a fixed table. Module names are
// matched case-insensitively, as on Windows.
type StaticHandleProvider struct {
	modules map[string]values.Handle
	current values.Handle
}

// Compile-time safety: *StaticHandleProvider implements ports.HandleProvider.
var _ ports.HandleProvider = (*StaticHandleProvider)(nil)

// NewStaticHandleProvider creates a provider returning current for the
// running process and the given module table.
func NewStaticHandleProvider(current values.Handle, modules map[string]values.Handle) *StaticHandleProvider {
	m := make(map[string]values.Handle, len(modules))
	for name, h := range modules {
		m[strings.ToLower(name)] = h
	}
	return &StaticHandleProvider{current: current, modules: m}
}

// CurrentProcess returns the configured process handle.
func (p *StaticHandleProvider) CurrentProcess() (values.Handle, error) {
	return p.current, nil
}

// HandleFor looks moduleName up in the table.
func (p *StaticHandleProvider) HandleFor(moduleName string) (values.Handle, error) {
	h, ok := p.modules[strings.ToLower(moduleName)]
	if !ok || h.IsNull() {
		return 0, fmt.Errorf("%w: %s", ErrModuleNotFound, moduleName)
	}
	return h, nil
}
