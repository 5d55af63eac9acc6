// Package services contains application use cases.
package services

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/reglet-dev/imgres/internal/application/errors"
	"github.com/reglet-dev/imgres/internal/application/ports"
	"github.com/reglet-dev/imgres/internal/domain/entities"
	domainServices "github.com/reglet-dev/imgres/internal/domain/services"
	"github.com/reglet-dev/imgres/internal/domain/values"
	"github.com/spf13/afero"
)

// Origins tag every diagnostic with the operation that emitted it.
const (
	OriginLoad       = "ResourceBuilder.Load"
	OriginLoadIcon   = "ResourceBuilder.LoadIcon"
	OriginLoadCursor = "ResourceBuilder.LoadCursor"
	OriginSetModule  = "ResourceBuilder.SetModule"
	OriginValidator  = "OptionValidator.Validate"
)

var errNullHandle = errors.New("platform returned a null handle")

// ResourceBuilder accumulates a resource request and issues it against the
// platform loader. Setters return the builder for chaining; terminal calls
// leave the configuration in place so the builder can be reused.
//
// A ResourceBuilder is not safe for concurrent use. Use one per goroutine.
type ResourceBuilder struct {
	loader    ports.PlatformLoader
	handles   ports.HandleProvider
	resolver  *domainServices.NameResolver
	validator *domainServices.OptionValidator
	logger    *slog.Logger
	fs        afero.Fs

	name       values.ResourceName
	kind       values.ResourceKind
	flags      values.LoadFlags
	dimensions values.Dimensions

	// module is the configured process handle; effective is what the last
	// terminal call used after system redirection.
	module    values.Handle
	effective values.Handle
	moduleErr error

	// forced holds flags applied by the last resolution. They are reported
	// by Flags but never carried into the next terminal call.
	forced   values.LoadFlags
	findings []domainServices.Finding
}

// BuilderOption configures a ResourceBuilder.
type BuilderOption func(*ResourceBuilder)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *ResourceBuilder) {
		b.logger = logger
	}
}

// WithFs sets the filesystem used for file existence checks.
func WithFs(fs afero.Fs) BuilderOption {
	return func(b *ResourceBuilder) {
		b.fs = fs
	}
}

// NewResourceBuilder creates a builder targeting the current process.
//
// Example usage:
//
//	res, err := NewResourceBuilder(loader, handles, WithLogger(logger)).
//	    SetName(values.NewSymbolicName("LOGOBMP\x00")).
//	    UseTransparent().
//	    Load(ctx)
func NewResourceBuilder(loader ports.PlatformLoader, handles ports.HandleProvider, opts ...BuilderOption) *ResourceBuilder {
	b := &ResourceBuilder{
		loader:    loader,
		handles:   handles,
		validator: domainServices.NewOptionValidator(),
		name:      values.EmptyName{},
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.resolver = domainServices.NewNameResolver(b.fs)

	b.resetModule()
	b.effective = b.module

	return b
}

// SetName sets the resource name used by the next terminal call.
func (b *ResourceBuilder) SetName(name values.ResourceName) *ResourceBuilder {
	if name == nil {
		name = values.EmptyName{}
	}
	b.name = name
	return b
}

// SetDimensions sets the requested width and height. (0,0) means unset.
func (b *ResourceBuilder) SetDimensions(width, height int32) *ResourceBuilder {
	b.dimensions = values.NewDimensions(width, height)
	return b
}

// UseDefaultSize uses the system metric size for unset dimensions.
func (b *ResourceBuilder) UseDefaultSize() *ResourceBuilder {
	return b.set(values.FlagDefaultSize)
}

// UseDIBSection requests a DIB section bitmap.
func (b *ResourceBuilder) UseDIBSection() *ResourceBuilder {
	return b.set(values.FlagCreateDIBSection)
}

// MakeShared requests a shared handle.
func (b *ResourceBuilder) MakeShared() *ResourceBuilder {
	return b.set(values.FlagShared)
}

// UseTransparent replaces the first pixel colour with the window colour.
func (b *ResourceBuilder) UseTransparent() *ResourceBuilder {
	return b.set(values.FlagTransparent)
}

// Use3DColors maps grey shades to the 3D system colours.
func (b *ResourceBuilder) Use3DColors() *ResourceBuilder {
	return b.set(values.FlagThreeDColors)
}

// UseMonochrome loads the image in black and white.
func (b *ResourceBuilder) UseMonochrome() *ResourceBuilder {
	return b.set(values.FlagMonochrome)
}

// UseVGAColors uses true VGA colours.
func (b *ResourceBuilder) UseVGAColors() *ResourceBuilder {
	return b.set(values.FlagVGAColors)
}

// SetFlags replaces the caller flags. LoadFromFile is ignored: it is only
// ever set by resolution.
func (b *ResourceBuilder) SetFlags(flags values.LoadFlags) *ResourceBuilder {
	b.flags = flags.Without(values.FlagLoadFromFile)
	return b
}

// SetKindIcon sets the kind to icon until resolution infers one.
func (b *ResourceBuilder) SetKindIcon() *ResourceBuilder {
	b.kind = values.KindIcon
	return b
}

// SetKindCursor sets the kind to cursor until resolution infers one.
func (b *ResourceBuilder) SetKindCursor() *ResourceBuilder {
	b.kind = values.KindCursor
	return b
}

// SetKindBitmap sets the kind to bitmap until resolution infers one.
func (b *ResourceBuilder) SetKindBitmap() *ResourceBuilder {
	b.kind = values.KindBitmap
	return b
}

// SetProcessHandle loads from an explicit module handle.
func (b *ResourceBuilder) SetProcessHandle(h values.Handle) *ResourceBuilder {
	b.module = h
	b.effective = h
	b.moduleErr = nil
	return b
}

// SetModule loads from the named module. An empty name selects the
// current process. Lookup failures are reported by the next terminal call.
func (b *ResourceBuilder) SetModule(moduleName string) *ResourceBuilder {
	if moduleName == "" {
		b.resetModule()
		b.effective = b.module
		return b
	}

	h, err := b.handles.HandleFor(moduleName)
	if err == nil && h.IsNull() {
		err = entities.NewResourceError(entities.KindConfiguration, OriginSetModule, "null module handle")
	}
	if err != nil {
		b.moduleErr = apperrors.NewConfigurationError("module", "module can not be found: "+moduleName, err)
		return b
	}

	b.module = h
	b.effective = h
	b.moduleErr = nil
	return b
}

// Name returns the configured resource name.
func (b *ResourceBuilder) Name() values.ResourceName {
	return b.name
}

// Kind returns the configured or last inferred kind.
func (b *ResourceBuilder) Kind() values.ResourceKind {
	return b.kind
}

// Flags returns the caller flags together with the flags forced by the
// last resolution.
func (b *ResourceBuilder) Flags() values.LoadFlags {
	return b.flags | b.forced
}

// Dimensions returns the requested dimensions.
func (b *ResourceBuilder) Dimensions() values.Dimensions {
	return b.dimensions
}

// ProcessHandle returns the handle used by the last terminal call, or the
// configured one before any call.
func (b *ResourceBuilder) ProcessHandle() values.Handle {
	return b.effective
}

// LastFindings returns the validator findings of the last Load.
func (b *ResourceBuilder) LastFindings() []domainServices.Finding {
	out := make([]domainServices.Finding, len(b.findings))
	copy(out, b.findings)
	return out
}

// Load resolves the name, validates the options and loads the image.
func (b *ResourceBuilder) Load(ctx context.Context) (*entities.Resource, error) {
	if err := b.begin(ctx); err != nil {
		return nil, err
	}

	if _, ok := b.name.(values.FilePath); ok {
		b.forced = b.forced.With(values.FlagLoadFromFile)
	}

	res, err := b.resolver.Resolve(b.name)
	b.apply(res)
	if err != nil {
		return nil, b.fail(ctx, err)
	}

	b.findings = b.validator.Validate(domainServices.LoadOptions{
		Kind:       b.kind,
		Flags:      b.Flags(),
		Dimensions: b.dimensions,
	})
	for _, f := range b.findings {
		b.logger.Log(ctx, f.Level, f.Message, "origin", OriginValidator, "check", f.Check)
	}

	h, err := b.loader.LoadImage(ctx, ports.ImageRequest{
		Module:     b.effective,
		Identifier: res.Identifier,
		Kind:       b.kind,
		Dimensions: b.dimensions,
		Flags:      b.Flags(),
	})
	return b.finish(ctx, h, err, OriginLoad, "failed to create a handle for the resource")
}

// LoadIcon loads a system or embedded icon. The name must be an icon
// SystemConstant or EmbeddedOrdinal. Options are not validated.
func (b *ResourceBuilder) LoadIcon(ctx context.Context) (*entities.Resource, error) {
	return b.loadKind(ctx, values.KindIcon, OriginLoadIcon,
		"wrong variant for icon loading", "failed to create a handle for the icon",
		b.loader.LoadIcon)
}

// LoadCursor loads a system or embedded cursor. The name must be a cursor
// SystemConstant or EmbeddedOrdinal. Options are not validated.
func (b *ResourceBuilder) LoadCursor(ctx context.Context) (*entities.Resource, error) {
	return b.loadKind(ctx, values.KindCursor, OriginLoadCursor,
		"wrong variant for cursor loading", "failed to create a handle for the cursor",
		b.loader.LoadCursor)
}

type kindLoadFunc func(ctx context.Context, module values.Handle, id values.Identifier) (values.Handle, error)

func (b *ResourceBuilder) loadKind(
	ctx context.Context,
	kind values.ResourceKind,
	origin, wrongVariant, loadFailed string,
	load kindLoadFunc,
) (*entities.Resource, error) {
	if err := b.begin(ctx); err != nil {
		return nil, err
	}

	if !acceptsKind(b.name, kind) {
		return nil, b.fail(ctx, entities.NewResourceError(entities.KindWrongVariant, origin, wrongVariant))
	}

	res, err := b.resolver.Resolve(b.name)
	b.apply(res)
	id := res.Identifier
	if err != nil {
		// The primitive is still called, with the null identifier.
		_ = b.fail(ctx, err)
		id = values.NullIdentifier
	}
	b.kind = kind

	h, err := load(ctx, b.effective, id)
	return b.finish(ctx, h, err, origin, loadFailed)
}

// acceptsKind reports whether name is a SystemConstant or EmbeddedOrdinal
// of kind.
func acceptsKind(name values.ResourceName, kind values.ResourceKind) bool {
	switch n := name.(type) {
	case values.SystemConstant:
		return n.Kind == kind
	case values.EmbeddedOrdinal:
		return n.Kind == kind
	default:
		return false
	}
}

// begin resets per-call state and surfaces pending configuration errors.
func (b *ResourceBuilder) begin(ctx context.Context) error {
	b.forced = 0
	b.findings = nil
	b.effective = b.module
	if b.moduleErr != nil {
		b.logger.ErrorContext(ctx, b.moduleErr.Error(), "origin", OriginSetModule)
		return b.moduleErr
	}
	return nil
}

// apply records the forcing of a resolution. It runs before the
// resolution error is inspected: a reserved cursor id still forces Shared
// and the system handle.
func (b *ResourceBuilder) apply(res domainServices.Resolution) {
	b.forced = b.forced.With(res.ForcedFlags)
	if res.UseSystemHandle {
		b.effective = values.SystemHandle
	}
	if res.Kind.IsKnown() {
		b.kind = res.Kind
	}
}

func (b *ResourceBuilder) finish(ctx context.Context, h values.Handle, err error, origin, message string) (*entities.Resource, error) {
	if err == nil && h.IsNull() {
		err = errNullHandle
	}
	if err != nil {
		return nil, b.fail(ctx, entities.NewResourceError(entities.KindPlatformLoad, origin, message).WithCause(err))
	}
	return entities.NewResource(h), nil
}

// fail logs err once at Error level under its origin and returns it.
func (b *ResourceBuilder) fail(ctx context.Context, err error) error {
	origin := OriginLoad
	msg := err.Error()
	var re *entities.ResourceError
	if errors.As(err, &re) {
		origin = re.Origin
		msg = re.Message
		if re.Cause != nil {
			msg += ": " + re.Cause.Error()
		}
	}
	b.logger.ErrorContext(ctx, msg, "origin", origin, "kind", apperrors.KindOf(err).String())
	return err
}

func (b *ResourceBuilder) set(flag values.LoadFlags) *ResourceBuilder {
	b.flags = b.flags.With(flag)
	return b
}

func (b *ResourceBuilder) resetModule() {
	b.moduleErr = nil
	b.module = values.SystemHandle
	if b.handles == nil {
		return
	}
	h, err := b.handles.CurrentProcess()
	if err != nil {
		b.moduleErr = apperrors.NewConfigurationError("module", "current process handle is unavailable", err)
		return
	}
	b.module = h
}
