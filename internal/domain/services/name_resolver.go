package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/reglet-dev/imgres/internal/domain/entities"
	"github.com/reglet-dev/imgres/internal/domain/values"
	"github.com/spf13/afero"
)

const resolverOrigin = "NameResolver.Resolve"

// Resolution is the normalized outcome of resolving a ResourceName.
//
// Forcing (ForcedFlags, UseSystemHandle) is reported separately from
// inference so callers can apply it explicitly. For system cursor
// constants with a reserved id the forcing is returned together with the
// error: callers apply it before acting on the failure.
type Resolution struct {
	Identifier      values.Identifier
	Kind            values.ResourceKind
	ForcedFlags     values.LoadFlags
	UseSystemHandle bool
}

// NameResolver turns a ResourceName into a loadable identifier and infers
// the resource kind.
type NameResolver struct {
	fs afero.Fs
}

// NewNameResolver creates a resolver checking file existence on fs.
// A nil fs means the OS filesystem.
func NewNameResolver(fs afero.Fs) *NameResolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &NameResolver{fs: fs}
}

// Resolve resolves name. Exactly one of a usable Resolution or an error is
// produced; the returned error is always a *entities.ResourceError.
func (r *NameResolver) Resolve(name values.ResourceName) (Resolution, error) {
	if name == nil {
		return Resolution{}, fail(entities.KindEmptyIdentity, "name is empty")
	}

	switch n := name.(type) {
	case values.EmptyName:
		return Resolution{}, fail(entities.KindEmptyIdentity, "name is empty")
	case values.SymbolicName:
		return r.resolveSymbolic(n)
	case values.FilePath:
		return r.resolveFile(n)
	case values.EmbeddedOrdinal:
		return r.resolveOrdinal(n)
	case values.SystemConstant:
		return r.resolveSystem(n)
	default:
		return Resolution{}, fail(entities.KindMalformedIdentity,
			fmt.Sprintf("unsupported resource name variant: %T", name))
	}
}

func (r *NameResolver) resolveSymbolic(n values.SymbolicName) (Resolution, error) {
	if n.Text == "" {
		return Resolution{}, fail(entities.KindEmptyIdentity, "name can not be empty")
	}
	if !strings.HasSuffix(n.Text, values.Terminator) {
		return Resolution{}, fail(entities.KindMalformedIdentity,
			"name needs to end in terminator: "+n.Text)
	}

	kind := InferKindFromName(n.Text)
	if kind == values.KindUnknown {
		return Resolution{}, fail(entities.KindMalformedIdentity,
			"name is invalid: "+strings.TrimSuffix(n.Text, values.Terminator))
	}

	return Resolution{
		Kind:       kind,
		Identifier: values.TextIdentifier(n.Text),
	}, nil
}

func (r *NameResolver) resolveFile(n values.FilePath) (Resolution, error) {
	if n.Path == "" {
		return Resolution{}, fail(entities.KindEmptyIdentity, "filename can not be empty")
	}
	if !strings.HasSuffix(n.Path, values.Terminator) {
		return Resolution{}, fail(entities.KindMalformedIdentity,
			"filename needs to end in terminator: "+n.Path)
	}

	path := strings.TrimSuffix(n.Path, values.Terminator)

	ext, ok := FileExtension(path)
	if !ok {
		return Resolution{}, fail(entities.KindMalformedIdentity, "no file extension")
	}
	kind := InferKindFromExtension(ext)
	if kind == values.KindUnknown {
		return Resolution{}, fail(entities.KindMalformedIdentity,
			"file extension is not valid: ."+ext)
	}

	if !utf8.ValidString(path) || strings.ContainsRune(path, utf8.RuneError) {
		return Resolution{}, fail(entities.KindMalformedIdentity,
			"file should not have invalid Unicode: "+path)
	}

	exists, err := afero.Exists(r.fs, path)
	if err != nil {
		return Resolution{}, fail(entities.KindMissingResource,
			"file does not exist: "+path).WithCause(err)
	}
	if !exists {
		return Resolution{}, fail(entities.KindMissingResource, "file does not exist: "+path)
	}

	return Resolution{
		Kind:        kind,
		Identifier:  values.TextIdentifier(n.Path),
		ForcedFlags: values.FlagLoadFromFile,
	}, nil
}

func (r *NameResolver) resolveOrdinal(n values.EmbeddedOrdinal) (Resolution, error) {
	if !n.Kind.IsKnown() {
		return Resolution{}, fail(entities.KindMalformedIdentity,
			fmt.Sprintf("embedded ordinal %d has no resource kind", n.ID))
	}
	return systemResolution(n.Kind, n.ID), nil
}

func (r *NameResolver) resolveSystem(n values.SystemConstant) (Resolution, error) {
	switch n.Kind {
	case values.KindIcon:
		return systemResolution(n.Kind, n.ID), nil
	case values.KindCursor:
		res := systemResolution(n.Kind, n.ID)
		if values.IsReservedCursorID(n.ID) {
			res.Identifier = values.NullIdentifier
			return res, fail(entities.KindReservedValue,
				"reserved ids are no-op with system cursor constants")
		}
		return res, nil
	default:
		return Resolution{}, fail(entities.KindMalformedIdentity,
			"system constants only exist for icons and cursors: "+n.Kind.String())
	}
}

// systemResolution forces Shared and the system handle, as required for
// OS-supplied and ordinal resources.
func systemResolution(kind values.ResourceKind, id uint16) Resolution {
	return Resolution{
		Kind:            kind,
		Identifier:      values.OrdinalIdentifier(id),
		ForcedFlags:     values.FlagShared,
		UseSystemHandle: true,
	}
}

// InferKindFromName infers the kind from a symbolic name. BMP is checked
// first, then CUR, then ICO; the first match wins.
func InferKindFromName(text string) values.ResourceKind {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "BMP"):
		return values.KindBitmap
	case strings.Contains(upper, "CUR"):
		return values.KindCursor
	case strings.Contains(upper, "ICO"):
		return values.KindIcon
	default:
		return values.KindUnknown
	}
}

// InferKindFromExtension maps ico, cur and bmp (any case) to a kind.
func InferKindFromExtension(ext string) values.ResourceKind {
	switch strings.ToLower(ext) {
	case "ico":
		return values.KindIcon
	case "cur":
		return values.KindCursor
	case "bmp":
		return values.KindBitmap
	default:
		return values.KindUnknown
	}
}

// FileExtension returns the extension of the last path element, without
// the dot. Both slash styles separate elements.
func FileExtension(path string) (string, bool) {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return "", false
	}
	return base[i+1:], true
}

func fail(kind entities.ErrorKind, message string) *entities.ResourceError {
	return entities.NewResourceError(kind, resolverOrigin, message)
}
