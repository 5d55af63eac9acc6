package values

import (
	"fmt"
	"strings"
)

// NameVariant tags the ResourceName variants.
type NameVariant int

const (
	VariantEmpty NameVariant = iota
	VariantFilePath
	VariantEmbeddedOrdinal
	VariantSystemConstant
	VariantSymbolicName
)

// String returns the variant name.
func (v NameVariant) String() string {
	switch v {
	case VariantFilePath:
		return "file"
	case VariantEmbeddedOrdinal:
		return "ordinal"
	case VariantSystemConstant:
		return "system"
	case VariantSymbolicName:
		return "name"
	default:
		return "empty"
	}
}

// ParseNameVariant parses a variant name as used in manifests.
func ParseNameVariant(s string) (NameVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file", "path":
		return VariantFilePath, nil
	case "ordinal", "oem":
		return VariantEmbeddedOrdinal, nil
	case "system":
		return VariantSystemConstant, nil
	case "name":
		return VariantSymbolicName, nil
	case "empty", "":
		return VariantEmpty, nil
	default:
		return VariantEmpty, fmt.Errorf("invalid resource name variant: %s", s)
	}
}

// ResourceName describes where a resource's identity comes from.
// It is a closed set: FilePath, EmbeddedOrdinal, SystemConstant,
// SymbolicName and EmptyName are the only implementations.
type ResourceName interface {
	Variant() NameVariant
	String() string
	isResourceName()
}

// FilePath names an image file on disk. The path must end with Terminator.
type FilePath struct {
	Path string
}

// EmbeddedOrdinal is a numeric resource compiled into a module.
type EmbeddedOrdinal struct {
	Kind ResourceKind
	ID   uint16
}

// SystemConstant is a well-known OS-supplied icon or cursor id.
type SystemConstant struct {
	Kind ResourceKind
	ID   uint16
}

// SymbolicName is a textual resource name compiled into a module. The
// text must end with Terminator and contain BMP, CUR or ICO.
type SymbolicName struct {
	Text string
}

// EmptyName is the unset name.
type EmptyName struct{}

func (FilePath) isResourceName()        {}
func (EmbeddedOrdinal) isResourceName() {}
func (SystemConstant) isResourceName()  {}
func (SymbolicName) isResourceName()    {}
func (EmptyName) isResourceName()       {}

// Variant implements ResourceName
func (FilePath) Variant() NameVariant { return VariantFilePath }

// Variant implements ResourceName
func (EmbeddedOrdinal) Variant() NameVariant { return VariantEmbeddedOrdinal }

// Variant implements ResourceName
func (SystemConstant) Variant() NameVariant { return VariantSystemConstant }

// Variant implements ResourceName
func (SymbolicName) Variant() NameVariant { return VariantSymbolicName }

// Variant implements ResourceName
func (EmptyName) Variant() NameVariant { return VariantEmpty }

func (n FilePath) String() string {
	return "file:" + strings.TrimSuffix(n.Path, Terminator)
}

func (n EmbeddedOrdinal) String() string {
	return fmt.Sprintf("ordinal:%s:%d", n.Kind, n.ID)
}

func (n SystemConstant) String() string {
	return fmt.Sprintf("system:%s:%d", n.Kind, n.ID)
}

func (n SymbolicName) String() string {
	return "name:" + strings.TrimSuffix(n.Text, Terminator)
}

func (EmptyName) String() string {
	return "empty"
}

// NewFilePath creates a FilePath name.
func NewFilePath(path string) FilePath {
	return FilePath{Path: path}
}

// NewSymbolicName creates a SymbolicName.
func NewSymbolicName(text string) SymbolicName {
	return SymbolicName{Text: text}
}

// NewEmbeddedOrdinal creates an EmbeddedOrdinal; kind must be known.
func NewEmbeddedOrdinal(kind ResourceKind, id uint16) (EmbeddedOrdinal, error) {
	if !kind.IsKnown() {
		return EmbeddedOrdinal{}, fmt.Errorf("embedded ordinal needs an icon, cursor or bitmap kind")
	}
	return EmbeddedOrdinal{Kind: kind, ID: id}, nil
}

// NewSystemConstant creates a SystemConstant; only icons and cursors
// have system constants.
func NewSystemConstant(kind ResourceKind, id uint16) (SystemConstant, error) {
	if kind != KindIcon && kind != KindCursor {
		return SystemConstant{}, fmt.Errorf("system constants only exist for icons and cursors, got %s", kind)
	}
	return SystemConstant{Kind: kind, ID: id}, nil
}

// WithTerminator appends Terminator to s unless it already ends with it.
func WithTerminator(s string) string {
	if strings.HasSuffix(s, Terminator) {
		return s
	}
	return s + Terminator
}
