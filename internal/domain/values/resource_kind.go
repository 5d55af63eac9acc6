// Package values contains domain value objects that encapsulate
// primitive types with validation and such.
package values

import (
	"fmt"
	"strings"
)

// ResourceKind is the inferred kind of a graphical resource.
// The zero value is KindUnknown; callers never choose it directly,
// it is written back by name resolution.
type ResourceKind int

const (
	KindUnknown ResourceKind = iota
	KindIcon
	KindCursor
	KindBitmap
)

// Platform image type codes consumed by the loader.
const (
	ImageBitmap uint32 = 0
	ImageIcon   uint32 = 1
	ImageCursor uint32 = 2
)

// ParseResourceKind creates a ResourceKind from string
func ParseResourceKind(s string) (ResourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "icon", "ico":
		return KindIcon, nil
	case "cursor", "cur":
		return KindCursor, nil
	case "bitmap", "bmp":
		return KindBitmap, nil
	case "":
		return KindUnknown, nil
	default:
		return KindUnknown, fmt.Errorf("invalid resource kind: %s", s)
	}
}

// String returns the lowercase name of the kind.
func (k ResourceKind) String() string {
	switch k {
	case KindIcon:
		return "icon"
	case KindCursor:
		return "cursor"
	case KindBitmap:
		return "bitmap"
	default:
		return "unknown"
	}
}

// PlatformName returns the loader constant name, as it appears in diagnostics.
func (k ResourceKind) PlatformName() string {
	switch k {
	case KindIcon:
		return "IMAGE_ICON"
	case KindCursor:
		return "IMAGE_CURSOR"
	case KindBitmap:
		return "IMAGE_BITMAP"
	default:
		return "UNKNOWN"
	}
}

// ImageType maps the kind onto the loader's image type code.
// Unknown falls back to bitmap, the platform's zero type.
func (k ResourceKind) ImageType() uint32 {
	switch k {
	case KindIcon:
		return ImageIcon
	case KindCursor:
		return ImageCursor
	default:
		return ImageBitmap
	}
}

// IsKnown reports whether the kind was inferred.
func (k ResourceKind) IsKnown() bool {
	return k == KindIcon || k == KindCursor || k == KindBitmap
}

// MarshalJSON implements json.Marshaler
func (k ResourceKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// MarshalYAML implements yaml.InterfaceMarshaler
func (k ResourceKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}
