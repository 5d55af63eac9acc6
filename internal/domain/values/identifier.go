package values

import (
	"fmt"
	"strings"
)

// Terminator is the trailing marker required on textual names and paths.
// Its presence signals the text is ready for the platform loader.
const Terminator = "\x00"

// Identifier is what the platform loader receives as the resource name:
// either text (terminator included) or a numeric ordinal.
type Identifier struct {
	text    string
	ordinal uint16
	numeric bool
}

// NullIdentifier is the empty identifier handed to the loader when no
// name could be resolved.
var NullIdentifier = Identifier{}

// TextIdentifier creates a textual identifier.
func TextIdentifier(text string) Identifier {
	return Identifier{text: text}
}

// OrdinalIdentifier creates a numeric identifier.
func OrdinalIdentifier(id uint16) Identifier {
	return Identifier{ordinal: id, numeric: true}
}

// IsOrdinal reports whether the identifier is numeric.
func (i Identifier) IsOrdinal() bool {
	return i.numeric
}

// IsNull reports whether the identifier is the null identifier.
func (i Identifier) IsNull() bool {
	return !i.numeric && i.text == ""
}

// Text returns the raw text, terminator included.
func (i Identifier) Text() string {
	return i.text
}

// Ordinal returns the numeric id. Zero for textual identifiers.
func (i Identifier) Ordinal() uint16 {
	return i.ordinal
}

// String returns a printable form; the terminator is not printed.
func (i Identifier) String() string {
	switch {
	case i.numeric:
		return fmt.Sprintf("#%d", i.ordinal)
	case i.text == "":
		return "<null>"
	default:
		return strings.TrimSuffix(i.text, Terminator)
	}
}

// Equals checks if two identifiers are equal
func (i Identifier) Equals(other Identifier) bool {
	return i == other
}

// MarshalText implements encoding.TextMarshaler
func (i Identifier) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
