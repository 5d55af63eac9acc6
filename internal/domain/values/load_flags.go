package values

import (
	"sort"
	"strings"
)

// LoadFlags is the set of independent loader capabilities.
// Bit values match the platform's LR_* constants so the set can be
// handed to the loader unchanged.
type LoadFlags uint32

const (
	FlagMonochrome       LoadFlags = 0x00000001
	FlagLoadFromFile     LoadFlags = 0x00000010
	FlagTransparent      LoadFlags = 0x00000020
	FlagDefaultSize      LoadFlags = 0x00000040
	FlagVGAColors        LoadFlags = 0x00000080
	FlagThreeDColors     LoadFlags = 0x00001000
	FlagCreateDIBSection LoadFlags = 0x00002000
	FlagShared           LoadFlags = 0x00008000
)

var flagNames = map[LoadFlags]string{
	FlagMonochrome:       "monochrome",
	FlagLoadFromFile:     "load_from_file",
	FlagTransparent:      "transparent",
	FlagDefaultSize:      "default_size",
	FlagVGAColors:        "vga_colors",
	FlagThreeDColors:     "3d_colors",
	FlagCreateDIBSection: "dib_section",
	FlagShared:           "shared",
}

// CallerFlags are the flags a caller may request. LoadFromFile is set
// internally when the name is a file path.
var CallerFlags = []LoadFlags{
	FlagDefaultSize,
	FlagCreateDIBSection,
	FlagShared,
	FlagTransparent,
	FlagThreeDColors,
	FlagMonochrome,
	FlagVGAColors,
}

// Has reports whether every bit of flag is set.
func (f LoadFlags) Has(flag LoadFlags) bool {
	return f&flag == flag
}

// With returns the set with flag added.
func (f LoadFlags) With(flag LoadFlags) LoadFlags {
	return f | flag
}

// Without returns the set with flag cleared.
func (f LoadFlags) Without(flag LoadFlags) LoadFlags {
	return f &^ flag
}

// Names returns the sorted names of the set flags.
func (f LoadFlags) Names() []string {
	names := make([]string, 0, len(flagNames))
	for flag, name := range flagNames {
		if f.Has(flag) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// String returns the set as "a|b|c", or "none".
func (f LoadFlags) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseLoadFlag resolves a caller-facing flag name.
func ParseLoadFlag(name string) (LoadFlags, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, flag := range CallerFlags {
		if flagNames[flag] == name {
			return flag, true
		}
	}
	return 0, false
}

// MarshalYAML implements yaml.InterfaceMarshaler
func (f LoadFlags) MarshalYAML() (interface{}, error) {
	return f.Names(), nil
}

// MarshalJSON implements json.Marshaler
func (f LoadFlags) MarshalJSON() ([]byte, error) {
	names := f.Names()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = `"` + n + `"`
	}
	return []byte("[" + strings.Join(quoted, ",") + "]"), nil
}
