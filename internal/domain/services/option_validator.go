package services

import (
	"log/slog"

	"github.com/reglet-dev/imgres/internal/domain/values"
)

// Finding is a non-blocking observation about a load configuration.
type Finding struct {
	Check   string     `json:"check" yaml:"check"`
	Message string     `json:"message" yaml:"message"`
	Level   slog.Level `json:"level" yaml:"level"`
}

// LoadOptions is the post-resolution state inspected by the validator.
type LoadOptions struct {
	Kind       values.ResourceKind
	Flags      values.LoadFlags
	Dimensions values.Dimensions
}

// OptionValidator reports no-op and discouraged option combinations.
// It never rejects a configuration.
type OptionValidator struct{}

// NewOptionValidator creates an option validator.
func NewOptionValidator() *OptionValidator {
	return &OptionValidator{}
}

// Validate returns findings in a fixed order: dimensions, DIB section
// against kind, colour flags, sharing.
func (v *OptionValidator) Validate(opts LoadOptions) []Finding {
	var findings []Finding

	findings = appendDimension(findings, opts.Dimensions.Width, "width", opts.Flags)
	findings = appendDimension(findings, opts.Dimensions.Height, "height", opts.Flags)

	if opts.Flags.Has(values.FlagCreateDIBSection) &&
		(opts.Kind == values.KindCursor || opts.Kind == values.KindIcon) {
		findings = append(findings, Finding{
			Check:   "dib_section",
			Level:   slog.LevelWarn,
			Message: "DIB section bitmap is no-op with resource type: " + opts.Kind.PlatformName(),
		})
	}

	if opts.Flags.Has(values.FlagMonochrome) &&
		(opts.Flags.Has(values.FlagThreeDColors) || opts.Flags.Has(values.FlagVGAColors)) {
		findings = append(findings, Finding{
			Check:   "color",
			Level:   slog.LevelWarn,
			Message: "3D and VGA color are no-op when mono is used",
		})
	}

	if opts.Flags.Has(values.FlagShared) && opts.Flags.Has(values.FlagLoadFromFile) {
		findings = append(findings, Finding{
			Check:   "shared",
			Level:   slog.LevelWarn,
			Message: "shared handles are discouraged for images loaded from a file",
		})
	}

	return findings
}

func appendDimension(findings []Finding, dimension int32, label string, flags values.LoadFlags) []Finding {
	if dimension != 0 {
		return findings
	}
	msg := "original image " + label + " will be used"
	if flags.Has(values.FlagDefaultSize) {
		msg = "default system " + label + " will be used"
	}
	return append(findings, Finding{
		Check:   "dimensions",
		Level:   slog.LevelWarn,
		Message: msg,
	})
}
