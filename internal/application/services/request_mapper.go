package services

import (
	"strings"

	"github.com/reglet-dev/imgres/internal/application/dto"
	apperrors "github.com/reglet-dev/imgres/internal/application/errors"
	"github.com/reglet-dev/imgres/internal/domain/values"
)

// RequestName builds the resource name described by req. Textual values
// get the terminator appended when it is missing. The returned kind is
// the request's kind hint.
func RequestName(req dto.LoadRequest) (values.ResourceName, values.ResourceKind, error) {
	variant, err := values.ParseNameVariant(req.Source)
	if err != nil {
		return nil, values.KindUnknown, apperrors.NewValidationError("source", err.Error())
	}
	kind, err := values.ParseResourceKind(req.Kind)
	if err != nil {
		return nil, values.KindUnknown, apperrors.NewValidationError("kind", err.Error())
	}

	switch variant {
	case values.VariantFilePath:
		return values.NewFilePath(terminated(req.Value)), kind, nil
	case values.VariantSymbolicName:
		return values.NewSymbolicName(terminated(req.Value)), kind, nil
	case values.VariantEmbeddedOrdinal:
		n, err := values.NewEmbeddedOrdinal(kind, req.Ordinal)
		if err != nil {
			return nil, kind, apperrors.NewValidationError("kind", err.Error())
		}
		return n, kind, nil
	case values.VariantSystemConstant:
		id := req.Ordinal
		if id == 0 && req.Value != "" {
			var ok bool
			id, ok = values.LookupSystemID(kind, strings.ToLower(strings.TrimSpace(req.Value)))
			if !ok {
				return nil, kind, apperrors.NewValidationError("value", "unknown system "+kind.String()+": "+req.Value)
			}
		}
		n, err := values.NewSystemConstant(kind, id)
		if err != nil {
			return nil, kind, apperrors.NewValidationError("kind", err.Error())
		}
		return n, kind, nil
	default:
		return values.EmptyName{}, kind, nil
	}
}

// RequestFlags parses the caller flag names of req.
func RequestFlags(req dto.LoadRequest) (values.LoadFlags, error) {
	var flags values.LoadFlags
	var unknown []string
	for _, name := range req.Flags {
		f, ok := values.ParseLoadFlag(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		flags = flags.With(f)
	}
	if len(unknown) > 0 {
		return 0, apperrors.NewValidationError("flags", "unknown flag: "+strings.Join(unknown, ", "), unknown...)
	}
	return flags, nil
}

// terminated appends the terminator to non-empty text. Empty text stays
// empty so that it is reported as such.
func terminated(s string) string {
	if s == "" {
		return s
	}
	return values.WithTerminator(s)
}
