// Package output renders batch load reports in the supported formats.
package output

import (
	"fmt"
	"io"

	"github.com/reglet-dev/imgres/internal/application/ports"
)

// Format names accepted by the factory.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatJUnit = "junit"
	FormatSARIF = "sarif"
)

var _ ports.OutputFormatterFactory = (*FormatterFactory)(nil)

// FormatterFactory implements ports.OutputFormatterFactory.
type FormatterFactory struct{}

// NewFormatterFactory creates a new formatter factory.
func NewFormatterFactory() *FormatterFactory {
	return &FormatterFactory{}
}

// Create returns a formatter for the given format name.
func (f *FormatterFactory) Create(
	format string,
	writer io.Writer,
	options ports.FormatterOptions,
) (ports.OutputFormatter, error) {
	switch format {
	case FormatTable:
		table := NewTableFormatter(writer)
		table.EnableColor = !options.NoColor
		return table, nil
	case FormatJSON:
		return NewJSONFormatter(writer, options.Indent), nil
	case FormatYAML:
		return NewYAMLFormatter(writer), nil
	case FormatJUnit:
		return NewJUnitFormatter(writer), nil
	case FormatSARIF:
		return NewSARIFFormatter(writer), nil
	default:
		return nil, fmt.Errorf(
			"unknown format: %s (supported: %v)",
			format, f.SupportedFormats(),
		)
	}
}

// SupportedFormats returns list of available format names.
func (f *FormatterFactory) SupportedFormats() []string {
	return []string{FormatTable, FormatJSON, FormatYAML, FormatJUnit, FormatSARIF}
}
