// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"io"

	"github.com/reglet-dev/imgres/internal/application/dto"
)

// ManifestLoader loads batch manifests from storage.
type ManifestLoader interface {
	LoadManifest(path string) (*dto.Manifest, error)
}

// RequestFilter selects manifest requests.
type RequestFilter interface {
	Matches(req dto.LoadRequest) (bool, error)
}

// OutputFormatter formats batch reports.
type OutputFormatter interface {
	Format(report *dto.BatchReport) error
}

// FormatterOptions contains options for creating formatters.
type FormatterOptions struct {
	Indent  bool
	NoColor bool
}

// OutputFormatterFactory creates output formatters.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
