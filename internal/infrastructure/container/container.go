// Package container provides dependency injection for the application.
package container

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/reglet-dev/imgres/internal/application/ports"
	"github.com/reglet-dev/imgres/internal/application/services"
	"github.com/reglet-dev/imgres/internal/domain/values"
	"github.com/reglet-dev/imgres/internal/infrastructure/config"
	"github.com/reglet-dev/imgres/internal/infrastructure/diagnostics"
	"github.com/reglet-dev/imgres/internal/infrastructure/manifest"
	"github.com/reglet-dev/imgres/internal/infrastructure/output"
	"github.com/reglet-dev/imgres/internal/infrastructure/platform"
	"github.com/spf13/afero"
)

// Handles used by the dry-run provider. Modules listed in the config get
// consecutive handles above dryRunModuleBase.
const (
	dryRunProcess    values.Handle = 0x400000
	dryRunModuleBase values.Handle = 0x7ff00000
	dryRunModuleStep values.Handle = 0x10000
)

// Container holds all application dependencies.
type Container struct {
	config         *config.RuntimeConfig
	logger         *slog.Logger
	loader         ports.PlatformLoader
	handles        ports.HandleProvider
	cache          *platform.SharedCache
	manifestLoader ports.ManifestLoader
	formatters     ports.OutputFormatterFactory
	batchLoad      *services.BatchLoadUseCase
}

// Options configure the container.
type Options struct {
	// Config is required
	Config *config.RuntimeConfig

	// Fs defaults to the OS filesystem
	Fs afero.Fs

	// Logger overrides the logger built from Config
	Logger *slog.Logger

	// Stderr receives diagnostics when Logger is nil; defaults to os.Stderr
	Stderr io.Writer
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("container: config is required")
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(opts.Stderr, opts.Config.LogFormat, opts.Config.Level())
	}

	// Platform adapters: the real loader, or synthetic handles in dry-run
	var loader ports.PlatformLoader
	var handles ports.HandleProvider
	if opts.Config.DryRun {
		loader = platform.NewDryRunLoader()
		handles = newDryRunHandles(opts.Config.DryRunModules)
		logger.Debug("dry run enabled", "modules", len(opts.Config.DryRunModules))
	} else {
		loader = platform.NewNativeLoader()
		handles = platform.NewNativeHandleProvider()
	}

	var cache *platform.SharedCache
	if opts.Config.CacheSize > 0 {
		var err error
		cache, err = platform.NewSharedCache(loader, opts.Config.CacheSize, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared handle cache: %w", err)
		}
		loader = cache
	}

	manifestLoader, err := manifest.NewLoader(opts.Fs)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest loader: %w", err)
	}

	return &Container{
		config:         opts.Config,
		logger:         logger,
		loader:         loader,
		handles:        handles,
		cache:          cache,
		manifestLoader: manifestLoader,
		formatters:     output.NewFormatterFactory(),
		batchLoad:      services.NewBatchLoadUseCase(loader, handles, opts.Fs, logger),
	}, nil
}

// NewLogger builds a logger for the configured format. The line format is
// the leveled diagnostics sink; text and json use the slog handlers.
func NewLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	switch format {
	case config.LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	case config.LogFormatText:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	default:
		return slog.New(diagnostics.NewLineHandler(w, level))
	}
}

func newDryRunHandles(modules []string) *platform.StaticHandleProvider {
	table := make(map[string]values.Handle, len(modules))
	for i, name := range modules {
		table[name] = dryRunModuleBase + values.Handle(i)*dryRunModuleStep
	}
	return platform.NewStaticHandleProvider(dryRunProcess, table)
}

// BatchLoadUseCase returns the batch load use case.
func (c *Container) BatchLoadUseCase() *services.BatchLoadUseCase {
	return c.batchLoad
}

// ManifestLoader returns the manifest loader port.
func (c *Container) ManifestLoader() ports.ManifestLoader {
	return c.manifestLoader
}

// Formatters returns the output formatter factory.
func (c *Container) Formatters() ports.OutputFormatterFactory {
	return c.formatters
}

// CacheStats reports shared cache hits and misses; zeros when the cache
// is disabled.
func (c *Container) CacheStats() (hits, misses int64) {
	if c.cache == nil {
		return 0, 0
	}
	return c.cache.Stats()
}

// Config returns the runtime configuration.
func (c *Container) Config() *config.RuntimeConfig {
	return c.config
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
