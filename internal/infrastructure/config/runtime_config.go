// Package config provides runtime configuration backed by viper: defaults,
// an optional YAML config file and IMGRES_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	apperrors "github.com/reglet-dev/imgres/internal/application/errors"
	"github.com/reglet-dev/imgres/internal/infrastructure/diagnostics"
	"github.com/reglet-dev/imgres/internal/infrastructure/platform"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. IMGRES_LOG_LEVEL.
const EnvPrefix = "IMGRES"

// Log formats.
const (
	LogFormatLine = "line"
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Configuration keys.
const (
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeyModule      = "module"
	KeyDryRun      = "dry_run"
	KeyCacheSize   = "cache_size"
	KeyParallelism = "parallelism"
	KeyDryRunMods  = "dry_run_modules"
)

// RuntimeConfig aggregates all runtime configuration.
// This is a value object that flows through the system.
type RuntimeConfig struct {
	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Loading
	DefaultModule string `mapstructure:"module"`
	DryRun        bool   `mapstructure:"dry_run"`

	// DryRunModules are the module names the dry-run handle provider knows
	DryRunModules []string `mapstructure:"dry_run_modules"`

	// CacheSize bounds the shared handle cache (0 disables it)
	CacheSize int `mapstructure:"cache_size"`

	// Parallelism limits concurrent builders in batch runs
	Parallelism int `mapstructure:"parallelism"`
}

// NewViper creates a viper instance with defaults and environment
// bindings. A nil fs means the OS filesystem.
func NewViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	if fs != nil {
		v.SetFs(fs)
	}
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, LogFormatLine)
	v.SetDefault(KeyModule, "")
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyDryRunMods, []string{})
	v.SetDefault(KeyCacheSize, platform.DefaultCacheSize)
	v.SetDefault(KeyParallelism, runtime.NumCPU())
}

// ReadConfigFile reads path, or $HOME/.imgres.yaml when path is empty.
// A missing default file is not an error.
func ReadConfigFile(v *viper.Viper, path, home string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".imgres")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return apperrors.NewConfigurationError("config_file", "failed to read config file", err)
	}
	return nil
}

// Load decodes v into a RuntimeConfig and validates it.
func Load(v *viper.Viper) (*RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigurationError("config", "failed to decode configuration", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults applies defaults for zero values.
func (r *RuntimeConfig) ApplyDefaults() {
	if r.LogLevel == "" {
		r.LogLevel = "warn"
	}
	if r.LogFormat == "" {
		r.LogFormat = LogFormatLine
	}
	if r.Parallelism <= 0 {
		r.Parallelism = runtime.NumCPU()
	}
	// CacheSize 0 is meaningful: no cache.
}

// Validate checks enumerated and bounded settings.
func (r *RuntimeConfig) Validate() error {
	if _, err := diagnostics.ParseLevel(r.LogLevel); err != nil {
		return apperrors.NewConfigurationError(KeyLogLevel, "invalid log level", err)
	}
	switch r.LogFormat {
	case LogFormatLine, LogFormatText, LogFormatJSON:
	default:
		return apperrors.NewConfigurationError(KeyLogFormat,
			fmt.Sprintf("unsupported log format %q (expected line, text or json)", r.LogFormat), nil)
	}
	if r.CacheSize < 0 {
		return apperrors.NewConfigurationError(KeyCacheSize, "cache size can not be negative", nil)
	}
	return nil
}

// Level returns the parsed log level. Validate must have succeeded.
func (r *RuntimeConfig) Level() slog.Level {
	level, _ := diagnostics.ParseLevel(r.LogLevel)
	return level
}
