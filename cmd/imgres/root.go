package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/reglet-dev/imgres/internal/infrastructure/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool

	// v holds flags, config file and environment; commands read it
	// through loadConfig.
	v = config.NewViper(nil)
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "imgres",
	Short: "Resolve and load icon, cursor and bitmap resources",
	Long: `imgres builds graphical resource requests from file paths, symbolic names,
embedded ordinals or system constants, validates the load options and hands
the request to the platform image loader.

Requests can be issued one at a time (load, resolve) or in bulk from a YAML
manifest (batch).`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.imgres.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics")
	flags.String("log-level", "", "diagnostics threshold: off, error, warn, info, debug or 0-4")
	flags.String("log-format", "", "diagnostics format: line, text or json")
	flags.String("module", "", "default module for requests without one")
	flags.Bool("dry-run", false, "answer requests with synthetic handles")
	flags.Int("cache-size", 0, "shared handle cache size (0 disables)")

	bindFlags(v, rootCmd)
}

// bindFlags maps persistent flags onto configuration keys.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = v.BindPFlag(config.KeyModule, flags.Lookup("module"))
	_ = v.BindPFlag(config.KeyDryRun, flags.Lookup("dry-run"))
	_ = v.BindPFlag(config.KeyCacheSize, flags.Lookup("cache-size"))
}

// initConfig loads configuration from the config file and environment.
func initConfig() error {
	home, err := os.UserHomeDir()
	if err != nil && cfgFile == "" {
		slog.Debug("failed to find home directory", "error", err)
	}
	if err := config.ReadConfigFile(v, cfgFile, home); err != nil {
		return err
	}
	if verbose {
		v.Set(config.KeyLogLevel, "debug")
	}
	if used := v.ConfigFileUsed(); used != "" {
		slog.Debug("using config file", "file", used)
	}
	return nil
}

// loadConfig decodes the merged configuration.
func loadConfig() (*config.RuntimeConfig, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
