package main

import (
	"github.com/reglet-dev/imgres/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var req requestOptions
	opts := DefaultCommonOptions()

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve one request without touching the platform loader",
		Long: `Run name resolution and option validation for a single request and report
the inferred kind, the effective flags and any findings. The loader is
replaced with a dry-run loader that answers with synthetic handles.`,
		Args: cobra.NoArgs,
		RunE: withContainer(func(cfg *config.RuntimeConfig) {
			cfg.DryRun = true
			if cfg.DefaultModule != "" {
				cfg.DryRunModules = append(cfg.DryRunModules, cfg.DefaultModule)
			}
			if req.from != "" {
				cfg.DryRunModules = append(cfg.DryRunModules, req.from)
			}
		}, func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			return runSingle(ctx, cmd, req.request(), &opts)
		}),
	}

	req.registerFlags(cmd)
	opts.RegisterFlags(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(newResolveCmd())
}
