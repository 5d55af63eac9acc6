package main

import (
	"github.com/spf13/cobra"
)

func newLoadCmd() *cobra.Command {
	var req requestOptions
	opts := DefaultCommonOptions()

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load one resource through the platform loader",
		Long: `Build a single resource request from flags, validate its options and
load it. The command fails when no handle is produced.

Examples:
  imgres load --source file --value assets/app.ico --flag default_size
  imgres load --source system --kind cursor --value arrow --mode cursor
  imgres load --source name --value APPICO --from shell32.dll
  imgres load --source ordinal --kind icon --ordinal 101 --mode icon

Ordinal and system sources always load from the system handle; --from only
applies to file and name sources.`,
		Args: cobra.NoArgs,
		RunE: withContainer(nil, func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			return runSingle(ctx, cmd, req.request(), &opts)
		}),
	}

	req.registerFlags(cmd)
	opts.RegisterFlags(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(newLoadCmd())
}
