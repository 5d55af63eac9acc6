package main

import (
	"fmt"

	"github.com/reglet-dev/imgres/internal/version"
	"github.com/spf13/cobra"
)

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of imgres",
	Run: func(cmd *cobra.Command, _ []string) {
		info := version.Get()
		fmt.Fprintf(cmd.OutOrStdout(), "imgres version %s\n", info.Full())
		fmt.Fprintf(cmd.OutOrStdout(), "manifest api %s\n", info.ManifestAPI)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
