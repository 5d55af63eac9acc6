package main

import (
	"fmt"
	"runtime"

	"github.com/reglet-dev/imgres/internal/application/dto"
	"github.com/reglet-dev/imgres/internal/application/ports"
	"github.com/reglet-dev/imgres/internal/infrastructure/manifest"
	"github.com/spf13/cobra"
)

func newBatchCmd() *cobra.Command {
	var batch dto.BatchOptions
	opts := DefaultCommonOptions()

	cmd := &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Load every request of a manifest",
		Long: `Load the resource requests listed in a YAML manifest, one builder per
request, and report the outcome of each.

Filtering:
  --filter 'kind == "cursor"'           Only cursor requests
  --filter '"shared" in flags'          Only requests asking for shared handles
  --filter 'tags.group == "toolbar"'    Requests tagged group=toolbar`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(nil, func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			return runBatch(ctx, cmd, args[0], batch, &opts)
		}),
	}

	cmd.Flags().StringVar(&batch.Filter, "filter", "", "Filter expression over request fields")
	cmd.Flags().IntVar(&batch.Parallelism, "parallelism", 0, "Concurrent requests (default: config parallelism)")
	cmd.Flags().BoolVar(&batch.FailFast, "fail-fast", false, "Stop scheduling requests after the first failure")
	opts.RegisterFlags(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(newBatchCmd())
}

// runBatch implements the batch command.
func runBatch(ctx *CommandContext, cmd *cobra.Command, path string, batch dto.BatchOptions, opts *CommonOptions) error {
	if err := opts.ValidateFlags(ctx.Container.Formatters().SupportedFormats()); err != nil {
		return err
	}

	var filter ports.RequestFilter
	if batch.Filter != "" {
		f, err := manifest.CompileFilter(batch.Filter)
		if err != nil {
			return err
		}
		filter = f
	}
	if batch.Parallelism <= 0 {
		batch.Parallelism = ctx.Container.Config().Parallelism
	}
	if batch.Parallelism <= 0 {
		batch.Parallelism = runtime.NumCPU()
	}

	ctx.Logger.Info("loading manifest", "path", path)
	m, err := ctx.Container.ManifestLoader().LoadManifest(path)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	if m.Module == "" {
		m.Module = ctx.Container.Config().DefaultModule
	}

	runCtx, cancel := opts.ApplyToContext(ctx.Context)
	defer cancel()

	report, execErr := ctx.Container.BatchLoadUseCase().Execute(runCtx, m, filter, batch)
	if report == nil {
		return fmt.Errorf("batch failed: %w", execErr)
	}
	report.ManifestPath = path

	if hits, misses := ctx.Container.CacheStats(); hits+misses > 0 {
		ctx.Logger.Debug("shared handle cache", "hits", hits, "misses", misses)
	}

	if err := writeReport(ctx, cmd, report, opts); err != nil {
		return err
	}

	if execErr != nil {
		return fmt.Errorf("batch stopped: %w", execErr)
	}
	if report.Summary.Failed > 0 {
		return fmt.Errorf("batch failed: %d loaded, %d failed, %d skipped",
			report.Summary.Loaded, report.Summary.Failed, report.Summary.Skipped)
	}
	return nil
}
