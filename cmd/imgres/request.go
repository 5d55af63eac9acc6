package main

import (
	"fmt"
	"time"

	"github.com/reglet-dev/imgres/internal/application/dto"
	"github.com/spf13/cobra"
)

// requestOptions describes a single request given on the command line.
type requestOptions struct {
	id      string
	source  string
	value   string
	kind    string
	mode    string
	from    string
	flags   []string
	width   int32
	height  int32
	ordinal uint16
}

func (o *requestOptions) registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.id, "id", "", "Request id (default: generated)")
	cmd.Flags().StringVar(&o.source, "source", "", "Name variant: file, name, ordinal, system or empty")
	cmd.Flags().StringVar(&o.value, "value", "", "Path, symbolic name or system constant name")
	cmd.Flags().StringVar(&o.kind, "kind", "", "Resource kind: icon, cursor or bitmap")
	cmd.Flags().StringVar(&o.mode, "mode", dto.ModeImage, "Load mode: image, icon or cursor")
	cmd.Flags().StringVar(&o.from, "from", "", "Module for file and name sources (default: --module or the running process)")
	cmd.Flags().StringSliceVar(&o.flags, "flag", nil, "Load flags, e.g. shared,default_size (repeatable)")
	cmd.Flags().Int32Var(&o.width, "width", 0, "Desired width (0 = default)")
	cmd.Flags().Int32Var(&o.height, "height", 0, "Desired height (0 = default)")
	cmd.Flags().Uint16Var(&o.ordinal, "ordinal", 0, "Numeric id for ordinal and system sources")
}

func (o *requestOptions) request() dto.LoadRequest {
	return dto.LoadRequest{
		ID:      o.id,
		Source:  o.source,
		Value:   o.value,
		Kind:    o.kind,
		Mode:    o.mode,
		Module:  o.from,
		Flags:   o.flags,
		Width:   o.width,
		Height:  o.height,
		Ordinal: o.ordinal,
	}
}

// runSingle issues one request and writes its report. It fails when the
// request did not load.
func runSingle(ctx *CommandContext, cmd *cobra.Command, req dto.LoadRequest, opts *CommonOptions) error {
	if err := opts.ValidateFlags(ctx.Container.Formatters().SupportedFormats()); err != nil {
		return err
	}
	runCtx, cancel := opts.ApplyToContext(ctx.Context)
	defer cancel()

	start := time.Now()
	result := ctx.Container.BatchLoadUseCase().LoadOne(runCtx, req, ctx.Container.Config().DefaultModule)

	report := &dto.BatchReport{
		ProcessedAt: start,
		Results:     []dto.LoadReport{result},
		DurationMS:  result.DurationMS,
	}
	report.Summarize(0)

	if err := writeReport(ctx, cmd, report, opts); err != nil {
		return err
	}
	if !result.Loaded {
		return fmt.Errorf("request %s failed: %s", result.ID, result.Error)
	}
	return nil
}

// writeReport formats report to the selected output.
func writeReport(ctx *CommandContext, cmd *cobra.Command, report *dto.BatchReport, opts *CommonOptions) error {
	writer, closeOutput, err := opts.openOutput(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput()

	formatter, err := ctx.Container.Formatters().Create(opts.Format, writer, opts.FormatterOptions())
	if err != nil {
		return err
	}
	if err := formatter.Format(report); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	if opts.OutFile != "" {
		ctx.Logger.Info("wrote output", "file", opts.OutFile, "format", opts.Format)
	}
	return nil
}
