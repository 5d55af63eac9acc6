package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/reglet-dev/imgres/internal/application/ports"
	"github.com/reglet-dev/imgres/internal/infrastructure/output"
	"github.com/spf13/cobra"
)

// CommonOptions contains output flags shared by the load commands.
type CommonOptions struct {
	Format  string
	OutFile string

	// Execution
	Timeout time.Duration

	// Flags (bools grouped for alignment)
	Indent  bool
	NoColor bool
}

// DefaultCommonOptions returns sensible defaults.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Format:  output.FormatTable,
		Timeout: time.Minute,
		Indent:  true,
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Global timeout for entire execution (0 to disable)")

	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: table, json, yaml, junit, sarif")
	cmd.Flags().StringVarP(&opts.OutFile, "output", "o", opts.OutFile,
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.Indent, "indent", opts.Indent,
		"Indent json output")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", opts.NoColor,
		"Disable colored table output")
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return ctx, func() {}
}

// ValidateFlags validates common options against the supported formats.
func (opts *CommonOptions) ValidateFlags(formats []string) error {
	if !slices.Contains(formats, opts.Format) {
		return fmt.Errorf("invalid format: %s (valid: %v)", opts.Format, formats)
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("timeout can not be negative")
	}
	return nil
}

// FormatterOptions converts the flags for the formatter factory.
func (opts *CommonOptions) FormatterOptions() ports.FormatterOptions {
	return ports.FormatterOptions{Indent: opts.Indent, NoColor: opts.NoColor}
}

// openOutput returns the writer selected by --output. The returned close
// function is always safe to call.
func (opts *CommonOptions) openOutput(stdout io.Writer) (io.Writer, func(), error) {
	if opts.OutFile == "" {
		return stdout, func() {}, nil
	}
	//nolint:gosec // G304: User-controlled output file path is intentional
	file, err := os.Create(opts.OutFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, func() {
		_ = file.Close() // Best-effort cleanup
	}, nil
}
