package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/reglet-dev/imgres/internal/application/dto"
)

const ruleWidth = 80

// TableFormatter formats batch reports as human-readable text.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true,
	}
}

// paint returns text rendered with the given attributes when color is enabled.
func (f *TableFormatter) paint(text string, attrs ...color.Attribute) string {
	if !f.EnableColor {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

func (f *TableFormatter) rule() string {
	return f.paint(strings.Repeat("─", ruleWidth), color.FgHiBlack)
}

// Format writes the batch report as a table.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) Format(report *dto.BatchReport) error {
	fmt.Fprintln(f.writer, f.rule())
	if report.ManifestPath != "" {
		fmt.Fprintf(f.writer, "Manifest: %s\n", f.paint(report.ManifestPath, color.Bold))
	}
	fmt.Fprintf(f.writer, "Processed: %s\n", report.ProcessedAt.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Duration: %dms\n", report.DurationMS)
	fmt.Fprintln(f.writer)

	if len(report.Results) == 0 {
		fmt.Fprintln(f.writer, "No requests processed.")
		return nil
	}

	fmt.Fprintln(f.writer, f.paint("Requests:", color.Bold))
	fmt.Fprintln(f.writer, f.rule())

	for _, res := range report.Results {
		f.formatRequest(res)
	}

	fmt.Fprintln(f.writer, f.rule())
	fmt.Fprintln(f.writer)

	f.formatSummary(report.Summary)
	return nil
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatRequest(res dto.LoadReport) {
	symbol, attr := "✓", color.FgGreen
	if !res.Loaded {
		symbol, attr = "✗", color.FgRed
	}

	fmt.Fprintf(f.writer, "%s %s: %s\n", f.paint(symbol, attr), f.paint(res.ID, attr), res.Name)
	fmt.Fprintf(f.writer, "  Mode: %s  Kind: %s\n", res.Mode, res.Kind)
	if len(res.Flags) > 0 {
		fmt.Fprintf(f.writer, "  Flags: %s\n", strings.Join(res.Flags, " | "))
	}
	if res.ProcessHandle != "" {
		fmt.Fprintf(f.writer, "  Module: %s\n", res.ProcessHandle)
	}
	if res.Loaded {
		fmt.Fprintf(f.writer, "  Handle: %s\n", f.paint(res.Handle, color.FgCyan))
	} else {
		fmt.Fprintf(f.writer, "  %s: [%s] %s\n", f.paint("Error", color.FgRed), res.ErrorKind, res.Error)
	}

	if len(res.Findings) > 0 {
		fmt.Fprintln(f.writer, "  Findings:")
		for _, finding := range res.Findings {
			fmt.Fprintf(f.writer, "    - %s %s: %s\n",
				f.paint(finding.Level, color.FgYellow), finding.Check, finding.Message)
		}
	}

	fmt.Fprintf(f.writer, "  Duration: %dms\n", res.DurationMS)
	fmt.Fprintln(f.writer)
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatSummary(s dto.BatchSummary) {
	fmt.Fprintln(f.writer, f.paint("Summary:", color.Bold))
	fmt.Fprintf(f.writer, "  Total:    %d\n", s.Total)
	fmt.Fprintf(f.writer, "  Loaded:   %s\n", f.paint(fmt.Sprint(s.Loaded), color.FgGreen))
	fmt.Fprintf(f.writer, "  Failed:   %s\n", f.paint(fmt.Sprint(s.Failed), color.FgRed))
	if s.Skipped > 0 {
		fmt.Fprintf(f.writer, "  Skipped:  %s\n", f.paint(fmt.Sprint(s.Skipped), color.FgHiBlack))
	}
	if s.Findings > 0 {
		fmt.Fprintf(f.writer, "  Findings: %s\n", f.paint(fmt.Sprint(s.Findings), color.FgYellow))
	}
}
