package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/reglet-dev/imgres/internal/application/dto"
	"github.com/reglet-dev/imgres/internal/version"
)

// SARIFFormatter formats batch reports as SARIF 2.1.0 JSON.
// Failed requests and validator findings become results; the error kinds
// and finding checks they reference become rules.
//
// Usage:
//
//	formatter := output.NewSARIFFormatter(os.Stdout)
//	if err := formatter.Format(report); err != nil {
//	    log.Fatal(err)
//	}
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a new SARIF formatter.
func NewSARIFFormatter(writer io.Writer) *SARIFFormatter {
	return &SARIFFormatter{writer: writer}
}

// Format writes the batch report as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(report *dto.BatchReport) error {
	sarifReport := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	toolVersion := version.Version
	run.Tool.Driver.Version = &toolVersion

	newSARIFMapper(report).mapToRun(run)
	sarifReport.AddRun(run)

	if err := sarifReport.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}
