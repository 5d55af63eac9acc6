package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/reglet-dev/imgres/internal/application/dto"
	"github.com/reglet-dev/imgres/internal/domain/entities"
)

// JUnitFormatter formats batch reports as JUnit XML.
type JUnitFormatter struct {
	writer io.Writer
}

// NewJUnitFormatter creates a new JUnit formatter.
func NewJUnitFormatter(w io.Writer) *JUnitFormatter {
	return &JUnitFormatter{
		writer: w,
	}
}

// JUnitTestSuites JUnit XML structures
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitError struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

// suiteName is used when the report has no manifest path.
const suiteName = "imgres"

// Format writes the batch report as JUnit XML. Each request is a test case;
// platform and configuration failures are errors, all others are failures.
func (f *JUnitFormatter) Format(report *dto.BatchReport) error {
	name := report.ManifestPath
	if name == "" {
		name = suiteName
	}

	suite := JUnitTestSuite{
		Name:    name,
		Tests:   report.Summary.Total,
		Skipped: report.Summary.Skipped,
		Time:    seconds(report.DurationMS),
	}

	for _, res := range report.Results {
		c := JUnitTestCase{
			Name:      res.ID,
			ClassName: res.Mode + "." + res.Kind,
			Time:      seconds(res.DurationMS),
		}

		if !res.Loaded {
			if isEnvironmentFailure(res.ErrorKind) {
				c.Error = &JUnitError{Message: res.Error, Content: formatDetails(res)}
				suite.Errors++
			} else {
				c.Failure = &JUnitFailure{Message: res.Error, Content: formatDetails(res)}
				suite.Failures++
			}
		}

		suite.TestCases = append(suite.TestCases, c)
	}

	suites := JUnitTestSuites{
		Name:       suiteName,
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		Errors:     suite.Errors,
		Time:       suite.Time,
		TestSuites: []JUnitTestSuite{suite},
	}

	_, err := f.writer.Write([]byte(xml.Header))
	if err != nil {
		return err
	}

	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(suites); err != nil {
		return err
	}

	_, err = f.writer.Write([]byte("\n"))
	return err
}

func isEnvironmentFailure(kind string) bool {
	return kind == entities.KindPlatformLoad.String() || kind == entities.KindConfiguration.String()
}

func seconds(ms int64) float64 {
	return float64(ms) / 1000
}

func formatDetails(res dto.LoadReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", res.Name)
	fmt.Fprintf(&b, "Kind: %s\n", res.ErrorKind)
	if len(res.Flags) > 0 {
		fmt.Fprintf(&b, "Flags: %s\n", strings.Join(res.Flags, " | "))
	}
	for _, finding := range res.Findings {
		fmt.Fprintf(&b, "Finding (%s): %s\n", finding.Check, finding.Message)
	}
	return b.String()
}
