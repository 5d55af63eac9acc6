package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/reglet-dev/imgres/internal/application/dto"
)

const (
	toolName = "imgres"
	toolURI  = "https://github.com/reglet-dev/imgres"

	// Rule id prefixes keep error kinds and finding checks apart.
	errorRulePrefix   = "load/"
	findingRulePrefix = "option/"
)

type sarifMapper struct {
	report *dto.BatchReport
	cwd    string
	rules  map[string]string // rule id -> level
}

func newSARIFMapper(report *dto.BatchReport) *sarifMapper {
	cwd, _ := os.Getwd() // Best effort, ignore error
	return &sarifMapper{
		report: report,
		cwd:    cwd,
		rules:  make(map[string]string),
	}
}

// mapToRun populates the SARIF run with results, rules and the invocation.
func (m *sarifMapper) mapToRun(run *sarif.Run) {
	m.addResults(run)
	m.addRules(run)
	m.addInvocation(run)

	props := sarif.NewPropertyBag()
	props.Add("summary", m.report.Summary)
	run.WithProperties(props)
}

// addResults emits one result per failed request and one per finding.
func (m *sarifMapper) addResults(run *sarif.Run) {
	for _, res := range m.report.Results {
		if !res.Loaded {
			run.AddResult(m.errorResult(res))
		}
		for _, finding := range res.Findings {
			run.AddResult(m.findingResult(res, finding))
		}
	}
}

func (m *sarifMapper) errorResult(res dto.LoadReport) *sarif.Result {
	kind := res.ErrorKind
	if kind == "" {
		kind = "unclassified"
	}
	ruleID := errorRulePrefix + kind
	m.rules[ruleID] = "error"

	result := sarif.NewRuleResult(ruleID)
	result.Level = "error"
	result.Kind = "fail"
	result.Message = sarif.NewTextMessage(fmt.Sprintf("%s: %s", res.ID, res.Error))
	m.attach(result, res)
	return result
}

func (m *sarifMapper) findingResult(res dto.LoadReport, finding dto.FindingReport) *sarif.Result {
	ruleID := findingRulePrefix + finding.Check
	level := mapFindingLevel(finding.Level)
	m.rules[ruleID] = level

	result := sarif.NewRuleResult(ruleID)
	result.Level = level
	result.Kind = "fail"
	result.Message = sarif.NewTextMessage(fmt.Sprintf("%s: %s", res.ID, finding.Message))
	m.attach(result, res)
	return result
}

// attach adds the manifest location and the request properties.
func (m *sarifMapper) attach(result *sarif.Result, res dto.LoadReport) {
	if m.report.ManifestPath != "" {
		pLoc := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithURI(m.normalizeURI(m.report.ManifestPath)))
		result.Locations = []*sarif.Location{sarif.NewLocation().WithPhysicalLocation(pLoc)}
	}

	props := sarif.NewPropertyBag()
	props.Add("request", res.ID)
	props.Add("name", res.Name)
	props.Add("mode", res.Mode)
	props.Add("kind", res.Kind)
	if len(res.Flags) > 0 {
		props.Add("flags", res.Flags)
	}
	result.WithProperties(props)
}

// addRules registers every rule referenced by a result, sorted by id.
func (m *sarifMapper) addRules(run *sarif.Run) {
	ids := make([]string, 0, len(m.rules))
	for id := range m.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		name := id[strings.Index(id, "/")+1:]
		rule := sarif.NewReportingDescriptor().WithID(id).WithName(name)
		rule.WithShortDescription(&sarif.MultiformatMessageString{Text: &name})
		rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: m.rules[id]})
		run.Tool.Driver.AddRule(rule)
	}
}

func (m *sarifMapper) addInvocation(run *sarif.Run) {
	invocation := sarif.NewInvocation()
	successful := m.report.Summary.Failed == 0
	invocation.ExecutionSuccessful = &successful

	start := m.report.ProcessedAt.UTC().Format("2006-01-02T15:04:05.000Z")
	invocation.StartTimeUtc = &start

	if m.cwd != "" {
		invocation.WorkingDirectory = sarif.NewArtifactLocation().WithURI("file://" + filepath.ToSlash(m.cwd))
	}

	run.AddInvocation(invocation)
}

// normalizeURI converts a file path to a SARIF-compliant URI.
func (m *sarifMapper) normalizeURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}

	if m.cwd != "" {
		if rel, err := filepath.Rel(m.cwd, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}

	return "file://" + filepath.ToSlash(abs)
}

// mapFindingLevel converts a slog level name to a SARIF level.
func mapFindingLevel(level string) string {
	switch strings.ToUpper(level) {
	case "ERROR":
		return "error"
	case "WARN", "WARNING":
		return "warning"
	default:
		return "note"
	}
}
