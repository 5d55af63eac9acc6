package dto

import (
	"time"
)

// FindingReport is a validator finding as reported to users.
type FindingReport struct {
	Check   string `json:"check" yaml:"check"`
	Level   string `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
}

// LoadReport contains the outcome of one resource request.
type LoadReport struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	Mode          string          `json:"mode" yaml:"mode"`
	Kind          string          `json:"kind" yaml:"kind"`
	Flags         []string        `json:"flags" yaml:"flags"`
	ProcessHandle string          `json:"process_handle" yaml:"process_handle"`
	Handle        string          `json:"handle,omitempty" yaml:"handle,omitempty"`
	Error         string          `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind     string          `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Findings      []FindingReport `json:"findings,omitempty" yaml:"findings,omitempty"`
	DurationMS    int64           `json:"duration_ms" yaml:"duration_ms"`
	Loaded        bool            `json:"loaded" yaml:"loaded"`
}

// BatchSummary aggregates a batch run.
type BatchSummary struct {
	Total    int `json:"total" yaml:"total"`
	Loaded   int `json:"loaded" yaml:"loaded"`
	Failed   int `json:"failed" yaml:"failed"`
	Skipped  int `json:"skipped" yaml:"skipped"`
	Findings int `json:"findings" yaml:"findings"`
}

// BatchReport contains the results of a manifest run.
type BatchReport struct {
	// ProcessedAt is when the batch started
	ProcessedAt time.Time `json:"processed_at" yaml:"processed_at"`

	ManifestPath string       `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	Results      []LoadReport `json:"results" yaml:"results"`
	Summary      BatchSummary `json:"summary" yaml:"summary"`

	// DurationMS is how long the batch took
	DurationMS int64 `json:"duration_ms" yaml:"duration_ms"`
}

// Summarize recomputes Summary from Results. skipped is carried over
// from filtering.
func (r *BatchReport) Summarize(skipped int) {
	s := BatchSummary{Total: len(r.Results) + skipped, Skipped: skipped}
	for _, res := range r.Results {
		if res.Loaded {
			s.Loaded++
		} else {
			s.Failed++
		}
		s.Findings += len(res.Findings)
	}
	r.Summary = s
}
