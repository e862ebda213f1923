package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported report output formats
type OutputFormat string

const (
	OutputFormatText     OutputFormat = "text"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatYAML     OutputFormat = "yaml"
	OutputFormatMarkdown OutputFormat = "markdown"
	OutputFormatHTML     OutputFormat = "html"
)

// ReadinessStatus is the terminal verdict consumed by CI/CD
type ReadinessStatus string

const (
	ReadinessReady    ReadinessStatus = "READY"
	ReadinessNotReady ReadinessStatus = "NOT_READY"
)

// GateStatus describes how one category fared against its gate
type GateStatus struct {
	// Score is the category's own reported score
	Score int `json:"score" yaml:"score"`

	// MinimumScore is the configured threshold, 0 when unweighted
	MinimumScore int `json:"minimum_score" yaml:"minimum_score"`

	// Passed is true when the score meets the threshold. Categories without
	// a policy have no threshold and always pass their (absent) gate.
	Passed bool `json:"passed" yaml:"passed"`

	// Blocking mirrors the policy's blocking flag
	Blocking bool `json:"blocking" yaml:"blocking"`

	// Weighted is false for categories with no configured policy
	Weighted bool `json:"weighted" yaml:"weighted"`
}

// AggregateResult is the combined deployment decision. It is a pure function
// of the category results and the policies, recomputed each run and never
// persisted as a source of truth.
type AggregateResult struct {
	OverallScore      int                  `json:"overall_score" yaml:"overall_score"`
	Coverage          int                  `json:"coverage" yaml:"coverage"`
	TotalChecks       int                  `json:"total_checks" yaml:"total_checks"`
	PassedChecks      int                  `json:"passed_checks" yaml:"passed_checks"`
	IssuesBySeverity  map[Severity]int     `json:"issues_by_severity" yaml:"issues_by_severity"`
	DeploymentBlocked bool                 `json:"deployment_blocked" yaml:"deployment_blocked"`
	Gates             map[string]GateStatus `json:"gates" yaml:"gates"`

	// Blockers are human-readable reasons deployment is blocked, in a
	// deterministic order: failed blocking gates first (sorted by
	// category), then global readiness violations.
	Blockers []string `json:"blockers,omitempty" yaml:"blockers,omitempty"`
}

// Status returns the production-readiness verdict
func (r *AggregateResult) Status() ReadinessStatus {
	if r.DeploymentBlocked {
		return ReadinessNotReady
	}
	return ReadinessReady
}

// Aggregator combines category results into a deployment decision
type Aggregator interface {
	// Compute aggregates the results against the policy store. It never
	// fails for input it can interpret; malformed classes of input degrade
	// into the fail-closed result.
	Compute(results []CategoryResult, store *GatePolicyStore) *AggregateResult
}

// Probe produces a CategoryResult for one quality category. How a probe
// measures anything is opaque to the aggregation core.
type Probe interface {
	// Name returns the probe's registry name
	Name() string

	// Category returns the category the probe reports under
	Category() string

	// Run executes the probe. An error is recovered by the runner into the
	// fail-closed sentinel result, never propagated further.
	Run(ctx context.Context) (CategoryResult, error)
}

// ProbeRunner executes probes and joins their results. All probes have
// completed before the returned slice is handed to the aggregator.
type ProbeRunner interface {
	Run(ctx context.Context, probes []Probe) []CategoryResult
}

// ReportWriter renders the aggregate and the raw category results
type ReportWriter interface {
	// Write renders the report in the given format
	Write(agg *AggregateResult, results []CategoryResult, format OutputFormat, w io.Writer) error
}
