package service

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/webqual/webgate/domain"
	"github.com/webqual/webgate/internal/version"
	"gopkg.in/yaml.v3"
)

// Fixed remediation advice per category. One string per category, shown for
// every under-threshold gate.
var recommendations = map[string]string{
	domain.CategorySecurity:      "Harden HTTP response headers: add Content-Security-Policy, Strict-Transport-Security and X-Frame-Options before deploying",
	domain.CategoryForms:         "Tighten form validation on both client and server, including password strength and email format rules",
	domain.CategoryAccessibility: "Fix WCAG violations: label form controls, add alt text and verify keyboard navigation",
	domain.CategoryPerformance:   "Reduce page weight and response times: compress assets, enable caching and trim render-blocking resources",
}

const defaultRecommendation = "Investigate and resolve the failing checks for this category"

// ReportMeta carries run metadata stamped into every artifact
type ReportMeta struct {
	GeneratedAt string
	RunID       string
	TargetURL   string
	DurationMs  int64
}

// ReportSummary is the machine-readable run summary
type ReportSummary struct {
	OverallScore      int  `json:"overall_score" yaml:"overall_score"`
	Coverage          int  `json:"coverage" yaml:"coverage"`
	TotalTests        int  `json:"total_tests" yaml:"total_tests"`
	TotalPassed       int  `json:"total_passed" yaml:"total_passed"`
	TotalFailed       int  `json:"total_failed" yaml:"total_failed"`
	DeploymentBlocked bool `json:"deployment_blocked" yaml:"deployment_blocked"`
}

// IssueCounts buckets issues by severity
type IssueCounts struct {
	Critical int `json:"critical" yaml:"critical"`
	High     int `json:"high" yaml:"high"`
	Medium   int `json:"medium" yaml:"medium"`
	Low      int `json:"low" yaml:"low"`
}

// ProductionReadiness is the CI/CD-facing verdict section
type ProductionReadiness struct {
	Status          domain.ReadinessStatus `json:"status" yaml:"status"`
	Blockers        []string               `json:"blockers" yaml:"blockers"`
	Recommendations []string               `json:"recommendations" yaml:"recommendations"`
}

// ReportedFailure is one failed check with its category and resolved severity
type ReportedFailure struct {
	Category    string          `json:"category" yaml:"category"`
	Description string          `json:"description" yaml:"description"`
	Severity    domain.Severity `json:"severity" yaml:"severity"`
}

// GateReport is the structured artifact rendered by every output format
type GateReport struct {
	Timestamp           string                       `json:"timestamp" yaml:"timestamp"`
	RunID               string                       `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Version             string                       `json:"version" yaml:"version"`
	TargetURL           string                       `json:"target_url,omitempty" yaml:"target_url,omitempty"`
	DurationMs          int64                        `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty"`
	Summary             ReportSummary                `json:"summary" yaml:"summary"`
	QualityGates        map[string]domain.GateStatus `json:"quality_gates" yaml:"quality_gates"`
	Issues              IssueCounts                  `json:"issues" yaml:"issues"`
	Failures            []ReportedFailure            `json:"failures" yaml:"failures"`
	ProductionReadiness ProductionReadiness          `json:"production_readiness" yaml:"production_readiness"`
}

// BuildReport assembles the structured report from the aggregate and the raw
// category results. Failures are sorted CRITICAL to LOW, stable by original
// order within a severity.
func BuildReport(agg *domain.AggregateResult, results []domain.CategoryResult, meta ReportMeta) *GateReport {
	failures := make([]ReportedFailure, 0)
	for _, r := range results {
		for _, f := range r.Failures {
			severity := f.Severity
			if severity == "" {
				severity = domain.DefaultSeverityForScore(r.Score)
			}
			failures = append(failures, ReportedFailure{
				Category:    r.Category,
				Description: f.Description,
				Severity:    severity,
			})
		}
	}
	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].Severity.Rank() > failures[j].Severity.Rank()
	})

	// One remediation string per under-threshold weighted category, in
	// category order
	var failing []string
	for category, gate := range agg.Gates {
		if gate.Weighted && !gate.Passed {
			failing = append(failing, category)
		}
	}
	sort.Strings(failing)

	recs := make([]string, 0, len(failing))
	for _, category := range failing {
		rec, ok := recommendations[category]
		if !ok {
			rec = defaultRecommendation
		}
		recs = append(recs, fmt.Sprintf("%s: %s", category, rec))
	}

	blockers := agg.Blockers
	if blockers == nil {
		blockers = []string{}
	}

	return &GateReport{
		Timestamp:    meta.GeneratedAt,
		RunID:        meta.RunID,
		Version:      version.Version,
		TargetURL:    meta.TargetURL,
		DurationMs:   meta.DurationMs,
		QualityGates: agg.Gates,
		Summary: ReportSummary{
			OverallScore:      agg.OverallScore,
			Coverage:          agg.Coverage,
			TotalTests:        agg.TotalChecks,
			TotalPassed:       agg.PassedChecks,
			TotalFailed:       agg.TotalChecks - agg.PassedChecks,
			DeploymentBlocked: agg.DeploymentBlocked,
		},
		Issues: IssueCounts{
			Critical: agg.IssuesBySeverity[domain.SeverityCritical],
			High:     agg.IssuesBySeverity[domain.SeverityHigh],
			Medium:   agg.IssuesBySeverity[domain.SeverityMedium],
			Low:      agg.IssuesBySeverity[domain.SeverityLow],
		},
		Failures: failures,
		ProductionReadiness: ProductionReadiness{
			Status:          agg.Status(),
			Blockers:        blockers,
			Recommendations: recs,
		},
	}
}

// ReportWriterImpl implements the domain.ReportWriter interface
type ReportWriterImpl struct {
	meta ReportMeta
}

// NewReportWriter creates a report writer for one run
func NewReportWriter(meta ReportMeta) *ReportWriterImpl {
	return &ReportWriterImpl{meta: meta}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Write renders the aggregate and category results in the given format
func (w *ReportWriterImpl) Write(agg *domain.AggregateResult, results []domain.CategoryResult, format domain.OutputFormat, writer io.Writer) error {
	report := BuildReport(agg, results, w.meta)

	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report)
	case domain.OutputFormatYAML:
		return w.writeYAML(report, writer)
	case domain.OutputFormatText:
		return w.writeText(report, writer)
	case domain.OutputFormatMarkdown:
		return w.WriteMarkdown(report, writer)
	case domain.OutputFormatHTML:
		return w.WriteHTML(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// writeYAML writes the report as YAML
func (w *ReportWriterImpl) writeYAML(report *GateReport, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	return encoder.Encode(report)
}

// writeText writes the report as a plain-text narrative summary
func (w *ReportWriterImpl) writeText(report *GateReport, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Quality Gate Report ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", report.Timestamp)
	fmt.Fprintf(writer, "Version: %s\n", report.Version)
	if report.TargetURL != "" {
		fmt.Fprintf(writer, "Target: %s\n", report.TargetURL)
	}
	fmt.Fprintf(writer, "\n")

	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Overall score: %d/100\n", report.Summary.OverallScore)
	fmt.Fprintf(writer, "  Coverage: %d%% (%d/%d checks passed)\n",
		report.Summary.Coverage, report.Summary.TotalPassed, report.Summary.TotalTests)
	fmt.Fprintf(writer, "  Deployment: %s\n", report.ProductionReadiness.Status)
	fmt.Fprintf(writer, "\n")

	fmt.Fprintf(writer, "Quality Gates:\n")
	for _, category := range sortedGateNames(report.QualityGates) {
		gate := report.QualityGates[category]
		verdict := "PASS"
		if !gate.Passed {
			verdict = "FAIL"
		}
		blocking := ""
		if gate.Blocking {
			blocking = " [blocking]"
		}
		if !gate.Weighted {
			fmt.Fprintf(writer, "  %s: %d (no gate configured)\n", category, gate.Score)
			continue
		}
		fmt.Fprintf(writer, "  %s: %d (min %d) %s%s\n",
			category, gate.Score, gate.MinimumScore, verdict, blocking)
	}
	fmt.Fprintf(writer, "\n")

	fmt.Fprintf(writer, "Issues:\n")
	fmt.Fprintf(writer, "  Critical: %d\n", report.Issues.Critical)
	fmt.Fprintf(writer, "  High: %d\n", report.Issues.High)
	fmt.Fprintf(writer, "  Medium: %d\n", report.Issues.Medium)
	fmt.Fprintf(writer, "  Low: %d\n", report.Issues.Low)

	if len(report.Failures) > 0 {
		fmt.Fprintf(writer, "\nFailures:\n")
		for _, f := range report.Failures {
			fmt.Fprintf(writer, "  [%s] %s: %s\n", f.Severity, f.Category, f.Description)
		}
	}

	if len(report.ProductionReadiness.Blockers) > 0 {
		fmt.Fprintf(writer, "\nBlockers:\n")
		for _, b := range report.ProductionReadiness.Blockers {
			fmt.Fprintf(writer, "  - %s\n", b)
		}
	}

	if len(report.ProductionReadiness.Recommendations) > 0 {
		fmt.Fprintf(writer, "\nRecommendations:\n")
		for _, r := range report.ProductionReadiness.Recommendations {
			fmt.Fprintf(writer, "  - %s\n", r)
		}
	}

	return nil
}

// sortedGateNames returns gate category names in sorted order so text output
// is deterministic
func sortedGateNames(gates map[string]domain.GateStatus) []string {
	names := make([]string, 0, len(gates))
	for name := range gates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
