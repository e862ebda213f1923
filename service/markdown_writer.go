package service

import (
	"fmt"
	"io"
)

// WriteMarkdown writes the report as a Markdown document suitable for CI
// artifacts and pull request comments
func (w *ReportWriterImpl) WriteMarkdown(report *GateReport, writer io.Writer) error {
	fmt.Fprintf(writer, "# Quality Gate Report\n\n")
	fmt.Fprintf(writer, "Generated: %s", report.Timestamp)
	if report.TargetURL != "" {
		fmt.Fprintf(writer, " | Target: %s", report.TargetURL)
	}
	fmt.Fprintf(writer, "\n\n")

	fmt.Fprintf(writer, "## Overall Score: %d/100\n\n", report.Summary.OverallScore)
	fmt.Fprintf(writer, "**Deployment: %s** | Coverage: %d%% (%d/%d checks passed)\n\n",
		report.ProductionReadiness.Status, report.Summary.Coverage,
		report.Summary.TotalPassed, report.Summary.TotalTests)

	fmt.Fprintf(writer, "## Quality Gates\n\n")
	fmt.Fprintf(writer, "| Category | Score | Threshold | Result | Blocking |\n")
	fmt.Fprintf(writer, "|----------|-------|-----------|--------|----------|\n")
	for _, category := range sortedGateNames(report.QualityGates) {
		gate := report.QualityGates[category]
		verdict := "PASS"
		if !gate.Passed {
			verdict = "FAIL"
		}
		blocking := "no"
		if gate.Blocking {
			blocking = "yes"
		}
		threshold := fmt.Sprintf("%d", gate.MinimumScore)
		if !gate.Weighted {
			threshold = "-"
			verdict = "unweighted"
			blocking = "-"
		}
		fmt.Fprintf(writer, "| %s | %d | %s | %s | %s |\n",
			category, gate.Score, threshold, verdict, blocking)
	}
	fmt.Fprintf(writer, "\n")

	fmt.Fprintf(writer, "## Issues\n\n")
	fmt.Fprintf(writer, "- Critical: %d\n", report.Issues.Critical)
	fmt.Fprintf(writer, "- High: %d\n", report.Issues.High)
	fmt.Fprintf(writer, "- Medium: %d\n", report.Issues.Medium)
	fmt.Fprintf(writer, "- Low: %d\n\n", report.Issues.Low)

	if len(report.Failures) > 0 {
		fmt.Fprintf(writer, "## Failures\n\n")
		for _, f := range report.Failures {
			fmt.Fprintf(writer, "- **[%s]** %s: %s\n", f.Severity, f.Category, f.Description)
		}
		fmt.Fprintf(writer, "\n")
	}

	fmt.Fprintf(writer, "## Next Steps\n\n")
	if report.Summary.DeploymentBlocked {
		fmt.Fprintf(writer, "Deployment is **blocked**. Resolve the following before releasing:\n\n")
		for _, b := range report.ProductionReadiness.Blockers {
			fmt.Fprintf(writer, "- %s\n", b)
		}
		if len(report.ProductionReadiness.Recommendations) > 0 {
			fmt.Fprintf(writer, "\nRecommendations:\n\n")
			for _, r := range report.ProductionReadiness.Recommendations {
				fmt.Fprintf(writer, "- %s\n", r)
			}
		}
	} else {
		fmt.Fprintf(writer, "All quality gates passed. The deployment is cleared for release.\n")
	}

	return nil
}
