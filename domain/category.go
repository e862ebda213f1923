package domain

import "fmt"

// Severity represents the severity of a single failed check
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Well-known category names produced by the bundled probes and the
// external browser-automation suites
const (
	CategorySecurity      = "security"
	CategoryForms         = "forms"
	CategoryAccessibility = "accessibility"
	CategoryPerformance   = "performance"
)

// Rank returns the ordering weight of a severity, higher is worse.
// Unknown severities rank below LOW.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether the severity is one of the known levels
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// DefaultSeverityForScore maps a category score to the severity bucket used
// for failures that carry no explicit severity. The bands mirror how the
// original suites classified failures by the category's overall score rather
// than per failure.
func DefaultSeverityForScore(score int) Severity {
	switch {
	case score < 50:
		return SeverityCritical
	case score < 70:
		return SeverityHigh
	case score < 85:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Failure represents a single failed check within a category.
// An empty Severity means unclassified; the aggregator buckets it by the
// category's score band.
type Failure struct {
	Description string   `json:"description" yaml:"description"`
	Severity    Severity `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// CategoryResult is the output of one test category. It is produced once per
// run by a category's own check logic and is immutable thereafter.
type CategoryResult struct {
	Category     string    `json:"category" yaml:"category"`
	Score        int       `json:"score" yaml:"score"`
	TotalChecks  int       `json:"total_checks" yaml:"total_checks"`
	PassedChecks int       `json:"passed_checks" yaml:"passed_checks"`
	Failures     []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Validate checks the structural invariants of a category result. It is
// applied at the boundary where external collaborators hand off results.
func (r CategoryResult) Validate() error {
	if r.Category == "" {
		return NewInvalidInputError("category result has no category name", nil)
	}
	if r.Score < 0 || r.Score > 100 {
		return NewInvalidInputError(
			fmt.Sprintf("category %q score %d out of range 0-100", r.Category, r.Score), nil)
	}
	if r.TotalChecks < 0 || r.PassedChecks < 0 {
		return NewInvalidInputError(
			fmt.Sprintf("category %q has negative check counts", r.Category), nil)
	}
	if r.PassedChecks > r.TotalChecks {
		return NewInvalidInputError(
			fmt.Sprintf("category %q passed %d of %d checks", r.Category, r.PassedChecks, r.TotalChecks), nil)
	}
	for _, f := range r.Failures {
		if f.Severity != "" && !f.Severity.IsValid() {
			return NewInvalidInputError(
				fmt.Sprintf("category %q failure has unknown severity %q", r.Category, f.Severity), nil)
		}
	}
	return nil
}

// NewFailedCategoryResult returns the fail-closed sentinel used when a
// category cannot produce a result: score 0, no checks, and one synthetic
// CRITICAL failure describing the execution error. Aggregating it always
// blocks deployment.
func NewFailedCategoryResult(category, reason string) CategoryResult {
	return CategoryResult{
		Category:     category,
		Score:        0,
		TotalChecks:  0,
		PassedChecks: 0,
		Failures: []Failure{
			{
				Description: fmt.Sprintf("category %q did not produce a result: %s", category, reason),
				Severity:    SeverityCritical,
			},
		},
	}
}
