package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/webqual/webgate/domain"
	"go.uber.org/zap"
)

// AggregatorImpl implements the domain.Aggregator interface
type AggregatorImpl struct {
	log *zap.SugaredLogger
}

// NewAggregator creates a new aggregator
func NewAggregator(log *zap.SugaredLogger) *AggregatorImpl {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &AggregatorImpl{log: log}
}

// Compute combines category results into a single deployment decision.
// The computation is a deterministic single pass over the results and is
// order-independent: the same inputs always produce the same output.
func (a *AggregatorImpl) Compute(results []domain.CategoryResult, store *domain.GatePolicyStore) *domain.AggregateResult {
	agg := &domain.AggregateResult{
		IssuesBySeverity: map[domain.Severity]int{
			domain.SeverityLow:      0,
			domain.SeverityMedium:   0,
			domain.SeverityHigh:     0,
			domain.SeverityCritical: 0,
		},
		Gates: make(map[string]domain.GateStatus, len(results)),
	}

	// No evidence at all: never silently approve
	if len(results) == 0 {
		agg.DeploymentBlocked = true
		agg.Blockers = append(agg.Blockers, "no category results supplied")
		return agg
	}

	var (
		weightedScoreSum float64
		totalWeight      float64
		gateBlockers     []string
	)

	for _, r := range results {
		status := domain.GateStatus{
			Score:  r.Score,
			Passed: true,
		}

		policy, ok := store.PolicyFor(r.Category)
		if ok {
			weightedScoreSum += float64(r.Score) * policy.Weight
			totalWeight += policy.Weight

			status.MinimumScore = policy.MinimumScore
			status.Blocking = policy.Blocking
			status.Weighted = true
			status.Passed = r.Score >= policy.MinimumScore

			if policy.Blocking && !status.Passed {
				agg.DeploymentBlocked = true
				gateBlockers = append(gateBlockers, fmt.Sprintf(
					"%s gate failed: score %d below minimum %d (blocking)",
					r.Category, r.Score, policy.MinimumScore))
			}
		} else {
			// Unweighted and non-blocking, but its checks still count
			// toward coverage
			a.log.Warnf("no gate policy for category %q, excluded from weighted score", r.Category)
		}

		agg.TotalChecks += r.TotalChecks
		agg.PassedChecks += r.PassedChecks

		for _, f := range r.Failures {
			severity := f.Severity
			if severity == "" {
				severity = domain.DefaultSeverityForScore(r.Score)
			}
			agg.IssuesBySeverity[severity]++
		}

		agg.Gates[r.Category] = status
	}

	if totalWeight > 0 {
		agg.OverallScore = roundHalfUp(weightedScoreSum / totalWeight)
	}
	if agg.TotalChecks > 0 {
		agg.Coverage = roundHalfUp(100 * float64(agg.PassedChecks) / float64(agg.TotalChecks))
	}

	// Failed blocking gates come first, in category order, so the blocker
	// list is stable regardless of input ordering
	sort.Strings(gateBlockers)
	agg.Blockers = append(agg.Blockers, gateBlockers...)

	a.applyReadinessPolicy(agg, store.Readiness())

	return agg
}

// applyReadinessPolicy enforces the global production-readiness thresholds
// on top of the per-category gates
func (a *AggregatorImpl) applyReadinessPolicy(agg *domain.AggregateResult, policy domain.ReadinessPolicy) {
	if agg.OverallScore < policy.MinimumOverallScore {
		agg.DeploymentBlocked = true
		agg.Blockers = append(agg.Blockers, fmt.Sprintf(
			"overall score %d below required %d", agg.OverallScore, policy.MinimumOverallScore))
	}
	if agg.Coverage < policy.MinimumCoverage {
		agg.DeploymentBlocked = true
		agg.Blockers = append(agg.Blockers, fmt.Sprintf(
			"coverage %d%% below required %d%%", agg.Coverage, policy.MinimumCoverage))
	}
	if critical := agg.IssuesBySeverity[domain.SeverityCritical]; critical > policy.MaxCriticalIssues {
		agg.DeploymentBlocked = true
		agg.Blockers = append(agg.Blockers, fmt.Sprintf(
			"%d critical issues exceed limit of %d", critical, policy.MaxCriticalIssues))
	}
	if high := agg.IssuesBySeverity[domain.SeverityHigh]; high > policy.MaxHighIssues {
		agg.DeploymentBlocked = true
		agg.Blockers = append(agg.Blockers, fmt.Sprintf(
			"%d high severity issues exceed limit of %d", high, policy.MaxHighIssues))
	}
}

// roundHalfUp rounds to the nearest integer with ties going up
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
