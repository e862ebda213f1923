package probe

import (
	"context"
	"fmt"
	"net/http"

	"github.com/webqual/webgate/domain"
	"github.com/webqual/webgate/internal/config"
	"gopkg.in/resty.v1"
)

// PerformanceProbe measures response time and page weight against the
// configured budgets. It is threshold arithmetic over a single timed fetch,
// not a real performance pipeline.
type PerformanceProbe struct {
	targetURL string
	budget    config.PerformanceBudget
	client    *resty.Client
}

// NewPerformanceProbe creates a performance budget probe
func NewPerformanceProbe(cfg *config.ProbesConfig) *PerformanceProbe {
	return &PerformanceProbe{
		targetURL: cfg.TargetURL,
		budget:    cfg.Performance,
		client:    newClient(cfg),
	}
}

// Name returns the probe's registry name
func (p *PerformanceProbe) Name() string { return "performance" }

// Category returns the category the probe reports under
func (p *PerformanceProbe) Category() string { return domain.CategoryPerformance }

// Run fetches the target URL once and checks status, response time and
// body size against the budget
func (p *PerformanceProbe) Run(ctx context.Context) (domain.CategoryResult, error) {
	if p.targetURL == "" {
		return domain.CategoryResult{}, fmt.Errorf("no target URL configured")
	}

	resp, err := p.client.R().SetContext(ctx).Get(p.targetURL)
	if err != nil {
		return domain.CategoryResult{}, fmt.Errorf("failed to fetch %s: %w", p.targetURL, err)
	}

	const totalChecks = 3
	passed := 0
	var failures []domain.Failure

	if resp.StatusCode() == http.StatusOK {
		passed++
	} else {
		failures = append(failures, domain.Failure{
			Description: fmt.Sprintf("expected status 200, got %d", resp.StatusCode()),
			Severity:    domain.SeverityHigh,
		})
	}

	elapsed := resp.Time().Milliseconds()
	if p.budget.MaxResponseMillis <= 0 || elapsed <= p.budget.MaxResponseMillis {
		passed++
	} else {
		failures = append(failures, domain.Failure{
			Description: fmt.Sprintf("response took %dms, budget is %dms", elapsed, p.budget.MaxResponseMillis),
			Severity:    domain.SeverityMedium,
		})
	}

	bodyKB := int64(len(resp.Body())) / 1024
	if p.budget.MaxBodyKB <= 0 || bodyKB <= p.budget.MaxBodyKB {
		passed++
	} else {
		failures = append(failures, domain.Failure{
			Description: fmt.Sprintf("page weighs %dKB, budget is %dKB", bodyKB, p.budget.MaxBodyKB),
			Severity:    domain.SeverityMedium,
		})
	}

	return domain.CategoryResult{
		Category:     domain.CategoryPerformance,
		Score:        scoreFromChecks(passed, totalChecks),
		TotalChecks:  totalChecks,
		PassedChecks: passed,
		Failures:     failures,
	}, nil
}
