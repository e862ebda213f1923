package probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/webqual/webgate/domain"
	"github.com/webqual/webgate/internal/config"
	"gopkg.in/resty.v1"
)

// headerCheck describes one expected security response header
type headerCheck struct {
	Header   string
	Severity domain.Severity
	Advice   string
}

// securityHeaderChecks are the response headers the probe expects on a
// production deployment
var securityHeaderChecks = []headerCheck{
	{"Content-Security-Policy", domain.SeverityHigh, "define a Content-Security-Policy to restrict script and resource origins"},
	{"Strict-Transport-Security", domain.SeverityHigh, "enable HSTS so browsers refuse downgraded connections"},
	{"X-Frame-Options", domain.SeverityMedium, "set X-Frame-Options to DENY or SAMEORIGIN to prevent clickjacking"},
	{"X-Content-Type-Options", domain.SeverityMedium, "set X-Content-Type-Options: nosniff"},
	{"Referrer-Policy", domain.SeverityLow, "set a Referrer-Policy to limit referrer leakage"},
	{"Permissions-Policy", domain.SeverityLow, "set a Permissions-Policy to disable unused browser features"},
}

// SecurityProbe checks the security response headers of the deployed site
type SecurityProbe struct {
	targetURL string
	client    *resty.Client
}

// NewSecurityProbe creates a security headers probe
func NewSecurityProbe(cfg *config.ProbesConfig) *SecurityProbe {
	return &SecurityProbe{
		targetURL: cfg.TargetURL,
		client:    newClient(cfg),
	}
}

// Name returns the probe's registry name
func (p *SecurityProbe) Name() string { return "security" }

// Category returns the category the probe reports under
func (p *SecurityProbe) Category() string { return domain.CategorySecurity }

// Run fetches the target URL and scores its security headers. One check per
// expected header plus one for serving over HTTPS.
func (p *SecurityProbe) Run(ctx context.Context) (domain.CategoryResult, error) {
	if p.targetURL == "" {
		return domain.CategoryResult{}, fmt.Errorf("no target URL configured")
	}

	resp, err := p.client.R().SetContext(ctx).Get(p.targetURL)
	if err != nil {
		return domain.CategoryResult{}, fmt.Errorf("failed to fetch %s: %w", p.targetURL, err)
	}

	totalChecks := len(securityHeaderChecks) + 1
	passed := 0
	var failures []domain.Failure

	if strings.HasPrefix(strings.ToLower(p.targetURL), "https://") {
		passed++
	} else {
		failures = append(failures, domain.Failure{
			Description: "site is not served over HTTPS",
			Severity:    domain.SeverityCritical,
		})
	}

	headers := resp.Header()
	for _, check := range securityHeaderChecks {
		if headerPresent(headers, check.Header) {
			passed++
			continue
		}
		failures = append(failures, domain.Failure{
			Description: fmt.Sprintf("missing %s header: %s", check.Header, check.Advice),
			Severity:    check.Severity,
		})
	}

	return domain.CategoryResult{
		Category:     domain.CategorySecurity,
		Score:        scoreFromChecks(passed, totalChecks),
		TotalChecks:  totalChecks,
		PassedChecks: passed,
		Failures:     failures,
	}, nil
}

// headerPresent reports whether a header is set to a non-empty value
func headerPresent(headers http.Header, name string) bool {
	return strings.TrimSpace(headers.Get(name)) != ""
}

// newClient builds the shared resty client for probes
func newClient(cfg *config.ProbesConfig) *resty.Client {
	client := resty.New()
	if cfg.TimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "webgate"
	}
	client.SetHeader("User-Agent", userAgent)
	return client
}
