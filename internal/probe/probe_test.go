package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/webqual/webgate/domain"
	"github.com/webqual/webgate/internal/config"
)

func probesConfig(targetURL string) *config.ProbesConfig {
	return &config.ProbesConfig{
		TargetURL:      targetURL,
		TimeoutSeconds: 5,
		Performance: config.PerformanceBudget{
			MaxResponseMillis: 5000,
			MaxBodyKB:         64,
		},
	}
}

func TestAvailable(t *testing.T) {
	names := Available()
	if len(names) != 2 {
		t.Fatalf("Expected 2 registered probes, got %v", names)
	}
	// Sorted order
	if names[0] != "performance" || names[1] != "security" {
		t.Errorf("Expected sorted probe names, got %v", names)
	}
}

func TestBuild(t *testing.T) {
	probes, err := Build([]string{"security", "performance"}, probesConfig("https://example.com"))
	if err != nil {
		t.Fatalf("Failed to build probes: %v", err)
	}
	if len(probes) != 2 {
		t.Fatalf("Expected 2 probes, got %d", len(probes))
	}
	if probes[0].Name() != "security" || probes[1].Name() != "performance" {
		t.Errorf("Probes built out of order: %s, %s", probes[0].Name(), probes[1].Name())
	}
}

func TestBuild_UnknownProbe(t *testing.T) {
	_, err := Build([]string{"seo"}, probesConfig("https://example.com"))
	if err == nil {
		t.Fatal("Expected error for unknown probe name")
	}
	if !strings.Contains(err.Error(), "seo") {
		t.Errorf("Error should name the unknown probe: %v", err)
	}
}

func TestSecurityProbe_AllHeadersPresent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", "default-src 'self'")
		h.Set("Strict-Transport-Security", "max-age=63072000")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=()")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewSecurityProbe(probesConfig(server.URL))
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}

	if result.Category != domain.CategorySecurity {
		t.Errorf("Expected security category, got %s", result.Category)
	}
	if result.TotalChecks != 7 {
		t.Errorf("Expected 7 checks, got %d", result.TotalChecks)
	}
	// All headers pass; the plain-HTTP test server fails only the HTTPS check
	if result.PassedChecks != 6 {
		t.Errorf("Expected 6 passed checks, got %d", result.PassedChecks)
	}
	if len(result.Failures) != 1 || result.Failures[0].Severity != domain.SeverityCritical {
		t.Errorf("Expected single critical HTTPS failure, got %+v", result.Failures)
	}
	if err := result.Validate(); err != nil {
		t.Errorf("Probe produced invalid result: %v", err)
	}
}

func TestSecurityProbe_MissingHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewSecurityProbe(probesConfig(server.URL))
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}

	if result.PassedChecks != 0 {
		t.Errorf("Expected no passed checks, got %d", result.PassedChecks)
	}
	if result.Score != 0 {
		t.Errorf("Expected score 0, got %d", result.Score)
	}

	var foundCSP bool
	for _, f := range result.Failures {
		if strings.Contains(f.Description, "Content-Security-Policy") {
			foundCSP = true
			if f.Severity != domain.SeverityHigh {
				t.Errorf("CSP failure should be HIGH, got %s", f.Severity)
			}
		}
	}
	if !foundCSP {
		t.Error("Expected a failure naming the missing CSP header")
	}
}

func TestSecurityProbe_HTTPSCheck(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := probesConfig(server.URL)
	p := NewSecurityProbe(cfg)
	p.client.SetTLSClientConfig(server.Client().Transport.(*http.Transport).TLSClientConfig)

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}

	// Only the HTTPS check passes
	if result.PassedChecks != 1 {
		t.Errorf("Expected 1 passed check over HTTPS, got %d", result.PassedChecks)
	}
	for _, f := range result.Failures {
		if f.Severity == domain.SeverityCritical {
			t.Errorf("Unexpected critical failure over HTTPS: %+v", f)
		}
	}
}

func TestSecurityProbe_NoTargetURL(t *testing.T) {
	p := NewSecurityProbe(probesConfig(""))
	if _, err := p.Run(context.Background()); err == nil {
		t.Error("Expected error without a target URL")
	}
}

func TestSecurityProbe_UnreachableTarget(t *testing.T) {
	p := NewSecurityProbe(probesConfig("http://127.0.0.1:1"))
	if _, err := p.Run(context.Background()); err == nil {
		t.Error("Expected error for unreachable target")
	}
}

func TestPerformanceProbe_WithinBudget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	p := NewPerformanceProbe(probesConfig(server.URL))
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}

	if result.Category != domain.CategoryPerformance {
		t.Errorf("Expected performance category, got %s", result.Category)
	}
	if result.TotalChecks != 3 || result.PassedChecks != 3 {
		t.Errorf("Expected all 3 checks to pass, got %d/%d", result.PassedChecks, result.TotalChecks)
	}
	if result.Score != 100 {
		t.Errorf("Expected score 100, got %d", result.Score)
	}
}

func TestPerformanceProbe_OverweightPage(t *testing.T) {
	body := strings.Repeat("x", 128*1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	p := NewPerformanceProbe(probesConfig(server.URL))
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}

	if result.PassedChecks != 2 {
		t.Errorf("Expected the page weight check to fail, got %d/3 passed", result.PassedChecks)
	}

	var found bool
	for _, f := range result.Failures {
		if strings.Contains(f.Description, "budget is 64KB") {
			found = true
			if f.Severity != domain.SeverityMedium {
				t.Errorf("Page weight failure should be MEDIUM, got %s", f.Severity)
			}
		}
	}
	if !found {
		t.Errorf("Expected a page weight failure, got %+v", result.Failures)
	}
}

func TestPerformanceProbe_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := NewPerformanceProbe(probesConfig(server.URL))
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Non-200 responses are a failed check, not a probe error: %v", err)
	}

	var found bool
	for _, f := range result.Failures {
		if strings.Contains(f.Description, "503") {
			found = true
			if f.Severity != domain.SeverityHigh {
				t.Errorf("Status failure should be HIGH, got %s", f.Severity)
			}
		}
	}
	if !found {
		t.Errorf("Expected a status failure, got %+v", result.Failures)
	}
}

func TestScoreFromChecks(t *testing.T) {
	tests := []struct {
		passed, total, expected int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
		{6, 7, 86},
	}

	for _, tt := range tests {
		if got := scoreFromChecks(tt.passed, tt.total); got != tt.expected {
			t.Errorf("scoreFromChecks(%d, %d): expected %d, got %d", tt.passed, tt.total, tt.expected, got)
		}
	}
}
