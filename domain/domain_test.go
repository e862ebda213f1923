package domain

import (
	"errors"
	"strings"
	"testing"
)

// Error tests

func TestDomainError_Error(t *testing.T) {
	// Without cause
	err := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
	}
	expected := "[TEST_ERROR] Test message"
	if err.Error() != expected {
		t.Errorf("Expected '%s', got '%s'", expected, err.Error())
	}

	// With cause
	cause := errors.New("underlying error")
	errWithCause := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
		Cause:   cause,
	}
	expectedWithCause := "[TEST_ERROR] Test message: underlying error"
	if errWithCause.Error() != expectedWithCause {
		t.Errorf("Expected '%s', got '%s'", expectedWithCause, errWithCause.Error())
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
		Cause:   cause,
	}

	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	errNoCause := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
	}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("invalid config", nil)

	domainErr, ok := err.(DomainError)
	if !ok {
		t.Fatal("Should return DomainError type")
	}
	if domainErr.Code != ErrCodeConfigError {
		t.Errorf("Expected code '%s', got '%s'", ErrCodeConfigError, domainErr.Code)
	}
}

func TestNewProbeError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewProbeError("security", cause)

	domainErr := err.(DomainError)
	if domainErr.Code != ErrCodeProbeError {
		t.Errorf("Expected code '%s', got '%s'", ErrCodeProbeError, domainErr.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the cause")
	}
}

// Severity tests

func TestSeverity_Rank(t *testing.T) {
	ordered := []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Errorf("Expected %s to rank above %s", ordered[i], ordered[i-1])
		}
	}

	if Severity("BOGUS").Rank() != 0 {
		t.Error("Unknown severity should rank 0")
	}
}

func TestDefaultSeverityForScore(t *testing.T) {
	tests := []struct {
		score    int
		expected Severity
	}{
		{0, SeverityCritical},
		{49, SeverityCritical},
		{50, SeverityHigh},
		{69, SeverityHigh},
		{70, SeverityMedium},
		{84, SeverityMedium},
		{85, SeverityLow},
		{100, SeverityLow},
	}

	for _, tt := range tests {
		if got := DefaultSeverityForScore(tt.score); got != tt.expected {
			t.Errorf("Score %d: expected %s, got %s", tt.score, tt.expected, got)
		}
	}
}

// CategoryResult tests

func TestCategoryResult_Validate(t *testing.T) {
	valid := CategoryResult{
		Category:     CategorySecurity,
		Score:        80,
		TotalChecks:  10,
		PassedChecks: 8,
		Failures: []Failure{
			{Description: "missing CSP header", Severity: SeverityHigh},
			{Description: "weak referrer policy"},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Valid result should pass validation: %v", err)
	}

	tests := []struct {
		name   string
		result CategoryResult
	}{
		{"empty category", CategoryResult{Score: 50, TotalChecks: 1, PassedChecks: 1}},
		{"score too high", CategoryResult{Category: "x", Score: 101, TotalChecks: 1, PassedChecks: 1}},
		{"negative score", CategoryResult{Category: "x", Score: -1, TotalChecks: 1, PassedChecks: 1}},
		{"passed exceeds total", CategoryResult{Category: "x", Score: 50, TotalChecks: 1, PassedChecks: 2}},
		{"negative checks", CategoryResult{Category: "x", Score: 50, TotalChecks: -1, PassedChecks: 0}},
		{"unknown severity", CategoryResult{
			Category: "x", Score: 50, TotalChecks: 1, PassedChecks: 0,
			Failures: []Failure{{Description: "oops", Severity: "FATAL"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			var domainErr DomainError
			if !errors.As(err, &domainErr) || domainErr.Code != ErrCodeInvalidInput {
				t.Errorf("Expected INVALID_INPUT error, got %v", err)
			}
		})
	}
}

func TestNewFailedCategoryResult(t *testing.T) {
	r := NewFailedCategoryResult(CategoryForms, "probe timed out")

	if r.Category != CategoryForms {
		t.Errorf("Expected category %q, got %q", CategoryForms, r.Category)
	}
	if r.Score != 0 || r.TotalChecks != 0 || r.PassedChecks != 0 {
		t.Error("Sentinel must carry score 0 and no checks")
	}
	if len(r.Failures) != 1 {
		t.Fatalf("Expected one synthetic failure, got %d", len(r.Failures))
	}
	if r.Failures[0].Severity != SeverityCritical {
		t.Errorf("Synthetic failure must be CRITICAL, got %s", r.Failures[0].Severity)
	}
	if !strings.Contains(r.Failures[0].Description, "probe timed out") {
		t.Errorf("Failure should describe the execution error: %s", r.Failures[0].Description)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Sentinel must be a valid category result: %v", err)
	}
}

// GatePolicyStore tests

func TestNewGatePolicyStore(t *testing.T) {
	policies := []GatePolicy{
		{Category: CategorySecurity, MinimumScore: 75, Weight: 30, Blocking: true},
		{Category: CategoryForms, MinimumScore: 85, Weight: 25, Blocking: true},
	}
	readiness := ReadinessPolicy{MinimumOverallScore: 80, MinimumCoverage: 80, MaxHighIssues: 2}

	store, err := NewGatePolicyStore(policies, readiness)
	if err != nil {
		t.Fatalf("Failed to build store: %v", err)
	}

	p, ok := store.PolicyFor(CategorySecurity)
	if !ok {
		t.Fatal("Expected policy for security")
	}
	if p.MinimumScore != 75 || p.Weight != 30 || !p.Blocking {
		t.Errorf("Unexpected policy: %+v", p)
	}

	if _, ok := store.PolicyFor("unknown"); ok {
		t.Error("Unknown category should have no policy")
	}

	if store.Readiness() != readiness {
		t.Error("Readiness policy should round-trip")
	}

	categories := store.Categories()
	if len(categories) != 2 || categories[0] != CategoryForms || categories[1] != CategorySecurity {
		t.Errorf("Expected sorted categories [forms security], got %v", categories)
	}
}

func TestNewGatePolicyStore_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		policies []GatePolicy
	}{
		{"empty", nil},
		{"no category", []GatePolicy{{MinimumScore: 50, Weight: 10}}},
		{"zero weight", []GatePolicy{{Category: "x", MinimumScore: 50}}},
		{"negative weight", []GatePolicy{{Category: "x", MinimumScore: 50, Weight: -1}}},
		{"score out of range", []GatePolicy{{Category: "x", MinimumScore: 101, Weight: 10}}},
		{"duplicate category", []GatePolicy{
			{Category: "x", MinimumScore: 50, Weight: 10},
			{Category: "x", MinimumScore: 60, Weight: 10},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGatePolicyStore(tt.policies, ReadinessPolicy{})
			if err == nil {
				t.Fatal("Expected configuration error")
			}
			var domainErr DomainError
			if !errors.As(err, &domainErr) || domainErr.Code != ErrCodeConfigError {
				t.Errorf("Expected CONFIG_ERROR, got %v", err)
			}
		})
	}
}

func TestGatePolicyStore_Immutable(t *testing.T) {
	policies := []GatePolicy{
		{Category: CategorySecurity, MinimumScore: 75, Weight: 30, Blocking: true},
	}
	store, err := NewGatePolicyStore(policies, ReadinessPolicy{})
	if err != nil {
		t.Fatalf("Failed to build store: %v", err)
	}

	// Mutating the input slice must not affect the store
	policies[0].MinimumScore = 1

	p, _ := store.PolicyFor(CategorySecurity)
	if p.MinimumScore != 75 {
		t.Error("Store must copy policies at construction")
	}
}

func TestAggregateResult_Status(t *testing.T) {
	blocked := AggregateResult{DeploymentBlocked: true}
	if blocked.Status() != ReadinessNotReady {
		t.Error("Blocked result should be NOT_READY")
	}

	open := AggregateResult{DeploymentBlocked: false}
	if open.Status() != ReadinessReady {
		t.Error("Unblocked result should be READY")
	}
}
