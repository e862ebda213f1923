// Package testutil provides helper functions for testing webgate components
package testutil

import (
	"testing"

	"github.com/webqual/webgate/domain"
)

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected an error, got nil")
	}
}

// NewPolicyStore builds a policy store for tests, failing the test on error
func NewPolicyStore(t *testing.T, policies []domain.GatePolicy, readiness domain.ReadinessPolicy) *domain.GatePolicyStore {
	t.Helper()
	store, err := domain.NewGatePolicyStore(policies, readiness)
	if err != nil {
		t.Fatalf("Failed to build policy store: %v", err)
	}
	return store
}

// PassingResult returns a category result with the given score and all
// checks passing
func PassingResult(category string, score, checks int) domain.CategoryResult {
	return domain.CategoryResult{
		Category:     category,
		Score:        score,
		TotalChecks:  checks,
		PassedChecks: checks,
	}
}
