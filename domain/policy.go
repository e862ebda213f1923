package domain

import "sort"

// GatePolicy is the static threshold configuration for one category
type GatePolicy struct {
	// Category matches CategoryResult.Category
	Category string `json:"category" yaml:"category"`

	// MinimumScore is the threshold below which the category is failing
	MinimumScore int `json:"minimum_score" yaml:"minimum_score"`

	// Weight is the category's share of the overall weighted score.
	// Weights conventionally sum to 100 but are not required to.
	Weight float64 `json:"weight" yaml:"weight"`

	// Blocking makes a threshold failure block deployment unconditionally,
	// regardless of the overall weighted score
	Blocking bool `json:"blocking" yaml:"blocking"`
}

// ReadinessPolicy is the global production-readiness policy applied on top
// of the per-category gates
type ReadinessPolicy struct {
	MinimumOverallScore int `json:"minimum_overall_score" yaml:"minimum_overall_score"`
	MinimumCoverage     int `json:"minimum_coverage" yaml:"minimum_coverage"`
	MaxCriticalIssues   int `json:"max_critical_issues" yaml:"max_critical_issues"`
	MaxHighIssues       int `json:"max_high_issues" yaml:"max_high_issues"`
}

// GatePolicyStore holds the immutable category-to-policy mapping and the
// global readiness policy. It is built once at load time and never mutated.
type GatePolicyStore struct {
	policies  map[string]GatePolicy
	readiness ReadinessPolicy
}

// NewGatePolicyStore builds a policy store from the configured gate policies.
// An empty policy set is a configuration error: aggregation without any gate
// would silently approve everything.
func NewGatePolicyStore(policies []GatePolicy, readiness ReadinessPolicy) (*GatePolicyStore, error) {
	if len(policies) == 0 {
		return nil, NewConfigError("no gate policies configured", nil)
	}

	byCategory := make(map[string]GatePolicy, len(policies))
	for _, p := range policies {
		if p.Category == "" {
			return nil, NewConfigError("gate policy has no category name", nil)
		}
		if p.MinimumScore < 0 || p.MinimumScore > 100 {
			return nil, NewConfigError("gate policy minimum_score must be between 0 and 100", nil)
		}
		if p.Weight <= 0 {
			return nil, NewConfigError("gate policy weight must be positive", nil)
		}
		if _, exists := byCategory[p.Category]; exists {
			return nil, NewConfigError("duplicate gate policy for category "+p.Category, nil)
		}
		byCategory[p.Category] = p
	}

	return &GatePolicyStore{
		policies:  byCategory,
		readiness: readiness,
	}, nil
}

// PolicyFor returns the gate policy for a category, if one is configured.
// A category without a policy is unweighted and non-blocking but still
// contributes its checks to coverage.
func (s *GatePolicyStore) PolicyFor(category string) (GatePolicy, bool) {
	p, ok := s.policies[category]
	return p, ok
}

// Readiness returns the global production-readiness policy
func (s *GatePolicyStore) Readiness() ReadinessPolicy {
	return s.readiness
}

// Categories returns the configured category names in sorted order
func (s *GatePolicyStore) Categories() []string {
	names := make([]string, 0, len(s.policies))
	for name := range s.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of configured gate policies
func (s *GatePolicyStore) Len() int {
	return len(s.policies)
}
