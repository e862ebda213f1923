package service

import (
	"time"

	"github.com/webqual/webgate/domain"
	"github.com/webqual/webgate/internal/config"
)

// ConfigurationLoaderImpl loads gate policy configuration and converts it
// into the domain policy store
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadPolicyStore loads configuration from the given path (or discovers one
// near the target) and builds the immutable policy store. A store that
// cannot be built is the single fatal error class of the whole run.
func (c *ConfigurationLoaderImpl) LoadPolicyStore(configPath, targetPath string) (*domain.GatePolicyStore, *config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(configPath, targetPath)
	if err != nil {
		return nil, nil, domain.NewConfigError("failed to load configuration file", err)
	}

	store, err := BuildPolicyStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

// BuildPolicyStore converts config gate policies into the domain store
func BuildPolicyStore(cfg *config.Config) (*domain.GatePolicyStore, error) {
	policies := make([]domain.GatePolicy, 0, len(cfg.Gates))
	for _, g := range cfg.Gates {
		policies = append(policies, domain.GatePolicy{
			Category:     g.Category,
			MinimumScore: g.MinimumScore,
			Weight:       g.Weight,
			Blocking:     g.Blocking,
		})
	}

	readiness := domain.ReadinessPolicy{
		MinimumOverallScore: cfg.Readiness.MinimumOverallScore,
		MinimumCoverage:     cfg.Readiness.MinimumCoverage,
		MaxCriticalIssues:   cfg.Readiness.MaxCriticalIssues,
		MaxHighIssues:       cfg.Readiness.MaxHighIssues,
	}

	return domain.NewGatePolicyStore(policies, readiness)
}

// ProbeTimeout returns the configured per-probe timeout
func ProbeTimeout(cfg *config.Config) time.Duration {
	if cfg.Probes.TimeoutSeconds <= 0 {
		return DefaultProbeTimeout
	}
	return time.Duration(cfg.Probes.TimeoutSeconds) * time.Second
}
