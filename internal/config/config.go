package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default global readiness thresholds
const (
	// DefaultMinimumOverallScore is the weighted score required for release
	DefaultMinimumOverallScore = 80

	// DefaultMinimumCoverage is the fraction of all checks that must pass
	DefaultMinimumCoverage = 80

	// DefaultMaxCriticalIssues tolerates no critical issues in a release
	DefaultMaxCriticalIssues = 0

	// DefaultMaxHighIssues is the number of high severity issues tolerated
	DefaultMaxHighIssues = 2
)

// Default probe settings
const (
	// DefaultProbeTimeoutSeconds bounds a single probe execution
	DefaultProbeTimeoutSeconds = 30

	// DefaultMaxResponseMillis is the performance budget for response time
	DefaultMaxResponseMillis = 2000

	// DefaultMaxBodyKB is the performance budget for page weight
	DefaultMaxBodyKB = 1024
)

// Config represents the main configuration structure
type Config struct {
	// Gates holds the per-category quality gate policies
	Gates []GateConfig `json:"gates" mapstructure:"gates" yaml:"gates"`

	// Readiness holds the global production-readiness policy
	Readiness ReadinessConfig `json:"readiness" mapstructure:"readiness" yaml:"readiness"`

	// Probes holds settings for the built-in HTTP probes
	Probes ProbesConfig `json:"probes" mapstructure:"probes" yaml:"probes"`

	// Output holds report output configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Results holds settings for loading external result documents
	Results ResultsConfig `json:"results" mapstructure:"results" yaml:"results"`
}

// GateConfig holds the quality gate policy for one category
type GateConfig struct {
	// Category is the category name the gate applies to
	Category string `json:"category" mapstructure:"category" yaml:"category"`

	// MinimumScore is the threshold below which the category fails its gate
	MinimumScore int `json:"minimum_score" mapstructure:"minimum_score" yaml:"minimum_score"`

	// Weight is the category's share of the overall weighted score
	Weight float64 `json:"weight" mapstructure:"weight" yaml:"weight"`

	// Blocking makes a gate failure block deployment unconditionally
	Blocking bool `json:"blocking" mapstructure:"blocking" yaml:"blocking"`
}

// ReadinessConfig holds the global production-readiness thresholds
type ReadinessConfig struct {
	MinimumOverallScore int `json:"minimum_overall_score" mapstructure:"minimum_overall_score" yaml:"minimum_overall_score"`
	MinimumCoverage     int `json:"minimum_coverage" mapstructure:"minimum_coverage" yaml:"minimum_coverage"`
	MaxCriticalIssues   int `json:"max_critical_issues" mapstructure:"max_critical_issues" yaml:"max_critical_issues"`
	MaxHighIssues       int `json:"max_high_issues" mapstructure:"max_high_issues" yaml:"max_high_issues"`
}

// ProbesConfig holds settings for the built-in HTTP probes
type ProbesConfig struct {
	// TargetURL is the deployed site under test
	TargetURL string `json:"target_url" mapstructure:"target_url" yaml:"target_url"`

	// TimeoutSeconds bounds a single probe execution
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`

	// UserAgent is sent with probe requests
	UserAgent string `json:"user_agent" mapstructure:"user_agent" yaml:"user_agent"`

	// Performance holds the performance budget thresholds
	Performance PerformanceBudget `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// PerformanceBudget holds the thresholds for the performance probe
type PerformanceBudget struct {
	// MaxResponseMillis is the maximum acceptable response time
	MaxResponseMillis int64 `json:"max_response_millis" mapstructure:"max_response_millis" yaml:"max_response_millis"`

	// MaxBodyKB is the maximum acceptable page weight in kilobytes
	MaxBodyKB int64 `json:"max_body_kb" mapstructure:"max_body_kb" yaml:"max_body_kb"`
}

// OutputConfig holds report output configuration
type OutputConfig struct {
	// Format specifies the stdout format: text, json, yaml, markdown, html
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// Directory is where report artifacts are written (empty = no artifacts)
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`
}

// ResultsConfig holds settings for loading external result documents
type ResultsConfig struct {
	// ExcludePatterns are gitignore-style patterns skipped while collecting
	// result files from a directory
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Gates: []GateConfig{
			{Category: "security", MinimumScore: 75, Weight: 30, Blocking: true},
			{Category: "forms", MinimumScore: 85, Weight: 25, Blocking: true},
			{Category: "accessibility", MinimumScore: 85, Weight: 25, Blocking: false},
			{Category: "performance", MinimumScore: 80, Weight: 20, Blocking: false},
		},
		Readiness: ReadinessConfig{
			MinimumOverallScore: DefaultMinimumOverallScore,
			MinimumCoverage:     DefaultMinimumCoverage,
			MaxCriticalIssues:   DefaultMaxCriticalIssues,
			MaxHighIssues:       DefaultMaxHighIssues,
		},
		Probes: ProbesConfig{
			TimeoutSeconds: DefaultProbeTimeoutSeconds,
			UserAgent:      "webgate",
			Performance: PerformanceBudget{
				MaxResponseMillis: DefaultMaxResponseMillis,
				MaxBodyKB:         DefaultMaxBodyKB,
			},
		},
		Output: OutputConfig{
			Format: "text",
		},
		Results: ResultsConfig{
			ExcludePatterns: []string{"node_modules/", "*.tmp.json"},
		},
	}
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if len(c.Gates) == 0 {
		return fmt.Errorf("at least one gate must be configured")
	}
	seen := make(map[string]bool, len(c.Gates))
	for _, g := range c.Gates {
		if g.Category == "" {
			return fmt.Errorf("gate has no category name")
		}
		if seen[g.Category] {
			return fmt.Errorf("duplicate gate for category %q", g.Category)
		}
		seen[g.Category] = true
		if g.MinimumScore < 0 || g.MinimumScore > 100 {
			return fmt.Errorf("gate %q minimum_score must be between 0 and 100, got %d", g.Category, g.MinimumScore)
		}
		if g.Weight <= 0 {
			return fmt.Errorf("gate %q weight must be positive, got %g", g.Category, g.Weight)
		}
	}

	r := c.Readiness
	if r.MinimumOverallScore < 0 || r.MinimumOverallScore > 100 {
		return fmt.Errorf("minimum_overall_score must be between 0 and 100, got %d", r.MinimumOverallScore)
	}
	if r.MinimumCoverage < 0 || r.MinimumCoverage > 100 {
		return fmt.Errorf("minimum_coverage must be between 0 and 100, got %d", r.MinimumCoverage)
	}
	if r.MaxCriticalIssues < 0 {
		return fmt.Errorf("max_critical_issues cannot be negative, got %d", r.MaxCriticalIssues)
	}
	if r.MaxHighIssues < 0 {
		return fmt.Errorf("max_high_issues cannot be negative, got %d", r.MaxHighIssues)
	}

	if c.Probes.TimeoutSeconds < 0 {
		return fmt.Errorf("probe timeout_seconds cannot be negative, got %d", c.Probes.TimeoutSeconds)
	}

	validFormats := map[string]bool{
		"": true, "text": true, "json": true, "yaml": true, "markdown": true, "html": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml, markdown, html)", c.Output.Format)
	}

	return nil
}

// LoadConfig loads configuration from the specified path, or defaults when
// the path is empty
func LoadConfig(configPath string) (*Config, error) {
	return loadConfigFromFile(configPath)
}

// LoadConfigWithTarget loads configuration with target path context: when no
// config path is given, configuration files are discovered upward from the
// target directory.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file on top of defaults
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// configFileCandidates are the recognized config file names, in order of
// preference
var configFileCandidates = []string{
	"webgate.config.json",
	".webgaterc.json",
	".webgaterc",
	"webgate.yaml",
	"webgate.yml",
	".webgate.json",
}

// searchConfigInDirectory searches for configuration files in one directory
func searchConfigInDirectory(dir string) string {
	for _, candidate := range configFileCandidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for configuration files from the target directory
// upward, then in the working directory
func findDefaultConfig(targetPath string) string {
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir); config != "" {
					return config
				}
				if parent := filepath.Dir(dir); parent == dir {
					break
				}
			}
		}
	}

	return searchConfigInDirectory(".")
}
