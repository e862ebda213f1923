package config

import "encoding/json"

// SiteProfile represents the kind of site being gated
type SiteProfile string

const (
	SiteProfileGeneric   SiteProfile = "generic"
	SiteProfileMarketing SiteProfile = "marketing"
	SiteProfileCommerce  SiteProfile = "commerce"
	SiteProfileDashboard SiteProfile = "dashboard"
)

// Strictness represents the gate strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// profileGates returns the gate weights and blocking flags for a site profile.
// Minimum scores come from the strictness level.
func profileGates(profile SiteProfile) []GateConfig {
	switch profile {
	case SiteProfileMarketing:
		return []GateConfig{
			{Category: "security", Weight: 25, Blocking: true},
			{Category: "forms", Weight: 20, Blocking: false},
			{Category: "accessibility", Weight: 30, Blocking: true},
			{Category: "performance", Weight: 25, Blocking: false},
		}
	case SiteProfileCommerce:
		return []GateConfig{
			{Category: "security", Weight: 35, Blocking: true},
			{Category: "forms", Weight: 30, Blocking: true},
			{Category: "accessibility", Weight: 20, Blocking: false},
			{Category: "performance", Weight: 15, Blocking: false},
		}
	case SiteProfileDashboard:
		return []GateConfig{
			{Category: "security", Weight: 35, Blocking: true},
			{Category: "forms", Weight: 15, Blocking: false},
			{Category: "accessibility", Weight: 20, Blocking: false},
			{Category: "performance", Weight: 30, Blocking: true},
		}
	default:
		return []GateConfig{
			{Category: "security", Weight: 30, Blocking: true},
			{Category: "forms", Weight: 25, Blocking: true},
			{Category: "accessibility", Weight: 25, Blocking: false},
			{Category: "performance", Weight: 20, Blocking: false},
		}
	}
}

// strictnessPreset holds the thresholds for one strictness level
type strictnessPreset struct {
	MinimumScore        int
	MinimumOverallScore int
	MinimumCoverage     int
	MaxHighIssues       int
}

// strictnessPresets maps strictness levels to threshold values
func strictnessPresets() map[Strictness]strictnessPreset {
	return map[Strictness]strictnessPreset{
		StrictnessRelaxed:  {MinimumScore: 60, MinimumOverallScore: 70, MinimumCoverage: 70, MaxHighIssues: 5},
		StrictnessStandard: {MinimumScore: 75, MinimumOverallScore: 80, MinimumCoverage: 80, MaxHighIssues: 2},
		StrictnessStrict:   {MinimumScore: 85, MinimumOverallScore: 90, MinimumCoverage: 95, MaxHighIssues: 0},
	}
}

// BuildConfig assembles a config for the given profile and strictness
func BuildConfig(profile SiteProfile, strictness Strictness) *Config {
	preset, ok := strictnessPresets()[strictness]
	if !ok {
		preset = strictnessPresets()[StrictnessStandard]
	}

	cfg := DefaultConfig()
	cfg.Gates = profileGates(profile)
	for i := range cfg.Gates {
		cfg.Gates[i].MinimumScore = preset.MinimumScore
	}
	cfg.Readiness.MinimumOverallScore = preset.MinimumOverallScore
	cfg.Readiness.MinimumCoverage = preset.MinimumCoverage
	cfg.Readiness.MaxHighIssues = preset.MaxHighIssues
	return cfg
}

// GetFullConfigTemplate generates a complete config file for the given
// profile and strictness
func GetFullConfigTemplate(profile SiteProfile, strictness Strictness) string {
	return marshalTemplate(BuildConfig(profile, strictness))
}

// GetMinimalConfigTemplate generates a config file with just the gates and
// readiness policy
func GetMinimalConfigTemplate() string {
	full := DefaultConfig()
	minimal := &Config{
		Gates:     full.Gates,
		Readiness: full.Readiness,
	}
	return marshalTemplate(minimal)
}

func marshalTemplate(cfg *Config) string {
	content, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		// Config structs always marshal
		return "{}"
	}
	return string(content) + "\n"
}
