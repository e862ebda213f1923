// Package probe contains the built-in HTTP category probes. Probes are
// deliberately thin: they fetch the deployed site and apply threshold
// arithmetic, producing the same CategoryResult shape as the external
// browser-automation suites.
package probe

import (
	"fmt"
	"sort"

	"github.com/webqual/webgate/domain"
	"github.com/webqual/webgate/internal/config"
)

// Factory builds a probe from the probe configuration
type Factory func(cfg *config.ProbesConfig) domain.Probe

var registry = map[string]Factory{
	"security": func(cfg *config.ProbesConfig) domain.Probe {
		return NewSecurityProbe(cfg)
	},
	"performance": func(cfg *config.ProbesConfig) domain.Probe {
		return NewPerformanceProbe(cfg)
	},
}

// Available returns the registered probe names in sorted order
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named probes. Unknown names are an error so typos in
// --select fail fast instead of silently skipping a category.
func Build(names []string, cfg *config.ProbesConfig) ([]domain.Probe, error) {
	probes := make([]domain.Probe, 0, len(names))
	for _, name := range names {
		factory, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown probe %q (available: %v)", name, Available())
		}
		probes = append(probes, factory(cfg))
	}
	return probes, nil
}

// scoreFromChecks converts pass counts into a 0-100 score
func scoreFromChecks(passed, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(passed)*100/float64(total) + 0.5)
}
