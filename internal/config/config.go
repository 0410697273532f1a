// Package config defines the compiler's configuration: solver budgets
// and diagnostic-collection limits, loadable from a YAML document.
//
// Grounded on sunholo-data-ailang/internal/eval_harness/spec.go's
// LoadSpec: yaml-tagged struct + yaml.Unmarshal + post-unmarshal
// validation, the same shape this package uses for Config.
package config

import (
	"fmt"
	"os"

	"github.com/axonlang/clank/internal/refine"

	"gopkg.in/yaml.v3"
)

// SolverConfig bounds the refinement solver's work per obligation (spec
// §7's "simple outer budget... guards against pathological inputs").
type SolverConfig struct {
	// MaxFactSteps caps the fact-chain reasoning loop in refine.Solve.
	// Exceeding it yields Unknown with reason "budget exhausted".
	MaxFactSteps int `yaml:"max_fact_steps"`

	// MaxCounterexampleVars is loaded and validated (it must be positive)
	// but no pass reads it: counterexamples are not capped by it.
	MaxCounterexampleVars int `yaml:"max_counterexample_vars"`
}

// DiagConfig bounds the diagnostic collector (spec §3's Collector).
type DiagConfig struct {
	// MaxDiagnostics caps how many diagnostics one compilation collects
	// before further Emit calls are dropped. <=0 means unlimited.
	MaxDiagnostics int `yaml:"max_diagnostics"`
}

// Config is the compiler's full configuration surface.
type Config struct {
	Solver SolverConfig `yaml:"solver"`
	Diag   DiagConfig   `yaml:"diag"`
}

// Default returns the spec's built-in defaults: a 1000-step fact-chain
// budget (refine.DefaultMaxFactSteps), MaxCounterexampleVars 4, and no
// cap on diagnostic count.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			MaxFactSteps:          refine.DefaultMaxFactSteps,
			MaxCounterexampleVars: 4,
		},
		Diag: DiagConfig{
			MaxDiagnostics: 0,
		},
	}
}

// Load reads a YAML document from path and overlays it onto Default(),
// so a partial file only needs to name the fields it overrides.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that would silently misbehave rather
// than fail loudly (mirrors eval_harness.LoadSpec's required-field checks).
func (c Config) Validate() error {
	if c.Solver.MaxFactSteps <= 0 {
		return fmt.Errorf("config: solver.max_fact_steps must be positive, got %d", c.Solver.MaxFactSteps)
	}
	if c.Solver.MaxCounterexampleVars <= 0 {
		return fmt.Errorf("config: solver.max_counterexample_vars must be positive, got %d", c.Solver.MaxCounterexampleVars)
	}
	if c.Diag.MaxDiagnostics < 0 {
		return fmt.Errorf("config: diag.max_diagnostics must be >= 0, got %d", c.Diag.MaxDiagnostics)
	}
	return nil
}
