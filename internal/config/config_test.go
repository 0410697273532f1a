package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/axonlang/clank/internal/refine"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() failed Validate: %v", err)
	}
	if cfg.Solver.MaxFactSteps != refine.DefaultMaxFactSteps {
		t.Errorf("MaxFactSteps = %d, want %d", cfg.Solver.MaxFactSteps, refine.DefaultMaxFactSteps)
	}
	if cfg.Diag.MaxDiagnostics != 0 {
		t.Errorf("MaxDiagnostics = %d, want 0 (unlimited)", cfg.Diag.MaxDiagnostics)
	}
}

func TestLoadOverlaysPartialDocumentOntoDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clank.yaml")
	if err := os.WriteFile(path, []byte("diag:\n  max_diagnostics: 50\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Diag.MaxDiagnostics != 50 {
		t.Errorf("MaxDiagnostics = %d, want 50", cfg.Diag.MaxDiagnostics)
	}
	if cfg.Solver.MaxFactSteps != refine.DefaultMaxFactSteps {
		t.Errorf("MaxFactSteps = %d, want the default %d to survive an unrelated override", cfg.Solver.MaxFactSteps, refine.DefaultMaxFactSteps)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadRejectsInvalidOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clank.yaml")
	if err := os.WriteFile(path, []byte("solver:\n  max_fact_steps: 0\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected Load to reject max_fact_steps: 0")
	}
}

func TestValidateRejectsNegativeDiagnosticsCap(t *testing.T) {
	cfg := Default()
	cfg.Diag.MaxDiagnostics = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject a negative MaxDiagnostics")
	}
}

func TestValidateRejectsNonPositiveCounterexampleVars(t *testing.T) {
	cfg := Default()
	cfg.Solver.MaxCounterexampleVars = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject MaxCounterexampleVars <= 0")
	}
}
