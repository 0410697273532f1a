package aggregate

import (
	"testing"

	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
	"github.com/axonlang/clank/internal/repair"
)

// BackLinkRepairs must populate RepairRefs on every diagnostic/obligation
// a repair's ExpectedDelta names, and leave the rest untouched (invariant
// I3: repair_refs reflects exactly what the generator targeted).
func TestBackLinkRepairs(t *testing.T) {
	d1 := &diag.Diagnostic{ID: 1}
	d2 := &diag.Diagnostic{ID: 2}
	o1 := &diag.Obligation{ID: 1}

	r0 := &repair.Candidate{ID: 0, ExpectedDelta: repair.ExpectedDelta{DiagnosticsResolved: []diag.ID{1}}}
	r1 := &repair.Candidate{ID: 1, ExpectedDelta: repair.ExpectedDelta{ObligationsDischarged: []int{1}}}
	r2 := &repair.Candidate{ID: 2, ExpectedDelta: repair.ExpectedDelta{DiagnosticsResolved: []diag.ID{1}}}

	BackLinkRepairs([]*diag.Diagnostic{d1, d2}, []*diag.Obligation{o1}, []*repair.Candidate{r0, r1, r2})

	if got := d1.RepairRefs; len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("d1.RepairRefs = %v, want [0 2]", got)
	}
	if d2.RepairRefs != nil {
		t.Errorf("d2.RepairRefs = %v, want nil (no repair targets it)", d2.RepairRefs)
	}
	if got := o1.RepairRefs; len(got) != 1 || got[0] != 1 {
		t.Errorf("o1.RepairRefs = %v, want [1]", got)
	}
}

func TestBuildStatsCountsDischargedObligations(t *testing.T) {
	prog := &ast.Program{Files: []*ast.File{{Path: "a.ax"}, {Path: "b.ax"}}}
	obls := []*diag.Obligation{
		{ID: 1, SolverResult: diag.SolverDischarged},
		{ID: 2, SolverResult: diag.SolverRefuted},
		{ID: 3, SolverResult: diag.SolverUnknown},
		{ID: 4, SolverResult: diag.SolverDischarged},
	}
	stats := BuildStats(prog, obls, 12)

	if stats.SourceFiles != 2 {
		t.Errorf("SourceFiles = %d, want 2", stats.SourceFiles)
	}
	if stats.ObligationsTotal != 4 {
		t.Errorf("ObligationsTotal = %d, want 4", stats.ObligationsTotal)
	}
	if stats.ObligationsDischarged != 2 {
		t.Errorf("ObligationsDischarged = %d, want 2", stats.ObligationsDischarged)
	}
	if stats.CompileTimeMs != 12 {
		t.Errorf("CompileTimeMs = %d, want 12", stats.CompileTimeMs)
	}
}

func TestStatsWithSourceAndOutputAreAdditive(t *testing.T) {
	base := Stats{SourceFiles: 1}
	got := base.WithSource(100, 250).WithOutput(80, 2048)

	if got.SourceLines != 100 || got.SourceTokens != 250 {
		t.Errorf("WithSource did not set fields: %+v", got)
	}
	if got.OutputLines != 80 || got.OutputBytes != 2048 {
		t.Errorf("WithOutput did not set fields: %+v", got)
	}
	if got.SourceFiles != 1 {
		t.Errorf("WithSource/WithOutput clobbered an unrelated field: %+v", got)
	}
	if base.SourceLines != 0 {
		t.Errorf("WithSource mutated the receiver's original value instead of returning a copy")
	}
}
