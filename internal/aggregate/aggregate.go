// Package aggregate implements the aggregator (component K): the final
// assembly step that back-links generated repairs into the diagnostics
// and obligations they resolve, and builds the summary Stats block for
// CompileResult.
//
// Grounded on sunholo-data-ailang/internal/eval_harness/metrics.go's
// "plain struct assembled from run results, no behavior beyond
// bookkeeping" shape — this package plays the equivalent summarizing
// role for one compilation that RunMetrics/MetricsLogger play for one
// benchmark run.
package aggregate

import (
	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
	"github.com/axonlang/clank/internal/repair"
)

// BackLinkRepairs is spec §4.I's "Rank & aggregation" step: for every
// repair, record its id against each diagnostic/obligation its
// ExpectedDelta claims to resolve (invariant I3). Diagnostics/
// obligations with no matching repair keep a nil RepairRefs.
func BackLinkRepairs(diags []*diag.Diagnostic, obls []*diag.Obligation, repairs []*repair.Candidate) {
	diagRefs := map[diag.ID][]int{}
	oblRefs := map[int][]int{}
	for _, r := range repairs {
		for _, id := range r.ExpectedDelta.DiagnosticsResolved {
			diagRefs[id] = append(diagRefs[id], r.ID)
		}
		for _, id := range r.ExpectedDelta.ObligationsDischarged {
			oblRefs[id] = append(oblRefs[id], r.ID)
		}
	}
	for _, d := range diags {
		if refs, ok := diagRefs[d.ID]; ok {
			d.RepairRefs = refs
		}
	}
	for _, o := range obls {
		if refs, ok := oblRefs[o.ID]; ok {
			o.RepairRefs = refs
		}
	}
}

// Stats is spec §6's CompileResult.stats block. SourceLines/
// SourceTokens/OutputLines/OutputBytes describe artifacts (the raw
// source buffer, the emitter collaborator's generated output) that live
// outside this module's scope — the checker only ever sees an already-
// parsed AST, never source text — so a caller that has those values
// (the driver wiring the parser and emitter together) sets them via
// WithSource/WithOutput; a compiler run that only exercises this
// module's own pipeline leaves them at zero.
type Stats struct {
	SourceFiles           int
	SourceLines           int
	SourceTokens          int
	OutputLines           int
	OutputBytes           int
	ObligationsTotal      int
	ObligationsDischarged int
	CompileTimeMs         int64
}

// BuildStats assembles the portion of Stats this module can compute on
// its own: file count from the Program, and obligation discharge counts
// from the collector's final obligation list. compileTimeMs is supplied
// by the caller, since wall-clock timing is a driver concern, not a
// pure-function one this package should measure itself.
func BuildStats(prog *ast.Program, obls []*diag.Obligation, compileTimeMs int64) Stats {
	discharged := 0
	for _, o := range obls {
		if o.SolverResult == diag.SolverDischarged {
			discharged++
		}
	}
	return Stats{
		SourceFiles:           len(prog.Files),
		ObligationsTotal:      len(obls),
		ObligationsDischarged: discharged,
		CompileTimeMs:         compileTimeMs,
	}
}

// WithSource fills in the source-derived fields once the caller knows
// them (e.g. by counting lines/tokens in the buffer it fed the parser).
func (s Stats) WithSource(lines, tokens int) Stats {
	s.SourceLines = lines
	s.SourceTokens = tokens
	return s
}

// WithOutput fills in the emitter-derived fields once the caller has run
// the (external) code-generation collaborator.
func (s Stats) WithOutput(lines, bytes int) Stats {
	s.OutputLines = lines
	s.OutputBytes = bytes
	return s
}
