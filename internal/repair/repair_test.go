package repair

import (
	"testing"

	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
)

func programWith(decls ...ast.Decl) *ast.Program {
	prog := &ast.Program{Files: []*ast.File{{Path: "test.ax"}}, Decls: decls}
	ast.AssignIDs(prog)
	return prog
}

// Scenario 1 from spec §8: E2013 on a reassigned immutable `let x = 1`
// should produce exactly one "Make %q mutable" repair targeting the let.
func TestImmutableAssignRepair(t *testing.T) {
	let := &ast.LetStmt{Pattern: &ast.Ident{Name: "x"}, Init: &ast.Literal{LKind: ast.IntLit, IntValue: "1"}}
	assign := &ast.AssignStmt{Target: &ast.Ident{Name: "x"}, Value: &ast.Literal{LKind: ast.IntLit, IntValue: "2"}}
	fn := &ast.FuncDecl{
		Name:       "main",
		ReturnType: &ast.TypeName{Name: "Unit"},
		Body:       &ast.Block{Stmts: []ast.Stmt{let, assign}},
	}
	prog := programWith(fn)
	g := NewGenerator(prog)

	d := &diag.Diagnostic{
		ID:            1,
		Severity:      diag.SevError,
		Code:          diag.E2013,
		PrimaryNodeID: assign.ID(),
		Structured:    map[string]any{"name": "x"},
		Related:       []diag.Related{{Message: "declared here", Location: let.Span()}},
	}
	candidates := g.Generate([]*diag.Diagnostic{d}, nil)
	if len(candidates) != 1 {
		t.Fatalf("expected one repair candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.Title != `Make "x" mutable` {
		t.Errorf("title = %q", c.Title)
	}
	if c.Safety != BehaviorPreserving {
		t.Errorf("safety = %q, want behavior_preserving", c.Safety)
	}
	if c.Confidence != diag.ConfidenceHigh {
		t.Errorf("confidence = %q, want high", c.Confidence)
	}
	if len(c.Edits) != 1 {
		t.Fatalf("expected one edit, got %d", len(c.Edits))
	}
	rn, ok := c.Edits[0].(ReplaceNode)
	if !ok {
		t.Fatalf("expected a ReplaceNode edit, got %T", c.Edits[0])
	}
	if rn.NodeID != let.ID() {
		t.Errorf("edit targets %v, want the let statement %v", rn.NodeID, let.ID())
	}
	if c.ExpectedDelta.DiagnosticsResolved[0] != d.ID {
		t.Errorf("expected_delta does not reference the diagnostic it resolves")
	}
}

// Scenario 2 from spec §8: E4001 on a function missing the IO effect
// should produce a widen_effect repair naming that function.
func TestWidenEffectRepair(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "pure_fn",
		ReturnType: &ast.TypeName{Name: "Int"},
		Body:       &ast.Block{},
	}
	prog := programWith(fn)
	g := NewGenerator(prog)

	d := &diag.Diagnostic{
		ID:            1,
		Severity:      diag.SevError,
		Code:          diag.E4001,
		PrimaryNodeID: fn.ID(),
		Structured:    map[string]any{"effect": "IO", "function": "pure_fn"},
	}
	candidates := g.Generate([]*diag.Diagnostic{d}, nil)
	if len(candidates) != 1 {
		t.Fatalf("expected one repair candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.Title != `Add IO effect to "pure_fn"` {
		t.Errorf("title = %q", c.Title)
	}
	we, ok := c.Edits[0].(WidenEffect)
	if !ok {
		t.Fatalf("expected a WidenEffect edit, got %T", c.Edits[0])
	}
	if we.FnID != fn.ID() || len(we.AddEffects) != 1 || we.AddEffects[0] != "IO" {
		t.Errorf("unexpected widen_effect edit: %+v", we)
	}
}

// Scenario 5 from spec §8: E2015 non-exhaustive match produces a single
// wildcard-arm repair, likely_preserving (it changes runtime behavior on
// the unmatched cases only by making them panic explicitly).
func TestNonExhaustiveRepair(t *testing.T) {
	match := &ast.Match{Scrutinee: &ast.Ident{Name: "s"}}
	fn := &ast.FuncDecl{Name: "describe", ReturnType: &ast.TypeName{Name: "Str"}, Body: match}
	prog := programWith(fn)
	g := NewGenerator(prog)

	d := &diag.Diagnostic{
		ID:            1,
		Severity:      diag.SevError,
		Code:          diag.E2015,
		PrimaryNodeID: match.ID(),
	}
	candidates := g.Generate([]*diag.Diagnostic{d}, nil)
	if len(candidates) != 1 {
		t.Fatalf("expected one repair candidate, got %d", len(candidates))
	}
	if candidates[0].Safety != LikelyPreserving {
		t.Errorf("safety = %q, want likely_preserving", candidates[0].Safety)
	}
	if _, ok := candidates[0].Edits[0].(ReplaceNode); !ok {
		t.Errorf("expected a ReplaceNode edit, got %T", candidates[0].Edits[0])
	}
}

// Scenario 6 from spec §8: E1001 with similar_names ["console_log"]
// produces one rename_symbol repair, high confidence (it's the sole,
// first-ranked suggestion).
func TestRenameSymbolRepair(t *testing.T) {
	call := &ast.Call{Callee: &ast.Ident{Name: "consol_log"}}
	fn := &ast.FuncDecl{
		Name:       "main",
		ReturnType: &ast.TypeName{Name: "Unit"},
		Body:       &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: call}}},
	}
	prog := programWith(fn)
	g := NewGenerator(prog)

	d := &diag.Diagnostic{
		ID:            1,
		Severity:      diag.SevError,
		Code:          diag.E1001,
		Message:       "unresolved name: consol_log",
		PrimaryNodeID: call.Callee.ID(),
		Structured:    map[string]any{"similar_names": []string{"console_log"}},
	}
	candidates := g.Generate([]*diag.Diagnostic{d}, nil)
	if len(candidates) != 1 {
		t.Fatalf("expected one repair candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.Confidence != diag.ConfidenceHigh {
		t.Errorf("confidence = %q, want high (sole suggestion)", c.Confidence)
	}
	rs, ok := c.Edits[0].(RenameSymbol)
	if !ok {
		t.Fatalf("expected a RenameSymbol edit, got %T", c.Edits[0])
	}
	if rs.OldName != "consol_log" || rs.NewName != "console_log" {
		t.Errorf("unexpected rename: %+v", rs)
	}
}

// An obligation with a "guard" hint should produce a guard repair that
// wraps the obligation's node and discharges the obligation on apply.
func TestObligationGuardRepair(t *testing.T) {
	prog := programWith()
	g := NewGenerator(prog)

	o := &diag.Obligation{
		ID:            1,
		Kind:          diag.ObligationRefinement,
		Goal:          "n > 0",
		PrimaryNodeID: "42",
		Hints: []diag.Hint{
			{Strategy: "guard", Template: "if n <= 0 { panic(...) }", Confidence: diag.ConfidenceMedium},
			{Strategy: "info", Description: "n is a function parameter"},
		},
	}
	candidates := g.Generate(nil, []*diag.Obligation{o})
	if len(candidates) != 1 {
		t.Fatalf("expected one repair (info hints produce none), got %d", len(candidates))
	}
	c := candidates[0]
	if c.Kind != KindBoundaryValidation {
		t.Errorf("kind = %q, want boundary_validation", c.Kind)
	}
	if c.ExpectedDelta.ObligationsDischarged[0] != o.ID {
		t.Errorf("expected_delta does not reference the obligation it discharges")
	}
	w, ok := c.Edits[0].(Wrap)
	if !ok {
		t.Fatalf("expected a Wrap edit, got %T", c.Edits[0])
	}
	if w.NodeID != o.PrimaryNodeID {
		t.Errorf("wrap targets %v, want %v", w.NodeID, o.PrimaryNodeID)
	}
}

// Generate assigns repair ids in diagnostic order then obligation order,
// starting at zero and strictly increasing (spec §5 ordering guarantee).
func TestGenerateAssignsStableIncreasingIDs(t *testing.T) {
	prog := programWith()
	g := NewGenerator(prog)

	d1 := &diag.Diagnostic{ID: 1, Code: diag.E1001, Message: "unresolved name: a", Structured: map[string]any{"similar_names": []string{"b", "c"}}}
	o1 := &diag.Obligation{ID: 1, Hints: []diag.Hint{{Strategy: "assert", Template: "assert(n > 0)"}}}
	candidates := g.Generate([]*diag.Diagnostic{d1}, []*diag.Obligation{o1})
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates (2 renames + 1 assert), got %d", len(candidates))
	}
	for i, c := range candidates {
		if c.ID != i {
			t.Errorf("candidates[%d].ID = %d, want %d", i, c.ID, i)
		}
	}
	if _, ok := candidates[2].Edits[0].(InsertBefore); !ok {
		t.Errorf("expected the obligation's assert repair to be an InsertBefore, got %T", candidates[2].Edits[0])
	}
}
