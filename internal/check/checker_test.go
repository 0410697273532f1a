package check

import (
	"testing"

	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
)

// program wraps decls in a Program with stable node ids assigned, the way
// a real pipeline run (parser -> AssignIDs -> checker) would.
func program(decls ...ast.Decl) *ast.Program {
	prog := &ast.Program{Files: []*ast.File{{Path: "test.ax"}}, Decls: decls}
	ast.AssignIDs(prog)
	return prog
}

func intLit(v string) *ast.Literal {
	return &ast.Literal{LKind: ast.IntLit, IntValue: v}
}

// Scenario 1 from spec §8: `fn main() -> Unit { let x = 1; x = 2 }`
// should raise an E2013 on the reassignment, naming x and pointing back at the let.
func TestImmutableAssignRaisesE2013(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "main",
		ReturnType: &ast.TypeName{Name: "Unit"},
		Body: &ast.Block{
			Stmts: []ast.Stmt{
				&ast.LetStmt{Pattern: &ast.Ident{Name: "x"}, Init: intLit("1")},
				&ast.AssignStmt{Target: &ast.Ident{Name: "x"}, Value: intLit("2")},
			},
		},
	}
	prog := program(fn)
	c := NewChecker(0)
	c.CheckProgram(prog)

	var found *diag.Diagnostic
	for _, d := range c.Diags.Diagnostics() {
		if d.Code == diag.E2013 {
			found = d
		}
	}
	if found == nil {
		t.Fatalf("expected an E2013 diagnostic, got %+v", c.Diags.Diagnostics())
	}
	if found.Structured["name"] != "x" {
		t.Errorf("structured[name] = %v, want \"x\"", found.Structured["name"])
	}
	if len(found.Related) != 1 {
		t.Fatalf("expected one related location (the let), got %d", len(found.Related))
	}
}

// Scenario 2 from spec §8: `fn pure_fn() -> Int { println("side effect"); 42 }`
// should raise E4001 because pure_fn never declares the IO effect println needs.
func TestEffectNotDeclaredRaisesE4001(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "pure_fn",
		ReturnType: &ast.TypeName{Name: "Int"},
		Body: &ast.Block{
			Stmts: []ast.Stmt{
				&ast.ExprStmt{Expr: &ast.Call{
					Callee: &ast.Ident{Name: "println"},
					Args:   []ast.Expr{&ast.Literal{LKind: ast.StringLit, StringVal: "side effect"}},
				}},
			},
			Tail: intLit("42"),
		},
	}
	prog := program(fn)
	c := NewChecker(0)
	c.CheckProgram(prog)

	var found *diag.Diagnostic
	for _, d := range c.Diags.Diagnostics() {
		if d.Code == diag.E4001 {
			found = d
		}
	}
	if found == nil {
		t.Fatalf("expected an E4001 diagnostic, got %+v", c.Diags.Diagnostics())
	}
	if found.Structured["effect"] != "IO" || found.Structured["function"] != "pure_fn" {
		t.Errorf("unexpected structured payload: %+v", found.Structured)
	}
}

// declaring the IO effect on the same function must silence E4001.
func TestEffectDeclaredNoDiagnostic(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "impure_fn",
		ReturnType: &ast.TypeName{Name: "Int"},
		Effects:    []string{"IO"},
		Body: &ast.Block{
			Stmts: []ast.Stmt{
				&ast.ExprStmt{Expr: &ast.Call{
					Callee: &ast.Ident{Name: "println"},
					Args:   []ast.Expr{&ast.Literal{LKind: ast.StringLit, StringVal: "ok"}},
				}},
			},
			Tail: intLit("42"),
		},
	}
	prog := program(fn)
	c := NewChecker(0)
	c.CheckProgram(prog)
	for _, d := range c.Diags.Diagnostics() {
		if d.Code == diag.E4001 {
			t.Fatalf("unexpected E4001 once IO is declared: %+v", d)
		}
	}
}

// Scenario 5 from spec §8: Status = Active | Pending | Closed, match covers
// only Active and Closed. Expected E2015 with a missing_patterns entry
// naming Pending.
func TestNonExhaustiveMatchRaisesE2015(t *testing.T) {
	status := &ast.SumDecl{
		Name: "Status",
		Variants: []ast.SumVariant{
			{Name: "Active"}, {Name: "Pending"}, {Name: "Closed"},
		},
	}
	fn := &ast.FuncDecl{
		Name:       "describe",
		Params:     []*ast.Param{{Name: "s", Type: &ast.TypeName{Name: "Status"}}},
		ReturnType: &ast.TypeName{Name: "Str"},
		Body: &ast.Match{
			Scrutinee: &ast.Ident{Name: "s"},
			Arms: []ast.MatchArm{
				{Pattern: &ast.VariantPattern{Variant: "Active"}, Body: &ast.Literal{LKind: ast.StringLit, StringVal: "a"}},
				{Pattern: &ast.VariantPattern{Variant: "Closed"}, Body: &ast.Literal{LKind: ast.StringLit, StringVal: "c"}},
			},
		},
	}
	prog := program(status, fn)
	c := NewChecker(0)
	c.CheckProgram(prog)

	var found *diag.Diagnostic
	for _, d := range c.Diags.Diagnostics() {
		if d.Code == diag.E2015 {
			found = d
		}
	}
	if found == nil {
		t.Fatalf("expected an E2015 diagnostic, got %+v", c.Diags.Diagnostics())
	}
	missing, ok := found.Structured["missing_patterns"].([]map[string]any)
	if !ok || len(missing) != 1 {
		t.Fatalf("expected one missing pattern, got %+v", found.Structured["missing_patterns"])
	}
	m := missing[0]
	if m["variantName"] != "Pending" || m["typeName"] != "Status" || m["hasPayload"] != false {
		t.Errorf("unexpected missing pattern descriptor: %+v", m)
	}
}

// Scenario 6 from spec §8: calling an undefined name close to one that is
// defined should raise E1001 with a similar_names suggestion.
func TestUnresolvedNameSuggestsSimilarName(t *testing.T) {
	consoleLog := &ast.FuncDecl{
		Name:       "console_log",
		Params:     []*ast.Param{{Name: "msg", Type: &ast.TypeName{Name: "Str"}}},
		ReturnType: &ast.TypeName{Name: "Unit"},
		Body:       &ast.Block{},
	}
	caller := &ast.FuncDecl{
		Name:       "main",
		ReturnType: &ast.TypeName{Name: "Unit"},
		Body: &ast.Block{
			Stmts: []ast.Stmt{
				&ast.ExprStmt{Expr: &ast.Call{
					Callee: &ast.Ident{Name: "consol_log"},
					Args:   []ast.Expr{&ast.Literal{LKind: ast.StringLit, StringVal: "hi"}},
				}},
			},
		},
	}
	prog := program(consoleLog, caller)
	c := NewChecker(0)
	c.CheckProgram(prog)

	var found *diag.Diagnostic
	for _, d := range c.Diags.Diagnostics() {
		if d.Code == diag.E1001 {
			found = d
		}
	}
	if found == nil {
		t.Fatalf("expected an E1001 diagnostic, got %+v", c.Diags.Diagnostics())
	}
	names, ok := found.Structured["similar_names"].([]string)
	if !ok || len(names) == 0 || names[0] != "console_log" {
		t.Errorf("expected similar_names to lead with console_log, got %+v", found.Structured["similar_names"])
	}
}

// Scenario 3 from spec §8: n: Int{n > 0}, m = n + 1, requires_positive(m)
// with parameter Int{x > 0} should discharge silently (no diagnostics, no
// undischarged obligations).
func TestRefinementDischargedViaArithmetic(t *testing.T) {
	positiveInt := func(varName string) ast.TypeExpr {
		return &ast.TypeRefinedExpr{
			BaseType: &ast.TypeName{Name: "Int"},
			VarName:  varName,
			Pred:     &ast.Binary{Op: ">", Left: &ast.Ident{Name: varName}, Right: intLit("0")},
		}
	}
	requiresPositive := &ast.FuncDecl{
		Name:       "requires_positive",
		Params:     []*ast.Param{{Name: "x", Type: positiveInt("x")}},
		ReturnType: &ast.TypeName{Name: "Unit"},
		Body:       &ast.Block{},
	}
	useIt := &ast.FuncDecl{
		Name:       "use_it",
		Params:     []*ast.Param{{Name: "n", Type: positiveInt("n")}},
		ReturnType: &ast.TypeName{Name: "Unit"},
		Body: &ast.Block{
			Stmts: []ast.Stmt{
				&ast.LetStmt{
					Pattern: &ast.Ident{Name: "m"},
					Init:    &ast.Binary{Op: "+", Left: &ast.Ident{Name: "n"}, Right: intLit("1")},
				},
				&ast.ExprStmt{Expr: &ast.Call{
					Callee: &ast.Ident{Name: "requires_positive"},
					Args:   []ast.Expr{&ast.Ident{Name: "m"}},
				}},
			},
		},
	}
	prog := program(requiresPositive, useIt)
	c := NewChecker(0)
	c.CheckProgram(prog)

	if c.Diags.HasErrors() {
		t.Fatalf("expected no diagnostics, got %+v", c.Diags.Diagnostics())
	}
	if n := c.Diags.UndischargedObligations(); n != 0 {
		t.Fatalf("expected the obligation to discharge, got %d undischarged", n)
	}
}
