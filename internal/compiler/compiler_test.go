package compiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/axonlang/clank/internal/aggregate"
	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/config"
	"github.com/axonlang/clank/internal/diag"
)

func program(decls ...ast.Decl) *ast.Program {
	prog := &ast.Program{Files: []*ast.File{{Path: "test.ax"}}, Decls: decls}
	ast.AssignIDs(prog)
	return prog
}

func intLit(v string) *ast.Literal {
	return &ast.Literal{LKind: ast.IntLit, IntValue: v}
}

// A program with no diagnostics and no obligations compiles to success.
func TestCompileProgramSuccess(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "main",
		ReturnType: &ast.TypeName{Name: "Int"},
		Body:       intLit("42"),
	}
	prog := program(fn)

	c := New()
	result, err := c.CompileProgram(prog)
	if err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}
	if result.Status != StatusSuccess {
		t.Errorf("Status = %q, want success; diagnostics=%+v", result.Status, result.Diagnostics)
	}
	if result.CompilerVersion != Version {
		t.Errorf("CompilerVersion = %q, want %q", result.CompilerVersion, Version)
	}
	if result.Stats.SourceFiles != 1 {
		t.Errorf("Stats.SourceFiles = %d, want 1", result.Stats.SourceFiles)
	}
}

// Scenario 1 from spec §8: reassigning an immutable let raises E2013,
// which puts the whole compile into StatusError.
func TestCompileProgramErrorStatus(t *testing.T) {
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

	c := New()
	result, err := c.CompileProgram(prog)
	if err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}
	if result.Status != StatusError {
		t.Errorf("Status = %q, want error", result.Status)
	}
	if len(result.Diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
}

// An obligation the solver can't discharge (no supporting fact in scope)
// should leave the compile StatusIncomplete rather than StatusError: no
// diagnostic was raised, but a proof goal remains open.
func TestCompileProgramIncompleteStatus(t *testing.T) {
	positiveInt := &ast.TypeRefinedExpr{
		BaseType: &ast.TypeName{Name: "Int"},
		VarName:  "x",
		Pred:     &ast.Binary{Op: ">", Left: &ast.Ident{Name: "x"}, Right: intLit("0")},
	}
	requiresPositive := &ast.FuncDecl{
		Name:       "requires_positive",
		Params:     []*ast.Param{{Name: "x", Type: positiveInt}},
		ReturnType: &ast.TypeName{Name: "Unit"},
		Body:       &ast.Block{},
	}
	useIt := &ast.FuncDecl{
		Name:       "use_it",
		Params:     []*ast.Param{{Name: "n", Type: &ast.TypeName{Name: "Int"}}},
		ReturnType: &ast.TypeName{Name: "Unit"},
		Body: &ast.Block{
			Stmts: []ast.Stmt{
				&ast.ExprStmt{Expr: &ast.Call{
					Callee: &ast.Ident{Name: "requires_positive"},
					Args:   []ast.Expr{&ast.Ident{Name: "n"}},
				}},
			},
		},
	}
	prog := program(requiresPositive, useIt)

	c := New()
	result, err := c.CompileProgram(prog)
	if err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}
	if result.Status != StatusIncomplete {
		t.Errorf("Status = %q, want incomplete; diagnostics=%+v obligations=%+v", result.Status, result.Diagnostics, result.Obligations)
	}
}

// WithConfig should actually reach the checker: a MaxDiagnostics of 1
// must cap diagnostic collection even when more than one error exists.
func TestCompileProgramRespectsDiagConfig(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "main",
		ReturnType: &ast.TypeName{Name: "Unit"},
		Body: &ast.Block{
			Stmts: []ast.Stmt{
				&ast.ExprStmt{Expr: &ast.Ident{Name: "undefined_one"}},
				&ast.ExprStmt{Expr: &ast.Ident{Name: "undefined_two"}},
			},
		},
	}
	prog := program(fn)

	cfg := config.Default()
	cfg.Diag.MaxDiagnostics = 1
	c := New(WithConfig(cfg))
	result, err := c.CompileProgram(prog)
	if err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}
	if len(result.Diagnostics) != 1 {
		t.Errorf("len(Diagnostics) = %d, want 1 (capped by config)", len(result.Diagnostics))
	}
}

// CompileJSON decodes a spec §6 JSON AST document and runs it through the
// same pipeline as CompileProgram.
func TestCompileJSON(t *testing.T) {
	doc := []byte(`{
		"decls": [
			{
				"kind": "FuncDecl",
				"name": "main",
				"returnType": {"kind": "TypeName", "name": "Int"},
				"body": {"kind": "Literal", "litKind": "int", "value": "1"}
			}
		]
	}`)

	c := New()
	result, err := c.CompileJSON(doc)
	if err != nil {
		t.Fatalf("CompileJSON: %v", err)
	}
	if result.Status != StatusSuccess {
		t.Errorf("Status = %q, want success; diagnostics=%+v", result.Status, result.Diagnostics)
	}
}

// A fragment node with no Reparser configured must not abort the
// compile with a bare error: it comes back as an error-status Result
// carrying a single E0009 diagnostic (spec §6's input-boundary contract).
func TestCompileJSONFragmentWithoutReparser(t *testing.T) {
	doc := []byte(`{
		"decls": [
			{
				"kind": "FuncDecl",
				"name": "main",
				"returnType": {"kind": "TypeName", "name": "Int"},
				"body": {"source": "1 + 1", "file": "frag.ax"}
			}
		]
	}`)

	c := New()
	result, err := c.CompileJSON(doc)
	if err != nil {
		t.Fatalf("CompileJSON: %v", err)
	}
	if result.Status != StatusError {
		t.Errorf("Status = %q, want error", result.Status)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != diag.E0009 {
		t.Errorf("Diagnostics = %+v, want a single E0009", result.Diagnostics)
	}
}

// CompileJSON rejects malformed JSON as a plain error, not a Result.
func TestCompileJSONInvalidDocument(t *testing.T) {
	c := New()
	result, err := c.CompileJSON([]byte("not json"))
	if err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
	if result != nil {
		t.Errorf("result = %+v, want nil", result)
	}
}

// Stats should reflect exactly the program's shape, independent of the
// wall-clock CompileTimeMs field (excluded via cmpopts since it's the one
// genuinely nondeterministic field aggregate.BuildStats produces).
func TestCompileProgramStatsShape(t *testing.T) {
	fn := &ast.FuncDecl{Name: "main", ReturnType: &ast.TypeName{Name: "Int"}, Body: intLit("1")}
	prog := program(fn)

	c := New()
	result, err := c.CompileProgram(prog)
	if err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}

	want := aggregate.Stats{SourceFiles: 1, ObligationsTotal: 0, ObligationsDischarged: 0}
	if diff := cmp.Diff(want, result.Stats, cmpopts.IgnoreFields(aggregate.Stats{}, "CompileTimeMs")); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
}

func TestInternalErrorMessage(t *testing.T) {
	e := &InternalError{Phase: "compile", Cause: "boom"}
	want := `clank: internal error in compile: boom`
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}
