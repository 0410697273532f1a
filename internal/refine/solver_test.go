package refine

import (
	"testing"

	"github.com/axonlang/clank/internal/types"
)

func gt(name string, c int64) *types.PredCompare {
	return &types.PredCompare{Op: types.OpGt, Left: &types.TermVar{Name: name}, Right: types.NewTermInt(c)}
}
func le(name string, c int64) *types.PredCompare {
	return &types.PredCompare{Op: types.OpLe, Left: &types.TermVar{Name: name}, Right: types.NewTermInt(c)}
}

func TestSolveArithmeticRefinementProof(t *testing.T) {
	// n: Int{n > 0}; let m = n + 1; requires_positive(m): Int{x > 0}.
	ctx := NewRoot()
	ctx.AddFact(gt("n", 0), "parameter n")
	ctx.SetDefinition("m", &types.TermBinop{Op: types.BinAdd, Left: &types.TermVar{Name: "n"}, Right: types.NewTermInt(1)})

	goal := gt("m", 0)
	res := Solve(goal, ctx)
	if res.Status != Discharged {
		t.Fatalf("expected discharged, got %v (reason=%q)", res.Status, res.Reason)
	}
}

func TestSolveRefutation(t *testing.T) {
	ctx := NewRoot()
	ctx.AddFact(gt("x", 10), "test")

	res := Solve(le("x", 10), ctx)
	if res.Status != Refuted {
		t.Fatalf("expected refuted, got %v", res.Status)
	}
	if res.Counterexample["x"] != "11" {
		t.Errorf("counterexample[x] = %q, want 11", res.Counterexample["x"])
	}
	if res.Counterexample["_explanation"] != "contradicts 'x > 10'" {
		t.Errorf("_explanation = %q", res.Counterexample["_explanation"])
	}
	if res.Counterexample["_contradicts"] != "x > 10 (from: test)" {
		t.Errorf("_contradicts = %q", res.Counterexample["_contradicts"])
	}
}

func TestSolveUnknownWithoutFacts(t *testing.T) {
	ctx := NewRoot()
	res := Solve(gt("z", 0), ctx)
	if res.Status != Unknown {
		t.Fatalf("expected unknown, got %v", res.Status)
	}
}

func TestSolveStaticallyFalse(t *testing.T) {
	ctx := NewRoot()
	goal := &types.PredCompare{Op: types.OpGt, Left: types.NewTermInt(1), Right: types.NewTermInt(2)}
	res := Solve(goal, ctx)
	if res.Status != Refuted {
		t.Fatalf("expected refuted (statically false), got %v", res.Status)
	}
	if res.Counterexample["_explanation"] != "predicate is statically false" {
		t.Errorf("_explanation = %q", res.Counterexample["_explanation"])
	}
}

func TestSolveDivisionByZeroNotEvaluated(t *testing.T) {
	// x == (5 / 0) should not discharge or panic; the term stays folded
	// as an unevaluated binop, so the compare can't constant-resolve.
	ctx := NewRoot()
	goal := &types.PredCompare{
		Op:   types.OpEq,
		Left: &types.TermVar{Name: "x"},
		Right: &types.TermBinop{
			Op:    types.BinDiv,
			Left:  types.NewTermInt(5),
			Right: types.NewTermInt(0),
		},
	}
	res := Solve(goal, ctx)
	if res.Status == Refuted {
		t.Fatalf("division by zero must not be treated as statically false, got refuted: %+v", res)
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	p := &types.PredNot{P: &types.PredAnd{
		P: gt("x", 0),
		Q: le("y", 0),
	}}
	once := simplify(p)
	twice := simplify(once)
	if !types.PredicatesEqual(once, twice) {
		t.Errorf("simplify not idempotent: once=%v twice=%v", once, twice)
	}
}

func TestDeMorganEquivalence(t *testing.T) {
	p := gt("x", 0)
	q := le("y", 0)
	notAnd := &types.PredNot{P: &types.PredAnd{P: p, Q: q}}
	orNots := &types.PredOr{P: &types.PredNot{P: p}, Q: &types.PredNot{P: q}}

	ctx := NewRoot()
	ctx.AddFact(le("x", 0), "fact")

	r1 := Solve(notAnd, ctx)
	r2 := Solve(orNots, ctx)
	if r1.Status != r2.Status {
		t.Errorf("De Morgan mismatch: not(and) = %v, or(nots) = %v", r1.Status, r2.Status)
	}
}

func TestWithNegatedFactStoresDenegatedComparison(t *testing.T) {
	parent := NewRoot()
	child := parent.WithNegatedFact(gt("x", 0), "if-condition")
	res := Solve(le("x", 0), child)
	if res.Status != Discharged {
		t.Fatalf("expected discharged from de-negated comparison, got %v", res.Status)
	}
}

func TestChildContextNeverMutatesParent(t *testing.T) {
	parent := NewRoot()
	child := parent.Child()
	child.AddFact(gt("x", 0), "child-only")
	if len(parent.GetAllFacts()) != 0 {
		t.Error("adding a fact to a child context must not affect the parent")
	}
}

func TestCompoundAndOr(t *testing.T) {
	ctx := NewRoot()
	ctx.AddFact(gt("x", 5), "fact")
	ctx.AddFact(gt("y", 5), "fact")
	goal := &types.PredAnd{P: gt("x", 0), Q: gt("y", 0)}
	if res := Solve(goal, ctx); res.Status != Discharged {
		t.Fatalf("expected and() discharged, got %v", res.Status)
	}
	orGoal := &types.PredOr{P: gt("x", 100), Q: gt("y", 0)}
	if res := Solve(orGoal, ctx); res.Status != Discharged {
		t.Fatalf("expected or() discharged via second disjunct, got %v", res.Status)
	}
}
