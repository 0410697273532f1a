package refine

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/axonlang/clank/internal/types"
)

// Status is the three-way outcome of Solve.
type Status int

const (
	Discharged Status = iota
	Refuted
	Unknown
)

func (s Status) String() string {
	switch s {
	case Discharged:
		return "discharged"
	case Refuted:
		return "refuted"
	default:
		return "unknown"
	}
}

// Result is the outcome of solving one predicate against one context.
// Counterexample is definite for Refuted results and, when present, a
// labelled candidate for Unknown ones (see buildRefutedCounterexample /
// generateCandidateCounterexample).
type Result struct {
	Status         Status
	Counterexample map[string]string
	Reason         string
}

// DefaultMaxFactSteps is the iteration budget guarding the fact-chain
// reasoning in Solve against pathological inputs (spec §5).
const DefaultMaxFactSteps = 1000

// Solve proves, refutes, or gives up on pred against ctx using the
// default fact-step budget.
func Solve(pred types.Predicate, ctx *Context) Result {
	return SolveWithBudget(pred, ctx, DefaultMaxFactSteps)
}

// SolveWithBudget is Solve with an explicit fact-chain iteration cap
// (internal/config wires DefaultMaxFactSteps through from SolverConfig).
func SolveWithBudget(pred types.Predicate, ctx *Context, maxSteps int) Result {
	slv := &solver{max: maxSteps}

	substituted := substituteDefinitions(pred, ctx)
	simplified := simplify(substituted)

	if res, ok := constantResolve(substituted, simplified); ok {
		return res
	}

	if slv.prove(simplified, ctx) {
		return Result{Status: Discharged}
	}
	if slv.exceeded {
		return Result{Status: Unknown, Reason: "budget exhausted"}
	}

	if fact, ok := slv.refuteWithFact(simplified, ctx); ok {
		return Result{Status: Refuted, Counterexample: buildRefutedCounterexample(simplified, fact)}
	}
	if slv.exceeded {
		return Result{Status: Unknown, Reason: "budget exhausted"}
	}

	return Result{
		Status:         Unknown,
		Reason:         fmt.Sprintf("could not prove or refute %s from available facts", simplified.String()),
		Counterexample: generateCandidateCounterexample(simplified, ctx),
	}
}

// solver tracks the shared fact-chain step budget across one Solve call.
type solver struct {
	steps    int
	max      int
	exceeded bool
}

// tick accounts one fact examined; returns false once the budget is
// exhausted, at which point the caller must stop and Solve reports
// Unknown{"budget exhausted"}.
func (s *solver) tick() bool {
	if s.exceeded {
		return false
	}
	s.steps++
	if s.steps > s.max {
		s.exceeded = true
		return false
	}
	return true
}

// --- Step 1: definition substitution -----------------------------------

// substituteDefinitions replaces variable references with their
// recorded definitions, repeating to a fixed point (bounded — a cyclic
// definition chain is a context-construction bug, not something the
// solver needs to diagnose).
func substituteDefinitions(p types.Predicate, ctx *Context) types.Predicate {
	for i := 0; i < 32; i++ {
		next := substitutePredicateOnce(p, ctx)
		if types.PredicatesEqual(next, p) {
			return next
		}
		p = next
	}
	return p
}

func substitutePredicateOnce(p types.Predicate, ctx *Context) types.Predicate {
	switch v := p.(type) {
	case *types.PredCompare:
		return &types.PredCompare{Op: v.Op, Left: substituteTerm(v.Left, ctx), Right: substituteTerm(v.Right, ctx)}
	case *types.PredAnd:
		return &types.PredAnd{P: substitutePredicateOnce(v.P, ctx), Q: substitutePredicateOnce(v.Q, ctx)}
	case *types.PredOr:
		return &types.PredOr{P: substitutePredicateOnce(v.P, ctx), Q: substitutePredicateOnce(v.Q, ctx)}
	case *types.PredNot:
		return &types.PredNot{P: substitutePredicateOnce(v.P, ctx)}
	case *types.PredCall:
		args := make([]types.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteTerm(a, ctx)
		}
		return &types.PredCall{Name: v.Name, Args: args}
	default:
		return p
	}
}

func substituteTerm(t types.Term, ctx *Context) types.Term {
	switch v := t.(type) {
	case *types.TermVar:
		if def, ok := ctx.GetDefinition(v.Name); ok {
			return def
		}
		if val, ok := ctx.GetValue(v.Name); ok {
			return val
		}
		return v
	case *types.TermBinop:
		return &types.TermBinop{Op: v.Op, Left: substituteTerm(v.Left, ctx), Right: substituteTerm(v.Right, ctx)}
	case *types.TermCall:
		args := make([]types.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteTerm(a, ctx)
		}
		return &types.TermCall{Name: v.Name, Args: args}
	case *types.TermField:
		return &types.TermField{Base: substituteTerm(v.Base, ctx), Name: v.Name}
	default:
		return t
	}
}

// --- Step 2: simplification ---------------------------------------------

func isTrue(p types.Predicate) bool  { _, ok := p.(*types.PredTrue); return ok }
func isFalse(p types.Predicate) bool { _, ok := p.(*types.PredFalse); return ok }

// simplify evaluates constant subterms, normalizes double-negation,
// pushes negation through comparisons and via De Morgan, and
// constant-folds and/or. It is idempotent (U4): simplify(simplify(p)) ==
// simplify(p).
func simplify(p types.Predicate) types.Predicate {
	switch v := p.(type) {
	case *types.PredNot:
		inner := simplify(v.P)
		switch iv := inner.(type) {
		case *types.PredNot:
			return simplify(iv.P)
		case *types.PredTrue:
			return types.False
		case *types.PredFalse:
			return types.True
		case *types.PredCompare:
			return &types.PredCompare{Op: types.NegateOp(iv.Op), Left: iv.Left, Right: iv.Right}
		case *types.PredAnd:
			return simplify(&types.PredOr{P: &types.PredNot{P: iv.P}, Q: &types.PredNot{P: iv.Q}})
		case *types.PredOr:
			return simplify(&types.PredAnd{P: &types.PredNot{P: iv.P}, Q: &types.PredNot{P: iv.Q}})
		default:
			return &types.PredNot{P: inner}
		}
	case *types.PredAnd:
		p1, q1 := simplify(v.P), simplify(v.Q)
		if isFalse(p1) || isFalse(q1) {
			return types.False
		}
		if isTrue(p1) {
			return q1
		}
		if isTrue(q1) {
			return p1
		}
		return &types.PredAnd{P: p1, Q: q1}
	case *types.PredOr:
		p1, q1 := simplify(v.P), simplify(v.Q)
		if isTrue(p1) || isTrue(q1) {
			return types.True
		}
		if isFalse(p1) {
			return q1
		}
		if isFalse(q1) {
			return p1
		}
		return &types.PredOr{P: p1, Q: q1}
	case *types.PredCompare:
		l, r := normalizeTerm(v.Left), normalizeTerm(v.Right)
		if li, ok := l.(*types.TermInt); ok {
			if ri, ok2 := r.(*types.TermInt); ok2 {
				if compareConstInts(v.Op, li.Value, ri.Value) {
					return types.True
				}
				return types.False
			}
		}
		return &types.PredCompare{Op: v.Op, Left: l, Right: r}
	case *types.PredCall:
		args := make([]types.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = normalizeTerm(a)
		}
		return &types.PredCall{Name: v.Name, Args: args}
	default:
		return p
	}
}

// normalizeTerm folds constant arithmetic and applies the arithmetic
// normalization rewrites to a fixed point.
func normalizeTerm(t types.Term) types.Term {
	for i := 0; i < 16; i++ {
		next := normalizeTermOnce(t)
		if types.TermsEqual(next, t) {
			return next
		}
		t = next
	}
	return t
}

func normalizeTermOnce(t types.Term) types.Term {
	v, ok := t.(*types.TermBinop)
	if !ok {
		return t
	}
	l := normalizeTermOnce(v.Left)
	r := normalizeTermOnce(v.Right)

	if li, ok := l.(*types.TermInt); ok {
		if ri, ok2 := r.(*types.TermInt); ok2 {
			if folded, ok3 := foldConstInts(v.Op, li.Value, ri.Value); ok3 {
				return &types.TermInt{Value: folded}
			}
			// division/modulo by zero: leave the term unevaluated.
			return &types.TermBinop{Op: v.Op, Left: l, Right: r}
		}
	}

	// (x+a)+b -> x+(a+b); (x-a)+b -> x+(b-a); (x-a)-b -> x-(a+b).
	if rc, ok := r.(*types.TermInt); ok {
		if lb, ok2 := l.(*types.TermBinop); ok2 {
			if lc, ok3 := lb.Right.(*types.TermInt); ok3 {
				if _, isVar := lb.Left.(*types.TermVar); isVar {
					switch {
					case v.Op == types.BinAdd && lb.Op == types.BinAdd:
						return &types.TermBinop{Op: types.BinAdd, Left: lb.Left, Right: &types.TermInt{Value: new(big.Int).Add(lc.Value, rc.Value)}}
					case v.Op == types.BinAdd && lb.Op == types.BinSub:
						return &types.TermBinop{Op: types.BinAdd, Left: lb.Left, Right: &types.TermInt{Value: new(big.Int).Sub(rc.Value, lc.Value)}}
					case v.Op == types.BinSub && lb.Op == types.BinSub:
						return &types.TermBinop{Op: types.BinSub, Left: lb.Left, Right: &types.TermInt{Value: new(big.Int).Add(lc.Value, rc.Value)}}
					}
				}
			}
		}
	}
	return &types.TermBinop{Op: v.Op, Left: l, Right: r}
}

func foldConstInts(op types.BinOp, a, b *big.Int) (*big.Int, bool) {
	switch op {
	case types.BinAdd:
		return new(big.Int).Add(a, b), true
	case types.BinSub:
		return new(big.Int).Sub(a, b), true
	case types.BinMul:
		return new(big.Int).Mul(a, b), true
	case types.BinDiv:
		if b.Sign() == 0 {
			return nil, false
		}
		return new(big.Int).Quo(a, b), true
	case types.BinMod:
		if b.Sign() == 0 {
			return nil, false
		}
		return new(big.Int).Rem(a, b), true
	}
	return nil, false
}

func compareConstInts(op types.CompareOp, a, b *big.Int) bool {
	c := a.Cmp(b)
	switch op {
	case types.OpEq:
		return c == 0
	case types.OpNe:
		return c != 0
	case types.OpLt:
		return c < 0
	case types.OpLe:
		return c <= 0
	case types.OpGt:
		return c > 0
	case types.OpGe:
		return c >= 0
	}
	return false
}

// --- Step 3: constant resolution ----------------------------------------

func constantResolve(original, simplified types.Predicate) (Result, bool) {
	if isTrue(simplified) {
		return Result{Status: Discharged}, true
	}
	if isFalse(simplified) {
		ce := map[string]string{"_explanation": "predicate is statically false"}
		for _, name := range collectVarNames(original) {
			ce[name] = "?"
		}
		return Result{Status: Refuted, Counterexample: ce}, true
	}
	return Result{}, false
}

func collectVarNames(p types.Predicate) []string {
	seen := map[string]bool{}
	var walkTerm func(types.Term)
	walkTerm = func(t types.Term) {
		switch v := t.(type) {
		case *types.TermVar:
			seen[v.Name] = true
		case *types.TermBinop:
			walkTerm(v.Left)
			walkTerm(v.Right)
		case *types.TermCall:
			for _, a := range v.Args {
				walkTerm(a)
			}
		case *types.TermField:
			walkTerm(v.Base)
		}
	}
	var walk func(types.Predicate)
	walk = func(p types.Predicate) {
		switch v := p.(type) {
		case *types.PredCompare:
			walkTerm(v.Left)
			walkTerm(v.Right)
		case *types.PredAnd:
			walk(v.P)
			walk(v.Q)
		case *types.PredOr:
			walk(v.P)
			walk(v.Q)
		case *types.PredNot:
			walk(v.P)
		case *types.PredCall:
			for _, a := range v.Args {
				walkTerm(a)
			}
		}
	}
	walk(p)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// --- Steps 4/5/6: proof from facts, arithmetic reasoning, compounds -----

// linearForm recognizes a term of the shape `var`, `var + k`, `k + var`,
// or `var - k` and returns (name, k). This single extraction is what
// lets directProve/directRefute handle both the "direct" (k=0) and
// "arithmetic reasoning" (k != 0) cases from spec §4.C with one code
// path: both reduce to a bound on the same variable name.
func linearForm(t types.Term) (name string, k *big.Int, ok bool) {
	switch v := t.(type) {
	case *types.TermVar:
		return v.Name, big.NewInt(0), true
	case *types.TermBinop:
		if v.Op == types.BinAdd {
			if vv, isVar := v.Left.(*types.TermVar); isVar {
				if c, isConst := v.Right.(*types.TermInt); isConst {
					return vv.Name, c.Value, true
				}
			}
			if vv, isVar := v.Right.(*types.TermVar); isVar {
				if c, isConst := v.Left.(*types.TermInt); isConst {
					return vv.Name, c.Value, true
				}
			}
		}
		if v.Op == types.BinSub {
			if vv, isVar := v.Left.(*types.TermVar); isVar {
				if c, isConst := v.Right.(*types.TermInt); isConst {
					return vv.Name, new(big.Int).Neg(c.Value), true
				}
			}
		}
	}
	return "", nil, false
}

func flipOp(op types.CompareOp) types.CompareOp {
	switch op {
	case types.OpLt:
		return types.OpGt
	case types.OpLe:
		return types.OpGe
	case types.OpGt:
		return types.OpLt
	case types.OpGe:
		return types.OpLe
	default:
		return op
	}
}

// normalizeCompareToVarBound reduces a comparison to the form
// `varName op const`, handling both orientations (`x+k op c` and
// `c op x+k`, flipping the operator in the latter case).
func normalizeCompareToVarBound(p *types.PredCompare) (name string, op types.CompareOp, c *big.Int, ok bool) {
	if n, k, lok := linearForm(p.Left); lok {
		if rc, rok := p.Right.(*types.TermInt); rok {
			return n, p.Op, new(big.Int).Sub(rc.Value, k), true
		}
	}
	if n, k, rok := linearForm(p.Right); rok {
		if lc, lok := p.Left.(*types.TermInt); lok {
			return n, flipOp(p.Op), new(big.Int).Sub(lc.Value, k), true
		}
	}
	return "", "", nil, false
}

// impliesBound implements the transitive-bound proof rules of spec
// §4.C step 4/5: does `var factOp c1` imply `var goalOp c2`?
func impliesBound(factOp types.CompareOp, c1 *big.Int, goalOp types.CompareOp, c2 *big.Int) bool {
	cmp := c1.Cmp(c2)
	switch goalOp {
	case types.OpGt:
		return (factOp == types.OpGt && cmp >= 0) || (factOp == types.OpGe && cmp > 0) || (factOp == types.OpEq && cmp > 0)
	case types.OpGe:
		return (factOp == types.OpGe && cmp >= 0) || (factOp == types.OpGt && new(big.Int).Add(c1, big.NewInt(1)).Cmp(c2) >= 0) || (factOp == types.OpEq && cmp >= 0)
	case types.OpLt:
		return (factOp == types.OpLt && cmp <= 0) || (factOp == types.OpLe && cmp < 0) || (factOp == types.OpEq && cmp < 0)
	case types.OpLe:
		return (factOp == types.OpLe && cmp <= 0) || (factOp == types.OpLt && new(big.Int).Sub(c1, big.NewInt(1)).Cmp(c2) <= 0) || (factOp == types.OpEq && cmp <= 0)
	case types.OpEq:
		return factOp == types.OpEq && cmp == 0
	case types.OpNe:
		if factOp == types.OpNe && cmp == 0 {
			return true
		}
		if factOp == types.OpEq && cmp != 0 {
			return true
		}
		if (factOp == types.OpGt && cmp >= 0) || (factOp == types.OpGe && cmp > 0) {
			return true
		}
		if (factOp == types.OpLt && cmp <= 0) || (factOp == types.OpLe && cmp < 0) {
			return true
		}
		return false
	}
	return false
}

// impliesGeneral covers the non-numeric "same LHS/RHS, implied operator"
// rule for facts and goals sharing structurally identical operands.
func impliesGeneral(factOp, goalOp types.CompareOp) bool {
	switch factOp {
	case types.OpEq:
		return goalOp == types.OpEq || goalOp == types.OpLe || goalOp == types.OpGe
	case types.OpLt:
		return goalOp == types.OpLt || goalOp == types.OpLe || goalOp == types.OpNe
	case types.OpGt:
		return goalOp == types.OpGt || goalOp == types.OpGe || goalOp == types.OpNe
	case types.OpLe:
		return goalOp == types.OpLe
	case types.OpGe:
		return goalOp == types.OpGe
	case types.OpNe:
		return goalOp == types.OpNe
	}
	return false
}

func (s *solver) prove(p types.Predicate, ctx *Context) bool {
	switch v := p.(type) {
	case *types.PredTrue:
		return true
	case *types.PredCompare:
		return directProve(ctx, v, s)
	case *types.PredAnd:
		return s.prove(v.P, ctx) && s.prove(v.Q, ctx)
	case *types.PredOr:
		return s.prove(v.P, ctx) || s.prove(v.Q, ctx)
	case *types.PredNot:
		inner := simplify(v.P)
		if isFalse(inner) {
			return true
		}
		_, ok := s.refuteWithFactPredicate(inner, ctx)
		return ok
	}
	return false
}

func directProve(ctx *Context, goal *types.PredCompare, s *solver) bool {
	for _, f := range ctx.GetAllFacts() {
		if !s.tick() {
			return false
		}
		if types.PredicatesEqual(f.Pred, goal) {
			return true
		}
		fc, ok := f.Pred.(*types.PredCompare)
		if !ok {
			continue
		}
		if types.TermsEqual(fc.Left, goal.Left) && types.TermsEqual(fc.Right, goal.Right) {
			if impliesGeneral(fc.Op, goal.Op) {
				return true
			}
		}
		gName, gOp, gC, gOk := normalizeCompareToVarBound(goal)
		fName, fOp, fC, fOk := normalizeCompareToVarBound(fc)
		if gOk && fOk && gName == fName {
			if impliesBound(fOp, fC, gOp, gC) {
				return true
			}
		}
	}
	return false
}

// --- Step 7: refutation from facts --------------------------------------

func (s *solver) refute(p types.Predicate, ctx *Context) bool {
	_, ok := s.refuteWithFactPredicate(p, ctx)
	return ok
}

// refuteWithFact is the public entry for Solve: it returns the Fact that
// triggered refutation (for counterexample rendering) when p is a
// PredCompare; and/or pass up the fact their recursion found, while
// not and false refute without surfacing one.
func (s *solver) refuteWithFact(p types.Predicate, ctx *Context) (*Fact, bool) {
	switch v := p.(type) {
	case *types.PredFalse:
		return nil, true
	case *types.PredCompare:
		return directRefute(ctx, v, s)
	case *types.PredAnd:
		if f, ok := s.refuteWithFact(v.P, ctx); ok {
			return f, true
		}
		if s.exceeded {
			return nil, false
		}
		return s.refuteWithFact(v.Q, ctx)
	case *types.PredOr:
		f1, ok1 := s.refuteWithFact(v.P, ctx)
		if !ok1 {
			return nil, false
		}
		f2, ok2 := s.refuteWithFact(v.Q, ctx)
		if !ok2 {
			return nil, false
		}
		if f1 != nil {
			return f1, true
		}
		return f2, true
	case *types.PredNot:
		if s.prove(v.P, ctx) {
			return nil, true
		}
		return nil, false
	}
	return nil, false
}

func (s *solver) refuteWithFactPredicate(p types.Predicate, ctx *Context) (*Fact, bool) {
	return s.refuteWithFact(p, ctx)
}

func directRefute(ctx *Context, goal *types.PredCompare, s *solver) (*Fact, bool) {
	negGoal := &types.PredNot{P: goal}
	for _, f := range ctx.GetAllFacts() {
		if !s.tick() {
			return nil, false
		}
		if np, ok := f.Pred.(*types.PredNot); ok && types.PredicatesEqual(np.P, goal) {
			return &f, true
		}
		if types.PredicatesEqual(f.Pred, negGoal) {
			return &f, true
		}
		fc, ok := f.Pred.(*types.PredCompare)
		if !ok {
			continue
		}
		if types.TermsEqual(fc.Left, goal.Left) && types.TermsEqual(fc.Right, goal.Right) {
			if fc.Op == types.OpEq && goal.Op == types.OpNe {
				return &f, true
			}
			if fc.Op == types.OpNe && goal.Op == types.OpEq {
				return &f, true
			}
		}
		gName, gOp, gC, gOk := normalizeCompareToVarBound(goal)
		fName, fOp, fC, fOk := normalizeCompareToVarBound(fc)
		if gOk && fOk && gName == fName {
			if (fOp == types.OpEq && gOp == types.OpNe && fC.Cmp(gC) == 0) ||
				(fOp == types.OpNe && gOp == types.OpEq && fC.Cmp(gC) == 0) {
				return &f, true
			}
			if refuteBound(fOp, fC, gOp, gC) {
				return &f, true
			}
		}
	}
	return nil, false
}

// boundsOf translates `var op c` into an (inclusive) integer interval;
// ok is false for operators that can't be expressed as one interval
// (PredNe) — those are handled separately via direct-equality checks.
func boundsOf(op types.CompareOp, c *big.Int) (lower *big.Int, hasLower bool, upper *big.Int, hasUpper bool, ok bool) {
	one := big.NewInt(1)
	switch op {
	case types.OpGt:
		return new(big.Int).Add(c, one), true, nil, false, true
	case types.OpGe:
		return c, true, nil, false, true
	case types.OpLt:
		return nil, false, new(big.Int).Sub(c, one), true, true
	case types.OpLe:
		return nil, false, c, true, true
	case types.OpEq:
		return c, true, c, true, true
	}
	return nil, false, nil, false, false
}

// refuteBound reports whether `var factOp c1` and `var goalOp c2` can
// never hold simultaneously, i.e. the fact implies the goal's negation.
func refuteBound(factOp types.CompareOp, c1 *big.Int, goalOp types.CompareOp, c2 *big.Int) bool {
	fLower, fHasLower, fUpper, fHasUpper, fOk := boundsOf(factOp, c1)
	gLower, gHasLower, gUpper, gHasUpper, gOk := boundsOf(goalOp, c2)
	if !fOk || !gOk {
		return false
	}
	var lower, upper *big.Int
	hasLower, hasUpper := false, false
	if fHasLower {
		lower, hasLower = fLower, true
	}
	if gHasLower && (!hasLower || gLower.Cmp(lower) > 0) {
		lower, hasLower = gLower, true
	}
	if fHasUpper {
		upper, hasUpper = fUpper, true
	}
	if gHasUpper && (!hasUpper || gUpper.Cmp(upper) < 0) {
		upper, hasUpper = gUpper, true
	}
	return hasLower && hasUpper && lower.Cmp(upper) > 0
}

// --- Step 8: counterexample construction --------------------------------

func buildRefutedCounterexample(goal types.Predicate, fact *Fact) map[string]string {
	ce := map[string]string{}
	cmp, ok := goal.(*types.PredCompare)
	if ok && fact != nil {
		if fc, ok := fact.Pred.(*types.PredCompare); ok {
			if name, op, c, ok := normalizeCompareToVarBound(fc); ok {
				ce[name] = witnessValue(op, c).String()
			} else if gName, _, _, gok := normalizeCompareToVarBound(cmp); gok {
				ce[gName] = "?"
			}
		}
	}
	if fact != nil {
		ce["_explanation"] = fmt.Sprintf("contradicts '%s'", fact.Pred.String())
		ce["_contradicts"] = fmt.Sprintf("%s (from: %s)", fact.Pred.String(), fact.Source)
	} else {
		ce["_explanation"] = "predicate is statically false"
	}
	return ce
}

func witnessValue(op types.CompareOp, c *big.Int) *big.Int {
	one := big.NewInt(1)
	switch op {
	case types.OpGt:
		return new(big.Int).Add(c, one)
	case types.OpLt:
		return new(big.Int).Sub(c, one)
	default:
		return c
	}
}

// generateCandidateCounterexample implements step 8's best-effort search:
// collect bounds on the goal's variable from known facts and propose the
// tightest lower bound (or, with none, the tightest upper bound) as the
// candidate, labelled a candidate rather than a proof (I4). The proposed
// value is not checked against the goal, so it need not violate it.
func generateCandidateCounterexample(goal types.Predicate, ctx *Context) map[string]string {
	cmp, ok := goal.(*types.PredCompare)
	if !ok {
		return nil
	}
	varName, _, _, ok := normalizeCompareToVarBound(cmp)
	if !ok {
		return nil
	}
	var lower, upper *big.Int
	hasLower, hasUpper := false, false
	for _, f := range ctx.GetAllFacts() {
		fc, ok := f.Pred.(*types.PredCompare)
		if !ok {
			continue
		}
		fName, fOp, fC, fOk := normalizeCompareToVarBound(fc)
		if !fOk || fName != varName {
			continue
		}
		fl, fHasLower, fu, fHasUpper, boundOk := boundsOf(fOp, fC)
		if !boundOk {
			continue
		}
		if fHasLower && (!hasLower || fl.Cmp(lower) > 0) {
			lower, hasLower = fl, true
		}
		if fHasUpper && (!hasUpper || fu.Cmp(upper) < 0) {
			upper, hasUpper = fu, true
		}
	}
	if !hasLower && !hasUpper {
		return nil
	}
	var candidate *big.Int
	if hasLower {
		candidate = lower
	} else {
		candidate = upper
	}
	return map[string]string{
		varName:        candidate.String(),
		"_explanation": fmt.Sprintf("possible counterexample to %s", cmp.String()),
		"_note":        "candidate, not proven",
	}
}
