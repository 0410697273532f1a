package check

import (
	"fmt"
	"math/big"

	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
	"github.com/axonlang/clank/internal/refine"
	"github.com/axonlang/clank/internal/types"
)

// lowerTermExpr best-effort-translates an expression into a refinement
// Term, for let-definition substitution and refinement-obligation goal
// construction. Forms outside the small arithmetic/call/field grammar the
// solver understands (lambdas, matches, blocks...) report ok=false; the
// caller falls back to treating the value as unknown rather than refusing
// to check it.
func lowerTermExpr(e ast.Expr) (types.Term, bool) {
	switch v := e.(type) {
	case *ast.Literal:
		switch v.LKind {
		case ast.IntLit:
			n, ok := new(big.Int).SetString(v.IntValue, 10)
			if !ok {
				return nil, false
			}
			return &types.TermInt{Value: n}, true
		case ast.BoolLit:
			return &types.TermBool{Value: v.BoolVal}, true
		case ast.StringLit:
			return &types.TermString{Value: v.StringVal}, true
		default:
			return nil, false
		}
	case *ast.Ident:
		return &types.TermVar{Name: v.Name}, true
	case *ast.Unary:
		if v.Op == "-" {
			inner, ok := lowerTermExpr(v.Operand)
			if !ok {
				return nil, false
			}
			return &types.TermBinop{Op: types.BinSub, Left: types.NewTermInt(0), Right: inner}, true
		}
		return nil, false
	case *ast.Binary:
		op, ok := arithOp(v.Op)
		if !ok {
			return nil, false
		}
		left, ok := lowerTermExpr(v.Left)
		if !ok {
			return nil, false
		}
		right, ok := lowerTermExpr(v.Right)
		if !ok {
			return nil, false
		}
		return &types.TermBinop{Op: op, Left: left, Right: right}, true
	case *ast.Call:
		callee, ok := v.Callee.(*ast.Ident)
		if !ok {
			return nil, false
		}
		args := make([]types.Term, len(v.Args))
		for i, a := range v.Args {
			t, ok := lowerTermExpr(a)
			if !ok {
				return nil, false
			}
			args[i] = t
		}
		return &types.TermCall{Name: callee.Name, Args: args}, true
	case *ast.Field:
		base, ok := lowerTermExpr(v.Target)
		if !ok {
			return nil, false
		}
		return &types.TermField{Base: base, Name: v.Name}, true
	default:
		return nil, false
	}
}

func arithOp(op string) (types.BinOp, bool) {
	switch op {
	case "+":
		return types.BinAdd, true
	case "-":
		return types.BinSub, true
	case "*":
		return types.BinMul, true
	case "/":
		return types.BinDiv, true
	case "%":
		return types.BinMod, true
	}
	return "", false
}

// lowerPredicateExpr best-effort-translates a boolean expression into a
// refinement Predicate (used for TypeRefinedExpr's bound, and for
// extracting an if-condition's fact). Unsupported forms produce
// PredUnknown rather than failing the whole check — an obligation the
// solver can't discharge is still reported as "unknown", not a crash.
func lowerPredicateExpr(e ast.Expr) types.Predicate {
	switch v := e.(type) {
	case *ast.Literal:
		if v.LKind == ast.BoolLit {
			if v.BoolVal {
				return types.True
			}
			return types.False
		}
		return &types.PredUnknown{Source: "non-boolean literal used as predicate"}
	case *ast.Unary:
		if v.Op == "!" || v.Op == "¬" {
			return &types.PredNot{P: lowerPredicateExpr(v.Operand)}
		}
		return &types.PredUnknown{Source: "unsupported unary predicate operator " + v.Op}
	case *ast.Binary:
		switch v.Op {
		case "&&", "∧":
			return &types.PredAnd{P: lowerPredicateExpr(v.Left), Q: lowerPredicateExpr(v.Right)}
		case "||", "∨":
			return &types.PredOr{P: lowerPredicateExpr(v.Left), Q: lowerPredicateExpr(v.Right)}
		case "==", "!=", "<", "<=", ">", ">=", "≠", "≤", "≥":
			left, lok := lowerTermExpr(v.Left)
			right, rok := lowerTermExpr(v.Right)
			if !lok || !rok {
				return &types.PredUnknown{Source: "non-arithmetic operand in comparison"}
			}
			return &types.PredCompare{Op: refine.NormalizeOp(v.Op), Left: left, Right: right}
		default:
			return &types.PredUnknown{Source: "unsupported binary predicate operator " + v.Op}
		}
	case *ast.Call:
		callee, ok := v.Callee.(*ast.Ident)
		if !ok {
			return &types.PredUnknown{Source: "unsupported call-as-predicate"}
		}
		args := make([]types.Term, len(v.Args))
		for i, a := range v.Args {
			t, ok := lowerTermExpr(a)
			if !ok {
				return &types.PredUnknown{Source: "non-arithmetic argument in predicate call"}
			}
			args[i] = t
		}
		return &types.PredCall{Name: callee.Name, Args: args}
	case *ast.Ident:
		// A bare identifier used as a boolean predicate (e.g. `if flag`)
		// is represented as `flag == true`.
		return &types.PredCompare{Op: types.OpEq, Left: &types.TermVar{Name: v.Name}, Right: &types.TermBool{Value: true}}
	default:
		return &types.PredUnknown{Source: "unsupported predicate expression form"}
	}
}

// substVarInPredicate replaces every TermVar named name with replacement
// throughout p, used to instantiate a TypeRefined's bound-variable
// predicate with an actual call argument.
func substVarInPredicate(p types.Predicate, name string, replacement types.Term) types.Predicate {
	switch v := p.(type) {
	case *types.PredCompare:
		return &types.PredCompare{Op: v.Op, Left: substVarInTerm(v.Left, name, replacement), Right: substVarInTerm(v.Right, name, replacement)}
	case *types.PredAnd:
		return &types.PredAnd{P: substVarInPredicate(v.P, name, replacement), Q: substVarInPredicate(v.Q, name, replacement)}
	case *types.PredOr:
		return &types.PredOr{P: substVarInPredicate(v.P, name, replacement), Q: substVarInPredicate(v.Q, name, replacement)}
	case *types.PredNot:
		return &types.PredNot{P: substVarInPredicate(v.P, name, replacement)}
	case *types.PredCall:
		args := make([]types.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = substVarInTerm(a, name, replacement)
		}
		return &types.PredCall{Name: v.Name, Args: args}
	default:
		return p
	}
}

func substVarInTerm(t types.Term, name string, replacement types.Term) types.Term {
	switch v := t.(type) {
	case *types.TermVar:
		if v.Name == name {
			return replacement
		}
		return v
	case *types.TermBinop:
		return &types.TermBinop{Op: v.Op, Left: substVarInTerm(v.Left, name, replacement), Right: substVarInTerm(v.Right, name, replacement)}
	case *types.TermCall:
		args := make([]types.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = substVarInTerm(a, name, replacement)
		}
		return &types.TermCall{Name: v.Name, Args: args}
	case *types.TermField:
		return &types.TermField{Base: substVarInTerm(v.Base, name, replacement), Name: v.Name}
	default:
		return t
	}
}

// predicateVarNames collects the distinct variable names referenced in p,
// in first-occurrence order, for the hint generator and obligation context
// snapshot.
func predicateVarNames(p types.Predicate) []string {
	seen := map[string]bool{}
	var out []string
	var walkTerm func(types.Term)
	walkTerm = func(t types.Term) {
		switch v := t.(type) {
		case *types.TermVar:
			if !seen[v.Name] {
				seen[v.Name] = true
				out = append(out, v.Name)
			}
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
	walk = func(pr types.Predicate) {
		switch v := pr.(type) {
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
	return out
}

// enforceRefinement is spec §4.G's "Refinement enforcement": given a
// TypeRefined the checker expects a value to satisfy, the already-unified
// actual value it got, the source expression supplying that value, and the
// scope to solve against, it substitutes a known term when possible and
// solves, discharging silently, reporting E3001 on refutation, or raising
// an Obligation on an inconclusive result.
func (c *Checker) enforceRefinement(expected *types.TypeRefined, valueExpr ast.Expr, scope Scope, loc ast.Span, node ast.NodeID) {
	term, known := lowerTermExpr(valueExpr)
	if !known {
		term = &types.TermVar{Name: "$value"}
	}
	goal := substVarInPredicate(expected.Pred, expected.VarName, term)

	result := c.solve(goal, scope.RC)
	switch result.Status {
	case refine.Discharged:
		return
	case refine.Refuted:
		d := c.Diags.Emit(diag.SevError, diag.E3001, fmt.Sprintf("refinement unprovable: %s", goal.String()), loc, node)
		d.Structured = map[string]any{"goal": goal.String(), "counterexample": result.Counterexample}
		return
	default:
		obl := &diag.Obligation{
			Kind:            diag.ObligationRefinement,
			Goal:            goal.String(),
			Location:        loc,
			PrimaryNodeID:   node,
			Context:         c.obligationContext(goal, scope),
			Hints:           c.refinementHints(goal, scope),
			SolverAttempted: true,
			SolverResult:    diag.SolverUnknown,
			UnknownReason:   result.Reason,
			Counterexample:  result.Counterexample,
		}
		c.Diags.AddObligation(obl)
	}
}

func (c *Checker) obligationContext(goal types.Predicate, scope Scope) diag.ObligationContext {
	names := predicateVarNames(goal)
	bindings := make([]string, 0, len(names))
	for _, n := range names {
		if b, ok := scope.TC.Lookup(n); ok {
			bindings = append(bindings, fmt.Sprintf("%s: %s", n, c.apply(c.instantiate(b.Scheme)).String()))
		} else {
			bindings = append(bindings, n)
		}
	}
	var facts []string
	for _, f := range scope.RC.GetAllFacts() {
		facts = append(facts, f.Pred.String())
	}
	return diag.ObligationContext{Bindings: bindings, Facts: facts}
}

// refinementHints is spec §4.G's hint generator (sub-component of G):
// given an unresolved goal, always produce guard/refine_param*/assert/info.
func (c *Checker) refinementHints(goal types.Predicate, scope Scope) []diag.Hint {
	names := predicateVarNames(goal)
	hints := []diag.Hint{
		{
			Strategy:    "guard",
			Description: "add a runtime guard before this point",
			Template:    fmt.Sprintf("if %s { ... }", goal.String()),
			Confidence:  diag.ConfidenceHigh,
		},
	}
	for _, n := range names {
		hints = append(hints, diag.Hint{
			Strategy:    "refine_param",
			Description: fmt.Sprintf("narrow the declared type of %q", n),
			Template:    fmt.Sprintf("%s: T{%s}", n, goal.String()),
			Confidence:  diag.ConfidenceMedium,
		})
	}
	hints = append(hints, diag.Hint{
		Strategy:    "assert",
		Description: "assert the condition holds at this point",
		Template:    fmt.Sprintf("assert %s", goal.String()),
		Confidence:  diag.ConfidenceMedium,
	})

	info := "known bindings and facts:\n"
	for _, n := range names {
		line := n
		if b, ok := scope.TC.Lookup(n); ok {
			line += ": " + c.apply(c.instantiate(b.Scheme)).String()
		}
		if def, ok := scope.RC.GetDefinition(n); ok {
			line += " = " + def.String()
		}
		info += "- " + line + "\n"
	}
	for _, f := range scope.RC.GetAllFacts() {
		info += "- fact: " + f.Pred.String() + " (" + f.Source + ")\n"
	}
	hints = append(hints, diag.Hint{
		Strategy:    "info",
		Description: info,
		Confidence:  diag.ConfidenceLow,
	})
	return hints
}
