// Package check implements the type-checker driver (component G): a
// three-pass bidirectional inference pass over a Program that coordinates
// internal/types, internal/unify, internal/refine, internal/tctx and
// internal/exhaustive, emitting diagnostics and proof obligations into an
// internal/diag.Collector.
//
// Grounded on sunholo-data-ailang/internal/types/inference.go's
// InferenceContext: this package keeps the teacher's "infer, then unify
// into an ambient substitution" shape but trades its constraint-collection-
// then-solve-at-the-end strategy for unifying eagerly as each expression is
// checked, since Clank's simpler unified Type (vs the teacher's row-
// polymorphic constraint system) doesn't need a deferred solve phase.
package check

import (
	"fmt"

	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
	"github.com/axonlang/clank/internal/refine"
	"github.com/axonlang/clank/internal/tctx"
	"github.com/axonlang/clank/internal/types"
	"github.com/axonlang/clank/internal/unify"
)

// Checker drives one compilation's worth of three-pass checking. The
// type-variable counter lives here as an instance field (spec §9's
// redesign note): a fresh Checker is all a fresh compilation needs.
type Checker struct {
	Diags *diag.Collector

	global  *tctx.Context
	subst   *unify.Substitution
	nextVar int

	maxFactSteps int // wired from config.SolverConfig; see solve()

	fn *fnScope // current function being checked; nil at top level
}

// fnScope tracks the state that's scoped to the function body currently
// being checked: its declared return type (for `return` statements) and
// its declared effect set (for Propagate's E4002 and future effect checks).
type fnScope struct {
	name       string
	returnType types.Type
	effects    map[string]bool
}

func (f *fnScope) hasEffect(name string) bool {
	return f != nil && f.effects[name]
}

// Scope pairs the two parent-linked contexts the checker threads through
// every expression: name/type bindings (tctx) and known refinement facts
// (refine). They are always pushed and popped together (spec §3's
// Lifecycles: "pushed at function entry, branch entry... popped on exit").
type Scope struct {
	TC *tctx.Context
	RC *refine.Context
}

// Child returns a scope nested under s, e.g. for a lambda body, a block,
// or a branch of an if/match.
func (s Scope) Child() Scope {
	return Scope{TC: s.TC.Child(), RC: s.RC.Child()}
}

// NewChecker returns a Checker with a freshly-populated global scope
// (built-ins from tctx.NewGlobal) and a Collector capped at maxDiagnostics
// (<=0 means unlimited).
func NewChecker(maxDiagnostics int) *Checker {
	return NewCheckerWithBudget(maxDiagnostics, refine.DefaultMaxFactSteps)
}

// NewCheckerWithBudget is NewChecker with an explicit fact-chain step
// budget for the refinement solver (internal/config's SolverConfig wires
// this through from the compiler's configuration).
func NewCheckerWithBudget(maxDiagnostics, maxFactSteps int) *Checker {
	return &Checker{
		Diags:        diag.NewCollector(maxDiagnostics),
		global:       tctx.NewGlobal(),
		subst:        unify.Empty(),
		maxFactSteps: maxFactSteps,
	}
}

// solve runs the refinement solver against the checker's configured
// fact-step budget, falling back to refine.DefaultMaxFactSteps when that
// budget is not positive (e.g. NewCheckerWithBudget(n, 0)).
func (c *Checker) solve(pred types.Predicate, rc *refine.Context) refine.Result {
	budget := c.maxFactSteps
	if budget <= 0 {
		budget = refine.DefaultMaxFactSteps
	}
	return refine.SolveWithBudget(pred, rc, budget)
}

// RootScope returns the top-level Scope a CheckProgram pass starts from.
func (c *Checker) RootScope() Scope {
	return Scope{TC: c.global, RC: refine.NewRoot()}
}

func (c *Checker) freshTypeVar(name string) *types.TypeVar {
	c.nextVar++
	return &types.TypeVar{ID: c.nextVar, Name: name}
}

// apply resolves t against the checker's ambient substitution.
func (c *Checker) apply(t types.Type) types.Type { return unify.Apply(c.subst, t) }

// unify unifies a and b (after applying the ambient substitution to both),
// folding any resulting substitution into c.subst. On failure it emits an
// E2001/E2018/E2003 diagnostic (occurs-check failures are reported as
// E2018 "infinite type", missing record fields as E2003, everything else,
// arity mismatches included, as E2001) and returns a fresh type variable
// so checking can continue rather than abort.
func (c *Checker) unify(expected, actual types.Type, loc ast.Span, node ast.NodeID) types.Type {
	e, a := c.apply(expected), c.apply(actual)
	sub, err := unify.Unify(e, a)
	if err != nil {
		code := diag.E2001
		msg := fmt.Sprintf("type mismatch: expected %s, got %s", e.String(), a.String())
		structured := map[string]any{"expected": e.String(), "actual": a.String()}
		switch err.Kind {
		case unify.OccursCheck:
			code = diag.E2018
			msg = fmt.Sprintf("infinite type: %s occurs in %s", e.String(), a.String())
		case unify.ArityMismatch:
			msg = fmt.Sprintf("type mismatch (arity): expected %s, got %s", e.String(), a.String())
		case unify.MissingField:
			code = diag.E2003
			msg = fmt.Sprintf("type mismatch: %s is missing field %q present in %s", e.String(), err.Detail, a.String())
			structured["field"] = err.Detail
		}
		d := c.Diags.Emit(diag.SevError, code, msg, loc, node)
		d.Structured = structured
		return c.freshTypeVar("")
	}
	c.subst = unify.Compose(sub, c.subst)
	return c.apply(e)
}

// instantiate replaces a scheme's named quantified variables with fresh
// type variables, consistently by name (spec §3: "Instantiation generates
// fresh type variables by name substitution").
func (c *Checker) instantiate(sch *types.TypeScheme) types.Type {
	if len(sch.Vars) == 0 {
		return sch.Type
	}
	mapping := make(map[string]*types.TypeVar, len(sch.Vars))
	for _, v := range sch.Vars {
		mapping[v] = c.freshTypeVar("")
	}
	return substituteNamed(sch.Type, mapping)
}

func substituteNamed(t types.Type, mapping map[string]*types.TypeVar) types.Type {
	switch v := t.(type) {
	case *types.TypeVar:
		if fresh, ok := mapping[v.Name]; ok {
			return fresh
		}
		return v
	case *types.TypeApp:
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteNamed(a, mapping)
		}
		return &types.TypeApp{Con: v.Con, Args: args}
	case *types.TypeFn:
		params := make([]types.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = substituteNamed(p, mapping)
		}
		return &types.TypeFn{Params: params, Return: substituteNamed(v.Return, mapping), Effects: v.Effects}
	case *types.TypeTuple:
		elems := make([]types.Type, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = substituteNamed(e, mapping)
		}
		return &types.TypeTuple{Elements: elems}
	case *types.TypeArray:
		return &types.TypeArray{Element: substituteNamed(v.Element, mapping)}
	case *types.TypeRecord:
		fields := make([]types.RecordField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = types.RecordField{Name: f.Name, Type: substituteNamed(f.Type, mapping)}
		}
		return &types.TypeRecord{Fields: fields, IsOpen: v.IsOpen}
	case *types.TypeRefined:
		return &types.TypeRefined{Base: substituteNamed(v.Base, mapping), VarName: v.VarName, Pred: v.Pred}
	default:
		return t
	}
}

// CheckProgram runs the three passes over prog and returns the root Scope
// they ran in. Diagnostics and obligations accumulate in c.Diags; the
// ambient substitution is not applied to the Bindings in that Scope.
func (c *Checker) CheckProgram(prog *ast.Program) Scope {
	root := c.RootScope()
	c.collectTypeDecls(prog, root.TC)
	c.collectFuncSigs(prog, root.TC)
	c.checkBodies(prog, root)
	return root
}
