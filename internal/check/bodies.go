package check

import (
	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/tctx"
	"github.com/axonlang/clank/internal/types"
)

// checkBodies is pass 3: check every function's body against its own
// declared signature, re-resolved against a fresh per-function scope so
// that the type parameters this function's body actually unifies against
// are unrelated to any other function's (even one sharing a parameter
// name like `T`). Pass 2's schemes exist only for call sites to
// instantiate; pass 3 never reuses them directly.
func (c *Checker) checkBodies(prog *ast.Program, root Scope) {
	for _, d := range prog.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok {
			continue
		}
		c.checkFuncBody(fd, root)
	}
}

func (c *Checker) checkFuncBody(fd *ast.FuncDecl, root Scope) {
	fnTC := root.TC.Child()
	for _, p := range fd.TypeParams {
		fnTC.BindTypeParam(p, c.freshTypeVar(p))
	}

	paramTypes := make([]types.Type, len(fd.Params))
	for i, p := range fd.Params {
		if p.Type != nil {
			paramTypes[i] = c.resolveTypeExpr(p.Type, fnTC)
		} else {
			paramTypes[i] = c.freshTypeVar(p.Name)
		}
	}
	var returnType types.Type
	if fd.ReturnType != nil {
		returnType = c.resolveTypeExpr(fd.ReturnType, fnTC)
	} else {
		returnType = c.freshTypeVar(fd.Name + ".return")
	}

	effects := make(map[string]bool, len(fd.Effects))
	for _, e := range fd.Effects {
		effects[e] = true
	}

	body := Scope{TC: fnTC.Child(), RC: root.RC.Child()}
	for i, p := range fd.Params {
		body.TC.Define(p.Name, &tctx.Binding{
			Scheme: &types.TypeScheme{Type: paramTypes[i]},
			Span:   p.Span(),
			Source: tctx.SourceParameter,
		})
		// A refined parameter type is a fact the solver can use for the
		// rest of the body (spec §8 scenario 3: `n: Int{n > 0}` makes
		// `n > 0` available to prove obligations `m`'s definition implies).
		if refined, ok := paramTypes[i].(*types.TypeRefined); ok {
			fact := substVarInPredicate(refined.Pred, refined.VarName, &types.TermVar{Name: p.Name})
			body.RC.AddFact(fact, "parameter "+p.Name)
		}
	}

	prevFn := c.fn
	c.fn = &fnScope{name: fd.Name, returnType: returnType, effects: effects}

	bodyType := c.inferExpr(fd.Body, body)
	if refined, ok := returnType.(*types.TypeRefined); ok {
		c.unify(refined.Base, bodyType, fd.Body.Span(), fd.Body.ID())
		c.enforceRefinement(refined, fd.Body, body, fd.Body.Span(), fd.Body.ID())
	} else {
		c.unify(returnType, bodyType, fd.Body.Span(), fd.Body.ID())
	}

	c.fn = prevFn
}
