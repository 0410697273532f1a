package check

import (
	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
	"github.com/axonlang/clank/internal/refine"
	"github.com/axonlang/clank/internal/tctx"
	"github.com/axonlang/clank/internal/types"
)

// checkStmt is spec §4.G's "Statement checks". It mutates scope.TC/scope.RC
// in place (a block's statements share one environment; each `let` simply
// adds to it) rather than pushing a fresh child per statement.
func (c *Checker) checkStmt(s ast.Stmt, scope Scope) {
	switch stmt := s.(type) {
	case *ast.LetStmt:
		c.checkLetStmt(stmt, scope)
	case *ast.AssignStmt:
		c.checkAssignStmt(stmt, scope)
	case *ast.ForStmt:
		c.checkForStmt(stmt, scope)
	case *ast.WhileStmt:
		condType := c.inferExpr(stmt.Cond, scope)
		c.unify(types.Bool, condType, stmt.Cond.Span(), stmt.Cond.ID())
		c.inferExpr(stmt.Body, scope.Child())
	case *ast.ReturnStmt:
		c.checkReturnStmt(stmt, scope)
	case *ast.AssertStmt:
		condType := c.inferExpr(stmt.Cond, scope)
		c.unify(types.Bool, condType, stmt.Cond.Span(), stmt.Cond.ID())
		c.checkAssert(stmt.Cond, scope, stmt.Span(), stmt.ID())
	case *ast.ExprStmt:
		c.inferExpr(stmt.Expr, scope)
	}
}

func (c *Checker) checkLetStmt(stmt *ast.LetStmt, scope Scope) {
	initType := c.inferExpr(stmt.Init, scope)

	effective := initType
	if stmt.Type != nil {
		declared := c.resolveTypeExpr(stmt.Type, scope.TC)
		if refined, ok := declared.(*types.TypeRefined); ok {
			effective = c.unify(refined.Base, initType, stmt.Span(), stmt.ID())
			c.enforceRefinement(refined, stmt.Init, scope, stmt.Span(), stmt.ID())
		} else {
			effective = c.unify(declared, initType, stmt.Span(), stmt.ID())
		}
	} else {
		effective = c.apply(effective)
	}

	if id, ok := stmt.Pattern.(*ast.Ident); ok {
		if !scope.TC.Define(id.Name, &tctx.Binding{
			Scheme:  &types.TypeScheme{Type: effective},
			Mutable: stmt.Mutable,
			Span:    stmt.Span(),
			Source:  tctx.SourceLet,
		}) {
			c.Diags.Emit(diag.SevError, diag.E1002, "duplicate definition: "+id.Name, stmt.Span(), stmt.ID())
		}
		if !stmt.Mutable {
			if term, ok := lowerTermExpr(stmt.Init); ok {
				scope.RC.SetDefinition(id.Name, term)
			}
		}
		return
	}
	c.bindPattern(stmt.Pattern, effective, scope)
}

func (c *Checker) checkAssignStmt(stmt *ast.AssignStmt, scope Scope) {
	var targetType types.Type
	if id, ok := stmt.Target.(*ast.Ident); ok {
		b, found := scope.TC.Lookup(id.Name)
		if !found {
			c.Diags.Emit(diag.SevError, diag.E1001, "unresolved name: "+id.Name, id.Span(), id.ID())
			targetType = c.freshTypeVar("")
		} else {
			if !b.Mutable {
				d := c.Diags.Emit(diag.SevError, diag.E2013, "cannot assign to immutable binding: "+id.Name, stmt.Span(), stmt.ID())
				d.Related = append(d.Related, diag.Related{Message: id.Name + " declared here", Location: b.Span})
				d.Structured = map[string]any{"name": id.Name}
			}
			targetType = c.apply(c.instantiate(b.Scheme))
		}
	} else {
		targetType = c.inferExpr(stmt.Target, scope)
	}
	valueType := c.inferExpr(stmt.Value, scope)
	c.unify(targetType, valueType, stmt.Span(), stmt.ID())
}

func (c *Checker) checkForStmt(stmt *ast.ForStmt, scope Scope) {
	iterableType := c.apply(c.inferExpr(stmt.Iterable, scope))
	var elem types.Type
	if arr, ok := types.GetBase(iterableType).(*types.TypeArray); ok {
		elem = arr.Element
	} else {
		c.Diags.Emit(diag.SevError, diag.E2010, "not iterable: "+iterableType.String(), stmt.Iterable.Span(), stmt.Iterable.ID())
		elem = c.freshTypeVar("")
	}
	body := scope.Child()
	c.bindPattern(stmt.Pattern, elem, body)
	c.inferExpr(stmt.Body, body)
}

func (c *Checker) checkReturnStmt(stmt *ast.ReturnStmt, scope Scope) {
	if c.fn == nil {
		c.Diags.Emit(diag.SevError, diag.E2014, "return outside function", stmt.Span(), stmt.ID())
		if stmt.Value != nil {
			c.inferExpr(stmt.Value, scope)
		}
		return
	}
	var valType types.Type = types.Unit
	if stmt.Value != nil {
		valType = c.inferExpr(stmt.Value, scope)
	}
	if refined, ok := c.fn.returnType.(*types.TypeRefined); ok {
		c.unify(refined.Base, valType, stmt.Span(), stmt.ID())
		if stmt.Value != nil {
			c.enforceRefinement(refined, stmt.Value, scope, stmt.Span(), stmt.ID())
		}
		return
	}
	c.unify(c.fn.returnType, valType, stmt.Span(), stmt.ID())
}

// checkAssert is spec §4.G's assert handling: solve the condition as a
// predicate goal (in addition to the plain Bool type check checkStmt
// already performed), reporting E3004 on refutation or an obligation on an
// inconclusive result.
func (c *Checker) checkAssert(cond ast.Expr, scope Scope, loc ast.Span, node ast.NodeID) {
	pred := lowerPredicateExpr(cond)
	result := c.solve(pred, scope.RC)
	switch result.Status {
	case refine.Discharged:
		return
	case refine.Refuted:
		d := c.Diags.Emit(diag.SevError, diag.E3004, "assertion unprovable: "+pred.String(), loc, node)
		d.Structured = map[string]any{"goal": pred.String(), "counterexample": result.Counterexample}
	default:
		c.Diags.AddObligation(&diag.Obligation{
			Kind:            diag.ObligationRefinement,
			Goal:            pred.String(),
			Location:        loc,
			PrimaryNodeID:   node,
			Context:         c.obligationContext(pred, scope),
			Hints:           c.refinementHints(pred, scope),
			SolverAttempted: true,
			SolverResult:    diag.SolverUnknown,
			UnknownReason:   result.Reason,
			Counterexample:  result.Counterexample,
		})
	}
}
