package check

import (
	"strconv"

	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
	"github.com/axonlang/clank/internal/exhaustive"
	"github.com/axonlang/clank/internal/similarity"
	"github.com/axonlang/clank/internal/tctx"
	"github.com/axonlang/clank/internal/types"
)

// inferExpr is the bidirectional inference switch (spec §4.G's "Expression
// inference rules"). Every branch applies the ambient substitution to its
// result before returning, either directly or via c.unify.
func (c *Checker) inferExpr(e ast.Expr, scope Scope) types.Type {
	switch v := e.(type) {
	case *ast.Literal:
		return c.literalType(v)

	case *ast.Ident:
		return c.inferIdent(v, scope)

	case *ast.Binary:
		return c.inferBinary(v, scope)

	case *ast.Unary:
		return c.inferUnary(v, scope)

	case *ast.Call:
		return c.inferCall(v, scope)

	case *ast.Lambda:
		return c.inferLambda(v, scope)

	case *ast.If:
		return c.inferIf(v, scope)

	case *ast.Match:
		return c.inferMatch(v, scope)

	case *ast.Block:
		return c.inferBlock(v, scope)

	case *ast.ArrayLit:
		return c.inferArrayLit(v, scope)

	case *ast.TupleLit:
		elems := make([]types.Type, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = c.apply(c.inferExpr(el, scope))
		}
		return &types.TypeTuple{Elements: elems}

	case *ast.RecordLit:
		fields := make([]types.RecordField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = types.RecordField{Name: f.Name, Type: c.apply(c.inferExpr(f.Value, scope))}
		}
		return &types.TypeRecord{Fields: fields, IsOpen: false}

	case *ast.Index:
		return c.inferIndex(v, scope)

	case *ast.Field:
		return c.inferField(v, scope)

	case *ast.Propagate:
		return c.inferPropagate(v, scope)

	case *ast.Range:
		c.unify(types.Int, c.inferExpr(v.Start, scope), v.Start.Span(), v.Start.ID())
		c.unify(types.Int, c.inferExpr(v.End, scope), v.End.Span(), v.End.ID())
		return &types.TypeArray{Element: types.Int}

	case *ast.Pipe:
		return c.inferPipe(v, scope)

	default:
		return c.freshTypeVar("")
	}
}

func (c *Checker) inferIdent(v *ast.Ident, scope Scope) types.Type {
	b, ok := scope.TC.Lookup(v.Name)
	if !ok {
		d := c.Diags.Emit(diag.SevError, diag.E1001, "unresolved name: "+v.Name, v.Span(), v.ID())
		if matches := similarity.FindSimilar(v.Name, scope.TC.AllNames(), 0, 0); len(matches) > 0 {
			d.Structured = map[string]any{"similar_names": matchNames(matches)}
		}
		return c.freshTypeVar("")
	}
	return c.apply(c.instantiate(b.Scheme))
}

func (c *Checker) inferBinary(v *ast.Binary, scope Scope) types.Type {
	switch v.Op {
	case "+", "-", "*", "%", "^":
		lt := c.apply(c.inferExpr(v.Left, scope))
		rt := c.apply(c.inferExpr(v.Right, scope))
		c.requireNumeric(lt, v.Left)
		c.requireNumeric(rt, v.Right)
		return c.unify(lt, rt, v.Span(), v.ID())

	case "/":
		lt := c.apply(c.inferExpr(v.Left, scope))
		rt := c.apply(c.inferExpr(v.Right, scope))
		c.requireNumeric(lt, v.Left)
		c.requireNumeric(rt, v.Right)
		return types.Float

	case "==", "!=":
		lt := c.inferExpr(v.Left, scope)
		rt := c.inferExpr(v.Right, scope)
		c.unify(lt, rt, v.Span(), v.ID())
		return types.Bool

	case "<", "<=", ">", ">=":
		lt := c.apply(c.inferExpr(v.Left, scope))
		rt := c.apply(c.inferExpr(v.Right, scope))
		c.requireNumeric(lt, v.Left)
		c.requireNumeric(rt, v.Right)
		c.unify(lt, rt, v.Span(), v.ID())
		return types.Bool

	case "&&", "||", "∧", "∨":
		lt := c.inferExpr(v.Left, scope)
		rt := c.inferExpr(v.Right, scope)
		c.unify(types.Bool, lt, v.Left.Span(), v.Left.ID())
		c.unify(types.Bool, rt, v.Right.Span(), v.Right.ID())
		return types.Bool

	case "++":
		lt := types.GetBase(c.apply(c.inferExpr(v.Left, scope)))
		rt := types.GetBase(c.apply(c.inferExpr(v.Right, scope)))
		if lCon, ok := lt.(*types.TypeCon); ok && lCon.Name == "Str" {
			if rCon, ok := rt.(*types.TypeCon); ok && rCon.Name == "Str" {
				return types.Str
			}
		}
		if lArr, ok := lt.(*types.TypeArray); ok {
			if rArr, ok := rt.(*types.TypeArray); ok {
				return &types.TypeArray{Element: c.unify(lArr.Element, rArr.Element, v.Span(), v.ID())}
			}
		}
		c.Diags.Emit(diag.SevError, diag.E2016, "++ requires two strings or two arrays", v.Span(), v.ID())
		return c.freshTypeVar("")

	default:
		c.Diags.Emit(diag.SevError, diag.E2016, "unsupported operator: "+v.Op, v.Span(), v.ID())
		return c.freshTypeVar("")
	}
}

func (c *Checker) requireNumeric(t types.Type, at ast.Expr) {
	if !types.IsNumeric(types.GetBase(t)) {
		c.Diags.Emit(diag.SevError, diag.E2016, "expected a numeric operand, got "+t.String(), at.Span(), at.ID())
	}
}

func (c *Checker) inferUnary(v *ast.Unary, scope Scope) types.Type {
	t := c.apply(c.inferExpr(v.Operand, scope))
	switch v.Op {
	case "-":
		c.requireNumeric(t, v.Operand)
		return t
	case "!", "¬":
		return c.unify(types.Bool, t, v.Span(), v.ID())
	default:
		c.Diags.Emit(diag.SevError, diag.E2016, "unsupported unary operator: "+v.Op, v.Span(), v.ID())
		return c.freshTypeVar("")
	}
}

func (c *Checker) inferCall(v *ast.Call, scope Scope) types.Type {
	calleeType := c.apply(c.inferExpr(v.Callee, scope))

	fn, ok := calleeType.(*types.TypeFn)
	if !ok {
		if tv, isVar := calleeType.(*types.TypeVar); isVar {
			params := make([]types.Type, len(v.Args))
			for i := range params {
				params[i] = c.freshTypeVar("")
			}
			ret := c.freshTypeVar("")
			synthesized := &types.TypeFn{Params: params, Return: ret}
			c.unify(tv, synthesized, v.Span(), v.ID())
			fn = synthesized
		} else {
			c.Diags.Emit(diag.SevError, diag.E2005, "not callable: "+calleeType.String(), v.Callee.Span(), v.Callee.ID())
			for _, a := range v.Args {
				c.inferExpr(a, scope)
			}
			return c.freshTypeVar("")
		}
	}

	if len(v.Args) != len(fn.Params) {
		d := c.Diags.Emit(diag.SevError, diag.E2002, fmtArity(len(fn.Params), len(v.Args)), v.Span(), v.ID())
		d.Structured = map[string]any{"expected": len(fn.Params), "actual": len(v.Args)}
	}
	for i, a := range v.Args {
		if i >= len(fn.Params) {
			c.inferExpr(a, scope)
			continue
		}
		c.checkArgument(fn.Params[i], a, scope)
	}
	c.checkEffectsAllowed(fn.Effects, v)
	return c.apply(fn.Return)
}

// checkEffectsAllowed is spec §4.I/§6's E4001: a call that performs an
// effect the enclosing function hasn't declared. Per spec §9's open
// question, effect inference here is intentionally shallow — it checks
// the effects the callee's own signature declares, not effects that
// propagate transitively through further calls the callee makes.
func (c *Checker) checkEffectsAllowed(effects []string, v *ast.Call) {
	if c.fn == nil {
		return
	}
	for _, eff := range effects {
		if !c.fn.hasEffect(eff) {
			d := c.Diags.Emit(diag.SevError, diag.E4001, "call requires effect "+eff+" not declared by enclosing function "+c.fn.name, v.Span(), v.ID())
			d.Structured = map[string]any{"effect": eff, "function": c.fn.name}
		}
	}
}

func fmtArity(expected, actual int) string {
	return "arity mismatch: expected " + strconv.Itoa(expected) + " arguments, got " + strconv.Itoa(actual)
}

// checkArgument infers argExpr's type, unifies it against paramType, and —
// when paramType is a TypeRefined — enforces the refinement obligation.
func (c *Checker) checkArgument(paramType types.Type, argExpr ast.Expr, scope Scope) {
	argType := c.inferExpr(argExpr, scope)
	refined, isRefined := paramType.(*types.TypeRefined)
	if isRefined {
		c.unify(refined.Base, argType, argExpr.Span(), argExpr.ID())
		c.enforceRefinement(refined, argExpr, scope, argExpr.Span(), argExpr.ID())
		return
	}
	c.unify(paramType, argType, argExpr.Span(), argExpr.ID())
}

func (c *Checker) inferLambda(v *ast.Lambda, scope Scope) types.Type {
	child := scope.Child()
	params := make([]types.Type, len(v.Params))
	for i, p := range v.Params {
		var pt types.Type
		if p.Type != nil {
			pt = c.resolveTypeExpr(p.Type, child.TC)
		} else {
			pt = c.freshTypeVar("")
		}
		params[i] = pt
		child.TC.Define(p.Name, &tctx.Binding{
			Scheme: &types.TypeScheme{Type: pt},
			Span:   p.Span(),
			Source: tctx.SourceParameter,
		})
	}
	body := c.apply(c.inferExpr(v.Body, child))
	return &types.TypeFn{Params: params, Return: body}
}

func (c *Checker) inferIf(v *ast.If, scope Scope) types.Type {
	condType := c.inferExpr(v.Cond, scope)
	c.unify(types.Bool, condType, v.Cond.Span(), v.Cond.ID())

	pred := lowerPredicateExpr(v.Cond)
	thenScope := Scope{TC: scope.TC.Child(), RC: scope.RC.WithFact(pred, "if-condition")}
	thenType := c.apply(c.inferExpr(v.Then, thenScope))

	if v.Else == nil {
		c.unify(types.Unit, thenType, v.Then.Span(), v.Then.ID())
		return types.Unit
	}
	elseScope := Scope{TC: scope.TC.Child(), RC: scope.RC.WithNegatedFact(pred, "if-condition")}
	elseType := c.apply(c.inferExpr(v.Else, elseScope))
	return c.unify(thenType, elseType, v.Span(), v.ID())
}

func (c *Checker) inferMatch(v *ast.Match, scope Scope) types.Type {
	scrutinee := c.apply(c.inferExpr(v.Scrutinee, scope))

	var result types.Type
	for i := range v.Arms {
		arm := &v.Arms[i]
		armScope := scope.Child()
		c.bindPattern(arm.Pattern, scrutinee, armScope)
		if arm.Guard != nil {
			guardType := c.inferExpr(arm.Guard, armScope)
			c.unify(types.Bool, guardType, arm.Guard.Span(), arm.Guard.ID())
		}
		bodyType := c.apply(c.inferExpr(arm.Body, armScope))
		if result == nil {
			result = bodyType
		} else {
			result = c.unify(result, bodyType, v.Span(), v.ID())
		}
	}
	if result == nil {
		result = c.freshTypeVar("")
	}

	cov := exhaustive.Check(v.Arms, scrutinee, scope.TC)
	if !cov.Exhaustive {
		d := c.Diags.Emit(diag.SevError, diag.E2015, "non-exhaustive match", v.Span(), v.ID())
		missing := make([]map[string]any, len(cov.Missing))
		for i, m := range cov.Missing {
			missing[i] = map[string]any{
				"description": m.Description,
				"variantName": m.VariantName,
				"typeName":    m.TypeName,
				"hasPayload":  m.HasPayload,
			}
		}
		d.Structured = map[string]any{"missing_patterns": missing}
	}
	return result
}

func (c *Checker) inferBlock(v *ast.Block, scope Scope) types.Type {
	child := scope.Child()
	for _, s := range v.Stmts {
		c.checkStmt(s, child)
	}
	if v.Tail == nil {
		return types.Unit
	}
	return c.apply(c.inferExpr(v.Tail, child))
}

func (c *Checker) inferArrayLit(v *ast.ArrayLit, scope Scope) types.Type {
	if len(v.Elements) == 0 {
		return &types.TypeArray{Element: c.freshTypeVar("")}
	}
	elem := c.apply(c.inferExpr(v.Elements[0], scope))
	for _, el := range v.Elements[1:] {
		elem = c.unify(elem, c.inferExpr(el, scope), el.Span(), el.ID())
	}
	return &types.TypeArray{Element: elem}
}

func (c *Checker) inferIndex(v *ast.Index, scope Scope) types.Type {
	targetType := c.apply(c.inferExpr(v.Target, scope))
	idxType := c.inferExpr(v.Idx, scope)

	switch base := types.GetBase(targetType).(type) {
	case *types.TypeArray:
		c.unify(types.Int, idxType, v.Idx.Span(), v.Idx.ID())
		return base.Element
	case *types.TypeTuple:
		c.unify(types.Int, idxType, v.Idx.Span(), v.Idx.ID())
		return c.freshTypeVar("")
	default:
		elem := c.freshTypeVar("")
		c.unify(targetType, &types.TypeArray{Element: elem}, v.Target.Span(), v.Target.ID())
		c.unify(types.Int, idxType, v.Idx.Span(), v.Idx.ID())
		return elem
	}
}

func (c *Checker) inferField(v *ast.Field, scope Scope) types.Type {
	targetType := c.apply(c.inferExpr(v.Target, scope))
	base := types.GetBase(targetType)

	if rec, ok := base.(*types.TypeRecord); ok {
		if ft, ok := rec.FieldType(v.Name); ok {
			return ft
		}
		return c.unknownField(v, fieldNames(rec))
	}

	if def, ok := resolveRecordDef(base, scope.TC); ok {
		if ft, ok := def.RecordFields[v.Name]; ok {
			return ft
		}
		return c.unknownField(v, def.FieldOrder)
	}

	c.Diags.Emit(diag.SevError, diag.E2011, "not a record: "+targetType.String(), v.Target.Span(), v.Target.ID())
	return c.freshTypeVar("")
}

func resolveRecordDef(t types.Type, tc *tctx.Context) (*tctx.TypeDef, bool) {
	name := ""
	switch v := t.(type) {
	case *types.TypeCon:
		name = v.Name
	case *types.TypeApp:
		name = v.Con
	default:
		return nil, false
	}
	def, ok := tc.LookupType(name)
	if !ok || def.Kind != tctx.DefRecord {
		return nil, false
	}
	return def, true
}

func fieldNames(r *types.TypeRecord) []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = f.Name
	}
	return out
}

func (c *Checker) unknownField(v *ast.Field, candidates []string) types.Type {
	d := c.Diags.Emit(diag.SevError, diag.E2004, "unknown field: "+v.Name, v.Span(), v.ID())
	if matches := similarity.FindSimilar(v.Name, candidates, 0, 0); len(matches) > 0 {
		d.Structured = map[string]any{"similar_fields": matchNames(matches)}
	}
	return c.freshTypeVar("")
}

func (c *Checker) inferPropagate(v *ast.Propagate, scope Scope) types.Type {
	operand := types.GetBase(c.apply(c.inferExpr(v.Operand, scope)))
	app, ok := operand.(*types.TypeApp)
	if !ok {
		c.Diags.Emit(diag.SevError, diag.E2012, "invalid propagate: operand is not Option or Result", v.Operand.Span(), v.Operand.ID())
		return c.freshTypeVar("")
	}
	switch app.Con {
	case "Option":
		if len(app.Args) == 1 {
			return app.Args[0]
		}
	case "Result":
		if len(app.Args) == 2 {
			if !c.fn.hasEffect("Err") {
				d := c.Diags.Emit(diag.SevError, diag.E4002, "propagate requires the enclosing function to declare the Err effect", v.Span(), v.ID())
				d.Structured = map[string]any{"effect": "Err", "function": c.fn.name}
			}
			return app.Args[0]
		}
	}
	c.Diags.Emit(diag.SevError, diag.E2012, "invalid propagate: operand is not Option or Result", v.Operand.Span(), v.Operand.ID())
	return c.freshTypeVar("")
}

func (c *Checker) inferPipe(v *ast.Pipe, scope Scope) types.Type {
	rightType := c.apply(c.inferExpr(v.Right, scope))

	fn, ok := rightType.(*types.TypeFn)
	if !ok {
		c.Diags.Emit(diag.SevError, diag.E2005, "not callable: "+rightType.String(), v.Right.Span(), v.Right.ID())
		c.inferExpr(v.Left, scope)
		return c.freshTypeVar("")
	}
	if len(fn.Params) != 1 {
		d := c.Diags.Emit(diag.SevError, diag.E2002, fmtArity(1, len(fn.Params)), v.Span(), v.ID())
		d.Structured = map[string]any{"expected": 1, "actual": len(fn.Params)}
		c.inferExpr(v.Left, scope)
		return c.apply(fn.Return)
	}
	c.checkArgument(fn.Params[0], v.Left, scope)
	return c.apply(fn.Return)
}
