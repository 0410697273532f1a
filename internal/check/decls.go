package check

import (
	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
	"github.com/axonlang/clank/internal/similarity"
	"github.com/axonlang/clank/internal/tctx"
	"github.com/axonlang/clank/internal/types"
)

// namedType builds the semantic type a declaration's own name denotes:
// a bare TypeCon for a non-parametric declaration, a TypeApp over its type
// parameters (as rigid placeholder vars, scheme-template style) otherwise.
func namedType(name string, typeParams []string) types.Type {
	if len(typeParams) == 0 {
		return &types.TypeCon{Name: name}
	}
	args := make([]types.Type, len(typeParams))
	for i, p := range typeParams {
		args[i] = &types.TypeVar{Name: p}
	}
	return &types.TypeApp{Con: name, Args: args}
}

// collectTypeDecls is pass 1: register every alias/record/sum declaration's
// TypeDef, plus a constructor Binding for each record and sum variant.
func (c *Checker) collectTypeDecls(prog *ast.Program, tc *tctx.Context) {
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.AliasDecl:
			c.defineAlias(decl, tc)
		case *ast.RecordDecl:
			c.defineRecord(decl, tc)
		case *ast.SumDecl:
			c.defineSum(decl, tc)
		}
	}
}

// templateScope returns a child of tc with decl's type parameters bound to
// scheme-template placeholder vars (Name set, no ID) — the same convention
// tctx/builtins.go uses, so the resulting TypeDef/Scheme can later be
// instantiated by name regardless of what ids are in play at any one call
// site.
func templateScope(tc *tctx.Context, typeParams []string) *tctx.Context {
	scope := tc.Child()
	for _, p := range typeParams {
		scope.BindTypeParam(p, &types.TypeVar{Name: p})
	}
	return scope
}

func (c *Checker) defineAlias(decl *ast.AliasDecl, tc *tctx.Context) {
	scope := templateScope(tc, decl.TypeParams)
	target := c.resolveTypeExpr(decl.Target, scope)
	if !tc.DefineType(decl.Name, &tctx.TypeDef{
		Kind:        tctx.DefAlias,
		TypeParams:  decl.TypeParams,
		Span:        decl.Span(),
		AliasTarget: target,
	}) {
		c.Diags.Emit(diag.SevError, diag.E1002, "duplicate type definition: "+decl.Name, decl.Span(), decl.ID())
	}
}

func (c *Checker) defineRecord(decl *ast.RecordDecl, tc *tctx.Context) {
	scope := templateScope(tc, decl.TypeParams)
	fields := make(map[string]types.Type, len(decl.Fields))
	order := make([]string, len(decl.Fields))
	paramTypes := make([]types.Type, len(decl.Fields))
	for i, f := range decl.Fields {
		ft := c.resolveTypeExpr(f.Type, scope)
		fields[f.Name] = ft
		order[i] = f.Name
		paramTypes[i] = ft
	}
	if !tc.DefineType(decl.Name, &tctx.TypeDef{
		Kind:         tctx.DefRecord,
		TypeParams:   decl.TypeParams,
		Span:         decl.Span(),
		RecordFields: fields,
		FieldOrder:   order,
	}) {
		c.Diags.Emit(diag.SevError, diag.E1002, "duplicate type definition: "+decl.Name, decl.Span(), decl.ID())
		return
	}

	ctor := &types.TypeFn{Params: paramTypes, Return: namedType(decl.Name, decl.TypeParams)}
	if !tc.Define(decl.Name, &tctx.Binding{
		Scheme: &types.TypeScheme{Vars: decl.TypeParams, Type: ctor},
		Span:   decl.Span(),
		Source: tctx.SourceFunction,
	}) {
		c.Diags.Emit(diag.SevError, diag.E1002, "duplicate definition: "+decl.Name, decl.Span(), decl.ID())
	}
}

func (c *Checker) defineSum(decl *ast.SumDecl, tc *tctx.Context) {
	scope := templateScope(tc, decl.TypeParams)
	variants := make(map[string]tctx.SumVariantDef, len(decl.Variants))
	order := make([]string, len(decl.Variants))
	for i, v := range decl.Variants {
		fieldTypes := make([]types.Type, len(v.Fields))
		for j, ft := range v.Fields {
			fieldTypes[j] = c.resolveTypeExpr(ft, scope)
		}
		variants[v.Name] = tctx.SumVariantDef{Fields: fieldTypes, FieldNames: v.FieldNames}
		order[i] = v.Name
	}
	if !tc.DefineType(decl.Name, &tctx.TypeDef{
		Kind:         tctx.DefSum,
		TypeParams:   decl.TypeParams,
		Span:         decl.Span(),
		SumVariants:  variants,
		VariantOrder: order,
	}) {
		c.Diags.Emit(diag.SevError, diag.E1002, "duplicate type definition: "+decl.Name, decl.Span(), decl.ID())
		return
	}

	result := namedType(decl.Name, decl.TypeParams)
	for _, v := range decl.Variants {
		var sch *types.TypeScheme
		if len(v.Fields) == 0 {
			sch = &types.TypeScheme{Vars: decl.TypeParams, Type: result}
		} else {
			sch = &types.TypeScheme{Vars: decl.TypeParams, Type: &types.TypeFn{
				Params: variants[v.Name].Fields,
				Return: result,
			}}
		}
		if !tc.Define(v.Name, &tctx.Binding{Scheme: sch, Span: decl.Span(), Source: tctx.SourceFunction}) {
			c.Diags.Emit(diag.SevError, diag.E1002, "duplicate definition: "+v.Name, decl.Span(), decl.ID())
		}
	}
}

// collectFuncSigs is pass 2: bind each function name to a (possibly
// polymorphic) scheme before any body is checked, so mutual recursion and
// forward references resolve.
func (c *Checker) collectFuncSigs(prog *ast.Program, tc *tctx.Context) {
	for _, d := range prog.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok {
			continue
		}
		scope := templateScope(tc, fd.TypeParams)
		params := make([]types.Type, len(fd.Params))
		for i, p := range fd.Params {
			if p.Type != nil {
				params[i] = c.resolveTypeExpr(p.Type, scope)
			} else {
				params[i] = &types.TypeVar{Name: p.Name}
			}
		}
		var ret types.Type
		if fd.ReturnType != nil {
			ret = c.resolveTypeExpr(fd.ReturnType, scope)
		} else {
			ret = &types.TypeVar{Name: fd.Name + ".return"}
		}
		sch := &types.TypeScheme{Vars: fd.TypeParams, Type: &types.TypeFn{Params: params, Return: ret, Effects: fd.Effects}}
		if !tc.Define(fd.Name, &tctx.Binding{Scheme: sch, Span: fd.Span(), Source: tctx.SourceFunction}) {
			c.Diags.Emit(diag.SevError, diag.E1002, "duplicate definition: "+fd.Name, fd.Span(), fd.ID())
		}
	}
}

// resolveTypeExpr lowers a syntactic type annotation into a semantic Type,
// emitting E1005 (with similar_types suggestions) for an unresolved name.
func (c *Checker) resolveTypeExpr(te ast.TypeExpr, tc *tctx.Context) types.Type {
	if te == nil {
		return c.freshTypeVar("")
	}
	switch t := te.(type) {
	case *ast.TypeName:
		if builtin, ok := builtinTypeCon(t.Name); ok {
			return builtin
		}
		if v, ok := tc.LookupTypeParam(t.Name); ok {
			return v
		}
		if _, ok := tc.LookupType(t.Name); ok {
			return &types.TypeCon{Name: t.Name}
		}
		d := c.Diags.Emit(diag.SevError, diag.E1005, "unresolved type: "+t.Name, t.Span(), t.ID())
		if matches := similarity.FindSimilar(t.Name, tc.AllTypeNames(), 0, 0); len(matches) > 0 {
			d.Structured = map[string]any{"similar_types": matchNames(matches)}
		}
		return &types.TypeCon{Name: t.Name}

	case *ast.TypeAppExpr:
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = c.resolveTypeExpr(a, tc)
		}
		if _, ok := tc.LookupType(t.Name); !ok {
			d := c.Diags.Emit(diag.SevError, diag.E1005, "unresolved type: "+t.Name, t.Span(), t.ID())
			if matches := similarity.FindSimilar(t.Name, tc.AllTypeNames(), 0, 0); len(matches) > 0 {
				d.Structured = map[string]any{"similar_types": matchNames(matches)}
			}
		}
		return &types.TypeApp{Con: t.Name, Args: args}

	case *ast.TypeFnExpr:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.resolveTypeExpr(p, tc)
		}
		return &types.TypeFn{Params: params, Return: c.resolveTypeExpr(t.Return, tc), Effects: t.Effects}

	case *ast.TypeTupleExpr:
		elems := make([]types.Type, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = c.resolveTypeExpr(e, tc)
		}
		return &types.TypeTuple{Elements: elems}

	case *ast.TypeArrayExpr:
		return &types.TypeArray{Element: c.resolveTypeExpr(t.Element, tc)}

	case *ast.TypeRecordExpr:
		fields := make([]types.RecordField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = types.RecordField{Name: f.Name, Type: c.resolveTypeExpr(f.Type, tc)}
		}
		return &types.TypeRecord{Fields: fields, IsOpen: t.IsOpen}

	case *ast.TypeRefinedExpr:
		base := c.resolveTypeExpr(t.BaseType, tc)
		pred := lowerPredicateExpr(t.Pred)
		return &types.TypeRefined{Base: base, VarName: t.VarName, Pred: pred}

	default:
		return c.freshTypeVar("")
	}
}

func builtinTypeCon(name string) (types.Type, bool) {
	switch name {
	case "Int":
		return types.Int, true
	case "Int32":
		return types.Int32, true
	case "Int64":
		return types.Int64, true
	case "Nat":
		return types.Nat, true
	case "Float":
		return types.Float, true
	case "Bool":
		return types.Bool, true
	case "Str":
		return types.Str, true
	case "Unit":
		return types.Unit, true
	}
	return nil, false
}

func matchNames(ms []similarity.Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}
