package check

import (
	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
	"github.com/axonlang/clank/internal/tctx"
	"github.com/axonlang/clank/internal/types"
)

// resolveSumDef mirrors internal/exhaustive's alias-following lookup; it's
// duplicated rather than imported because exhaustive's version is
// unexported and the two packages resolve the same shape for different
// purposes (coverage checking vs. payload-type binding).
func resolveSumDef(t types.Type, tc *tctx.Context) (*tctx.TypeDef, bool) {
	name := ""
	switch v := t.(type) {
	case *types.TypeCon:
		name = v.Name
	case *types.TypeApp:
		name = v.Con
	default:
		return nil, false
	}
	for i := 0; i < 16; i++ {
		def, ok := tc.LookupType(name)
		if !ok {
			return nil, false
		}
		if def.Kind == tctx.DefSum {
			return def, true
		}
		if def.Kind != tctx.DefAlias {
			return nil, false
		}
		switch v := def.AliasTarget.(type) {
		case *types.TypeCon:
			name = v.Name
		case *types.TypeApp:
			name = v.Con
		default:
			return nil, false
		}
	}
	return nil, false
}

// bindPattern binds every identifier introduced by p against scrutinee,
// defining them in scope.TC with SourceLet. Used for match arms, `for`
// loop patterns, and (via the let-specific wrapper in stmt.go) `let`.
func (c *Checker) bindPattern(p ast.Pattern, scrutinee types.Type, scope Scope) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return

	case *ast.Ident:
		scope.TC.Define(pat.Name, &tctx.Binding{
			Scheme: &types.TypeScheme{Type: scrutinee},
			Span:   pat.Span(),
			Source: tctx.SourceLet,
		})

	case *ast.LiteralPattern:
		litType := c.literalType(pat.Value)
		c.unify(scrutinee, litType, pat.Span(), pat.ID())

	case *ast.TuplePattern:
		base := types.GetBase(c.apply(scrutinee))
		tup, ok := base.(*types.TypeTuple)
		if !ok || len(tup.Elements) != len(pat.Elements) {
			for _, el := range pat.Elements {
				c.bindPattern(el, c.freshTypeVar(""), scope)
			}
			return
		}
		for i, el := range pat.Elements {
			c.bindPattern(el, tup.Elements[i], scope)
		}

	case *ast.VariantPattern:
		base := types.GetBase(c.apply(scrutinee))
		def, ok := resolveSumDef(base, scope.TC)
		if !ok {
			c.Diags.Emit(diag.SevError, diag.E1006, "variant not found: "+pat.Variant, pat.Span(), pat.ID())
			for _, a := range pat.Args {
				c.bindPattern(a, c.freshTypeVar(""), scope)
			}
			return
		}
		variant, ok := def.SumVariants[pat.Variant]
		if !ok {
			c.Diags.Emit(diag.SevError, diag.E1006, "variant not found: "+pat.Variant, pat.Span(), pat.ID())
			for _, a := range pat.Args {
				c.bindPattern(a, c.freshTypeVar(""), scope)
			}
			return
		}
		for i, a := range pat.Args {
			if i < len(variant.Fields) {
				c.bindPattern(a, variant.Fields[i], scope)
			} else {
				c.bindPattern(a, c.freshTypeVar(""), scope)
			}
		}
	}
}

func (c *Checker) literalType(l *ast.Literal) types.Type {
	switch l.LKind {
	case ast.IntLit:
		switch l.IntSuffix {
		case "i32":
			return types.Int32
		case "i64":
			return types.Int64
		default:
			return types.Int
		}
	case ast.FloatLit:
		return types.Float
	case ast.StringLit:
		return types.Str
	case ast.BoolLit:
		return types.Bool
	default:
		return types.Unit
	}
}
