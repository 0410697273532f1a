// Package exhaustive implements the exhaustiveness checker (component F):
// coverage analysis for a match's arms against its scrutinee type. The
// case-grouping approach (collect the declared alternatives, collect what
// the arms cover, diff) is adapted from the teacher's decision-tree
// pattern-matrix compiler (sunholo-data-ailang/internal/dtree), stripped
// down from "compile an executable tree" to "report what's missing".
package exhaustive

import (
	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/tctx"
	"github.com/axonlang/clank/internal/types"
)

// Missing describes one uncovered alternative, with enough structure for
// the repair generator to synthesize a concrete arm.
type Missing struct {
	Description string
	VariantName string
	TypeName    string
	HasPayload  bool
	FieldNames  []string
}

// Result is the outcome of Check.
type Result struct {
	Exhaustive  bool
	Missing     []Missing
	HasCatchAll bool
}

// Check analyzes arms against scrutinee. tc resolves named/alias types to
// their declarations (nil is fine for scrutinees that never need
// resolution, e.g. Bool/Unit/tuples).
func Check(arms []ast.MatchArm, scrutinee types.Type, tc *tctx.Context) Result {
	covered := coveredArms(arms)
	hasCatchAll := false
	for _, a := range covered {
		if isCatchAll(a.Pattern) {
			hasCatchAll = true
			break
		}
	}

	base := types.GetBase(scrutinee)

	if def, typeName, ok := resolveSumDef(base, tc); ok {
		return checkSum(covered, def, typeName, hasCatchAll)
	}

	if con, ok := base.(*types.TypeCon); ok && con.Name == "Bool" {
		return checkBool(covered, hasCatchAll)
	}

	if con, ok := base.(*types.TypeCon); ok && con.Name == "Unit" {
		if len(covered) == 0 {
			return Result{Exhaustive: false, Missing: []Missing{{Description: "()"}}, HasCatchAll: false}
		}
		return Result{Exhaustive: true, HasCatchAll: true}
	}

	if _, ok := base.(*types.TypeTuple); ok {
		if hasCatchAll {
			return Result{Exhaustive: true, HasCatchAll: true}
		}
		return Result{
			Exhaustive:  false,
			HasCatchAll: false,
			Missing:     []Missing{{Description: "tuple patterns require a catch-all arm (full product coverage is not attempted)"}},
		}
	}

	// All other types: never exhaustive without a catch-all.
	if hasCatchAll {
		return Result{Exhaustive: true, HasCatchAll: true}
	}
	return Result{
		Exhaustive:  false,
		HasCatchAll: false,
		Missing:     []Missing{{Description: "no catch-all arm for this type"}},
	}
}

// coveredArms drops guarded arms: a guard may fail at runtime, so a
// guarded arm never counts toward coverage (spec §4.F).
func coveredArms(arms []ast.MatchArm) []ast.MatchArm {
	out := make([]ast.MatchArm, 0, len(arms))
	for _, a := range arms {
		if a.Guard == nil {
			out = append(out, a)
		}
	}
	return out
}

func isCatchAll(p ast.Pattern) bool {
	switch p.(type) {
	case *ast.WildcardPattern, *ast.Ident:
		return true
	default:
		return false
	}
}

// resolveSumDef follows TypeCon/TypeApp names through alias chains to
// find a sum TypeDef, if the scrutinee resolves to one.
func resolveSumDef(t types.Type, tc *tctx.Context) (*tctx.TypeDef, string, bool) {
	if tc == nil {
		return nil, "", false
	}
	name := ""
	switch v := t.(type) {
	case *types.TypeCon:
		name = v.Name
	case *types.TypeApp:
		name = v.Con
	default:
		return nil, "", false
	}
	for i := 0; i < 16; i++ { // bounded alias-chain resolution
		def, ok := tc.LookupType(name)
		if !ok {
			return nil, "", false
		}
		if def.Kind == tctx.DefSum {
			return def, name, true
		}
		if def.Kind != tctx.DefAlias {
			return nil, "", false
		}
		next, ok := aliasTargetName(def)
		if !ok {
			return nil, "", false
		}
		name = next
	}
	return nil, "", false
}

func aliasTargetName(def *tctx.TypeDef) (string, bool) {
	switch v := def.AliasTarget.(type) {
	case *types.TypeCon:
		return v.Name, true
	case *types.TypeApp:
		return v.Con, true
	default:
		return "", false
	}
}

func checkSum(arms []ast.MatchArm, def *tctx.TypeDef, typeName string, hasCatchAll bool) Result {
	coveredNames := map[string]bool{}
	for _, a := range arms {
		if vp, ok := a.Pattern.(*ast.VariantPattern); ok {
			coveredNames[vp.Variant] = true
		}
	}
	var missing []Missing
	for _, variantName := range def.VariantOrder {
		if coveredNames[variantName] {
			continue
		}
		variant := def.SumVariants[variantName]
		missing = append(missing, Missing{
			Description: variantName,
			VariantName: variantName,
			TypeName:    typeName,
			HasPayload:  len(variant.Fields) > 0,
			FieldNames:  variant.FieldNames,
		})
	}
	return Result{
		Exhaustive:  len(missing) == 0 || hasCatchAll,
		Missing:     missing,
		HasCatchAll: hasCatchAll,
	}
}

func checkBool(arms []ast.MatchArm, hasCatchAll bool) Result {
	sawTrue, sawFalse := false, false
	for _, a := range arms {
		lp, ok := a.Pattern.(*ast.LiteralPattern)
		if !ok || lp.Value.LKind != ast.BoolLit {
			continue
		}
		if lp.Value.BoolVal {
			sawTrue = true
		} else {
			sawFalse = true
		}
	}
	var missing []Missing
	if !sawTrue {
		missing = append(missing, Missing{Description: "true"})
	}
	if !sawFalse {
		missing = append(missing, Missing{Description: "false"})
	}
	return Result{
		Exhaustive:  len(missing) == 0 || hasCatchAll,
		Missing:     missing,
		HasCatchAll: hasCatchAll,
	}
}
