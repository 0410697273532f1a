// Package types is the semantic type universe (component A): the Type,
// Predicate and Term sums, type schemes, structural equality, and
// formatting. Every constructor here is pure; nothing in this package
// mutates a Type in place — substitution always produces a new value.
package types

import "fmt"

// Type is the closed sum of semantic types. Only the types defined in this
// file implement it.
type Type interface {
	isType()
	String() string
}

// TypeVar is an unresolved type variable. Ids are drawn from a Checker
// instance's counter (see internal/check), never a package-global one —
// the only process-wide counter this system used to have, per spec §9,
// now lives on the instance that owns a single compilation.
type TypeVar struct {
	ID   int
	Name string // display name, optional ("" if synthesized)
}

func (*TypeVar) isType() {}
func (v *TypeVar) String() string {
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprintf("t%d", v.ID)
}

// TypeCon is a named primitive or user-defined nullary constructor.
type TypeCon struct {
	Name string
}

func (*TypeCon) isType()        {}
func (c *TypeCon) String() string { return c.Name }

// Well-known primitive constructors.
var (
	Int    = &TypeCon{Name: "Int"}
	Int32  = &TypeCon{Name: "Int32"}
	Int64  = &TypeCon{Name: "Int64"}
	Nat    = &TypeCon{Name: "Nat"}
	Float  = &TypeCon{Name: "Float"}
	Bool   = &TypeCon{Name: "Bool"}
	Str    = &TypeCon{Name: "Str"}
	Unit   = &TypeCon{Name: "Unit"}
)

// TypeApp is a constructor applied to a list of argument types, e.g.
// Option[Int].
type TypeApp struct {
	Con  string
	Args []Type
}

func (*TypeApp) isType() {}
func (a *TypeApp) String() string {
	s := a.Con + "["
	for i, arg := range a.Args {
		if i > 0 {
			s += ", "
		}
		s += arg.String()
	}
	return s + "]"
}

// TypeFn is a function type. Effects is an unordered set of effect names;
// nil means "no declared effects" (distinct from an empty-but-non-nil set
// only at the serialization boundary).
type TypeFn struct {
	Params  []Type
	Return  Type
	Effects []string
}

func (*TypeFn) isType() {}
func (f *TypeFn) String() string {
	s := "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	s += ") -> " + f.Return.String()
	if len(f.Effects) > 0 {
		s += " ! " + joinStrings(f.Effects, "+")
	}
	return s
}

// TypeTuple is a fixed-arity product.
type TypeTuple struct {
	Elements []Type
}

func (*TypeTuple) isType() {}
func (t *TypeTuple) String() string {
	s := "("
	for i, e := range t.Elements {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// TypeArray is a homogeneous array.
type TypeArray struct {
	Element Type
}

func (*TypeArray) isType()        {}
func (a *TypeArray) String() string { return "[" + a.Element.String() + "]" }

// RecordField is one field of a TypeRecord.
type RecordField struct {
	Name string
	Type Type
}

// TypeRecord is a record type. IsOpen marks it as accepting additional
// fields for width-subtyping purposes (see internal/unify).
type TypeRecord struct {
	Fields []RecordField
	IsOpen bool
}

func (*TypeRecord) isType() {}
func (r *TypeRecord) String() string {
	s := "{"
	for i, f := range r.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.Name + ": " + f.Type.String()
	}
	if r.IsOpen {
		if len(r.Fields) > 0 {
			s += ", "
		}
		s += "..."
	}
	return s + "}"
}

func (r *TypeRecord) FieldType(name string) (Type, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// TypeRefined is a base type constrained by a predicate over a bound
// variable name, e.g. Int{x > 0}.
type TypeRefined struct {
	Base    Type
	VarName string
	Pred    Predicate
}

func (*TypeRefined) isType() {}
func (r *TypeRefined) String() string {
	return fmt.Sprintf("%s{%s: %s}", r.Base.String(), r.VarName, r.Pred.String())
}

// TypeNever is the bottom type: it unifies unilaterally with any type,
// without an occurs-check (invariant I6).
type TypeNever struct{}

func (*TypeNever) isType()        {}
func (*TypeNever) String() string { return "Never" }

func joinStrings(ss []string, sep string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += sep
		}
		out += s
	}
	return out
}

// GetBase strips TypeRefined layers recursively, returning the first
// non-refined base type.
func GetBase(t Type) Type {
	for {
		r, ok := t.(*TypeRefined)
		if !ok {
			return t
		}
		t = r.Base
	}
}

// IsNumeric reports whether t (after stripping refinements) is one of the
// numeric primitive constructors.
func IsNumeric(t Type) bool {
	c, ok := GetBase(t).(*TypeCon)
	if !ok {
		return false
	}
	switch c.Name {
	case "Int", "Int32", "Int64", "Nat", "Float":
		return true
	}
	return false
}

// IsInteger reports whether t (after stripping refinements) is one of the
// integral primitive constructors (excludes Float).
func IsInteger(t Type) bool {
	c, ok := GetBase(t).(*TypeCon)
	if !ok {
		return false
	}
	switch c.Name {
	case "Int", "Int32", "Int64", "Nat":
		return true
	}
	return false
}

// TypesEqual is structural equality. Refined types are equal iff their
// base types are equal and their predicates are syntactically equal
// (per spec §4.A — not semantically/solver equal).
func TypesEqual(a, b Type) bool {
	switch av := a.(type) {
	case *TypeVar:
		bv, ok := b.(*TypeVar)
		return ok && av.ID == bv.ID
	case *TypeCon:
		bv, ok := b.(*TypeCon)
		return ok && av.Name == bv.Name
	case *TypeApp:
		bv, ok := b.(*TypeApp)
		if !ok || av.Con != bv.Con || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !TypesEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *TypeFn:
		bv, ok := b.(*TypeFn)
		if !ok || len(av.Params) != len(bv.Params) || !TypesEqual(av.Return, bv.Return) {
			return false
		}
		if len(av.Effects) != len(bv.Effects) {
			return false
		}
		for i := range av.Params {
			if !TypesEqual(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		for i := range av.Effects {
			if av.Effects[i] != bv.Effects[i] {
				return false
			}
		}
		return true
	case *TypeTuple:
		bv, ok := b.(*TypeTuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !TypesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *TypeArray:
		bv, ok := b.(*TypeArray)
		return ok && TypesEqual(av.Element, bv.Element)
	case *TypeRecord:
		bv, ok := b.(*TypeRecord)
		if !ok || av.IsOpen != bv.IsOpen || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name || !TypesEqual(av.Fields[i].Type, bv.Fields[i].Type) {
				return false
			}
		}
		return true
	case *TypeRefined:
		bv, ok := b.(*TypeRefined)
		return ok && TypesEqual(av.Base, bv.Base) && av.VarName == bv.VarName && PredicatesEqual(av.Pred, bv.Pred)
	case *TypeNever:
		_, ok := b.(*TypeNever)
		return ok
	}
	return false
}

// FreeTypeVars returns the set of variable ids reachable in t.
func FreeTypeVars(t Type) map[int]bool {
	out := map[int]bool{}
	collectFreeVars(t, out)
	return out
}

func collectFreeVars(t Type, out map[int]bool) {
	switch v := t.(type) {
	case *TypeVar:
		out[v.ID] = true
	case *TypeApp:
		for _, a := range v.Args {
			collectFreeVars(a, out)
		}
	case *TypeFn:
		for _, p := range v.Params {
			collectFreeVars(p, out)
		}
		collectFreeVars(v.Return, out)
	case *TypeTuple:
		for _, e := range v.Elements {
			collectFreeVars(e, out)
		}
	case *TypeArray:
		collectFreeVars(v.Element, out)
	case *TypeRecord:
		for _, f := range v.Fields {
			collectFreeVars(f.Type, out)
		}
	case *TypeRefined:
		collectFreeVars(v.Base, out)
	}
}

// TypeScheme is a universally-quantified type: Vars names the quantified
// parameters, instantiation substitutes fresh type variables by name.
type TypeScheme struct {
	Vars []string
	Type Type
}
