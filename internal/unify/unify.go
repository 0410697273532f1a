// Package unify implements Hindley-Milner unification over the types.Type
// universe (component B): substitutions, occurs-check, and width
// subtyping for open records.
package unify

import (
	"fmt"

	"github.com/axonlang/clank/internal/types"
)

// Substitution is an immutable mapping from type-variable id to Type.
// Operations return new maps rather than mutating the receiver.
type Substitution struct {
	m map[int]types.Type
}

// Empty is the identity substitution.
func Empty() *Substitution { return &Substitution{m: map[int]types.Type{}} }

// Bind returns a new substitution extending s with id -> t.
func (s *Substitution) Bind(id int, t types.Type) *Substitution {
	out := make(map[int]types.Type, len(s.m)+1)
	for k, v := range s.m {
		out[k] = v
	}
	out[id] = t
	return &Substitution{m: out}
}

func (s *Substitution) Lookup(id int) (types.Type, bool) {
	t, ok := s.m[id]
	return t, ok
}

// Apply replaces variables in t transitively: if a substitution resolves
// a variable to another variable that is itself bound, that chain is
// followed to its fixed point.
func Apply(s *Substitution, t types.Type) types.Type {
	switch v := t.(type) {
	case *types.TypeVar:
		if bound, ok := s.Lookup(v.ID); ok {
			return Apply(s, bound)
		}
		return v
	case *types.TypeApp:
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = Apply(s, a)
		}
		return &types.TypeApp{Con: v.Con, Args: args}
	case *types.TypeFn:
		params := make([]types.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = Apply(s, p)
		}
		return &types.TypeFn{Params: params, Return: Apply(s, v.Return), Effects: v.Effects}
	case *types.TypeTuple:
		elems := make([]types.Type, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = Apply(s, e)
		}
		return &types.TypeTuple{Elements: elems}
	case *types.TypeArray:
		return &types.TypeArray{Element: Apply(s, v.Element)}
	case *types.TypeRecord:
		fields := make([]types.RecordField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = types.RecordField{Name: f.Name, Type: Apply(s, f.Type)}
		}
		return &types.TypeRecord{Fields: fields, IsOpen: v.IsOpen}
	case *types.TypeRefined:
		return &types.TypeRefined{Base: Apply(s, v.Base), VarName: v.VarName, Pred: v.Pred}
	default:
		return t
	}
}

// Compose produces a substitution with s1 ∘ s2 semantics: apply s1 to
// every value of s2, then union in bindings from s1 not already in s2.
func Compose(s1, s2 *Substitution) *Substitution {
	out := make(map[int]types.Type, len(s1.m)+len(s2.m))
	for id, t := range s2.m {
		out[id] = Apply(s1, t)
	}
	for id, t := range s1.m {
		if _, ok := out[id]; !ok {
			out[id] = t
		}
	}
	return &Substitution{m: out}
}

// ErrorKind classifies a unification failure.
type ErrorKind string

const (
	TypeMismatch  ErrorKind = "type_mismatch"
	OccursCheck   ErrorKind = "occurs_check"
	ArityMismatch ErrorKind = "arity_mismatch"
	MissingField  ErrorKind = "missing_field"
)

// UnifyError carries enough structure for the diagnostic layer to render
// a message and for the repair generator to pick a strategy.
type UnifyError struct {
	Kind     ErrorKind
	Expected types.Type
	Actual   types.Type
	Detail   string
}

func (e *UnifyError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: expected %s, got %s (%s)", e.Kind, e.Expected, e.Actual, e.Detail)
	}
	return fmt.Sprintf("%s: expected %s, got %s", e.Kind, e.Expected, e.Actual)
}

// Unify attempts to unify t1 and t2, returning a substitution that makes
// them structurally equal once applied. Unification is pure: the caller
// composes the returned substitution into its own ambient substitution.
func Unify(t1, t2 types.Type) (*Substitution, *UnifyError) {
	if types.TypesEqual(t1, t2) {
		return Empty(), nil
	}

	if v, ok := t1.(*types.TypeVar); ok {
		return unifyVar(v, t2)
	}
	if v, ok := t2.(*types.TypeVar); ok {
		return unifyVar(v, t1)
	}

	// TypeNever unifies unilaterally with anything, no occurs-check (I6).
	// A type variable on either side was already bound by the cases above.
	if _, ok := t1.(*types.TypeNever); ok {
		return Empty(), nil
	}
	if _, ok := t2.(*types.TypeNever); ok {
		return Empty(), nil
	}

	switch a := t1.(type) {
	case *types.TypeCon:
		b, ok := t2.(*types.TypeCon)
		if !ok || a.Name != b.Name {
			return nil, &UnifyError{Kind: TypeMismatch, Expected: t1, Actual: t2}
		}
		return Empty(), nil

	case *types.TypeApp:
		b, ok := t2.(*types.TypeApp)
		if !ok || a.Con != b.Con {
			return nil, &UnifyError{Kind: TypeMismatch, Expected: t1, Actual: t2}
		}
		if len(a.Args) != len(b.Args) {
			return nil, &UnifyError{Kind: ArityMismatch, Expected: t1, Actual: t2}
		}
		return unifyPairwise(a.Args, b.Args)

	case *types.TypeFn:
		b, ok := t2.(*types.TypeFn)
		if !ok {
			return nil, &UnifyError{Kind: TypeMismatch, Expected: t1, Actual: t2}
		}
		if len(a.Params) != len(b.Params) {
			return nil, &UnifyError{Kind: ArityMismatch, Expected: t1, Actual: t2}
		}
		sub, err := unifyPairwise(a.Params, b.Params)
		if err != nil {
			return nil, err
		}
		retSub, err := Unify(Apply(sub, a.Return), Apply(sub, b.Return))
		if err != nil {
			return nil, err
		}
		return Compose(retSub, sub), nil

	case *types.TypeTuple:
		b, ok := t2.(*types.TypeTuple)
		if !ok {
			return nil, &UnifyError{Kind: TypeMismatch, Expected: t1, Actual: t2}
		}
		if len(a.Elements) != len(b.Elements) {
			return nil, &UnifyError{Kind: ArityMismatch, Expected: t1, Actual: t2}
		}
		return unifyPairwise(a.Elements, b.Elements)

	case *types.TypeArray:
		b, ok := t2.(*types.TypeArray)
		if !ok {
			return nil, &UnifyError{Kind: TypeMismatch, Expected: t1, Actual: t2}
		}
		return Unify(a.Element, b.Element)

	case *types.TypeRecord:
		b, ok := t2.(*types.TypeRecord)
		if !ok {
			return nil, &UnifyError{Kind: TypeMismatch, Expected: t1, Actual: t2}
		}
		return unifyRecords(a, b)

	case *types.TypeRefined:
		b, ok := t2.(*types.TypeRefined)
		if !ok {
			// Unifying a refined type against its (unrefined) base is
			// permitted at the base-type level; refinement obligations
			// are the type checker's concern, not the unifier's.
			return Unify(a.Base, t2)
		}
		return Unify(a.Base, b.Base)
	}

	return nil, &UnifyError{Kind: TypeMismatch, Expected: t1, Actual: t2}
}

func unifyVar(v *types.TypeVar, t types.Type) (*Substitution, *UnifyError) {
	if other, ok := t.(*types.TypeVar); ok && other.ID == v.ID {
		return Empty(), nil
	}
	if occurs(v.ID, t) {
		return nil, &UnifyError{Kind: OccursCheck, Expected: v, Actual: t, Detail: "infinite type"}
	}
	return Empty().Bind(v.ID, t), nil
}

func occurs(id int, t types.Type) bool {
	return types.FreeTypeVars(t)[id]
}

func unifyPairwise(as, bs []types.Type) (*Substitution, *UnifyError) {
	sub := Empty()
	for i := range as {
		s, err := Unify(Apply(sub, as[i]), Apply(sub, bs[i]))
		if err != nil {
			return nil, err
		}
		sub = Compose(s, sub)
	}
	return sub, nil
}

// unifyRecords enforces width subtyping: every field of a must appear in
// b with a unifiable type unless b.IsOpen permits extra fields on b's
// side, and symmetrically for b's fields against a.
func unifyRecords(a, b *types.TypeRecord) (*Substitution, *UnifyError) {
	sub := Empty()
	for _, fa := range a.Fields {
		fb, ok := b.FieldType(fa.Name)
		if !ok {
			if b.IsOpen {
				continue
			}
			return nil, &UnifyError{Kind: MissingField, Expected: a, Actual: b, Detail: fa.Name}
		}
		s, err := Unify(Apply(sub, fa.Type), Apply(sub, fb))
		if err != nil {
			return nil, err
		}
		sub = Compose(s, sub)
	}
	for _, fb := range b.Fields {
		if _, ok := a.FieldType(fb.Name); !ok {
			if a.IsOpen {
				continue
			}
			return nil, &UnifyError{Kind: MissingField, Expected: b, Actual: a, Detail: fb.Name}
		}
	}
	return sub, nil
}
