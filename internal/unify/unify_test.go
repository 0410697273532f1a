package unify

import (
	"testing"

	"github.com/axonlang/clank/internal/types"
)

func TestUnifyReflexive(t *testing.T) {
	s, err := Unify(types.Int, types.Int)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.m) != 0 {
		t.Errorf("expected empty substitution, got %v", s.m)
	}
}

func TestUnifyVarBinds(t *testing.T) {
	v := &types.TypeVar{ID: 1}
	s, err := Unify(v, types.Int)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bound, ok := s.Lookup(1)
	if !ok || bound != types.Int {
		t.Errorf("expected var 1 bound to Int, got %v, %v", bound, ok)
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	v := &types.TypeVar{ID: 1}
	self := &types.TypeArray{Element: v}
	_, err := Unify(v, self)
	if err == nil || err.Kind != OccursCheck {
		t.Fatalf("expected occurs_check error, got %v", err)
	}
}

func TestUnifyNeverUnilateral(t *testing.T) {
	never := &types.TypeNever{}
	s, err := Unify(never, types.Str)
	if err != nil || s == nil {
		t.Fatalf("Never should unify unilaterally, got %v, %v", s, err)
	}
	v := &types.TypeVar{ID: 7}
	s2, err := Unify(never, v)
	if err != nil {
		t.Fatalf("Never should unify with a var too: %v", err)
	}
	if bound, ok := s2.Lookup(7); !ok || !types.TypesEqual(bound, never) {
		t.Errorf("a var unified with Never is bound to Never (the variable rule runs first), got %v, %v", bound, ok)
	}
}

func TestUnifyArityMismatch(t *testing.T) {
	a := &types.TypeApp{Con: "Option", Args: []types.Type{types.Int}}
	b := &types.TypeApp{Con: "Option", Args: []types.Type{types.Int, types.Str}}
	_, err := Unify(a, b)
	if err == nil || err.Kind != ArityMismatch {
		t.Fatalf("expected arity_mismatch, got %v", err)
	}
}

func TestUnifyOpenRecordWidthSubtyping(t *testing.T) {
	closed := &types.TypeRecord{Fields: []types.RecordField{{Name: "x", Type: types.Int}}}
	open := &types.TypeRecord{
		Fields: []types.RecordField{{Name: "x", Type: types.Int}, {Name: "y", Type: types.Float}},
		IsOpen: true,
	}
	// closed has fewer fields than open; closed is not open, so open's
	// extra field "y" must be rejected.
	_, err := Unify(closed, open)
	if err == nil || err.Kind != MissingField {
		t.Fatalf("expected missing_field, got %v", err)
	}

	openSmall := &types.TypeRecord{Fields: []types.RecordField{{Name: "x", Type: types.Int}}, IsOpen: true}
	full := &types.TypeRecord{Fields: []types.RecordField{{Name: "x", Type: types.Int}, {Name: "y", Type: types.Float}}}
	if _, err := Unify(openSmall, full); err != nil {
		t.Fatalf("open record should accept extra fields on the other side: %v", err)
	}
}

func TestUnifyMissingFieldNamesField(t *testing.T) {
	a := &types.TypeRecord{Fields: []types.RecordField{{Name: "x", Type: types.Int}, {Name: "z", Type: types.Bool}}}
	b := &types.TypeRecord{Fields: []types.RecordField{{Name: "x", Type: types.Int}}}
	_, err := Unify(a, b)
	if err == nil || err.Kind != MissingField || err.Detail != "z" {
		t.Fatalf("expected missing_field naming 'z', got %v", err)
	}
}

func TestApplyResolvesChains(t *testing.T) {
	s := Empty().Bind(1, &types.TypeVar{ID: 2}).Bind(2, types.Int)
	got := Apply(s, &types.TypeVar{ID: 1})
	if got != types.Int {
		t.Errorf("Apply should resolve var chains to a fixed point, got %v", got)
	}
}

func TestComposeSemantics(t *testing.T) {
	// s2: 1 -> var(2); s1: 2 -> Int
	s1 := Empty().Bind(2, types.Int)
	s2 := Empty().Bind(1, &types.TypeVar{ID: 2})
	composed := Compose(s1, s2)
	got := Apply(composed, &types.TypeVar{ID: 1})
	if got != types.Int {
		t.Errorf("Compose(s1,s2) applied to var(1) = %v, want Int", got)
	}
}

func TestUnifyFnPairwiseAndReturn(t *testing.T) {
	v1 := &types.TypeVar{ID: 1}
	fnA := &types.TypeFn{Params: []types.Type{v1}, Return: v1}
	fnB := &types.TypeFn{Params: []types.Type{types.Int}, Return: types.Int}
	s, err := Unify(fnA, fnB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bound, ok := s.Lookup(1); !ok || bound != types.Int {
		t.Errorf("expected var 1 bound to Int, got %v %v", bound, ok)
	}
}
