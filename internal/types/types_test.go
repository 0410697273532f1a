package types

import "testing"

func TestTypesEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same con", Int, Int, true},
		{"different con", Int, Str, false},
		{"same var id", &TypeVar{ID: 1}, &TypeVar{ID: 1, Name: "a"}, true},
		{"different var id", &TypeVar{ID: 1}, &TypeVar{ID: 2}, false},
		{"same app", &TypeApp{Con: "Option", Args: []Type{Int}}, &TypeApp{Con: "Option", Args: []Type{Int}}, true},
		{"different app arg", &TypeApp{Con: "Option", Args: []Type{Int}}, &TypeApp{Con: "Option", Args: []Type{Str}}, false},
		{
			"refined equal predicate",
			&TypeRefined{Base: Int, VarName: "x", Pred: &PredCompare{Op: OpGt, Left: &TermVar{Name: "x"}, Right: NewTermInt(0)}},
			&TypeRefined{Base: Int, VarName: "x", Pred: &PredCompare{Op: OpGt, Left: &TermVar{Name: "x"}, Right: NewTermInt(0)}},
			true,
		},
		{
			"refined different predicate",
			&TypeRefined{Base: Int, VarName: "x", Pred: &PredCompare{Op: OpGt, Left: &TermVar{Name: "x"}, Right: NewTermInt(0)}},
			&TypeRefined{Base: Int, VarName: "x", Pred: &PredCompare{Op: OpGe, Left: &TermVar{Name: "x"}, Right: NewTermInt(0)}},
			false,
		},
		{"never unilateral identity", &TypeNever{}, &TypeNever{}, true},
		{
			"open record vs closed record differ",
			&TypeRecord{Fields: []RecordField{{Name: "x", Type: Int}}, IsOpen: true},
			&TypeRecord{Fields: []RecordField{{Name: "x", Type: Int}}, IsOpen: false},
			false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TypesEqual(tc.a, tc.b); got != tc.want {
				t.Errorf("TypesEqual(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestGetBaseStripsRefinementsRecursively(t *testing.T) {
	inner := &TypeRefined{Base: Int, VarName: "x", Pred: True}
	outer := &TypeRefined{Base: inner, VarName: "x", Pred: True}
	if got := GetBase(outer); got != Int {
		t.Errorf("GetBase(outer) = %v, want Int", got)
	}
}

func TestIsNumericAndIsInteger(t *testing.T) {
	if !IsNumeric(Float) {
		t.Error("Float should be numeric")
	}
	if IsInteger(Float) {
		t.Error("Float should not be integer")
	}
	if !IsInteger(Nat) {
		t.Error("Nat should be integer")
	}
	if IsNumeric(Str) {
		t.Error("Str should not be numeric")
	}
	refined := &TypeRefined{Base: Int, VarName: "x", Pred: True}
	if !IsNumeric(refined) {
		t.Error("refined Int should still be numeric through GetBase")
	}
}

func TestFreeTypeVars(t *testing.T) {
	t1 := &TypeVar{ID: 1}
	t2 := &TypeVar{ID: 2}
	fn := &TypeFn{Params: []Type{t1}, Return: &TypeTuple{Elements: []Type{t2, Int}}}
	fv := FreeTypeVars(fn)
	if len(fv) != 2 || !fv[1] || !fv[2] {
		t.Errorf("FreeTypeVars(fn) = %v, want {1,2}", fv)
	}
}

func TestPredicatesEqual(t *testing.T) {
	p1 := &PredAnd{
		P: &PredCompare{Op: OpGt, Left: &TermVar{Name: "x"}, Right: NewTermInt(0)},
		Q: &PredNot{P: &PredCompare{Op: OpEq, Left: &TermVar{Name: "y"}, Right: NewTermInt(1)}},
	}
	p2 := &PredAnd{
		P: &PredCompare{Op: OpGt, Left: &TermVar{Name: "x"}, Right: NewTermInt(0)},
		Q: &PredNot{P: &PredCompare{Op: OpEq, Left: &TermVar{Name: "y"}, Right: NewTermInt(1)}},
	}
	if !PredicatesEqual(p1, p2) {
		t.Error("structurally identical predicates should be equal")
	}
	p3 := &PredAnd{P: p1.P, Q: True}
	if PredicatesEqual(p1, p3) {
		t.Error("structurally different predicates should not be equal")
	}
}

func TestRecordFieldType(t *testing.T) {
	r := &TypeRecord{Fields: []RecordField{{Name: "x", Type: Int}, {Name: "y", Type: Float}}}
	if ty, ok := r.FieldType("y"); !ok || ty != Float {
		t.Errorf("FieldType(y) = %v, %v, want Float, true", ty, ok)
	}
	if _, ok := r.FieldType("z"); ok {
		t.Error("FieldType(z) should not be found")
	}
}
