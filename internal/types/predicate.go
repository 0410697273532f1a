package types

import (
	"fmt"
	"math/big"
)

// CompareOp is the set of comparison operators a refinement predicate can
// use. Unicode operators (≠ ≤ ≥) are normalized to these ASCII forms by
// the refinement context before a Fact is stored (see internal/refine).
type CompareOp string

const (
	OpEq CompareOp = "=="
	OpNe CompareOp = "!="
	OpLt CompareOp = "<"
	OpLe CompareOp = "<="
	OpGt CompareOp = ">"
	OpGe CompareOp = ">="
)

// Predicate is the closed sum of refinement predicates.
type Predicate interface {
	isPredicate()
	String() string
}

// PredCompare is `left op right`.
type PredCompare struct {
	Op    CompareOp
	Left  Term
	Right Term
}

func (*PredCompare) isPredicate() {}
func (p *PredCompare) String() string {
	return fmt.Sprintf("%s %s %s", p.Left.String(), p.Op, p.Right.String())
}

// PredAnd is `p && q`.
type PredAnd struct{ P, Q Predicate }

func (*PredAnd) isPredicate()        {}
func (a *PredAnd) String() string    { return fmt.Sprintf("(%s && %s)", a.P.String(), a.Q.String()) }

// PredOr is `p || q`.
type PredOr struct{ P, Q Predicate }

func (*PredOr) isPredicate()     {}
func (o *PredOr) String() string { return fmt.Sprintf("(%s || %s)", o.P.String(), o.Q.String()) }

// PredNot is `!p`.
type PredNot struct{ P Predicate }

func (*PredNot) isPredicate()     {}
func (n *PredNot) String() string { return fmt.Sprintf("!%s", n.P.String()) }

// PredCall is an uninterpreted named predicate, e.g. `len(arr) > 0`'s
// `len(arr)` term — but as a predicate itself, e.g. a boolean-returning
// call like `is_sorted(arr)`.
type PredCall struct {
	Name string
	Args []Term
}

func (*PredCall) isPredicate() {}
func (c *PredCall) String() string {
	s := c.Name + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// PredTrue / PredFalse are the nullary constant predicates.
type PredTrue struct{}
type PredFalse struct{}

func (*PredTrue) isPredicate()      {}
func (*PredTrue) String() string    { return "true" }
func (*PredFalse) isPredicate()     {}
func (*PredFalse) String() string   { return "false" }

// PredUnknown marks a predicate the checker could not construct (e.g. an
// unsupported expression form used as a refinement); Source documents why.
type PredUnknown struct{ Source string }

func (*PredUnknown) isPredicate()     {}
func (u *PredUnknown) String() string { return fmt.Sprintf("unknown(%s)", u.Source) }

var (
	True  = &PredTrue{}
	False = &PredFalse{}
)

// PredicatesEqual is syntactic equality (not solver-equivalence).
func PredicatesEqual(a, b Predicate) bool {
	switch av := a.(type) {
	case *PredCompare:
		bv, ok := b.(*PredCompare)
		return ok && av.Op == bv.Op && TermsEqual(av.Left, bv.Left) && TermsEqual(av.Right, bv.Right)
	case *PredAnd:
		bv, ok := b.(*PredAnd)
		return ok && PredicatesEqual(av.P, bv.P) && PredicatesEqual(av.Q, bv.Q)
	case *PredOr:
		bv, ok := b.(*PredOr)
		return ok && PredicatesEqual(av.P, bv.P) && PredicatesEqual(av.Q, bv.Q)
	case *PredNot:
		bv, ok := b.(*PredNot)
		return ok && PredicatesEqual(av.P, bv.P)
	case *PredCall:
		bv, ok := b.(*PredCall)
		if !ok || av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !TermsEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *PredTrue:
		_, ok := b.(*PredTrue)
		return ok
	case *PredFalse:
		_, ok := b.(*PredFalse)
		return ok
	case *PredUnknown:
		bv, ok := b.(*PredUnknown)
		return ok && av.Source == bv.Source
	}
	return false
}

// NegateOp returns the comparison operator meaning "not (x op y)".
func NegateOp(op CompareOp) CompareOp {
	switch op {
	case OpEq:
		return OpNe
	case OpNe:
		return OpEq
	case OpLt:
		return OpGe
	case OpLe:
		return OpGt
	case OpGt:
		return OpLe
	case OpGe:
		return OpLt
	}
	return op
}

// BinOp is the set of arithmetic term operators.
type BinOp string

const (
	BinAdd BinOp = "+"
	BinSub BinOp = "-"
	BinMul BinOp = "*"
	BinDiv BinOp = "/"
	BinMod BinOp = "%"
)

// Term is the closed sum of refinement terms.
type Term interface {
	isTerm()
	String() string
}

// TermVar is a reference to a bound or free variable name.
type TermVar struct{ Name string }

func (*TermVar) isTerm()        {}
func (v *TermVar) String() string { return v.Name }

// TermInt is an arbitrary-precision integer literal.
type TermInt struct{ Value *big.Int }

func (*TermInt) isTerm()          {}
func (i *TermInt) String() string { return i.Value.String() }

func NewTermInt(i int64) *TermInt { return &TermInt{Value: big.NewInt(i)} }

// TermBool is a boolean literal.
type TermBool struct{ Value bool }

func (*TermBool) isTerm() {}
func (b *TermBool) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// TermString is a string literal.
type TermString struct{ Value string }

func (*TermString) isTerm()          {}
func (s *TermString) String() string { return fmt.Sprintf("%q", s.Value) }

// TermBinop is `l op r`.
type TermBinop struct {
	Op    BinOp
	Left  Term
	Right Term
}

func (*TermBinop) isTerm() {}
func (b *TermBinop) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

// TermCall is an uninterpreted function application, e.g. `len(arr)`.
type TermCall struct {
	Name string
	Args []Term
}

func (*TermCall) isTerm() {}
func (c *TermCall) String() string {
	s := c.Name + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// TermField is field projection, e.g. `point.x`.
type TermField struct {
	Base Term
	Name string
}

func (*TermField) isTerm()          {}
func (f *TermField) String() string { return fmt.Sprintf("%s.%s", f.Base.String(), f.Name) }

// TermsEqual is syntactic equality over terms.
func TermsEqual(a, b Term) bool {
	switch av := a.(type) {
	case *TermVar:
		bv, ok := b.(*TermVar)
		return ok && av.Name == bv.Name
	case *TermInt:
		bv, ok := b.(*TermInt)
		return ok && av.Value.Cmp(bv.Value) == 0
	case *TermBool:
		bv, ok := b.(*TermBool)
		return ok && av.Value == bv.Value
	case *TermString:
		bv, ok := b.(*TermString)
		return ok && av.Value == bv.Value
	case *TermBinop:
		bv, ok := b.(*TermBinop)
		return ok && av.Op == bv.Op && TermsEqual(av.Left, bv.Left) && TermsEqual(av.Right, bv.Right)
	case *TermCall:
		bv, ok := b.(*TermCall)
		if !ok || av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !TermsEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *TermField:
		bv, ok := b.(*TermField)
		return ok && av.Name == bv.Name && TermsEqual(av.Base, bv.Base)
	}
	return false
}
