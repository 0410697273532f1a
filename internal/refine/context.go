// Package refine implements the refinement solver and its scoped context
// (components C and D): a fact-based linear-arithmetic prover over
// predicates, and the parent-linked scope stack of facts, values, and
// definitions it reasons over.
package refine

import "github.com/axonlang/clank/internal/types"

// Fact is a predicate known to hold in a context, with a short source
// label for diagnostics (e.g. "parameter n", "if-condition").
type Fact struct {
	Pred   types.Predicate
	Source string
}

// Context is a linked scope: a child holds a reference to its parent and
// never mutates it. Lookups (facts, values, definitions) walk the parent
// chain; a child's own facts/values/definitions shadow the parent's.
type Context struct {
	parent      *Context
	facts       []Fact
	values      map[string]types.Term
	definitions map[string]types.Term
}

// NewRoot creates a context with no parent — the root of a compilation.
func NewRoot() *Context {
	return &Context{values: map[string]types.Term{}, definitions: map[string]types.Term{}}
}

// Child creates a new scope nested under c.
func (c *Context) Child() *Context {
	return &Context{parent: c, values: map[string]types.Term{}, definitions: map[string]types.Term{}}
}

// AddFact records pred as known to hold in this scope, mutating the
// receiver's own fact list (not the parent's).
func (c *Context) AddFact(pred types.Predicate, source string) {
	c.facts = append(c.facts, Fact{Pred: pred, Source: source})
}

// AddComparison is a convenience wrapper building a PredCompare fact. op
// is normalized from any of the Unicode forms (≠ ≤ ≥) to ASCII first.
func (c *Context) AddComparison(op, left, right, source string) {
	c.AddFact(&types.PredCompare{Op: NormalizeOp(op), Left: &types.TermVar{Name: left}, Right: &types.TermVar{Name: right}}, source)
}

// NormalizeOp maps Unicode comparison glyphs to their ASCII equivalents;
// anything already ASCII passes through unchanged.
func NormalizeOp(op string) types.CompareOp {
	switch op {
	case "≠":
		return types.OpNe
	case "≤":
		return types.OpLe
	case "≥":
		return types.OpGe
	default:
		return types.CompareOp(op)
	}
}

// GetAllFacts walks the parent chain, returning every fact visible from
// this scope (this scope's own facts first, then ancestors').
func (c *Context) GetAllFacts() []Fact {
	var out []Fact
	for ctx := c; ctx != nil; ctx = ctx.parent {
		out = append(out, ctx.facts...)
	}
	return out
}

// SetValue / GetValue manage literal-substitution bindings (e.g. a
// parameter bound to a known literal at a call site).
func (c *Context) SetValue(name string, t types.Term) { c.values[name] = t }

func (c *Context) GetValue(name string) (types.Term, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if t, ok := ctx.values[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// SetDefinition / GetDefinition manage let-binding substitution: the term
// a variable was introduced with, so the solver can inline it.
func (c *Context) SetDefinition(name string, t types.Term) { c.definitions[name] = t }

func (c *Context) GetDefinition(name string) (types.Term, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if t, ok := ctx.definitions[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// WithFact returns a child context extended with an additional fact.
func (c *Context) WithFact(pred types.Predicate, source string) *Context {
	child := c.Child()
	child.AddFact(pred, source)
	return child
}

// WithNegatedFact returns a child context extended with not(pred). For
// comparison predicates it additionally stores the de-negated comparison
// (e.g. not(x > 0) also stores x <= 0) since that form proves directly
// rather than requiring the solver to re-derive it through PredNot.
func (c *Context) WithNegatedFact(pred types.Predicate, source string) *Context {
	child := c.Child()
	child.AddFact(&types.PredNot{P: pred}, source)
	if cmp, ok := pred.(*types.PredCompare); ok {
		child.AddFact(&types.PredCompare{Op: types.NegateOp(cmp.Op), Left: cmp.Left, Right: cmp.Right}, source)
	}
	return child
}
