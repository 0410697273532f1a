// Package tctx is the scoped type context (component E): name -> binding
// lookups, type definitions, and the pre-registered built-ins. It is
// symmetric in shape to internal/refine.Context, but keyed by name rather
// than by fact.
package tctx

import (
	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/types"
)

// BindingSource documents why a binding exists, for diagnostics.
type BindingSource string

const (
	SourceParameter BindingSource = "parameter"
	SourceLet       BindingSource = "let"
	SourceFunction  BindingSource = "function"
	SourceExternal  BindingSource = "external"
)

// Binding is a named value's type information.
type Binding struct {
	Scheme  *types.TypeScheme // a monomorphic binding is a scheme with no Vars
	Mutable bool
	Span    ast.Span
	Source  BindingSource
}

// TypeDefKind distinguishes the three forms a TypeDef can take.
type TypeDefKind int

const (
	DefAlias TypeDefKind = iota
	DefRecord
	DefSum
)

// SumVariantDef is one variant of a sum TypeDef.
type SumVariantDef struct {
	Fields     []types.Type
	FieldNames []string // optional; payload binding is positional regardless (spec §9)
}

// TypeDef is a user type declaration: alias, record, or sum.
type TypeDef struct {
	Kind          TypeDefKind
	TypeParams    []string
	Span          ast.Span
	AliasTarget   types.Type
	RecordFields  map[string]types.Type
	FieldOrder    []string // preserves declaration order for formatting/repair
	SumVariants   map[string]SumVariantDef
	VariantOrder  []string
}

// Context is a parent-linked scope of bindings and type definitions.
type Context struct {
	parent      *Context
	bindings    map[string]*Binding
	typeDefs    map[string]*TypeDef
	typeParams  map[string]*types.TypeVar
}

// NewRoot creates an empty root context (no built-ins registered; use
// NewGlobal for a fully-populated root).
func NewRoot() *Context {
	return &Context{bindings: map[string]*Binding{}, typeDefs: map[string]*TypeDef{}, typeParams: map[string]*types.TypeVar{}}
}

func (c *Context) Child() *Context {
	return &Context{parent: c, bindings: map[string]*Binding{}, typeDefs: map[string]*TypeDef{}, typeParams: map[string]*types.TypeVar{}}
}

// Define binds name in this scope. Returns false if name is already bound
// in this exact scope (duplicate top-level definitions emit E1002 at the
// call site in internal/check, which owns diagnostic emission).
func (c *Context) Define(name string, b *Binding) bool {
	if _, exists := c.bindings[name]; exists {
		return false
	}
	c.bindings[name] = b
	return true
}

// Lookup walks the parent chain for a binding.
func (c *Context) Lookup(name string) (*Binding, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if b, ok := ctx.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// DefineType registers a type definition in this scope.
func (c *Context) DefineType(name string, def *TypeDef) bool {
	if _, exists := c.typeDefs[name]; exists {
		return false
	}
	c.typeDefs[name] = def
	return true
}

func (c *Context) LookupType(name string) (*TypeDef, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if d, ok := ctx.typeDefs[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// BindTypeParam binds a type-parameter name (e.g. `T` in `fn id[T](x: T)
// -> T`) to a fresh TypeVar for the duration of this scope.
func (c *Context) BindTypeParam(name string, v *types.TypeVar) {
	c.typeParams[name] = v
}

func (c *Context) LookupTypeParam(name string) (*types.TypeVar, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if v, ok := ctx.typeParams[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// AllNames returns every binding name visible from this scope (a child's
// own names shadow a parent's), for "did you mean" candidate lists
// (internal/similarity) when a name fails to resolve.
func (c *Context) AllNames() []string {
	seen := map[string]bool{}
	var out []string
	for ctx := c; ctx != nil; ctx = ctx.parent {
		for name := range ctx.bindings {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// AllTypeNames is AllNames for type definitions, used for unresolved-type
// (E1005) suggestions.
func (c *Context) AllTypeNames() []string {
	seen := map[string]bool{}
	var out []string
	for ctx := c; ctx != nil; ctx = ctx.parent {
		for name := range ctx.typeDefs {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}
