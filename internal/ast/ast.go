// Package ast defines the Clank abstract syntax tree: the shared data model
// that the (external) parser produces and the semantic analysis pipeline
// consumes. Lexing and parsing proper live outside this module; this
// package only describes the shape of the tree and assigns the stable node
// identifiers the rest of the pipeline keys off of.
package ast

import "fmt"

// Pos is a single source location.
type Pos struct {
	Line   int `json:"line"`
	Column int `json:"col"`
	Offset int `json:"offset,omitempty"` // byte offset, optional (0 if unknown)
}

// Span is a half-open source range. File is an index into the owning
// Program's File table, not a path, so spans stay cheap to copy.
type Span struct {
	File  int `json:"file"`
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d:%d", s.File, s.Start.Line, s.Start.Column)
}

// NodeID is a stable, content-derived identifier for an AST node. It is
// assigned by AssignIDs (see ids.go), not by the parser, since node
// identity must survive independent re-builds of the same tree.
type NodeID string

// NoNodeID marks the absence of a node (e.g. a synthesized diagnostic with
// no single offending node).
const NoNodeID NodeID = ""

// Node is the common interface implemented by every AST node.
type Node interface {
	Kind() string
	Span() Span
	ID() NodeID
	setID(NodeID)
}

// base is embedded by every concrete node to provide Span/ID bookkeeping
// without repeating it on each type.
type base struct {
	span Span
	id   NodeID
}

func (b *base) Span() Span    { return b.span }
func (b *base) ID() NodeID    { return b.id }
func (b *base) setID(id NodeID) { b.id = id }

// Program is the root of a compilation unit: a list of source files, each
// contributing declarations.
type Program struct {
	base
	Files []*File
	Decls []Decl
}

func (p *Program) Kind() string { return "Program" }

// File records a source file registered in the program's file table.
type File struct {
	Path string
}

// Decl is any top-level declaration.
type Decl interface {
	Node
	declNode()
}

// Expr is any expression.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any statement (block-level construct).
type Stmt interface {
	Node
	stmtNode()
}

// Pattern is any pattern appearing in a match arm or let/for binding.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpr is a syntactic type annotation, as written by the programmer
// (distinct from types.Type, which is the checker's semantic representation).
type TypeExpr interface {
	Node
	typeExprNode()
}
