package ast

// Param is a function parameter: a name with an optional declared type.
type Param struct {
	base
	Name string
	Type TypeExpr // nil if undeclared (inference fills a fresh var)
}

func (p *Param) Kind() string { return "Param" }

// FuncDecl declares a named function with a parameter list, optional
// return type, optional effect annotations, and a body expression.
type FuncDecl struct {
	base
	Name       string
	TypeParams []string
	Params     []*Param
	ReturnType TypeExpr // nil if inferred
	Effects    []string
	Body       Expr
}

func (d *FuncDecl) Kind() string { return "FuncDecl" }
func (d *FuncDecl) declNode()    {}

// AliasDecl declares `type Name[params] = Type`.
type AliasDecl struct {
	base
	Name       string
	TypeParams []string
	Target     TypeExpr
}

func (d *AliasDecl) Kind() string { return "AliasDecl" }
func (d *AliasDecl) declNode()    {}

// RecordField is one field of a record type declaration.
type RecordField struct {
	Name string
	Type TypeExpr
}

// RecordDecl declares `record Name[params] { field: Type, ... }`.
type RecordDecl struct {
	base
	Name       string
	TypeParams []string
	Fields     []RecordField
}

func (d *RecordDecl) Kind() string { return "RecordDecl" }
func (d *RecordDecl) declNode()    {}

// SumVariant is one variant of a sum type declaration. FieldNames is nil
// for positional (tuple-style) payloads.
type SumVariant struct {
	Name       string
	Fields     []TypeExpr
	FieldNames []string
}

// SumDecl declares `sum Name[params] = Variant(T, ...) | ...`.
type SumDecl struct {
	base
	Name       string
	TypeParams []string
	Variants   []SumVariant
}

func (d *SumDecl) Kind() string { return "SumDecl" }
func (d *SumDecl) declNode()    {}
