package ast

// LetStmt binds Pattern = Init for the remainder of the enclosing block.
type LetStmt struct {
	base
	Pattern Pattern
	Type    TypeExpr // nil if inferred
	Mutable bool
	Init    Expr
}

func (s *LetStmt) Kind() string { return "LetStmt" }
func (s *LetStmt) stmtNode()    {}

// AssignStmt assigns a new value to an existing mutable binding.
type AssignStmt struct {
	base
	Target Expr // Ident or Field/Index target
	Value  Expr
}

func (s *AssignStmt) Kind() string { return "AssignStmt" }
func (s *AssignStmt) stmtNode()    {}

// ForStmt iterates Pattern over Iterable, running Body each time.
type ForStmt struct {
	base
	Pattern  Pattern
	Iterable Expr
	Body     Expr
}

func (s *ForStmt) Kind() string { return "ForStmt" }
func (s *ForStmt) stmtNode()    {}

// WhileStmt runs Body while Cond holds.
type WhileStmt struct {
	base
	Cond Expr
	Body Expr
}

func (s *WhileStmt) Kind() string { return "WhileStmt" }
func (s *WhileStmt) stmtNode()    {}

// ReturnStmt returns Value from the enclosing function (nil for a bare
// `return`, which requires the function to return Unit).
type ReturnStmt struct {
	base
	Value Expr
}

func (s *ReturnStmt) Kind() string { return "ReturnStmt" }
func (s *ReturnStmt) stmtNode()    {}

// AssertStmt asserts Cond holds; the checker may discharge or flag it via
// the refinement solver.
type AssertStmt struct {
	base
	Cond Expr
}

func (s *AssertStmt) Kind() string { return "AssertStmt" }
func (s *AssertStmt) stmtNode()    {}

// ExprStmt is an expression evaluated for effect, its value discarded.
type ExprStmt struct {
	base
	Expr Expr
}

func (s *ExprStmt) Kind() string { return "ExprStmt" }
func (s *ExprStmt) stmtNode()    {}
