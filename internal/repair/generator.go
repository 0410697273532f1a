package repair

import (
	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
)

// Generator drives repair synthesis for one Program. Construct with
// NewGenerator, then call Generate with the diagnostics/obligations a
// check pass produced.
type Generator struct {
	program *ast.Program

	nodeIndex      map[ast.NodeID]ast.Node
	letStmtsByName map[string][]*ast.LetStmt
	fnDeclsByName  map[string]*ast.FuncDecl

	nextID int
}

// NewGenerator builds the AST node index and the name-keyed lookup
// tables the per-diagnostic handlers need (spec §4.I's constructor).
func NewGenerator(program *ast.Program) *Generator {
	g := &Generator{
		program:        program,
		nodeIndex:      map[ast.NodeID]ast.Node{},
		letStmtsByName: map[string][]*ast.LetStmt{},
		fnDeclsByName:  map[string]*ast.FuncDecl{},
	}
	ast.Walk(program, func(n ast.Node, _ []int) {
		g.nodeIndex[n.ID()] = n
		switch v := n.(type) {
		case *ast.LetStmt:
			if id, ok := v.Pattern.(*ast.Ident); ok {
				g.letStmtsByName[id.Name] = append(g.letStmtsByName[id.Name], v)
			}
		case *ast.FuncDecl:
			g.fnDeclsByName[v.Name] = v
		}
	})
	return g
}

// Generate produces every repair candidate for diags and obls, in the
// diagnostic-iteration order then the obligation-iteration order (spec
// §5's ordering guarantee (3): repair ids are stable for fixed input).
// It does not mutate diags/obls — back-linking their repair_refs is
// internal/aggregate's job (component K), run after Generate returns.
func (g *Generator) Generate(diags []*diag.Diagnostic, obls []*diag.Obligation) []*Candidate {
	var out []*Candidate
	for _, d := range diags {
		for _, c := range g.forDiagnostic(d) {
			c.ID = g.nextID
			g.nextID++
			out = append(out, c)
		}
	}
	for _, o := range obls {
		for _, c := range g.forObligation(o) {
			c.ID = g.nextID
			g.nextID++
			out = append(out, c)
		}
	}
	return out
}

// letStmtNear returns the *ast.LetStmt binding name whose Span matches
// at (disambiguating shadowed re-declarations of the same name); falls
// back to the most recent declaration of name if no span match is found.
func (g *Generator) letStmtNear(name string, at ast.Span) (*ast.LetStmt, bool) {
	candidates := g.letStmtsByName[name]
	if len(candidates) == 0 {
		return nil, false
	}
	for _, ls := range candidates {
		if ls.Span() == at {
			return ls, true
		}
	}
	return candidates[len(candidates)-1], true
}
