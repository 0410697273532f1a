package diag

import (
	"testing"

	"github.com/axonlang/clank/internal/ast"
)

func span(file, line, col int) ast.Span {
	return ast.Span{File: file, Start: ast.Pos{Line: line, Column: col}, End: ast.Pos{Line: line, Column: col + 1}}
}

func TestEmitAllocatesMonotonicIDs(t *testing.T) {
	c := NewCollector(0)
	d1 := c.Emit(SevError, E1001, "unresolved name 'x'", span(0, 1, 1), "n1")
	d2 := c.Emit(SevError, E2001, "type mismatch", span(0, 2, 1), "n2")
	if d1.ID == d2.ID {
		t.Fatalf("expected distinct ids, got %d and %d", d1.ID, d2.ID)
	}
	if d1.ID != 0 || d2.ID != 1 {
		t.Errorf("expected ids 0,1 got %d,%d", d1.ID, d2.ID)
	}
}

func TestEmitRespectsCapacity(t *testing.T) {
	c := NewCollector(1)
	c.Emit(SevError, E1001, "first", span(0, 1, 1), "")
	c.Emit(SevError, E1001, "second", span(0, 2, 1), "")
	if len(c.Diagnostics()) != 1 {
		t.Fatalf("expected capacity to cap stored diagnostics at 1, got %d", len(c.Diagnostics()))
	}
}

func TestHasErrorsAndErrorCount(t *testing.T) {
	c := NewCollector(0)
	c.Emit(SevWarning, W0001, "unused", span(0, 1, 1), "")
	if c.HasErrors() {
		t.Fatal("warning-only collector should report no errors")
	}
	c.Emit(SevError, E2001, "mismatch", span(0, 2, 1), "")
	if !c.HasErrors() || c.ErrorCount() != 1 {
		t.Fatalf("expected 1 error, got HasErrors=%v ErrorCount=%d", c.HasErrors(), c.ErrorCount())
	}
}

func TestSortOrdersByFileLineColumn(t *testing.T) {
	c := NewCollector(0)
	c.Emit(SevError, E2001, "later", span(0, 5, 1), "")
	c.Emit(SevError, E2001, "earlier", span(0, 1, 1), "")
	c.Sort()
	if c.Diagnostics()[0].Message != "earlier" {
		t.Errorf("expected earlier-line diagnostic first, got %q", c.Diagnostics()[0].Message)
	}
}

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	c := NewCollector(0)
	c.Emit(SevError, E2001, "first", span(0, 1, 1), "")
	c.Emit(SevError, E2001, "duplicate", span(0, 1, 1), "")
	c.Emit(SevError, E2002, "different code, same span", span(0, 1, 1), "")
	c.Dedup()
	if len(c.Diagnostics()) != 2 {
		t.Fatalf("expected dedup to drop the exact (code,span) duplicate, got %d", len(c.Diagnostics()))
	}
	if c.Diagnostics()[0].Message != "first" {
		t.Errorf("expected first occurrence kept, got %q", c.Diagnostics()[0].Message)
	}
}

func TestMergeAdvancesCounters(t *testing.T) {
	a := NewCollector(0)
	a.Emit(SevError, E1001, "a0", span(0, 1, 1), "")

	b := NewCollector(0)
	b.Emit(SevError, E1001, "b0", span(1, 1, 1), "")
	b.Emit(SevError, E1001, "b1", span(1, 2, 1), "")

	a.Merge(b)
	if len(a.Diagnostics()) != 3 {
		t.Fatalf("expected 3 diagnostics after merge, got %d", len(a.Diagnostics()))
	}
	next := a.Emit(SevError, E1001, "a-after-merge", span(0, 3, 1), "")
	if int(next.ID) < 2 {
		t.Errorf("expected merge to advance the id counter past b's ids, got %d", next.ID)
	}
}

func TestUndischargedObligationsCountsNonDischarged(t *testing.T) {
	c := NewCollector(0)
	c.AddObligation(&Obligation{SolverResult: SolverDischarged})
	c.AddObligation(&Obligation{SolverResult: SolverUnknown})
	c.AddObligation(&Obligation{SolverResult: SolverRefuted})
	if got := c.UndischargedObligations(); got != 2 {
		t.Errorf("expected 2 undischarged obligations, got %d", got)
	}
}
