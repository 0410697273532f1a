package diag

import (
	"fmt"
	"sort"

	"github.com/axonlang/clank/internal/ast"
)

// Collector owns the monotonic diagnostic/obligation/hole id counters for
// one compilation and accumulates the records the checker emits. Per
// spec §9's redesign note, these counters are instance fields — never
// package globals — so a fresh Collector is all a fresh compilation needs
// to reset them.
//
// Shape adapted from vovakirdan-surge/internal/diag.Bag (capacity limit,
// Sort/Dedup/Merge), generalized to also own obligations and holes.
type Collector struct {
	maxDiagnostics int

	diagnostics []*Diagnostic
	obligations []*Obligation
	holes       []*TypeHole

	nextDiagID int
	nextOblID  int
	nextHoleID int
}

// NewCollector returns an empty Collector. maxDiagnostics <= 0 means
// unlimited.
func NewCollector(maxDiagnostics int) *Collector {
	return &Collector{maxDiagnostics: maxDiagnostics}
}

// Emit allocates a fresh diagnostic id, appends the diagnostic (unless the
// capacity is exhausted), and returns it so the caller can attach
// Structured/Hints/Related before the pass moves on.
func (c *Collector) Emit(sev Severity, code Code, msg string, loc ast.Span, nodeID ast.NodeID) *Diagnostic {
	d := &Diagnostic{
		ID:            ID(c.nextDiagID),
		Severity:      sev,
		Code:          code,
		Message:       msg,
		Location:      loc,
		PrimaryNodeID: nodeID,
	}
	c.nextDiagID++
	if c.maxDiagnostics <= 0 || len(c.diagnostics) < c.maxDiagnostics {
		c.diagnostics = append(c.diagnostics, d)
	}
	return d
}

// AddObligation allocates a fresh obligation id and stores o.
func (c *Collector) AddObligation(o *Obligation) *Obligation {
	o.ID = c.nextOblID
	c.nextOblID++
	c.obligations = append(c.obligations, o)
	return o
}

// AddHole allocates a fresh hole id and stores h.
func (c *Collector) AddHole(h *TypeHole) *TypeHole {
	h.ID = c.nextHoleID
	c.nextHoleID++
	c.holes = append(c.holes, h)
	return h
}

func (c *Collector) Diagnostics() []*Diagnostic { return c.diagnostics }
func (c *Collector) Obligations() []*Obligation { return c.obligations }
func (c *Collector) Holes() []*TypeHole         { return c.holes }

// HasErrors reports whether any diagnostic at SevError severity exists.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

// ErrorCount counts SevError diagnostics.
func (c *Collector) ErrorCount() int {
	n := 0
	for _, d := range c.diagnostics {
		if d.Severity == SevError {
			n++
		}
	}
	return n
}

// UndischargedObligations counts obligations whose solver result is not
// "discharged" — used to derive the "incomplete" compile status (spec §7).
func (c *Collector) UndischargedObligations() int {
	n := 0
	for _, o := range c.obligations {
		if o.SolverResult != SolverDischarged {
			n++
		}
	}
	return n
}

// Sort orders diagnostics by (file, line, column) per spec §5's ordering
// guarantee for output, stable on ties so emission order breaks ties.
func (c *Collector) Sort() {
	sort.SliceStable(c.diagnostics, func(i, j int) bool {
		a, b := c.diagnostics[i].Location, c.diagnostics[j].Location
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Start.Line != b.Start.Line {
			return a.Start.Line < b.Start.Line
		}
		return a.Start.Column < b.Start.Column
	})
}

// Dedup removes diagnostics that share both Code and Location, keeping
// the first occurrence.
func (c *Collector) Dedup() {
	seen := make(map[string]bool, len(c.diagnostics))
	out := c.diagnostics[:0:0]
	for _, d := range c.diagnostics {
		key := fmt.Sprintf("%s@%s", d.Code, d.Location)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	c.diagnostics = out
}

// Merge absorbs another Collector's records (e.g. from checking a
// separate file passed through its own pass). Ids are not renumbered —
// the counters are advanced far enough that future allocations in c never
// collide with ids already present in other.
func (c *Collector) Merge(other *Collector) {
	c.diagnostics = append(c.diagnostics, other.diagnostics...)
	c.obligations = append(c.obligations, other.obligations...)
	c.holes = append(c.holes, other.holes...)
	if other.nextDiagID > c.nextDiagID {
		c.nextDiagID = other.nextDiagID
	}
	if other.nextOblID > c.nextOblID {
		c.nextOblID = other.nextOblID
	}
	if other.nextHoleID > c.nextHoleID {
		c.nextHoleID = other.nextHoleID
	}
}
