package diag

import "github.com/axonlang/clank/internal/ast"

// ID is a monotonically-allocated diagnostic identifier, unique within one
// compilation (invariant I1). It is an instance-scoped counter value, not
// a process-wide global — see Collector.
type ID int

// Hint is one suggested next step attached to a Diagnostic or Obligation.
// Strategy names a fixed hint kind ("guard", "refine_param", "assert",
// "info" — the four the hint generator in internal/check always produces
// for an unproven refinement obligation).
type Hint struct {
	Strategy    string     `json:"strategy"`
	Description string     `json:"description"`
	Template    string     `json:"template,omitempty"`
	Confidence  Confidence `json:"confidence"`
}

// Related is a secondary location referenced by a diagnostic (e.g. the
// declaration site of a variable reassigned immutably).
type Related struct {
	Message  string   `json:"message"`
	Location ast.Span `json:"location"`
}

// Diagnostic is a single error/warning/info/hint record, per spec §3.
type Diagnostic struct {
	ID            ID              `json:"id"`
	Severity      Severity        `json:"severity"`
	Code          Code            `json:"code"`
	Message       string          `json:"message"`
	Location      ast.Span        `json:"location"`
	PrimaryNodeID ast.NodeID      `json:"primaryNodeId"`
	Structured    map[string]any  `json:"structured,omitempty"`
	Hints         []Hint          `json:"hints,omitempty"`
	Related       []Related       `json:"related,omitempty"`
	RepairRefs    []int           `json:"repairRefs,omitempty"` // populated by internal/aggregate (invariant I3)
}

// Obligation is a proof goal the checker could not discharge locally.
type Obligation struct {
	ID              int               `json:"id"`
	Kind            ObligationKind    `json:"kind"`
	Goal            string            `json:"goal"` // formatted predicate
	Location        ast.Span          `json:"location"`
	PrimaryNodeID   ast.NodeID        `json:"primaryNodeId"`
	Context         ObligationContext `json:"context"`
	Hints           []Hint            `json:"hints,omitempty"`
	SolverAttempted bool              `json:"solverAttempted"`
	SolverResult    SolverResult      `json:"solverResult"`
	UnknownReason   string            `json:"unknownReason,omitempty"`
	Counterexample  map[string]string `json:"counterexample,omitempty"`
	RepairRefs      []int             `json:"repairRefs,omitempty"`
}

// ObligationContext is a frozen snapshot of the refinement context's
// bindings and facts at the point the obligation was raised.
type ObligationContext struct {
	Bindings []string `json:"bindings,omitempty"`
	Facts    []string `json:"facts,omitempty"`
}

// TypeHole marks a location the checker could not assign a concrete type
// to (e.g. an unimplemented branch), with candidate fills for the repair
// generator.
type TypeHole struct {
	ID             int        `json:"id"`
	Location       ast.Span   `json:"location"`
	NodeID         ast.NodeID `json:"nodeId"`
	ExpectedType   string     `json:"expectedType"`
	Bindings       []string   `json:"bindings,omitempty"`
	AllowedEffects []string   `json:"allowedEffects,omitempty"`
	FillCandidates []string   `json:"fillCandidates,omitempty"`
	RepairRefs     []int      `json:"repairRefs,omitempty"`
}
