package repair

import (
	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
)

// Safety classifies how confident the generator is that applying a
// repair preserves the program's intended behavior.
type Safety string

const (
	BehaviorPreserving Safety = "behavior_preserving"
	LikelyPreserving   Safety = "likely_preserving"
	BehaviorChanging   Safety = "behavior_changing"
)

// RepairKind classifies the shape of change a repair makes.
type RepairKind string

const (
	KindLocalFix           RepairKind = "local_fix"
	KindRefactor           RepairKind = "refactor"
	KindBoundaryValidation RepairKind = "boundary_validation"
	KindSemanticsChange    RepairKind = "semantics_change"
)

// Scope summarizes how large a repair's blast radius is.
type Scope struct {
	NodeCount       int  `json:"nodeCount"`
	CrossesFunction bool `json:"crossesFunction"`
}

// Targets is what a repair addresses, by id — never by owning pointer
// (spec §9's "Cycle/back-reference concerns": the AST is indexed once,
// repairs reference it by id only).
type Targets struct {
	NodeIDs         []ast.NodeID `json:"nodeIds,omitempty"`
	DiagnosticCodes []diag.Code  `json:"diagnosticCodes,omitempty"`
	ObligationIDs   []int        `json:"obligationIds,omitempty"`
	HoleIDs         []int        `json:"holeIds,omitempty"`
}

// ExpectedDelta is what applying a repair is expected to resolve.
type ExpectedDelta struct {
	DiagnosticsResolved   []diag.ID `json:"diagnosticsResolved,omitempty"`
	ObligationsDischarged []int     `json:"obligationsDischarged,omitempty"`
	HolesFilled           []int     `json:"holesFilled,omitempty"`
}

// Candidate is spec §3's RepairCandidate.
type Candidate struct {
	ID            int             `json:"id"`
	Title         string          `json:"title"`
	Confidence    diag.Confidence `json:"confidence"`
	Safety        Safety          `json:"safety"`
	Kind          RepairKind      `json:"kind"`
	Scope         Scope           `json:"scope"`
	Targets       Targets         `json:"targets"`
	Edits         []PatchOp       `json:"edits"`
	ExpectedDelta ExpectedDelta   `json:"expectedDelta"`
	Rationale     string          `json:"rationale"`
	Preconditions []string        `json:"preconditions,omitempty"`
}
