package repair

import (
	"fmt"

	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
)

// forObligation is spec §4.I's per-obligation handler: walk the
// obligation's hints (produced by internal/check's hint generator) and
// turn the actionable ones (guard, assert) into repairs. refine_param
// and info hints are informational only and produce nothing.
func (g *Generator) forObligation(o *diag.Obligation) []*Candidate {
	var out []*Candidate
	for _, h := range o.Hints {
		switch h.Strategy {
		case "guard":
			out = append(out, &Candidate{
				Title:      "Add a guard before this point",
				Confidence: h.Confidence,
				Safety:     LikelyPreserving,
				Kind:       KindBoundaryValidation,
				Scope:      Scope{NodeCount: 1},
				Targets:    Targets{NodeIDs: []ast.NodeID{o.PrimaryNodeID}, ObligationIDs: []int{o.ID}},
				Edits: []PatchOp{Wrap{
					NodeID:  o.PrimaryNodeID,
					Wrapper: h.Template,
				}},
				ExpectedDelta: ExpectedDelta{ObligationsDischarged: []int{o.ID}},
				Rationale:     fmt.Sprintf("could not prove %q; a runtime guard makes it hold by construction", o.Goal),
			})
		case "assert":
			out = append(out, &Candidate{
				Title:      "Insert an assertion for this obligation",
				Confidence: h.Confidence,
				Safety:     LikelyPreserving,
				Kind:       KindBoundaryValidation,
				Scope:      Scope{NodeCount: 1},
				Targets:    Targets{NodeIDs: []ast.NodeID{o.PrimaryNodeID}, ObligationIDs: []int{o.ID}},
				Edits: []PatchOp{InsertBefore{
					NodeID: o.PrimaryNodeID,
					Source: h.Template,
				}},
				ExpectedDelta: ExpectedDelta{ObligationsDischarged: []int{o.ID}},
				Rationale:     fmt.Sprintf("could not prove %q; asserting it surfaces a runtime failure instead of silently proceeding", o.Goal),
			})
		}
		// "refine_param" and "info" hints are informational only — no
		// repair to offer (spec §4.I).
	}
	return out
}
