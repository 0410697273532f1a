package repair

import (
	"fmt"

	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/diag"
)

// forDiagnostic is spec §4.I's per-diagnostic handler table. Each case
// mirrors exactly one row of that table; codes with no row produce no
// repairs.
func (g *Generator) forDiagnostic(d *diag.Diagnostic) []*Candidate {
	switch d.Code {
	case diag.E1001:
		return g.renameSymbolRepairs(d, "similar_names")
	case diag.E1005:
		return g.renameSymbolRepairs(d, "similar_types")
	case diag.E2001:
		return g.conversionRepair(d)
	case diag.E2002:
		return g.arityRepair(d)
	case diag.E2003:
		return g.missingFieldRepair(d)
	case diag.E2004:
		return g.renameFieldRepairs(d)
	case diag.E2013:
		return g.immutableAssignRepair(d)
	case diag.E2015:
		return g.nonExhaustiveRepair(d)
	case diag.E4001:
		return g.widenEffectRepair(d, "function")
	case diag.E4002:
		return g.widenEffectRepair(d, "function")
	case diag.W0001:
		return g.unusedVariableRepair(d)
	default:
		return nil
	}
}

func stringSlice(structured map[string]any, key string) []string {
	v, ok := structured[key].([]string)
	if !ok {
		return nil
	}
	return v
}

func stringField(structured map[string]any, key string) (string, bool) {
	v, ok := structured[key].(string)
	return v, ok
}

// oldNameFromMessage extracts the offending identifier out of
// "unresolved name: foo" / "unresolved type: Foo"-style messages, since
// the diagnostic doesn't otherwise carry the original spelling apart
// from its message text.
func oldNameFromMessage(message string) string {
	for i := len(message) - 1; i >= 0; i-- {
		if message[i] == ' ' {
			return message[i+1:]
		}
	}
	return message
}

// renameSymbolRepairs handles E1001/E1005: one rename_symbol repair per
// suggested name, first-choice marked high confidence, the rest medium
// (spec §4.I's rank rule).
func (g *Generator) renameSymbolRepairs(d *diag.Diagnostic, key string) []*Candidate {
	names := stringSlice(d.Structured, key)
	if len(names) == 0 {
		return nil
	}
	old := oldNameFromMessage(d.Message)
	out := make([]*Candidate, 0, len(names))
	for i, newName := range names {
		confidence := diag.ConfidenceMedium
		if i == 0 {
			confidence = diag.ConfidenceHigh
		}
		out = append(out, &Candidate{
			Title:      fmt.Sprintf("Rename %q to %q", old, newName),
			Confidence: confidence,
			Safety:     BehaviorChanging,
			Kind:       KindLocalFix,
			Scope:      Scope{NodeCount: 1},
			Targets:    Targets{NodeIDs: []ast.NodeID{d.PrimaryNodeID}, DiagnosticCodes: []diag.Code{d.Code}},
			Edits: []PatchOp{RenameSymbol{
				NodeID:  d.PrimaryNodeID,
				OldName: old,
				NewName: newName,
			}},
			ExpectedDelta: ExpectedDelta{DiagnosticsResolved: []diag.ID{d.ID}},
			Rationale:     fmt.Sprintf("%q is not defined; %q is a close match in scope", old, newName),
		})
	}
	return out
}

// conversionRepair handles E2001: wrap the mismatched value with a
// conversion call chosen by the observed (expected, actual) type pair.
func (g *Generator) conversionRepair(d *diag.Diagnostic) []*Candidate {
	expected, ok1 := stringField(d.Structured, "expected")
	actual, ok2 := stringField(d.Structured, "actual")
	if !ok1 || !ok2 {
		return nil
	}
	fn, confidence, ok := conversionFor(expected, actual)
	if !ok {
		return nil
	}
	return []*Candidate{{
		Title:      fmt.Sprintf("Convert with %s(...)", fn),
		Confidence: confidence,
		Safety:     BehaviorChanging,
		Kind:       KindLocalFix,
		Scope:      Scope{NodeCount: 1},
		Targets:    Targets{NodeIDs: []ast.NodeID{d.PrimaryNodeID}, DiagnosticCodes: []diag.Code{d.Code}},
		Edits: []PatchOp{Wrap{
			NodeID:  d.PrimaryNodeID,
			Wrapper: fn + "(...)",
		}},
		ExpectedDelta: ExpectedDelta{DiagnosticsResolved: []diag.ID{d.ID}},
		Rationale:     fmt.Sprintf("expected %s but found %s; %s bridges the two", expected, actual, fn),
	}}
}

func conversionFor(expected, actual string) (string, diag.Confidence, bool) {
	switch {
	case expected == "Float" && actual == "Int":
		return "int_to_float", diag.ConfidenceHigh, true
	case expected == "Int" && actual == "Float":
		return "float_to_int", diag.ConfidenceHigh, true
	case expected == "Str":
		return "to_string", diag.ConfidenceMedium, true
	default:
		return "", "", false
	}
}

// arityRepair handles E2002: pad with placeholder args when too few
// were supplied, or slice off the excess when too many were.
func (g *Generator) arityRepair(d *diag.Diagnostic) []*Candidate {
	expected, ok1 := d.Structured["expected"].(int)
	actual, ok2 := d.Structured["actual"].(int)
	if !ok1 || !ok2 {
		return nil
	}
	title := "Add placeholder arguments to match the expected arity"
	if actual > expected {
		title = "Remove excess arguments to match the expected arity"
	}
	return []*Candidate{{
		Title:      title,
		Confidence: diag.ConfidenceMedium,
		Safety:     BehaviorChanging,
		Kind:       KindLocalFix,
		Scope:      Scope{NodeCount: 1},
		Targets:    Targets{NodeIDs: []ast.NodeID{d.PrimaryNodeID}, DiagnosticCodes: []diag.Code{d.Code}},
		Edits: []PatchOp{ReplaceNode{
			NodeID:      d.PrimaryNodeID,
			Description: fmt.Sprintf("call adjusted from %d to %d arguments", actual, expected),
		}},
		ExpectedDelta: ExpectedDelta{DiagnosticsResolved: []diag.ID{d.ID}},
		Rationale:     fmt.Sprintf("expected %d arguments, got %d", expected, actual),
	}}
}

// missingFieldRepair handles E2003: add the missing field with a
// placeholder identifier value.
func (g *Generator) missingFieldRepair(d *diag.Diagnostic) []*Candidate {
	field, ok := stringField(d.Structured, "field")
	if !ok {
		return nil
	}
	return []*Candidate{{
		Title:      fmt.Sprintf("Add missing field %q", field),
		Confidence: diag.ConfidenceHigh,
		Safety:     BehaviorChanging,
		Kind:       KindLocalFix,
		Scope:      Scope{NodeCount: 1},
		Targets:    Targets{NodeIDs: []ast.NodeID{d.PrimaryNodeID}, DiagnosticCodes: []diag.Code{d.Code}},
		Edits: []PatchOp{AddField{
			NodeID:    d.PrimaryNodeID,
			FieldName: field,
			FieldType: "_", // placeholder; a concrete type requires a value the repair has none of
		}},
		ExpectedDelta: ExpectedDelta{DiagnosticsResolved: []diag.ID{d.ID}},
		Rationale:     fmt.Sprintf("record literal is missing field %q", field),
	}}
}

// renameFieldRepairs handles E2004: one rename_field per suggested
// field name.
func (g *Generator) renameFieldRepairs(d *diag.Diagnostic) []*Candidate {
	names := stringSlice(d.Structured, "similar_fields")
	if len(names) == 0 {
		return nil
	}
	old := oldNameFromMessage(d.Message)
	out := make([]*Candidate, 0, len(names))
	for i, newName := range names {
		confidence := diag.ConfidenceMedium
		if i == 0 {
			confidence = diag.ConfidenceHigh
		}
		out = append(out, &Candidate{
			Title:      fmt.Sprintf("Rename field %q to %q", old, newName),
			Confidence: confidence,
			Safety:     BehaviorChanging,
			Kind:       KindLocalFix,
			Scope:      Scope{NodeCount: 1},
			Targets:    Targets{NodeIDs: []ast.NodeID{d.PrimaryNodeID}, DiagnosticCodes: []diag.Code{d.Code}},
			Edits: []PatchOp{RenameField{
				NodeID:  d.PrimaryNodeID,
				OldName: old,
				NewName: newName,
			}},
			ExpectedDelta: ExpectedDelta{DiagnosticsResolved: []diag.ID{d.ID}},
			Rationale:     fmt.Sprintf("field %q does not exist; %q is a close match", old, newName),
		})
	}
	return out
}

// immutableAssignRepair handles E2013: flip the owning `let` to mutable.
func (g *Generator) immutableAssignRepair(d *diag.Diagnostic) []*Candidate {
	name, ok := stringField(d.Structured, "name")
	if !ok {
		return nil
	}
	var declSpan ast.Span
	if len(d.Related) > 0 {
		declSpan = d.Related[0].Location
	}
	let, found := g.letStmtNear(name, declSpan)
	if !found {
		return nil
	}
	return []*Candidate{{
		Title:      fmt.Sprintf("Make %q mutable", name),
		Confidence: diag.ConfidenceHigh,
		Safety:     BehaviorPreserving,
		Kind:       KindLocalFix,
		Scope:      Scope{NodeCount: 1},
		Targets:    Targets{NodeIDs: []ast.NodeID{let.ID()}, DiagnosticCodes: []diag.Code{d.Code}},
		Edits: []PatchOp{ReplaceNode{
			NodeID:      let.ID(),
			Description: fmt.Sprintf("let %s = ... (mutable=true)", name),
		}},
		ExpectedDelta: ExpectedDelta{DiagnosticsResolved: []diag.ID{d.ID}},
		Rationale:     fmt.Sprintf("%q is reassigned but was declared immutable", name),
	}}
}

// nonExhaustiveRepair handles E2015: add a wildcard arm whose body
// panics, covering whatever cases remain unmatched.
func (g *Generator) nonExhaustiveRepair(d *diag.Diagnostic) []*Candidate {
	return []*Candidate{{
		Title:      "Add a wildcard arm that panics on unmatched cases",
		Confidence: diag.ConfidenceMedium,
		Safety:     LikelyPreserving,
		Kind:       KindLocalFix,
		Scope:      Scope{NodeCount: 1},
		Targets:    Targets{NodeIDs: []ast.NodeID{d.PrimaryNodeID}, DiagnosticCodes: []diag.Code{d.Code}},
		Edits: []PatchOp{ReplaceNode{
			NodeID:      d.PrimaryNodeID,
			Description: `adds arm: _ => panic("unreachable")`,
		}},
		ExpectedDelta: ExpectedDelta{DiagnosticsResolved: []diag.ID{d.ID}},
		Rationale:     "match does not cover every case; a panicking wildcard arm documents the assumption explicitly",
	}}
}

// widenEffectRepair handles E4001/E4002: add the missing effect to the
// owning function's declared effect set.
func (g *Generator) widenEffectRepair(d *diag.Diagnostic, fnKey string) []*Candidate {
	fnName, ok := stringField(d.Structured, fnKey)
	if !ok {
		return nil
	}
	effect, ok := stringField(d.Structured, "effect")
	if !ok {
		return nil
	}
	fn, found := g.fnDeclsByName[fnName]
	if !found {
		return nil
	}
	return []*Candidate{{
		Title:      fmt.Sprintf("Add %s effect to %q", effect, fnName),
		Confidence: diag.ConfidenceMedium,
		Safety:     LikelyPreserving,
		Kind:       KindLocalFix,
		Scope:      Scope{NodeCount: 1},
		Targets:    Targets{NodeIDs: []ast.NodeID{fn.ID()}, DiagnosticCodes: []diag.Code{d.Code}},
		Edits: []PatchOp{WidenEffect{
			FnID:       fn.ID(),
			AddEffects: []string{effect},
		}},
		ExpectedDelta: ExpectedDelta{DiagnosticsResolved: []diag.ID{d.ID}},
		Rationale:     fmt.Sprintf("%q performs the %s effect but doesn't declare it", fnName, effect),
	}}
}

// unusedVariableRepair handles W0001: rename the binding to `_name` so
// it reads as intentionally unused.
func (g *Generator) unusedVariableRepair(d *diag.Diagnostic) []*Candidate {
	name, ok := stringField(d.Structured, "name")
	if !ok {
		return nil
	}
	return []*Candidate{{
		Title:      fmt.Sprintf("Rename unused %q to %q", name, "_"+name),
		Confidence: diag.ConfidenceHigh,
		Safety:     BehaviorPreserving,
		Kind:       KindLocalFix,
		Scope:      Scope{NodeCount: 1},
		Targets:    Targets{NodeIDs: []ast.NodeID{d.PrimaryNodeID}, DiagnosticCodes: []diag.Code{d.Code}},
		Edits: []PatchOp{Rename{
			NodeID:  d.PrimaryNodeID,
			NewName: "_" + name,
		}},
		ExpectedDelta: ExpectedDelta{DiagnosticsResolved: []diag.ID{d.ID}},
		Rationale:     fmt.Sprintf("%q is never read", name),
	}}
}
