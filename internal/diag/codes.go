// Package diag implements the diagnostic taxonomy (component H): the
// closed error-code enumeration, severities, and the Diagnostic/
// Obligation/TypeHole records the checker (internal/check) emits and the
// repair generator (internal/repair) consumes.
package diag

// Severity classifies how a Diagnostic should be treated by a consumer.
type Severity string

const (
	SevError   Severity = "error"
	SevWarning Severity = "warning"
	SevInfo    Severity = "info"
	SevHint    Severity = "hint"
)

// Code is a closed error/warning code from the authoritative enumeration
// in spec §6. Unlike the teacher's ailang/errors package (which treats
// codes as free-form strings per phase), Clank's codes are a fixed,
// pre-declared set: the repair generator dispatches on Code directly.
type Code string

const (
	// E0xxx: syntax (handled upstream by the parser collaborator; E0009
	// is the one syntax code this module itself can raise, for a JSON-AST
	// fragment with no reparser available).
	E0009 Code = "E0009" // fragment requires a reparser

	// E1xxx: name resolution.
	E1001 Code = "E1001" // unresolved name
	E1002 Code = "E1002" // duplicate definition
	E1003 Code = "E1003" // import not found
	E1004 Code = "E1004" // module not found
	E1005 Code = "E1005" // unresolved type
	E1006 Code = "E1006" // variant not found

	// E2xxx: type errors.
	E2001 Code = "E2001" // type mismatch
	E2002 Code = "E2002" // arity mismatch
	E2003 Code = "E2003" // missing field
	E2004 Code = "E2004" // unknown field
	E2005 Code = "E2005" // not callable
	E2006 Code = "E2006" // not indexable
	E2007 Code = "E2007" // missing annotation
	E2008 Code = "E2008" // recursive type
	E2009 Code = "E2009" // pattern mismatch
	E2010 Code = "E2010" // not iterable
	E2011 Code = "E2011" // not a record
	E2012 Code = "E2012" // invalid propagate
	E2013 Code = "E2013" // immutable assign
	E2014 Code = "E2014" // return outside fn
	E2015 Code = "E2015" // non-exhaustive match
	E2016 Code = "E2016" // invalid operand
	E2017 Code = "E2017" // type param mismatch
	E2018 Code = "E2018" // infinite type

	// E3xxx: refinement.
	E3001 Code = "E3001" // unprovable refinement
	E3002 Code = "E3002" // precondition
	E3003 Code = "E3003" // postcondition
	E3004 Code = "E3004" // assertion unprovable

	// E4xxx: effects.
	E4001 Code = "E4001" // effect not allowed
	E4002 Code = "E4002" // unhandled effect
	E4003 Code = "E4003" // effect mismatch

	// E5xxx: linearity.
	E5001 Code = "E5001"
	E5002 Code = "E5002"
	E5003 Code = "E5003"

	// W0xxx: warnings.
	W0001 Code = "W0001" // unused variable
	W0002 Code = "W0002"
	W0003 Code = "W0003"
	W0004 Code = "W0004"
	W0005 Code = "W0005"
	W0006 Code = "W0006"
)

// Confidence is the hint/repair confidence scale from spec §3.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ObligationKind distinguishes what kind of proof goal an Obligation
// records.
type ObligationKind string

const (
	ObligationRefinement    ObligationKind = "refinement"
	ObligationPrecondition  ObligationKind = "precondition"
	ObligationPostcondition ObligationKind = "postcondition"
	ObligationEffect        ObligationKind = "effect"
	ObligationLinearity     ObligationKind = "linearity"
)

// SolverResult mirrors internal/refine.Status in the diagnostic-facing
// vocabulary (spec §9 standardizes on these three names, superseding the
// source's inconsistent "counterexample"/"refuted" split).
type SolverResult string

const (
	SolverDischarged SolverResult = "discharged"
	SolverRefuted    SolverResult = "refuted"
	SolverUnknown    SolverResult = "unknown"
)
