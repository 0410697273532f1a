// Package compiler wires the pipeline together: internal/check runs the
// three-pass type/refinement check over a Program, internal/repair
// synthesizes fixes from what it finds, internal/aggregate back-links
// them and assembles stats, and this package packages the result as
// spec §6's CompileResult.
//
// Grounded on sunholo-data-ailang/internal/parser/parser.go's
// ParseFile: a pass-boundary `defer recover()` that turns an internal
// panic into a reported error rather than letting it escape to the
// caller, which is exactly spec §7's "(3) Internal invariants... should
// never expose these" rule for this package's public entrypoints.
package compiler

import (
	"errors"
	"fmt"
	"time"

	"github.com/axonlang/clank/internal/aggregate"
	"github.com/axonlang/clank/internal/ast"
	"github.com/axonlang/clank/internal/check"
	"github.com/axonlang/clank/internal/config"
	"github.com/axonlang/clank/internal/diag"
	"github.com/axonlang/clank/internal/repair"
)

// Version is the compiler's self-reported version, surfaced in
// CompileResult.compilerVersion. Set by ldflags during a real build
// (mirrors the teacher's cmd/ailang Version/Commit/BuildTime vars);
// "dev" otherwise.
var Version = "dev"

// Status is spec §7's three-way compile outcome.
type Status string

const (
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
	StatusIncomplete Status = "incomplete"
)

// Result is spec §6's CompileResult. canonical_ast/output are omitted:
// this module has no AST-printer or emitter collaborator, so a caller
// that has those artifacts attaches them itself before serializing.
type Result struct {
	Status          Status               `json:"status"`
	CompilerVersion string               `json:"compilerVersion"`
	Diagnostics     []*diag.Diagnostic   `json:"diagnostics"`
	Obligations     []*diag.Obligation   `json:"obligations"`
	Holes           []*diag.TypeHole     `json:"holes"`
	Repairs         []*repair.Candidate  `json:"repairs"`
	Stats           aggregate.Stats      `json:"stats"`
}

// InternalError wraps a recovered panic from a Compiler pass — spec
// §7's class (3), "any violation is a programmer error". It is only
// ever returned, never silently swallowed, so a caller can log it and
// escalate rather than receiving a corrupted Result.
type InternalError struct {
	Phase string
	Cause any
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("clank: internal error in %s: %v", e.Phase, e.Cause)
}

// Compiler runs compilations. Construct with New; every CompileProgram
// call builds its own Checker (with its Collector) and repair Generator,
// which own the monotonic id counters (spec §9's redesign note), so no
// counter state survives between CompileProgram calls, and so there is
// no Reset: parallel compilations just use independent Compiler
// instances.
type Compiler struct {
	cfg      config.Config
	reparser ast.Reparser
}

// Option configures a Compiler at construction time.
type Option func(*Compiler)

// WithConfig overrides the default configuration.
func WithConfig(cfg config.Config) Option {
	return func(c *Compiler) { c.cfg = cfg }
}

// WithReparser supplies the external collaborator CompileJSON delegates
// to when a JSON AST document embeds a `{source, file?}` fragment node
// (spec §6). Without one, a fragment node makes CompileJSON report E0009
// rather than panicking or silently dropping the fragment.
func WithReparser(r ast.Reparser) Option {
	return func(c *Compiler) { c.reparser = r }
}

// New returns a Compiler configured with config.Default(), as modified
// by opts.
func New(opts ...Option) *Compiler {
	c := &Compiler{cfg: config.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompileProgram runs the full pipeline over an already-parsed prog:
// check, then repair synthesis, then back-linking and stats assembly.
// It never returns a (nil, nil) pair — a recovered internal panic comes
// back as (nil, *InternalError) instead of being folded into Result.
func (c *Compiler) CompileProgram(prog *ast.Program) (result *Result, err error) {
	start := timeNow()
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &InternalError{Phase: "compile", Cause: r}
		}
	}()

	checker := check.NewCheckerWithBudget(c.cfg.Diag.MaxDiagnostics, c.cfg.Solver.MaxFactSteps)
	checker.CheckProgram(prog)
	checker.Diags.Sort()

	diags := checker.Diags.Diagnostics()
	obls := checker.Diags.Obligations()
	holes := checker.Diags.Holes()

	gen := repair.NewGenerator(prog)
	repairs := gen.Generate(diags, obls)
	aggregate.BackLinkRepairs(diags, obls, repairs)

	stats := aggregate.BuildStats(prog, obls, elapsedMs(start))

	status := StatusSuccess
	switch {
	case checker.Diags.HasErrors():
		status = StatusError
	case checker.Diags.UndischargedObligations() > 0:
		status = StatusIncomplete
	}

	return &Result{
		Status:          status,
		CompilerVersion: Version,
		Diagnostics:     diags,
		Obligations:     obls,
		Holes:           holes,
		Repairs:         repairs,
		Stats:           stats,
	}, nil
}

// CompileJSON accepts the JSON AST document described in spec §6 — the
// input boundary for a caller that has a wire-format AST rather than an
// already-built *ast.Program. It unmarshals data via ast.DecodeProgram
// (using the Reparser installed via WithReparser, if any) and then runs
// CompileProgram. A fragment node with no Reparser available does not
// abort the compile: it comes back as an ordinary error-status Result
// carrying a single E0009 diagnostic, the same shape any other compile
// failure takes.
func (c *Compiler) CompileJSON(data []byte) (*Result, error) {
	prog, err := ast.DecodeProgram(data, c.reparser)
	if err != nil {
		var needsReparser *ast.ErrNeedsReparser
		if errors.As(err, &needsReparser) {
			return c.fragmentResult(needsReparser), nil
		}
		return nil, fmt.Errorf("clank: decoding JSON AST: %w", err)
	}
	return c.CompileProgram(prog)
}

// fragmentResult builds the Result CompileJSON returns when the document
// contains a reparse fragment and no Reparser was configured.
func (c *Compiler) fragmentResult(e *ast.ErrNeedsReparser) *Result {
	collector := diag.NewCollector(c.cfg.Diag.MaxDiagnostics)
	collector.Emit(diag.SevError, diag.E0009, e.Error(), ast.Span{}, ast.NoNodeID)
	return &Result{
		Status:          StatusError,
		CompilerVersion: Version,
		Diagnostics:     collector.Diagnostics(),
		Obligations:     collector.Obligations(),
		Holes:           collector.Holes(),
		Repairs:         nil,
		Stats:           aggregate.Stats{},
	}
}

// timeNow/elapsedMs isolate the one piece of wall-clock measurement this
// package needs behind named helpers, matching this module's convention
// of never calling time.Now()/Since() inline in pipeline logic.
func timeNow() time.Time { return time.Now() }

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
