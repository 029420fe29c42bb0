package parser

import (
	"context"

	"github.com/ianthehenry/dim/internal/ast"
	"github.com/ianthehenry/dim/internal/diagnostics"
	"github.com/ianthehenry/dim/internal/pipeline"
)

// ParserProcessor wires the reducer and its tasks into a pipeline.Pipeline:
// it parses ctx.Terms as a standalone expression, or ctx.Assignments as a
// block, against ctx.Scope, and records the outcome (or a diagnostics
// error) back onto ctx. When Trace is set, every assignment in a block run
// is additionally logged under ctx.TraceID, one row per settled outcome.
type ParserProcessor struct {
	Trace *diagnostics.Trace
}

// New returns a ParserProcessor, matching the teacher's convention of a
// package-level constructor per pipeline stage. trace may be nil, in which
// case the processor runs without recording history.
func New(trace *diagnostics.Trace) *ParserProcessor { return &ParserProcessor{Trace: trace} }

func (p *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	var (
		expr ast.Expression
		pos  ast.PartOfSpeech
		err  error
	)

	switch {
	case ctx.Assignments != nil:
		expr, pos, err = p.processBlock(ctx)
	default:
		nextID := ctx.Scope.NextIdentifier()
		expr, pos, err = ParseExpression(ctx.Scope, nextID, ctx.Terms)
	}

	if err != nil {
		if pe, ok := err.(*ast.ParseError); ok {
			ctx.Errors = append(ctx.Errors, diagnostics.Describe(pe))
		}
		return ctx
	}

	ctx.Result, ctx.ResultPOS = expr, pos
	return ctx
}

// processBlock drives ctx.Assignments as a block, recording every
// assignment's terminal status to p.Trace (if set) regardless of whether
// the block as a whole succeeded.
func (p *ParserProcessor) processBlock(ctx *pipeline.PipelineContext) (ast.Expression, ast.PartOfSpeech, error) {
	assignments := make([]Assignment, len(ctx.Assignments))
	for i, a := range ctx.Assignments {
		assignments[i] = Assignment{Name: a.Name, Terms: a.Terms}
	}

	bt := NewBlockTask(ctx.Scope, assignments)
	expr, pos, err := bt.Run()

	if p.Trace != nil {
		p.recordSnapshot(ctx, bt)
	}

	return expr, pos, err
}

func (p *ParserProcessor) recordSnapshot(ctx *pipeline.PipelineContext, bt *BlockTask) {
	for _, s := range bt.Snapshot() {
		var phase diagnostics.Phase
		var outcome string
		switch s.Status {
		case OutcomeComplete:
			phase, outcome = diagnostics.PhaseBlock, "complete"
		case OutcomeFailed:
			phase, outcome = diagnostics.PhaseBlock, "failed"
		default:
			phase, outcome = diagnostics.PhaseBlock, "blocked"
		}
		// Recording is best-effort diagnostics: a trace sink failure must
		// never affect the parse outcome itself.
		_ = p.Trace.Record(context.Background(), ctx.TraceID, uint64(s.ID.ID), s.ID.Name, phase, outcome)
	}
}
