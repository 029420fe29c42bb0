package pipeline

import (
	"github.com/google/uuid"

	"github.com/ianthehenry/dim/internal/ast"
	"github.com/ianthehenry/dim/internal/diagnostics"
)

// Assignment mirrors parser.Assignment without importing the parser
// package, so pipeline stays a leaf that parser (and anything else) can
// depend on without a cycle; a ParserProcessor converts between the two.
type Assignment struct {
	Name  string
	Terms []ast.Term
}

// PipelineContext holds everything a run's Processor stages read and write:
// the scope the batch resolves against, the batch itself (either a bare
// expression's terms or a block's assignments), and the outcome once a
// ParserProcessor has driven it to completion.
type PipelineContext struct {
	Scope *ast.Scope

	// Exactly one of Terms or Assignments is populated, depending on
	// whether this run parses a standalone expression or a block.
	Terms       []ast.Term
	Assignments []Assignment

	Result    ast.Expression
	ResultPOS ast.PartOfSpeech
	Errors    []*diagnostics.DiagnosticError

	// TraceID correlates this run's suspend/resume cycles in an optional
	// diagnostics.Trace sink.
	TraceID string
}

// NewPipelineContext creates a context for parsing terms as a standalone
// expression against scope.
func NewPipelineContext(scope *ast.Scope, terms []ast.Term) *PipelineContext {
	return &PipelineContext{
		Scope:   scope,
		Terms:   terms,
		TraceID: uuid.NewString(),
	}
}

// NewBlockPipelineContext creates a context for parsing assignments as a
// block against scope.
func NewBlockPipelineContext(scope *ast.Scope, assignments []Assignment) *PipelineContext {
	return &PipelineContext{
		Scope:       scope,
		Assignments: assignments,
		TraceID:     uuid.NewString(),
	}
}
