// Package diagnostics renders the core's ast.ParseError values into a
// host-facing shape: a closed error code, the phase that raised it, and a
// human-readable message, in the same style the teacher's diagnostics
// package uses for its own lexer/parser/analyzer/runtime errors.
package diagnostics

import (
	"fmt"

	"github.com/ianthehenry/dim/internal/ast"
)

// Phase names which component of the core raised a diagnostic.
type Phase string

const (
	PhaseReduce     Phase = "reduce"
	PhaseExpression Phase = "expression"
	PhaseScope      Phase = "scope"
	PhaseBlock      Phase = "block"
)

// ErrorCode is the closed taxonomy mirroring ast.ParseErrorKind.
type ErrorCode string

const (
	ErrDidNotFullyReduce   ErrorCode = "E001"
	ErrArrayLiteralNotNoun ErrorCode = "E002"
	ErrBadReference        ErrorCode = "E003"
	ErrSubAssignmentFailed ErrorCode = "E004"
	ErrCyclicAssignments   ErrorCode = "E005"
	ErrBlockWithoutResult  ErrorCode = "E006"
)

var errorTemplates = map[ErrorCode]string{
	ErrDidNotFullyReduce:   "expression did not fully reduce to a single value",
	ErrArrayLiteralNotNoun: "array literal body did not reduce to a noun",
	ErrBadReference:        "reference to %s failed to resolve",
	ErrSubAssignmentFailed: "block contains a failed assignment",
	ErrCyclicAssignments:   "assignments form a cycle with no resolving external binding",
	ErrBlockWithoutResult:  "block has no binding named `_`",
}

var phaseByKind = map[ast.ParseErrorKind]Phase{
	ast.DidNotFullyReduce:   PhaseExpression,
	ast.ArrayLiteralNotNoun: PhaseExpression,
	ast.BadReference:        PhaseScope,
	ast.SubAssignmentFailed: PhaseBlock,
	ast.CyclicAssignments:   PhaseBlock,
	ast.BlockWithoutResult:  PhaseBlock,
}

var codeByKind = map[ast.ParseErrorKind]ErrorCode{
	ast.DidNotFullyReduce:   ErrDidNotFullyReduce,
	ast.ArrayLiteralNotNoun: ErrArrayLiteralNotNoun,
	ast.BadReference:        ErrBadReference,
	ast.SubAssignmentFailed: ErrSubAssignmentFailed,
	ast.CyclicAssignments:   ErrCyclicAssignments,
	ast.BlockWithoutResult:  ErrBlockWithoutResult,
}

// DiagnosticError is what a host sees instead of a bare ast.ParseError: a
// stable code and phase it can switch on, plus a rendered message.
type DiagnosticError struct {
	Code  ErrorCode
	Phase Phase
	Args  []interface{}
}

func (e *DiagnosticError) Error() string {
	template, ok := errorTemplates[e.Code]
	if !ok {
		return fmt.Sprintf("unknown error code: %s", e.Code)
	}
	message := fmt.Sprintf(template, e.Args...)
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Code, message)
}

// Describe adapts a core ast.ParseError into a DiagnosticError. Every
// ast.ParseErrorKind has a code and phase; a nil err or an unrecognized
// kind both indicate a bug in the caller, not a real diagnostic, so
// Describe panics rather than returning a malformed error.
func Describe(err *ast.ParseError) *DiagnosticError {
	if err == nil {
		panic("diagnostics: Describe called with a nil ParseError")
	}
	code, ok := codeByKind[err.Kind]
	if !ok {
		panic(fmt.Sprintf("diagnostics: unrecognized ParseErrorKind %v", err.Kind))
	}
	var args []interface{}
	if err.Kind == ast.BadReference {
		args = []interface{}{err.Reference.String()}
	}
	return &DiagnosticError{Code: code, Phase: phaseByKind[err.Kind], Args: args}
}
