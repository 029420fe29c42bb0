package ast

import "fmt"

// ParseErrorKind is the closed taxonomy of ways a parse can fail. No other
// failure mode exists in this data model; any host-facing error handling
// layer can exhaustively switch over it.
type ParseErrorKind int

const (
	// DidNotFullyReduce means the frame closed with more than one item
	// left on the reducer stack: the input was not a single expression.
	DidNotFullyReduce ParseErrorKind = iota
	// ArrayLiteralNotNoun means a bracketed literal's body reduced to
	// something other than a Noun.
	ArrayLiteralNotNoun
	// BadReference means a name resolved to an Identifier whose binding
	// itself failed, transitively failing everything waiting on it.
	BadReference
	// SubAssignmentFailed means a BlockTask's batch contains an
	// assignment that itself terminated in ParseError.
	SubAssignmentFailed
	// CyclicAssignments means a block stopped making progress with at
	// least one assignment still blocked: on a sibling binding that never
	// completed (a cycle, including an assignment that refers to itself),
	// or on a name bound nowhere in the scope chain.
	CyclicAssignments
	// BlockWithoutResult means a block's assignments all resolved but
	// none of them bound to `_`, so there is no result expression.
	BlockWithoutResult
)

func (k ParseErrorKind) String() string {
	switch k {
	case DidNotFullyReduce:
		return "DidNotFullyReduce"
	case ArrayLiteralNotNoun:
		return "ArrayLiteralNotNoun"
	case BadReference:
		return "BadReference"
	case SubAssignmentFailed:
		return "SubAssignmentFailed"
	case CyclicAssignments:
		return "CyclicAssignments"
	case BlockWithoutResult:
		return "BlockWithoutResult"
	default:
		return "UnknownParseError"
	}
}

// ParseError is the single error type every component in this package
// returns. Reference carries the offending Identifier for BadReference;
// it is the zero Identifier for every other kind.
type ParseError struct {
	Kind      ParseErrorKind
	Reference Identifier
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case BadReference:
		return fmt.Sprintf("bad reference to %s", e.Reference)
	default:
		return e.Kind.String()
	}
}

func NewParseError(kind ParseErrorKind) *ParseError {
	return &ParseError{Kind: kind}
}

func NewBadReference(id Identifier) *ParseError {
	return &ParseError{Kind: BadReference, Reference: id}
}
