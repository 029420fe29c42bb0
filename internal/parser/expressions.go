package parser

import "github.com/ianthehenry/dim/internal/ast"

// finisher turns a frame's single reduced result into the value it
// contributes to its parent frame (or to the caller, for the outermost
// frame). identity leaves it untouched; wrapParens marks it as explicitly
// grouped; wrapBrackets requires it to be a Noun and turns it into an
// array literal.
type finisher func(ast.Expression, ast.PartOfSpeech) (ast.Expression, error)

func identity(e ast.Expression, _ ast.PartOfSpeech) (ast.Expression, error) {
	return e, nil
}

func wrapParens(e ast.Expression, _ ast.PartOfSpeech) (ast.Expression, error) {
	return ast.ParensExpr{Inner: e}, nil
}

func wrapBrackets(e ast.Expression, pos ast.PartOfSpeech) (ast.Expression, error) {
	if !pos.IsNoun() {
		return nil, ast.NewParseError(ast.ArrayLiteralNotNoun)
	}
	if tup, ok := e.(ast.TupleExpr); ok {
		return ast.BracketsExpr{Items: tup.Items}, nil
	}
	return ast.BracketsExpr{Items: []ast.Expression{e}}, nil
}

// parseFrame is one level of nesting: a Parens or Brackets term (or the
// outermost expression) being reduced independently of its parent, with
// its own reducer stack and its own slice of unconsumed input.
type parseFrame struct {
	input      []ast.Term
	stack      []slot
	endReached bool
	finish     finisher
}

func newParseFrame(input []ast.Term, finish finisher) *parseFrame {
	return &parseFrame{input: input, finish: finish}
}

// ExpressionStatus is what ExpressionTask.Parse reports after a step: a
// completed expression, or a name the caller must resolve (via Scope.Lookup
// and then Provide) before the task can continue.
type ExpressionStatus int

const (
	ExpressionComplete ExpressionStatus = iota
	ExpressionPendingName
)

// ExpressionResult is returned by every Parse() call that doesn't fail.
type ExpressionResult struct {
	Status ExpressionStatus
	Expr   ast.Expression
	POS    ast.PartOfSpeech
	Name   string
}

// ExpressionTask parses a single term stream into an Expression, suspending
// whenever it needs a name resolved. It consumes terms right-to-left: each
// step pops the last remaining term off the tail of the frame's input, so
// the rightmost unconsumed term is always the next one shifted onto the
// current frame's stack.
type ExpressionTask struct {
	frames []*parseFrame
}

// NewExpressionTask begins parsing terms, read in source order; Parse pops
// from the tail, so the first term shifted is terms[len(terms)-1].
func NewExpressionTask(terms []ast.Term) *ExpressionTask {
	return &ExpressionTask{frames: []*parseFrame{newParseFrame(clone(terms), identity)}}
}

func clone(terms []ast.Term) []ast.Term {
	out := make([]ast.Term, len(terms))
	copy(out, terms)
	return out
}

// Provide resumes the task after a name lookup resolved, pushing the
// identifier onto the current (innermost) frame as a Noun, Verb, or Adverb
// slot per pos, and feeding it back into Parse.
func (t *ExpressionTask) Provide(id ast.RichIdentifier, pos ast.PartOfSpeech) {
	frame := t.frames[len(t.frames)-1]
	frame.stack = append(frame.stack, tagged(ast.IdentifierExpr{ID: id}, pos))
}

// Parse drives the task forward until it completes, needs a name resolved,
// or fails. Call it again after Provide to continue from where it left off.
func (t *ExpressionTask) Parse() (ExpressionResult, error) {
	for {
		frame := t.frames[len(t.frames)-1]
		frame.stack = reduce(frame.stack)

		if len(frame.input) == 0 {
			if frame.endReached {
				expr, pos, err := closeFrame(frame)
				if err != nil {
					return ExpressionResult{}, err
				}

				t.frames = t.frames[:len(t.frames)-1]
				if len(t.frames) == 0 {
					return ExpressionResult{Status: ExpressionComplete, Expr: expr, POS: pos}, nil
				}
				parent := t.frames[len(t.frames)-1]
				parent.stack = append(parent.stack, tagged(expr, pos))
				continue
			}
			frame.endReached = true
			frame.stack = append(frame.stack, sentinel())
			continue
		}

		term := frame.input[len(frame.input)-1]
		frame.input = frame.input[:len(frame.input)-1]

		switch term := term.(type) {
		case ast.NumberTerm:
			frame.stack = append(frame.stack, noun(ast.NumberExpr{Value: term.Value}))
		case ast.CoefficientTerm:
			scale := ast.UnaryApplicationExpr{
				Func: ast.ImplicitExpr{Builtin: ast.Scale},
				Arg:  ast.NumberExpr{Value: term.Value},
			}
			frame.stack = append(frame.stack, tagged(scale, ast.Verb(ast.Unary)))
		case ast.IdentifierTerm:
			return ExpressionResult{Status: ExpressionPendingName, Name: term.Name}, nil
		case ast.ParensTerm:
			t.frames = append(t.frames, newParseFrame(clone(term.Inner), wrapParens))
		case ast.BracketsTerm:
			t.frames = append(t.frames, newParseFrame(clone(term.Inner), wrapBrackets))
		}
	}
}

// closeFrame strips sentinels from a fully-reduced frame's stack and
// requires at most one item to remain; an empty frame yields an empty tuple.
func closeFrame(frame *parseFrame) (ast.Expression, ast.PartOfSpeech, error) {
	var items []slot
	for _, s := range frame.stack {
		if !s.sentinel {
			items = append(items, s)
		}
	}

	var expr ast.Expression
	var pos ast.PartOfSpeech
	switch len(items) {
	case 0:
		expr, pos = ast.TupleExpr{}, ast.Noun
	case 1:
		expr, pos = items[0].expr, items[0].pos
	default:
		return nil, ast.PartOfSpeech{}, ast.NewParseError(ast.DidNotFullyReduce)
	}

	finished, err := frame.finish(expr, pos)
	if err != nil {
		return nil, ast.PartOfSpeech{}, err
	}
	return finished, pos, nil
}
