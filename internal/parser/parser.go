package parser

import "github.com/ianthehenry/dim/internal/ast"

// ParseExpression reduces a standalone term stream — one with no name
// bindings of its own — against scope. Any identifier terms it encounters
// are resolved immediately; the call blocks (in the ordinary Go sense, not
// the suspend/resume sense) until the expression either completes or fails,
// since a top-level expression has no sibling assignments to interleave
// progress with.
func ParseExpression(scope *ast.Scope, asOf ast.Identifier, terms []ast.Term) (ast.Expression, ast.PartOfSpeech, error) {
	task := NewExpressionTask(terms)
	waiter := 0
	for {
		result, err := task.Parse()
		if err != nil {
			return nil, ast.PartOfSpeech{}, err
		}
		if result.Status == ExpressionComplete {
			return result.Expr, result.POS, nil
		}

		waiter++
		lookup := scope.Lookup(result.Name, asOf, waiter)
		switch lookup.Kind {
		case ast.LookupFound:
			task.Provide(lookup.ID, lookup.POS)
		case ast.LookupFailed:
			return nil, ast.PartOfSpeech{}, ast.NewBadReference(lookup.ID.ID)
		default:
			// A bare expression with no assignments of its own can never
			// have a forward reference resolve later: nothing will ever
			// call Scope.Complete for a name this call didn't itself mint.
			return nil, ast.PartOfSpeech{}, ast.NewBadReference(0)
		}
	}
}

// ParseBlock resolves a batch of mutually-recursive assignments against a
// new scope nested under parent, to a fixed point (§5).
func ParseBlock(parent *ast.Scope, assignments []Assignment) (ast.Expression, ast.PartOfSpeech, error) {
	return NewBlockTask(parent, assignments).Run()
}
