package prettyprinter

import "github.com/ianthehenry/dim/internal/ast"

// RewriteIdentifiers returns a copy of expr with every IdentifierExpr's
// RichIdentifier passed through f; every other node shape is copied
// structurally around the rewritten children. f sees identifier atoms only
// — numbers and implicit builtins pass through untouched.
func RewriteIdentifiers(expr ast.Expression, f func(ast.RichIdentifier) ast.RichIdentifier) ast.Expression {
	switch e := expr.(type) {
	case ast.IdentifierExpr:
		return ast.IdentifierExpr{ID: f(e.ID)}
	case ast.NumberExpr:
		return e
	case ast.ImplicitExpr:
		return e
	case ast.ParensExpr:
		return ast.ParensExpr{Inner: RewriteIdentifiers(e.Inner, f)}
	case ast.TupleExpr:
		items := make([]ast.Expression, len(e.Items))
		for i, item := range e.Items {
			items[i] = RewriteIdentifiers(item, f)
		}
		return ast.TupleExpr{Items: items}
	case ast.BracketsExpr:
		items := make([]ast.Expression, len(e.Items))
		for i, item := range e.Items {
			items[i] = RewriteIdentifiers(item, f)
		}
		return ast.BracketsExpr{Items: items}
	case ast.UnaryApplicationExpr:
		return ast.UnaryApplicationExpr{
			Func: RewriteIdentifiers(e.Func, f),
			Arg:  RewriteIdentifiers(e.Arg, f),
		}
	case ast.BinaryApplicationExpr:
		return ast.BinaryApplicationExpr{
			Func:  RewriteIdentifiers(e.Func, f),
			Left:  RewriteIdentifiers(e.Left, f),
			Right: RewriteIdentifiers(e.Right, f),
		}
	case ast.CompoundExpr:
		bindings := make([]ast.Binding, len(e.Bindings))
		for i, b := range e.Bindings {
			bindings[i] = ast.Binding{ID: b.ID, Value: RewriteIdentifiers(b.Value, f)}
		}
		return ast.CompoundExpr{Bindings: bindings, Result: RewriteIdentifiers(e.Result, f)}
	default:
		return expr
	}
}
