package ast

import (
	"strconv"
	"strings"
)

// Expression is the closed tree the reducer produces. Every constructor
// also carries (alongside the tree, out of band) the PartOfSpeech it
// reduced to; PartOfSpeech is not stored on the node itself because the
// same shape (e.g. UnaryApplication) can reduce to either a Noun or a Verb
// depending on what it was applied to.
type Expression interface {
	isExpression()
	String() string
}

// NumberExpr is a literal numeric atom.
type NumberExpr struct {
	Value float64
}

func (NumberExpr) isExpression() {}
func (n NumberExpr) String() string { return formatNumber(n.Value) }

// IdentifierExpr is a resolved reference to a bound name.
type IdentifierExpr struct {
	ID RichIdentifier
}

func (IdentifierExpr) isExpression() {}
func (i IdentifierExpr) String() string { return i.ID.Name }

// ImplicitExpr names a reducer-synthesized verb: a Builtin the source text
// never bound a name to.
type ImplicitExpr struct {
	Builtin Builtin
}

func (ImplicitExpr) isExpression() {}
func (e ImplicitExpr) String() string { return e.Builtin.String() }

// UnaryApplicationExpr is a unary verb applied to its single operand.
type UnaryApplicationExpr struct {
	Func Expression
	Arg  Expression
}

func (UnaryApplicationExpr) isExpression() {}
func (e UnaryApplicationExpr) String() string {
	return "(" + e.Func.String() + " " + e.Arg.String() + ")"
}

// BinaryApplicationExpr is a binary verb applied to its left and right
// operands, in source order.
type BinaryApplicationExpr struct {
	Func  Expression
	Left  Expression
	Right Expression
}

func (BinaryApplicationExpr) isExpression() {}
func (e BinaryApplicationExpr) String() string {
	return "(" + e.Func.String() + " " + e.Left.String() + " " + e.Right.String() + ")"
}

// ParensExpr marks that its inner expression was written with explicit
// grouping parentheses. It carries no display form of its own: once a
// parenthesized noun or verb participates in further reduction it prints
// exactly as its inner expression would. The reducer's rules never look
// inside it; its one effect on reduction is that a parenthesized tuple is
// not a bare TupleExpr, so the tuple-merge rule never extends it.
type ParensExpr struct {
	Inner Expression
}

func (ParensExpr) isExpression() {}
func (e ParensExpr) String() string { return e.Inner.String() }

// TupleExpr is the flattened result of juxtaposing two or more nouns with
// no verb between them (`1 2 3`).
type TupleExpr struct {
	Items []Expression
}

func (TupleExpr) isExpression() {}
func (e TupleExpr) String() string {
	parts := make([]string, len(e.Items)+1)
	parts[0] = "<tuple>"
	for i, item := range e.Items {
		parts[i+1] = item.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// BracketsExpr is an array literal; every item must have reduced to a
// Noun for the literal itself to be well-formed.
type BracketsExpr struct {
	Items []Expression
}

func (BracketsExpr) isExpression() {}
func (e BracketsExpr) String() string {
	parts := make([]string, len(e.Items))
	for i, item := range e.Items {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Binding is one name-to-expression assignment inside a completed block,
// in the order the block's assignments were declared.
type Binding struct {
	ID    RichIdentifier
	Value Expression
}

// CompoundExpr is the result of a BlockTask: every assignment the block
// resolved, plus the block's trailing result expression.
type CompoundExpr struct {
	Bindings []Binding
	Result   Expression
}

func (CompoundExpr) isExpression() {}
func (e CompoundExpr) String() string {
	parts := make([]string, 0, len(e.Bindings)+1)
	for _, b := range e.Bindings {
		parts = append(parts, b.ID.Name+" = "+b.Value.String())
	}
	parts = append(parts, e.Result.String())
	return strings.Join(parts, "; ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
