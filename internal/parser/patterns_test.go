package parser

import (
	"testing"

	"github.com/ianthehenry/dim/internal/ast"
)

func id(name string) ast.Expression {
	return ast.IdentifierExpr{ID: ast.RichIdentifier{ID: 1, Name: name}}
}

func num(v float64) ast.Expression {
	return ast.NumberExpr{Value: v}
}

// push builds a stack from items given in left-to-right source order,
// matching how ExpressionTask.Parse populates one over time: the first item
// given ends up shallowest (closest to the top, the most recently shifted),
// and the last item given ends up deepest.
func push(items ...slot) []slot {
	stack := make([]slot, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, items[i])
	}
	return stack
}

func TestRule1AdverbBindsVerbEagerly(t *testing.T) {
	// "fold +": fold is leftmost (shifted last, so shallowest/top).
	stack := push(tagged(id("fold"), ast.Adverb(ast.Unary, ast.Unary)), tagged(id("+"), ast.Verb(ast.Binary)))

	next, ok := reduceOnce(stack)
	if !ok {
		t.Fatalf("rule1 did not fire on %+v", stack)
	}
	if len(next) != 1 || !next[0].pos.IsVerb() || next[0].pos.VerbArity() != ast.Unary {
		t.Fatalf("rule1 result = %+v, want a single Verb(Unary) slot", next)
	}
	app, ok := next[0].expr.(ast.UnaryApplicationExpr)
	if !ok {
		t.Fatalf("rule1 result expr = %#v, want UnaryApplicationExpr", next[0].expr)
	}
	if app.String() != "(fold +)" {
		t.Errorf("rule1 result = %s, want (fold +)", app.String())
	}
}

func TestRule2UnaryVerbAppliesToNoun(t *testing.T) {
	// "neg 1": neg is left (shallow), 1 is right (deep). A trailing sentinel
	// stands in for the frame start to the left of "neg".
	stack := push(sentinel(), tagged(id("neg"), ast.Verb(ast.Unary)), noun(num(1)))

	next, ok := reduceOnce(stack)
	if !ok {
		t.Fatalf("rule2 did not fire on %+v", stack)
	}
	if len(next) != 2 || !next[1].sentinel || !next[0].pos.IsNoun() {
		t.Fatalf("rule2 result = %+v, want [noun, sentinel]", next)
	}
	if got := next[0].expr.String(); got != "(neg 1)" {
		t.Errorf("rule2 result = %s, want (neg 1)", got)
	}
}

func TestRule3BinaryConjunctionJoinsTwoVerbs(t *testing.T) {
	// "+.*" reduced in isolation: the window is [_, +, ., *], where the
	// leading wildcard stands in for whatever sits further left (here,
	// nothing — a sentinel works just as well as a real token would).
	stack := push(
		sentinel(), // the wildcard guard slot; any value works here
		tagged(id("+"), ast.Verb(ast.Binary)),
		tagged(id("."), ast.Adverb(ast.Binary, ast.Binary)),
		tagged(id("*"), ast.Verb(ast.Binary)),
	)

	next, ok := reduceOnce(stack)
	if !ok {
		t.Fatalf("rule3 did not fire on %+v", stack)
	}
	top := next[len(next)-2] // the pushed result sits below the restored wildcard
	if got := top.expr.String(); got != "(. + *)" {
		t.Errorf("rule3 result = %s, want (. + *)", got)
	}
	if !top.pos.IsVerb() || top.pos.VerbArity() != ast.Binary {
		t.Errorf("rule3 result POS = %+v, want Verb(Binary)", top.pos)
	}
}

func TestRule4BinaryVerbAppliesToBothOperands(t *testing.T) {
	// "1 + 2": 1 is left (shallow), 2 is right (deep).
	stack := push(sentinel(), noun(num(1)), tagged(id("+"), ast.Verb(ast.Binary)), noun(num(2)))

	next, ok := reduceOnce(stack)
	if !ok {
		t.Fatalf("rule4 did not fire on %+v", stack)
	}
	if len(next) != 2 || !next[0].pos.IsNoun() {
		t.Fatalf("rule4 result = %+v, want [noun, sentinel]", next)
	}
	if got := next[0].expr.String(); got != "(+ 1 2)" {
		t.Errorf("rule4 result = %s, want (+ 1 2)", got)
	}
}

func TestRule5TupleMergeIsFlatAndLeftAssociative(t *testing.T) {
	// "1 2 3": each shift reduces to a fixed point before the next term
	// lands, so by the time 1 joins the picture, 2 and 3 have already
	// merged into Tuple[2,3] sitting as the deeper (right) operand; 1
	// (arriving from the left) must be prepended into that same tuple
	// rather than wrapped around it, yielding a flat Tuple[1,2,3] and not
	// Tuple[Tuple[2,3], 1] or Tuple[1, Tuple[2,3]].
	task := NewExpressionTask([]ast.Term{
		ast.NumberTerm{Value: 1},
		ast.NumberTerm{Value: 2},
		ast.NumberTerm{Value: 3},
	})

	result, err := task.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if result.Status != ExpressionComplete {
		t.Fatalf("Parse() status = %v, want ExpressionComplete", result.Status)
	}

	tup, ok := result.Expr.(ast.TupleExpr)
	if !ok {
		t.Fatalf("result expr = %#v, want TupleExpr", result.Expr)
	}
	if len(tup.Items) != 3 {
		t.Fatalf("tuple has %d items, want 3 (flat, not nested)", len(tup.Items))
	}
	if got := result.Expr.String(); got != "(<tuple> 1 2 3)" {
		t.Errorf("result = %s, want (<tuple> 1 2 3)", got)
	}
}

func TestRule5AbsorbsABareTupleArrivingFromTheRight(t *testing.T) {
	// A bare Tuple can only appear as the deeper (right) operand here, since
	// it's only ever produced by an earlier rule5 firing within the same
	// run — exactly the intermediate state "2 3" reaches while parsing
	// "1 2 3" (see TestRule5TupleMergeIsFlatAndLeftAssociative). A plain
	// noun arriving from the left merges into it, keeping the run flat.
	right := ast.TupleExpr{Items: []ast.Expression{id("b"), id("c")}}
	stack := push(sentinel(), noun(id("a")), slot{expr: right, pos: ast.Noun})

	next, ok := reduceOnce(stack)
	if !ok {
		t.Fatalf("rule5 did not fire on %+v", stack)
	}
	// the merged tuple sits below the restored sentinel
	tup, ok := next[len(next)-2].expr.(ast.TupleExpr)
	if !ok {
		t.Fatalf("result expr = %#v, want TupleExpr", next[len(next)-2].expr)
	}
	if len(tup.Items) != 3 {
		t.Fatalf("a + Tuple[b,c] produced a %d-item tuple, want 3 (flat a, b, c)", len(tup.Items))
	}
}

func TestRule5DoesNotAbsorbAParenthesizedTupleOnTheLeft(t *testing.T) {
	// "(b c) a": the parenthesized group is a deliberate unit (wrapParens
	// marks it so), and a ParensExpr never satisfies rule5's bare-TupleExpr
	// check — so it cannot be on the absorbing end either way. It stays
	// nested: Tuple[(b c), a], not the flat Tuple[b,c,a] a bare tuple would
	// produce in the same spot.
	task := NewExpressionTask([]ast.Term{
		ast.ParensTerm{Inner: []ast.Term{
			ast.NumberTerm{Value: 2},
			ast.NumberTerm{Value: 3},
		}},
		ast.NumberTerm{Value: 1},
	})

	result, err := task.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if result.Status != ExpressionComplete {
		t.Fatalf("Parse() status = %v, want ExpressionComplete", result.Status)
	}

	tup, ok := result.Expr.(ast.TupleExpr)
	if !ok {
		t.Fatalf("result expr = %#v, want TupleExpr", result.Expr)
	}
	if len(tup.Items) != 2 {
		t.Fatalf("(2 3) 1 produced a %d-item tuple, want 2 (the parens group stays intact)", len(tup.Items))
	}
	if _, ok := tup.Items[0].(ast.ParensExpr); !ok {
		t.Errorf("first item = %#v, want the parenthesized group to survive as ParensExpr", tup.Items[0])
	}
}

func TestRule6ComposesTwoUnaryVerbs(t *testing.T) {
	// "neg sign"
	stack := push(sentinel(), tagged(id("neg"), ast.Verb(ast.Unary)), tagged(id("sign"), ast.Verb(ast.Unary)))

	next, ok := reduceOnce(stack)
	if !ok {
		t.Fatalf("rule6 did not fire on %+v", stack)
	}
	result := next[len(next)-2] // the pushed result sits below the restored sentinel
	if got := result.expr.String(); got != "(<comp> neg sign)" {
		t.Errorf("rule6 result = %s, want (<comp> neg sign)", got)
	}
	if !result.pos.IsVerb() || result.pos.VerbArity() != ast.Unary {
		t.Errorf("rule6 result POS = %+v, want Verb(Unary)", result.pos)
	}
}

func TestRule7PartialApplicationRight(t *testing.T) {
	// "+ 1": a right-section, awaiting its left operand.
	stack := push(sentinel(), tagged(id("+"), ast.Verb(ast.Binary)), noun(num(1)))

	next, ok := reduceOnce(stack)
	if !ok {
		t.Fatalf("rule7 did not fire on %+v", stack)
	}
	result := next[len(next)-2] // the pushed result sits below the restored sentinel
	if got := result.expr.String(); got != "(<rhs> + 1)" {
		t.Errorf("rule7 result = %s, want (<rhs> + 1)", got)
	}
}

func TestRule8PartialApplicationLeft(t *testing.T) {
	// "1 +": a left-section, awaiting its right operand.
	stack := push(sentinel(), noun(num(1)), tagged(id("+"), ast.Verb(ast.Binary)))

	next, ok := reduceOnce(stack)
	if !ok {
		t.Fatalf("rule8 did not fire on %+v", stack)
	}
	result := next[len(next)-2] // the pushed result sits below the restored sentinel
	if got := result.expr.String(); got != "(<lhs> + 1)" {
		t.Errorf("rule8 result = %s, want (<lhs> + 1)", got)
	}
}

func TestRule9ComposeRight(t *testing.T) {
	// "+ neg": a binary verb followed by a unary one.
	stack := push(sentinel(), tagged(id("+"), ast.Verb(ast.Binary)), tagged(id("neg"), ast.Verb(ast.Unary)))

	next, ok := reduceOnce(stack)
	if !ok {
		t.Fatalf("rule9 did not fire on %+v", stack)
	}
	result := next[len(next)-2] // the pushed result sits below the restored sentinel
	if got := result.expr.String(); got != "(<comp-rhs> + neg)" {
		t.Errorf("rule9 result = %s, want (<comp-rhs> + neg)", got)
	}
	if !result.pos.IsVerb() || result.pos.VerbArity() != ast.Binary {
		t.Errorf("rule9 result POS = %+v, want Verb(Binary)", result.pos)
	}
}

func TestRule10ComposeLeft(t *testing.T) {
	// "neg +": a unary verb followed by a binary one.
	stack := push(sentinel(), tagged(id("neg"), ast.Verb(ast.Unary)), tagged(id("+"), ast.Verb(ast.Binary)))

	next, ok := reduceOnce(stack)
	if !ok {
		t.Fatalf("rule10 did not fire on %+v", stack)
	}
	result := next[len(next)-2] // the pushed result sits below the restored sentinel
	if got := result.expr.String(); got != "(<comp-lhs> + neg)" {
		t.Errorf("rule10 result = %s, want (<comp-lhs> + neg)", got)
	}
	if !result.pos.IsVerb() || result.pos.VerbArity() != ast.Binary {
		t.Errorf("rule10 result POS = %+v, want Verb(Binary)", result.pos)
	}
}
