// Package parser implements the POS-driven shift-reduce reducer and the
// suspendable tasks (ExpressionTask, BlockTask) built on top of it.
package parser

import "github.com/ianthehenry/dim/internal/ast"

// slot is one entry on a reducer stack. A sentinel slot marks a frame
// boundary: the start of the expression (nothing further left will ever be
// shifted) or the gap end-of-input leaves before a frame closes.
type slot struct {
	expr     ast.Expression
	pos      ast.PartOfSpeech
	sentinel bool
}

func sentinel() slot { return slot{sentinel: true} }

func noun(e ast.Expression) slot  { return slot{expr: e, pos: ast.Noun} }
func tagged(e ast.Expression, pos ast.PartOfSpeech) slot { return slot{expr: e, pos: pos} }

func (s slot) isNoun() bool { return !s.sentinel && s.pos.IsNoun() }
func (s slot) isVerb() bool { return !s.sentinel && s.pos.IsVerb() }

func (s slot) isVerbArity(a ast.Arity) bool {
	return !s.sentinel && s.pos.IsVerb() && s.pos.VerbArity() == a
}

func (s slot) isAdverbInput(a ast.Arity) bool {
	if s.sentinel || !s.pos.IsAdverb() {
		return false
	}
	in, _ := s.pos.AdverbArities()
	return in == a
}

// isSVN matches a sentinel, any verb, or any noun — the catch-all guard
// category used to stash whatever the reducer hasn't gotten to yet.
func (s slot) isSVN() bool { return s.sentinel || s.isVerb() || s.isNoun() }

// isSV matches a sentinel or any verb.
func (s slot) isSV() bool { return s.sentinel || s.isVerb() }

// isVN matches any verb or any noun (never a sentinel).
func (s slot) isVN() bool { return s.isVerb() || s.isNoun() }

// at returns the slot fromTop entries below the top of stack (0 is the top
// itself), or a sentinel if the stack isn't that deep. This is equivalent
// to keeping four sentinel-filled slots under every frame from the start:
// a lookup past the real content always reads as a frame boundary.
func at(stack []slot, fromTop int) slot {
	i := len(stack) - 1 - fromTop
	if i < 0 {
		return sentinel()
	}
	return stack[i]
}

// reduce repeatedly applies the first matching rule (in priority order)
// until none apply, and returns the resulting stack.
func reduce(stack []slot) []slot {
	for {
		next, ok := reduceOnce(stack)
		if !ok {
			return stack
		}
		stack = next
	}
}

func reduceOnce(stack []slot) ([]slot, bool) {
	t0, t1, t2, t3 := at(stack, 0), at(stack, 1), at(stack, 2), at(stack, 3)

	// rule1: a1, v -> unary(adverb, verb) = Verb(result_arity)
	// No lookahead: the adverb is the true top, consumed directly.
	if t0.pos.IsAdverb() && !t0.sentinel {
		if in, _ := t0.pos.AdverbArities(); in == ast.Unary && t1.isVerb() {
			_, out := t0.pos.AdverbArities()
			base := stack[:len(stack)-2]
			result := ast.UnaryApplicationExpr{Func: t0.expr, Arg: t1.expr}
			return append(base, tagged(result, ast.Verb(out))), true
		}
	}

	// rule2: svn, v1, n -> unary(verb, noun) = Noun
	if t0.isSVN() && t1.isVerbArity(ast.Unary) && t2.isNoun() {
		base := stack[:len(stack)-3]
		result := ast.UnaryApplicationExpr{Func: t1.expr, Arg: t2.expr}
		return append(base, noun(result), t0), true
	}

	// rule3: _, vn, a2, vn -> binary(conjunction, lhs, rhs) = Verb(result_arity)
	if t1.isVN() && t2.isAdverbInput(ast.Binary) && t3.isVN() {
		_, out := t2.pos.AdverbArities()
		base := stack[:len(stack)-4]
		result := ast.BinaryApplicationExpr{Func: t2.expr, Left: t1.expr, Right: t3.expr}
		return append(base, tagged(result, ast.Verb(out)), t0), true
	}

	// rule4: sv, n, v2, n -> binary(verb, lhs, rhs) = Noun
	if t0.isSV() && t1.isNoun() && t2.isVerbArity(ast.Binary) && t3.isNoun() {
		base := stack[:len(stack)-4]
		result := ast.BinaryApplicationExpr{Func: t2.expr, Left: t1.expr, Right: t3.expr}
		return append(base, noun(result), t0), true
	}

	// rule5: svn, n, n -> tuple merge = Noun. Terms shift right-to-left, so
	// t1 (first) is the noun further left in source and t2 (second) is the
	// one further right — second is whatever's already been built up from
	// items further right. If second is already a tuple, first (arriving
	// from the left) is prepended to keep it in source order; otherwise
	// the pair becomes a fresh two-element tuple [first, second].
	if t0.isSVN() && t1.isNoun() && t2.isNoun() {
		base := stack[:len(stack)-3]
		first, second := t1.expr, t2.expr
		var result ast.TupleExpr
		if tup, ok := second.(ast.TupleExpr); ok {
			items := make([]ast.Expression, 0, len(tup.Items)+1)
			items = append(items, first)
			items = append(items, tup.Items...)
			result = ast.TupleExpr{Items: items}
		} else {
			result = ast.TupleExpr{Items: []ast.Expression{first, second}}
		}
		return append(base, noun(result), t0), true
	}

	// rule6: sv, v1, v1 -> Compose, Verb(Unary)
	if t0.isSV() && t1.isVerbArity(ast.Unary) && t2.isVerbArity(ast.Unary) {
		base := stack[:len(stack)-3]
		result := ast.BinaryApplicationExpr{Func: ast.ImplicitExpr{Builtin: ast.Compose}, Left: t1.expr, Right: t2.expr}
		return append(base, tagged(result, ast.Verb(ast.Unary)), t0), true
	}

	// rule7: sv, v2, n -> PartialApplicationRight, Verb(Unary)
	if t0.isSV() && t1.isVerbArity(ast.Binary) && t2.isNoun() {
		base := stack[:len(stack)-3]
		result := ast.BinaryApplicationExpr{Func: ast.ImplicitExpr{Builtin: ast.PartialApplicationRight}, Left: t1.expr, Right: t2.expr}
		return append(base, tagged(result, ast.Verb(ast.Unary)), t0), true
	}

	// rule8: sv, n, v2 -> PartialApplicationLeft, Verb(Unary)
	if t0.isSV() && t1.isNoun() && t2.isVerbArity(ast.Binary) {
		base := stack[:len(stack)-3]
		result := ast.BinaryApplicationExpr{Func: ast.ImplicitExpr{Builtin: ast.PartialApplicationLeft}, Left: t2.expr, Right: t1.expr}
		return append(base, tagged(result, ast.Verb(ast.Unary)), t0), true
	}

	// rule9: sv, v2, v1 -> ComposeRight, Verb(Binary)
	if t0.isSV() && t1.isVerbArity(ast.Binary) && t2.isVerbArity(ast.Unary) {
		base := stack[:len(stack)-3]
		result := ast.BinaryApplicationExpr{Func: ast.ImplicitExpr{Builtin: ast.ComposeRight}, Left: t1.expr, Right: t2.expr}
		return append(base, tagged(result, ast.Verb(ast.Binary)), t0), true
	}

	// rule10: sv, v1, v2 -> ComposeLeft, Verb(Binary)
	if t0.isSV() && t1.isVerbArity(ast.Unary) && t2.isVerbArity(ast.Binary) {
		base := stack[:len(stack)-3]
		result := ast.BinaryApplicationExpr{Func: ast.ImplicitExpr{Builtin: ast.ComposeLeft}, Left: t2.expr, Right: t1.expr}
		return append(base, tagged(result, ast.Verb(ast.Binary)), t0), true
	}

	return stack, false
}
