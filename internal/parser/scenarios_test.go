package parser_test

import (
	"testing"

	"github.com/ianthehenry/dim/internal/ast"
	"github.com/ianthehenry/dim/internal/config"
	"github.com/ianthehenry/dim/internal/parser"
)

// These drive config.SeedBuiltins and parser.ParseExpression end to end, the
// way a real host would, rather than exercising reduceOnce on a hand-built
// stack — this is what would have caught the fold/flip seed table having the
// wrong adverb input arity (rule 1 only fires eagerly when the adverb's
// input arity is Unary).
func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name     string
		terms    []ast.Term
		wantExpr string
		wantPOS  func(ast.PartOfSpeech) bool
	}{
		{
			name: "A: neg 1 + 2",
			terms: []ast.Term{
				ast.IdentifierTerm{Name: "neg"},
				ast.NumberTerm{Value: 1},
				ast.IdentifierTerm{Name: "+"},
				ast.NumberTerm{Value: 2},
			},
			wantExpr: "(neg (+ 1 2))",
			wantPOS:  ast.PartOfSpeech.IsNoun,
		},
		{
			name: "B: fold +",
			terms: []ast.Term{
				ast.IdentifierTerm{Name: "fold"},
				ast.IdentifierTerm{Name: "+"},
			},
			wantExpr: "(fold +)",
			wantPOS:  func(pos ast.PartOfSpeech) bool { return pos.IsVerb() && pos.VerbArity() == ast.Unary },
		},
		{
			name: "C: x +.* y",
			terms: []ast.Term{
				ast.IdentifierTerm{Name: "x"},
				ast.IdentifierTerm{Name: "+"},
				ast.IdentifierTerm{Name: "."},
				ast.IdentifierTerm{Name: "*"},
				ast.IdentifierTerm{Name: "y"},
			},
			wantExpr: "((. + *) x y)",
			wantPOS:  ast.PartOfSpeech.IsNoun,
		},
		{
			name: "D: 1 2 + 1 2",
			terms: []ast.Term{
				ast.NumberTerm{Value: 1},
				ast.NumberTerm{Value: 2},
				ast.IdentifierTerm{Name: "+"},
				ast.NumberTerm{Value: 1},
				ast.NumberTerm{Value: 2},
			},
			wantExpr: "(+ (<tuple> 1 2) (<tuple> 1 2))",
			wantPOS:  ast.PartOfSpeech.IsNoun,
		},
		{
			name: "E: + 1",
			terms: []ast.Term{
				ast.IdentifierTerm{Name: "+"},
				ast.NumberTerm{Value: 1},
			},
			wantExpr: "(<rhs> + 1)",
			wantPOS:  func(pos ast.PartOfSpeech) bool { return pos.IsVerb() && pos.VerbArity() == ast.Unary },
		},
		{
			name: "F: neg sign",
			terms: []ast.Term{
				ast.IdentifierTerm{Name: "neg"},
				ast.IdentifierTerm{Name: "sign"},
			},
			wantExpr: "(<comp> neg sign)",
			wantPOS:  func(pos ast.PartOfSpeech) bool { return pos.IsVerb() && pos.VerbArity() == ast.Unary },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scope := ast.NewRootScope()
			config.SeedBuiltins(scope)

			expr, pos, err := parser.ParseExpression(scope, scope.NextIdentifier(), tc.terms)
			if err != nil {
				t.Fatalf("ParseExpression() error = %v", err)
			}
			if got := expr.String(); got != tc.wantExpr {
				t.Errorf("expr = %s, want %s", got, tc.wantExpr)
			}
			if !tc.wantPOS(pos) {
				t.Errorf("pos = %+v, did not satisfy expected predicate", pos)
			}
		})
	}
}
