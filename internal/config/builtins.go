// Package config holds the seeded builtin vocabulary a host installs into a
// top-level Scope before parsing any block against it.
package config

import "github.com/ianthehenry/dim/internal/ast"

// BuiltinInfo is one entry of the seed table: a name, the part of speech it
// is bound with, and a one-line description for a host's diagnostics or
// documentation surface.
type BuiltinInfo struct {
	Name        string
	POS         ast.PartOfSpeech
	Description string
}

// Builtins is the single source of truth for the names a realistic host
// seeds before parsing: the operators the expression grammar's end-to-end
// scenarios exercise, plus the conventional free nouns `x` and `y`.
var Builtins = []BuiltinInfo{
	{Name: "+", POS: ast.Verb(ast.Binary), Description: "addition"},
	{Name: "*", POS: ast.Verb(ast.Binary), Description: "multiplication"},
	{Name: "neg", POS: ast.Verb(ast.Unary), Description: "negation"},
	{Name: "sign", POS: ast.Verb(ast.Unary), Description: "sign of a number"},
	{Name: ".", POS: ast.Adverb(ast.Binary, ast.Binary), Description: "conjunction: joins two binary verbs into one binary verb"},
	{Name: "fold", POS: ast.Adverb(ast.Unary, ast.Unary), Description: "reduce a binary verb over a tuple"},
	{Name: "flip", POS: ast.Adverb(ast.Unary, ast.Binary), Description: "swap a binary verb's operands"},
	{Name: "x", POS: ast.Noun, Description: "conventional free noun"},
	{Name: "y", POS: ast.Noun, Description: "conventional free noun"},
}

// SeedBuiltins installs every entry of Builtins into scope via AddBuiltin,
// the Go analog of §6's "host installs builtins by add_builtin(name, pos)".
func SeedBuiltins(scope *ast.Scope) {
	for _, b := range Builtins {
		scope.AddBuiltin(b.Name, b.POS)
	}
}
