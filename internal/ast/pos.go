package ast

// Arity distinguishes unary from binary verbs, and unary from binary
// adverb slots.
type Arity int

const (
	Unary Arity = iota
	Binary
)

func (a Arity) String() string {
	if a == Binary {
		return "2"
	}
	return "1"
}

// posKind is the closed set of part-of-speech shapes a name can be bound
// to. A PartOfSpeech is a noun, a verb of some arity, or an adverb that
// maps a verb of one arity to a verb of another.
type posKind int

const (
	kindNoun posKind = iota
	kindVerb
	kindAdverb
)

// PartOfSpeech is the grammatical category a bound name (or a reduced
// expression) carries. It determines which reducer rules can fire on it.
type PartOfSpeech struct {
	kind        posKind
	verbArity   Arity
	inputArity  Arity
	outputArity Arity
}

// Noun is the part of speech of a value: a number, a tuple, a completed
// application.
var Noun = PartOfSpeech{kind: kindNoun}

// Verb constructs the part of speech of a name applied to `arity` operands.
func Verb(arity Arity) PartOfSpeech {
	return PartOfSpeech{kind: kindVerb, verbArity: arity}
}

// Adverb constructs the part of speech of a name that takes inputArity
// verb operands (one for Unary, two for Binary) and produces a verb of
// outputArity (e.g. `fold` takes one verb and produces a unary verb; `.`
// takes two and produces a binary one).
func Adverb(inputArity, outputArity Arity) PartOfSpeech {
	return PartOfSpeech{kind: kindAdverb, inputArity: inputArity, outputArity: outputArity}
}

func (p PartOfSpeech) IsNoun() bool   { return p.kind == kindNoun }
func (p PartOfSpeech) IsVerb() bool   { return p.kind == kindVerb }
func (p PartOfSpeech) IsAdverb() bool { return p.kind == kindAdverb }

// VerbArity panics if p is not a verb; callers must check IsVerb first.
func (p PartOfSpeech) VerbArity() Arity {
	if p.kind != kindVerb {
		panic("ast: VerbArity called on non-verb PartOfSpeech")
	}
	return p.verbArity
}

// AdverbArities panics if p is not an adverb; callers must check IsAdverb first.
func (p PartOfSpeech) AdverbArities() (input, output Arity) {
	if p.kind != kindAdverb {
		panic("ast: AdverbArities called on non-adverb PartOfSpeech")
	}
	return p.inputArity, p.outputArity
}

func (p PartOfSpeech) Equal(other PartOfSpeech) bool {
	return p == other
}

func (p PartOfSpeech) String() string {
	switch p.kind {
	case kindNoun:
		return "n"
	case kindVerb:
		return "v" + p.verbArity.String()
	case kindAdverb:
		return "a" + p.inputArity.String()
	default:
		return "?"
	}
}

// Builtin names an implicit verb the reducer synthesizes rather than one a
// host ever binds a name to: coefficient scaling, the three forms of verb
// composition, and the two operator-section partial applications.
type Builtin int

const (
	// Scale multiplies a coefficient noun against the noun it prefixes
	// (`2x` reduces to Scale(2, x)).
	Scale Builtin = iota
	// Compose is `f g` where f and g are both unary verbs: apply g then f.
	Compose
	// ComposeLeft is `g f` (a unary verb followed by a binary one): g sits
	// to the left of f in source.
	ComposeLeft
	// ComposeRight is `f g` (a binary verb followed by a unary one): g
	// sits to the right of f in source.
	ComposeRight
	// PartialApplicationLeft is an operator section `x f` (noun then
	// binary verb): the left operand is fixed, awaiting the right.
	PartialApplicationLeft
	// PartialApplicationRight is an operator section `f x` (binary verb
	// then noun): the right operand is fixed, awaiting the left.
	PartialApplicationRight
)

func (b Builtin) String() string {
	switch b {
	case Scale:
		return "<scale>"
	case Compose:
		return "<comp>"
	case ComposeLeft:
		return "<comp-lhs>"
	case ComposeRight:
		return "<comp-rhs>"
	case PartialApplicationLeft:
		return "<lhs>"
	case PartialApplicationRight:
		return "<rhs>"
	default:
		return "<builtin>"
	}
}
