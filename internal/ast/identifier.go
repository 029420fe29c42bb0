// Package ast defines the closed data model of the parser core: the
// part-of-speech lattice, the shifted Term vocabulary, the reduced
// Expression tree, and the Scope that resolves names to identifiers.
package ast

import "fmt"

// Identifier is a monotonically increasing handle minted by a Scope tree's
// shared Allocator. Identifiers are never reused and never compared across
// independently allocated trees.
type Identifier uint64

func (id Identifier) String() string {
	return fmt.Sprintf("#%d", uint64(id))
}

// RichIdentifier pairs an Identifier with the name it was learned under.
// Equality between two RichIdentifiers is defined by ID alone: the same
// identifier always carries the same name, so the name is display-only.
type RichIdentifier struct {
	ID   Identifier
	Name string
}

func (r RichIdentifier) Equal(other RichIdentifier) bool {
	return r.ID == other.ID
}

func (r RichIdentifier) String() string {
	return r.Name
}

// Allocator is a shared, mutable counter. One Allocator backs an entire
// Scope tree: every descendant scope mints identifiers from the same
// sequence, so ordering comparisons between identifiers from different
// scopes in the tree remain meaningful.
type Allocator struct {
	next Identifier
}

// NewAllocator returns an Allocator whose first minted Identifier is 1.
// Zero is reserved so a zero-valued Identifier can never collide with a
// legitimately allocated one.
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

func (a *Allocator) Mint() Identifier {
	id := a.next
	a.next++
	return id
}

// Peek returns the Identifier the next Mint call will produce, without
// minting it.
func (a *Allocator) Peek() Identifier {
	return a.next
}
