// Package prettyprinter renders a block's resolved assignments as readable
// source-like text: one line per binding, shadowed names disambiguated
// with a numeric suffix so that a name rebound partway through a batch
// doesn't collide with its own earlier binding in the output.
package prettyprinter

import (
	"fmt"

	"github.com/ianthehenry/dim/internal/ast"
)

// Disambiguator assigns a stable display name to every Identifier it
// sees: the first identifier bound under a given name prints bare, the
// second prints name_1, the third name_2, and so on. The index an
// identifier is assigned never changes once fixed, regardless of how many
// times See is called on it afterward.
type Disambiguator struct {
	nameIndices map[string]int
	seenAt      map[ast.Identifier]int
}

func NewDisambiguator() *Disambiguator {
	return &Disambiguator{
		nameIndices: make(map[string]int),
		seenAt:      make(map[ast.Identifier]int),
	}
}

// See records id the first time it's passed; later calls with the same ID
// are no-ops.
func (d *Disambiguator) See(id ast.RichIdentifier) {
	if _, ok := d.seenAt[id.ID]; ok {
		return
	}
	ix := d.nameIndices[id.Name]
	d.seenAt[id.ID] = ix
	d.nameIndices[id.Name] = ix + 1
}

// View renders id's disambiguated display name. See must have been called
// for id first.
func (d *Disambiguator) View(id ast.RichIdentifier) string {
	ix := d.seenAt[id.ID]
	if ix == 0 {
		return id.Name
	}
	return fmt.Sprintf("%s_%d", id.Name, ix)
}
