package prettyprinter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ianthehenry/dim/internal/ast"
	"github.com/ianthehenry/dim/internal/parser"
)

// PrintAssignments renders a finished block's assignments one per line, in
// identifier allocation order: a completed binding as `name (pos) = expr`,
// a failed one as `name failed: reason`, or as `name depends on failed
// prereq` when the failure is a transitive BadReference, and an assignment
// still blocked when the block stopped as `name depends on prereq` (its
// prerequisite is a sibling binding that never completed — a cycle) or
// `name depends on unseen prereq` (its prerequisite was never bound
// anywhere in the batch). Every name is disambiguated against repeats in
// the same batch: the first identifier seen under a given name prints bare
// and each later one as name_1, name_2, and so on.
func PrintAssignments(snapshots []parser.AssignmentSnapshot) string {
	sorted := make([]parser.AssignmentSnapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID.ID < sorted[j].ID.ID })

	d := NewDisambiguator()
	lines := make([]string, 0, len(sorted))

	for _, s := range sorted {
		d.See(s.ID)

		switch s.Status {
		case parser.OutcomeComplete:
			expr := RewriteIdentifiers(s.Expr, func(id ast.RichIdentifier) ast.RichIdentifier {
				d.See(id)
				return ast.RichIdentifier{ID: id.ID, Name: d.View(id)}
			})
			lines = append(lines, fmt.Sprintf("%s (%s) = %s", d.View(s.ID), s.POS, expr))
		case parser.OutcomeFailed:
			if s.PrereqID.ID != 0 {
				d.See(s.PrereqID)
				lines = append(lines, fmt.Sprintf("%s depends on failed %s", d.View(s.ID), d.View(s.PrereqID)))
			} else {
				lines = append(lines, fmt.Sprintf("%s failed: %s", d.View(s.ID), s.Err))
			}
		default:
			if s.PendingID.ID != 0 {
				d.See(s.PendingID)
				lines = append(lines, fmt.Sprintf("%s depends on %s", d.View(s.ID), d.View(s.PendingID)))
			} else {
				lines = append(lines, fmt.Sprintf("%s depends on unseen %s", d.View(s.ID), s.PendingName))
			}
		}
	}

	return strings.Join(lines, "\n")
}
