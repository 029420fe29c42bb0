package parser

import "github.com/ianthehenry/dim/internal/ast"

// ResultName is the reserved assignment name whose value becomes a block's
// Result expression. A block with no binding under this name fails with
// BlockWithoutResult.
const ResultName = "_"

// Assignment is one binding in a block: a name (ResultName for the block's
// result) and the term stream its right-hand side parses from.
type Assignment struct {
	Name  string
	Terms []ast.Term
}

type assignmentStatus int

const (
	statusPending assignmentStatus = iota
	statusBlocked
	statusComplete
	statusFailed
)

type assignmentState struct {
	id     ast.Identifier
	name   string
	task   *ExpressionTask
	status assignmentStatus
	err    *ast.ParseError
	expr   ast.Expression
	pos    ast.PartOfSpeech

	// pendingName is the name this assignment is currently suspended on,
	// remembered so that when a waiter token fires the lookup can be
	// retried without re-driving the task's Parse() (which would consume
	// the next term instead of resuming the same one).
	pendingName string
}

// BlockTask resolves a batch of mutually-recursive assignments against a
// shared child scope to a fixed point: it repeatedly drives every
// assignment not yet blocked, and whenever one completes or fails, retries
// whatever else was waiting on its name. An assignment left blocked once no
// more progress is possible is cyclic.
type BlockTask struct {
	scope       *ast.Scope
	assignments []*assignmentState
	waiters     map[int]int // waiter token -> assignment index
	nextWaiter  int
}

// NewBlockTask begins a block: every assignment's name is minted in the
// scope up front, so later assignments can forward-reference earlier ones
// and vice versa.
func NewBlockTask(parent *ast.Scope, assignments []Assignment) *BlockTask {
	scope := ast.NewChildScope(parent)
	bt := &BlockTask{scope: scope, waiters: make(map[int]int)}
	for _, a := range assignments {
		id := scope.Begin(a.Name)
		bt.assignments = append(bt.assignments, &assignmentState{
			id:   id,
			name: a.Name,
			task: NewExpressionTask(a.Terms),
		})
	}
	return bt
}

// Scope returns the block's child scope, for a caller that needs to resolve
// names against it (a nested block, or the host embedding this parser).
func (bt *BlockTask) Scope() *ast.Scope { return bt.scope }

// Run drives every assignment to completion or failure and returns the
// block's overall result.
func (bt *BlockTask) Run() (ast.Expression, ast.PartOfSpeech, error) {
	ready := make([]int, len(bt.assignments))
	for i := range bt.assignments {
		ready[i] = i
	}

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		more, err := bt.step(i)
		if err != nil {
			return nil, ast.PartOfSpeech{}, err
		}
		ready = append(ready, more...)
	}

	return bt.conclude()
}

// step resumes one assignment: if it's freshly ready or was just resolved
// by a Provide, it drives the task forward; if it was released because the
// name it was blocked on settled, it retries that same lookup rather than
// calling Parse() again (which would consume the next term instead of
// resuming the one it already suspended on).
func (bt *BlockTask) step(i int) ([]int, error) {
	a := bt.assignments[i]
	switch a.status {
	case statusComplete, statusFailed:
		return nil, nil
	case statusBlocked:
		return bt.resolve(i, a.pendingName)
	default:
		return bt.advance(i)
	}
}

// advance calls the assignment's ExpressionTask forward by one step.
func (bt *BlockTask) advance(i int) ([]int, error) {
	a := bt.assignments[i]
	result, err := a.task.Parse()
	if err != nil {
		pe, ok := err.(*ast.ParseError)
		if !ok {
			return nil, err
		}
		a.status, a.err = statusFailed, pe
		return bt.release(bt.scope.Fail(a.id, pe)), nil
	}

	if result.Status == ExpressionComplete {
		a.status, a.expr, a.pos = statusComplete, result.Expr, result.POS
		return bt.release(bt.scope.Complete(a.id, result.POS)), nil
	}

	a.pendingName = result.Name
	return bt.resolve(i, result.Name)
}

// resolve looks up name on behalf of assignment i. A successful lookup
// feeds the resolved identifier to the task and continues it immediately;
// an unresolved one parks the assignment until its prerequisite settles.
func (bt *BlockTask) resolve(i int, name string) ([]int, error) {
	a := bt.assignments[i]
	bt.nextWaiter++
	token := bt.nextWaiter
	lookup := bt.scope.Lookup(name, a.id, token)

	switch lookup.Kind {
	case ast.LookupFound:
		a.task.Provide(lookup.ID, lookup.POS)
		a.status = statusPending
		return bt.advance(i)
	case ast.LookupFailed:
		pe := ast.NewBadReference(lookup.ID.ID)
		a.status, a.err = statusFailed, pe
		return bt.release(bt.scope.Fail(a.id, pe)), nil
	default: // LookupPending
		a.status = statusBlocked
		bt.waiters[token] = i
		return nil, nil
	}
}

// release translates waiter tokens returned by Scope.Complete/Fail back
// into the assignment indices that registered them.
func (bt *BlockTask) release(tokens []int) []int {
	indices := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		if idx, ok := bt.waiters[tok]; ok {
			delete(bt.waiters, tok)
			indices = append(indices, idx)
		}
	}
	return indices
}

// conclude classifies the finished batch into the block's overall outcome,
// in priority order: any failed assignment gives SubAssignmentFailed; else
// any assignment still blocked (on a sibling, or on a name bound nowhere)
// gives CyclicAssignments; else a batch with no `_` binding gives
// BlockWithoutResult; else the Compound. A block never reports a pending
// name or identifier to an enclosing scope.
func (bt *BlockTask) conclude() (ast.Expression, ast.PartOfSpeech, error) {
	for _, a := range bt.assignments {
		if a.status == statusFailed {
			return nil, ast.PartOfSpeech{}, ast.NewParseError(ast.SubAssignmentFailed)
		}
	}

	for _, a := range bt.assignments {
		if a.status != statusComplete {
			return nil, ast.PartOfSpeech{}, ast.NewParseError(ast.CyclicAssignments)
		}
	}

	var result *assignmentState
	for _, a := range bt.assignments {
		if a.name == ResultName {
			result = a
		}
	}
	if result == nil {
		return nil, ast.PartOfSpeech{}, ast.NewParseError(ast.BlockWithoutResult)
	}

	bindings := make([]ast.Binding, 0, len(bt.assignments)-1)
	for _, a := range bt.assignments {
		if a == result {
			continue
		}
		name, _ := bt.scope.NameOf(a.id)
		bindings = append(bindings, ast.Binding{ID: ast.RichIdentifier{ID: a.id, Name: name}, Value: a.expr})
	}

	return ast.CompoundExpr{Bindings: bindings, Result: result.expr}, result.pos, nil
}

// AssignmentOutcome is the terminal state one assignment of a batch ended
// in when its BlockTask stopped driving it.
type AssignmentOutcome int

const (
	OutcomeComplete AssignmentOutcome = iota
	OutcomeFailed
	OutcomeBlocked
)

// AssignmentSnapshot is a read-only view of one assignment's terminal
// state, for a caller that wants to report on a block regardless of
// whether it concluded successfully. Unlike conclude(), which collapses
// the batch into a single outcome under its priority order,
// Snapshot exposes every assignment's own status so a diagnostic can
// explain which ones completed, which failed, and which were still
// waiting when the block stopped making progress.
type AssignmentSnapshot struct {
	ID     ast.RichIdentifier
	Status AssignmentOutcome

	Expr ast.Expression
	POS  ast.PartOfSpeech

	// Err is set when Status is OutcomeFailed. PrereqID additionally names
	// the failed prerequisite when Err is a BadReference; its ID is zero
	// otherwise.
	Err      *ast.ParseError
	PrereqID ast.RichIdentifier

	// PendingName is the name this assignment was suspended on when
	// Status is OutcomeBlocked. PendingID additionally names the sibling
	// assignment PendingName resolves to, when it is one of this block's
	// own bindings that simply never completed (a true cycle); its ID is
	// zero when PendingName never resolved to anything in this batch.
	PendingName string
	PendingID   ast.RichIdentifier
}

// Snapshot returns the terminal state of every assignment in the batch, in
// declaration order. It is meaningful to call only after Run has returned.
func (bt *BlockTask) Snapshot() []AssignmentSnapshot {
	// sibling picks among this batch's own bindings by Scope.Lookup's policy.
	sibling := func(name string, asOf ast.Identifier) (ast.Identifier, bool) {
		var back, fwd ast.Identifier
		for _, a := range bt.assignments {
			if a.name == name && a.id < asOf {
				back = a.id
			} else if a.name == name && fwd == 0 {
				fwd = a.id
			}
		}
		if back != 0 {
			return back, true
		}
		return fwd, fwd != 0
	}

	out := make([]AssignmentSnapshot, len(bt.assignments))
	for i, a := range bt.assignments {
		name, _ := bt.scope.NameOf(a.id)
		s := AssignmentSnapshot{ID: ast.RichIdentifier{ID: a.id, Name: name}}

		switch a.status {
		case statusComplete:
			s.Status, s.Expr, s.POS = OutcomeComplete, a.expr, a.pos
		case statusFailed:
			s.Status, s.Err = OutcomeFailed, a.err
			if a.err != nil && a.err.Kind == ast.BadReference {
				prereqName, _ := bt.scope.NameOf(a.err.Reference)
				s.PrereqID = ast.RichIdentifier{ID: a.err.Reference, Name: prereqName}
			}
		default:
			s.Status, s.PendingName = OutcomeBlocked, a.pendingName
			if id, ok := sibling(a.pendingName, a.id); ok {
				s.PendingID = ast.RichIdentifier{ID: id, Name: a.pendingName}
			}
		}
		out[i] = s
	}
	return out
}
