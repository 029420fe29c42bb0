package ast

// LookupKind is the three-way outcome of a Scope lookup.
type LookupKind int

const (
	LookupFound LookupKind = iota
	LookupFailed
	LookupPending
)

// LookupResult is what a Scope reports back to a suspended task: either
// the resolved identifier and its part of speech, the error the binding
// itself failed with, or a pending status (the caller's waiter token has
// been registered and will be reported again once the binding settles).
type LookupResult struct {
	Kind LookupKind
	ID   RichIdentifier
	POS  PartOfSpeech
	Err  *ParseError
}

// Scope is one node of a tree of nested binding environments. Every scope
// in a tree shares the same Allocator, so identifiers mint in a single
// global order regardless of which scope they were bound in — that total
// order is what the lookup policy (§4.5) uses to decide back-reference vs.
// forward-reference. A child reads its parent's bindings through Lookup; a
// lookup that stays pending registers its waiter in the ancestor scope that
// holds the binding (or in the root scope, for a name bound nowhere in the
// chain), so that ancestor's waiter maps change as well.
type Scope struct {
	parent    *Scope
	allocator *Allocator

	nameToIDs map[string][]Identifier
	idToName  map[Identifier]string

	complete map[Identifier]PartOfSpeech
	failed   map[Identifier]*ParseError

	blockedOnName map[string]map[int]struct{}
	blockedOnID   map[Identifier]map[int]struct{}
}

// NewRootScope creates a scope with no parent and a fresh Allocator.
func NewRootScope() *Scope {
	return newScope(nil, NewAllocator())
}

// NewChildScope creates a scope nested under parent, sharing its
// Allocator.
func NewChildScope(parent *Scope) *Scope {
	return newScope(parent, parent.allocator)
}

func newScope(parent *Scope, allocator *Allocator) *Scope {
	return &Scope{
		parent:        parent,
		allocator:     allocator,
		nameToIDs:     make(map[string][]Identifier),
		idToName:      make(map[Identifier]string),
		complete:      make(map[Identifier]PartOfSpeech),
		failed:        make(map[Identifier]*ParseError),
		blockedOnName: make(map[string]map[int]struct{}),
		blockedOnID:   make(map[Identifier]map[int]struct{}),
	}
}

// Begin mints a new Identifier bound to name in this scope. Any waiter
// already registered against that name (because it looked the name up
// before this scope ever declared it) migrates to wait on the new
// Identifier instead — from here on, shadowing is resolved by identifier
// order rather than by name.
func (s *Scope) Begin(name string) Identifier {
	id := s.allocator.Mint()
	s.idToName[id] = name
	s.nameToIDs[name] = append(s.nameToIDs[name], id)

	if waiters, ok := s.blockedOnName[name]; ok {
		delete(s.blockedOnName, name)
		if len(waiters) > 0 {
			existing := s.blockedOnID[id]
			if existing == nil {
				existing = make(map[int]struct{}, len(waiters))
			}
			for w := range waiters {
				existing[w] = struct{}{}
			}
			s.blockedOnID[id] = existing
		}
	}

	return id
}

// NextIdentifier returns the Identifier that would be minted next in this
// scope tree, for a caller resolving a standalone expression that has no
// assignment id of its own to look up "as of".
func (s *Scope) NextIdentifier() Identifier {
	return s.allocator.Peek()
}

// AddBuiltin seeds name as already-complete with the given part of
// speech, for a host installing its initial vocabulary (§6) before any
// parsing begins.
func (s *Scope) AddBuiltin(name string, pos PartOfSpeech) Identifier {
	id := s.Begin(name)
	s.complete[id] = pos
	return id
}

// NameOf returns the name id was bound with, searching this scope and its
// ancestors.
func (s *Scope) NameOf(id Identifier) (string, bool) {
	if name, ok := s.idToName[id]; ok {
		return name, true
	}
	if s.parent != nil {
		return s.parent.NameOf(id)
	}
	return "", false
}

// Lookup resolves name as referenced at position asOf (the identifier of
// the assignment doing the referencing, or the next identifier that will
// be minted for a bare top-level expression). If the name cannot be
// resolved yet, waiter is registered against whichever scope in the chain
// will eventually own the binding, and LookupPending is returned; the
// caller must retry (by reconstructing the same call, or by reacting to a
// later Complete/Fail notification carrying the same waiter token).
func (s *Scope) Lookup(name string, asOf Identifier, waiter int) LookupResult {
	if id, ok := s.lookupIdentifier(name, asOf); ok {
		return s.lookupByID(id, waiter)
	}
	if s.parent != nil {
		return s.parent.Lookup(name, asOf, waiter)
	}
	s.registerByName(name, waiter)
	return LookupResult{Kind: LookupPending}
}

// lookupIdentifier implements the disambiguation policy of §4.5: prefer
// the largest identifier strictly less than asOf (the nearest enclosing
// back-reference, i.e. shadowing), else the smallest identifier greater
// than or equal to asOf (a forward reference within the same batch).
func (s *Scope) lookupIdentifier(name string, asOf Identifier) (Identifier, bool) {
	ids, ok := s.nameToIDs[name]
	if !ok || len(ids) == 0 {
		return 0, false
	}

	var best Identifier
	haveBest := false
	var nextBest Identifier
	haveNextBest := false

	for _, id := range ids {
		if id < asOf {
			if !haveBest || id > best {
				best = id
				haveBest = true
			}
		} else {
			if !haveNextBest || id < nextBest {
				nextBest = id
				haveNextBest = true
			}
		}
	}

	if haveBest {
		return best, true
	}
	if haveNextBest {
		return nextBest, true
	}
	return 0, false
}

func (s *Scope) lookupByID(id Identifier, waiter int) LookupResult {
	if pos, ok := s.complete[id]; ok {
		name, _ := s.idToName[id]
		return LookupResult{Kind: LookupFound, ID: RichIdentifier{ID: id, Name: name}, POS: pos}
	}
	if err, ok := s.failed[id]; ok {
		name, _ := s.idToName[id]
		return LookupResult{Kind: LookupFailed, ID: RichIdentifier{ID: id, Name: name}, Err: err}
	}
	s.registerByID(id, waiter)
	return LookupResult{Kind: LookupPending}
}

func (s *Scope) registerByName(name string, waiter int) {
	set, ok := s.blockedOnName[name]
	if !ok {
		set = make(map[int]struct{})
		s.blockedOnName[name] = set
	}
	set[waiter] = struct{}{}
}

func (s *Scope) registerByID(id Identifier, waiter int) {
	set, ok := s.blockedOnID[id]
	if !ok {
		set = make(map[int]struct{})
		s.blockedOnID[id] = set
	}
	set[waiter] = struct{}{}
}

// Complete marks id as successfully resolved to pos and returns the set
// of waiter tokens that were blocked on it, so the caller can retry them.
func (s *Scope) Complete(id Identifier, pos PartOfSpeech) []int {
	s.complete[id] = pos
	return s.releaseByID(id)
}

// Fail marks id as having failed with err and returns the set of waiter
// tokens that were blocked on it; those waiters must in turn fail with
// BadReference(id), per §7's transitive-cascade rule.
func (s *Scope) Fail(id Identifier, err *ParseError) []int {
	s.failed[id] = err
	return s.releaseByID(id)
}

func (s *Scope) releaseByID(id Identifier) []int {
	waiters, ok := s.blockedOnID[id]
	if !ok {
		return nil
	}
	delete(s.blockedOnID, id)
	out := make([]int, 0, len(waiters))
	for w := range waiters {
		out = append(out, w)
	}
	return out
}

// IsComplete reports whether id has already resolved in this scope or an
// ancestor.
func (s *Scope) IsComplete(id Identifier) (PartOfSpeech, bool) {
	if pos, ok := s.complete[id]; ok {
		return pos, true
	}
	if s.parent != nil {
		return s.parent.IsComplete(id)
	}
	return PartOfSpeech{}, false
}

// IsFailed reports whether id has already failed in this scope or an
// ancestor.
func (s *Scope) IsFailed(id Identifier) (*ParseError, bool) {
	if err, ok := s.failed[id]; ok {
		return err, true
	}
	if s.parent != nil {
		return s.parent.IsFailed(id)
	}
	return nil, false
}
