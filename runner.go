package automata

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"
)

// snapshot gives an automaton's states dense integer handles so that
// configurations can live in bitsets: index order is name order, which also
// makes every derived rendering canonical. Transition targets are not
// required to have been registered, so the snapshot closes over everything
// reachable from the owned states rather than trusting the owned set alone.
type snapshot[T comparable] struct {
	states []*State[T]
	pos    map[string]int
	accept *bitset.BitSet
}

func newSnapshot[T comparable](a *Automaton[T]) *snapshot[T] {
	byName := make(map[string]*State[T], len(a.states))
	work := make([]*State[T], 0, len(a.states))
	for _, s := range a.states {
		byName[s.name] = s
		work = append(work, s)
	}
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		visit := func(t *State[T]) {
			if _, ok := byName[t.name]; !ok {
				byName[t.name] = t
				work = append(work, t)
			}
		}
		for sym := range s.transitions {
			for _, t := range s.transitions[sym] {
				visit(t)
			}
		}
		for _, t := range s.epsilon {
			visit(t)
		}
	}
	states := sortedByName(byName)
	snap := &snapshot[T]{
		states: states,
		pos:    make(map[string]int, len(states)),
		accept: bitset.New(uint(len(states))),
	}
	for i, s := range states {
		snap.pos[s.name] = i
		if s.accepting {
			snap.accept.Set(uint(i))
		}
	}
	return snap
}

func (snap *snapshot[T]) set(states ...*State[T]) (*bitset.BitSet, error) {
	b := bitset.New(uint(len(snap.states)))
	for _, s := range states {
		i, ok := snap.pos[s.name]
		if !ok {
			return nil, errors.Newf("state %q is not owned by the automaton", s.name)
		}
		b.Set(uint(i))
	}
	return b, nil
}

// closure expands b in place to its epsilon-closure: a worklist walk over
// direct epsilon successors, skipping members already present, so epsilon
// cycles terminate. The fixed point is unique, so worklist order is
// irrelevant.
func (snap *snapshot[T]) closure(b *bitset.BitSet) {
	work := make([]uint, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		work = append(work, i)
	}
	for len(work) > 0 {
		i := work[len(work)-1]
		work = work[:len(work)-1]
		for _, t := range snap.states[i].epsilon {
			j := uint(snap.pos[t.name])
			if !b.Test(j) {
				b.Set(j)
				work = append(work, j)
			}
		}
	}
}

// step is the pure transition function: union of all direct targets of cur
// on sym, then the epsilon-closure of that union. cur is not modified.
func (snap *snapshot[T]) step(cur *bitset.BitSet, sym T) *bitset.BitSet {
	next := bitset.New(uint(len(snap.states)))
	for i, ok := cur.NextSet(0); ok; i, ok = cur.NextSet(i + 1) {
		for _, t := range snap.states[i].transitions[sym] {
			next.Set(uint(snap.pos[t.name]))
		}
	}
	snap.closure(next)
	return next
}

func (snap *snapshot[T]) anyAccept(b *bitset.BitSet) bool {
	return b.IntersectionCardinality(snap.accept) > 0
}

func (snap *snapshot[T]) configuration(b *bitset.BitSet) Configuration[T] {
	members := make([]*State[T], 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		members = append(members, snap.states[i])
	}
	// Index order is name order; the result is already sorted.
	return Configuration[T]{states: members}
}

func (snap *snapshot[T]) key(b *bitset.BitSet) string {
	names := make([]string, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		names = append(names, snap.states[i].name)
	}
	return canonicalName(names)
}

// Runner simulates symbol consumption over one automaton. The current
// configuration starts as the epsilon-closure of the entry point; each
// consumed symbol replaces it with the closure of the union of all direct
// targets. A Runner never mutates its automaton, so several runners may
// share one.
type Runner[T comparable] struct {
	automaton *Automaton[T]
	snap      *snapshot[T]
	current   *bitset.BitSet
}

// NewRunner creates a runner positioned at the epsilon-closure of the entry
// point. Fails with ErrNoEntryPoint when the automaton has none.
func NewRunner[T comparable](a *Automaton[T]) (*Runner[T], error) {
	if a.entry == nil {
		return nil, errors.Mark(errors.New("cannot simulate"), ErrNoEntryPoint)
	}
	r := &Runner[T]{automaton: a, snap: newSnapshot(a)}
	if err := r.Restart(a.entry); err != nil {
		return nil, err
	}
	return r, nil
}

// Restart reseeds the current configuration with the epsilon-closure of the
// given states, which must belong to the automaton's state graph.
func (r *Runner[T]) Restart(states ...*State[T]) error {
	b, err := r.snap.set(states...)
	if err != nil {
		return err
	}
	r.snap.closure(b)
	r.current = b
	return nil
}

// Traverse consumes the symbols left to right, one transition step each.
// The whole sequence is validated against the alphabet before any step is
// taken; out-of-alphabet symbols fail with ErrInvalidSymbol.
func (r *Runner[T]) Traverse(syms ...T) error {
	if !r.automaton.alphabet.ContainsAll(syms) {
		return errors.Mark(errors.Newf("input %v contains symbols outside the alphabet", syms), ErrInvalidSymbol)
	}
	for _, sym := range syms {
		r.current = r.snap.step(r.current, sym)
	}
	return nil
}

// Configuration returns the current configuration.
func (r *Runner[T]) Configuration() Configuration[T] {
	return r.snap.configuration(r.current)
}

// Accepted reports whether the current configuration contains at least one
// accept state.
func (r *Runner[T]) Accepted() bool {
	return r.snap.anyAccept(r.current)
}
