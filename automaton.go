package automata

import (
	"github.com/cockroachdb/errors"
)

// Automaton owns a set of named states over one alphabet, an optional entry
// point and a determinism flag. A deterministic automaton only ever owns
// deterministic states.
//
// Construction (MakeState, AddState, SetEntryPoint) is not safe for
// concurrent use. Once built, Accepts, ToDeterministic and ToMinimal never
// mutate the automaton, so concurrent queries and transforms are safe.
type Automaton[T comparable] struct {
	alphabet      *Alphabet[T]
	states        map[string]*State[T]
	deterministic bool
	entry         *State[T]
}

// New creates an empty automaton over the given alphabet.
func New[T comparable](alphabet *Alphabet[T], deterministic bool) *Automaton[T] {
	return &Automaton[T]{
		alphabet:      alphabet,
		states:        make(map[string]*State[T]),
		deterministic: deterministic,
	}
}

// Alphabet returns the automaton's alphabet.
func (a *Automaton[T]) Alphabet() *Alphabet[T] { return a.alphabet }

// Deterministic reports whether the automaton was created deterministic.
func (a *Automaton[T]) Deterministic() bool { return a.deterministic }

// MakeState creates a state matching the automaton's determinism flag and
// registers it. A name collision fails with ErrDuplicateState.
func (a *Automaton[T]) MakeState(name string, accepting bool) (*State[T], error) {
	if _, ok := a.states[name]; ok {
		return nil, errors.Mark(errors.Newf("state %q already exists", name), ErrDuplicateState)
	}
	s := NewState(a.alphabet, name, a.deterministic, accepting)
	a.states[name] = s
	return s, nil
}

// AddState registers pre-built states together with everything reachable
// from them via transitions and epsilon edges. Adding a nondeterministic
// state to a deterministic automaton fails with ErrDeterminismMismatch; a
// distinct state whose name is already taken fails with ErrDuplicateState.
// Nothing is registered unless the whole reachable closure is valid.
func (a *Automaton[T]) AddState(states ...*State[T]) error {
	pending := make(map[string]*State[T])
	work := make([]*State[T], 0, len(states))
	enqueue := func(s *State[T]) error {
		if known, ok := a.states[s.name]; ok {
			if known != s {
				return errors.Mark(errors.Newf("state %q already exists", s.name), ErrDuplicateState)
			}
			return nil
		}
		if prev, ok := pending[s.name]; ok {
			if prev != s {
				return errors.Mark(errors.Newf("state %q already exists", s.name), ErrDuplicateState)
			}
			return nil
		}
		if a.deterministic && !s.deterministic {
			return errors.Mark(errors.Newf("state %q is nondeterministic", s.name), ErrDeterminismMismatch)
		}
		pending[s.name] = s
		work = append(work, s)
		return nil
	}
	for _, s := range states {
		if err := enqueue(s); err != nil {
			return err
		}
	}
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		for sym := range s.transitions {
			for _, t := range s.transitions[sym] {
				if err := enqueue(t); err != nil {
					return err
				}
			}
		}
		for _, t := range s.epsilon {
			if err := enqueue(t); err != nil {
				return err
			}
		}
	}
	for name, s := range pending {
		a.states[name] = s
	}
	return nil
}

// SetEntryPoint designates the start state, registering it (and its
// reachable closure) if not already owned.
func (a *Automaton[T]) SetEntryPoint(s *State[T]) error {
	if err := a.AddState(s); err != nil {
		return err
	}
	a.entry = a.states[s.name]
	return nil
}

// EntryPoint returns the designated start state, or nil.
func (a *Automaton[T]) EntryPoint() *State[T] { return a.entry }

// States returns the owned states sorted by name.
func (a *Automaton[T]) States() []*State[T] {
	return sortedByName(a.states)
}

// NumStates returns the number of owned states.
func (a *Automaton[T]) NumStates() int { return len(a.states) }

// Accepts simulates the input sequence from the entry point and reports
// whether the final configuration contains an accept state. Out-of-alphabet
// symbols fail with ErrInvalidSymbol. Without an entry point the automaton
// accepts nothing, so the result is false with no error.
func (a *Automaton[T]) Accepts(seq ...T) (bool, error) {
	if !a.alphabet.ContainsAll(seq) {
		return false, errors.Mark(errors.Newf("input %v contains symbols outside the alphabet", seq), ErrInvalidSymbol)
	}
	if a.entry == nil {
		return false, nil
	}
	r, err := NewRunner(a)
	if err != nil {
		return false, err
	}
	if err := r.Traverse(seq...); err != nil {
		return false, err
	}
	return r.Accepted(), nil
}

// ReachableFromEntry returns every state reachable from the entry point via
// transitions and epsilon edges, sorted by name. Without an entry point the
// result is empty.
func (a *Automaton[T]) ReachableFromEntry() []*State[T] {
	if a.entry == nil {
		return nil
	}
	seen := map[string]*State[T]{a.entry.name: a.entry}
	work := []*State[T]{a.entry}
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		visit := func(t *State[T]) {
			if _, ok := seen[t.name]; !ok {
				seen[t.name] = t
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
	return sortedByName(seen)
}

// ToDeterministic converts the automaton to an equivalent deterministic one
// via subset construction. An already-deterministic automaton is returned
// as is. Fails with ErrNoEntryPoint when no start state is set.
func (a *Automaton[T]) ToDeterministic() (*Automaton[T], error) {
	return Determinize(a)
}

// ToDeterministicTable is ToDeterministic plus the transition table built
// during subset construction, for inspection. The table is nil when the
// automaton was already deterministic and no construction ran.
func (a *Automaton[T]) ToDeterministicTable() (*Automaton[T], *Table[T], error) {
	return DeterminizeTable(a)
}

// ToMinimal produces an equivalent deterministic automaton with the minimum
// number of states, via partition refinement. Fails with
// ErrNotDeterministic on a nondeterministic automaton.
func (a *Automaton[T]) ToMinimal() (*Automaton[T], error) {
	return Minimize(a)
}

// ToMinimalHistory is ToMinimal plus the partition set after every
// refinement round, initial split first.
func (a *Automaton[T]) ToMinimalHistory() (*Automaton[T], []PartitionSet[T], error) {
	return MinimizeHistory(a)
}
