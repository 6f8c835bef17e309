package automata

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// State is a named automaton node. Two State values with the same name are
// the same entity everywhere in this package: target sets, configurations
// and partitions all deduplicate by name, never by pointer.
//
// A state is tagged deterministic or nondeterministic at creation. A
// deterministic state maps each symbol to at most one target and may never
// carry epsilon edges.
type State[T comparable] struct {
	name          string
	alphabet      *Alphabet[T]
	accepting     bool
	deterministic bool
	transitions   map[T]map[string]*State[T]
	epsilon       map[string]*State[T]
}

// NewState creates a detached state over the given alphabet. Use
// Automaton.MakeState to create and register in one step.
func NewState[T comparable](alphabet *Alphabet[T], name string, deterministic, accepting bool) *State[T] {
	return &State[T]{
		name:          name,
		alphabet:      alphabet,
		accepting:     accepting,
		deterministic: deterministic,
		transitions:   make(map[T]map[string]*State[T]),
		epsilon:       make(map[string]*State[T]),
	}
}

// Name returns the state's identity.
func (s *State[T]) Name() string { return s.name }

// Accepting reports whether the state is an accept state.
func (s *State[T]) Accepting() bool { return s.accepting }

// Deterministic reports whether the state was created deterministic.
func (s *State[T]) Deterministic() bool { return s.deterministic }

// AddTransition registers targets as successors of s on sym. Unknown symbols
// fail with ErrInvalidSymbol. On a deterministic state a second distinct
// target for sym fails with ErrDeterminismViolation; re-adding the one
// existing target is a no-op.
func (s *State[T]) AddTransition(sym T, targets ...*State[T]) error {
	if !s.alphabet.Contains(sym) {
		return errors.Mark(errors.Newf("state %q: transition on %v", s.name, sym), ErrInvalidSymbol)
	}
	existing := s.transitions[sym]
	if s.deterministic {
		distinct := make(map[string]struct{}, 1)
		for name := range existing {
			distinct[name] = struct{}{}
		}
		for _, t := range targets {
			distinct[t.name] = struct{}{}
		}
		if len(distinct) > 1 {
			names := make([]string, 0, len(distinct))
			for name := range distinct {
				names = append(names, name)
			}
			slices.Sort(names)
			return errors.Mark(
				errors.Newf("deterministic state %q: symbol %v would map to %s",
					s.name, sym, strings.Join(names, ", ")),
				ErrDeterminismViolation)
		}
	}
	if existing == nil {
		existing = make(map[string]*State[T], len(targets))
		s.transitions[sym] = existing
	}
	for _, t := range targets {
		existing[t.name] = t
	}
	return nil
}

// AddEpsilon registers direct epsilon successors. Deterministic states may
// never have epsilon edges; the call fails with ErrDeterminismViolation.
func (s *State[T]) AddEpsilon(targets ...*State[T]) error {
	if s.deterministic {
		return errors.Mark(errors.Newf("deterministic state %q: epsilon edge", s.name), ErrDeterminismViolation)
	}
	for _, t := range targets {
		s.epsilon[t.name] = t
	}
	return nil
}

// TransitionsFor returns the direct successors of s on sym, sorted by name.
// Undefined symbols yield the empty set; the call never fails.
func (s *State[T]) TransitionsFor(sym T) []*State[T] {
	return sortedByName(s.transitions[sym])
}

// EpsilonTargets returns the direct (one-hop) epsilon successors, sorted by
// name. Callers needing the full closure compute it through a Runner.
func (s *State[T]) EpsilonTargets() []*State[T] {
	return sortedByName(s.epsilon)
}

func sortedByName[T comparable](m map[string]*State[T]) []*State[T] {
	out := make([]*State[T], 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *State[T]) int {
		return strings.Compare(a.name, b.name)
	})
	return out
}
