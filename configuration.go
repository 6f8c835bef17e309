package automata

import (
	"slices"
	"strings"
)

// emptySetName is the canonical rendering of the empty configuration. It is
// a legitimate DFA-state name: the rejecting sink reached when a symbol has
// no registered targets.
const emptySetName = "∅"

// Configuration is an unordered set of states: everything the automaton
// could simultaneously be in during nondeterministic simulation. Two
// configurations are equal iff they hold the same state names, regardless
// of discovery order.
type Configuration[T comparable] struct {
	states []*State[T] // sorted by name, deduplicated
}

// NewConfiguration builds a configuration from the given states,
// deduplicating by name.
func NewConfiguration[T comparable](states ...*State[T]) Configuration[T] {
	byName := make(map[string]*State[T], len(states))
	for _, s := range states {
		byName[s.name] = s
	}
	return Configuration[T]{states: sortedByName(byName)}
}

// States returns the members sorted by name.
func (c Configuration[T]) States() []*State[T] {
	return slices.Clone(c.states)
}

// Names returns the member names, sorted.
func (c Configuration[T]) Names() []string {
	names := make([]string, len(c.states))
	for i, s := range c.states {
		names[i] = s.name
	}
	return names
}

// Contains reports whether a state with the given name is a member.
func (c Configuration[T]) Contains(name string) bool {
	_, ok := slices.BinarySearchFunc(c.states, name, func(s *State[T], n string) int {
		return strings.Compare(s.name, n)
	})
	return ok
}

// Accepting reports whether at least one member is an accept state.
func (c Configuration[T]) Accepting() bool {
	for _, s := range c.states {
		if s.accepting {
			return true
		}
	}
	return false
}

// Empty reports whether the configuration has no members.
func (c Configuration[T]) Empty() bool { return len(c.states) == 0 }

// Size returns the number of members.
func (c Configuration[T]) Size() int { return len(c.states) }

// Equal reports content equality: same member names, order-independent.
func (c Configuration[T]) Equal(other Configuration[T]) bool {
	return slices.Equal(c.Names(), other.Names())
}

// String renders the canonical name: the sorted member names in braces, or
// the empty-set marker. This rendering is also the lookup key during subset
// construction and the name given to generated DFA states.
func (c Configuration[T]) String() string {
	return canonicalName(c.Names())
}

func canonicalName(sortedNames []string) string {
	if len(sortedNames) == 0 {
		return emptySetName
	}
	return "{" + strings.Join(sortedNames, ",") + "}"
}
