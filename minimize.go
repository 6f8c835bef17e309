package automata

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"
)

// Partition is one group of states believed behaviorally equivalent at a
// given refinement round. Members are sorted by name.
type Partition[T comparable] struct {
	states []*State[T]
}

// States returns the members sorted by name.
func (p Partition[T]) States() []*State[T] {
	out := make([]*State[T], len(p.states))
	copy(out, p.states)
	return out
}

// Names returns the member names, sorted.
func (p Partition[T]) Names() []string {
	names := make([]string, len(p.states))
	for i, s := range p.states {
		names[i] = s.name
	}
	return names
}

// Name returns the canonical rendering of the member names, which is also
// the name given to the collapsed DFA state.
func (p Partition[T]) Name() string {
	return canonicalName(p.Names())
}

// Accepting reports whether the group's states accept. All members agree,
// since the initial split separates accepting from non-accepting states
// and refinement only ever subdivides.
func (p Partition[T]) Accepting() bool {
	return p.states[0].accepting
}

// Size returns the number of members.
func (p Partition[T]) Size() int { return len(p.states) }

// PartitionSet is the collection of groups at one refinement round.
type PartitionSet[T comparable] struct {
	groups []Partition[T]
}

// Groups returns the groups in refinement order.
func (ps PartitionSet[T]) Groups() []Partition[T] {
	out := make([]Partition[T], len(ps.groups))
	copy(out, ps.groups)
	return out
}

// Len returns the number of groups.
func (ps PartitionSet[T]) Len() int { return len(ps.groups) }

// String renders the groups space-separated, e.g. "{a,b} {c}".
func (ps PartitionSet[T]) String() string {
	names := make([]string, len(ps.groups))
	for i, g := range ps.groups {
		names[i] = g.Name()
	}
	return strings.Join(names, " ")
}

// Minimize produces an equivalent deterministic automaton with the minimum
// number of states, via partition refinement. The source is never mutated.
// Fails with ErrNotDeterministic on a nondeterministic automaton and with
// ErrNoEntryPoint when no start state is set.
func Minimize[T comparable](a *Automaton[T]) (*Automaton[T], error) {
	m, _, err := minimize(a, false)
	return m, err
}

// MinimizeHistory is Minimize plus the partition set after every round,
// the initial accepting/non-accepting split first.
func MinimizeHistory[T comparable](a *Automaton[T]) (*Automaton[T], []PartitionSet[T], error) {
	return minimize(a, true)
}

func minimize[T comparable](a *Automaton[T], wantHistory bool) (*Automaton[T], []PartitionSet[T], error) {
	if !a.deterministic {
		return nil, nil, errors.Mark(errors.New("cannot minimize"), ErrNotDeterministic)
	}
	if a.entry == nil {
		return nil, nil, errors.Mark(errors.New("cannot minimize"), ErrNoEntryPoint)
	}

	snap := newSnapshot(a)
	states := snap.states
	syms := a.alphabet.Symbols()

	// Initial split: accepting vs non-accepting, dropping an empty side.
	var accepting, rejecting []*State[T]
	for _, s := range states {
		if s.accepting {
			accepting = append(accepting, s)
		} else {
			rejecting = append(rejecting, s)
		}
	}
	var groups [][]*State[T]
	if len(rejecting) > 0 {
		groups = append(groups, rejecting)
	}
	if len(accepting) > 0 {
		groups = append(groups, accepting)
	}

	// groupOf maps a state (by snapshot index) to its current group id.
	groupOf := make([]int, len(states))
	assign := func() {
		for id, g := range groups {
			for _, s := range g {
				groupOf[snap.pos[s.name]] = id
			}
		}
	}
	assign()

	var history []PartitionSet[T]
	record := func() {
		if !wantHistory {
			return
		}
		ps := PartitionSet[T]{groups: make([]Partition[T], len(groups))}
		for i, g := range groups {
			members := make([]*State[T], len(g))
			copy(members, g)
			ps.groups[i] = Partition[T]{states: members}
		}
		history = append(history, ps)
	}
	record()

	// Refine until a full pass makes no split. A state's signature is the
	// tuple, over all alphabet symbols, of the group its transition target
	// belongs to (-1 for no transition); states in one group with differing
	// signatures cannot be equivalent and are separated. Termination: the
	// group count only grows and is bounded by the state count.
	signature := func(s *State[T]) string {
		var b strings.Builder
		for _, sym := range syms {
			target := -1
			if m := s.transitions[sym]; len(m) > 0 {
				for _, t := range m {
					target = groupOf[snap.pos[t.name]]
				}
			}
			fmt.Fprintf(&b, "%d,", target)
		}
		return b.String()
	}
	for {
		split := false
		next := make([][]*State[T], 0, len(groups))
		for _, g := range groups {
			buckets := make(map[string]int)
			var parts [][]*State[T]
			for _, s := range g {
				sig := signature(s)
				i, ok := buckets[sig]
				if !ok {
					i = len(parts)
					buckets[sig] = i
					parts = append(parts, nil)
				}
				parts[i] = append(parts[i], s)
			}
			if len(parts) > 1 {
				split = true
			}
			next = append(next, parts...)
		}
		groups = next
		assign()
		if err := validatePartition(snap, groups); err != nil {
			return nil, nil, err
		}
		record()
		if !split {
			break
		}
	}

	// Collapse each group into one state. Transitions come from an
	// arbitrary representative, mapped through group membership; members
	// agree by construction, that is what the fixed point means.
	out := New(a.alphabet, true)
	collapsed := make([]*State[T], len(groups))
	for id, g := range groups {
		p := Partition[T]{states: g}
		s, err := out.MakeState(p.Name(), p.Accepting())
		if err != nil {
			return nil, nil, err
		}
		collapsed[id] = s
	}
	for id, g := range groups {
		rep := g[0]
		for _, sym := range syms {
			targets := rep.TransitionsFor(sym)
			if len(targets) == 0 {
				continue
			}
			dest := groupOf[snap.pos[targets[0].name]]
			if err := collapsed[id].AddTransition(sym, collapsed[dest]); err != nil {
				return nil, nil, err
			}
		}
	}
	if err := out.SetEntryPoint(collapsed[groupOf[snap.pos[a.entry.name]]]); err != nil {
		return nil, nil, err
	}
	return out, history, nil
}

// validatePartition checks that the groups are pairwise disjoint and cover
// every owned state. A violation is an internal defect of the refinement
// step, reported as an assertion failure that aborts minimization.
func validatePartition[T comparable](snap *snapshot[T], groups [][]*State[T]) error {
	seen := bitset.New(uint(len(snap.states)))
	for _, g := range groups {
		for _, s := range g {
			i := uint(snap.pos[s.name])
			if seen.Test(i) {
				return errors.AssertionFailedf("state %q appears in more than one partition", s.name)
			}
			seen.Set(i)
		}
	}
	if int(seen.Count()) != len(snap.states) {
		return errors.AssertionFailedf("partition covers %d of %d states", seen.Count(), len(snap.states))
	}
	return nil
}
