package automata

import (
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"
)

// Determinize converts a nondeterministic automaton into an equivalent
// deterministic one via subset construction. An automaton that is already
// deterministic is returned unchanged. The source automaton is never
// mutated. Fails with ErrNoEntryPoint when no start state is set.
func Determinize[T comparable](a *Automaton[T]) (*Automaton[T], error) {
	dfa, _, err := determinize(a, false)
	return dfa, err
}

// DeterminizeTable is Determinize plus the transition table discovered
// during construction: entry row first, then non-accepting rows, then
// accepting rows, ties broken by canonical name. The table is nil when the
// input was already deterministic and no construction ran.
func DeterminizeTable[T comparable](a *Automaton[T]) (*Automaton[T], *Table[T], error) {
	return determinize(a, true)
}

// row is one discovered configuration and, per alphabet symbol, the index
// of its successor configuration.
type row struct {
	set  *bitset.BitSet
	name string
	succ []int
}

func determinize[T comparable](a *Automaton[T], wantTable bool) (*Automaton[T], *Table[T], error) {
	if a.deterministic {
		return a, nil, nil
	}
	if a.entry == nil {
		return nil, nil, errors.Mark(errors.New("cannot determinize"), ErrNoEntryPoint)
	}

	snap := newSnapshot(a)
	syms := a.alphabet.Symbols()

	start, err := snap.set(a.entry)
	if err != nil {
		return nil, nil, err
	}
	snap.closure(start)

	// Fixed-point table construction. Rows are keyed by the canonical
	// sorted-name rendering, so two configurations with the same members
	// always collapse onto one row no matter in which order they were
	// discovered. Termination: at most 2^n distinct configurations.
	rows := []*row{{set: start, name: snap.key(start)}}
	lookup := map[string]int{rows[0].name: 0}
	for i := 0; i < len(rows); i++ {
		r := rows[i]
		r.succ = make([]int, len(syms))
		for k, sym := range syms {
			next := snap.step(r.set, sym)
			key := snap.key(next)
			j, ok := lookup[key]
			if !ok {
				j = len(rows)
				rows = append(rows, &row{set: next, name: key})
				lookup[key] = j
			}
			r.succ[k] = j
		}
	}

	// Materialize one deterministic state per row. A row is accepting iff
	// its configuration contains an accepting source state; the empty
	// configuration is a plain rejecting sink.
	out := New(a.alphabet, true)
	states := make([]*State[T], len(rows))
	for i, r := range rows {
		s, err := out.MakeState(r.name, snap.anyAccept(r.set))
		if err != nil {
			return nil, nil, err
		}
		states[i] = s
	}
	for i, r := range rows {
		for k, sym := range syms {
			if err := states[i].AddTransition(sym, states[r.succ[k]]); err != nil {
				return nil, nil, err
			}
		}
	}
	if err := out.SetEntryPoint(states[0]); err != nil {
		return nil, nil, err
	}

	if !wantTable {
		return out, nil, nil
	}

	table := &Table[T]{Symbols: syms, Rows: make([]TableRow, len(rows))}
	for i, r := range rows {
		succ := make([]string, len(syms))
		for k, j := range r.succ {
			succ[k] = rows[j].name
		}
		table.Rows[i] = TableRow{
			Name:      r.name,
			Entry:     i == 0,
			Accepting: snap.anyAccept(r.set),
			Succ:      succ,
		}
	}
	slices.SortStableFunc(table.Rows, func(x, y TableRow) int {
		if c := rowRank(x) - rowRank(y); c != 0 {
			return c
		}
		return strings.Compare(x.Name, y.Name)
	})
	return out, table, nil
}

func rowRank(r TableRow) int {
	switch {
	case r.Entry:
		return 0
	case !r.Accepting:
		return 1
	default:
		return 2
	}
}
