package automata

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mergeableDFA builds a 4-state DFA over {0,1,2} in which b and c are
// behaviorally indistinguishable (every symbol sends both to d), so
// minimization must collapse them into one state.
func mergeableDFA(t *testing.T) *Automaton[int] {
	t.Helper()
	ab, err := NewAlphabet(0, 1, 2)
	require.NoError(t, err)

	dfa := New(ab, true)
	a, err := dfa.MakeState("a", false)
	require.NoError(t, err)
	b, err := dfa.MakeState("b", false)
	require.NoError(t, err)
	c, err := dfa.MakeState("c", false)
	require.NoError(t, err)
	d, err := dfa.MakeState("d", true)
	require.NoError(t, err)

	require.NoError(t, a.AddTransition(0, b))
	require.NoError(t, a.AddTransition(1, c))
	require.NoError(t, a.AddTransition(2, a))
	for _, sym := range []int{0, 1, 2} {
		require.NoError(t, b.AddTransition(sym, d))
		require.NoError(t, c.AddTransition(sym, d))
	}
	require.NoError(t, dfa.SetEntryPoint(a))
	return dfa
}

func TestMinimize(t *testing.T) {
	dfa := mergeableDFA(t)
	min, err := dfa.ToMinimal()
	require.NoError(t, err)

	t.Run("merges the indistinguishable pair", func(t *testing.T) {
		assert.Equal(t, 4, dfa.NumStates())
		assert.Equal(t, 3, min.NumStates())

		var merged *State[int]
		for _, s := range min.States() {
			if s.Name() == "{b,c}" {
				merged = s
			}
		}
		require.NotNil(t, merged)
		assert.False(t, merged.Accepting())
	})

	t.Run("behavior preserved for every string up to length 5", func(t *testing.T) {
		for _, seq := range allSequences([]int{0, 1, 2}, 5) {
			want, err := dfa.Accepts(seq...)
			require.NoError(t, err)
			got, err := min.Accepts(seq...)
			require.NoError(t, err)
			assert.Equalf(t, want, got, "sequence %v", seq)
		}
	})

	t.Run("state count never grows", func(t *testing.T) {
		assert.LessOrEqual(t, min.NumStates(), dfa.NumStates())
	})

	t.Run("minimization is idempotent", func(t *testing.T) {
		again, err := min.ToMinimal()
		require.NoError(t, err)
		assert.Equal(t, min.NumStates(), again.NumStates())
		for _, seq := range allSequences([]int{0, 1, 2}, 4) {
			want, err := min.Accepts(seq...)
			require.NoError(t, err)
			got, err := again.Accepts(seq...)
			require.NoError(t, err)
			assert.Equalf(t, want, got, "sequence %v", seq)
		}
	})

	t.Run("source automaton untouched", func(t *testing.T) {
		assert.Equal(t, 4, dfa.NumStates())
		assert.Equal(t, "a", dfa.EntryPoint().Name())
	})
}

func TestMinimizeErrors(t *testing.T) {
	t.Run("nondeterministic input", func(t *testing.T) {
		nfa := epsilonNFA(t)
		_, err := nfa.ToMinimal()
		assert.True(t, errors.Is(err, ErrNotDeterministic))
	})

	t.Run("no entry point", func(t *testing.T) {
		ab, err := NewAlphabet(0, 1)
		require.NoError(t, err)
		dfa := New(ab, true)
		_, err = dfa.MakeState("s", true)
		require.NoError(t, err)

		_, err = dfa.ToMinimal()
		assert.True(t, errors.Is(err, ErrNoEntryPoint))
	})
}

func TestMinimizeHistory(t *testing.T) {
	dfa := mergeableDFA(t)
	min, history, err := dfa.ToMinimalHistory()
	require.NoError(t, err)
	require.NotEmpty(t, history)

	t.Run("starts with the accepting split", func(t *testing.T) {
		initial := history[0]
		require.Equal(t, 2, initial.Len())
		assert.Equal(t, "{a,b,c}", initial.Groups()[0].Name())
		assert.Equal(t, "{d}", initial.Groups()[1].Name())
	})

	t.Run("every round is a valid partition", func(t *testing.T) {
		for round, ps := range history {
			seen := make(map[string]int)
			for _, g := range ps.Groups() {
				require.Positive(t, g.Size())
				for _, name := range g.Names() {
					seen[name]++
				}
			}
			require.Lenf(t, seen, dfa.NumStates(), "round %d", round)
			for name, count := range seen {
				assert.Equalf(t, 1, count, "round %d: state %q", round, name)
			}
		}
	})

	t.Run("group count is non-decreasing and ends at the minimum", func(t *testing.T) {
		for i := 1; i < len(history); i++ {
			assert.GreaterOrEqual(t, history[i].Len(), history[i-1].Len())
		}
		assert.Equal(t, min.NumStates(), history[len(history)-1].Len())
	})

	t.Run("rounds render for inspection", func(t *testing.T) {
		assert.Equal(t, "{a,b,c} {d}", history[0].String())
	})
}

func TestMinimizeAfterDeterminize(t *testing.T) {
	nfa := epsilonNFA(t)
	dfa, err := nfa.ToDeterministic()
	require.NoError(t, err)
	min, err := dfa.ToMinimal()
	require.NoError(t, err)

	assert.LessOrEqual(t, min.NumStates(), dfa.NumStates())
	for _, seq := range allSequences([]int{0, 1}, 6) {
		want, err := nfa.Accepts(seq...)
		require.NoError(t, err)
		got, err := min.Accepts(seq...)
		require.NoError(t, err)
		assert.Equalf(t, want, got, "sequence %v", seq)
	}
}
