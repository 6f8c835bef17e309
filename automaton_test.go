package automata

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeState(t *testing.T) {
	a := New(binary(t), false)

	s, err := a.MakeState("s", false)
	require.NoError(t, err)
	assert.False(t, s.Deterministic())

	_, err = a.MakeState("s", true)
	assert.True(t, errors.Is(err, ErrDuplicateState))
	assert.Equal(t, 1, a.NumStates())
}

func TestAddState(t *testing.T) {
	ab := binary(t)

	t.Run("registers reachable closure", func(t *testing.T) {
		a := New(ab, false)
		x := NewState(ab, "x", false, false)
		y := NewState(ab, "y", false, false)
		z := NewState(ab, "z", false, true)
		require.NoError(t, x.AddTransition(0, y))
		require.NoError(t, y.AddEpsilon(z))

		require.NoError(t, a.AddState(x))
		assert.Equal(t, 3, a.NumStates())
	})

	t.Run("nondeterministic state in deterministic automaton", func(t *testing.T) {
		a := New(ab, true)
		err := a.AddState(NewState(ab, "x", false, false))
		assert.True(t, errors.Is(err, ErrDeterminismMismatch))
		assert.Equal(t, 0, a.NumStates())
	})

	t.Run("mismatch deep in the closure registers nothing", func(t *testing.T) {
		a := New(ab, true)
		x := NewState(ab, "x", true, false)
		y := NewState(ab, "y", false, false)
		require.NoError(t, x.AddTransition(0, y))

		err := a.AddState(x)
		assert.True(t, errors.Is(err, ErrDeterminismMismatch))
		assert.Equal(t, 0, a.NumStates())
	})

	t.Run("same name different object", func(t *testing.T) {
		a := New(ab, false)
		require.NoError(t, a.AddState(NewState(ab, "x", false, false)))
		err := a.AddState(NewState(ab, "x", false, false))
		assert.True(t, errors.Is(err, ErrDuplicateState))
	})

	t.Run("re-adding a registered state is a no-op", func(t *testing.T) {
		a := New(ab, false)
		x := NewState(ab, "x", false, false)
		require.NoError(t, a.AddState(x))
		require.NoError(t, a.AddState(x))
		assert.Equal(t, 1, a.NumStates())
	})
}

func TestAccepts(t *testing.T) {
	ab := binary(t)

	t.Run("no entry point rejects quietly", func(t *testing.T) {
		a := New(ab, false)
		_, err := a.MakeState("s", true)
		require.NoError(t, err)

		ok, err := a.Accepts(0, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("symbol outside alphabet", func(t *testing.T) {
		a := New(ab, false)
		s, err := a.MakeState("s", true)
		require.NoError(t, err)
		require.NoError(t, a.SetEntryPoint(s))

		_, err = a.Accepts(0, 7)
		assert.True(t, errors.Is(err, ErrInvalidSymbol))
	})

	t.Run("simple dfa", func(t *testing.T) {
		a := New(ab, true)
		even, err := a.MakeState("even", true)
		require.NoError(t, err)
		odd, err := a.MakeState("odd", false)
		require.NoError(t, err)
		require.NoError(t, even.AddTransition(1, odd))
		require.NoError(t, even.AddTransition(0, even))
		require.NoError(t, odd.AddTransition(1, even))
		require.NoError(t, odd.AddTransition(0, odd))
		require.NoError(t, a.SetEntryPoint(even))

		for _, tc := range []struct {
			seq  []int
			want bool
		}{
			{nil, true},
			{[]int{1}, false},
			{[]int{1, 1}, true},
			{[]int{0, 1, 0, 1, 0}, true},
			{[]int{1, 0, 0, 0}, false},
		} {
			got, err := a.Accepts(tc.seq...)
			require.NoError(t, err)
			assert.Equalf(t, tc.want, got, "Accepts(%v)", tc.seq)
		}
	})
}

func TestReachableFromEntry(t *testing.T) {
	ab := binary(t)
	a := New(ab, false)
	s, err := a.MakeState("s", false)
	require.NoError(t, err)
	x, err := a.MakeState("x", false)
	require.NoError(t, err)
	_, err = a.MakeState("island", true)
	require.NoError(t, err)
	require.NoError(t, s.AddEpsilon(x))
	require.NoError(t, a.SetEntryPoint(s))

	got := a.ReachableFromEntry()
	require.Len(t, got, 2)
	assert.Equal(t, "s", got[0].Name())
	assert.Equal(t, "x", got[1].Name())
}
