package automata

import "github.com/cockroachdb/errors"

// Sentinel errors for every contract violation the package reports. Callers
// classify failures with errors.Is; the returned errors carry additional
// detail about the offending symbol or state.
var (
	// ErrDuplicateSymbol is returned by NewAlphabet when the same symbol is
	// supplied more than once.
	ErrDuplicateSymbol = errors.New("duplicate symbol in alphabet")

	// ErrInvalidSymbol is returned when a transition or an input sequence
	// uses a symbol outside the declared alphabet.
	ErrInvalidSymbol = errors.New("symbol not in alphabet")

	// ErrDeterminismViolation is returned when an operation would make a
	// deterministic state nondeterministic: a second distinct target for one
	// symbol, or an epsilon edge.
	ErrDeterminismViolation = errors.New("operation violates determinism")

	// ErrDeterminismMismatch is returned when a nondeterministic state is
	// added to a deterministic automaton.
	ErrDeterminismMismatch = errors.New("nondeterministic state in deterministic automaton")

	// ErrDuplicateState is returned when a state name collides with a
	// different state already registered in the same automaton.
	ErrDuplicateState = errors.New("duplicate state name")

	// ErrNoEntryPoint is returned by operations that require a designated
	// start state when none has been set.
	ErrNoEntryPoint = errors.New("automaton has no entry point")

	// ErrNotDeterministic is returned when minimization is invoked on a
	// nondeterministic automaton.
	ErrNotDeterministic = errors.New("automaton is not deterministic")
)
