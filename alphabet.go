package automata

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Alphabet is the immutable, ordered set of distinct symbols an automaton
// may be driven with. The symbol order given at construction is preserved
// and used for transition-table columns.
type Alphabet[T comparable] struct {
	symbols []T
	index   map[T]int
}

// NewAlphabet builds an alphabet from the given symbols. Supplying the same
// symbol twice fails with ErrDuplicateSymbol.
func NewAlphabet[T comparable](symbols ...T) (*Alphabet[T], error) {
	index := make(map[T]int, len(symbols))
	for i, sym := range symbols {
		if _, ok := index[sym]; ok {
			return nil, errors.Mark(errors.Newf("symbol %v supplied twice", sym), ErrDuplicateSymbol)
		}
		index[sym] = i
	}
	return &Alphabet[T]{
		symbols: slices.Clone(symbols),
		index:   index,
	}, nil
}

// Contains reports whether sym is a member of the alphabet.
func (al *Alphabet[T]) Contains(sym T) bool {
	_, ok := al.index[sym]
	return ok
}

// ContainsAll reports whether every element of seq is a member of the
// alphabet. The empty sequence is trivially contained.
func (al *Alphabet[T]) ContainsAll(seq []T) bool {
	for _, sym := range seq {
		if !al.Contains(sym) {
			return false
		}
	}
	return true
}

// Symbols returns a copy of the symbols in declaration order.
func (al *Alphabet[T]) Symbols() []T {
	return slices.Clone(al.symbols)
}

// Len returns the number of symbols.
func (al *Alphabet[T]) Len() int {
	return len(al.symbols)
}
