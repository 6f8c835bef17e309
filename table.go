package automata

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TableRow is one configuration discovered by subset construction: its
// canonical name and, per alphabet symbol, the name of its successor.
type TableRow struct {
	Name      string
	Entry     bool
	Accepting bool
	Succ      []string
}

// Table is the transition table built by subset construction, returned as
// data so that the algorithm itself stays free of output side effects.
// Row order: entry row, non-accepting rows, accepting rows, ties by name.
type Table[T comparable] struct {
	Symbols []T
	Rows    []TableRow
}

// String renders the table for inspection. The entry row is marked with
// "->" and accepting rows with "*". The rendering is a diagnostic
// side-channel with no format-stability promise.
func (t *Table[T]) String() string {
	header := make([]string, len(t.Symbols)+1)
	header[0] = ""
	for i, sym := range t.Symbols {
		header[i+1] = fmt.Sprintf("%v", sym)
	}

	cells := make([][]string, 0, len(t.Rows)+1)
	cells = append(cells, header)
	for _, r := range t.Rows {
		mark := "  "
		if r.Entry {
			mark = "->"
		}
		name := r.Name
		if r.Accepting {
			name = "*" + name
		}
		line := make([]string, len(r.Succ)+1)
		line[0] = mark + name
		copy(line[1:], r.Succ)
		cells = append(cells, line)
	}

	// Widths in runes; the empty-set marker is multi-byte.
	widths := make([]int, len(header))
	for _, line := range cells {
		for i, cell := range line {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	for _, line := range cells {
		for i, cell := range line {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
