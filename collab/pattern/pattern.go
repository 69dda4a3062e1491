// Package pattern classifies mania column actions into authored patterns.
// DetectChords and DetectJacks find chords and jacks; KindInverse is declared
// but no function in this package produces it. spec.md §1 excludes pattern
// detection from the core engine; this package reads a finished per-column
// note layout, it does not participate in scoring.
package pattern

import "github.com/wieku/rplreplay/engine/mania"

// Kind is a recognized multi-column pattern shape.
type Kind int

const (
	// KindChord marks two or more notes across columns starting within
	// DetectChords' window of each other.
	KindChord Kind = iota
	// KindJack marks two consecutive single notes in the same column at most
	// DetectJacks' window apart.
	KindJack
	// KindInverse names a long note release landing close to another
	// column's note start, a common hold/release overlap shape.
	KindInverse
)

// Occurrence is one detected pattern instance.
type Occurrence struct {
	Kind    Kind
	TimeMs  int
	Columns []int
}

// DetectChords groups note starts across columns that fall within windowMs
// of each other into chord occurrences.
func DetectChords(columns [][]mania.Note, windowMs int) []Occurrence {
	type stamped = struct {
		col int
		t   int
	}
	var starts []stamped
	for c, notes := range columns {
		for _, n := range notes {
			starts = append(starts, stamped{col: c, t: n.StartMs})
		}
	}
	sortByTime(starts)

	var out []Occurrence
	i := 0
	for i < len(starts) {
		j := i + 1
		cols := []int{starts[i].col}
		for j < len(starts) && starts[j].t-starts[i].t <= windowMs {
			cols = append(cols, starts[j].col)
			j++
		}
		if len(cols) > 1 {
			out = append(out, Occurrence{Kind: KindChord, TimeMs: starts[i].t, Columns: cols})
		}
		i = j
	}
	return out
}

func sortByTime(s []struct {
	col int
	t   int
}) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].t < s[j-1].t; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// DetectJacks finds consecutive single notes in the same column at most
// windowMs apart.
func DetectJacks(column []mania.Note, windowMs int) []Occurrence {
	var out []Occurrence
	for i := 1; i < len(column); i++ {
		if !column[i-1].IsSingle() || !column[i].IsSingle() {
			continue
		}
		if column[i].StartMs-column[i-1].StartMs <= windowMs {
			out = append(out, Occurrence{Kind: KindJack, TimeMs: column[i].StartMs, Columns: nil})
		}
	}
	return out
}
