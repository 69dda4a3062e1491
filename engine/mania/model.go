// Package mania implements the column-based scoring engine: notes live in
// discrete columns and are pressed/released vertically (spec.md §4.3).
package mania

import "sort"

// Note is a single authored mania note. A single note has EndMs-StartMs <= 1;
// a long note has a larger gap (spec.md §3).
type Note struct {
	StartMs int
	EndMs   int
}

// IsSingle reports whether n is a tap note rather than a long note.
func (n Note) IsSingle() bool { return n.EndMs-n.StartMs <= 1 }

// Role is the half of a note a ColumnEvent represents.
type Role int

const (
	RolePress Role = iota
	RoleRelease
)

// ColumnEvent is one role-tagged instant expanded from a Note, scoped to a
// single column (spec.md §3).
type ColumnEvent struct {
	TimeMs    int
	Role      Role
	NoteIndex int
}

// ReplayPress is one completed press-release pair recorded in a column
// (spec.md §3). ReleaseMs is the frame the key came back up.
type ReplayPress struct {
	PressMs   int
	ReleaseMs int
}

// ExpandNotes builds the time-sorted (start,PRESS)/(end,RELEASE) event list
// for one column's notes (spec.md §4.3 step 1; grounded on
// original_source/analysis/mania/action_data.py's note expansion).
func ExpandNotes(notes []Note) []ColumnEvent {
	out := make([]ColumnEvent, 0, len(notes)*2)
	for i, n := range notes {
		out = append(out,
			ColumnEvent{TimeMs: n.StartMs, Role: RolePress, NoteIndex: i},
			ColumnEvent{TimeMs: n.EndMs, Role: RoleRelease, NoteIndex: i},
		)
	}
	sortEvents(out)
	return out
}

// ExpandReplay builds the matching sorted PRESS/RELEASE transition list for
// one column's recorded key presses.
func ExpandReplay(presses []ReplayPress) []ColumnEvent {
	out := make([]ColumnEvent, 0, len(presses)*2)
	for i, p := range presses {
		out = append(out,
			ColumnEvent{TimeMs: p.PressMs, Role: RolePress, NoteIndex: i},
			ColumnEvent{TimeMs: p.ReleaseMs, Role: RoleRelease, NoteIndex: i},
		)
	}
	sortEvents(out)
	return out
}

// sortEvents orders by time, keeping a PRESS before a RELEASE that shares
// its time (the order a single note's pair must appear in).
func sortEvents(events []ColumnEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].TimeMs != events[j].TimeMs {
			return events[i].TimeMs < events[j].TimeMs
		}
		return events[i].Role < events[j].Role
	})
}

// DeriveColumnCount reconstructs the replay's column count from the widest
// bitmask frame observed, as the original source did before per-column
// press/release pairs were available (original_source/analysis/mania/action_data.py).
func DeriveColumnCount(frames []BitmaskFrame) int {
	max := 0
	for _, f := range frames {
		if f.Mask == 0 {
			continue
		}
		bits := 0
		for m := f.Mask; m != 0; m >>= 1 {
			bits++
		}
		if bits > max {
			max = bits
		}
	}
	return max
}

// BitmaskFrame is one replay frame expressed as a bitmask over N columns
// with a delta time from the previous frame (spec.md §6). Press/release
// pairs are reconstructed by taking rising and falling edges per column.
type BitmaskFrame struct {
	DeltaMs int
	Mask    uint32
}

// PressesFromFrames reconstructs per-column ReplayPress lists from a
// sequence of bitmask frames, taking rising and falling edges per column
// (spec.md §6).
func PressesFromFrames(frames []BitmaskFrame, numCols int) [][]ReplayPress {
	out := make([][]ReplayPress, numCols)
	down := make([]bool, numCols)
	pressAt := make([]int, numCols)

	t := 0
	for _, f := range frames {
		t += f.DeltaMs
		for c := 0; c < numCols; c++ {
			bit := f.Mask&(1<<uint(c)) != 0
			switch {
			case bit && !down[c]:
				down[c] = true
				pressAt[c] = t
			case !bit && down[c]:
				down[c] = false
				out[c] = append(out[c], ReplayPress{PressMs: pressAt[c], ReleaseMs: t})
			}
		}
	}
	return out
}
