// Package stream implements the append-only score record log described in
// spec.md §4.4: engines append records in visit order, and downstream
// collaborators group or sort a copy as a separate pass.
package stream

import (
	"sort"

	"github.com/wieku/rplreplay/engine"
)

// Stream is an append-only sequence of score records. The zero value is an
// empty, ready-to-use stream.
type Stream struct {
	records []engine.ScoreRecord
}

// New returns an empty stream with room for n records preallocated.
func New(n int) *Stream {
	return &Stream{records: make([]engine.ScoreRecord, 0, n)}
}

// Append adds a record to the end of the stream. Engines call this in visit
// order; it never reorders or deduplicates.
func (s *Stream) Append(r engine.ScoreRecord) {
	s.records = append(s.records, r)
}

// Len returns the number of records currently in the stream.
func (s *Stream) Len() int { return len(s.records) }

// Records returns the records in engine-visit order. The returned slice
// aliases the stream's internal storage and must not be mutated.
func (s *Stream) Records() []engine.ScoreRecord { return s.records }

// SortedByNoteAndTime returns a stably-sorted copy ordered by (NoteIndex,
// ReplayT), the grouping spec.md §4.4 requires downstream consumers be able
// to produce. Records with a nil NoteIndex sort after all indexed records.
func (s *Stream) SortedByNoteAndTime() []engine.ScoreRecord {
	out := make([]engine.ScoreRecord, len(s.records))
	copy(out, s.records)

	sort.SliceStable(out, func(i, j int) bool {
		ni, nj := out[i].NoteIndex, out[j].NoteIndex
		switch {
		case ni == nil && nj == nil:
			return out[i].ReplayT < out[j].ReplayT
		case ni == nil:
			return false
		case nj == nil:
			return true
		case *ni != *nj:
			return *ni < *nj
		default:
			return out[i].ReplayT < out[j].ReplayT
		}
	})
	return out
}

// Filter returns the records for which keep returns true, in stream order.
func (s *Stream) Filter(keep func(engine.ScoreRecord) bool) []engine.ScoreRecord {
	out := make([]engine.ScoreRecord, 0, len(s.records))
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// GroupByColumn partitions records by the column they belong to. column(r)
// must return the originating column for a record produced by the mania
// engine; the std engine has no columns and does not use this.
func GroupByColumn(records []engine.ScoreRecord, column func(engine.ScoreRecord) int) map[int][]engine.ScoreRecord {
	out := make(map[int][]engine.ScoreRecord)
	for _, r := range records {
		c := column(r)
		out[c] = append(out[c], r)
	}
	return out
}
