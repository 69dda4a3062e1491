// Package maniametrics replaces the original's "500-row chunked scan" (§9
// Design Notes) with a single streaming pass over a score record stream,
// computing interval-windowed accuracy without re-reading the stream per
// window. spec.md §1 places mania map-metrics outside the core engine.
package maniametrics

import "github.com/wieku/rplreplay/engine"

// Interval is one fixed-width accuracy window.
type Interval struct {
	StartMs  int
	EndMs    int
	Hits     int
	Misses   int
	Accuracy float64
}

// Windows buckets records by ReplayT into fixed-width windowMs intervals in
// a single forward pass, rather than the chunked re-scan the original
// performed per 500-record slice.
func Windows(records []engine.ScoreRecord, windowMs int) []Interval {
	if windowMs <= 0 || len(records) == 0 {
		return nil
	}

	var out []Interval
	cur := Interval{}
	started := false

	flush := func() {
		if !started {
			return
		}
		if cur.Hits+cur.Misses > 0 {
			cur.Accuracy = float64(cur.Hits) / float64(cur.Hits+cur.Misses)
		}
		out = append(out, cur)
	}

	for _, r := range records {
		switch r.Judgment {
		case engine.JudgmentHitPress, engine.JudgmentHitRelease, engine.JudgmentMiss:
		default:
			continue
		}

		windowStart := (r.ReplayT / windowMs) * windowMs
		if !started || windowStart != cur.StartMs {
			flush()
			cur = Interval{StartMs: windowStart, EndMs: windowStart + windowMs}
			started = true
		}

		if r.Judgment == engine.JudgmentMiss {
			cur.Misses++
		} else {
			cur.Hits++
		}
	}
	flush()
	return out
}
