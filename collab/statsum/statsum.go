// Package statsum computes simple descriptive statistics over a finished
// score record stream: mean/stdev timing offset and hit accuracy. This is
// explicitly named as out-of-core surface by spec.md §1 ("statistical
// summaries over a finished score stream are a downstream concern"); the
// core engine produces the stream, this package only reads it.
package statsum

import (
	"math"

	"github.com/wieku/rplreplay/engine"
)

// Summary holds the aggregate statistics computed over one score stream.
type Summary struct {
	Count        int
	Hits         int
	Misses       int
	Accuracy      float64 // Hits / (Hits+Misses), 0 when there are no judged records
	MeanOffsetMs  float64
	StdevOffsetMs float64
}

// Summarize walks records once, classifying HIT_PRESS/HIT_RELEASE as hits and
// MISS as misses; AIM_HOLD and EMPTY do not affect accuracy. The offset used
// for mean/stdev is ReplayT-MapT on HIT_PRESS, HIT_RELEASE and MISS records;
// AIM_HOLD and EMPTY records are left out.
func Summarize(records []engine.ScoreRecord) Summary {
	var sum Summary
	var offsets []float64

	for _, r := range records {
		switch r.Judgment {
		case engine.JudgmentHitPress, engine.JudgmentHitRelease:
			sum.Hits++
			offsets = append(offsets, float64(r.ReplayT-r.MapT))
		case engine.JudgmentMiss:
			sum.Misses++
			offsets = append(offsets, float64(r.ReplayT-r.MapT))
		}
	}

	sum.Count = len(records)
	if sum.Hits+sum.Misses > 0 {
		sum.Accuracy = float64(sum.Hits) / float64(sum.Hits+sum.Misses)
	}
	sum.MeanOffsetMs, sum.StdevOffsetMs = meanStdev(offsets)
	return sum
}

func meanStdev(xs []float64) (mean, stdev float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var total float64
	for _, x := range xs {
		total += x
	}
	mean = total / float64(len(xs))

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	stdev = math.Sqrt(sq / float64(len(xs)))
	return mean, stdev
}
