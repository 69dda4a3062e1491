package mania

import (
	"github.com/wieku/rplreplay/engine"
	"github.com/wieku/rplreplay/engine/settings"
	"github.com/wieku/rplreplay/engine/stream"
)

// Score advances a per-column cursor over mania aimpoints against a
// per-column replay, emitting a score record stream per spec.md §4.3.
// mapCols and replayCols must have the same length (one slice per column).
func Score(mapCols [][]Note, replayCols [][]ReplayPress, cfg *settings.Settings) (*stream.Stream, error) {
	if len(mapCols) != len(replayCols) {
		return nil, &engine.InputError{Op: "score", Err: engine.ErrColumnMismatch}
	}
	total := 0
	for _, c := range mapCols {
		total += len(c)
	}
	if total == 0 {
		return nil, &engine.InputError{Op: "score", Err: engine.ErrEmptyMap}
	}

	s := stream.New(total * 2)
	for col := range mapCols {
		scoreColumn(s, col, mapCols[col], replayCols[col], cfg)
	}
	return s, nil
}

type columnRun struct {
	stream  *stream.Stream
	cfg     *settings.Settings
	col     int
	notes   []Note
	mapEvts []ColumnEvent
	mapIdx  int
}

func scoreColumn(s *stream.Stream, col int, notes []Note, presses []ReplayPress, cfg *settings.Settings) {
	r := &columnRun{
		stream:  s,
		cfg:     cfg,
		col:     col,
		notes:   notes,
		mapEvts: ExpandNotes(notes),
	}
	replayEvts := ExpandReplay(presses)

	for _, re := range replayEvts {
		r.catchUp(re.TimeMs)

		if r.mapIdx >= len(r.mapEvts) {
			continue
		}
		cur := r.mapEvts[r.mapIdx]
		if cur.Role != re.Role {
			continue
		}

		switch cur.Role {
		case RolePress:
			r.mapIdx += r.processPress(cur, re.TimeMs)
		case RoleRelease:
			r.mapIdx += r.processRelease(cur, re.TimeMs)
		default:
			engine.PanicInvariant("column event with unknown role")
		}
	}

	r.drain()
}

func column(c int) *int { return &c }

func noteIdx(i int) *int { return &i }

// catchUp runs FREE processing while the next map event's deadline is
// already past replayTime (spec.md §4.3 step 3).
func (r *columnRun) catchUp(replayTime int) {
	for r.mapIdx < len(r.mapEvts) {
		adv := r.processFree(r.mapEvts[r.mapIdx], replayTime)
		if adv == 0 {
			return
		}
		r.mapIdx += adv
	}
}

// processFree mirrors __process_free in
// original_source/analysis/mania/score_data.py, adapted to the canonical
// single-MISS judgment (spec.md §9 Design Notes).
func (r *columnRun) processFree(cur ColumnEvent, replayTime int) int {
	switch cur.Role {
	case RolePress:
		if float64(replayTime-cur.TimeMs) <= r.cfg.PosHitMissRange {
			return 0
		}
		r.stream.Append(engine.ScoreRecord{
			ReplayT: replayTime, MapT: cur.TimeMs,
			Judgment: engine.JudgmentMiss, Action: engine.ActionPress,
			NoteIndex: noteIdx(cur.NoteIndex), Column: column(r.col),
		})
		return 2

	case RoleRelease:
		if float64(replayTime-cur.TimeMs) <= r.cfg.PosRelMissRange {
			return 0
		}
		if !r.notes[cur.NoteIndex].IsSingle() && !r.cfg.LazySliders {
			r.stream.Append(engine.ScoreRecord{
				ReplayT: replayTime, MapT: cur.TimeMs,
				Judgment: engine.JudgmentMiss, Action: engine.ActionRelease,
				NoteIndex: noteIdx(cur.NoteIndex), Column: column(r.col),
			})
		}
		return 1

	default:
		engine.PanicInvariant("column event with unknown role")
		return 0
	}
}

// processPress implements the Press processor (spec.md §4.3): a HIT_PRESS on
// a single note advances by 2 (skipping its trivial RELEASE), on a long note
// by 1, or by 2 under lazy_sliders. A MISS advances by 2 for either kind of
// note, so a missed long note's RELEASE is not judged.
func (r *columnRun) processPress(cur ColumnEvent, replayTime int) int {
	timeOffset := float64(replayTime - cur.TimeMs)
	single := r.notes[cur.NoteIndex].IsSingle()

	switch {
	case timeOffset <= -r.cfg.NegHitMissRange:
		if r.cfg.BlankMiss {
			r.stream.Append(engine.ScoreRecord{ReplayT: replayTime, Judgment: engine.JudgmentEmpty, Action: engine.ActionPress, Column: column(r.col)})
		}
		return 0

	case timeOffset <= -r.cfg.NegHitRange:
		r.stream.Append(engine.ScoreRecord{
			ReplayT: replayTime, MapT: cur.TimeMs,
			Judgment: engine.JudgmentMiss, Action: engine.ActionPress,
			NoteIndex: noteIdx(cur.NoteIndex), Column: column(r.col),
		})
		return 2

	case timeOffset <= r.cfg.PosHitRange:
		r.stream.Append(engine.ScoreRecord{
			ReplayT: replayTime, MapT: cur.TimeMs,
			Judgment: engine.JudgmentHitPress, Action: engine.ActionPress,
			NoteIndex: noteIdx(cur.NoteIndex), Column: column(r.col),
		})
		if single || r.cfg.LazySliders {
			return 2
		}
		return 1

	case timeOffset <= r.cfg.PosHitMissRange:
		r.stream.Append(engine.ScoreRecord{
			ReplayT: replayTime, MapT: cur.TimeMs,
			Judgment: engine.JudgmentMiss, Action: engine.ActionPress,
			NoteIndex: noteIdx(cur.NoteIndex), Column: column(r.col),
		})
		return 2

	default:
		if r.cfg.BlankMiss {
			r.stream.Append(engine.ScoreRecord{ReplayT: replayTime, Judgment: engine.JudgmentEmpty, Action: engine.ActionPress, Column: column(r.col)})
		}
		return 0
	}
}

// processRelease implements the Release processor (spec.md §4.3).
func (r *columnRun) processRelease(cur ColumnEvent, replayTime int) int {
	if r.cfg.LazySliders {
		return 1
	}
	if r.notes[cur.NoteIndex].IsSingle() {
		return 1
	}

	timeOffset := float64(replayTime - cur.TimeMs)

	switch {
	case timeOffset <= -r.cfg.NegRelMissRange:
		if r.cfg.BlankMiss {
			r.stream.Append(engine.ScoreRecord{ReplayT: replayTime, Judgment: engine.JudgmentEmpty, Action: engine.ActionRelease, Column: column(r.col)})
		}
		return 0

	case timeOffset <= -r.cfg.NegRelRange:
		r.stream.Append(engine.ScoreRecord{
			ReplayT: replayTime, MapT: cur.TimeMs,
			Judgment: engine.JudgmentMiss, Action: engine.ActionRelease,
			NoteIndex: noteIdx(cur.NoteIndex), Column: column(r.col),
		})
		return 1

	case timeOffset <= r.cfg.PosRelRange:
		r.stream.Append(engine.ScoreRecord{
			ReplayT: replayTime, MapT: cur.TimeMs,
			Judgment: engine.JudgmentHitRelease, Action: engine.ActionRelease,
			NoteIndex: noteIdx(cur.NoteIndex), Column: column(r.col),
		})
		return 1

	case timeOffset <= r.cfg.PosRelMissRange:
		r.stream.Append(engine.ScoreRecord{
			ReplayT: replayTime, MapT: cur.TimeMs,
			Judgment: engine.JudgmentMiss, Action: engine.ActionRelease,
			NoteIndex: noteIdx(cur.NoteIndex), Column: column(r.col),
		})
		return 1

	default:
		if r.cfg.BlankMiss {
			r.stream.Append(engine.ScoreRecord{ReplayT: replayTime, Judgment: engine.JudgmentEmpty, Action: engine.ActionRelease, Column: column(r.col)})
		}
		return 0
	}
}

// drain resolves every remaining map event once the replay is exhausted.
// Every PRESS-role event is forced to MISS here (never left as EMPTY) to
// uphold the completeness invariant (spec.md §8 property 2); this is a
// deliberate departure from the original source, which filled all
// leftovers as EMPTY regardless of role (see DESIGN.md).
func (r *columnRun) drain() {
	for r.mapIdx < len(r.mapEvts) {
		cur := r.mapEvts[r.mapIdx]
		switch cur.Role {
		case RolePress:
			r.stream.Append(engine.ScoreRecord{
				ReplayT: cur.TimeMs, MapT: cur.TimeMs,
				Judgment: engine.JudgmentMiss, Action: engine.ActionPress,
				NoteIndex: noteIdx(cur.NoteIndex), Column: column(r.col),
			})
			r.mapIdx += 2
		case RoleRelease:
			if !r.notes[cur.NoteIndex].IsSingle() && !r.cfg.LazySliders {
				r.stream.Append(engine.ScoreRecord{
					ReplayT: cur.TimeMs, MapT: cur.TimeMs,
					Judgment: engine.JudgmentMiss, Action: engine.ActionRelease,
					NoteIndex: noteIdx(cur.NoteIndex), Column: column(r.col),
				})
			}
			r.mapIdx++
		default:
			engine.PanicInvariant("column event with unknown role")
		}
	}
}
