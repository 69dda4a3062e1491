package std

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/wieku/rplreplay/engine"
	"github.com/wieku/rplreplay/engine/settings"
	"github.com/wieku/rplreplay/engine/stream"
)

// Score advances a cursor over mapPoints per replay event in order, emitting
// a score record stream per spec.md §4.2. mapPoints must be sorted by
// (ObjectIndex, AimpointIndex); replay must be non-decreasing in TimeMs.
func Score(mapPoints []Aimpoint, replay []PlayerEvent, cfg *settings.Settings) (*stream.Stream, error) {
	if len(mapPoints) == 0 {
		return nil, &engine.InputError{Op: "score", Err: engine.ErrEmptyMap}
	}
	if err := checkMonotonic(replay); err != nil {
		return nil, err
	}

	replay = ReduceReplay(replay, cfg)

	s := stream.New(len(mapPoints))
	r := &run{cfg: cfg, points: mapPoints, stream: s}

	for _, e := range replay {
		r.catchUp(e.TimeMs)

		if r.mapIdx >= len(mapPoints) {
			continue
		}
		cur := mapPoints[r.mapIdx]
		if float64(cur.TimeMs-e.TimeMs) > cfg.ArMs {
			continue
		}

		var adv engine.AdvanceCode
		switch e.Action {
		case ActionFree:
			adv = r.processFree(cur, e.TimeMs)
		case ActionPress:
			adv = r.processPress(cur, e)
		case ActionHold:
			adv = r.processHold(cur, e)
		case ActionRelease:
			adv = r.processRelease(cur, e)
		default:
			engine.PanicInvariant("unknown player action kind")
		}

		if adv != engine.AdvanceNOP {
			r.lastBlankPos = nil
		}
		r.mapIdx = r.advance(r.mapIdx, adv)
	}

	// End-of-replay sweep: drive every remaining aimpoint to resolution.
	for r.mapIdx < len(mapPoints) {
		cur := mapPoints[r.mapIdx]
		adv := r.processFree(cur, math.MaxInt32)
		if adv == engine.AdvanceNOP {
			engine.PanicInvariant("end-of-replay sweep made no progress")
		}
		r.lastBlankPos = nil
		r.mapIdx = r.advance(r.mapIdx, adv)
	}

	return s, nil
}

func checkMonotonic(replay []PlayerEvent) error {
	for i := 1; i < len(replay); i++ {
		if replay[i].TimeMs < replay[i-1].TimeMs {
			return &engine.InputError{Op: "score", Err: engine.ErrNonMonotonic}
		}
	}
	return nil
}

// run holds the mutable state a single Score invocation owns: the map
// cursor and the last off-note tap position used to back-date a future MISS.
type run struct {
	cfg          *settings.Settings
	points       []Aimpoint
	stream       *stream.Stream
	mapIdx       int
	lastBlankPos *engine.Position
}

// catchUp applies FREE processing while the map cursor is at least
// EarliestWindow behind replayTime (spec.md §4.2 step 3a).
func (r *run) catchUp(replayTime int) {
	earliest := r.cfg.EarliestWindow()
	for r.mapIdx < len(r.points) {
		cur := r.points[r.mapIdx]
		if float64(replayTime-cur.TimeMs) < earliest {
			return
		}
		adv := r.processFree(cur, replayTime)
		if adv == engine.AdvanceNOP {
			return
		}
		r.lastBlankPos = nil
		r.mapIdx = r.advance(r.mapIdx, adv)
	}
}

func dist(a, b engine.Position) float64 {
	return planar.Distance(orb.Point{a.X, a.Y}, orb.Point{b.X, b.Y})
}

// advance moves the map cursor per an advancement code. AdvanceNote skips
// past every remaining aimpoint of the current hit-object (the slider miss
// cascade, spec.md §4.2).
func (r *run) advance(idx int, code engine.AdvanceCode) int {
	switch code {
	case engine.AdvanceNOP:
		return idx
	case engine.AdvanceAimpoint:
		return idx + 1
	case engine.AdvanceNote:
		obj := r.points[idx].ObjectIndex
		j := idx + 1
		for j < len(r.points) && r.points[j].ObjectIndex == obj {
			j++
		}
		return j
	default:
		engine.PanicInvariant("unknown advance code")
		return idx
	}
}

func (r *run) emit(replayT, mapT int, replayPos, mapPos *engine.Position, j engine.Judgment, action engine.ActionKind, noteIndex *int) {
	r.stream.Append(engine.ScoreRecord{
		ReplayT:   replayT,
		MapT:      mapT,
		ReplayPos: replayPos,
		MapPos:    mapPos,
		Judgment:  j,
		Action:    action,
		NoteIndex: noteIndex,
	})
}

func noteIdx(obj int) *int {
	v := obj
	return &v
}

func pos(p engine.Position) *engine.Position {
	return &p
}

// missAdvanceForHold decides AIMP vs NOTE for a MISS on a HOLD aimpoint,
// per the miss_slider toggle (spec.md §4.1, §4.2 slider chain rule).
func (r *run) missAdvanceForHold() engine.AdvanceCode {
	if r.cfg.MissSlider {
		return engine.AdvanceNote
	}
	return engine.AdvanceAimpoint
}

// processFree implements the Free processor (spec.md §4.2): the aimpoint has
// passed its latest allowable time without the required action.
func (r *run) processFree(cur Aimpoint, replayTime int) engine.AdvanceCode {
	switch cur.Role {
	case RolePress:
		if float64(replayTime-cur.TimeMs) <= r.cfg.PosHitMissRange {
			return engine.AdvanceNOP
		}
		r.emit(replayTime, cur.TimeMs, r.lastBlankPos, pos(cur.Pos), engine.JudgmentMiss, engine.ActionPress, noteIdx(cur.ObjectIndex))
		return engine.AdvanceNote

	case RoleRelease:
		if float64(replayTime-cur.TimeMs) <= r.cfg.PosRelMissRange {
			return engine.AdvanceNOP
		}
		r.emit(replayTime, cur.TimeMs, nil, pos(cur.Pos), engine.JudgmentMiss, engine.ActionRelease, noteIdx(cur.ObjectIndex))
		return engine.AdvanceNote

	case RoleHold:
		deadline := 0.0
		if r.cfg.RecoverableRelease {
			deadline = r.cfg.PosHldRange
		}
		if float64(replayTime-cur.TimeMs) <= deadline {
			return engine.AdvanceNOP
		}
		r.emit(replayTime, cur.TimeMs, nil, pos(cur.Pos), engine.JudgmentMiss, engine.ActionHold, noteIdx(cur.ObjectIndex))
		return r.missAdvanceForHold()

	default:
		engine.PanicInvariant("aimpoint with unknown role")
		return engine.AdvanceNOP
	}
}

// processPress implements the Press processor (spec.md §4.2).
func (r *run) processPress(cur Aimpoint, e PlayerEvent) engine.AdvanceCode {
	if cur.Role != RolePress {
		return engine.AdvanceNOP
	}

	timeOffset := float64(e.TimeMs - cur.TimeMs)
	posOffset := dist(e.Pos, cur.Pos)

	if r.cfg.RequireAimPress && posOffset > r.cfg.HitobjectRadius {
		if r.cfg.BlankMiss {
			r.emit(e.TimeMs, 0, pos(e.Pos), nil, engine.JudgmentEmpty, engine.ActionPress, nil)
		}
		r.lastBlankPos = pos(e.Pos)
		return engine.AdvanceNOP
	}

	if !r.cfg.RequireTapPress {
		if timeOffset >= 0 {
			r.emit(e.TimeMs, cur.TimeMs, pos(e.Pos), pos(cur.Pos), engine.JudgmentHitPress, engine.ActionPress, noteIdx(cur.ObjectIndex))
			return engine.AdvanceAimpoint
		}
		if r.cfg.BlankMiss {
			r.emit(e.TimeMs, 0, pos(e.Pos), nil, engine.JudgmentEmpty, engine.ActionPress, nil)
		}
		return engine.AdvanceNOP
	}

	switch {
	case timeOffset <= -r.cfg.NegHitMissRange:
		if r.cfg.BlankMiss {
			r.emit(e.TimeMs, 0, pos(e.Pos), nil, engine.JudgmentEmpty, engine.ActionPress, nil)
		}
		return engine.AdvanceNOP

	case timeOffset <= -r.cfg.NegHitRange:
		r.emit(e.TimeMs, cur.TimeMs, pos(e.Pos), pos(cur.Pos), engine.JudgmentMiss, engine.ActionPress, noteIdx(cur.ObjectIndex))
		if r.cfg.PressMiss {
			return engine.AdvanceNote
		}
		return engine.AdvanceNOP

	case timeOffset <= r.cfg.PosHitRange:
		r.emit(e.TimeMs, cur.TimeMs, pos(e.Pos), pos(cur.Pos), engine.JudgmentHitPress, engine.ActionPress, noteIdx(cur.ObjectIndex))
		return engine.AdvanceAimpoint

	case timeOffset <= r.cfg.PosHitMissRange:
		r.emit(e.TimeMs, cur.TimeMs, pos(e.Pos), pos(cur.Pos), engine.JudgmentMiss, engine.ActionPress, noteIdx(cur.ObjectIndex))
		if r.cfg.PressMiss {
			return engine.AdvanceNote
		}
		return engine.AdvanceNOP

	default:
		return engine.AdvanceNOP
	}
}

// processHold implements the Hold processor (spec.md §4.2).
func (r *run) processHold(cur Aimpoint, e PlayerEvent) engine.AdvanceCode {
	if cur.Role != RoleHold {
		return engine.AdvanceNOP
	}

	timeOffset := float64(e.TimeMs - cur.TimeMs)
	posOffset := dist(e.Pos, cur.Pos)

	if r.cfg.RequireAimHold && posOffset > r.cfg.FollowRadius {
		if r.cfg.RecoverableMissaim {
			if timeOffset <= r.cfg.PosHldRange {
				return engine.AdvanceNOP
			}
		}
		r.emit(e.TimeMs, cur.TimeMs, pos(e.Pos), pos(cur.Pos), engine.JudgmentMiss, engine.ActionHold, noteIdx(cur.ObjectIndex))
		return r.missAdvanceForHold()
	}

	if timeOffset > -r.cfg.NegHldRange && timeOffset <= r.cfg.PosHldRange {
		r.emit(e.TimeMs, cur.TimeMs, pos(e.Pos), pos(cur.Pos), engine.JudgmentAimHold, engine.ActionHold, noteIdx(cur.ObjectIndex))
		return engine.AdvanceAimpoint
	}

	return engine.AdvanceNOP
}

// processRelease implements the Release processor (spec.md §4.2).
func (r *run) processRelease(cur Aimpoint, e PlayerEvent) engine.AdvanceCode {
	if cur.Role == RolePress {
		return engine.AdvanceNOP
	}

	if cur.Role == RoleHold {
		if r.cfg.RecoverableRelease {
			return engine.AdvanceNOP
		}
		r.emit(e.TimeMs, cur.TimeMs, pos(e.Pos), pos(cur.Pos), engine.JudgmentMiss, engine.ActionHold, noteIdx(cur.ObjectIndex))
		return r.missAdvanceForHold()
	}

	// cur.Role == RoleRelease
	timeOffset := float64(e.TimeMs - cur.TimeMs)
	posOffset := dist(e.Pos, cur.Pos)

	if r.cfg.RequireAimRelease && posOffset > r.cfg.ReleaseRadius {
		return engine.AdvanceNOP
	}

	if !r.cfg.RequireTapRelease {
		if timeOffset >= 0 {
			r.emit(e.TimeMs, cur.TimeMs, pos(e.Pos), pos(cur.Pos), engine.JudgmentHitRelease, engine.ActionRelease, noteIdx(cur.ObjectIndex))
			return engine.AdvanceNote
		}
		return engine.AdvanceNOP
	}

	switch {
	case timeOffset <= -r.cfg.NegRelMissRange:
		return engine.AdvanceNOP

	case timeOffset <= -r.cfg.NegRelRange:
		if r.cfg.ReleaseMiss {
			r.emit(e.TimeMs, cur.TimeMs, pos(e.Pos), pos(cur.Pos), engine.JudgmentMiss, engine.ActionRelease, noteIdx(cur.ObjectIndex))
			return engine.AdvanceNote
		}
		return engine.AdvanceNOP

	case timeOffset <= r.cfg.PosRelRange:
		r.emit(e.TimeMs, cur.TimeMs, pos(e.Pos), pos(cur.Pos), engine.JudgmentHitRelease, engine.ActionRelease, noteIdx(cur.ObjectIndex))
		return engine.AdvanceNote

	case timeOffset <= r.cfg.PosRelMissRange:
		if r.cfg.ReleaseMiss {
			r.emit(e.TimeMs, cur.TimeMs, pos(e.Pos), pos(cur.Pos), engine.JudgmentMiss, engine.ActionRelease, noteIdx(cur.ObjectIndex))
			return engine.AdvanceNote
		}
		return engine.AdvanceNOP

	default:
		return engine.AdvanceNOP
	}
}

// Normalize orders aimpoints by (ObjectIndex, AimpointIndex) so callers
// assembling a map from unordered hit-object groups can normalize before
// calling Score. Not used by Score itself, which trusts its input is already
// ordered (spec.md §6).
func Normalize(points []Aimpoint) {
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].ObjectIndex != points[j].ObjectIndex {
			return points[i].ObjectIndex < points[j].ObjectIndex
		}
		return points[i].AimpointIndex < points[j].AimpointIndex
	})
}
