// Package std implements the aim+tap scoring engine: notes live at 2D
// playfield positions and are hit at prescribed times (spec.md §4.2).
package std

import "github.com/wieku/rplreplay/engine"

// Role is the kind of instant an aimpoint represents within its hit-object's
// chain.
type Role int

const (
	RolePress Role = iota
	RoleHold
	RoleRelease
)

// ObjectKind is the authored hit-object type an aimpoint chain belongs to.
type ObjectKind int

const (
	KindCircle ObjectKind = iota
	KindSlider
	KindSpinner
)

// Aimpoint is a single authored instant the engine must judge. Aimpoints
// belonging to one hit-object share ObjectIndex and are ordered by
// AimpointIndex; times within one object are non-decreasing (spec.md §3).
type Aimpoint struct {
	TimeMs        int
	Pos           engine.Position
	Role          Role
	ObjectKind    ObjectKind
	ObjectIndex   int
	AimpointIndex int
}

// PlayerAction is the kind of input a replay frame carries.
type PlayerAction int

const (
	ActionFree PlayerAction = iota
	ActionPress
	ActionHold
	ActionRelease
)

// PlayerEvent is one recorded replay frame. Events are ordered by TimeMs;
// ties are permitted (spec.md §3).
type PlayerEvent struct {
	TimeMs int
	Pos    engine.Position
	Action PlayerAction
}

// CircleAimpoints builds the PRESS+RELEASE pair a hit-circle contributes: the
// release lands 1ms after the press at the same coordinate (spec.md §3).
func CircleAimpoints(objectIndex int, timeMs int, pos engine.Position) []Aimpoint {
	return []Aimpoint{
		{TimeMs: timeMs, Pos: pos, Role: RolePress, ObjectKind: KindCircle, ObjectIndex: objectIndex, AimpointIndex: 0},
		{TimeMs: timeMs + 1, Pos: pos, Role: RoleRelease, ObjectKind: KindCircle, ObjectIndex: objectIndex, AimpointIndex: 1},
	}
}

// SliderAimpoints builds a slider's PRESS, zero-or-more HOLD, and RELEASE
// chain from a caller-supplied path. path must already be ordered by time.
func SliderAimpoints(objectIndex int, path []struct {
	TimeMs int
	Pos    engine.Position
}) []Aimpoint {
	out := make([]Aimpoint, 0, len(path))
	for i, p := range path {
		role := RoleHold
		switch i {
		case 0:
			role = RolePress
		case len(path) - 1:
			role = RoleRelease
		}
		out = append(out, Aimpoint{
			TimeMs:        p.TimeMs,
			Pos:           p.Pos,
			Role:          role,
			ObjectKind:    KindSlider,
			ObjectIndex:   objectIndex,
			AimpointIndex: i,
		})
	}
	return out
}
