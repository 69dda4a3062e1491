// Package engine holds the types shared by the std and mania scoring engines:
// the judgment/action vocabulary, the advancement codes the std state machine
// returns, the score record, and the error taxonomy both modes raise.
package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// NewRunID stamps a single engine invocation for log correlation (spec.md
// §5: the engine itself holds no state across calls, so callers that want to
// tie a run's log lines together must mint and thread this themselves).
func NewRunID() uuid.UUID {
	return uuid.New()
}

// Judgment classifies a single score record.
type Judgment int

const (
	JudgmentHitPress Judgment = iota
	JudgmentHitRelease
	JudgmentAimHold
	JudgmentMiss
	JudgmentEmpty
)

func (j Judgment) String() string {
	switch j {
	case JudgmentHitPress:
		return "HIT_PRESS"
	case JudgmentHitRelease:
		return "HIT_RELEASE"
	case JudgmentAimHold:
		return "AIM_HOLD"
	case JudgmentMiss:
		return "MISS"
	case JudgmentEmpty:
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}

// ActionKind is the player action (or forced pass) a score record was produced for.
type ActionKind int

const (
	ActionFree ActionKind = iota
	ActionPress
	ActionHold
	ActionRelease
)

func (a ActionKind) String() string {
	switch a {
	case ActionFree:
		return "FREE"
	case ActionPress:
		return "PRESS"
	case ActionHold:
		return "HOLD"
	case ActionRelease:
		return "RELEASE"
	default:
		return "UNKNOWN"
	}
}

// AdvanceCode is returned by every std action processor to tell the caller
// how far to move the map cursor. The mania processors return plain step
// counts instead.
type AdvanceCode int

const (
	// AdvanceNOP leaves the map cursor where it is.
	AdvanceNOP AdvanceCode = iota
	// AdvanceAimpoint moves to the next aimpoint within the current hit-object.
	AdvanceAimpoint
	// AdvanceNote moves to the first aimpoint of the next hit-object.
	AdvanceNote
)

// Position is a playfield coordinate (std mode only).
type Position struct {
	X, Y float64
}

// ScoreRecord is a single emitted classification for a (player event, aimpoint)
// pairing, or a forced pass (MISS/EMPTY). Records are never mutated once
// appended to a stream.
type ScoreRecord struct {
	ReplayT   int
	MapT      int
	ReplayPos *Position
	MapPos    *Position
	Judgment  Judgment
	Action    ActionKind
	NoteIndex *int
	// Column is set by the mania engine to the column the record belongs to.
	// Std records leave it nil; std has no columns.
	Column *int
}

// ConfigError reports a Settings construction or mutation failure.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("config error: %s: %v", e.Op, e.Err) }
func (e *ConfigError) Unwrap() error { return e.Err }

// InputError reports a malformed map or replay passed to a scoring engine.
type InputError struct {
	Op  string
	Err error
}

func (e *InputError) Error() string { return fmt.Sprintf("input error: %s: %v", e.Op, e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

// InvariantError indicates the engine reached a state outside its decision
// table. It is never returned; it is always panicked via PanicInvariant, since
// it always signals an engine bug rather than bad input.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string { return fmt.Sprintf("engine invariant violated: %s", e.Detail) }

// PanicInvariant aborts the current scoring run. Callers of Score are not
// expected to recover from this; it means the decision table is incomplete.
func PanicInvariant(detail string) {
	panic(&InvariantError{Detail: detail})
}
