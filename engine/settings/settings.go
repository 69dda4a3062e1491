// Package settings implements the §4.1/§9 Settings record: a named, validated
// policy value consumed by both scoring engines. Construction goes through a
// Builder that rejects unknown option names and out-of-range values; Freeze
// returns an immutable Settings and makes the Builder reject further writes.
package settings

import (
	"fmt"

	"github.com/wieku/rplreplay/engine"
)

// Settings is the frozen, immutable-after-construction policy record
// consumed by the std and mania engines. Build one with NewBuilder.
type Settings struct {
	// Timing windows, all milliseconds.
	NegHitMissRange float64
	NegHitRange     float64
	PosHitRange     float64
	PosHitMissRange float64

	NegRelMissRange float64
	NegRelRange     float64
	PosRelRange     float64
	PosRelMissRange float64

	NegHldRange float64
	PosHldRange float64

	// Spatial radii, playfield units (std only).
	HitobjectRadius float64
	FollowRadius    float64
	ReleaseRadius   float64

	// Perception.
	ArMs float64

	// Policy toggles.
	BlankMiss           bool
	LazySliders         bool
	Notelock            bool
	DynamicWindow       bool
	RecoverableRelease  bool
	RecoverableMissaim  bool
	PressMiss           bool
	ReleaseMiss         bool
	MissSlider          bool
	RequireTapPress     bool
	RequireTapRelease   bool
	RequireTapHold      bool
	RequireAimPress     bool
	RequireAimRelease   bool
	RequireAimHold      bool
	PressBlock          bool
	ReleaseBlock        bool
	OverlapMissHandling bool
	OverlapHitHandling  bool
}

// EarliestWindow is the widest negative (early) window the engines must look
// back across when deciding whether an aimpoint's catch-up deadline has
// already elapsed (spec.md §4.2 step 3a).
func (s *Settings) EarliestWindow() float64 {
	w := s.NegHitMissRange
	if s.NegRelMissRange > w {
		w = s.NegRelMissRange
	}
	if s.NegHldRange > w {
		w = s.NegHldRange
	}
	return w
}

// fieldKind distinguishes the value types a Builder option accepts.
type fieldKind int

const (
	kindFloat fieldKind = iota
	kindBool
)

var fieldKinds = map[string]fieldKind{
	"neg_hit_miss_range": kindFloat,
	"neg_hit_range":      kindFloat,
	"pos_hit_range":      kindFloat,
	"pos_hit_miss_range": kindFloat,
	"neg_rel_miss_range": kindFloat,
	"neg_rel_range":      kindFloat,
	"pos_rel_range":      kindFloat,
	"pos_rel_miss_range": kindFloat,
	"neg_hld_range":      kindFloat,
	"pos_hld_range":      kindFloat,

	"hitobject_radius": kindFloat,
	"follow_radius":    kindFloat,
	"release_radius":   kindFloat,

	"ar_ms": kindFloat,

	"blank_miss":            kindBool,
	"lazy_sliders":          kindBool,
	"notelock":              kindBool,
	"dynamic_window":        kindBool,
	"recoverable_release":   kindBool,
	"recoverable_missaim":   kindBool,
	"press_miss":            kindBool,
	"release_miss":          kindBool,
	"miss_slider":           kindBool,
	"require_tap_press":     kindBool,
	"require_tap_release":   kindBool,
	"require_tap_hold":      kindBool,
	"require_aim_press":     kindBool,
	"require_aim_release":   kindBool,
	"require_aim_hold":      kindBool,
	"press_block":           kindBool,
	"release_block":         kindBool,
	"overlap_miss_handling": kindBool,
	"overlap_hit_handling":  kindBool,
}

// Builder accumulates Settings option writes and validates them on Freeze.
// It is not safe for concurrent use; build a Settings on one goroutine and
// share only the frozen result across runs (spec.md §5).
type Builder struct {
	floats map[string]float64
	bools  map[string]bool
	frozen bool
}

// NewBuilder returns a Builder pre-populated with the default policy used by
// the reference scenarios in spec.md §8 (S1–S6): ±100ms hit windows, ±200ms
// miss windows, a 36.5-unit hit radius, and every require_*/recoverable_*
// toggle on.
func NewBuilder() *Builder {
	b := &Builder{
		floats: map[string]float64{
			"neg_hit_miss_range": 200,
			"neg_hit_range":      100,
			"pos_hit_range":      100,
			"pos_hit_miss_range": 200,

			"neg_rel_miss_range": 200,
			"neg_rel_range":      100,
			"pos_rel_range":      100,
			"pos_rel_miss_range": 200,

			"neg_hld_range": 50,
			"pos_hld_range": 200,

			"hitobject_radius": 36.5,
			"follow_radius":    100,
			"release_radius":   100,

			"ar_ms": 450,
		},
		bools: map[string]bool{
			"blank_miss":          false,
			"lazy_sliders":        false,
			"notelock":            true,
			"dynamic_window":      false,
			"recoverable_release": true,
			"recoverable_missaim": true,
			"press_miss":          true,
			"release_miss":        true,
			"miss_slider":         true,
			"require_tap_press":   true,
			"require_tap_release": true,
			"require_tap_hold":    true,
			"require_aim_press":   true,
			"require_aim_release": true,
			"require_aim_hold":    true,
			"press_block":         false,
			"release_block":       false,
			"overlap_miss_handling": false,
			"overlap_hit_handling":  false,
		},
	}
	return b
}

// Set writes a single named option. It fails with a *engine.ConfigError
// wrapping engine.ErrFrozenWrite if the builder is already frozen, or
// engine.ErrUnknownOption if name is not a recognized field, or
// engine.ErrTypeMismatch if value's type does not match the field.
func (b *Builder) Set(name string, value any) error {
	if b.frozen {
		return &engine.ConfigError{Op: name, Err: engine.ErrFrozenWrite}
	}

	kind, ok := fieldKinds[name]
	if !ok {
		return &engine.ConfigError{Op: name, Err: engine.ErrUnknownOption}
	}

	switch kind {
	case kindFloat:
		f, ok := toFloat(value)
		if !ok {
			return &engine.ConfigError{Op: name, Err: engine.ErrTypeMismatch}
		}
		b.floats[name] = f
	case kindBool:
		v, ok := value.(bool)
		if !ok {
			return &engine.ConfigError{Op: name, Err: engine.ErrTypeMismatch}
		}
		b.bools[name] = v
	}
	return nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// Freeze validates every invariant in spec.md §3 and returns an immutable
// Settings. Once Freeze succeeds, the Builder rejects further Set calls.
func (b *Builder) Freeze() (*Settings, error) {
	if b.frozen {
		return nil, &engine.ConfigError{Op: "freeze", Err: engine.ErrFrozenWrite}
	}

	s := &Settings{
		NegHitMissRange: b.floats["neg_hit_miss_range"],
		NegHitRange:     b.floats["neg_hit_range"],
		PosHitRange:     b.floats["pos_hit_range"],
		PosHitMissRange: b.floats["pos_hit_miss_range"],

		NegRelMissRange: b.floats["neg_rel_miss_range"],
		NegRelRange:     b.floats["neg_rel_range"],
		PosRelRange:     b.floats["pos_rel_range"],
		PosRelMissRange: b.floats["pos_rel_miss_range"],

		NegHldRange: b.floats["neg_hld_range"],
		PosHldRange: b.floats["pos_hld_range"],

		HitobjectRadius: b.floats["hitobject_radius"],
		FollowRadius:    b.floats["follow_radius"],
		ReleaseRadius:   b.floats["release_radius"],

		ArMs: b.floats["ar_ms"],

		BlankMiss:           b.bools["blank_miss"],
		LazySliders:         b.bools["lazy_sliders"],
		Notelock:            b.bools["notelock"],
		DynamicWindow:       b.bools["dynamic_window"],
		RecoverableRelease:  b.bools["recoverable_release"],
		RecoverableMissaim:  b.bools["recoverable_missaim"],
		PressMiss:           b.bools["press_miss"],
		ReleaseMiss:         b.bools["release_miss"],
		MissSlider:          b.bools["miss_slider"],
		RequireTapPress:     b.bools["require_tap_press"],
		RequireTapRelease:   b.bools["require_tap_release"],
		RequireTapHold:      b.bools["require_tap_hold"],
		RequireAimPress:     b.bools["require_aim_press"],
		RequireAimRelease:   b.bools["require_aim_release"],
		RequireAimHold:      b.bools["require_aim_hold"],
		PressBlock:          b.bools["press_block"],
		ReleaseBlock:        b.bools["release_block"],
		OverlapMissHandling: b.bools["overlap_miss_handling"],
		OverlapHitHandling:  b.bools["overlap_hit_handling"],
	}

	if err := validate(s); err != nil {
		return nil, err
	}

	b.frozen = true
	return s, nil
}

func validate(s *Settings) error {
	check := func(label string, lo, hi float64) error {
		if !(lo > 0 && lo <= hi) {
			return &engine.ConfigError{
				Op:  label,
				Err: fmt.Errorf("%w: expected 0 < %s_range <= %s_miss_range < inf, got %v/%v", engine.ErrRangeInvalid, label, label, lo, hi),
			}
		}
		return nil
	}

	if err := check("neg_hit", s.NegHitRange, s.NegHitMissRange); err != nil {
		return err
	}
	if err := check("pos_hit", s.PosHitRange, s.PosHitMissRange); err != nil {
		return err
	}
	if err := check("neg_rel", s.NegRelRange, s.NegRelMissRange); err != nil {
		return err
	}
	if err := check("pos_rel", s.PosRelRange, s.PosRelMissRange); err != nil {
		return err
	}

	if s.PosHldRange > s.PosRelMissRange {
		return &engine.ConfigError{
			Op:  "pos_hld_range",
			Err: fmt.Errorf("%w: pos_hld_range (%v) must be <= pos_rel_miss_range (%v)", engine.ErrRangeInvalid, s.PosHldRange, s.PosRelMissRange),
		}
	}

	if s.NegHldRange < 0 {
		return &engine.ConfigError{Op: "neg_hld_range", Err: fmt.Errorf("%w: must be non-negative", engine.ErrRangeInvalid)}
	}
	if s.ArMs < 0 {
		return &engine.ConfigError{Op: "ar_ms", Err: fmt.Errorf("%w: must be non-negative", engine.ErrRangeInvalid)}
	}
	if s.HitobjectRadius <= 0 || s.FollowRadius <= 0 || s.ReleaseRadius <= 0 {
		return &engine.ConfigError{Op: "radii", Err: fmt.Errorf("%w: radii must be positive", engine.ErrRangeInvalid)}
	}

	return nil
}
