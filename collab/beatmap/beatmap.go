// Package beatmap names the contracts a real map/replay parser would satisfy
// (spec.md §1 Non-goals: "parsing map/replay file formats is out of scope").
// This package defines source interfaces that produce the slices the engine
// packages' Score functions take, so the core stays decoupled from any
// concrete file format; it does not parse anything itself.
package beatmap

import (
	"github.com/wieku/rplreplay/engine"
	"github.com/wieku/rplreplay/engine/mania"
	"github.com/wieku/rplreplay/engine/std"
)

// StdSource produces the ordered aimpoints and player events a std Score
// call needs. A concrete implementation would decode a map/replay file pair;
// none ships here.
type StdSource interface {
	Aimpoints() ([]std.Aimpoint, error)
	PlayerEvents() ([]std.PlayerEvent, error)
}

// ManiaSource produces the per-column notes and recorded presses a mania
// Score call needs.
type ManiaSource interface {
	Columns() ([][]mania.Note, error)
	Presses() ([][]mania.ReplayPress, error)
}

// DeriveColumnCount reconstructs a mania replay's column count from the
// widest bitmask frame observed, recovering a small piece of surface the
// distillation dropped (original_source/analysis/mania/action_data.py): the
// original derives num_keys from replay frame width before per-column
// press/release pairs exist. Wraps mania.DeriveColumnCount so beatmap
// sources needing it don't import the engine package directly.
func DeriveColumnCount(frames []mania.BitmaskFrame) int {
	return mania.DeriveColumnCount(frames)
}

// Position is a convenience alias so beatmap sources can build engine
// positions without importing the engine package for this one type.
type Position = engine.Position
