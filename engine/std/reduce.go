package std

import "github.com/wieku/rplreplay/engine/settings"

// ReduceReplay rewrites a press_block/release_block replay ahead of scoring
// (spec.md §4.5). Events carry no key identity, so key state is a single
// down/up flag. With press_block, a PRESS arriving while a key is already
// down becomes FREE at the same cursor position. With release_block, a
// RELEASE arriving while no key is down becomes FREE; a RELEASE while a key
// is down is never rewritten. The rewrite is local and preserves time
// ordering; when neither block flag is set the input is returned unchanged.
func ReduceReplay(events []PlayerEvent, cfg *settings.Settings) []PlayerEvent {
	if !cfg.PressBlock && !cfg.ReleaseBlock {
		return events
	}

	out := make([]PlayerEvent, len(events))
	keyDown := false

	for i, e := range events {
		switch e.Action {
		case ActionPress:
			if cfg.PressBlock && keyDown {
				e.Action = ActionFree
			} else {
				keyDown = true
			}
		case ActionRelease:
			if cfg.ReleaseBlock && !keyDown {
				e.Action = ActionFree
			} else {
				keyDown = false
			}
		}
		out[i] = e
	}
	return out
}
