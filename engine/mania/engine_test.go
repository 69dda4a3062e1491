package mania

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wieku/rplreplay/engine"
	"github.com/wieku/rplreplay/engine/settings"
)

func defaultSettings(t *testing.T) *settings.Settings {
	t.Helper()
	s, err := settings.NewBuilder().Freeze()
	require.NoError(t, err)
	return s
}

// S4 mania long note perfect.
func TestScore_LongNotePerfect(t *testing.T) {
	cfg := defaultSettings(t)
	mapCols := [][]Note{{{StartMs: 100, EndMs: 600}}}
	replayCols := [][]ReplayPress{{{PressMs: 100, ReleaseMs: 599}}}

	result, err := Score(mapCols, replayCols, cfg)
	require.NoError(t, err)

	records := result.Records()
	require.Len(t, records, 2)
	require.Equal(t, engine.JudgmentHitPress, records[0].Judgment)
	require.Equal(t, 0, records[0].ReplayT-records[0].MapT)
	require.Equal(t, engine.JudgmentHitRelease, records[1].Judgment)
	require.Equal(t, -1, records[1].ReplayT-records[1].MapT)
}

// S5 mania completeness: every PRESS-role map event resolves to a HIT_PRESS
// or MISS record, across a mixed map with misses, hits, and an unresolved
// tail (replay ends early).
func TestScore_Completeness(t *testing.T) {
	cfg := defaultSettings(t)
	mapCols := [][]Note{{
		{StartMs: 100, EndMs: 101},
		{StartMs: 300, EndMs: 301},
		{StartMs: 500, EndMs: 501},
		{StartMs: 700, EndMs: 701},
	}}
	// press col0 notes 0/1, then the replay ends early leaving notes 2/3
	// unresolved until the end-of-replay drain forces them to MISS.
	replayCols := [][]ReplayPress{{
		{PressMs: 100, ReleaseMs: 101},
		{PressMs: 320, ReleaseMs: 321},
	}}

	result, err := Score(mapCols, replayCols, cfg)
	require.NoError(t, err)

	pressRoleOutcomes := 0
	for _, r := range result.Records() {
		if r.Action != engine.ActionPress {
			continue
		}
		require.Contains(t, []engine.Judgment{engine.JudgmentHitPress, engine.JudgmentMiss}, r.Judgment)
		pressRoleOutcomes++
	}
	require.Equal(t, len(mapCols[0]), pressRoleOutcomes)
}

func TestScore_ColumnMismatchRejected(t *testing.T) {
	cfg := defaultSettings(t)
	_, err := Score([][]Note{{}}, [][]ReplayPress{{}, {}}, cfg)
	require.Error(t, err)

	var inputErr *engine.InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestScore_EmptyMapRejected(t *testing.T) {
	cfg := defaultSettings(t)
	_, err := Score([][]Note{{}}, [][]ReplayPress{{}}, cfg)
	require.Error(t, err)
}

func TestScore_LongNoteLazySlidersSkipsRelease(t *testing.T) {
	b := settings.NewBuilder()
	require.NoError(t, b.Set("lazy_sliders", true))
	cfg, err := b.Freeze()
	require.NoError(t, err)

	mapCols := [][]Note{{{StartMs: 100, EndMs: 600}}}
	replayCols := [][]ReplayPress{{{PressMs: 100, ReleaseMs: 599}}}

	result, err := Score(mapCols, replayCols, cfg)
	require.NoError(t, err)

	records := result.Records()
	// lazy_sliders: long-note PRESS advances by 2 (skipping its RELEASE), and
	// the release processor itself is a skip-only no-emit path.
	require.Len(t, records, 1)
	require.Equal(t, engine.JudgmentHitPress, records[0].Judgment)
}
