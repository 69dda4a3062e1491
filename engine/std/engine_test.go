package std

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

// S1 std perfect circle.
func TestScore_PerfectCircle(t *testing.T) {
	cfg := defaultSettings(t)
	mapPoints := CircleAimpoints(0, 1000, engine.Position{X: 500, Y: 500})

	replay := []PlayerEvent{
		{TimeMs: 1000, Pos: engine.Position{X: 500, Y: 500}, Action: ActionPress},
		{TimeMs: 1001, Pos: engine.Position{X: 500, Y: 500}, Action: ActionRelease},
	}

	result, err := Score(mapPoints, replay, cfg)
	require.NoError(t, err)

	records := result.Records()
	require.Len(t, records, 2)
	require.Equal(t, engine.JudgmentHitPress, records[0].Judgment)
	require.Equal(t, 0, records[0].ReplayT-records[0].MapT)
	require.Equal(t, engine.JudgmentHitRelease, records[1].Judgment)
}

// S2 std late miss.
func TestScore_LateMiss(t *testing.T) {
	cfg := defaultSettings(t)
	mapPoints := CircleAimpoints(0, 1000, engine.Position{X: 500, Y: 500})

	replay := []PlayerEvent{
		{TimeMs: 1150, Pos: engine.Position{X: 500, Y: 500}, Action: ActionPress},
	}

	result, err := Score(mapPoints, replay, cfg)
	require.NoError(t, err)

	records := result.Records()
	require.Len(t, records, 1)
	require.Equal(t, engine.JudgmentMiss, records[0].Judgment)
	require.Equal(t, 1000, records[0].MapT)
}

// S3 std off-note blank.
func TestScore_OffNoteBlankBackdated(t *testing.T) {
	b := settings.NewBuilder()
	require.NoError(t, b.Set("blank_miss", true))
	cfg, err := b.Freeze()
	require.NoError(t, err)

	mapPoints := CircleAimpoints(0, 1000, engine.Position{X: 500, Y: 500})
	replay := []PlayerEvent{
		{TimeMs: 1000, Pos: engine.Position{X: 0, Y: 0}, Action: ActionPress},
	}

	result, err := Score(mapPoints, replay, cfg)
	require.NoError(t, err)

	records := result.Records()
	require.Len(t, records, 2)

	require.Equal(t, engine.JudgmentEmpty, records[0].Judgment)
	require.NotNil(t, records[0].ReplayPos)
	require.Equal(t, 0.0, records[0].ReplayPos.X)
	require.Equal(t, 0.0, records[0].ReplayPos.Y)

	require.Equal(t, engine.JudgmentMiss, records[1].Judgment)
	require.Equal(t, 1000, records[1].MapT)
	require.NotNil(t, records[1].ReplayPos)
	require.Equal(t, 0.0, records[1].ReplayPos.X)
	require.Equal(t, 0.0, records[1].ReplayPos.Y)
}

// S6 std slider miss cascade.
func TestScore_SliderMissCascade(t *testing.T) {
	b := settings.NewBuilder()
	require.NoError(t, b.Set("recoverable_missaim", false))
	require.NoError(t, b.Set("miss_slider", true))
	cfg, err := b.Freeze()
	require.NoError(t, err)

	path := []struct {
		TimeMs int
		Pos    engine.Position
	}{
		{TimeMs: 100, Pos: engine.Position{X: 0, Y: 0}},
		{TimeMs: 350, Pos: engine.Position{X: 100, Y: 0}},
		{TimeMs: 600, Pos: engine.Position{X: 200, Y: 0}},
		{TimeMs: 750, Pos: engine.Position{X: 300, Y: 0}},
	}
	mapPoints := SliderAimpoints(0, path)

	replay := []PlayerEvent{
		{TimeMs: 100, Pos: engine.Position{X: 0, Y: 0}, Action: ActionPress},
		// cursor drifts far outside follow_radius before the next hold aimpoint
		// and never returns.
		{TimeMs: 340, Pos: engine.Position{X: 9000, Y: 9000}, Action: ActionHold},
	}

	result, err := Score(mapPoints, replay, cfg)
	require.NoError(t, err)

	records := result.Records()
	require.Len(t, records, 2)
	require.Equal(t, engine.JudgmentHitPress, records[0].Judgment)
	require.Equal(t, engine.JudgmentMiss, records[1].Judgment)
	require.Equal(t, 350, records[1].MapT)
}

// Property 5: window exhaustiveness over the std press zone table. Exercises
// the full Score pipeline (map dispatch gate + processPress's own zone
// table + the end-of-replay sweep) rather than calling processPress
// directly, so a regression in the dispatch gate that wrongly withholds an
// in-window press from its processor is caught here, not just in the zone
// table itself.
func TestScore_PressWindowExhaustiveness(t *testing.T) {
	cfg := defaultSettings(t)
	target := engine.Position{X: 500, Y: 500}

	classify := func(offset int) engine.Judgment {
		mapPoints := CircleAimpoints(0, 1000, target)
		replay := []PlayerEvent{
			{TimeMs: 1000 + offset, Pos: target, Action: ActionPress},
		}
		result, err := Score(mapPoints, replay, cfg)
		require.NoError(t, err)
		records := result.Records()
		require.NotEmptyf(t, records, "offset=%d", offset)
		return records[0].Judgment
	}

	for offset := -1000; offset <= 1000; offset++ {
		want := engine.JudgmentMiss
		if float64(offset) > -cfg.NegHitRange && float64(offset) <= cfg.PosHitRange {
			want = engine.JudgmentHitPress
		}
		require.Equalf(t, want, classify(offset), "offset=%d", offset)
	}
}

func TestScore_EmptyMapRejected(t *testing.T) {
	cfg := defaultSettings(t)
	_, err := Score(nil, nil, cfg)
	require.Error(t, err)

	var inputErr *engine.InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestScore_NonMonotonicReplayRejected(t *testing.T) {
	cfg := defaultSettings(t)
	mapPoints := CircleAimpoints(0, 1000, engine.Position{X: 0, Y: 0})
	replay := []PlayerEvent{
		{TimeMs: 1000, Action: ActionPress},
		{TimeMs: 900, Action: ActionRelease},
	}
	_, err := Score(mapPoints, replay, cfg)
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	points := []Aimpoint{
		{ObjectIndex: 1, AimpointIndex: 0},
		{ObjectIndex: 0, AimpointIndex: 1},
		{ObjectIndex: 0, AimpointIndex: 0},
	}
	Normalize(points)
	require.Equal(t, 0, points[0].ObjectIndex)
	require.Equal(t, 0, points[0].AimpointIndex)
	require.Equal(t, 0, points[1].ObjectIndex)
	require.Equal(t, 1, points[1].AimpointIndex)
	require.Equal(t, 1, points[2].ObjectIndex)
}
