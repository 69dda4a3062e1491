package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wieku/rplreplay/engine"
)

func TestBuilder_Defaults(t *testing.T) {
	s, err := NewBuilder().Freeze()
	require.NoError(t, err)
	require.Equal(t, 100.0, s.NegHitRange)
	require.Equal(t, 100.0, s.PosHitRange)
	require.Equal(t, 200.0, s.NegHitMissRange)
	require.Equal(t, 200.0, s.PosHitMissRange)
}

func TestBuilder_UnknownOption(t *testing.T) {
	b := NewBuilder()
	err := b.Set("not_a_real_option", 1.0)
	require.Error(t, err)
	require.True(t, errors.Is(err, engine.ErrUnknownOption))

	var cfgErr *engine.ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestBuilder_TypeMismatch(t *testing.T) {
	b := NewBuilder()
	err := b.Set("pos_hit_range", "not a float")
	require.Error(t, err)
	require.True(t, errors.Is(err, engine.ErrTypeMismatch))
}

func TestBuilder_FreezeThenWriteFails(t *testing.T) {
	b := NewBuilder()
	_, err := b.Freeze()
	require.NoError(t, err)

	err = b.Set("pos_hit_range", 50.0)
	require.Error(t, err)
	require.True(t, errors.Is(err, engine.ErrFrozenWrite))

	_, err = b.Freeze()
	require.Error(t, err)
	require.True(t, errors.Is(err, engine.ErrFrozenWrite))
}

func TestBuilder_Validate(t *testing.T) {
	cases := []struct {
		name    string
		set     map[string]any
		wantErr bool
	}{
		{
			name: "valid override",
			set:  map[string]any{"pos_hit_range": 80.0, "pos_hit_miss_range": 150.0},
		},
		{
			name:    "hit range exceeds miss range",
			set:     map[string]any{"pos_hit_range": 300.0, "pos_hit_miss_range": 200.0},
			wantErr: true,
		},
		{
			name:    "zero hit range invalid",
			set:     map[string]any{"pos_hit_range": 0.0},
			wantErr: true,
		},
		{
			name:    "negative radius invalid",
			set:     map[string]any{"hitobject_radius": -1.0},
			wantErr: true,
		},
		{
			name:    "pos_hld_range exceeds pos_rel_miss_range",
			set:     map[string]any{"pos_hld_range": 9999.0},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuilder()
			for k, v := range tc.set {
				require.NoError(t, b.Set(k, v))
			}
			_, err := b.Freeze()
			if tc.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, engine.ErrRangeInvalid))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBuilder_IntAcceptedForFloatField(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Set("pos_hit_range", 90))
	s, err := b.Freeze()
	require.NoError(t, err)
	require.Equal(t, 90.0, s.PosHitRange)
}

func TestEarliestWindow(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Set("neg_hit_miss_range", 300.0))
	require.NoError(t, b.Set("neg_rel_miss_range", 150.0))
	require.NoError(t, b.Set("neg_hld_range", 10.0))
	s, err := b.Freeze()
	require.NoError(t, err)
	require.Equal(t, 300.0, s.EarliestWindow())
}
