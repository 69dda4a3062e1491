package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	doc := "log:\n  level: DEBUG\nsettings:\n  overrides:\n    pos_hit_range: 80\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "DEBUG", cfg.Log.Level)

	settings, err := cfg.Settings.Apply()
	require.NoError(t, err)
	require.Equal(t, 80.0, settings.PosHitRange)
}

func TestSettingsDoc_Apply_InvalidOverrideFails(t *testing.T) {
	doc := SettingsDoc{Overrides: map[string]any{"not_a_real_option": 1}}
	_, err := doc.Apply()
	require.Error(t, err)
}
