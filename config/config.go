// Package config loads the demo command's ambient configuration, following
// the teacher's pkg/config.Load pattern (.env then YAML, defaults merged
// in): github.com/joho/godotenv for environment overrides, gopkg.in/yaml.v3
// for the document. engine.Settings is a separate, narrower, frozen value
// (spec.md §4.1, §9) built from the SettingsDoc below, not part of this
// struct.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/wieku/rplreplay/engine/settings"
)

// Config holds the demo command's configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Settings SettingsDoc    `yaml:"settings"`
}

// LogConfig holds logging settings for the demo command.
type LogConfig struct {
	Level string `yaml:"level"`
}

// SettingsDoc is the YAML-decodable mirror of engine/settings.Builder's
// option set (spec.md §4.1). Zero-valued fields are left unset so
// settings.NewBuilder()'s defaults apply; Apply only calls Set for fields
// explicitly present under "overrides".
type SettingsDoc struct {
	Overrides map[string]any `yaml:"overrides"`
}

// Apply builds a frozen *settings.Settings by starting from
// settings.NewBuilder()'s defaults and applying every override key in turn.
func (d SettingsDoc) Apply() (*settings.Settings, error) {
	b := settings.NewBuilder()
	for name, value := range d.Overrides {
		if err := b.Set(name, value); err != nil {
			return nil, fmt.Errorf("config: settings override %q: %w", name, err)
		}
	}
	return b.Freeze()
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "INFO"},
	}
}

// Load reads an optional .env for overrides, then unmarshals the YAML
// document at path over the defaults. A missing path is not an error; the
// defaults are returned unchanged, matching the teacher's generate-on-first-
// run posture without writing a file back (the demo command is read-only).
func Load(path string) (*Config, error) {
	_ = godotenv.Load(".env.local", ".env")

	cfg := Default()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
