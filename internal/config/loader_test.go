package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lander.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg LanderConfig
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))
	assert.Equal(t, DefaultLanderConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLanderConfig(), cfg)
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".lander", "configs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lander.yaml"), []byte("vehicle:\n  fuel: 42\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 42.0, cfg.Vehicle.Fuel)
}

func TestLoadCustomPathOverridesOnlyGivenKeys(t *testing.T) {
	path := writeConfig(t, `
world:
  landing_x: 650
controls:
  thrust_impulse: 3.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	want := DefaultLanderConfig()
	want.World.LandingX = 650
	want.Controls.ThrustImpulse = 3.5
	assert.Equal(t, want, cfg)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "world: [not, a, map\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
world:
  landing_tolerance: 0
  ground_y: 700
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "landing_tolerance")
	assert.Contains(t, err.Error(), "ground_y")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LanderConfig)
		field  string
	}{
		{"zero tolerance", func(c *LanderConfig) { c.World.LandingTolerance = 0 }, "landing_tolerance"},
		{"negative tolerance", func(c *LanderConfig) { c.World.LandingTolerance = -1 }, "landing_tolerance"},
		{"ground above screen top", func(c *LanderConfig) { c.World.GroundY = -10 }, "ground_y"},
		{"ground below screen", func(c *LanderConfig) { c.World.GroundY = 600 }, "ground_y"},
		{"launch outside play area", func(c *LanderConfig) { c.World.LaunchX = 900 }, "launch_x"},
		{"landing outside play area", func(c *LanderConfig) { c.World.LandingX = -1 }, "landing_x"},
		{"start above screen", func(c *LanderConfig) { c.World.StartAltitude = 501 }, "start_altitude"},
		{"no fuel", func(c *LanderConfig) { c.Vehicle.Fuel = 0 }, "vehicle.fuel"},
		{"no gravity", func(c *LanderConfig) { c.Vehicle.Gravity = 0 }, "gravity"},
		{"zero step", func(c *LanderConfig) { c.Controls.Step = 0 }, "controls.step"},
		{"negative move cost", func(c *LanderConfig) { c.Controls.MoveCost = -1 }, "move_cost"},
		{"gate below cost", func(c *LanderConfig) { c.Controls.ThrustGate = 4 }, "thrust_gate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultLanderConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestStartY(t *testing.T) {
	assert.Equal(t, 470.0, DefaultLanderConfig().StartY())
}

func TestApplyLanderPreset(t *testing.T) {
	base := DefaultLanderConfig()

	easy := base
	ApplyLanderPreset(&easy, DifficultyEasy)
	assert.Greater(t, easy.Vehicle.Fuel, base.Vehicle.Fuel)
	assert.Greater(t, easy.World.LandingTolerance, base.World.LandingTolerance)

	normal := base
	ApplyLanderPreset(&normal, DifficultyNormal)
	assert.Equal(t, base, normal)

	hard := base
	ApplyLanderPreset(&hard, DifficultyHard)
	assert.Less(t, hard.Vehicle.Fuel, base.Vehicle.Fuel)
	assert.Less(t, hard.World.LandingTolerance, base.World.LandingTolerance)

	for _, p := range Presets {
		cfg := base
		ApplyLanderPreset(&cfg, p)
		assert.NoError(t, cfg.Validate(), "preset %s should stay valid", p)
	}
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)

	p, err = ParsePreset("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	_, err = ParsePreset("fixed")
	assert.Error(t, err)
}

func TestMarshalRoundTripsThroughLoad(t *testing.T) {
	cfg := DefaultLanderConfig()
	cfg.World.LandingX = 420
	data, err := Marshal(cfg)
	require.NoError(t, err)

	loaded, err := Load(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
