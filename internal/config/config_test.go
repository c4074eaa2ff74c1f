package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultBreakerConfig(), cfg)
}

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, DefaultBreakerConfig().Validate())
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gameplay:\n  lives: 7\nball:\n  speed: 4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Gameplay.Lives)
	assert.Equal(t, 4.0, cfg.Ball.Speed)
	// Untouched keys keep their defaults
	assert.Equal(t, 80.0, cfg.Paddle.Width)
	assert.Equal(t, []int{3, 2, 1}, cfg.Bricks.Tiers)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("field: [unclosed"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Gameplay.Lives)

	// Local ./configs file
	require.NoError(t, os.MkdirAll(filepath.Join(work, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(work, "configs", configFile), []byte("gameplay:\n  lives: 4\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Gameplay.Lives)

	// User file wins over the local one
	userDir := filepath.Join(home, ".breaker", "configs")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, configFile), []byte("gameplay:\n  lives: 6\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Gameplay.Lives)
}

func TestPresets(t *testing.T) {
	tests := []struct {
		input       string
		lives       int
		paddleWidth float64
		wantErr     bool
	}{
		{"", 3, 80, false},
		{"normal", 3, 80, false},
		{"easy", 5, 120, false},
		{"hard", 2, 60, false},
		{"insane", 0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			preset, err := ParsePreset(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			cfg := DefaultBreakerConfig()
			ApplyPreset(&cfg, preset)
			assert.Equal(t, tc.lives, cfg.Gameplay.Lives)
			assert.Equal(t, tc.paddleWidth, cfg.Paddle.Width)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BreakerConfig)
		target error
	}{
		{"zero paddle width", func(c *BreakerConfig) { c.Paddle.Width = 0 }, ErrInvalidDimension},
		{"negative paddle width", func(c *BreakerConfig) { c.Paddle.Width = -5 }, ErrInvalidDimension},
		{"zero ball radius", func(c *BreakerConfig) { c.Ball.Radius = 0 }, ErrInvalidDimension},
		{"zero field height", func(c *BreakerConfig) { c.Field.Height = 0 }, ErrInvalidDimension},
		{"paddle wider than field", func(c *BreakerConfig) { c.Paddle.Width = 1000 }, ErrInvalidDimension},
		{"zero tick", func(c *BreakerConfig) { c.Timing.TickMS = 0 }, ErrInvalidSetting},
		{"tier out of range", func(c *BreakerConfig) { c.Bricks.Tiers = []int{4} }, ErrInvalidSetting},
		{"no tiers", func(c *BreakerConfig) { c.Bricks.Tiers = nil }, ErrInvalidSetting},
		{"negative lives", func(c *BreakerConfig) { c.Gameplay.Lives = -1 }, ErrInvalidSetting},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBreakerConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.target)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	want := DefaultBreakerConfig()
	want.Gameplay.Lives = 9

	data, err := Marshal(want)
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDurations(t *testing.T) {
	tm := DefaultBreakerConfig().Timing
	assert.Equal(t, int64(50), tm.Tick().Milliseconds())
	assert.Equal(t, int64(10000), tm.PowerUpSpawn().Milliseconds())
	assert.Equal(t, int64(5000), tm.WidenDuration().Milliseconds())
	assert.Equal(t, int64(1000), tm.RoundDelay().Milliseconds())
}
