// Package config provides YAML-based configuration for the brick breaker:
// field geometry, timing, entity sizes and gameplay rules.
package config

import "time"

// BreakerConfig contains all tunable parameters of a game.
type BreakerConfig struct {
	Field    FieldConfig    `yaml:"field"`
	Timing   TimingConfig   `yaml:"timing"`
	Ball     BallConfig     `yaml:"ball"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Bricks   BricksConfig   `yaml:"bricks"`
	PowerUp  PowerUpConfig  `yaml:"powerup"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// FieldConfig defines the play field size in pixels.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TimingConfig defines scheduler delays in milliseconds.
type TimingConfig struct {
	TickMS          int `yaml:"tick_ms"`
	PowerUpSpawnMS  int `yaml:"powerup_spawn_ms"` // 0 disables spawning
	WidenDurationMS int `yaml:"widen_duration_ms"`
	RoundDelayMS    int `yaml:"round_delay_ms"`
}

// Tick returns the game loop interval.
func (t TimingConfig) Tick() time.Duration {
	return time.Duration(t.TickMS) * time.Millisecond
}

// PowerUpSpawn returns the power-up spawn interval.
func (t TimingConfig) PowerUpSpawn() time.Duration {
	return time.Duration(t.PowerUpSpawnMS) * time.Millisecond
}

// WidenDuration returns how long a paddle widen lasts.
func (t TimingConfig) WidenDuration() time.Duration {
	return time.Duration(t.WidenDurationMS) * time.Millisecond
}

// RoundDelay returns the pause between a lost life and the next round.
func (t TimingConfig) RoundDelay() time.Duration {
	return time.Duration(t.RoundDelayMS) * time.Millisecond
}

// BallConfig defines ball size and speed.
type BallConfig struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"` // Pixels per tick along each axis
}

// PaddleConfig defines paddle geometry and keyboard step.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Y      float64 `yaml:"y"`    // Vertical center
	Step   float64 `yaml:"step"` // Pixels per MoveLeft/MoveRight
}

// BricksConfig defines the brick wall layout.
type BricksConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Rows   int     `yaml:"rows"`
	Top    float64 `yaml:"top"`   // Vertical center of the first row
	Left   float64 `yaml:"left"`  // Left edge of the first column
	Tiers  []int   `yaml:"tiers"` // Hit counts per row, repeating
}

// PowerUpConfig defines falling power-up parameters.
type PowerUpConfig struct {
	Size        float64 `yaml:"size"`
	FallSpeed   float64 `yaml:"fall_speed"`
	SpawnY      float64 `yaml:"spawn_y"`
	SpawnMargin float64 `yaml:"spawn_margin"` // Horizontal keep-out from each wall
	ExtraBalls  int     `yaml:"extra_balls"`  // Balls added by a multi-ball
}

// GameplayConfig defines scoring and lives.
type GameplayConfig struct {
	Lives       int `yaml:"lives"`
	BrickPoints int `yaml:"brick_points"`
}
