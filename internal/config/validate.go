package config

import (
	"errors"
	"fmt"
)

// ErrInvalidDimension reports a size that would make construction impossible,
// such as a non-positive paddle width or ball radius.
var ErrInvalidDimension = errors.New("invalid dimension")

// ErrInvalidSetting reports a non-geometric value out of range.
var ErrInvalidSetting = errors.New("invalid setting")

// Validate checks the configuration once before a game is built.
func (c BreakerConfig) Validate() error {
	dims := []struct {
		name  string
		value float64
	}{
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"ball.radius", c.Ball.Radius},
		{"paddle.width", c.Paddle.Width},
		{"paddle.height", c.Paddle.Height},
		{"bricks.width", c.Bricks.Width},
		{"bricks.height", c.Bricks.Height},
		{"powerup.size", c.PowerUp.Size},
	}
	for _, d := range dims {
		if d.value <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v: %w", d.name, d.value, ErrInvalidDimension)
		}
	}
	if c.Paddle.Width > c.Field.Width {
		return fmt.Errorf("config: paddle.width %v exceeds field.width %v: %w", c.Paddle.Width, c.Field.Width, ErrInvalidDimension)
	}
	if 2*c.Ball.Radius > c.Field.Width {
		return fmt.Errorf("config: ball.radius %v does not fit the field: %w", c.Ball.Radius, ErrInvalidDimension)
	}

	if c.Ball.Speed <= 0 {
		return fmt.Errorf("config: ball.speed must be positive, got %v: %w", c.Ball.Speed, ErrInvalidSetting)
	}
	if c.Timing.TickMS <= 0 {
		return fmt.Errorf("config: timing.tick_ms must be positive, got %d: %w", c.Timing.TickMS, ErrInvalidSetting)
	}
	if c.Timing.PowerUpSpawnMS < 0 || c.Timing.WidenDurationMS < 0 || c.Timing.RoundDelayMS < 0 {
		return fmt.Errorf("config: timing delays must not be negative: %w", ErrInvalidSetting)
	}
	if c.Bricks.Rows < 0 {
		return fmt.Errorf("config: bricks.rows must not be negative, got %d: %w", c.Bricks.Rows, ErrInvalidSetting)
	}
	if len(c.Bricks.Tiers) == 0 {
		return fmt.Errorf("config: bricks.tiers must not be empty: %w", ErrInvalidSetting)
	}
	for _, hits := range c.Bricks.Tiers {
		if hits < 1 || hits > 3 {
			return fmt.Errorf("config: brick tier %d outside 1..3: %w", hits, ErrInvalidSetting)
		}
	}
	if c.PowerUp.ExtraBalls < 0 {
		return fmt.Errorf("config: powerup.extra_balls must not be negative: %w", ErrInvalidSetting)
	}
	if c.Gameplay.Lives < 0 {
		return fmt.Errorf("config: gameplay.lives must not be negative: %w", ErrInvalidSetting)
	}
	return nil
}
