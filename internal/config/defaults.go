package config

import (
	_ "embed"
)

//go:embed defaults/breaker.yaml
var defaultBreakerYAML []byte

// DefaultBreakerConfig returns the built-in configuration.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Field: FieldConfig{
			Width:  830,
			Height: 600,
		},
		Timing: TimingConfig{
			TickMS:          50,
			PowerUpSpawnMS:  10000,
			WidenDurationMS: 5000,
			RoundDelayMS:    1000,
		},
		Ball: BallConfig{
			Radius: 10,
			Speed:  7,
		},
		Paddle: PaddleConfig{
			Width:  80,
			Height: 10,
			Y:      550,
			Step:   10,
		},
		Bricks: BricksConfig{
			Width:  75,
			Height: 20,
			Rows:   6,
			Top:    50,
			Left:   5,
			Tiers:  []int{3, 2, 1},
		},
		PowerUp: PowerUpConfig{
			Size:        20,
			FallSpeed:   7,
			SpawnY:      50,
			SpawnMargin: 50,
			ExtraBalls:  4,
		},
		Gameplay: GameplayConfig{
			Lives:       3,
			BrickPoints: 10,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakerYAML
}
