package breakout

import (
	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/registry"
)

// Alternative brick layouts, one string per row on the brick grid.
var (
	pyramidRows = []string{
		".....3.....",
		"....323....",
		"...32123...",
		"..3211123..",
		".321111123.",
		"32111111123",
	}
	fortressRows = []string{
		"33333333333",
		"3.........3",
		"3.2222222.3",
		"3.2111112.3",
		"3.2222222.3",
		"33333333333",
	}
)

func layoutMode(id, title string, rows []string) registry.Factory {
	return func(cfg config.BreakerConfig) (registry.Game, error) {
		l, err := ParseLayout(id, cfg.Bricks, rows)
		if err != nil {
			return nil, err
		}
		g, err := New(cfg, WithIdentity(id, title), WithLayout(l))
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

// Register the modes with the registry
func init() {
	registry.Register(registry.ModeInfo{
		ID:          "classic",
		Title:       "Brick Breaker",
		Description: "Six rows of 3/2/1-hit bricks across the whole field",
	}, func(cfg config.BreakerConfig) (registry.Game, error) {
		g, err := New(cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
	registry.Register(registry.ModeInfo{
		ID:          "pyramid",
		Title:       "Brick Breaker: Pyramid",
		Description: "A stepped pyramid with a hard shell",
	}, layoutMode("pyramid", "Brick Breaker: Pyramid", pyramidRows))
	registry.Register(registry.ModeInfo{
		ID:          "fortress",
		Title:       "Brick Breaker: Fortress",
		Description: "Nested rings guarding a soft core",
	}, layoutMode("fortress", "Brick Breaker: Fortress", fortressRows))
}
