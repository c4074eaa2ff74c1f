package breakout

import (
	"errors"

	"github.com/vovakirdan/brickbreaker/internal/config"
)

// ErrStaleHandle is returned when a handle refers to an entity that has
// already been destroyed.
var ErrStaleHandle = errors.New("stale entity handle")

// ErrInvalidDimension is returned when a game is built with a non-positive
// size. It is the same value the config validator wraps.
var ErrInvalidDimension = config.ErrInvalidDimension
