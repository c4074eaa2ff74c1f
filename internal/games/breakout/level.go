// Package breakout implements the brick breaker simulation: the entity
// registry, collision rules, the fixed-tick game loop and the Game adapter
// the platform drives.
package breakout

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/brickbreaker/internal/config"
)

// BrickSlot is one brick of a layout, positioned by its center.
type BrickSlot struct {
	CX, CY float64
	Hits   int
}

// Layout is the set of bricks placed at round setup.
type Layout struct {
	Name  string
	Slots []BrickSlot
}

// WallLayout builds the standard wall: rows of bricks starting at cfg.Left,
// as many columns as fit the field, hit counts cycling through cfg.Tiers.
func WallLayout(cfg config.BricksConfig, fieldWidth float64) Layout {
	cols := int(fieldWidth / cfg.Width)
	l := Layout{Name: "wall"}
	for row := 0; row < cfg.Rows; row++ {
		hits := cfg.Tiers[row%len(cfg.Tiers)]
		cy := cfg.Top + float64(row)*cfg.Height
		for col := 0; col < cols; col++ {
			left := cfg.Left + float64(col)*cfg.Width
			if left+cfg.Width > fieldWidth {
				break
			}
			l.Slots = append(l.Slots, BrickSlot{CX: left + cfg.Width/2, CY: cy, Hits: hits})
		}
	}
	return l
}

// ParseLayout creates a Layout from an ASCII map on the brick grid of cfg.
// Characters:
//
//	'1'-'3' = brick with that many hits
//	'.' or ' ' = empty
func ParseLayout(name string, cfg config.BricksConfig, lines []string) (Layout, error) {
	l := Layout{Name: name}
	for row, line := range lines {
		cy := cfg.Top + float64(row)*cfg.Height
		for col, ch := range strings.TrimRight(line, " ") {
			switch ch {
			case '.', ' ':
				continue
			case '1', '2', '3':
				cx := cfg.Left + float64(col)*cfg.Width + cfg.Width/2
				l.Slots = append(l.Slots, BrickSlot{CX: cx, CY: cy, Hits: int(ch - '0')})
			default:
				return Layout{}, fmt.Errorf("breakout: layout %s: unexpected %q at row %d col %d", name, ch, row, col)
			}
		}
	}
	return l, nil
}

// Count returns the number of bricks in the layout.
func (l Layout) Count() int {
	return len(l.Slots)
}
