package breakout

import (
	"github.com/vovakirdan/brickbreaker/internal/core"
)

// TierColor maps hits remaining to the brick color.
func TierColor(hits int) core.Color {
	switch hits {
	case 3:
		return core.ColorIndigo
	case 2:
		return core.ColorPink
	default:
		return core.ColorMint
	}
}

// Brick takes one to three hits to break.
type Brick struct {
	body
	hits    int
	onBreak func(*Brick)
}

// NewBrick creates a brick centered on (cx, cy). onBreak, if set, runs after
// the brick has been destroyed.
func (r *Registry) NewBrick(cx, cy, width, height float64, hits int, onBreak func(*Brick)) *Brick {
	b := &Brick{hits: hits, onBreak: onBreak}
	b.kind = KindBrick
	b.box = core.BoxAround(cx, cy, width, height)
	b.shape = r.surface.CreateRect(b.box, TierColor(hits), KindBrick.String())
	r.add(b)
	return b
}

// Hits returns the number of hits remaining.
func (b *Brick) Hits() int {
	return b.hits
}

// Hit takes one hit. The last hit destroys the brick; earlier ones recolor it.
// Hits on a destroyed brick are ignored.
func (b *Brick) Hit() {
	if b.hits <= 0 || !b.Alive() {
		return
	}
	b.hits--
	if b.hits == 0 {
		b.Destroy()
		if b.onBreak != nil {
			b.onBreak(b)
		}
		return
	}
	b.reg.surface.SetFill(b.shape, TierColor(b.hits))
}
