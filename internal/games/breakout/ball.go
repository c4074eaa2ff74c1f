package breakout

import (
	"github.com/vovakirdan/brickbreaker/internal/core"
)

// SpeedStopped is the speed of a ball that no longer moves.
const SpeedStopped = 0.0

// Direction is a unit-axis vector: each component is -1 or +1.
type Direction struct {
	X, Y int
}

// Ball moves diagonally at a fixed speed and bounces off walls, the paddle
// and bricks.
type Ball struct {
	body
	radius float64
	speed  float64
	dir    Direction
}

// NewBall creates a ball centered on (cx, cy).
func (r *Registry) NewBall(cx, cy, radius, speed float64, dir Direction) *Ball {
	b := &Ball{radius: radius, speed: speed, dir: dir}
	b.kind = KindBall
	b.box = core.BoxAround(cx, cy, 2*radius, 2*radius)
	b.shape = r.surface.CreateCircle(b.box, core.ColorBrightWhite)
	r.add(b)
	return b
}

// Radius returns the ball radius.
func (b *Ball) Radius() float64 { return b.radius }

// Speed returns pixels travelled per tick along each axis.
func (b *Ball) Speed() float64 { return b.speed }

// Direction returns the current direction.
func (b *Ball) Direction() Direction { return b.dir }

// SetDirection replaces the direction.
func (b *Ball) SetDirection(d Direction) { b.dir = d }

// Stop freezes the ball in place.
func (b *Ball) Stop() { b.speed = SpeedStopped }

// Stopped reports whether the ball has been frozen.
func (b *Ball) Stopped() bool { return b.speed == SpeedStopped }

// Update advances the ball one tick. Side walls and the ceiling reflect the
// direction before the move; the floor does not.
func (b *Ball) Update() {
	if b.Stopped() {
		return
	}
	box := b.Bounds()
	if box.Left <= 0 || box.Right >= b.reg.FieldWidth() {
		b.dir.X = -b.dir.X
	}
	if box.Top <= 0 {
		b.dir.Y = -b.dir.Y
	}
	b.Move(float64(b.dir.X)*b.speed, float64(b.dir.Y)*b.speed)
}

// Collide resolves this tick's overlaps. More than one contact is treated as
// a vertical bounce. A lone paddle contact pushes the ball away from the
// paddle when the ball's midpoint is past either paddle edge. Every brick in
// the set is hit whichever branch was taken.
func (b *Ball) Collide(others []Entity) {
	switch len(others) {
	case 0:
		return
	case 1:
		if others[0].Kind() == KindPaddle {
			x := b.Bounds().CenterX()
			paddle := others[0].Bounds()
			switch {
			case x > paddle.Right:
				b.dir.X = 1
			case x < paddle.Left:
				b.dir.X = -1
			default:
				b.dir.Y = -b.dir.Y
			}
		} else {
			b.dir.Y = -b.dir.Y
		}
	default:
		b.dir.Y = -b.dir.Y
	}

	for _, e := range others {
		if e.Kind() != KindBrick {
			continue
		}
		if h, ok := e.(hittable); ok {
			h.Hit()
		}
	}
}
