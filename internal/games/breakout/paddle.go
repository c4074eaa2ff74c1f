package breakout

import (
	"fmt"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// Paddle is the player's bat. It only moves horizontally and never leaves
// the field. A ball waiting for launch rides along with it.
type Paddle struct {
	body
	fill     core.Color
	ball     Handle // Attached ball; the paddle never owns it
	attached bool
	dragging bool
}

// NewPaddle creates a paddle centered on (cx, cy).
func (r *Registry) NewPaddle(cx, cy, width, height float64) *Paddle {
	p := &Paddle{fill: core.ColorAmber}
	p.kind = KindPaddle
	p.box = core.BoxAround(cx, cy, width, height)
	p.shape = r.surface.CreateRect(p.box, p.fill, KindPaddle.String())
	r.add(p)
	return p
}

// Width returns the current paddle width.
func (p *Paddle) Width() float64 {
	return p.box.Width()
}

// MoveBy shifts the paddle horizontally. A move that would take any part of
// the paddle outside the field is rejected as a whole.
// Returns whether the paddle moved.
func (p *Paddle) MoveBy(dx float64) bool {
	if dx == 0 || !p.box.Translate(dx, 0).Within(p.reg.FieldWidth()) {
		return false
	}
	p.Move(dx, 0)
	if ball := p.AttachedBall(); ball != nil {
		ball.Move(dx, 0)
	}
	return true
}

// MoveTo centers the paddle on x, with the same all-or-nothing rule as MoveBy.
func (p *Paddle) MoveTo(x float64) bool {
	return p.MoveBy(x - p.box.CenterX())
}

// Attach makes ball ride the paddle, centered on it horizontally.
// A nil ball detaches.
func (p *Paddle) Attach(ball *Ball) {
	if ball == nil {
		p.attached = false
		return
	}
	p.ball = ball.Handle()
	p.attached = true
	p.centerBall(ball)
}

// Detach releases the riding ball, if any.
func (p *Paddle) Detach() {
	p.attached = false
}

// AttachedBall returns the riding ball, or nil if none is attached or the
// attached ball has been destroyed.
func (p *Paddle) AttachedBall() *Ball {
	if !p.attached {
		return nil
	}
	e, err := p.reg.Lookup(p.ball)
	if err != nil {
		p.attached = false
		return nil
	}
	ball, _ := e.(*Ball)
	return ball
}

func (p *Paddle) centerBall(ball *Ball) {
	ball.Move(p.box.CenterX()-ball.Bounds().CenterX(), 0)
}

// SetWidth resizes the paddle around its current center, shifting it back
// inside the field if needed. The visual is destroyed and recreated while
// the handle stays the same.
func (p *Paddle) SetWidth(width float64) error {
	if width <= 0 {
		return fmt.Errorf("breakout: paddle width %v: %w", width, ErrInvalidDimension)
	}
	fieldW := p.reg.FieldWidth()
	width = core.ClampF(width, 0, fieldW)

	// Recreate at the vertical position of the current visual
	top, bottom := p.box.Top, p.box.Bottom
	if vis, ok := p.reg.surface.BoundsOf(p.shape); ok {
		top, bottom = vis.Top, vis.Bottom
	}
	left := core.ClampF(p.box.CenterX()-width/2, 0, fieldW-width)
	p.box = core.NewBox(left, top, left+width, bottom)

	p.reg.surface.Destroy(p.shape)
	p.shape = p.reg.surface.CreateRect(p.box, p.fill, KindPaddle.String())
	p.reg.sync(p.handle, p.box)

	if ball := p.AttachedBall(); ball != nil {
		p.centerBall(ball)
	}
	return nil
}

// PointerDown starts a drag.
func (p *Paddle) PointerDown() {
	p.dragging = true
}

// PointerUp ends a drag.
func (p *Paddle) PointerUp() {
	p.dragging = false
}

// Dragging reports whether a drag is in progress.
func (p *Paddle) Dragging() bool {
	return p.dragging
}

// Drag follows the pointer while a drag is in progress.
func (p *Paddle) Drag(x float64) bool {
	if !p.dragging {
		return false
	}
	return p.MoveTo(x)
}
