package breakout

import (
	"github.com/vovakirdan/brickbreaker/internal/core"
)

// Variant selects what a power-up does when caught.
type Variant int

const (
	VariantMultiBall Variant = iota
	VariantPaddleWiden
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantMultiBall:
		return "multiball"
	case VariantPaddleWiden:
		return "widen"
	default:
		return "unknown"
	}
}

// Color returns the fill used to tell variants apart.
func (v Variant) Color() core.Color {
	if v == VariantPaddleWiden {
		return core.ColorRed
	}
	return core.ColorBlue
}

// PowerUp falls from the top of the field and runs its effect once when the
// paddle catches it.
type PowerUp struct {
	body
	variant   Variant
	fallSpeed float64
	effect    func()
	activated bool
}

// NewPowerUp creates a power-up centered on (cx, cy).
func (r *Registry) NewPowerUp(cx, cy, size, fallSpeed float64, variant Variant, effect func()) *PowerUp {
	p := &PowerUp{variant: variant, fallSpeed: fallSpeed, effect: effect}
	p.kind = KindPowerUp
	p.box = core.BoxAround(cx, cy, size, size)
	p.shape = r.surface.CreateRect(p.box, variant.Color(), KindPowerUp.String())
	r.add(p)
	return p
}

// Variant returns the power-up variant.
func (p *PowerUp) Variant() Variant {
	return p.variant
}

// Fall moves the power-up down one step.
func (p *PowerUp) Fall() {
	p.Move(0, p.fallSpeed)
}

// Activate runs the effect and destroys the power-up. Only the first call
// does anything; later calls return false.
func (p *PowerUp) Activate() bool {
	if p.activated || !p.Alive() {
		return false
	}
	p.activated = true
	if p.effect != nil {
		p.effect()
	}
	p.Destroy()
	return true
}
