package breakout

import (
	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/surface"
)

// Entity is anything the registry owns: balls, the paddle, bricks and
// power-ups. Collision code dispatches on Kind.
type Entity interface {
	Kind() Kind
	Handle() Handle
	Bounds() core.Box
	Move(dx, dy float64)
	Destroy()
	Alive() bool

	base() *body
}

// body carries the state shared by every entity. The box is cached here and
// mirrored to the surface shape and the grid object on every move.
type body struct {
	reg    *Registry
	handle Handle
	kind   Kind
	box    core.Box
	shape  surface.ShapeID
}

func (b *body) base() *body { return b }

// Kind returns the entity kind.
func (b *body) Kind() Kind { return b.kind }

// Handle returns the registry handle.
func (b *body) Handle() Handle { return b.handle }

// Bounds returns the entity's bounding box.
func (b *body) Bounds() core.Box { return b.box }

// Move translates the entity.
func (b *body) Move(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	b.box = b.box.Translate(dx, dy)
	b.reg.surface.MoveBy(b.shape, dx, dy)
	b.reg.sync(b.handle, b.box)
}

// Destroy removes the entity from the registry and the surface.
func (b *body) Destroy() {
	b.reg.Remove(b.handle)
}

// Alive reports whether the entity has not been destroyed.
func (b *body) Alive() bool {
	return b.reg != nil && b.reg.Alive(b.handle)
}

// hittable is implemented by entities that react to a ball contact.
type hittable interface {
	Hit()
}
