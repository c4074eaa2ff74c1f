package breakout

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// ballTargets are the kinds a ball bounces off. Other balls pass through.
var ballTargets = []Kind{KindPaddle, KindBrick, KindPowerUp}

// CollisionEngine answers overlap queries against the registry. The resolv
// grid narrows the candidates; the exact test runs on cached boxes.
type CollisionEngine struct {
	reg *Registry
}

// NewCollisionEngine creates an engine over reg.
func NewCollisionEngine(reg *Registry) *CollisionEngine {
	return &CollisionEngine{reg: reg}
}

// Overlapping returns the handles of live entities whose boxes overlap box,
// touching edges included. With no kinds given every kind is considered.
// Results are ordered by handle.
func (c *CollisionEngine) Overlapping(box core.Box, kinds ...Kind) []Handle {
	r := c.reg

	// The grid files an object under the cells of [x, x+w-1], so a box that
	// only touches a cell boundary can be missed. Query one pixel wider.
	search := box.Inflate(1)
	r.probe.X, r.probe.Y = search.Left, search.Top
	r.probe.W, r.probe.H = search.Width(), search.Height()
	r.probe.Update()

	tags := make([]string, 0, len(kinds))
	for _, k := range kinds {
		tags = append(tags, k.String())
	}
	check := r.probe.Check(0, 0, tags...)
	if check == nil {
		return nil
	}

	var found []Handle
	for _, obj := range check.Objects {
		h, ok := r.objects[obj]
		if !ok || slices.Contains(found, h) {
			continue
		}
		e, err := r.Lookup(h)
		if err != nil {
			continue
		}
		if e.Bounds().Overlaps(box) {
			found = append(found, h)
		}
	}
	slices.SortFunc(found, compareHandles)
	return found
}

// Collisions returns the entities overlapping the entity h, excluding h itself.
func (c *CollisionEngine) Collisions(h Handle, kinds ...Kind) ([]Entity, error) {
	self, err := c.reg.Lookup(h)
	if err != nil {
		return nil, fmt.Errorf("breakout: collision query: %w", err)
	}

	handles := c.Overlapping(self.Bounds(), kinds...)
	entities := make([]Entity, 0, len(handles))
	for _, other := range handles {
		if other == h {
			continue
		}
		e, err := c.reg.Lookup(other)
		if err != nil {
			continue
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// BallCollisions returns what the ball is touching this tick.
func (c *CollisionEngine) BallCollisions(ball *Ball) ([]Entity, error) {
	return c.Collisions(ball.Handle(), ballTargets...)
}

// PaddleCollision reports whether e strictly intersects the paddle. Unlike
// ball queries, merely touching an edge does not count.
func (c *CollisionEngine) PaddleCollision(paddle *Paddle, e Entity) bool {
	if paddle == nil || e == nil || !paddle.Alive() || !e.Alive() {
		return false
	}
	return paddle.Bounds().Intersects(e.Bounds())
}
