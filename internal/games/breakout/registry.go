package breakout

import (
	"fmt"
	"math"
	"slices"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/surface"
)

// Handle identifies an entity for its lifetime. Handles carry a version, so a
// handle kept past Destroy never resolves to a newer entity.
type Handle = donburi.Entity

// Kind tags an entity for collision dispatch.
type Kind int

const (
	KindBall Kind = iota
	KindPaddle
	KindBrick
	KindPowerUp
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindPaddle:
		return "paddle"
	case KindBrick:
		return "brick"
	case KindPowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// probeTag marks the query object so it never shows up in results.
const probeTag = "probe"

// gridCell is the broad-phase cell size in pixels.
const gridCell = 50

// bodyData is the single component every entity carries.
type bodyData struct {
	Entity Entity
}

var (
	bodyComponent = donburi.NewComponentType[bodyData]()

	kindTags = map[Kind]*donburi.ComponentType[donburi.Tag]{
		KindBall:    donburi.NewTag().SetName("Ball"),
		KindPaddle:  donburi.NewTag().SetName("Paddle"),
		KindBrick:   donburi.NewTag().SetName("Brick"),
		KindPowerUp: donburi.NewTag().SetName("PowerUp"),
	}
)

// Registry owns every entity. It joins three stores through the same
// handle: the donburi world (identity and liveness), the resolv space
// (broad-phase overlap grid) and the surface (visuals).
type Registry struct {
	world   donburi.World
	space   *resolv.Space
	probe   *resolv.Object
	surface *surface.Surface
	objects map[*resolv.Object]Handle
	shapes  map[Handle]*resolv.Object
}

// NewRegistry creates an empty registry drawing onto surf.
func NewRegistry(surf *surface.Surface) *Registry {
	w := gridSize(surf.FieldWidth())
	h := gridSize(surf.FieldHeight())
	space := resolv.NewSpace(w, h, gridCell, gridCell)

	probe := resolv.NewObject(0, 0, 1, 1, probeTag)
	space.Add(probe)

	return &Registry{
		world:   donburi.NewWorld(),
		space:   space,
		probe:   probe,
		surface: surf,
		objects: make(map[*resolv.Object]Handle),
		shapes:  make(map[Handle]*resolv.Object),
	}
}

// gridSize rounds a field dimension up to whole cells plus one spare cell.
func gridSize(v float64) int {
	return (int(math.Ceil(v/gridCell)) + 1) * gridCell
}

// Surface returns the surface the registry draws onto.
func (r *Registry) Surface() *surface.Surface {
	return r.surface
}

// FieldWidth returns the play field width.
func (r *Registry) FieldWidth() float64 {
	return r.surface.FieldWidth()
}

// FieldHeight returns the play field height.
func (r *Registry) FieldHeight() float64 {
	return r.surface.FieldHeight()
}

// add registers an entity whose body already has a kind, box and shape.
func (r *Registry) add(e Entity) Handle {
	b := e.base()
	h := r.world.Create(bodyComponent, kindTags[b.kind])
	bodyComponent.Set(r.world.Entry(h), &bodyData{Entity: e})

	obj := resolv.NewObject(b.box.Left, b.box.Top, b.box.Width(), b.box.Height(), b.kind.String())
	r.space.Add(obj)
	r.objects[obj] = h
	r.shapes[h] = obj

	b.reg = r
	b.handle = h
	return h
}

// Alive reports whether h still refers to a live entity.
func (r *Registry) Alive(h Handle) bool {
	return r.world.Valid(h)
}

// Lookup resolves a handle to its entity.
func (r *Registry) Lookup(h Handle) (Entity, error) {
	if !r.world.Valid(h) {
		return nil, fmt.Errorf("breakout: lookup %d: %w", h.Id(), ErrStaleHandle)
	}
	return bodyComponent.Get(r.world.Entry(h)).Entity, nil
}

// Remove destroys an entity: its shape, its grid object and its handle.
// Removing a stale handle does nothing.
func (r *Registry) Remove(h Handle) {
	e, err := r.Lookup(h)
	if err != nil {
		return
	}
	r.surface.Destroy(e.base().shape)
	if obj, ok := r.shapes[h]; ok {
		r.space.Remove(obj)
		delete(r.objects, obj)
		delete(r.shapes, h)
	}
	r.world.Remove(h)
}

// sync moves the grid object to match the entity's cached box.
func (r *Registry) sync(h Handle, box core.Box) {
	obj, ok := r.shapes[h]
	if !ok {
		return
	}
	obj.X, obj.Y = box.Left, box.Top
	obj.W, obj.H = box.Width(), box.Height()
	obj.Update()
}

// Count returns the number of live entities of a kind.
func (r *Registry) Count(kind Kind) int {
	n := 0
	kindTags[kind].Each(r.world, func(*donburi.Entry) {
		n++
	})
	return n
}

// Entities returns the live entities of a kind ordered by handle.
func (r *Registry) Entities(kind Kind) []Entity {
	var list []Entity
	kindTags[kind].Each(r.world, func(entry *donburi.Entry) {
		list = append(list, bodyComponent.Get(entry).Entity)
	})
	slices.SortFunc(list, func(a, b Entity) int {
		return compareHandles(a.Handle(), b.Handle())
	})
	return list
}

// Len returns the total number of live entities.
func (r *Registry) Len() int {
	return len(r.shapes)
}

func compareHandles(a, b Handle) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
