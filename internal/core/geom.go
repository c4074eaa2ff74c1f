// Package core provides fundamental types and utilities shared by the
// simulation and the platform layer. It has no external dependencies so the
// game logic stays pure and testable.
package core

// Box is an axis-aligned bounding box in field (pixel) coordinates.
// Invariant: Left <= Right and Top <= Bottom.
type Box struct {
	Left, Top, Right, Bottom float64
}

// NewBox creates a box from its edges, swapping edges given in the wrong order.
func NewBox(left, top, right, bottom float64) Box {
	if left > right {
		left, right = right, left
	}
	if top > bottom {
		top, bottom = bottom, top
	}
	return Box{Left: left, Top: top, Right: right, Bottom: bottom}
}

// BoxAround creates a box of the given size centered on (cx, cy).
func BoxAround(cx, cy, w, h float64) Box {
	return NewBox(cx-w/2, cy-h/2, cx+w/2, cy+h/2)
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.Bottom - b.Top
}

// CenterX returns the horizontal midpoint.
func (b Box) CenterX() float64 {
	return (b.Left + b.Right) / 2
}

// CenterY returns the vertical midpoint.
func (b Box) CenterY() float64 {
	return (b.Top + b.Bottom) / 2
}

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{Left: b.Left + dx, Top: b.Top + dy, Right: b.Right + dx, Bottom: b.Bottom + dy}
}

// Inflate returns the box grown by d on every side.
func (b Box) Inflate(d float64) Box {
	return NewBox(b.Left-d, b.Top-d, b.Right+d, b.Bottom+d)
}

// Overlaps reports whether the boxes share at least one point.
// Touching edges count as overlap.
func (b Box) Overlaps(other Box) bool {
	return b.Left <= other.Right && other.Left <= b.Right &&
		b.Top <= other.Bottom && other.Top <= b.Bottom
}

// Intersects reports whether the interiors of the boxes overlap.
// Unlike Overlaps, boxes that merely touch along an edge do not intersect.
func (b Box) Intersects(other Box) bool {
	return b.Left < other.Right && b.Right > other.Left &&
		b.Top < other.Bottom && b.Bottom > other.Top
}

// Within reports whether the box lies horizontally inside [0, width].
func (b Box) Within(width float64) bool {
	return b.Left >= 0 && b.Right <= width
}

// Rect represents an integer rectangle on the terminal screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
