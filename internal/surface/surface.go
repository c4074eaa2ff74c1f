// Package surface is a retained drawing surface. Shapes live in field
// coordinates and are addressed by handles; Rasterize projects them onto a
// terminal core.Screen scaled to whatever size the screen has.
package surface

import (
	"math"
	"slices"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// ShapeID identifies a shape for its lifetime. IDs are never reused.
type ShapeID int

// ShapeKind distinguishes how a shape is rasterized.
type ShapeKind int

const (
	KindRect ShapeKind = iota
	KindCircle
	KindText
)

// Glyphs used when rasterizing filled shapes.
const (
	RectGlyph   = '█'
	CircleGlyph = '●'
)

// Shape is one retained visual element.
type Shape struct {
	ID   ShapeID
	Kind ShapeKind
	Box  core.Box // For text, a zero-size box at the anchor point
	Fill core.Color
	Tag  string
	Text string
	Size int // Font size for text; informational only in a terminal
}

// Surface stores shapes in creation order.
type Surface struct {
	width  float64
	height float64
	next   ShapeID
	shapes map[ShapeID]*Shape
	order  []ShapeID
}

// New creates an empty surface for a field of the given pixel size.
func New(width, height float64) *Surface {
	return &Surface{
		width:  width,
		height: height,
		shapes: make(map[ShapeID]*Shape),
	}
}

// FieldWidth returns the field width in pixels.
func (s *Surface) FieldWidth() float64 {
	return s.width
}

// FieldHeight returns the field height in pixels.
func (s *Surface) FieldHeight() float64 {
	return s.height
}

func (s *Surface) add(sh *Shape) ShapeID {
	s.next++
	sh.ID = s.next
	s.shapes[sh.ID] = sh
	s.order = append(s.order, sh.ID)
	return sh.ID
}

// CreateCircle adds a filled circle inscribed in box.
func (s *Surface) CreateCircle(box core.Box, fill core.Color) ShapeID {
	return s.add(&Shape{Kind: KindCircle, Box: box, Fill: fill})
}

// CreateRect adds a filled rectangle. Tag may be empty.
func (s *Surface) CreateRect(box core.Box, fill core.Color, tag string) ShapeID {
	return s.add(&Shape{Kind: KindRect, Box: box, Fill: fill, Tag: tag})
}

// CreateText adds a text label centered on (x, y).
func (s *Surface) CreateText(x, y float64, text string, size int) ShapeID {
	return s.add(&Shape{Kind: KindText, Box: core.Box{Left: x, Top: y, Right: x, Bottom: y}, Text: text, Size: size})
}

// SetFill changes the fill color. Unknown handles are ignored.
func (s *Surface) SetFill(id ShapeID, fill core.Color) {
	if sh, ok := s.shapes[id]; ok {
		sh.Fill = fill
	}
}

// SetText replaces a label's text. Unknown handles are ignored.
func (s *Surface) SetText(id ShapeID, text string) {
	if sh, ok := s.shapes[id]; ok {
		sh.Text = text
	}
}

// MoveBy translates a shape. Unknown handles are ignored.
func (s *Surface) MoveBy(id ShapeID, dx, dy float64) {
	if sh, ok := s.shapes[id]; ok {
		sh.Box = sh.Box.Translate(dx, dy)
	}
}

// Destroy removes a shape. Destroying twice is harmless.
func (s *Surface) Destroy(id ShapeID) {
	if _, ok := s.shapes[id]; !ok {
		return
	}
	delete(s.shapes, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// FindByTag returns the handles of all shapes with the tag, oldest first.
func (s *Surface) FindByTag(tag string) []ShapeID {
	var ids []ShapeID
	for _, id := range s.order {
		if s.shapes[id].Tag == tag {
			ids = append(ids, id)
		}
	}
	return ids
}

// BoundsOf returns a shape's bounding box.
func (s *Surface) BoundsOf(id ShapeID) (core.Box, bool) {
	sh, ok := s.shapes[id]
	if !ok {
		return core.Box{}, false
	}
	return sh.Box, true
}

// Shape returns a copy of the shape with the given handle.
func (s *Surface) Shape(id ShapeID) (Shape, bool) {
	sh, ok := s.shapes[id]
	if !ok {
		return Shape{}, false
	}
	return *sh, true
}

// Len returns the number of live shapes.
func (s *Surface) Len() int {
	return len(s.shapes)
}

// Rasterize draws every shape onto dst in creation order, so later shapes
// paint over earlier ones. The field is stretched to cover the whole screen.
func (s *Surface) Rasterize(dst *core.Screen) {
	if s.width <= 0 || s.height <= 0 || dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	sx := float64(dst.Width()) / s.width
	sy := float64(dst.Height()) / s.height

	for _, id := range s.order {
		sh := s.shapes[id]
		switch sh.Kind {
		case KindText:
			drawLabel(dst, sh, sx, sy)
		case KindCircle:
			fillCells(dst, sh.Box, sx, sy, CircleGlyph, sh.Fill)
		default:
			fillCells(dst, sh.Box, sx, sy, RectGlyph, sh.Fill)
		}
	}
}

// cellSpan returns the cells whose centers fall inside [lo, hi] after
// scaling. A span thinner than one cell still gets the cell under its middle.
func cellSpan(lo, hi, scale float64) (int, int) {
	first := int(math.Ceil(lo*scale - 0.5))
	last := int(math.Floor(hi*scale - 0.5))
	if first > last {
		mid := int(math.Floor((lo + hi) / 2 * scale))
		return mid, mid
	}
	return first, last
}

func fillCells(dst *core.Screen, b core.Box, sx, sy float64, glyph rune, c core.Color) {
	x0, x1 := cellSpan(b.Left, b.Right, sx)
	y0, y1 := cellSpan(b.Top, b.Bottom, sy)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, glyph, c)
		}
	}
}

func drawLabel(dst *core.Screen, sh *Shape, sx, sy float64) {
	runes := []rune(sh.Text)
	if len(runes) == 0 {
		return
	}
	x := int(math.Round(sh.Box.Left*sx)) - len(runes)/2
	x = core.Clamp(x, 0, core.Max(0, dst.Width()-len(runes)))
	y := core.Clamp(int(math.Floor(sh.Box.Top*sy)), 0, dst.Height()-1)
	dst.DrawTextColored(x, y, sh.Text, sh.Fill)
}
