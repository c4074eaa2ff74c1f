package surface

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

func TestCreateAndBounds(t *testing.T) {
	s := New(830, 600)
	assert.Equal(t, 830.0, s.FieldWidth())
	assert.Equal(t, 600.0, s.FieldHeight())

	box := core.NewBox(10, 20, 85, 40)
	id := s.CreateRect(box, core.ColorIndigo, "brick")

	got, ok := s.BoundsOf(id)
	require.True(t, ok)
	assert.Equal(t, box, got)
	assert.Equal(t, 1, s.Len())
}

func TestHandlesAreNeverReused(t *testing.T) {
	s := New(100, 100)
	a := s.CreateCircle(core.NewBox(0, 0, 10, 10), core.ColorWhite)
	s.Destroy(a)
	b := s.CreateCircle(core.NewBox(0, 0, 10, 10), core.ColorWhite)

	assert.NotEqual(t, a, b)
	_, ok := s.BoundsOf(a)
	assert.False(t, ok)
}

func TestMoveBySetFillSetText(t *testing.T) {
	s := New(100, 100)
	id := s.CreateRect(core.NewBox(0, 0, 10, 10), core.ColorRed, "")
	s.MoveBy(id, 5, -2)
	s.SetFill(id, core.ColorBlue)

	sh, ok := s.Shape(id)
	require.True(t, ok)
	assert.Equal(t, core.Box{Left: 5, Top: -2, Right: 15, Bottom: 8}, sh.Box)
	assert.Equal(t, core.ColorBlue, sh.Fill)

	txt := s.CreateText(50, 20, "Lives: 3", 15)
	s.SetText(txt, "Lives: 2")
	sh, _ = s.Shape(txt)
	assert.Equal(t, "Lives: 2", sh.Text)

	// Unknown handles are ignored
	s.MoveBy(999, 1, 1)
	s.SetFill(999, core.ColorRed)
	s.SetText(999, "x")
	s.Destroy(999)
	assert.Equal(t, 2, s.Len())
}

func TestFindByTag(t *testing.T) {
	s := New(100, 100)
	a := s.CreateRect(core.NewBox(0, 0, 10, 10), core.ColorBlue, "powerup")
	s.CreateRect(core.NewBox(0, 0, 10, 10), core.ColorBlue, "brick")
	c := s.CreateRect(core.NewBox(0, 0, 10, 10), core.ColorRed, "powerup")

	assert.Equal(t, []ShapeID{a, c}, s.FindByTag("powerup"))

	s.Destroy(a)
	assert.Equal(t, []ShapeID{c}, s.FindByTag("powerup"))
	assert.Empty(t, s.FindByTag("missing"))
}

func TestRasterizeOneToOne(t *testing.T) {
	s := New(10, 5)
	s.CreateRect(core.NewBox(2, 1, 5, 2), core.ColorMint, "")
	s.CreateCircle(core.NewBox(7, 3, 8, 4), core.ColorWhite)

	scr := core.NewScreen(10, 5)
	s.Rasterize(scr)

	assert.Equal(t, core.Cell{Rune: RectGlyph, Color: core.ColorMint}, scr.GetCell(2, 1))
	assert.Equal(t, core.Cell{Rune: RectGlyph, Color: core.ColorMint}, scr.GetCell(4, 1))
	assert.Equal(t, ' ', scr.Get(5, 1))
	assert.Equal(t, ' ', scr.Get(2, 2))
	assert.Equal(t, CircleGlyph, scr.Get(7, 3))
}

func TestRasterizeThinShapeStillVisible(t *testing.T) {
	// 800x600 field on a 100x75 screen: a 2px tall bar is a quarter row.
	s := New(800, 600)
	s.CreateRect(core.BoxAround(400, 550, 80, 2), core.ColorAmber, "")

	scr := core.NewScreen(100, 75)
	s.Rasterize(scr)

	found := 0
	for y := 0; y < scr.Height(); y++ {
		for x := 0; x < scr.Width(); x++ {
			if scr.GetCell(x, y).Color == core.ColorAmber {
				assert.Equal(t, 68, y)
				found++
			}
		}
	}
	assert.Equal(t, 10, found)
}

func TestRasterizeLaterShapesPaintOver(t *testing.T) {
	s := New(10, 10)
	s.CreateRect(core.NewBox(0, 0, 10, 10), core.ColorBlue, "")
	s.CreateRect(core.NewBox(0, 0, 10, 10), core.ColorRed, "")

	scr := core.NewScreen(10, 10)
	s.Rasterize(scr)
	assert.Equal(t, core.ColorRed, scr.GetCell(5, 5).Color)
}

func TestRasterizeTextCenteredAndClamped(t *testing.T) {
	s := New(20, 4)
	s.CreateText(10, 1, "Hi", 12)
	s.CreateText(0, 3, "Lives", 12)

	scr := core.NewScreen(20, 4)
	s.Rasterize(scr)

	assert.Equal(t, 'H', scr.Get(9, 1))
	assert.Equal(t, 'i', scr.Get(10, 1))
	// Anchored at the left edge: clamped to start at column 0
	assert.Equal(t, "Lives", strings.Split(scr.String(), "\n")[3][:5])
}
