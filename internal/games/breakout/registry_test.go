package breakout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/surface"
)

func newTestRegistry() *Registry {
	return NewRegistry(surface.New(830, 600))
}

func TestRegistryLookupAndRemove(t *testing.T) {
	reg := newTestRegistry()
	ball := reg.NewBall(100, 100, 10, 7, Direction{X: 1, Y: 1})

	e, err := reg.Lookup(ball.Handle())
	require.NoError(t, err)
	assert.Same(t, ball, e)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, reg.Surface().Len())

	ball.Destroy()
	assert.False(t, ball.Alive())
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0, reg.Surface().Len())

	_, err = reg.Lookup(ball.Handle())
	assert.ErrorIs(t, err, ErrStaleHandle)

	// Removing twice is harmless
	reg.Remove(ball.Handle())
	ball.Destroy()
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryStaleHandleNeverResolvesToNewEntity(t *testing.T) {
	reg := newTestRegistry()
	first := reg.NewBrick(100, 100, 75, 20, 1, nil)
	stale := first.Handle()
	first.Destroy()

	second := reg.NewBrick(100, 100, 75, 20, 1, nil)
	assert.NotEqual(t, stale, second.Handle())

	_, err := reg.Lookup(stale)
	assert.ErrorIs(t, err, ErrStaleHandle)
	assert.True(t, second.Alive())
}

func TestRegistryCountAndEntities(t *testing.T) {
	reg := newTestRegistry()
	b1 := reg.NewBrick(50, 50, 75, 20, 1, nil)
	b2 := reg.NewBrick(150, 50, 75, 20, 2, nil)
	reg.NewBall(400, 400, 10, 7, Direction{X: 1, Y: -1})
	reg.NewPaddle(415, 550, 80, 10)

	assert.Equal(t, 2, reg.Count(KindBrick))
	assert.Equal(t, 1, reg.Count(KindBall))
	assert.Equal(t, 1, reg.Count(KindPaddle))
	assert.Equal(t, 0, reg.Count(KindPowerUp))

	bricks := reg.Entities(KindBrick)
	require.Len(t, bricks, 2)
	assert.Same(t, b1, bricks[0])
	assert.Same(t, b2, bricks[1])
}

func TestCollisionEdgeTouchCounts(t *testing.T) {
	reg := newTestRegistry()
	engine := NewCollisionEngine(reg)

	brick := reg.NewBrick(100, 100, 20, 20, 1, nil) // [90,110]x[90,110]
	// Ball box [110,130]x[90,110] shares the brick's right edge
	ball := reg.NewBall(120, 100, 10, 7, Direction{X: -1, Y: 1})

	hits, err := engine.BallCollisions(ball)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Same(t, brick, hits[0])

	// One pixel apart is not a contact
	ball.Move(1, 0)
	hits, err = engine.BallCollisions(ball)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCollisionCellBoundary(t *testing.T) {
	reg := newTestRegistry()
	engine := NewCollisionEngine(reg)

	// Edges exactly on a grid line
	reg.NewBrick(25, 25, 50, 50, 1, nil) // [0,50]x[0,50]
	got := engine.Overlapping(core.NewBox(50, 0, 60, 10), KindBrick)
	assert.Len(t, got, 1)
}

func TestBallCollisionsSkipOtherBalls(t *testing.T) {
	reg := newTestRegistry()
	engine := NewCollisionEngine(reg)

	a := reg.NewBall(100, 100, 10, 7, Direction{X: 1, Y: 1})
	reg.NewBall(105, 105, 10, 7, Direction{X: 1, Y: 1})
	p := reg.NewPowerUp(100, 100, 20, 7, VariantMultiBall, nil)

	hits, err := engine.BallCollisions(a)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, p.Handle(), hits[0].Handle())

	// Unfiltered queries still see everything but the caller
	all, err := engine.Collisions(a.Handle())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCollisionsStaleHandle(t *testing.T) {
	reg := newTestRegistry()
	engine := NewCollisionEngine(reg)
	ball := reg.NewBall(100, 100, 10, 7, Direction{X: 1, Y: 1})
	ball.Destroy()

	_, err := engine.BallCollisions(ball)
	assert.ErrorIs(t, err, ErrStaleHandle)
}

func TestPaddleCollisionIsStrict(t *testing.T) {
	reg := newTestRegistry()
	engine := NewCollisionEngine(reg)
	paddle := reg.NewPaddle(415, 550, 80, 10) // [375,455]x[545,555]

	touching := reg.NewPowerUp(415, 535, 20, 7, VariantMultiBall, nil) // bottom 545
	assert.False(t, engine.PaddleCollision(paddle, touching))

	touching.Fall()
	assert.True(t, engine.PaddleCollision(paddle, touching))

	touching.Destroy()
	assert.False(t, engine.PaddleCollision(paddle, touching))
}

func TestBallWallReflection(t *testing.T) {
	reg := newTestRegistry()

	left := reg.NewBall(10, 300, 10, 7, Direction{X: -1, Y: 1})
	left.Update()
	assert.Equal(t, Direction{X: 1, Y: 1}, left.Direction())
	assert.InDelta(t, 7, left.Bounds().Left, 1e-9)

	right := reg.NewBall(820, 300, 10, 7, Direction{X: 1, Y: -1})
	right.Update()
	assert.Equal(t, Direction{X: -1, Y: -1}, right.Direction())

	top := reg.NewBall(400, 10, 10, 7, Direction{X: 1, Y: -1})
	top.Update()
	assert.Equal(t, Direction{X: 1, Y: 1}, top.Direction())

	// The floor does not reflect
	floor := reg.NewBall(400, 590, 10, 7, Direction{X: 1, Y: 1})
	floor.Update()
	assert.Equal(t, Direction{X: 1, Y: 1}, floor.Direction())
	assert.InDelta(t, 607, floor.Bounds().Bottom, 1e-9)
}

func TestBallStopFreezes(t *testing.T) {
	reg := newTestRegistry()
	ball := reg.NewBall(400, 300, 10, 7, Direction{X: 1, Y: 1})
	before := ball.Bounds()

	ball.Stop()
	ball.Update()
	assert.True(t, ball.Stopped())
	assert.Equal(t, before, ball.Bounds())
}

func TestBallCollideRules(t *testing.T) {
	reg := newTestRegistry()
	paddle := reg.NewPaddle(415, 550, 80, 10) // [375,455]

	tests := []struct {
		name string
		cx   float64
		dir  Direction
		want Direction
	}{
		{"midpoint over paddle", 415, Direction{X: -1, Y: 1}, Direction{X: -1, Y: -1}},
		{"past the right edge", 460, Direction{X: -1, Y: 1}, Direction{X: 1, Y: 1}},
		{"past the left edge", 370, Direction{X: 1, Y: 1}, Direction{X: -1, Y: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := reg.NewBall(tc.cx, 537, 10, 7, tc.dir)
			defer ball.Destroy()
			ball.Collide([]Entity{paddle})
			assert.Equal(t, tc.want, ball.Direction())
		})
	}
}

func TestBallCollideHitsEveryBrick(t *testing.T) {
	reg := newTestRegistry()
	a := reg.NewBrick(100, 100, 75, 20, 2, nil)
	b := reg.NewBrick(175, 100, 75, 20, 1, nil)
	ball := reg.NewBall(137, 115, 10, 7, Direction{X: 1, Y: -1})

	ball.Collide([]Entity{a, b})
	assert.Equal(t, Direction{X: 1, Y: 1}, ball.Direction())
	assert.Equal(t, 1, a.Hits())
	assert.False(t, b.Alive())

	// No contacts leave the direction alone
	ball.Collide(nil)
	assert.Equal(t, Direction{X: 1, Y: 1}, ball.Direction())
}

func TestBallBouncesOffPowerUp(t *testing.T) {
	reg := newTestRegistry()
	engine := NewCollisionEngine(reg)
	ball := reg.NewBall(400, 300, 10, 7, Direction{X: 1, Y: -1})
	reg.NewPowerUp(400, 290, 20, 7, VariantPaddleWiden, nil)

	hits, err := engine.BallCollisions(ball)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, KindPowerUp, hits[0].Kind())

	ball.Collide(hits)
	assert.Equal(t, Direction{X: 1, Y: 1}, ball.Direction())
}

func TestBallHitsBrickBesidePowerUp(t *testing.T) {
	reg := newTestRegistry()
	engine := NewCollisionEngine(reg)
	brick := reg.NewBrick(400, 280, 75, 20, 2, nil)
	p := reg.NewPowerUp(420, 300, 20, 7, VariantMultiBall, nil)
	ball := reg.NewBall(405, 297, 10, 7, Direction{X: -1, Y: -1})

	hits, err := engine.BallCollisions(ball)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	ball.Collide(hits)
	assert.Equal(t, Direction{X: -1, Y: 1}, ball.Direction())
	assert.Equal(t, 1, brick.Hits())
	// Power-ups deflect but are never hit
	assert.True(t, p.Alive())
}

func TestBrickHitsAreMonotonic(t *testing.T) {
	reg := newTestRegistry()
	engine := NewCollisionEngine(reg)
	broken := 0
	brick := reg.NewBrick(100, 100, 75, 20, 3, func(*Brick) { broken++ })

	fill := func() core.Color {
		sh, ok := reg.Surface().Shape(brick.shape)
		require.True(t, ok)
		return sh.Fill
	}
	assert.Equal(t, core.ColorIndigo, fill())

	brick.Hit()
	assert.Equal(t, 2, brick.Hits())
	assert.Equal(t, core.ColorPink, fill())

	brick.Hit()
	assert.Equal(t, 1, brick.Hits())
	assert.Equal(t, core.ColorMint, fill())

	brick.Hit()
	assert.Equal(t, 0, brick.Hits())
	assert.False(t, brick.Alive())
	assert.Equal(t, 1, broken)
	assert.Empty(t, engine.Overlapping(brick.Bounds(), KindBrick))

	brick.Hit()
	assert.Equal(t, 0, brick.Hits())
	assert.Equal(t, 1, broken)
}

func TestPaddleMoveClampsToField(t *testing.T) {
	reg := newTestRegistry()
	paddle := reg.NewPaddle(415, 550, 80, 10)
	ball := reg.NewBall(415, 533, 10, 7, Direction{X: -1, Y: 1})
	paddle.Attach(ball)

	for range 100 {
		paddle.MoveBy(-10)
		require.True(t, paddle.Bounds().Within(830))
	}
	// 375 - 37*10; one more step would cross the wall and is rejected whole
	assert.InDelta(t, 5, paddle.Bounds().Left, 1e-9)
	assert.InDelta(t, paddle.Bounds().CenterX(), ball.Bounds().CenterX(), 1e-9)

	for range 100 {
		paddle.MoveBy(10)
		require.True(t, paddle.Bounds().Within(830))
	}
	assert.InDelta(t, 825, paddle.Bounds().Right, 1e-9)
}

func TestPaddleDetachedBallStays(t *testing.T) {
	reg := newTestRegistry()
	paddle := reg.NewPaddle(415, 550, 80, 10)
	ball := reg.NewBall(415, 533, 10, 7, Direction{X: -1, Y: 1})
	paddle.Attach(ball)
	paddle.Detach()

	before := ball.Bounds()
	paddle.MoveBy(10)
	assert.Equal(t, before, ball.Bounds())
	assert.Nil(t, paddle.AttachedBall())
}

func TestPaddleAttachedBallDestroyed(t *testing.T) {
	reg := newTestRegistry()
	paddle := reg.NewPaddle(415, 550, 80, 10)
	ball := reg.NewBall(415, 533, 10, 7, Direction{X: -1, Y: 1})
	paddle.Attach(ball)
	ball.Destroy()

	assert.Nil(t, paddle.AttachedBall())
	assert.True(t, paddle.MoveBy(10))
}

func TestPaddleDrag(t *testing.T) {
	reg := newTestRegistry()
	paddle := reg.NewPaddle(415, 550, 80, 10)

	assert.False(t, paddle.Drag(200), "drag without pointer down")

	paddle.PointerDown()
	assert.True(t, paddle.Dragging())
	assert.True(t, paddle.Drag(200))
	assert.InDelta(t, 200, paddle.Bounds().CenterX(), 1e-9)

	// Too close to the wall: the whole move is rejected
	assert.False(t, paddle.Drag(10))
	assert.InDelta(t, 200, paddle.Bounds().CenterX(), 1e-9)

	paddle.PointerUp()
	assert.False(t, paddle.Drag(300))
}

func TestPaddleSetWidth(t *testing.T) {
	reg := newTestRegistry()
	paddle := reg.NewPaddle(800, 550, 40, 10) // [780,820]
	handle := paddle.Handle()

	require.NoError(t, paddle.SetWidth(160))
	box := paddle.Bounds()
	assert.InDelta(t, 160, box.Width(), 1e-9)
	assert.True(t, box.Within(830))
	assert.Equal(t, handle, paddle.Handle())
	assert.Len(t, reg.Surface().FindByTag(KindPaddle.String()), 1)

	// The grid follows the new size
	engine := NewCollisionEngine(reg)
	got := engine.Overlapping(core.NewBox(box.Left, 545, box.Left+1, 546), KindPaddle)
	assert.Equal(t, []Handle{handle}, got)

	assert.ErrorIs(t, paddle.SetWidth(0), ErrInvalidDimension)
	assert.InDelta(t, 160, paddle.Width(), 1e-9)
}

func TestPowerUpActivatesOnce(t *testing.T) {
	reg := newTestRegistry()
	calls := 0
	p := reg.NewPowerUp(100, 50, 20, 7, VariantPaddleWiden, func() { calls++ })

	p.Fall()
	assert.InDelta(t, 47, p.Bounds().Top, 1e-9)

	assert.True(t, p.Activate())
	assert.False(t, p.Activate())
	assert.Equal(t, 1, calls)
	assert.False(t, p.Alive())
	assert.Equal(t, 0, reg.Count(KindPowerUp))
}
