package breakout

import (
	"math"
)

// Snapshot is a flattened view of the simulation for determinism tests and
// run summaries. Uses primitive types only for stable hashing.
type Snapshot struct {
	ClockMS  int64
	Ticks    uint64
	Phase    int
	Round    int
	Score    int
	Lives    int
	Widened  bool
	Prompt   string
	PaddleX  float64 // Left edge
	PaddleW  float64
	Attached bool

	// Balls, main first (each ball is 5 values: Left, Top, DirX, DirY, Speed)
	BallCount int
	BallData  []float64

	// Falling power-ups (each is 3 values: Variant, Left, Top)
	PowerUpCount int
	PowerUpData  []float64

	// Bricks in handle order (each is 3 values: CenterX, CenterY, Hits)
	BricksRemaining int
	BrickData       []float64
}

// Snapshot returns the current game state.
func (l *Loop) Snapshot() Snapshot {
	balls := make([]*Ball, 0, len(l.extras)+1)
	if l.main != nil && l.main.Alive() {
		balls = append(balls, l.main)
	}
	balls = append(balls, l.extras...)

	ballData := make([]float64, 0, len(balls)*5)
	for _, b := range balls {
		box := b.Bounds()
		ballData = append(ballData, box.Left, box.Top, float64(b.dir.X), float64(b.dir.Y), b.speed)
	}

	powerUps := l.reg.Entities(KindPowerUp)
	powerUpData := make([]float64, 0, len(powerUps)*3)
	for _, e := range powerUps {
		box := e.Bounds()
		powerUpData = append(powerUpData, float64(e.(*PowerUp).variant), box.Left, box.Top)
	}

	bricks := l.reg.Entities(KindBrick)
	brickData := make([]float64, 0, len(bricks)*3)
	for _, e := range bricks {
		box := e.Bounds()
		brickData = append(brickData, box.CenterX(), box.CenterY(), float64(e.(*Brick).hits))
	}

	pb := l.paddle.Bounds()
	return Snapshot{
		Ticks:    l.ticks,
		Phase:    int(l.phase),
		Round:    l.round,
		Score:    l.score,
		Lives:    l.lives,
		Widened:  l.widened,
		Prompt:   l.Message(),
		PaddleX:  pb.Left,
		PaddleW:  pb.Width(),
		Attached: l.paddle.AttachedBall() != nil,

		BallCount:       len(balls),
		BallData:        ballData,
		PowerUpCount:    len(powerUps),
		PowerUpData:     powerUpData,
		BricksRemaining: len(bricks),
		BrickData:       brickData,
	}
}

// Snapshot returns the loop snapshot stamped with the clock time.
func (g *Game) Snapshot() Snapshot {
	snap := g.loop.Snapshot()
	snap.ClockMS = g.clock.Now().Milliseconds()
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.ClockMS) //#nosec G115 -- hash computation
	h = h*31 + snap.Ticks
	h = h*31 + uint64(snap.Phase)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Round)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)        //#nosec G115 -- hash computation
	h = h*31 + uint64(int64(snap.Lives)) //#nosec G115 -- hash computation
	if snap.Widened {
		h = h*31 + 1
	}
	if snap.Attached {
		h = h*31 + 1
	}
	for _, r := range snap.Prompt {
		h = h*31 + uint64(r)
	}
	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + math.Float64bits(snap.PaddleW)
	h = h*31 + uint64(snap.BallCount)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PowerUpCount)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksRemaining) //#nosec G115 -- hash computation

	for _, v := range snap.BallData {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.PowerUpData {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.BrickData {
		h = h*31 + math.Float64bits(v)
	}

	return h
}
