package breakout

import (
	"github.com/vovakirdan/brickbreaker/internal/core"
)

// Autopilot steers the paddle under the most urgent ball. It is used by the
// headless simulation and by soak tests.
type Autopilot struct {
	// Sway shifts the aim off the paddle center every few hundred ticks so
	// the ball does not settle into a fixed orbit.
	Sway bool
}

// Commands returns the input for the next step.
func (a Autopilot) Commands(l *Loop) core.InputFrame {
	frame := core.NewInputFrame()
	switch l.Phase() {
	case PhaseWaitingToStart:
		frame.Set(core.ActionStartGame)
		return frame
	case PhaseRunning:
	default:
		return frame
	}

	target, ok := a.target(l)
	if !ok {
		return frame
	}
	if a.Sway {
		phase := int(l.Ticks()/250) % 3
		target += float64(phase-1) * l.Paddle().Width() / 3
	}

	center := l.Paddle().Bounds().CenterX()
	step := l.Config().Paddle.Step
	switch {
	case target > center+step/2:
		frame.Set(core.ActionMoveRight)
	case target < center-step/2:
		frame.Set(core.ActionMoveLeft)
	}
	return frame
}

// target picks the descending ball closest to the paddle, falling back to
// the main ball.
func (a Autopilot) target(l *Loop) (float64, bool) {
	best := -1.0
	x := 0.0
	consider := func(b *Ball) {
		if b == nil || !b.Alive() || b.Direction().Y < 0 {
			return
		}
		if bottom := b.Bounds().Bottom; bottom > best && bottom < l.Paddle().Bounds().Bottom {
			best = bottom
			x = b.Bounds().CenterX()
		}
	}
	consider(l.MainBall())
	for _, b := range l.ExtraBalls() {
		consider(b)
	}
	if best >= 0 {
		return x, true
	}
	if m := l.MainBall(); m != nil && m.Alive() {
		return m.Bounds().CenterX(), true
	}
	return 0, false
}
