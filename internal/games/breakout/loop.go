package breakout

import (
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/surface"
)

// Messages shown on the surface.
const (
	PromptText = "Press Space to start!"
	WinText    = "You win! You the Breaker of Bricks."
	LoseText   = "You Lose! Game Over!"
)

// Phase is the round state of the game loop.
type Phase int

const (
	PhaseWaitingToStart Phase = iota
	PhaseRunning
	PhaseRoundTransition
	PhaseWon
	PhaseLost
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseWaitingToStart:
		return "waiting"
	case PhaseRunning:
		return "running"
	case PhaseRoundTransition:
		return "transition"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the game has ended.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Scheduler posts callbacks onto a single-threaded virtual clock.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Observer receives gameplay events, typically for metrics.
type Observer interface {
	TickCompleted()
	BrickDestroyed()
	LifeLost()
	PowerUpSpawned(variant string)
	PowerUpActivated(variant string)
	BallsInPlay(n int)
	GameEnded(outcome string)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) TickCompleted() {}
func (NopObserver) BrickDestroyed() {}
func (NopObserver) LifeLost() {}
func (NopObserver) PowerUpSpawned(string) {}
func (NopObserver) PowerUpActivated(string) {}
func (NopObserver) BallsInPlay(int) {}
func (NopObserver) GameEnded(string) {}

// Options configures a Loop.
type Options struct {
	Config   config.BreakerConfig
	Layout   *Layout // nil builds the standard wall
	Seed     uint64
	Logger   *log.Logger
	Observer Observer
}

// Loop is the fixed-tick orchestrator. All of its methods must be called
// from the goroutine that advances the scheduler.
type Loop struct {
	cfg    config.BreakerConfig
	reg    *Registry
	engine *CollisionEngine
	sched  Scheduler
	rng    *rand.Rand
	log    *log.Logger
	obs    Observer

	paddle *Paddle
	main   *Ball
	extras []*Ball

	phase    Phase
	lives    int
	score    int
	lifeLost bool
	ticks    uint64
	round    int

	baseWidth float64
	widened   bool
	widenGen  int

	livesText  surface.ShapeID
	scoreText  surface.ShapeID
	promptText surface.ShapeID
	prompting  bool
}

// NewLoop validates the configuration, builds the field on surf and enters
// the first round. Power-up spawning starts immediately.
func NewLoop(surf *surface.Surface, sched Scheduler, opts Options) (*Loop, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: new loop: %w", err)
	}
	if surf.FieldWidth() != cfg.Field.Width || surf.FieldHeight() != cfg.Field.Height {
		return nil, fmt.Errorf("breakout: surface is %vx%v, config wants %vx%v: %w",
			surf.FieldWidth(), surf.FieldHeight(), cfg.Field.Width, cfg.Field.Height, ErrInvalidDimension)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	obs := opts.Observer
	if obs == nil {
		obs = NopObserver{}
	}

	reg := NewRegistry(surf)
	l := &Loop{
		cfg:       cfg,
		reg:       reg,
		engine:    NewCollisionEngine(reg),
		sched:     sched,
		rng:       rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		log:       logger,
		obs:       obs,
		lives:     cfg.Gameplay.Lives,
		baseWidth: cfg.Paddle.Width,
	}

	l.paddle = reg.NewPaddle(cfg.Field.Width/2, cfg.Paddle.Y, cfg.Paddle.Width, cfg.Paddle.Height)

	layout := WallLayout(cfg.Bricks, cfg.Field.Width)
	if opts.Layout != nil {
		layout = *opts.Layout
	}
	for _, s := range layout.Slots {
		reg.NewBrick(s.CX, s.CY, cfg.Bricks.Width, cfg.Bricks.Height, s.Hits, l.onBrickBroken)
	}

	l.livesText = surf.CreateText(50, 20, "", 15)
	l.scoreText = surf.CreateText(cfg.Field.Width-60, 20, "", 15)

	l.setupRound()
	l.spawnPowerUp()
	return l, nil
}

// Registry returns the entity registry.
func (l *Loop) Registry() *Registry { return l.reg }

// Engine returns the collision engine.
func (l *Loop) Engine() *CollisionEngine { return l.engine }

// Config returns the configuration the loop was built with.
func (l *Loop) Config() config.BreakerConfig { return l.cfg }

// Phase returns the current round phase.
func (l *Loop) Phase() Phase { return l.phase }

// Lives returns the remaining lives. Negative once the game is lost.
func (l *Loop) Lives() int { return l.lives }

// Score returns points earned so far.
func (l *Loop) Score() int { return l.score }

// Ticks returns how many running ticks have completed.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Round returns the 1-based round number.
func (l *Loop) Round() int { return l.round }

// Paddle returns the paddle.
func (l *Loop) Paddle() *Paddle { return l.paddle }

// MainBall returns the ball whose loss costs a life.
func (l *Loop) MainBall() *Ball { return l.main }

// ExtraBalls returns the balls added by multi-ball power-ups.
func (l *Loop) ExtraBalls() []*Ball { return slices.Clone(l.extras) }

// BricksLeft returns the number of bricks still standing, counted by their
// shapes on the surface.
func (l *Loop) BricksLeft() int { return len(l.reg.Surface().FindByTag(KindBrick.String())) }

// Widened reports whether a paddle widen is in effect.
func (l *Loop) Widened() bool { return l.widened }

func (l *Loop) setPhase(p Phase) {
	if p == l.phase {
		return
	}
	l.log.Debug("phase change", "from", l.phase, "to", p, "round", l.round)
	l.phase = p
}

// Apply handles one input command. Pointer X is in field coordinates.
func (l *Loop) Apply(cmd core.Command) {
	if l.phase.Terminal() {
		return
	}
	switch cmd.Action {
	case core.ActionMoveLeft:
		l.paddle.MoveBy(-l.cfg.Paddle.Step)
	case core.ActionMoveRight:
		l.paddle.MoveBy(l.cfg.Paddle.Step)
	case core.ActionPointerDown:
		l.paddle.PointerDown()
	case core.ActionPointerDrag:
		l.paddle.Drag(cmd.X)
	case core.ActionPointerUp:
		l.paddle.PointerUp()
	case core.ActionStartGame:
		l.Start()
	}
}

// Start launches the attached ball. It only has an effect while waiting.
func (l *Loop) Start() bool {
	if l.phase != PhaseWaitingToStart {
		return false
	}
	l.hidePrompt()
	l.paddle.Detach()
	l.lifeLost = false
	l.setPhase(PhaseRunning)
	l.tick()
	return true
}

// setupRound clears every ball and puts a fresh main ball on the paddle.
func (l *Loop) setupRound() {
	for _, b := range l.extras {
		b.Destroy()
	}
	l.extras = nil
	if l.main != nil {
		l.main.Destroy()
	}

	r := l.cfg.Ball.Radius
	pb := l.paddle.Bounds()
	l.main = l.reg.NewBall(pb.CenterX(), pb.Top-r-2, r, l.cfg.Ball.Speed, Direction{X: -1, Y: 1})
	l.paddle.Attach(l.main)

	l.round++
	l.lifeLost = false
	l.updateHUD()
	l.showPrompt(PromptText)
	l.setPhase(PhaseWaitingToStart)
	l.obs.BallsInPlay(l.ballCount())
}

// tick is one step of the running loop. It reschedules itself until the
// round ends.
func (l *Loop) tick() {
	if l.phase != PhaseRunning {
		return
	}
	l.ticks++

	// Query then apply per ball, in order.
	l.collide(l.main)
	for _, b := range slices.Clone(l.extras) {
		l.collide(b)
	}

	for _, e := range l.reg.Entities(KindPowerUp) {
		if l.engine.PaddleCollision(l.paddle, e) {
			l.activate(e.(*PowerUp))
		}
	}

	if l.BricksLeft() == 0 {
		l.finish(PhaseWon)
		return
	}

	if l.main.Bounds().Bottom >= l.cfg.Field.Height && !l.promote() {
		l.loseLife()
		return
	}

	l.main.Update()
	for _, b := range l.extras {
		b.Update()
	}
	l.pruneExtras()

	l.obs.TickCompleted()
	l.obs.BallsInPlay(l.ballCount())
	l.sched.After(l.cfg.Timing.Tick(), l.tick)
}

func (l *Loop) collide(b *Ball) {
	if b == nil || !b.Alive() {
		return
	}
	hits, err := l.engine.BallCollisions(b)
	if err != nil {
		l.log.Warn("skipping collision query", "err", err)
		return
	}
	b.Collide(hits)
}

// promote replaces an escaped main ball with the first extra ball that can
// still reach the paddle. Returns false when there is none.
func (l *Loop) promote() bool {
	paddleTop := l.paddle.Bounds().Top
	for i, b := range l.extras {
		if b.Alive() && b.Bounds().Bottom < paddleTop {
			l.main.Destroy()
			l.main = b
			l.extras = slices.Delete(l.extras, i, i+1)
			l.log.Debug("extra ball promoted", "remaining", len(l.extras))
			return true
		}
	}
	return false
}

// pruneExtras destroys extra balls that have left the field.
func (l *Loop) pruneExtras() {
	l.extras = slices.DeleteFunc(l.extras, func(b *Ball) bool {
		if !b.Alive() {
			return true
		}
		if b.Bounds().Top > l.cfg.Field.Height {
			b.Destroy()
			return true
		}
		return false
	})
}

func (l *Loop) loseLife() {
	l.stopBalls()
	if !l.lifeLost {
		l.lifeLost = true
		l.lives--
		l.obs.LifeLost()
		l.log.Debug("life lost", "lives", l.lives, "round", l.round)
	}
	l.updateHUD()

	if l.lives < 0 {
		l.finish(PhaseLost)
		return
	}
	l.setPhase(PhaseRoundTransition)
	l.sched.After(l.cfg.Timing.RoundDelay(), func() {
		if l.phase == PhaseRoundTransition {
			l.setupRound()
		}
	})
}

func (l *Loop) finish(p Phase) {
	l.stopBalls()
	l.setPhase(p)
	if p == PhaseWon {
		l.showPrompt(WinText)
	} else {
		l.showPrompt(LoseText)
	}
	l.obs.GameEnded(p.String())
	l.log.Info("game over", "outcome", p, "score", l.score, "lives", l.lives, "ticks", l.ticks)
}

func (l *Loop) stopBalls() {
	if l.main != nil {
		l.main.Stop()
	}
	for _, b := range l.extras {
		b.Stop()
	}
}

func (l *Loop) ballCount() int {
	n := len(l.extras)
	if l.main != nil && l.main.Alive() {
		n++
	}
	return n
}

func (l *Loop) onBrickBroken(*Brick) {
	l.score += l.cfg.Gameplay.BrickPoints
	l.obs.BrickDestroyed()
	l.updateHUD()
}

// spawnPowerUp drops a random power-up and schedules the next one.
func (l *Loop) spawnPowerUp() {
	interval := l.cfg.Timing.PowerUpSpawn()
	if interval <= 0 || l.phase.Terminal() {
		return
	}

	variant := Variant(l.rng.IntN(2))
	effect := l.multiBall
	if variant == VariantPaddleWiden {
		effect = l.widen
	}

	w := l.cfg.Field.Width
	margin := l.cfg.PowerUp.SpawnMargin
	x := w / 2
	if span := int(w - 2*margin); span > 0 {
		x = margin + float64(l.rng.IntN(span+1))
	}

	p := l.reg.NewPowerUp(x, l.cfg.PowerUp.SpawnY, l.cfg.PowerUp.Size, l.cfg.PowerUp.FallSpeed, variant, effect)
	l.obs.PowerUpSpawned(variant.String())
	l.log.Debug("power-up spawned", "variant", variant, "x", x)

	l.sched.After(l.cfg.Timing.Tick(), func() { l.fall(p) })
	l.sched.After(interval, l.spawnPowerUp)
}

// fall is the per-power-up timer chain. It ends when the power-up is caught,
// leaves the field or the game ends.
func (l *Loop) fall(p *PowerUp) {
	if !p.Alive() || l.phase.Terminal() {
		return
	}
	p.Fall()
	if l.engine.PaddleCollision(l.paddle, p) {
		l.activate(p)
		return
	}
	if p.Bounds().Top > l.cfg.Field.Height {
		p.Destroy()
		return
	}
	l.sched.After(l.cfg.Timing.Tick(), func() { l.fall(p) })
}

func (l *Loop) activate(p *PowerUp) {
	variant := p.Variant()
	if p.Activate() {
		l.obs.PowerUpActivated(variant.String())
		l.log.Debug("power-up activated", "variant", variant)
	}
}

// multiBall adds free balls just above the paddle center, heading up. A
// multi-ball caught while no round is running is spent without effect.
func (l *Loop) multiBall() {
	if l.phase != PhaseRunning {
		l.log.Debug("multi-ball wasted", "phase", l.phase)
		return
	}
	r := l.cfg.Ball.Radius
	pb := l.paddle.Bounds()
	for range l.cfg.PowerUp.ExtraBalls {
		dx := 1
		if l.rng.IntN(2) == 0 {
			dx = -1
		}
		b := l.reg.NewBall(pb.CenterX(), pb.Top-r-2, r, l.cfg.Ball.Speed, Direction{X: dx, Y: -1})
		l.extras = append(l.extras, b)
	}
	l.obs.BallsInPlay(l.ballCount())
}

// widen doubles the paddle from its base width. A second widen while one is
// active does not compound; it restarts the reversion timer instead.
func (l *Loop) widen() {
	l.widenGen++
	gen := l.widenGen
	if !l.widened {
		l.widened = true
		if err := l.paddle.SetWidth(l.baseWidth * 2); err != nil {
			l.log.Error("widen paddle", "err", err)
		}
	}
	l.sched.After(l.cfg.Timing.WidenDuration(), func() {
		if gen != l.widenGen || !l.widened {
			return
		}
		l.widened = false
		if err := l.paddle.SetWidth(l.baseWidth); err != nil {
			l.log.Error("restore paddle", "err", err)
		}
		l.log.Debug("widen expired")
	})
}

func (l *Loop) updateHUD() {
	surf := l.reg.Surface()
	surf.SetText(l.livesText, fmt.Sprintf("Lives: %d", max(l.lives, 0)))
	surf.SetText(l.scoreText, fmt.Sprintf("Score: %d", l.score))
}

func (l *Loop) showPrompt(text string) {
	l.hidePrompt()
	l.promptText = l.reg.Surface().CreateText(l.cfg.Field.Width/2, l.cfg.Field.Height/2, text, 40)
	l.prompting = true
}

func (l *Loop) hidePrompt() {
	if l.prompting {
		l.reg.Surface().Destroy(l.promptText)
		l.prompting = false
	}
}

// Message returns the prompt currently on screen, if any.
func (l *Loop) Message() string {
	if !l.prompting {
		return ""
	}
	sh, ok := l.reg.Surface().Shape(l.promptText)
	if !ok {
		return ""
	}
	return sh.Text
}
