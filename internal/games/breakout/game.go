package breakout

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/scheduler"
	"github.com/vovakirdan/brickbreaker/internal/surface"
)

// Minimum terminal size for a readable field.
const (
	MinScreenW = 40
	MinScreenH = 15
)

// Game adapts the Loop to the platform: it owns the virtual clock, advances
// it one tick interval per Step and rasterizes the surface on Render.
type Game struct {
	id     string
	title  string
	cfg    config.BreakerConfig
	layout *Layout
	logger *log.Logger
	obs    Observer

	runtime core.RuntimeConfig
	clock   *scheduler.Clock
	surf    *surface.Surface
	loop    *Loop
	paused  bool
	steps   uint64

	screenTooSmall bool
}

// Option customizes a Game.
type Option func(*Game)

// WithLogger sets the logger handed to every Loop.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithObserver sets the gameplay event observer.
func WithObserver(o Observer) Option {
	return func(g *Game) { g.obs = o }
}

// WithLayout replaces the standard brick wall.
func WithLayout(l Layout) Option {
	return func(g *Game) { g.layout = &l }
}

// WithIdentity sets the mode ID and title reported to the platform.
func WithIdentity(id, title string) Option {
	return func(g *Game) {
		g.id = id
		g.title = title
	}
}

// New creates a game. The configuration is validated here, once.
func New(cfg config.BreakerConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: %w", err)
	}
	g := &Game{
		id:     "classic",
		title:  "Brick Breaker",
		cfg:    cfg,
		logger: log.New(io.Discard),
		obs:    NopObserver{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Configure applies options to a game created through the registry. Changes
// take effect at the next Reset.
func (g *Game) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(g)
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	g.runtime = runtime
	g.screenTooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH
	g.paused = false
	g.steps = 0

	g.clock = scheduler.New()
	g.surf = surface.New(g.cfg.Field.Width, g.cfg.Field.Height)
	loop, err := NewLoop(g.surf, g.clock, Options{
		Config:   g.cfg,
		Layout:   g.layout,
		Seed:     uint64(runtime.Seed), //#nosec G115 -- seed bits are reused as-is
		Logger:   g.logger,
		Observer: g.obs,
	})
	if err != nil {
		return err
	}
	g.loop = loop
	return nil
}

// Resize records a new screen size without disturbing the game.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < MinScreenW || h < MinScreenH
}

// Loop returns the running loop.
func (g *Game) Loop() *Loop {
	return g.loop
}

// Clock returns the virtual clock.
func (g *Game) Clock() *scheduler.Clock {
	return g.clock
}

// Step applies this frame's commands in order, then advances the clock by
// one tick interval unless paused.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, cmd := range in.Commands {
		switch cmd.Action {
		case core.ActionPause:
			if !g.loop.Phase().Terminal() {
				g.paused = !g.paused
			}
		case core.ActionRestart:
			if g.loop.Phase().Terminal() {
				if err := g.Reset(g.runtime); err != nil {
					g.logger.Error("restart failed", "err", err)
				}
			}
		case core.ActionQuit, core.ActionNone:
		case core.ActionPointerDown, core.ActionPointerDrag, core.ActionPointerUp:
			if !g.paused {
				cmd.X = g.fieldX(cmd.X)
				g.loop.Apply(cmd)
			}
		default:
			if !g.paused {
				g.loop.Apply(cmd)
			}
		}
	}

	if !g.paused {
		g.clock.Advance(g.cfg.Timing.Tick())
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

// fieldX converts a screen column to the field x under the column's center.
func (g *Game) fieldX(col float64) float64 {
	if g.runtime.ScreenW <= 0 {
		return col
	}
	return (col + 0.5) * g.cfg.Field.Width / float64(g.runtime.ScreenW)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.surf.Rasterize(dst)

	switch {
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case g.loop.Phase().Terminal():
		dst.DrawTextCentered(dst.Height()-1, fmt.Sprintf("Score: %d  |  Press R to restart", g.loop.Score()))
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := g.loop.Phase()
	return core.GameState{
		Score:      g.loop.Score(),
		Lives:      max(g.loop.Lives(), 0),
		BricksLeft: g.loop.BricksLeft(),
		Ticks:      g.loop.Ticks(),
		Phase:      phase.String(),
		GameOver:   phase.Terminal(),
		Won:        phase == PhaseWon,
		Paused:     g.paused,
	}
}

// Steps returns how many unpaused steps have run since the last Reset.
func (g *Game) Steps() uint64 {
	return g.steps
}
