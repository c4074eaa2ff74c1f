package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
)

var _ breakout.Observer = (*Collector)(nil)

func TestCollectorCounts(t *testing.T) {
	c := New()

	c.TickCompleted()
	c.TickCompleted()
	c.BrickDestroyed()
	c.LifeLost()
	c.PowerUpSpawned("multiball")
	c.PowerUpSpawned("widen")
	c.PowerUpSpawned("widen")
	c.PowerUpActivated("widen")
	c.BallsInPlay(5)
	c.BallsInPlay(3)
	c.GameEnded("won")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ticks))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.bricks))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.livesLost))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.spawned.WithLabelValues("multiball")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.spawned.WithLabelValues("widen")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.activated.WithLabelValues("widen")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.ballsInPlay))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.games.WithLabelValues("won")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.games.WithLabelValues("lost")))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.BrickDestroyed()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.bricks))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.bricks))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.BrickDestroyed()
	c.BrickDestroyed()

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "breaker_bricks_destroyed_total 2")
	assert.Contains(t, string(body), "breaker_balls_in_play 0")
}

func TestCollectorDrivesFromGame(t *testing.T) {
	c := New()
	cfg := breakoutConfig()
	g, err := breakout.New(cfg, breakout.WithObserver(c))
	require.NoError(t, err)
	require.NoError(t, g.Reset(runtimeConfig()))

	pilot := breakout.Autopilot{}
	for range 100 {
		g.Step(pilot.Commands(g.Loop()))
	}
	ticks := testutil.ToFloat64(c.ticks)
	assert.Greater(t, ticks, 0.0)
	assert.LessOrEqual(t, ticks, float64(g.Loop().Ticks()))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.spawned.WithLabelValues("multiball"))+
		testutil.ToFloat64(c.spawned.WithLabelValues("widen")))
}

func breakoutConfig() config.BreakerConfig {
	return config.DefaultBreakerConfig()
}

func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 20, Seed: 7}
}
