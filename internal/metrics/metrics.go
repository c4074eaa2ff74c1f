// Package metrics exports gameplay counters to Prometheus. A Collector is
// plugged into the game as its event observer.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "breaker"

// Collector owns a private Prometheus registry and the gameplay metrics.
type Collector struct {
	registry *prometheus.Registry

	ticks       prometheus.Counter
	bricks      prometheus.Counter
	livesLost   prometheus.Counter
	spawned     *prometheus.CounterVec
	activated   *prometheus.CounterVec
	games       *prometheus.CounterVec
	ballsInPlay prometheus.Gauge
}

// New creates a collector with every metric registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Game loop ticks completed while running.",
		}),
		bricks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bricks_destroyed_total",
			Help:      "Bricks broken by a ball.",
		}),
		livesLost: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lives_lost_total",
			Help:      "Main balls that escaped past the paddle.",
		}),
		spawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "powerups_spawned_total",
			Help:      "Power-ups dropped, by variant.",
		}, []string{"variant"}),
		activated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "powerups_activated_total",
			Help:      "Power-ups caught by the paddle, by variant.",
		}, []string{"variant"}),
		games: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Finished games, by outcome.",
		}, []string{"outcome"}),
		ballsInPlay: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "balls_in_play",
			Help:      "Balls currently on the field.",
		}),
	}
	c.registry.MustRegister(c.ticks, c.bricks, c.livesLost, c.spawned, c.activated, c.games, c.ballsInPlay)
	return c
}

// Registry returns the registry the metrics live in.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) TickCompleted() { c.ticks.Inc() }
func (c *Collector) BrickDestroyed() { c.bricks.Inc() }
func (c *Collector) LifeLost() { c.livesLost.Inc() }
func (c *Collector) PowerUpSpawned(variant string) { c.spawned.WithLabelValues(variant).Inc() }
func (c *Collector) PowerUpActivated(variant string) { c.activated.WithLabelValues(variant).Inc() }
func (c *Collector) BallsInPlay(n int) { c.ballsInPlay.Set(float64(n)) }
func (c *Collector) GameEnded(outcome string) { c.games.WithLabelValues(outcome).Inc() }

// Handler returns an HTTP handler exposing the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Server serves /metrics until shut down.
type Server struct {
	srv    *http.Server
	logger *log.Logger
	done   chan struct{}
}

// StartHTTP starts the metrics endpoint on addr (for example ":2112").
// The call does not block; the server runs in its own goroutine.
func (c *Collector) StartHTTP(addr string, logger *log.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	s := &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		logger.Info("metrics endpoint listening", "addr", addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	}()
	return s
}

// Shutdown stops the server and waits for its goroutine to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	<-s.done
	return err
}
