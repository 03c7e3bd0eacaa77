// Package metrics exposes the server's Prometheus collectors on a
// debug HTTP endpoint, replacing the teacher's hand-rolled JSON
// /metrics handler (internal/server/server.go's handleMetrics and
// performanceMonitor) with real client_golang collectors wired to the
// same lifecycle events: connected clients, turns published, bombs
// placed/exploded.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bombrobots/internal/wire"
)

// Registry bundles every collector the server updates from the
// fanout and engine packages.
type Registry struct {
	reg *prometheus.Registry

	ConnectedClients prometheus.Gauge
	TurnsPublished   prometheus.Counter
	BombsPlaced      prometheus.Counter
	BombsExploded    prometheus.Counter
	RobotsDestroyed  prometheus.Counter
	BlocksDestroyed  prometheus.Counter
	GamesCompleted   prometheus.Counter
}

// New builds a Registry with every collector registered against a
// fresh prometheus.Registry (not the global default, so multiple
// lobby/game cycles in tests don't collide on re-registration).
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bombrobots",
			Subsystem: "server",
			Name:      "connected_clients",
			Help:      "Number of TCP connections currently fanned out to.",
		}),
		TurnsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bombrobots",
			Subsystem: "engine",
			Name:      "turns_published_total",
			Help:      "Turns appended to the authoritative turn log.",
		}),
		BombsPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bombrobots",
			Subsystem: "engine",
			Name:      "bombs_placed_total",
			Help:      "BombPlaced events emitted across all games.",
		}),
		BombsExploded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bombrobots",
			Subsystem: "engine",
			Name:      "bombs_exploded_total",
			Help:      "BombExploded events emitted across all games.",
		}),
		RobotsDestroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bombrobots",
			Subsystem: "engine",
			Name:      "robots_destroyed_total",
			Help:      "Robot destruction entries across all BombExploded events.",
		}),
		BlocksDestroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bombrobots",
			Subsystem: "engine",
			Name:      "blocks_destroyed_total",
			Help:      "Block destruction entries across all BombExploded events.",
		}),
		GamesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bombrobots",
			Subsystem: "engine",
			Name:      "games_completed_total",
			Help:      "Lobby->Game->Lobby cycles completed.",
		}),
	}

	reg.MustRegister(
		r.ConnectedClients,
		r.TurnsPublished,
		r.BombsPlaced,
		r.BombsExploded,
		r.RobotsDestroyed,
		r.BlocksDestroyed,
		r.GamesCompleted,
	)
	return r
}

// Handler returns the HTTP handler the server mounts at /metrics,
// alongside its TCP game port, per SPEC_FULL.md's DOMAIN STACK
// wiring of github.com/prometheus/client_golang.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveEvents updates the per-turn counters from one turn's event
// batch — called by the engine each time it appends a turn.
func (r *Registry) ObserveEvents(events []wire.Event) {
	r.TurnsPublished.Inc()
	for _, e := range events {
		switch e.Tag {
		case wire.EventBombPlaced:
			r.BombsPlaced.Inc()
		case wire.EventBombExploded:
			r.BombsExploded.Inc()
			r.RobotsDestroyed.Add(float64(len(e.RobotsDestroyed)))
			r.BlocksDestroyed.Add(float64(len(e.BlocksDestroyed)))
		}
	}
}

// ObserveGameEnded increments the completed-games counter — called
// once per Game->Lobby transition.
func (r *Registry) ObserveGameEnded() {
	r.GamesCompleted.Inc()
}
