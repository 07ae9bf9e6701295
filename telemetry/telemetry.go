// Package telemetry exposes Prometheus collectors for search activity.
//
// Collectors are registered on a caller-supplied registerer so tests and
// multiple coordinators never collide on the global registry. Every method is
// safe to call on a nil *Collectors, which records nothing.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gridsearch"

// Replan reasons used as the "reason" label.
const (
	ReasonManual    = "manual"
	ReasonObstacles = "obstacles"
)

// Collectors groups the metrics recorded by replan.Coordinator.
type Collectors struct {
	searchesStarted   *prometheus.CounterVec
	searchOutcomes    *prometheus.CounterVec
	replans           *prometheus.CounterVec
	obstaclesInjected prometheus.Counter
	nodesExpanded     prometheus.Histogram
	searchDuration    prometheus.Histogram
}

// New creates the collectors and registers them on reg. A nil reg leaves them
// unregistered, which is useful in tests that only read values back.
func New(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		searchesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_started_total",
			Help:      "Searches started, by strategy and heuristic.",
		}, []string{"strategy", "heuristic"}),
		searchOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_outcomes_total",
			Help:      "Terminal search outcomes, by status.",
		}, []string{"status"}),
		replans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replans_total",
			Help:      "Searches superseded by a replan, by reason.",
		}, []string{"reason"}),
		obstaclesInjected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "obstacles_injected_total",
			Help:      "Obstacles added by dynamic injection.",
		}),
		nodesExpanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "nodes_expanded",
			Help:      "Nodes expanded per finished search.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 12),
		}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Active search time per finished search.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
	if reg == nil {
		return c, nil
	}
	for _, col := range c.all() {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collectors) all() []prometheus.Collector {
	return []prometheus.Collector{
		c.searchesStarted, c.searchOutcomes, c.replans,
		c.obstaclesInjected, c.nodesExpanded, c.searchDuration,
	}
}

// SearchStarted counts a new engine.
func (c *Collectors) SearchStarted(strategy, heuristic string) {
	if c == nil {
		return
	}
	c.searchesStarted.WithLabelValues(strategy, heuristic).Inc()
}

// SearchFinished records a terminal outcome with its work and duration.
func (c *Collectors) SearchFinished(status string, nodes int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.searchOutcomes.WithLabelValues(status).Inc()
	c.nodesExpanded.Observe(float64(nodes))
	c.searchDuration.Observe(elapsed.Seconds())
}

// Replanned counts a superseded search.
func (c *Collectors) Replanned(reason string) {
	if c == nil {
		return
	}
	c.replans.WithLabelValues(reason).Inc()
}

// ObstaclesInjected adds n injected obstacles.
func (c *Collectors) ObstaclesInjected(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.obstaclesInjected.Add(float64(n))
}
