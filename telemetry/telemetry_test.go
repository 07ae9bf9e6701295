package telemetry_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridsearch/telemetry"
)

func TestCollectors_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := telemetry.New(reg)
	require.NoError(t, err)

	c.SearchStarted("A*", "Manhattan")
	c.SearchStarted("A*", "Manhattan")
	c.SearchFinished("succeeded", 40, 3*time.Millisecond)
	c.Replanned(telemetry.ReasonObstacles)
	c.ObstaclesInjected(5)
	c.ObstaclesInjected(0)

	expected := `
# HELP gridsearch_obstacles_injected_total Obstacles added by dynamic injection.
# TYPE gridsearch_obstacles_injected_total counter
gridsearch_obstacles_injected_total 5
# HELP gridsearch_replans_total Searches superseded by a replan, by reason.
# TYPE gridsearch_replans_total counter
gridsearch_replans_total{reason="obstacles"} 1
# HELP gridsearch_searches_started_total Searches started, by strategy and heuristic.
# TYPE gridsearch_searches_started_total counter
gridsearch_searches_started_total{heuristic="Manhattan",strategy="A*"} 2
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"gridsearch_obstacles_injected_total", "gridsearch_replans_total", "gridsearch_searches_started_total")
	assert.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "gridsearch_nodes_expanded")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCollectors_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := telemetry.New(reg)
	require.NoError(t, err)
	_, err = telemetry.New(reg)
	assert.Error(t, err)
}

func TestCollectors_NilSafe(t *testing.T) {
	var c *telemetry.Collectors
	assert.NotPanics(t, func() {
		c.SearchStarted("A*", "Manhattan")
		c.SearchFinished("failed", 1, time.Second)
		c.Replanned(telemetry.ReasonManual)
		c.ObstaclesInjected(3)
	})
}
