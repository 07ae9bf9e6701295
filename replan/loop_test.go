package replan_test

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/replan"
	"github.com/katalvlaran/gridsearch/search"
)

func TestLoop_RunsToCompletionAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := newCoordinator(t, openField)
	require.NoError(t, c.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var updates atomic.Int64
	err := c.Loop(ctx, replan.LoopOptions{
		StepInterval:   time.Millisecond,
		InjectInterval: 5 * time.Millisecond,
		OnUpdate: func(s replan.Snapshot) {
			updates.Add(1)
			if s.State == replan.Completed {
				cancel()
			}
		},
	})
	require.NoError(t, err)

	snap := c.Snapshot()
	assert.Equal(t, replan.Completed, snap.State)
	require.NotNil(t, snap.Outcome)
	assert.Equal(t, search.Succeeded, snap.Outcome.Status)
	assert.GreaterOrEqual(t, updates.Load(), int64(snap.Metrics.NodesExpanded))
}

func TestLoop_IdleUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := newCoordinator(t, openField)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	require.NoError(t, c.Loop(ctx, replan.LoopOptions{StepInterval: 5 * time.Millisecond}))
	assert.Equal(t, replan.Idle, c.Snapshot().State)
}

func TestRunVirtual_DynamicReplans(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g, err := grid.Random(20, 30, 0.15, rng)
	require.NoError(t, err)

	c, err := replan.New(g,
		replan.WithDynamic(true),
		replan.WithSpawnProbability(0.01),
		replan.WithRand(rng))
	require.NoError(t, err)
	require.NoError(t, c.Start())

	snap, err := c.RunVirtual(context.Background(), t0, replan.LoopOptions{
		StepInterval:   time.Millisecond,
		InjectInterval: 200 * time.Millisecond,
		MaxSteps:       200000,
	})
	require.NoError(t, err)
	assert.Equal(t, replan.Completed, snap.State)
	assert.False(t, snap.ReplanPending)
	require.NotNil(t, snap.Outcome)
	if snap.Outcome.Found() {
		final := c.Frame()
		assert.NoError(t, final.Path.Validate(final.Grid, g.Start(), g.Goal()))
	}
}

func TestRunVirtual_StepLimit(t *testing.T) {
	c := newCoordinator(t, openField)
	require.NoError(t, c.Start())

	snap, err := c.RunVirtual(context.Background(), t0, replan.LoopOptions{MaxSteps: 3})
	assert.ErrorIs(t, err, replan.ErrStepLimit)
	assert.Equal(t, replan.Running, snap.State)
	assert.Equal(t, 3, snap.Metrics.NodesExpanded)
}

func TestRunVirtual_ReturnsWhenIdle(t *testing.T) {
	c := newCoordinator(t, openField)

	snap, err := c.RunVirtual(context.Background(), t0, replan.LoopOptions{})
	require.NoError(t, err)
	assert.Equal(t, replan.Idle, snap.State)
}
