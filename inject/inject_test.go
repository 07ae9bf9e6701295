package inject_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/inject"
)

func TestNew_Probability(t *testing.T) {
	_, err := inject.New(-0.1, nil)
	assert.ErrorIs(t, err, inject.ErrBadProbability)
	_, err = inject.New(1.01, nil)
	assert.ErrorIs(t, err, inject.ErrBadProbability)

	in, err := inject.New(inject.DefaultProbability, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.008, in.Probability())
}

func TestInject_CertainFillsAllButEndpoints(t *testing.T) {
	g, err := grid.New(8, 10, grid.At(0, 0), grid.At(7, 9))
	require.NoError(t, err)
	g.SetObstacle(grid.At(3, 3), true)

	in, err := inject.New(1, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 8*10-2-1, in.Inject(g))
	assert.Equal(t, 8*10-2, g.ObstacleCount())
	assert.True(t, g.IsFree(g.Start()))
	assert.True(t, g.IsFree(g.Goal()))

	assert.Zero(t, in.Inject(g), "nothing left to flip")
}

func TestInject_ZeroIsNoop(t *testing.T) {
	g, err := grid.New(8, 8, grid.At(0, 0), grid.At(7, 7))
	require.NoError(t, err)
	in, err := inject.New(0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Zero(t, in.Inject(g))
	assert.Equal(t, uint64(0), g.Version())
}

// TestInject_AppendOnlyAndSeeded checks that passes only add obstacles and that
// equal seeds give equal results.
func TestInject_AppendOnlyAndSeeded(t *testing.T) {
	a, err := grid.New(30, 40, grid.At(1, 1), grid.At(28, 38))
	require.NoError(t, err)
	b := a.Clone()

	ia, _ := inject.New(0.05, rand.New(rand.NewSource(99)))
	ib, _ := inject.New(0.05, rand.New(rand.NewSource(99)))

	prev := 0
	for pass := 0; pass < 5; pass++ {
		cells := ia.InjectCells(a)
		assert.Equal(t, len(cells), ib.Inject(b))
		for _, c := range cells {
			assert.False(t, a.IsFree(c))
			assert.False(t, a.IsProtected(c))
		}
		assert.Equal(t, prev+len(cells), a.ObstacleCount())
		prev = a.ObstacleCount()
	}
	assert.Equal(t, a.String(), b.String())
	assert.Positive(t, prev)
}
