package grid_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridsearch/grid"
)

//----------------------------------------------------------------------------//
// New and size validation
//----------------------------------------------------------------------------//

// TestNew_SizeRange verifies the supported dimension boundaries.
func TestNew_SizeRange(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
		ok         bool
	}{
		{"Minimum", 8, 8, true},
		{"Maximum", 80, 120, true},
		{"TooFewRows", 7, 8, false},
		{"TooManyRows", 81, 120, false},
		{"TooFewCols", 8, 7, false},
		{"TooManyCols", 80, 121, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := grid.New(tc.rows, tc.cols, grid.At(0, 0), grid.At(tc.rows-1, tc.cols-1))
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.rows, g.Rows())
				assert.Equal(t, tc.cols, g.Cols())
				return
			}
			assert.ErrorIs(t, err, grid.ErrInvalidGridSize)
			assert.Nil(t, g)
			assert.Contains(t, err.Error(), "8–80 / 8–120")
		})
	}
}

// TestNew_Endpoints verifies endpoint validation.
func TestNew_Endpoints(t *testing.T) {
	_, err := grid.New(8, 8, grid.At(-1, 0), grid.At(7, 7))
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)

	_, err = grid.New(8, 8, grid.At(0, 0), grid.At(8, 7))
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)

	_, err = grid.New(8, 8, grid.At(3, 3), grid.At(3, 3))
	assert.ErrorIs(t, err, grid.ErrSameEndpoints)
}

//----------------------------------------------------------------------------//
// Mutation
//----------------------------------------------------------------------------//

// TestSetObstacle_Protection checks that endpoints and out-of-bounds cells are never mutated.
func TestSetObstacle_Protection(t *testing.T) {
	g, err := grid.New(8, 8, grid.At(0, 0), grid.At(7, 7))
	require.NoError(t, err)

	assert.False(t, g.SetObstacle(g.Start(), true))
	assert.False(t, g.SetObstacle(g.Goal(), true))
	assert.False(t, g.SetObstacle(grid.At(8, 0), true))
	assert.False(t, g.SetObstacle(grid.At(0, -1), true))
	assert.True(t, g.IsFree(g.Start()))
	assert.True(t, g.IsFree(g.Goal()))
	assert.Equal(t, uint64(0), g.Version())
	assert.Equal(t, 0, g.ObstacleCount())
}

// TestSetObstacle_Version checks that only effective changes bump the version.
func TestSetObstacle_Version(t *testing.T) {
	g, err := grid.New(8, 8, grid.At(0, 0), grid.At(7, 7))
	require.NoError(t, err)
	c := grid.At(3, 4)

	assert.True(t, g.SetObstacle(c, true))
	assert.False(t, g.IsFree(c))
	assert.Equal(t, grid.Obstacle, g.Cell(c))
	assert.Equal(t, uint64(1), g.Version())

	assert.False(t, g.SetObstacle(c, true), "setting an obstacle twice is not a change")
	assert.Equal(t, uint64(1), g.Version())

	assert.True(t, g.Toggle(c))
	assert.True(t, g.IsFree(c))
	assert.Equal(t, uint64(2), g.Version())
	assert.Equal(t, 0, g.ObstacleCount())

	assert.False(t, g.Toggle(g.Goal()))
	assert.False(t, g.Toggle(grid.At(100, 100)))
}

// TestIsFree_OutOfBounds checks that out-of-bounds reads are never free.
func TestIsFree_OutOfBounds(t *testing.T) {
	g := grid.MustParse(`
		S.
		.G
	`)
	for _, c := range []grid.Coordinate{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		assert.False(t, g.IsFree(c), "IsFree(%s)", c)
		assert.Equal(t, grid.Obstacle, g.Cell(c))
	}
}

// TestNeighbors4 checks order and filtering of orthogonal neighbours.
func TestNeighbors4(t *testing.T) {
	g := grid.MustParse(`
		S#.
		...
		.#G
	`)
	assert.Equal(t, []grid.Coordinate{{1, 0}, {1, 2}}, g.Neighbors4(grid.At(1, 1)))
	assert.Equal(t, []grid.Coordinate{{1, 0}}, g.Neighbors4(grid.At(0, 0)))
	assert.Equal(t, []grid.Coordinate{{1, 2}}, g.Neighbors4(grid.At(2, 2)))
}

// TestClone_Independent checks that clones do not share cells.
func TestClone_Independent(t *testing.T) {
	g := grid.MustParse(`
		S..
		...
		..G
	`)
	c := g.Clone()
	c.SetObstacle(grid.At(1, 1), true)
	assert.True(t, g.IsFree(grid.At(1, 1)))
	assert.False(t, c.IsFree(grid.At(1, 1)))
	assert.Equal(t, uint64(0), g.Version())
	assert.Equal(t, uint64(1), c.Version())
}

// TestFreeCells_EarlyStop checks iteration order and early termination.
func TestFreeCells_EarlyStop(t *testing.T) {
	g := grid.MustParse(`
		S#
		.G
	`)
	var seen []grid.Coordinate
	g.FreeCells(func(c grid.Coordinate) bool {
		seen = append(seen, c)
		return true
	})
	assert.Equal(t, []grid.Coordinate{{0, 0}, {1, 0}, {1, 1}}, seen)

	n := 0
	g.FreeCells(func(grid.Coordinate) bool { n++; return false })
	assert.Equal(t, 1, n)
}

//----------------------------------------------------------------------------//
// Parse / String
//----------------------------------------------------------------------------//

// TestParse_Errors verifies that malformed fixtures are rejected.
func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		err  error
	}{
		{"Empty", "  \n ", grid.ErrEmptyGrid},
		{"Ragged", "S..\n.G", grid.ErrNonRectangular},
		{"BadRune", "S.x\n..G", grid.ErrBadCell},
		{"NoGoal", "S..\n...", grid.ErrMissingEndpoint},
		{"TwoStarts", "S.S\n..G", grid.ErrMissingEndpoint},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.Parse(tc.in)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

// TestParse_RoundTrip checks that String renders what Parse read.
func TestParse_RoundTrip(t *testing.T) {
	const in = "S.#..\n.##.#\n....G"
	g, err := grid.Parse(in)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 5, g.Cols())
	assert.Equal(t, grid.At(0, 0), g.Start())
	assert.Equal(t, grid.At(2, 4), g.Goal())
	assert.Equal(t, 4, g.ObstacleCount())
	assert.Equal(t, uint64(0), g.Version())
	assert.Equal(t, in, g.String())
}

//----------------------------------------------------------------------------//
// Random
//----------------------------------------------------------------------------//

// TestRandom verifies endpoint placement, protection, and argument checks.
func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g, err := grid.Random(30, 40, 0.28, rng)
	require.NoError(t, err)
	assert.Equal(t, grid.At(1, 1), g.Start())
	assert.Equal(t, grid.At(28, 38), g.Goal())
	assert.True(t, g.IsFree(g.Start()))
	assert.True(t, g.IsFree(g.Goal()))
	assert.Positive(t, g.ObstacleCount())
	assert.Equal(t, uint64(0), g.Version())

	full, err := grid.Random(8, 8, 1, rng)
	require.NoError(t, err)
	assert.Equal(t, 8*8-2, full.ObstacleCount())

	_, err = grid.Random(8, 8, 1.5, rng)
	assert.ErrorIs(t, err, grid.ErrBadProbability)
	_, err = grid.Random(7, 8, 0.1, rng)
	assert.ErrorIs(t, err, grid.ErrInvalidGridSize)
}

// TestAdjacent checks the orthogonal adjacency helper.
func TestAdjacent(t *testing.T) {
	assert.True(t, grid.Adjacent(grid.At(1, 1), grid.At(0, 1)))
	assert.True(t, grid.Adjacent(grid.At(1, 1), grid.At(1, 2)))
	assert.False(t, grid.Adjacent(grid.At(1, 1), grid.At(2, 2)))
	assert.False(t, grid.Adjacent(grid.At(1, 1), grid.At(1, 1)))
}
