package heuristic_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/heuristic"
)

func TestManhattanEuclidean(t *testing.T) {
	cases := []struct {
		a, b      grid.Coordinate
		manhattan float64
		euclidean float64
	}{
		{grid.At(0, 0), grid.At(0, 0), 0, 0},
		{grid.At(0, 0), grid.At(4, 4), 8, math.Sqrt(32)},
		{grid.At(2, 5), grid.At(-1, 1), 7, 5},
		{grid.At(3, 0), grid.At(3, 9), 9, 9},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.manhattan, heuristic.Manhattan(tc.a, tc.b), "Manhattan%v%v", tc.a, tc.b)
		assert.InDelta(t, tc.euclidean, heuristic.Euclidean(tc.a, tc.b), 1e-9, "Euclidean%v%v", tc.a, tc.b)
	}
}

// TestSymmetricAndDominated checks symmetry and Euclidean ≤ Manhattan on a window of coordinates.
func TestSymmetricAndDominated(t *testing.T) {
	origin := grid.At(3, 3)
	for r := -2; r < 9; r++ {
		for c := -2; c < 9; c++ {
			p := grid.At(r, c)
			m, e := heuristic.Manhattan(origin, p), heuristic.Euclidean(origin, p)
			assert.Equal(t, m, heuristic.Manhattan(p, origin))
			assert.Equal(t, e, heuristic.Euclidean(p, origin))
			assert.LessOrEqual(t, e, m)
		}
	}
}

func TestParseKind(t *testing.T) {
	k, err := heuristic.ParseKind(" euclidean ")
	require.NoError(t, err)
	assert.Equal(t, heuristic.KindEuclidean, k)

	k, err = heuristic.ParseKind("MANHATTAN")
	require.NoError(t, err)
	assert.Equal(t, heuristic.KindManhattan, k)

	_, err = heuristic.ParseKind("chebyshev")
	assert.ErrorIs(t, err, heuristic.ErrUnknownKind)
}

func TestKind_TextAndCycle(t *testing.T) {
	b, err := heuristic.KindEuclidean.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Euclidean", string(b))

	var k heuristic.Kind
	require.NoError(t, k.UnmarshalText([]byte("euclidean")))
	assert.Equal(t, heuristic.KindEuclidean, k)
	assert.Error(t, k.UnmarshalText([]byte("nope")))

	_, err = heuristic.Kind(9).MarshalText()
	assert.ErrorIs(t, err, heuristic.ErrUnknownKind)

	assert.Equal(t, heuristic.KindEuclidean, heuristic.KindManhattan.Next())
	assert.Equal(t, heuristic.KindManhattan, heuristic.KindEuclidean.Next())
	assert.Equal(t, 5.0, heuristic.KindEuclidean.Func()(grid.At(0, 0), grid.At(3, 4)))
	assert.Equal(t, 7.0, heuristic.KindManhattan.Func()(grid.At(0, 0), grid.At(3, 4)))
}
