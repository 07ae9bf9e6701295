package grid

import (
	"fmt"
	"math/rand"
)

// Random builds a rows×cols grid in which every cell is independently an
// obstacle with probability p. The start is placed at (1,1) and the goal at
// (rows-2, cols-2); both are forced Free. The version counter starts at zero.
//
// Returns ErrInvalidGridSize for unsupported dimensions and ErrBadProbability
// when p is outside [0,1].
func Random(rows, cols int, p float64, rng *rand.Rand) (*Grid, error) {
	if err := ValidateSize(rows, cols); err != nil {
		return nil, err
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: %v", ErrBadProbability, p)
	}
	g, err := build(rows, cols, At(1, 1), At(rows-2, cols-2))
	if err != nil {
		return nil, err
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < p {
				g.SetObstacle(At(r, c), true)
			}
		}
	}
	g.version = 0
	return g, nil
}
