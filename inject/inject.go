// Package inject adds obstacles to a grid at random, simulating an environment
// that keeps changing while a search runs.
//
// Every call visits each Free cell except start and goal once, in row-major
// order, and turns it into an obstacle with a fixed probability. Obstacles are
// never removed. Deciding when injection is allowed (dynamic mode, search
// state) is the caller's policy; see replan.Coordinator.
package inject

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/gridsearch/grid"
)

// DefaultProbability is the per-cell, per-call obstacle probability.
const DefaultProbability = 0.008

// ErrBadProbability indicates a probability outside [0,1].
var ErrBadProbability = errors.New("inject: probability must be in [0,1]")

// Injector flips Free cells into obstacles. It is not safe for concurrent use.
type Injector struct {
	p   float64
	rng *rand.Rand
}

// New returns an Injector with per-cell probability p drawing from rng.
// A nil rng is replaced by a time-seeded source.
func New(p float64, rng *rand.Rand) (*Injector, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: %v", ErrBadProbability, p)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Injector{p: p, rng: rng}, nil
}

// Probability returns the per-cell probability.
func (in *Injector) Probability() float64 { return in.p }

// Inject runs one injection pass over g and returns the number of new obstacles.
func (in *Injector) Inject(g *grid.Grid) int {
	return len(in.InjectCells(g))
}

// InjectCells runs one injection pass over g and returns the cells that became
// obstacles, in row-major order.
func (in *Injector) InjectCells(g *grid.Grid) []grid.Coordinate {
	if in.p == 0 {
		return nil
	}
	var added []grid.Coordinate
	g.FreeCells(func(at grid.Coordinate) bool {
		if !g.IsProtected(at) && in.rng.Float64() < in.p && g.SetObstacle(at, true) {
			added = append(added, at)
		}
		return true
	})
	return added
}
