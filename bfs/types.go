package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/gridsearch/grid"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartBlocked is returned when the start cell is out of bounds or an obstacle.
	ErrStartBlocked = errors.New("bfs: start cell is not free")

	// ErrTerrainNil is returned if a nil terrain is passed.
	ErrTerrainNil = errors.New("bfs: terrain is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrUnreached is returned by PathTo for cells the traversal never reached.
	ErrUnreached = errors.New("bfs: destination not reached")
)

// Terrain is the read-only grid view BFS walks over. *grid.Grid satisfies it.
type Terrain interface {
	IsFree(c grid.Coordinate) bool
}

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a cell. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(c grid.Coordinate, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// Target, if set, stops the traversal as soon as it is visited.
	Target *grid.Coordinate

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with a background context, no depth limit,
// no target and a no-op OnVisit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(grid.Coordinate, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(c grid.Coordinate, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithTarget stops the traversal once target has been visited.
func WithTarget(target grid.Coordinate) Option {
	return func(o *Options) {
		o.Target = &target
	}
}

// Result holds the outcome of a BFS traversal:
//   - Order: cells visited, in visit sequence.
//   - Depth: map from cell to its distance (in moves) from the start.
//   - Parent: map from cell to its predecessor in the BFS tree.
type Result struct {
	Order  []grid.Coordinate
	Depth  map[grid.Coordinate]int
	Parent map[grid.Coordinate]grid.Coordinate
}

// PathTo reconstructs the path from the start cell to dest.
// Returns ErrUnreached if dest was not reached.
func (r *Result) PathTo(dest grid.Coordinate) ([]grid.Coordinate, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnreached, dest)
	}
	path := []grid.Coordinate{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
