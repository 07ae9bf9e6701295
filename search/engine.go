package search

import (
	"container/heap"
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/heuristic"
)

// Engine holds the mutable state of a single search. It is created by Start,
// advanced by Step, and discarded once terminal. An Engine is driven from one
// goroutine; only Cancel may be called concurrently with Step.
type Engine struct {
	terrain  Terrain
	start    grid.Coordinate
	goal     grid.Coordinate
	strategy Strategy
	h        heuristic.Func
	opts     Options

	gScore   map[grid.Coordinate]int             // best-known cost from start; absent means +∞
	fScore   map[grid.Coordinate]float64         // A* only: g + h
	cameFrom map[grid.Coordinate]grid.Coordinate // predecessor on best-known path
	closed   map[grid.Coordinate]struct{}        // finalised cells, never re-expanded
	open     frontier                            // lazy min-heap
	seq      uint64                              // next insertion sequence

	cancelRequested atomic.Bool
	status          Status
	expanded        int
	elapsed         time.Duration
	last            Outcome // terminal outcome, repeated by later Step calls
}

// Start validates the endpoints and returns an Engine with the start cell on
// the frontier. No expansion happens until the first Step.
//
// Returns ErrNilTerrain, ErrNilHeuristic, ErrUnknownStrategy for bad arguments
// and ErrInvalidEndpoint when start or goal is not a free in-bounds cell.
func Start(
	terrain Terrain,
	start, goal grid.Coordinate,
	strategy Strategy,
	h heuristic.Func,
	opts ...Option,
) (*Engine, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if terrain == nil {
		return nil, ErrNilTerrain
	}
	if h == nil {
		return nil, ErrNilHeuristic
	}
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
	}
	if !terrain.IsFree(start) {
		return nil, fmt.Errorf("%w: start %s is not a free cell", ErrInvalidEndpoint, start)
	}
	if !terrain.IsFree(goal) {
		return nil, fmt.Errorf("%w: goal %s is not a free cell", ErrInvalidEndpoint, goal)
	}

	e := &Engine{
		terrain:  terrain,
		start:    start,
		goal:     goal,
		strategy: strategy,
		h:        h,
		opts:     cfg,
		gScore:   map[grid.Coordinate]int{start: 0},
		cameFrom: make(map[grid.Coordinate]grid.Coordinate),
		closed:   make(map[grid.Coordinate]struct{}),
		open:     make(frontier, 0, 64),
	}
	startH := h(start, goal)
	if strategy == AStar {
		e.fScore = map[grid.Coordinate]float64{start: startH}
	}
	heap.Init(&e.open)
	e.push(start, startH)

	return e, nil
}

// Search runs a fresh engine to completion. It is a convenience wrapper around
// Start and RunToCompletion with a background context.
func Search(
	terrain Terrain,
	start, goal grid.Coordinate,
	strategy Strategy,
	h heuristic.Func,
	opts ...Option,
) (Outcome, error) {
	e, err := Start(terrain, start, goal, strategy, h, opts...)
	if err != nil {
		return Outcome{}, err
	}
	return e.RunToCompletion(context.Background())
}

// Step performs one expansion.
//
//  1. Pop the smallest (priority, sequence) entry, skipping entries whose cell is
//     already closed.
//  2. If it is the goal, reconstruct the path and return Succeeded.
//  3. Otherwise close it, relax its four orthogonal neighbours and return
//     InProgress with Current set to the expanded cell.
//
// When the frontier empties the outcome is Failed with Reason ErrNoPathExists.
// Once terminal, Step keeps returning the same terminal outcome.
// The error return is non-nil only for ErrBrokenChain.
func (e *Engine) Step() (Outcome, error) {
	if e.status.Terminal() {
		return e.terminal(), nil
	}
	if e.cancelRequested.Load() {
		return e.finish(Outcome{Status: Cancelled, Reason: ErrCancelled}), nil
	}

	began := e.opts.Clock()
	for e.open.Len() > 0 {
		it := heap.Pop(&e.open).(entry)
		cur := it.at
		if _, done := e.closed[cur]; done {
			continue // stale duplicate
		}
		e.closed[cur] = struct{}{}
		e.expanded++

		if cur == e.goal {
			path, err := e.reconstruct()
			e.elapsed += e.opts.Clock().Sub(began)
			if err != nil {
				return e.finish(Outcome{Status: Failed, Current: cur, Expanded: true, Reason: err}), err
			}
			e.opts.OnExpand(cur, e.expanded)
			return e.finish(Outcome{Status: Succeeded, Current: cur, Expanded: true, Path: path}), nil
		}

		e.relax(cur)
		e.elapsed += e.opts.Clock().Sub(began)
		e.opts.OnExpand(cur, e.expanded)

		return Outcome{
			Status:   InProgress,
			Current:  cur,
			Expanded: true,
			Metrics:  e.Metrics(),
		}, nil
	}

	e.elapsed += e.opts.Clock().Sub(began)
	return e.finish(Outcome{Status: Failed, Reason: ErrNoPathExists}), nil
}

// RunToCompletion calls Step until a terminal outcome. The context is checked
// between steps; on cancellation the engine is cancelled and ctx.Err() returned
// alongside the Cancelled outcome.
func (e *Engine) RunToCompletion(ctx context.Context) (Outcome, error) {
	for {
		if err := ctx.Err(); err != nil {
			e.Cancel()
			out, _ := e.Step()
			return out, err
		}
		out, err := e.Step()
		if err != nil || out.Status.Terminal() {
			return out, err
		}
	}
}

// Cancel requests cancellation. It takes effect at the next step boundary and
// is a no-op on an engine that is already terminal. Safe to call repeatedly
// and from another goroutine.
func (e *Engine) Cancel() {
	e.cancelRequested.Store(true)
}

// Status returns the current lifecycle state. A pending cancellation reports
// Cancelled.
func (e *Engine) Status() Status {
	if !e.status.Terminal() && e.cancelRequested.Load() {
		return Cancelled
	}
	return e.status
}

// Strategy returns the strategy the engine was started with.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Endpoints returns the start and goal the engine was started with.
func (e *Engine) Endpoints() (start, goal grid.Coordinate) { return e.start, e.goal }

// Metrics returns a live snapshot. PathLength is set only after success.
func (e *Engine) Metrics() Metrics {
	m := Metrics{NodesExpanded: e.expanded, Elapsed: e.elapsed}
	if e.status == Succeeded {
		m.PathLength = e.last.Path.Len()
	}
	return m
}

// Closed reports whether c has been expanded.
func (e *Engine) Closed(c grid.Coordinate) bool {
	_, ok := e.closed[c]
	return ok
}

// ClosedCoordinates returns every expanded cell in row-major order.
func (e *Engine) ClosedCoordinates() []grid.Coordinate {
	out := make([]grid.Coordinate, 0, len(e.closed))
	for c := range e.closed {
		out = append(out, c)
	}
	slices.SortFunc(out, compareCoordinates)
	return out
}

// FrontierCoordinates returns the distinct cells waiting on the frontier that
// are not yet closed, in row-major order.
func (e *Engine) FrontierCoordinates() []grid.Coordinate {
	seen := make(map[grid.Coordinate]struct{}, len(e.open))
	out := make([]grid.Coordinate, 0, len(e.open))
	for _, it := range e.open {
		if _, done := e.closed[it.at]; done {
			continue
		}
		if _, dup := seen[it.at]; dup {
			continue
		}
		seen[it.at] = struct{}{}
		out = append(out, it.at)
	}
	slices.SortFunc(out, compareCoordinates)
	return out
}

// relax examines the four orthogonal neighbours of cur and records every strictly
// cheaper route, pushing a fresh frontier entry for it. Stale entries stay in the
// heap and are skipped on pop.
//
// Greedy keeps g only to avoid re-queuing cells via equal or worse routes; its
// priority is h alone.
func (e *Engine) relax(cur grid.Coordinate) {
	tentative := e.gScore[cur] + 1
	for _, d := range grid.Offsets4 {
		nb := cur.Add(d)
		if !e.terrain.IsFree(nb) {
			continue
		}
		if g, seen := e.gScore[nb]; seen && tentative >= g {
			continue
		}
		e.cameFrom[nb] = cur
		e.gScore[nb] = tentative
		h := e.h(nb, e.goal)
		if e.strategy == AStar {
			f := float64(tentative) + h
			e.fScore[nb] = f
			e.push(nb, f)
		} else {
			e.push(nb, h)
		}
	}
}

// push adds c to the frontier with the next insertion sequence.
func (e *Engine) push(c grid.Coordinate, priority float64) {
	heap.Push(&e.open, entry{priority: priority, seq: e.seq, at: c})
	e.seq++
}

// reconstruct walks cameFrom backwards from goal to start. A chain that ends
// before start, or runs longer than the number of closed cells (a cycle),
// yields ErrBrokenChain instead of a truncated path.
func (e *Engine) reconstruct() (Path, error) {
	path := Path{e.goal}
	limit := len(e.closed) + 1
	for cur := e.goal; cur != e.start; {
		prev, ok := e.cameFrom[cur]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no predecessor", ErrBrokenChain, cur)
		}
		if len(path) > limit {
			return nil, fmt.Errorf("%w: cycle through %s", ErrBrokenChain, cur)
		}
		path = append(path, prev)
		cur = prev
	}
	slices.Reverse(path)

	return path, nil
}

// finish records a terminal outcome, drops the heap, and returns the outcome with
// final metrics attached.
func (e *Engine) finish(out Outcome) Outcome {
	e.status = out.Status
	e.last = out
	e.last.Metrics = e.Metrics()
	e.open = nil

	return e.terminal()
}

// terminal returns the stored terminal outcome with its own copy of the path.
func (e *Engine) terminal() Outcome {
	out := e.last
	out.Path = slices.Clone(e.last.Path)
	return out
}

func compareCoordinates(a, b grid.Coordinate) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}
