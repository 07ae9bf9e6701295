package bfs

import (
	"fmt"

	"github.com/katalvlaran/gridsearch/grid"
)

// queueItem pairs a cell with its BFS depth.
type queueItem struct {
	at    grid.Coordinate
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	terrain Terrain
	opts    Options
	queue   []queueItem
	res     *Result
}

// BFS runs breadth-first search from start, expanding neighbours in
// grid.Offsets4 order. Returns ErrTerrainNil, ErrOptionViolation or
// ErrStartBlocked for invalid input, the context error on cancellation, or
// any error returned by OnVisit.
func BFS(t Terrain, start grid.Coordinate, opts ...Option) (*Result, error) {
	if t == nil {
		return nil, ErrTerrainNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !t.IsFree(start) {
		return nil, fmt.Errorf("%w: %s", ErrStartBlocked, start)
	}

	w := &walker{
		terrain: t,
		opts:    o,
		res: &Result{
			Depth:  make(map[grid.Coordinate]int),
			Parent: make(map[grid.Coordinate]grid.Coordinate),
		},
	}
	w.enqueue(start, 0, nil)

	return w.res, w.loop()
}

// ShortestLength returns the number of moves on a shortest start→goal route
// and whether goal is reachable at all.
func ShortestLength(t Terrain, start, goal grid.Coordinate) (int, bool) {
	res, err := BFS(t, start, WithTarget(goal))
	if err != nil {
		return 0, false
	}
	d, ok := res.Depth[goal]
	return d, ok
}

// enqueue records depth and parent of c and appends it to the queue.
func (w *walker) enqueue(c grid.Coordinate, d int, parent *grid.Coordinate) {
	w.res.Depth[c] = d
	if parent != nil {
		w.res.Parent[c] = *parent
	}
	w.queue = append(w.queue, queueItem{at: c, depth: d})
}

// loop processes the queue until empty, target, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.at)
		if err := w.opts.OnVisit(item.at, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %s: %w", item.at, err)
		}
		if w.opts.Target != nil && item.at == *w.opts.Target {
			return nil
		}
		w.enqueueNeighbors(item)
	}
	return nil
}

// enqueueNeighbors applies MaxDepth and enqueues each unseen free neighbour.
func (w *walker) enqueueNeighbors(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for _, d := range grid.Offsets4 {
		nb := item.at.Add(d)
		if !w.terrain.IsFree(nb) {
			continue
		}
		if _, seen := w.res.Depth[nb]; seen {
			continue
		}
		w.enqueue(nb, next, &item.at)
	}
}
