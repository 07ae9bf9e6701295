package search

import "github.com/katalvlaran/gridsearch/grid"

// entry is a single frontier record. Several entries may exist for the same
// coordinate; all but the best are stale and skipped when popped.
type entry struct {
	priority float64         // f for A*, h for Greedy
	seq      uint64          // push order, breaks priority ties FIFO
	at       grid.Coordinate // cell identity, final tie-breaker
}

// frontier is a min-heap of entries ordered by (priority, seq, at).
// It implements container/heap.Interface.
type frontier []entry

// Len returns the number of entries in the heap.
func (f frontier) Len() int { return len(f) }

// Less orders by priority, then by insertion sequence, then by coordinate.
func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	if f[i].seq != f[j].seq {
		return f[i].seq < f[j].seq
	}
	return f[i].at.Less(f[j].at)
}

// Swap swaps two entries.
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

// Push appends x, which must be an entry. Called by heap.Push.
func (f *frontier) Push(x any) { *f = append(*f, x.(entry)) }

// Pop removes and returns the last entry. Called by heap.Pop.
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	*f = old[:n-1]

	return e
}
