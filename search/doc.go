// Package search implements a steppable informed search (A* and Greedy
// Best-First) over a 4-connected, unit-cost obstacle grid.
//
// An Engine owns all per-search state: best-known cost per cell (g), the A*
// estimate f = g + h, predecessor links, a min-heap frontier and the closed
// set. Callers drive it one expansion at a time with Step, or to the end with
// RunToCompletion. The engine is discarded when it reaches a terminal outcome
// or is cancelled; replanning always means starting a fresh Engine.
//
// Ordering:
//
//   - Frontier entries are ordered by (priority, sequence, coordinate), where
//     priority is f for A* and h for Greedy, and sequence is a counter assigned
//     at push time. Equal priorities therefore pop in FIFO order and every run
//     over the same grid expands cells in exactly the same order.
//   - Stale entries are never removed from the heap (lazy decrease-key); they
//     are skipped when popped if their cell is already closed.
//
// Guarantees:
//
//   - A* with Manhattan or Euclidean returns a shortest path (both are
//     admissible for unit-cost orthogonal moves).
//   - Greedy returns a valid path when one exists, with no length guarantee.
//
// Complexity:
//
//   - Time:  O(V log V) for V free cells; each cell is expanded at most once and
//     each expansion pushes at most four entries.
//   - Space: O(V) for the score maps, predecessor map, closed set and heap.
//
// Errors (sentinel):
//
//   - ErrInvalidEndpoint  start or goal out of bounds or not free; nothing expanded.
//   - ErrNoPathExists     frontier exhausted; reported as Outcome.Reason of a Failed outcome.
//   - ErrCancelled        Outcome.Reason of a Cancelled outcome.
//   - ErrBrokenChain      predecessor chain does not lead back to start; a defect.
//   - ErrNilTerrain, ErrNilHeuristic, ErrUnknownStrategy for bad arguments.
package search
