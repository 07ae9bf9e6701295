// Package bfs provides breadth-first search over an obstacle grid, returning
// unit-cost shortest-path distances, parent links, and visit order.
//
// What
//
//   - Explore free cells in non-decreasing distance (moves) from a start cell.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: map from cell → distance from start
//   - Parent: map from cell → its predecessor in the BFS tree
//   - OnVisit hook (may abort with an error).
//   - Honors MaxDepth limit (d>0) or explicit “no limit” (d==0).
//   - Stops early once a Target cell is visited.
//
// Why
//
//   - On a 4-connected unit-cost grid the BFS depth of a cell is its true
//     shortest distance, which makes BFS the reference that A* results are
//     checked against.
//   - ShortestLength gives hosts an optimal length to print next to an
//     informed search's result.
//
// Determinism
//
//	Neighbours are enqueued in grid.Offsets4 order (up, down, left, right), so
//	the visit sequence is fully reproducible.
//
// Complexity (V = free cells)
//
//   - Time:   O(V)   (each cell and its four neighbours seen once)
//   - Memory: O(V)   (queue, Depth map, Parent map)
//
// Usage
//
//	res, err := bfs.BFS(g, g.Start(), bfs.WithTarget(g.Goal()))
//	if err != nil {
//		// ErrTerrainNil, ErrStartBlocked, ErrOptionViolation, ctx or hook errors
//	}
//	path, err := res.PathTo(g.Goal())
//
// Errors
//
//   - ErrTerrainNil       if the terrain is nil.
//   - ErrStartBlocked     if the start cell is not free.
//   - ErrOptionViolation  for an invalid Option (e.g. negative MaxDepth).
//   - ErrUnreached        from PathTo for cells never reached.
//   - Wrapped errors from OnVisit.
package bfs
