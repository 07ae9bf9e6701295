// Package grid models the mutable 2D obstacle map that path searches run over.
//
// What:
//
//   - Grid is a rectangular rows×cols matrix of cells, each Free or Obstacle.
//   - Start and goal are fixed for the lifetime of a grid, always Free, and
//     protected from every mutation (injection, manual toggling).
//   - Every effective mutation bumps a version counter so observers can detect
//     change without diffing cells.
//   - Components/Connected answer 4-connectivity questions over Free cells.
//   - Parse/String give an ASCII round-trip used by tests and tooling.
//
// Why:
//
//   - Search engines only need IsFree; everything else here exists so a host
//     can build, mutate, and inspect the map between search steps.
//
// Complexity:
//
//   - IsFree, SetObstacle, Toggle: O(1).
//   - Components, Connected:      O(R×C), Memory: O(R×C).
//   - Random, Parse, String:      O(R×C).
//
// Errors:
//
//   - ErrInvalidGridSize: rows/cols outside the supported range (8–80 / 8–120).
//   - ErrOutOfBounds:     start or goal outside the grid.
//   - ErrSameEndpoints:   start equals goal.
//   - ErrEmptyGrid, ErrNonRectangular, ErrBadCell, ErrMissingEndpoint: Parse input errors.
//   - ErrBadProbability:  Random obstacle probability outside [0,1].
package grid
