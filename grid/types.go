package grid

import (
	"errors"
	"fmt"
)

// Supported grid dimensions for New and Random.
const (
	MinRows = 8
	MaxRows = 80
	MinCols = 8
	MaxCols = 120
)

// Sentinel errors for grid construction and parsing.
var (
	// ErrInvalidGridSize indicates rows or cols outside [MinRows,MaxRows] / [MinCols,MaxCols].
	ErrInvalidGridSize = errors.New("grid: invalid grid size")
	// ErrOutOfBounds indicates an endpoint outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrSameEndpoints indicates start and goal are the same cell.
	ErrSameEndpoints = errors.New("grid: start and goal must differ")
	// ErrEmptyGrid indicates the parsed input has no rows or no columns.
	ErrEmptyGrid = errors.New("grid: input grid must have at least one row and one column")
	// ErrNonRectangular indicates parsed rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrBadCell indicates an unknown cell rune in parsed input.
	ErrBadCell = errors.New("grid: unknown cell rune")
	// ErrMissingEndpoint indicates parsed input without exactly one start and one goal.
	ErrMissingEndpoint = errors.New("grid: exactly one start and one goal required")
	// ErrBadProbability indicates an obstacle probability outside [0,1].
	ErrBadProbability = errors.New("grid: obstacle probability must be in [0,1]")
)

// Cell is the occupancy state of a single grid cell.
type Cell uint8

const (
	// Free cells can be traversed.
	Free Cell = iota
	// Obstacle cells block movement.
	Obstacle
)

// String returns "free" or "obstacle".
func (c Cell) String() string {
	if c == Obstacle {
		return "obstacle"
	}
	return "free"
}

// Coordinate identifies a cell by row and column. It is comparable and is used
// directly as a map key by the search structures.
type Coordinate struct {
	Row, Col int
}

// At is shorthand for Coordinate{Row: row, Col: col}.
func At(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// String formats the coordinate as "(row,col)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns c shifted by the offset d.
func (c Coordinate) Add(d Coordinate) Coordinate {
	return Coordinate{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// Less orders coordinates row-major. Used as the last tie-breaker in frontiers.
func (c Coordinate) Less(o Coordinate) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// Offsets4 lists the orthogonal moves in expansion order: up, down, left, right.
var Offsets4 = [4]Coordinate{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Adjacent reports whether a and b are orthogonal neighbours.
func Adjacent(a, b Coordinate) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// ValidateSize returns ErrInvalidGridSize (with the supported range) when rows or
// cols fall outside the supported dimensions.
func ValidateSize(rows, cols int) error {
	if rows < MinRows || rows > MaxRows || cols < MinCols || cols > MaxCols {
		return fmt.Errorf("%w: %d×%d, rows/cols should be %d–%d / %d–%d",
			ErrInvalidGridSize, rows, cols, MinRows, MaxRows, MinCols, MaxCols)
	}
	return nil
}
