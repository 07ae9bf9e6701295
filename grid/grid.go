package grid

import (
	"fmt"
)

// Grid is a rectangular obstacle map with protected start and goal cells.
// Cells are stored row-major. A Grid is not safe for concurrent mutation; callers
// that share one between goroutines must serialise access (see replan.Coordinator).
type Grid struct {
	rows, cols  int
	cells       []Cell
	start, goal Coordinate
	obstacles   int
	version     uint64
}

// New constructs an all-Free grid of rows×cols with the given endpoints.
// Returns ErrInvalidGridSize if the size is outside the supported range,
// ErrOutOfBounds if an endpoint lies outside the grid, and ErrSameEndpoints if
// start equals goal.
// Complexity: O(R×C) time and memory.
func New(rows, cols int, start, goal Coordinate) (*Grid, error) {
	if err := ValidateSize(rows, cols); err != nil {
		return nil, err
	}
	return build(rows, cols, start, goal)
}

// build creates a grid without enforcing the supported size range.
func build(rows, cols int, start, goal Coordinate) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
		start: start,
		goal:  goal,
	}
	if !g.InBounds(start) {
		return nil, fmt.Errorf("%w: start %s in %d×%d grid", ErrOutOfBounds, start, rows, cols)
	}
	if !g.InBounds(goal) {
		return nil, fmt.Errorf("%w: goal %s in %d×%d grid", ErrOutOfBounds, goal, rows, cols)
	}
	if start == goal {
		return nil, fmt.Errorf("%w: %s", ErrSameEndpoints, start)
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Start returns the protected start coordinate.
func (g *Grid) Start() Coordinate { return g.start }

// Goal returns the protected goal coordinate.
func (g *Grid) Goal() Coordinate { return g.goal }

// Version returns the mutation counter. It increases by one on every call that
// actually changes a cell and never decreases.
func (g *Grid) Version() uint64 { return g.version }

// ObstacleCount returns the number of Obstacle cells.
func (g *Grid) ObstacleCount() int { return g.obstacles }

// InBounds reports whether c lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// IsProtected reports whether c is the start or goal cell.
func (g *Grid) IsProtected(c Coordinate) bool {
	return c == g.start || c == g.goal
}

// Cell returns the state of c. Out-of-bounds coordinates read as Obstacle.
func (g *Grid) Cell(c Coordinate) Cell {
	if !g.InBounds(c) {
		return Obstacle
	}
	return g.cells[g.index(c)]
}

// IsFree reports whether c is in bounds and not an obstacle.
// Complexity: O(1).
func (g *Grid) IsFree(c Coordinate) bool {
	return g.InBounds(c) && g.cells[g.index(c)] == Free
}

// SetObstacle marks c as an obstacle (on=true) or clears it (on=false).
// It is a silent no-op for out-of-bounds coordinates and for the start and goal.
// Returns whether the cell changed.
func (g *Grid) SetObstacle(c Coordinate, on bool) bool {
	if !g.InBounds(c) || g.IsProtected(c) {
		return false
	}
	want := Free
	if on {
		want = Obstacle
	}
	i := g.index(c)
	if g.cells[i] == want {
		return false
	}
	g.cells[i] = want
	if on {
		g.obstacles++
	} else {
		g.obstacles--
	}
	g.version++
	return true
}

// Toggle flips c between Free and Obstacle, with the same protection rules as
// SetObstacle. Returns whether the cell changed.
func (g *Grid) Toggle(c Coordinate) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.SetObstacle(c, g.cells[g.index(c)] == Free)
}

// Neighbors4 returns the in-bounds Free orthogonal neighbours of c in Offsets4 order.
func (g *Grid) Neighbors4(c Coordinate) []Coordinate {
	out := make([]Coordinate, 0, len(Offsets4))
	for _, d := range Offsets4 {
		n := c.Add(d)
		if g.IsFree(n) {
			out = append(out, n)
		}
	}
	return out
}

// FreeCells calls fn for every Free cell in row-major order, including the
// endpoints. Iteration stops early when fn returns false.
func (g *Grid) FreeCells(fn func(c Coordinate) bool) {
	for i, cell := range g.cells {
		if cell != Free {
			continue
		}
		if !fn(g.Coordinate(i)) {
			return
		}
	}
}

// Clone returns a deep copy of g, including its version.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = make([]Cell, len(g.cells))
	copy(c.cells, g.cells)
	return &c
}

// index maps c to a row-major index: Row*cols + Col.
func (g *Grid) index(c Coordinate) int {
	return c.Row*g.cols + c.Col
}

// Coordinate converts a row-major index back to a Coordinate.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Coordinate {
	return Coordinate{Row: idx / g.cols, Col: idx % g.cols}
}
