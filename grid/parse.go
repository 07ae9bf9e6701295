package grid

import (
	"fmt"
	"strings"
)

// ASCII cell runes used by Parse and String.
const (
	RuneFree     = '.'
	RuneObstacle = '#'
	RuneStart    = 'S'
	RuneGoal     = 'G'
)

// Parse builds a grid from ASCII rows, one line per row:
//
//	S..#.
//	.#.#.
//	...#G
//
// '.' is Free, '#' is Obstacle, 'S' and 'G' mark the (Free) endpoints.
// Surrounding blank lines and per-line indentation are ignored. The supported
// size range of New is not enforced, so tiny fixtures are allowed.
//
// Returns ErrEmptyGrid, ErrNonRectangular, ErrBadCell, or ErrMissingEndpoint.
func Parse(s string) (*Grid, error) {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(lines), len([]rune(lines[0]))

	var starts, goals []Coordinate
	var walls []Coordinate
	for r, line := range lines {
		runes := []rune(line)
		if len(runes) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, r, len(runes), cols)
		}
		for c, ch := range runes {
			switch ch {
			case RuneFree:
			case RuneObstacle:
				walls = append(walls, At(r, c))
			case RuneStart:
				starts = append(starts, At(r, c))
			case RuneGoal:
				goals = append(goals, At(r, c))
			default:
				return nil, fmt.Errorf("%w: %q at %s", ErrBadCell, ch, At(r, c))
			}
		}
	}
	if len(starts) != 1 || len(goals) != 1 {
		return nil, fmt.Errorf("%w: found %d start(s), %d goal(s)", ErrMissingEndpoint, len(starts), len(goals))
	}

	g, err := build(rows, cols, starts[0], goals[0])
	if err != nil {
		return nil, err
	}
	for _, w := range walls {
		g.SetObstacle(w, true)
	}
	g.version = 0
	return g, nil
}

// MustParse is like Parse but panics on error. Intended for fixtures.
func MustParse(s string) *Grid {
	g, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return g
}

// String renders g in the format accepted by Parse, rows separated by '\n'.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			at := At(r, c)
			switch {
			case at == g.start:
				b.WriteRune(RuneStart)
			case at == g.goal:
				b.WriteRune(RuneGoal)
			case g.cells[g.index(at)] == Obstacle:
				b.WriteRune(RuneObstacle)
			default:
				b.WriteRune(RuneFree)
			}
		}
	}
	return b.String()
}
