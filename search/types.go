package search

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/gridsearch/grid"
)

// Sentinel errors returned by the search engine.
var (
	// ErrInvalidEndpoint indicates that start or goal is out of bounds or blocked.
	ErrInvalidEndpoint = errors.New("search: invalid endpoint")

	// ErrNoPathExists indicates that the frontier emptied before the goal was reached.
	// It is a normal terminal outcome, not a fault.
	ErrNoPathExists = errors.New("search: no path exists")

	// ErrCancelled indicates that the search was cancelled before finishing.
	ErrCancelled = errors.New("search: cancelled")

	// ErrBrokenChain indicates a predecessor chain that does not reach start.
	// This can only happen through internal state corruption.
	ErrBrokenChain = errors.New("search: broken predecessor chain")

	// ErrNilTerrain indicates a nil Terrain argument.
	ErrNilTerrain = errors.New("search: terrain is nil")

	// ErrNilHeuristic indicates a nil heuristic function.
	ErrNilHeuristic = errors.New("search: heuristic is nil")

	// ErrUnknownStrategy indicates an unsupported Strategy value or name.
	ErrUnknownStrategy = errors.New("search: unknown strategy")
)

// Terrain is the read-only view of a grid the engine needs.
// *grid.Grid satisfies it.
type Terrain interface {
	// IsFree reports whether c is in bounds and traversable.
	IsFree(c grid.Coordinate) bool
}

// Strategy selects how frontier priorities are computed.
type Strategy int

const (
	// AStar orders the frontier by f = g + h.
	AStar Strategy = iota
	// Greedy orders the frontier by h alone.
	Greedy
)

// Strategies lists every supported Strategy in display order.
var Strategies = []Strategy{AStar, Greedy}

// String returns "A*" or "Greedy".
func (s Strategy) String() string {
	switch s {
	case AStar:
		return "A*"
	case Greedy:
		return "Greedy"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Valid reports whether s is a supported strategy.
func (s Strategy) Valid() bool {
	return s == AStar || s == Greedy
}

// Next cycles to the following Strategy, wrapping around.
func (s Strategy) Next() Strategy {
	return Strategies[(int(s)+1)%len(Strategies)]
}

// ParseStrategy parses "A*", "astar", "a-star" or "greedy" (case-insensitive).
func ParseStrategy(str string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "a*", "astar", "a-star":
		return AStar, nil
	case "greedy", "gbfs":
		return Greedy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, str)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Status is the lifecycle state reported by Step.
type Status int

const (
	// InProgress means the search can still make progress.
	InProgress Status = iota
	// Succeeded means the goal was reached and Outcome.Path is set.
	Succeeded
	// Failed means the search ended without a path; see Outcome.Reason.
	Failed
	// Cancelled means the search was stopped by Cancel or its context.
	Cancelled
)

// String returns a lower-case status name.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Terminal reports whether s is a final state.
func (s Status) Terminal() bool {
	return s != InProgress
}

// Path is an ordered sequence of coordinates from start to goal inclusive.
type Path []grid.Coordinate

// Len returns the number of edges in the path (len-1), or 0 for an empty path.
func (p Path) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Contains reports whether c lies on the path.
func (p Path) Contains(c grid.Coordinate) bool {
	for _, q := range p {
		if q == c {
			return true
		}
	}
	return false
}

// Validate checks that p runs from start to goal through orthogonally adjacent
// free cells of t. It returns a descriptive error for the first violation.
func (p Path) Validate(t Terrain, start, goal grid.Coordinate) error {
	if len(p) == 0 {
		return errors.New("search: empty path")
	}
	if p[0] != start || p[len(p)-1] != goal {
		return fmt.Errorf("search: path runs %s→%s, want %s→%s", p[0], p[len(p)-1], start, goal)
	}
	for i, c := range p {
		if !t.IsFree(c) {
			return fmt.Errorf("search: path cell %d %s is not free", i, c)
		}
		if i > 0 && !grid.Adjacent(p[i-1], c) {
			return fmt.Errorf("search: path cells %s and %s are not adjacent", p[i-1], c)
		}
	}
	return nil
}

// Metrics summarises a search. NodesExpanded is live while the search runs;
// PathLength is only meaningful on a Succeeded outcome. Elapsed is the time spent
// inside Step calls, so pauses between steps are not counted.
type Metrics struct {
	NodesExpanded int
	PathLength    int
	Elapsed       time.Duration
}

// Outcome is the result of a single Step.
//
// Current is the coordinate expanded by this step and is valid only when
// Expanded is true. Path is set only when Status is Succeeded. Reason wraps
// ErrNoPathExists for Failed outcomes and ErrCancelled for Cancelled ones.
type Outcome struct {
	Status   Status
	Current  grid.Coordinate
	Expanded bool
	Path     Path
	Metrics  Metrics
	Reason   error
}

// Found reports whether the outcome carries a path.
func (o Outcome) Found() bool {
	return o.Status == Succeeded
}

// Options configures an Engine.
type Options struct {
	// OnExpand is called after every node expansion with the expanded cell and
	// the running expansion count. It must not mutate the terrain.
	OnExpand func(c grid.Coordinate, expanded int)

	// Clock supplies timestamps for Metrics.Elapsed.
	Clock func() time.Time
}

// Option represents a functional option for configuring an Engine.
type Option func(*Options)

// WithOnExpand registers a per-expansion notification hook.
func WithOnExpand(fn func(c grid.Coordinate, expanded int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithClock overrides the time source used for Metrics.Elapsed.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Clock = now
		}
	}
}

// DefaultOptions returns Options with a no-op OnExpand hook and time.Now as clock.
func DefaultOptions() Options {
	return Options{
		OnExpand: func(grid.Coordinate, int) {},
		Clock:    time.Now,
	}
}
