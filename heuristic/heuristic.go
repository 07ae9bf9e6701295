// Package heuristic provides distance estimates between grid coordinates for
// informed search.
//
// Both estimates are pure, stateless and symmetric:
//
//   - Manhattan: |Δrow| + |Δcol|. Admissible and consistent for 4-directional
//     unit-cost movement, so A* with it returns shortest paths.
//   - Euclidean: sqrt(Δrow² + Δcol²). Never exceeds Manhattan, so it is
//     admissible too; it mostly serves as a weaker comparison estimate.
package heuristic

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/gridsearch/grid"
)

// ErrUnknownKind is returned by ParseKind for unrecognised names.
var ErrUnknownKind = errors.New("heuristic: unknown kind")

// Func estimates the remaining cost from a to b.
type Func func(a, b grid.Coordinate) float64

// Manhattan returns |Δrow| + |Δcol|.
func Manhattan(a, b grid.Coordinate) float64 {
	dr, dc := absDelta(a, b)
	return float64(dr + dc)
}

// Euclidean returns the straight-line distance between a and b.
func Euclidean(a, b grid.Coordinate) float64 {
	dr, dc := absDelta(a, b)
	return math.Hypot(float64(dr), float64(dc))
}

func absDelta(a, b grid.Coordinate) (int, int) {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr, dc
}

// Kind selects a heuristic by name in configuration.
type Kind int

const (
	// KindManhattan selects Manhattan.
	KindManhattan Kind = iota
	// KindEuclidean selects Euclidean.
	KindEuclidean
)

// Kinds lists every supported Kind in display order.
var Kinds = []Kind{KindManhattan, KindEuclidean}

// Func returns the estimate function for k. Unknown kinds fall back to Manhattan.
func (k Kind) Func() Func {
	if k == KindEuclidean {
		return Euclidean
	}
	return Manhattan
}

// String returns "Manhattan" or "Euclidean".
func (k Kind) String() string {
	switch k {
	case KindManhattan:
		return "Manhattan"
	case KindEuclidean:
		return "Euclidean"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Next cycles to the following Kind, wrapping around.
func (k Kind) Next() Kind {
	return Kinds[(int(k)+1)%len(Kinds)]
}

// ParseKind parses a case-insensitive heuristic name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manhattan":
		return KindManhattan, nil
	case "euclidean":
		return KindEuclidean, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k != KindManhattan && k != KindEuclidean {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
