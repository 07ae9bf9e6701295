package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/gridsearch/config"
	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/replan"
	"github.com/katalvlaran/gridsearch/search"
)

const tuiMaze = `
	S.......
	........
	........
	........
	........
	........
	........
	.......G`

func newSession(t *testing.T) *session {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 20)

	cfg := config.Default()
	cfg.Grid.Rows, cfg.Grid.Cols, cfg.Grid.Seed = 8, 8, 1
	a := &app{cfg: cfg}

	rng := a.seededRand()
	c, _, err := a.newCoordinator(grid.MustParse(tuiMaze), rng, zap.NewNop())
	require.NoError(t, err)

	return &session{a: a, screen: screen, c: c, rng: rng, log: zap.NewNop()}
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func styleAt(t *testing.T, s tcell.Screen, at grid.Coordinate) tcell.Style {
	t.Helper()
	_, _, st, _ := s.GetContent(originX+at.Col*cellWidth, originY+at.Row)
	return st
}

func TestSession_Keys(t *testing.T) {
	s := newSession(t)

	assert.False(t, s.handle(keyRune(' ')))
	assert.Equal(t, replan.Running, s.c.Snapshot().State)

	s.handle(keyRune('p'))
	assert.Equal(t, replan.Paused, s.c.Snapshot().State)

	s.handle(keyRune('c'))
	assert.Contains(t, s.msg, "search in progress")

	s.handle(keyRune('p'))
	s.handle(keyRune('a'))
	s.handle(keyRune('h'))
	snap := s.c.Snapshot()
	assert.Equal(t, search.Greedy, snap.Strategy)
	assert.Equal(t, "Euclidean", snap.Heuristic.String())

	s.handle(keyRune('d'))
	assert.True(t, s.c.Snapshot().Dynamic)

	s.handle(keyRune('n'))
	snap = s.c.Snapshot()
	assert.Equal(t, replan.Idle, snap.State)

	assert.True(t, s.handle(keyRune('q')))
	assert.True(t, s.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestSession_MouseTogglesOnPress(t *testing.T) {
	s := newSession(t)
	at := grid.At(3, 4)
	x, y := originX+at.Col*cellWidth+1, originY+at.Row

	s.handle(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	s.handle(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)) // held
	assert.Equal(t, grid.Obstacle, s.c.Frame().Grid.Cell(at))

	s.handle(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	s.handle(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	assert.Equal(t, grid.Free, s.c.Frame().Grid.Cell(at))

	require.NoError(t, s.c.Start())
	s.handle(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	s.handle(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	assert.Contains(t, s.msg, "search in progress")
}

func TestDraw_Layers(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.c.Start())
	for {
		if _, err := s.c.Step(); err != nil {
			break
		}
	}
	f := s.c.Frame()
	require.NotNil(t, f.Outcome)
	require.True(t, f.Outcome.Found())

	draw(s.screen, f, "hello")

	assert.Equal(t, styleStart, styleAt(t, s.screen, f.Grid.Start()))
	assert.Equal(t, styleGoal, styleAt(t, s.screen, f.Grid.Goal()))
	assert.Equal(t, stylePath, styleAt(t, s.screen, f.Path[1]))

	onPath := make(map[grid.Coordinate]bool)
	for _, at := range f.Path {
		onPath[at] = true
	}
	for _, at := range f.Closed {
		if !onPath[at] {
			assert.Equal(t, styleClosed, styleAt(t, s.screen, at))
			break
		}
	}
}

func TestCellAt(t *testing.T) {
	cases := []struct {
		x, y int
		want grid.Coordinate
	}{
		{originX, originY, grid.At(0, 0)},
		{originX + 1, originY, grid.At(0, 0)},
		{originX + 2, originY + 3, grid.At(3, 1)},
		{0, originY, grid.At(-1, -1)},
		{originX, 0, grid.At(-1, -1)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cellAt(tc.x, tc.y))
	}
}
