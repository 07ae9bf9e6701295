package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/replan"
)

// Screen layout: two header lines, the grid with two columns per cell, then
// status lines.
const (
	originX   = 1
	originY   = 2
	cellWidth = 2
)

var (
	styleDefault  = tcell.StyleDefault
	styleFree     = tcell.StyleDefault.Background(tcell.NewRGBColor(40, 44, 52))
	styleObstacle = tcell.StyleDefault.Background(tcell.NewRGBColor(200, 200, 200))
	styleStart    = tcell.StyleDefault.Background(tcell.ColorGreen)
	styleGoal     = tcell.StyleDefault.Background(tcell.ColorRed)
	styleClosed   = tcell.StyleDefault.Background(tcell.NewRGBColor(60, 90, 160))
	styleFrontier = tcell.StyleDefault.Background(tcell.NewRGBColor(170, 150, 60))
	stylePath     = tcell.StyleDefault.Background(tcell.ColorFuchsia)
	styleCurrent  = tcell.StyleDefault.Background(tcell.ColorOrange)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleHint     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

const keyHelp = "space start/replan  p pause  c clear  n new maze  d dynamic  a strategy  h heuristic  q quit  click: wall"

// draw renders f and a one-line message.
func draw(s tcell.Screen, f replan.Frame, msg string) {
	s.Clear()
	drawText(s, 0, 0, styleTitle, "gridsearch")
	drawText(s, 12, 0, styleHint, keyHelp)

	styles := cellStyles(f)
	for r := 0; r < f.Grid.Rows(); r++ {
		for c := 0; c < f.Grid.Cols(); c++ {
			st := styles(grid.At(r, c))
			x, y := originX+c*cellWidth, originY+r
			for dx := 0; dx < cellWidth; dx++ {
				s.SetContent(x+dx, y, ' ', nil, st)
			}
		}
	}

	y := originY + f.Grid.Rows() + 1
	for _, line := range statusLines(f.Snapshot) {
		drawText(s, 0, y, styleDefault, line)
		y++
	}
	if msg != "" {
		drawText(s, 0, y, styleWarn, msg)
	}

	s.Show()
}

// cellStyles returns the style lookup for one frame. Later layers win:
// closed, frontier, path, current, endpoints.
func cellStyles(f replan.Frame) func(grid.Coordinate) tcell.Style {
	layer := make(map[grid.Coordinate]tcell.Style, len(f.Closed)+len(f.Frontier)+len(f.Path))
	for _, at := range f.Closed {
		layer[at] = styleClosed
	}
	for _, at := range f.Frontier {
		layer[at] = styleFrontier
	}
	for _, at := range f.Path {
		layer[at] = stylePath
	}
	if f.HasCurrent && f.Running {
		layer[f.Current] = styleCurrent
	}

	return func(at grid.Coordinate) tcell.Style {
		switch {
		case at == f.Grid.Start():
			return styleStart
		case at == f.Grid.Goal():
			return styleGoal
		case f.Grid.Cell(at) == grid.Obstacle:
			return styleObstacle
		}
		if st, ok := layer[at]; ok {
			return st
		}
		return styleFree
	}
}

func statusLines(s replan.Snapshot) []string {
	dynamic := "off"
	if s.Dynamic {
		dynamic = "on"
	}
	state := s.State.String()
	if s.Outcome != nil && s.State == replan.Completed {
		state = s.Outcome.Status.String()
	}
	if s.ReplanPending {
		state += " (replan pending)"
	}

	lines := []string{
		fmt.Sprintf("strategy: %-7s heuristic: %-10s dynamic: %-4s state: %s",
			s.Strategy, s.Heuristic, dynamic, state),
		fmt.Sprintf("nodes expanded: %-7d path length: %-5s time: %-12s replans: %-4d obstacles: %d",
			s.Metrics.NodesExpanded, pathLength(s), s.Metrics.Elapsed, s.Replans, s.Obstacles),
	}
	if s.Err != nil {
		lines = append(lines, "error: "+s.Err.Error())
	}
	return lines
}

func pathLength(s replan.Snapshot) string {
	if s.Outcome == nil || !s.Outcome.Found() {
		return "-"
	}
	return fmt.Sprint(s.Metrics.PathLength)
}

// cellAt maps a screen position to a grid coordinate.
func cellAt(x, y int) grid.Coordinate {
	if x < originX || y < originY {
		return grid.At(-1, -1)
	}
	return grid.At(y-originY, (x-originX)/cellWidth)
}

func drawText(s tcell.Screen, x, y int, st tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}
