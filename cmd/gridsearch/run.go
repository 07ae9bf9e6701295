package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gridsearch/bfs"
	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/logging"
	"github.com/katalvlaran/gridsearch/replan"
	"github.com/katalvlaran/gridsearch/search"
)

type runFlags struct {
	rows, cols int
	seed       int64
	strategy   string
	heuristic  string
	dynamic    bool
	maxSteps   int
	printGrid  bool
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one search headless and print its metrics",
		Long: `Builds a random maze, runs the configured search to completion and prints
its metrics next to the BFS-optimal path length.

With --dynamic, obstacles are injected and replans fire in virtual time, so the
run takes no longer than the computation itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyRunFlags(cmd, a, f)
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return runHeadless(cmd.Context(), cmd.OutOrStdout(), a, f)
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&f.rows, "rows", 0, "grid rows (8-80)")
	fl.IntVar(&f.cols, "cols", 0, "grid columns (8-120)")
	fl.Int64Var(&f.seed, "seed", 0, "random seed; 0 picks one from the clock")
	fl.StringVar(&f.strategy, "strategy", "", "A* or Greedy")
	fl.StringVar(&f.heuristic, "heuristic", "", "Manhattan or Euclidean")
	fl.BoolVar(&f.dynamic, "dynamic", false, "inject obstacles and replan while searching")
	fl.IntVar(&f.maxSteps, "max-steps", 1_000_000, "give up after this many steps")
	fl.BoolVar(&f.printGrid, "print", false, "print the final grid with the path")

	return cmd
}

// applyRunFlags copies explicitly set flags over the loaded config.
func applyRunFlags(cmd *cobra.Command, a *app, f runFlags) {
	fl := cmd.Flags()
	if fl.Changed("rows") {
		a.cfg.Grid.Rows = f.rows
	}
	if fl.Changed("cols") {
		a.cfg.Grid.Cols = f.cols
	}
	if fl.Changed("seed") {
		a.cfg.Grid.Seed = f.seed
	}
	if fl.Changed("strategy") {
		a.cfg.Search.Strategy = f.strategy
	}
	if fl.Changed("heuristic") {
		a.cfg.Search.Heuristic = f.heuristic
	}
	if fl.Changed("dynamic") {
		a.cfg.Dynamic.Enabled = f.dynamic
	}
}

func runHeadless(ctx context.Context, out io.Writer, a *app, f runFlags) error {
	log, err := logging.New(a.cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	rng := a.seededRand()
	maze, err := a.newMaze(rng)
	if err != nil {
		return err
	}
	c, reg, err := a.newCoordinator(maze, rng, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	if a.cfg.Metrics.Addr != "" {
		serveMetrics(gctx, g, a.cfg.Metrics.Addr, reg, log)
	}

	var (
		final   replan.Snapshot
		limited bool
	)
	g.Go(func() error {
		defer cancel()
		if err := c.Start(); err != nil {
			return err
		}
		opts := a.loopOptions()
		opts.MaxSteps = f.maxSteps
		snap, err := c.RunVirtual(gctx, time.Now(), opts)
		final = snap
		switch {
		case errors.Is(err, replan.ErrStepLimit):
			limited = true
			return nil
		case errors.Is(err, context.Canceled):
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	frame := c.Frame()
	report(out, final, frame)
	if limited {
		fmt.Fprintf(out, "stopped after %d steps with the search unfinished\n", f.maxSteps)
	}
	if f.printGrid {
		fmt.Fprintln(out)
		fmt.Fprint(out, overlay(frame.Grid, frame.Path))
	}

	return nil
}

// report prints the outcome of a run.
func report(w io.Writer, s replan.Snapshot, f replan.Frame) {
	fmt.Fprintf(w, "strategy:       %s\n", s.Strategy)
	fmt.Fprintf(w, "heuristic:      %s\n", s.Heuristic)
	fmt.Fprintf(w, "grid:           %dx%d, %d obstacles, %d free regions\n",
		f.Grid.Rows(), f.Grid.Cols(), s.Obstacles, len(f.Grid.Components()))

	status := "not started"
	if s.Outcome != nil {
		status = s.Outcome.Status.String()
	}
	fmt.Fprintf(w, "status:         %s\n", status)
	fmt.Fprintf(w, "nodes expanded: %d\n", s.Metrics.NodesExpanded)
	if s.Outcome != nil && s.Outcome.Status == search.Succeeded {
		fmt.Fprintf(w, "path length:    %d\n", s.Metrics.PathLength)
	}
	fmt.Fprintf(w, "search time:    %s\n", s.Metrics.Elapsed)
	fmt.Fprintf(w, "replans:        %d\n", s.Replans)

	if optimal, ok := bfs.ShortestLength(f.Grid, f.Grid.Start(), f.Grid.Goal()); ok {
		fmt.Fprintf(w, "bfs optimal:    %d\n", optimal)
	} else {
		fmt.Fprintf(w, "bfs optimal:    unreachable\n")
	}
}

// overlay renders g as ASCII with path cells other than the endpoints as '*'.
func overlay(g *grid.Grid, path search.Path) string {
	rows := strings.Split(strings.TrimRight(g.String(), "\n"), "\n")
	cells := make([][]rune, len(rows))
	for i, r := range rows {
		cells[i] = []rune(r)
	}
	for _, at := range path {
		if at == g.Start() || at == g.Goal() {
			continue
		}
		cells[at.Row][at.Col] = '*'
	}

	var b strings.Builder
	for _, r := range cells {
		b.WriteString(string(r))
		b.WriteByte('\n')
	}
	return b.String()
}
