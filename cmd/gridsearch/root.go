package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/gridsearch/config"
	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/replan"
	"github.com/katalvlaran/gridsearch/telemetry"
)

// app carries state shared by every subcommand.
type app struct {
	cfgPath     string
	logLevel    string
	metricsAddr string
	solvable    bool

	cfg *config.Config
}

// maxMazeAttempts bounds redraws for --solvable.
const maxMazeAttempts = 100

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "gridsearch",
		Short:         "Incremental A* and Greedy best-first search on a changing grid",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "gridsearch.yaml", "path to the YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	root.PersistentFlags().BoolVar(&a.solvable, "solvable", false, "redraw random mazes until start and goal are connected")

	root.AddCommand(newRunCmd(a), newTUICmd(a), newConfigCmd(a))

	return root
}

// load reads the config file and applies global flag overrides.
func (a *app) load() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.metricsAddr != "" {
		cfg.Metrics.Addr = a.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	return nil
}

// seededRand returns the configured source, or a time-seeded one for seed 0.
func (a *app) seededRand() *rand.Rand {
	seed := a.cfg.Grid.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// newMaze builds a random layout from the grid settings. With --solvable it
// keeps the first layout whose endpoints are connected.
func (a *app) newMaze(rng *rand.Rand) (*grid.Grid, error) {
	gc := a.cfg.Grid
	for attempt := 1; ; attempt++ {
		g, err := grid.Random(gc.Rows, gc.Cols, gc.ObstacleProbability, rng)
		if err != nil {
			return nil, err
		}
		if !a.solvable || g.Connected(g.Start(), g.Goal()) {
			return g, nil
		}
		if attempt == maxMazeAttempts {
			return nil, fmt.Errorf("no solvable %dx%d maze in %d attempts at obstacle probability %v",
				gc.Rows, gc.Cols, maxMazeAttempts, gc.ObstacleProbability)
		}
	}
}

// newCoordinator wires a coordinator to the config, logger and a fresh metrics
// registry.
func (a *app) newCoordinator(g *grid.Grid, rng *rand.Rand, log *zap.Logger) (*replan.Coordinator, *prometheus.Registry, error) {
	strategy, err := a.cfg.Strategy()
	if err != nil {
		return nil, nil, err
	}
	kind, err := a.cfg.Heuristic()
	if err != nil {
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	collectors, err := telemetry.New(reg)
	if err != nil {
		return nil, nil, err
	}

	d := a.cfg.Dynamic
	c, err := replan.New(g,
		replan.WithStrategy(strategy),
		replan.WithHeuristic(kind),
		replan.WithDynamic(d.Enabled),
		replan.WithSpawnProbability(d.SpawnProbability),
		replan.WithSettleDelay(d.SettleDelay),
		replan.WithInjectWhilePaused(d.InjectWhilePaused),
		replan.WithLogger(log),
		replan.WithCollectors(collectors),
		replan.WithRand(rng),
	)
	if err != nil {
		return nil, nil, err
	}

	return c, reg, nil
}

func (a *app) loopOptions() replan.LoopOptions {
	return replan.LoopOptions{
		StepInterval:   a.cfg.Pacing.StepInterval,
		InjectInterval: a.cfg.Dynamic.InjectInterval,
	}
}
