package main

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gridsearch/logging"
	"github.com/katalvlaran/gridsearch/replan"
)

const frameInterval = 33 * time.Millisecond

var errQuit = errors.New("quit")

func newTUICmd(a *app) *cobra.Command {
	var (
		logFile string
		watch   bool
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := zap.NewNop()
			if logFile != "" {
				l, err := logging.NewFile(a.cfg.Logging, logFile)
				if err != nil {
					return err
				}
				log = l
			}
			defer func() { _ = log.Sync() }()

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			screen.EnableMouse()

			return runTUI(cmd.Context(), screen, a, log, watch)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "write JSON logs here; the terminal is owned by the screen")
	cmd.Flags().BoolVar(&watch, "watch", false, "apply strategy, heuristic and dynamic changes when the config file is saved")

	return cmd
}

// session is the UI side of the interactive host.
type session struct {
	a      *app
	screen tcell.Screen
	c      *replan.Coordinator
	rng    *rand.Rand
	log    *zap.Logger

	msg     string
	pressed bool // primary button held
}

// runTUI owns screen until it returns and finalises it on the way out.
func runTUI(ctx context.Context, screen tcell.Screen, a *app, log *zap.Logger, watch bool) error {
	rng := a.seededRand()
	maze, err := a.newMaze(rng)
	if err != nil {
		screen.Fini()
		return err
	}
	c, reg, err := a.newCoordinator(maze, rng, log)
	if err != nil {
		screen.Fini()
		return err
	}

	s := &session{a: a, screen: screen, c: c, rng: rng, log: log}
	events := make(chan tcell.Event, 64)

	g, gctx := errgroup.WithContext(ctx)
	if a.cfg.Metrics.Addr != "" {
		serveMetrics(gctx, g, a.cfg.Metrics.Addr, reg, log)
	}
	g.Go(func() error {
		return c.Loop(gctx, a.loopOptions())
	})
	if watch {
		g.Go(func() error {
			return watchConfig(gctx, a.cfgPath, c, log)
		})
	}
	g.Go(func() error {
		// PollEvent returns nil once the screen is finalised.
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		defer screen.Fini()
		return s.run(gctx, events)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

// run redraws on a fixed cadence and applies input until quit or ctx is done.
func (s *session) run(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	draw(s.screen, s.c.Frame(), s.msg)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if quit := s.handle(ev); quit {
				return errQuit
			}
		case <-ticker.C:
			draw(s.screen, s.c.Frame(), s.msg)
		}
	}
}

// handle applies one input event and reports whether the user asked to quit.
func (s *session) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.key(ev)
	case *tcell.EventMouse:
		s.mouse(ev)
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return false
}

func (s *session) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	s.msg = ""
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		s.report(s.c.Start())
	case 'p':
		_, err := s.c.TogglePause()
		s.report(err)
	case 'c':
		s.report(s.c.ClearPath())
	case 'n':
		maze, err := s.a.newMaze(s.rng)
		if err == nil {
			err = s.c.NewMaze(maze)
		}
		s.report(err)
	case 'd':
		snap := s.c.Snapshot()
		s.c.SetDynamic(!snap.Dynamic)
	case 'a':
		if err := s.c.SetStrategy(s.c.Snapshot().Strategy.Next()); err != nil {
			s.report(err)
			break
		}
		s.msg = "strategy applies to the next search"
	case 'h':
		if err := s.c.SetHeuristic(s.c.Snapshot().Heuristic.Next()); err != nil {
			s.report(err)
			break
		}
		s.msg = "heuristic applies to the next search"
	}
	return false
}

// mouse toggles a wall on each primary-button press.
func (s *session) mouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	defer func() { s.pressed = down }()
	if !down || s.pressed {
		return
	}

	s.msg = ""
	x, y := ev.Position()
	_, err := s.c.ToggleCell(cellAt(x, y))
	s.report(err)
}

func (s *session) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, replan.ErrBusy):
		s.msg = "search in progress: let it finish before editing"
	case errors.Is(err, replan.ErrNotRunning):
		s.msg = "no search running"
	default:
		s.msg = err.Error()
		s.log.Warn("command failed", zap.Error(err))
	}
}
