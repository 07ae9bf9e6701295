package replan

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/heuristic"
	"github.com/katalvlaran/gridsearch/inject"
	"github.com/katalvlaran/gridsearch/search"
	"github.com/katalvlaran/gridsearch/telemetry"
)

var (
	// ErrBusy is returned for edits that are refused while a search is active.
	ErrBusy = errors.New("replan: search in progress")

	// ErrNotRunning is returned by Step and TogglePause without an active search.
	ErrNotRunning = errors.New("replan: no search running")

	// ErrNilGrid is returned when a nil grid is supplied.
	ErrNilGrid = errors.New("replan: grid is nil")
)

// Coordinator is the application state of an interactive search session.
type Coordinator struct {
	mu sync.Mutex

	g        *grid.Grid
	opts     Options
	injector *inject.Injector
	log      *zap.Logger

	engine   *search.Engine
	state    State
	searchID string
	live     search.Metrics
	current  grid.Coordinate
	expanded bool // current is valid
	outcome  *search.Outcome
	err      error // last engine defect

	pending  bool
	replanAt time.Time
	replans  int
}

// Snapshot is a consistent read of the coordinator.
type Snapshot struct {
	State     State
	Running   bool // a search is active, paused or not
	Paused    bool
	SearchID  string
	Strategy  search.Strategy
	Heuristic heuristic.Kind
	Dynamic   bool

	// Metrics are live while a search runs and final once it completes.
	Metrics search.Metrics
	// Current is the last expanded cell, valid when HasCurrent is true.
	Current    grid.Coordinate
	HasCurrent bool

	// Outcome is the last terminal outcome, or nil.
	Outcome *search.Outcome
	Err     error

	ReplanPending bool
	ReplanAt      time.Time
	Replans       int
	GridVersion   uint64
	Obstacles     int
}

// Frame is a Snapshot plus everything a renderer needs to draw the grid.
type Frame struct {
	Snapshot
	Grid     *grid.Grid // private copy
	Closed   []grid.Coordinate
	Frontier []grid.Coordinate
	Path     search.Path
}

// New returns an Idle coordinator over g.
func New(g *grid.Grid, opts ...Option) (*Coordinator, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.Strategy.Valid() {
		return nil, fmt.Errorf("%w: %d", search.ErrUnknownStrategy, int(cfg.Strategy))
	}
	in, err := inject.New(cfg.SpawnProbability, cfg.Rand)
	if err != nil {
		return nil, err
	}

	return &Coordinator{
		g:        g,
		opts:     cfg,
		injector: in,
		log:      cfg.Logger,
	}, nil
}

// Start begins a search from Idle or Completed. While a search is active it
// replans instead.
func (c *Coordinator) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Active() {
		return c.replan(telemetry.ReasonManual)
	}
	return c.startEngine()
}

// Replan discards any current search state and starts a fresh search from the
// current grid, whatever the state.
func (c *Coordinator) Replan() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.replan(telemetry.ReasonManual)
}

// TogglePause switches between Running and Paused and reports whether the
// coordinator is now paused.
func (c *Coordinator) TogglePause() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Running:
		c.state = Paused
	case Paused:
		c.state = Running
	default:
		return false, ErrNotRunning
	}
	c.log.Debug("pause toggled", zap.String("search_id", c.searchID), zap.Stringer("state", c.state))

	return c.state == Paused, nil
}

// Step advances the engine by one expansion. It returns ErrNotRunning without
// effect unless the state is Running. A broken predecessor chain completes the
// search as Failed and is returned as the error.
func (c *Coordinator) Step() (search.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running {
		return search.Outcome{}, ErrNotRunning
	}

	out, err := c.engine.Step()
	c.live = out.Metrics
	if out.Expanded {
		c.current, c.expanded = out.Current, true
	}
	if err != nil {
		c.err = err
		c.log.Error("search failed", zap.String("search_id", c.searchID), zap.Error(err))
	}
	if out.Status.Terminal() {
		c.complete(out)
	}

	return out, err
}

// Tick fires the scheduled replan once now reaches its deadline and reports
// whether it fired.
func (c *Coordinator) Tick(now time.Time) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.pending || now.Before(c.replanAt) {
		return false, nil
	}
	c.log.Info("replan fired", zap.String("search_id", c.searchID), zap.Time("deadline", c.replanAt))

	return true, c.replan(telemetry.ReasonObstacles)
}

// Inject runs one injection pass if dynamic mode is on and a search is Running,
// or Paused with injection while paused allowed. New obstacles schedule a replan
// at now plus the settle delay unless one is already pending. Returns the
// number of obstacles added.
func (c *Coordinator) Inject(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.opts.Dynamic {
		return 0
	}
	if c.state != Running && !(c.state == Paused && c.opts.InjectWhilePaused) {
		return 0
	}

	added := c.injector.Inject(c.g)
	if added == 0 {
		return 0
	}
	c.opts.Collectors.ObstaclesInjected(added)

	fields := []zap.Field{
		zap.String("search_id", c.searchID),
		zap.Int("added", added),
	}
	if !c.pending {
		c.pending = true
		c.replanAt = now.Add(c.opts.SettleDelay)
		c.log.Info("replan scheduled", append(fields, zap.Time("deadline", c.replanAt))...)
	} else {
		c.log.Debug("obstacles batched into pending replan", fields...)
	}

	return added
}

// ClearPath forgets the last outcome and metrics without touching the grid.
// Refused with ErrBusy while a search is active.
func (c *Coordinator) ClearPath() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Active() {
		return ErrBusy
	}
	c.resetSearch()
	c.state = Idle

	return nil
}

// NewMaze replaces the grid, aborting any search and any pending replan.
func (c *Coordinator) NewMaze(g *grid.Grid) error {
	if g == nil {
		return ErrNilGrid
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.abort()
	c.resetSearch()
	c.pending = false
	c.state = Idle
	c.g = g
	c.log.Info("new maze",
		zap.Int("rows", g.Rows()),
		zap.Int("cols", g.Cols()),
		zap.Int("obstacles", g.ObstacleCount()))

	return nil
}

// ToggleCell flips c between free and obstacle. Endpoints and out-of-bounds
// cells are left alone and report false. Refused with ErrBusy while a search
// is active.
func (c *Coordinator) ToggleCell(at grid.Coordinate) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Active() {
		return false, ErrBusy
	}

	return c.g.Toggle(at), nil
}

// SetStrategy selects the strategy for the next started search.
func (c *Coordinator) SetStrategy(s search.Strategy) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", search.ErrUnknownStrategy, int(s))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.opts.Strategy = s

	return nil
}

// SetHeuristic selects the heuristic for the next started search.
func (c *Coordinator) SetHeuristic(k heuristic.Kind) error {
	if _, err := k.MarshalText(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.opts.Heuristic = k

	return nil
}

// SetDynamic turns obstacle injection on or off. A replan already scheduled
// still fires.
func (c *Coordinator) SetDynamic(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.opts.Dynamic = on
}

// Snapshot returns the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot()
}

// Frame returns the current state with a copy of the grid and the engine's
// closed and frontier cells.
func (c *Coordinator) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := Frame{Snapshot: c.snapshot(), Grid: c.g.Clone()}
	if c.engine != nil {
		f.Closed = c.engine.ClosedCoordinates()
		f.Frontier = c.engine.FrontierCoordinates()
	}
	if f.Outcome != nil {
		f.Path = f.Outcome.Path
	}

	return f
}

func (c *Coordinator) snapshot() Snapshot {
	s := Snapshot{
		State:         c.state,
		Running:       c.state.Active(),
		Paused:        c.state == Paused,
		SearchID:      c.searchID,
		Strategy:      c.opts.Strategy,
		Heuristic:     c.opts.Heuristic,
		Dynamic:       c.opts.Dynamic,
		Metrics:       c.live,
		Current:       c.current,
		HasCurrent:    c.expanded,
		Err:           c.err,
		ReplanPending: c.pending,
		ReplanAt:      c.replanAt,
		Replans:       c.replans,
		GridVersion:   c.g.Version(),
		Obstacles:     c.g.ObstacleCount(),
	}
	if c.outcome != nil {
		out := *c.outcome
		out.Path = slices.Clone(out.Path)
		s.Outcome = &out
	}

	return s
}

// replan supersedes the current search with a fresh one.
func (c *Coordinator) replan(reason string) error {
	c.pending = false
	c.replans++
	c.opts.Collectors.Replanned(reason)
	if c.state.Active() {
		c.log.Info("search superseded",
			zap.String("search_id", c.searchID),
			zap.String("reason", reason),
			zap.Int("nodes_expanded", c.live.NodesExpanded))
	}
	c.abort()

	return c.startEngine()
}

// startEngine discards all previous search state and starts a new engine on
// the current grid. On error the coordinator is left Idle.
func (c *Coordinator) startEngine() error {
	c.resetSearch()
	c.state = Idle

	e, err := search.Start(
		c.g,
		c.g.Start(),
		c.g.Goal(),
		c.opts.Strategy,
		c.opts.Heuristic.Func(),
		search.WithClock(c.opts.Clock.Now),
	)
	if err != nil {
		c.log.Warn("search not started", zap.Error(err))
		return err
	}

	c.engine = e
	c.searchID = uuid.NewString()
	c.state = Running
	c.opts.Collectors.SearchStarted(c.opts.Strategy.String(), c.opts.Heuristic.String())
	c.log.Info("search started",
		zap.String("search_id", c.searchID),
		zap.Stringer("strategy", c.opts.Strategy),
		zap.Stringer("heuristic", c.opts.Heuristic),
		zap.Uint64("grid_version", c.g.Version()))

	return nil
}

// complete records a terminal outcome.
func (c *Coordinator) complete(out search.Outcome) {
	c.state = Completed
	c.outcome = &out
	c.live = out.Metrics
	c.opts.Collectors.SearchFinished(out.Status.String(), out.Metrics.NodesExpanded, out.Metrics.Elapsed)
	c.log.Info("search completed",
		zap.String("search_id", c.searchID),
		zap.Stringer("status", out.Status),
		zap.Int("nodes_expanded", out.Metrics.NodesExpanded),
		zap.Int("path_length", out.Metrics.PathLength),
		zap.Duration("elapsed", out.Metrics.Elapsed))
}

// abort cancels an active engine. The cancelled outcome is not recorded.
func (c *Coordinator) abort() {
	if c.engine != nil && c.state.Active() {
		c.engine.Cancel()
		out, _ := c.engine.Step()
		c.opts.Collectors.SearchFinished(out.Status.String(), out.Metrics.NodesExpanded, out.Metrics.Elapsed)
	}
}

// resetSearch drops the engine and every per-search field.
func (c *Coordinator) resetSearch() {
	c.engine = nil
	c.searchID = ""
	c.live = search.Metrics{}
	c.current = grid.Coordinate{}
	c.expanded = false
	c.outcome = nil
	c.err = nil
}
