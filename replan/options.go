package replan

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/gridsearch/heuristic"
	"github.com/katalvlaran/gridsearch/inject"
	"github.com/katalvlaran/gridsearch/search"
	"github.com/katalvlaran/gridsearch/telemetry"
)

// DefaultSettleDelay is the wait between an injection and the replan it triggers.
const DefaultSettleDelay = 400 * time.Millisecond

// Clock supplies wall-clock time for search metrics.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Options configures a Coordinator.
type Options struct {
	Strategy          search.Strategy
	Heuristic         heuristic.Kind
	Dynamic           bool
	SpawnProbability  float64
	SettleDelay       time.Duration
	InjectWhilePaused bool

	Logger     *zap.Logger
	Collectors *telemetry.Collectors // nil records nothing
	Clock      Clock
	Rand       *rand.Rand // injector source; nil means time-seeded
}

// Option represents a functional option for configuring a Coordinator.
type Option func(*Options)

// WithStrategy sets the strategy used by the next started search.
func WithStrategy(s search.Strategy) Option {
	return func(o *Options) { o.Strategy = s }
}

// WithHeuristic sets the heuristic used by the next started search.
func WithHeuristic(k heuristic.Kind) Option {
	return func(o *Options) { o.Heuristic = k }
}

// WithDynamic turns obstacle injection on or off.
func WithDynamic(on bool) Option {
	return func(o *Options) { o.Dynamic = on }
}

// WithSpawnProbability sets the per-cell injection probability.
func WithSpawnProbability(p float64) Option {
	return func(o *Options) { o.SpawnProbability = p }
}

// WithSettleDelay sets the debounce window. Negative values are ignored.
func WithSettleDelay(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.SettleDelay = d
		}
	}
}

// WithInjectWhilePaused lets injection continue while a search is paused.
func WithInjectWhilePaused(on bool) Option {
	return func(o *Options) { o.InjectWhilePaused = on }
}

// WithLogger sets the lifecycle logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithCollectors records search activity on c.
func WithCollectors(c *telemetry.Collectors) Option {
	return func(o *Options) { o.Collectors = c }
}

// WithClock overrides the time source for search elapsed time.
func WithClock(c Clock) Option {
	return func(o *Options) {
		if c != nil {
			o.Clock = c
		}
	}
}

// WithRand sets the injector's random source.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) { o.Rand = r }
}

// DefaultOptions returns A* with Manhattan, dynamic mode off, the default
// injection probability and settle delay, a no-op logger and the system clock.
func DefaultOptions() Options {
	return Options{
		Strategy:         search.AStar,
		Heuristic:        heuristic.KindManhattan,
		SpawnProbability: inject.DefaultProbability,
		SettleDelay:      DefaultSettleDelay,
		Logger:           zap.NewNop(),
		Clock:            systemClock{},
	}
}
