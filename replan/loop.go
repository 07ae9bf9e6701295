package replan

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// DefaultStepInterval is the pacing used when LoopOptions.StepInterval is unset.
const DefaultStepInterval = 40 * time.Millisecond

// ErrStepLimit is returned by RunVirtual when MaxSteps is exhausted.
var ErrStepLimit = errors.New("replan: step limit reached")

// LoopOptions paces a driver loop.
type LoopOptions struct {
	// StepInterval is the time between engine steps.
	StepInterval time.Duration
	// InjectInterval is the time between injection passes. Zero disables
	// injection from the loop.
	InjectInterval time.Duration
	// OnUpdate receives a snapshot after every iteration.
	OnUpdate func(Snapshot)
	// MaxSteps bounds RunVirtual. Zero means no bound.
	MaxSteps int
}

func (o LoopOptions) withDefaults() LoopOptions {
	if o.StepInterval <= 0 {
		o.StepInterval = DefaultStepInterval
	}
	if o.OnUpdate == nil {
		o.OnUpdate = func(Snapshot) {}
	}
	return o
}

// Loop drives the coordinator in wall-clock time until ctx is done: one step
// per StepInterval, an injection pass per InjectInterval and a Tick every
// iteration. Step errors are visible through Snapshot.Err.
func (c *Coordinator) Loop(ctx context.Context, opts LoopOptions) error {
	opts = opts.withDefaults()
	limiter := rate.NewLimiter(rate.Every(opts.StepInterval), 1)

	var injectC <-chan time.Time
	if opts.InjectInterval > 0 {
		ticker := time.NewTicker(opts.InjectInterval)
		defer ticker.Stop()
		injectC = ticker.C
	}

	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case now := <-injectC:
			c.Inject(now)
		default:
		}

		_, _ = c.Tick(time.Now())
		_, _ = c.Step()
		opts.OnUpdate(c.Snapshot())
	}
}

// RunVirtual drives the coordinator in virtual time starting at from, without
// sleeping, until no search is stepping and no replan is pending. A paused
// search therefore ends the run unless a replan is due. Each iteration
// advances virtual time by StepInterval. It returns the final snapshot, with
// ErrStepLimit if MaxSteps ran out first or ctx.Err() if ctx was cancelled.
func (c *Coordinator) RunVirtual(ctx context.Context, from time.Time, opts LoopOptions) (Snapshot, error) {
	opts = opts.withDefaults()
	now := from
	nextInject := from.Add(opts.InjectInterval)

	for steps := 0; ; steps++ {
		snap := c.Snapshot()
		if snap.State != Running && !snap.ReplanPending {
			return snap, nil
		}
		if opts.MaxSteps > 0 && steps >= opts.MaxSteps {
			return snap, ErrStepLimit
		}
		if err := ctx.Err(); err != nil {
			return snap, err
		}

		now = now.Add(opts.StepInterval)
		if opts.InjectInterval > 0 && !now.Before(nextInject) {
			c.Inject(now)
			nextInject = now.Add(opts.InjectInterval)
		}
		if _, err := c.Tick(now); err != nil {
			return c.Snapshot(), err
		}
		_, _ = c.Step()
		opts.OnUpdate(c.Snapshot())
	}
}
