package motion

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lumifur/remote"
)

// Driver writes rendered angles to the actuator pair.
type Driver interface {
	Write(left, right int) error
}

// Link is the read side of the remote connection state.
type Link interface {
	Snapshot() (bool, remote.Command)
}

// Loop is the fixed-period control loop. It owns both actuator states and
// is the only writer of the driver.
type Loop struct {
	cfg      Config
	link     Link
	driver   Driver
	arbiter  *Arbiter
	smoother *Smoother
	log      *zap.Logger
	now      func() time.Time

	left  *State
	right *State

	ticks      uint64
	writeErrs  uint64
	lastRender [2]int
}

// NewLoop creates a Loop with both ears at the resting angle.
func NewLoop(cfg Config, link Link, driver Driver, log *zap.Logger, onModeChange func(Mode)) *Loop {
	cfg = cfg.WithDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	scheduler := NewScheduler(cfg, time.Now())
	return &Loop{
		cfg:      cfg,
		link:     link,
		driver:   driver,
		arbiter:  NewArbiter(cfg, scheduler, log, onModeChange),
		smoother: NewSmoother(cfg.Smoothing, cfg.Rand),
		log:      log,
		now:      time.Now,
		left:     NewState(cfg.Resting, false),
		right:    NewState(cfg.Resting, true),
	}
}

// Run drives the loop until ctx is done. Each iteration sleeps for whatever
// is left of the tick; an overrun iteration delays the next one rather than
// queueing a catch-up tick.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("control loop started", zap.Duration("tick", l.cfg.Tick))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			l.log.Info("control loop stopped", zap.Uint64("ticks", l.ticks))
			return ctx.Err()
		case <-timer.C:
		}

		start := l.now()
		l.tick(start)

		remaining := l.cfg.Tick - l.now().Sub(start)
		if remaining < 0 {
			remaining = 0
		}
		timer.Reset(remaining)
	}
}

// Mode returns the arbiter's current mode. Only safe from the loop goroutine
// or after Run has returned.
func (l *Loop) Mode() Mode {
	return l.arbiter.Mode()
}

// Positions returns the rendered angles of the last tick.
func (l *Loop) Positions() (left, right int) {
	return l.lastRender[0], l.lastRender[1]
}

func (l *Loop) tick(now time.Time) {
	connected, cmd := l.link.Snapshot()

	l.arbiter.Step(now, connected, cmd, l.left, l.right)

	l.smoother.Advance(l.left)
	l.smoother.Advance(l.right)

	l.ticks++
	left, right := l.left.Render(), l.right.Render()
	l.lastRender = [2]int{left, right}
	if err := l.driver.Write(left, right); err != nil {
		l.writeErrs++
		if l.writeErrs%100 == 1 {
			l.log.Warn("actuator write failed", zap.Error(err), zap.Uint64("failures", l.writeErrs))
		}
	}
}
