package motion

import (
	"time"

	"go.uber.org/zap"

	"lumifur/remote"
)

// Mode is the current source of target updates.
type Mode int

const (
	Autonomous Mode = iota
	RemoteControlled
)

func (m Mode) String() string {
	switch m {
	case Autonomous:
		return "autonomous"
	case RemoteControlled:
		return "remote"
	default:
		return "unknown"
	}
}

// Arbiter chooses between the autonomous schedule and remote commands.
type Arbiter struct {
	cfg       Config
	scheduler *Scheduler
	log       *zap.Logger

	mode         Mode
	onModeChange func(Mode)
}

// NewArbiter creates an Arbiter starting in Autonomous mode. onModeChange,
// if not nil, is called from the control loop on every transition.
func NewArbiter(cfg Config, scheduler *Scheduler, log *zap.Logger, onModeChange func(Mode)) *Arbiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Arbiter{
		cfg:          cfg.WithDefaults(),
		scheduler:    scheduler,
		log:          log,
		mode:         Autonomous,
		onModeChange: onModeChange,
	}
}

// Mode returns the current mode.
func (a *Arbiter) Mode() Mode {
	return a.mode
}

// Step updates the targets of left and right for the tick at now.
//
// While connected, the command drives the targets: animate fires a major
// twitch on every tick it is held, rest eases both ears back to the resting
// angle, and anything else leaves the targets alone. While disconnected only
// the autonomous schedule may move them.
func (a *Arbiter) Step(now time.Time, connected bool, cmd remote.Command, left, right *State) {
	mode := Autonomous
	if connected {
		mode = RemoteControlled
	}
	a.transition(now, mode)

	if mode == Autonomous {
		for _, tw := range a.scheduler.Autonomous(now, left, right) {
			a.log.Debug("twitch",
				zap.Bool("micro", tw.Micro),
				zap.Float64("offset", tw.Offset),
				zap.Int("asymmetry", tw.Asymmetry))
		}
		return
	}

	switch cmd {
	case remote.CommandAnimate:
		a.scheduler.Animate(left, right)
	case remote.CommandRest:
		left.SetTarget(a.cfg.Resting)
		right.SetTarget(MaxAngle - a.cfg.Resting)
	}
}

func (a *Arbiter) transition(now time.Time, mode Mode) {
	if mode == a.mode {
		return
	}
	a.log.Info("mode change", zap.Stringer("from", a.mode), zap.Stringer("to", mode))
	if mode == Autonomous && a.cfg.ResetOnResume {
		a.scheduler.Reset(now)
	}
	a.mode = mode
	if a.onModeChange != nil {
		a.onModeChange(mode)
	}
}
