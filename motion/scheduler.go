package motion

import (
	"math"
	"math/rand"
	"time"
)

// Twitch describes one randomized repositioning of the pair.
type Twitch struct {
	Micro     bool
	Offset    float64 // signed offset from resting applied to both ears
	Asymmetry int     // extra offset applied to the mirrored ear only
}

// Scheduler decides when autonomous twitches fire and computes their targets.
//
// Both targets are always computed together from one offset so the ears stay
// visually correlated; the asymmetry term keeps them from being perfect
// mirror images.
type Scheduler struct {
	cfg Config
	rng *rand.Rand

	lastMajor time.Time
	lastMicro time.Time
	nextMajor time.Duration
}

// NewScheduler creates a Scheduler whose timers start at start.
func NewScheduler(cfg Config, start time.Time) *Scheduler {
	cfg = cfg.WithDefaults()
	return &Scheduler{
		cfg:       cfg,
		rng:       cfg.Rand,
		lastMajor: start,
		lastMicro: start,
		nextMajor: cfg.BaseInterval,
	}
}

// NextMajor returns the current interval between major twitches.
func (s *Scheduler) NextMajor() time.Duration {
	return s.nextMajor
}

// Reset restarts both twitch timers at now.
func (s *Scheduler) Reset(now time.Time) {
	s.lastMajor = now
	s.lastMicro = now
}

// Trigger sets new targets on both states. A major twitch also resamples the
// interval until the next autonomous major twitch.
func (s *Scheduler) Trigger(left, right *State, micro bool) Twitch {
	span := s.cfg.MajorRange
	if micro {
		span = s.cfg.MicroRange
	}

	// u^bias with bias > 1 skews toward zero: small fidgets are far more
	// common than full-range swings.
	factor := math.Pow(s.rng.Float64(), s.cfg.Bias)
	offset := span * factor
	if s.rng.Intn(2) == 0 {
		offset = -offset
	}

	asym := s.rng.Intn(2*s.cfg.Asymmetry+1) - s.cfg.Asymmetry

	left.SetTarget(s.cfg.Resting + offset)
	right.SetTarget(MaxAngle - (s.cfg.Resting + offset + float64(asym)))

	if !micro {
		jitter := time.Duration(s.rng.Int63n(int64(2*s.cfg.IntervalJitter/time.Millisecond)+1)) * time.Millisecond
		s.nextMajor = s.cfg.BaseInterval - s.cfg.IntervalJitter + jitter
	}

	return Twitch{Micro: micro, Offset: offset, Asymmetry: asym}
}

// Autonomous runs the idle schedule for the tick at now and returns the
// twitches that fired, if any.
//
// The micro-twitch trial runs once per call after the cooldown, so its
// effective rate scales with the tick rate. This coupling is intentional.
func (s *Scheduler) Autonomous(now time.Time, left, right *State) []Twitch {
	var fired []Twitch

	if now.Sub(s.lastMajor) >= s.nextMajor {
		fired = append(fired, s.Trigger(left, right, false))
		s.lastMajor = now
	}

	if now.Sub(s.lastMicro) >= s.cfg.MicroCooldown && s.rng.Intn(s.cfg.MicroProbability) == 0 {
		fired = append(fired, s.Trigger(left, right, true))
		s.lastMicro = now
	}

	return fired
}

// Animate fires a major twitch with no interval gating. Called every tick
// while a remote "animate" command is held.
func (s *Scheduler) Animate(left, right *State) Twitch {
	return s.Trigger(left, right, false)
}
