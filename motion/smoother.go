package motion

import (
	"math"
	"math/rand"
)

// Smoother eases a State toward its target with first-order exponential
// damping. Each step closes a fixed fraction of the remaining distance,
// scaled by a random speed variance in [0.8, 1.2] so repeated twitches do
// not look mechanical.
type Smoother struct {
	factor float64
	rng    *rand.Rand
}

// NewSmoother creates a Smoother closing factor of the distance per step.
func NewSmoother(factor float64, rng *rand.Rand) *Smoother {
	return &Smoother{factor: factor, rng: rng}
}

// Advance moves s one step toward its target and returns the new current
// position. Once within MovingThreshold the state settles on the target and
// further calls are no-ops.
func (m *Smoother) Advance(s *State) float64 {
	if s.Current == s.Target {
		s.Moving = false
		return s.Current
	}

	diff := s.Target - s.Current
	s.Moving = math.Abs(diff) > MovingThreshold
	if !s.Moving {
		s.Current = s.Target
		return s.Current
	}

	movement := diff * m.factor
	movement *= 0.8 + m.rng.Float64()*0.4

	s.Current += movement
	return s.Current
}
